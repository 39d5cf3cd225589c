package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the database/sql driver every SQLite handle is opened with.
// It is go-sqlite3 with lower() replaced by a Unicode-aware version; the builtin
// only folds ASCII, which breaks case-insensitive search on accented text.
const SQLiteDriverName = "sqlite3_forum"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower mirrors the builtin for non-text values: NULL stays NULL and numbers pass through.
func unicodeLower(v interface{}) interface{} {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		// go-sqlite3 hands NULL to interface{} arguments as a nil []byte.
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// SQLiteDialector opens dsn through SQLiteDriverName.
func SQLiteDialector(dsn string) gorm.Dialector {
	return &sqlite.Dialector{DriverName: SQLiteDriverName, DSN: dsn}
}
