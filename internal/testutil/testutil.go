// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"forum/internal/database"
	"forum/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with the schema migrated and
// foreign keys enforced. The pool is pinned to one connection so every statement
// sees the same database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:forum_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := database.Open(database.SQLiteDialector(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewFileDB opens a SQLite database file in a temp dir with a pool of conns connections,
// so concurrent callers really contend for the write lock. Writers wait on the busy
// timeout instead of failing.
func NewFileDB(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "forum.db")
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=10000&_txlock=immediate"
	db, err := database.Open(database.SQLiteDialector(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	sqlDB.SetMaxIdleConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewRedis starts a miniredis server and returns a client for it.
func NewRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

// CreateUser inserts a user whose password is password.
func CreateUser(t testing.TB, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hash)}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateBoard inserts a board.
func CreateBoard(t testing.TB, db *gorm.DB, name string) *models.Board {
	t.Helper()

	board := &models.Board{Name: name, Description: name + " discussions"}
	require.NoError(t, db.Create(board).Error)
	return board
}

// CreatePost inserts a post by author on board.
func CreatePost(t testing.TB, db *gorm.DB, author *models.User, board *models.Board, title, content string) *models.Post {
	t.Helper()

	post := &models.Post{Title: title, Content: content, AuthorID: author.ID, BoardID: board.ID}
	require.NoError(t, db.Omit("Author", "Board").Create(post).Error)
	return post
}
