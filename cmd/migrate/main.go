// Command migrate runs schema operations for the forum database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"forum/internal/config"
	"forum/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Open(database.Dialector(cfg))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	switch cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0))); cmd {
	case "up":
		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Println("migrations applied")
	case "status":
		for _, model := range database.PersistentModels() {
			state := "missing"
			if db.Migrator().HasTable(model) {
				state = "present"
			}
			log.Printf("%-8T %s", model, state)
		}
	default:
		return usage()
	}
	return nil
}
