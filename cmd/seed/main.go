// Command main runs the database seeder for the forum.
package main

import (
	"flag"
	"log"

	"forum/internal/config"
	"forum/internal/database"
	"forum/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.NumUsers, "Number of users to create")
	numBoards := flag.Int("boards", defaults.NumBoards, "Number of boards to create")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of posts to create")
	maxDays := flag.Int("days", defaults.MaxDays, "Spread post dates over this many past days")
	fakerSeed := flag.Int64("seed", defaults.Seed, "Random seed for generated content")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Target: %d users, %d boards, %d posts, clean=%v", *numUsers, *numBoards, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:   *numUsers,
		NumBoards:  *numBoards,
		NumPosts:   *numPosts,
		MaxDays:    *maxDays,
		Seed:       *fakerSeed,
		BcryptCost: defaults.BcryptCost,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if _, err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done. Every seeded user has the password: %s", seed.DefaultPassword)
}
