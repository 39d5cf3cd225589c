package seed

import (
	"fmt"
	"log/slog"

	"forum/internal/middleware"
	"forum/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers   int
	NumBoards  int
	NumPosts   int
	MaxDays    int
	Seed       int64
	BcryptCost int
}

// DefaultOptions is a small demo forum.
func DefaultOptions() Options {
	return Options{
		NumUsers:   20,
		NumBoards:  6,
		NumPosts:   150,
		MaxDays:    90,
		Seed:       1,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// Result counts what a seeding run created.
type Result struct {
	Users  []*models.User
	Boards []*models.Board
	Posts  int
}

// Seeder fills a database with demo users, boards and posts.
type Seeder struct {
	db   *gorm.DB
	opts Options
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{db: db, opts: opts}
}

// ClearAll removes every post, board and user.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Post{}, &models.Board{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// Run creates the configured number of users and boards, then spreads the posts
// over them round-robin.
func (s *Seeder) Run() (*Result, error) {
	if s.opts.NumPosts > 0 && (s.opts.NumUsers <= 0 || s.opts.NumBoards <= 0) {
		return nil, fmt.Errorf("seeding posts needs at least one user and one board")
	}

	f, err := NewFactory(s.db, s.opts.Seed, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := f.CreateUser(i + 1)
		if err != nil {
			return nil, err
		}
		res.Users = append(res.Users, user)
	}
	for i := 0; i < s.opts.NumBoards; i++ {
		board, err := f.CreateBoard(i)
		if err != nil {
			return nil, err
		}
		res.Boards = append(res.Boards, board)
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := res.Users[i%len(res.Users)]
		board := res.Boards[i%len(res.Boards)]
		posts = append(posts, f.BuildPost(author, board, s.opts.MaxDays))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	res.Posts = len(posts)

	middleware.Logger.Info("seeding complete",
		slog.Int("users", len(res.Users)),
		slog.Int("boards", len(res.Boards)),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}
