// Package seed creates demo data for development databases and tests.
package seed

import (
	"fmt"
	"strings"
	"time"

	"forum/internal/models"
	"forum/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "password123"

var boardNames = []string{
	"General", "Announcements", "Programming", "Linux", "Homelab", "Gaming",
	"Books", "Music", "Movies", "Travel", "Food", "Science", "Off-topic",
}

// Factory builds forum entities with fake content and persists them.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	hash  string
	now   time.Time
}

// NewFactory returns a Factory whose content is reproducible for a given seed.
// cost is the bcrypt cost for the shared DefaultPassword hash.
func NewFactory(db *gorm.DB, seed int64, cost int) (*Factory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return &Factory{
		db:    db,
		faker: gofakeit.New(seed),
		hash:  string(hash),
		now:   time.Now(),
	}, nil
}

// username derives a valid, unique username for the n-th seeded user.
func (f *Factory) username(n int) string {
	name := fmt.Sprintf("%s%d", strings.ToLower(f.faker.FirstName()), n)
	if validation.ValidateUsername(name) != nil {
		return fmt.Sprintf("user%d", n)
	}
	return name
}

// CreateUser persists the n-th seeded user.
func (f *Factory) CreateUser(n int) (*models.User, error) {
	user := &models.User{
		Username: f.username(n),
		Password: f.hash,
	}
	user.Email = user.Username + "@" + f.faker.DomainName()

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return user, nil
}

// CreateBoard persists the n-th seeded board. Names repeat with a numeric suffix once
// the built-in list runs out.
func (f *Factory) CreateBoard(n int) (*models.Board, error) {
	name := boardNames[n%len(boardNames)]
	if n >= len(boardNames) {
		name = fmt.Sprintf("%s %d", name, n/len(boardNames)+1)
	}

	board := &models.Board{
		Name:        name,
		Description: f.faker.Sentence(8),
	}
	if err := f.db.Create(board).Error; err != nil {
		return nil, fmt.Errorf("create board %s: %w", name, err)
	}
	return board, nil
}

// BuildPost returns an unsaved post by author on board, dated within the last maxDays.
func (f *Factory) BuildPost(author *models.User, board *models.Board, maxDays int) *models.Post {
	title := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 9)), ".")
	if len([]rune(title)) > validation.MaxPostTitleLength {
		title = string([]rune(title)[:validation.MaxPostTitleLength])
	}

	created := f.faker.DateRange(f.now.AddDate(0, 0, -maxDays), f.now)
	return &models.Post{
		Title:     title,
		Content:   f.faker.Paragraph(f.faker.Number(1, 3), f.faker.Number(1, 5), 12, "\n\n"),
		AuthorID:  author.ID,
		BoardID:   board.ID,
		Views:     uint(f.faker.Number(0, 500)),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// CreatePostsBatch persists posts in batches.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Omit("Author", "Board").CreateInBatches(posts, 100).Error
}
