package repository

import (
	"context"
	"errors"
	"time"

	"forum/internal/listing"
	"forum/internal/models"
	"forum/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	List(ctx context.Context, q listing.Query, page listing.Page) (*PostList, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) (uint, error)
}

// PostList is one page of a filtered post listing.
type PostList struct {
	Posts []models.Post
	Count int64
	Page  listing.Page
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, now: time.Now}
}

func (r *postRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Board")
}

// List counts the rows matching q, validates the page against that count and loads the page.
func (r *postRepository) List(ctx context.Context, q listing.Query, page listing.Page) (_ *PostList, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "posts", "List")
	defer func() { observability.EndSpan(span, err) }()

	filtered := q.Filter(r.db.WithContext(ctx).Model(&models.Post{}))

	var count int64
	if err := filtered.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	page, err = page.Resolve(count)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	err = q.Order(r.withRelations(filtered.Session(&gorm.Session{}))).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &PostList{Posts: posts, Count: count, Page: page}, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withRelations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.Views = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		if isForeignKeyError(err) {
			return models.NewValidationError("board or author does not exist")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes title, content and board_id and refreshes updated_at.
// views, author and created_at are never written here.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = r.now()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumns(map[string]interface{}{
			"title":      post.Title,
			"content":    post.Content,
			"board_id":   post.BoardID,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		if isForeignKeyError(res.Error) {
			return models.NewValidationError("board does not exist")
		}
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

// IncrementViews adds one to the post's views inside the database and returns the new total.
// The addition is evaluated by the store, so concurrent callers never lose an update.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) (_ uint, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "posts", "IncrementViews")
	defer func() { observability.EndSpan(span, err) }()

	var views uint
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).
			Where("id = ?", id).
			UpdateColumns(map[string]interface{}{
				"views":      gorm.Expr("views + ?", 1),
				"updated_at": r.now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return tx.Model(&models.Post{}).Select("views").Where("id = ?", id).Row().Scan(&views)
	})
	if err != nil {
		return 0, wrap(err)
	}

	observability.PostViewIncrements.Inc()
	return views, nil
}
