package service

import (
	"context"
	"fmt"

	"forum/internal/listing"
	"forum/internal/models"
	"forum/internal/repository"
	"forum/internal/validation"
)

type PostService struct {
	posts       repository.PostRepository
	boards      repository.BoardRepository
	pageSize    int
	maxPageSize int
}

// PostInput carries the writable post fields. Nil means "not sent".
type PostInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Board   *uint   `json:"board"`
}

func NewPostService(posts repository.PostRepository, boards repository.BoardRepository, pageSize, maxPageSize int) *PostService {
	return &PostService{
		posts:       posts,
		boards:      boards,
		pageSize:    pageSize,
		maxPageSize: maxPageSize,
	}
}

// List applies the filter, search, ordering and page parameters in params.
func (s *PostService) List(ctx context.Context, params map[string]string) (*repository.PostList, error) {
	q, err := listing.PostSpec.Parse(params)
	if err != nil {
		return nil, err
	}
	page, err := listing.ParsePage(params, s.pageSize, s.maxPageSize)
	if err != nil {
		return nil, err
	}
	return s.posts.List(ctx, q, page)
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create stores a new post authored by the caller. Any author sent by the client is ignored.
func (s *PostService) Create(ctx context.Context, caller models.Caller, in PostInput) (*models.Post, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}
	if in.Board == nil {
		return nil, models.NewValidationError("board is required")
	}

	post := &models.Post{
		Title:    pick(in.Title, ""),
		Content:  pick(in.Content, ""),
		BoardID:  *in.Board,
		AuthorID: caller.UserID,
	}
	if err := s.validate(ctx, post); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, post.ID)
}

// Update changes title, content and board. With partial set, omitted fields keep their values.
func (s *PostService) Update(ctx context.Context, caller models.Caller, id uint, in PostInput, partial bool) (*models.Post, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !partial && (in.Title == nil || in.Content == nil || in.Board == nil) {
		return nil, models.NewValidationError("title, content and board are required")
	}

	post.Title = pick(in.Title, post.Title)
	post.Content = pick(in.Content, post.Content)
	post.BoardID = pick(in.Board, post.BoardID)
	if err := s.validate(ctx, post); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) Delete(ctx context.Context, caller models.Caller, id uint) error {
	if err := requireAuth(caller); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}

// IncrementViews adds one view. Anyone may call it.
func (s *PostService) IncrementViews(ctx context.Context, id uint) (uint, error) {
	return s.posts.IncrementViews(ctx, id)
}

func (s *PostService) validate(ctx context.Context, post *models.Post) error {
	if err := validation.ValidatePost(post.Title, post.Content); err != nil {
		return models.NewValidationError(err.Error())
	}
	exists, err := s.boards.Exists(ctx, post.BoardID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewValidationError(fmt.Sprintf("Invalid board id %d - object does not exist.", post.BoardID))
	}
	return nil
}
