package service

import (
	"context"

	"forum/internal/models"
	"forum/internal/repository"
	"forum/internal/validation"
)

// BoardService implements the board resource.
type BoardService struct {
	boards repository.BoardRepository
}

// BoardInput carries the writable board fields. Nil means "not sent".
type BoardInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func NewBoardService(boards repository.BoardRepository) *BoardService {
	return &BoardService{boards: boards}
}

func (s *BoardService) List(ctx context.Context) ([]models.Board, error) {
	return s.boards.List(ctx)
}

func (s *BoardService) Get(ctx context.Context, id uint) (*models.Board, error) {
	return s.boards.GetByID(ctx, id)
}

func (s *BoardService) Create(ctx context.Context, caller models.Caller, in BoardInput) (*models.Board, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}

	board := &models.Board{
		Name:        pick(in.Name, ""),
		Description: pick(in.Description, ""),
	}
	if err := validation.ValidateBoard(board.Name, board.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return s.boards.GetByID(ctx, board.ID)
}

// Update replaces the board's fields. With partial set, omitted fields keep their values;
// otherwise every field must be sent.
func (s *BoardService) Update(ctx context.Context, caller models.Caller, id uint, in BoardInput, partial bool) (*models.Board, error) {
	if err := requireAuth(caller); err != nil {
		return nil, err
	}

	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !partial && (in.Name == nil || in.Description == nil) {
		return nil, models.NewValidationError("name and description are required")
	}

	board.Name = pick(in.Name, board.Name)
	board.Description = pick(in.Description, board.Description)
	if err := validation.ValidateBoard(board.Name, board.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return s.boards.GetByID(ctx, id)
}

// Delete removes the board together with all of its posts.
func (s *BoardService) Delete(ctx context.Context, caller models.Caller, id uint) error {
	if err := requireAuth(caller); err != nil {
		return err
	}
	_, err := s.boards.Delete(ctx, id)
	return err
}
