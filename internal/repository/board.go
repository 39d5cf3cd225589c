package repository

import (
	"context"
	"errors"

	"forum/internal/models"
	"forum/internal/observability"

	"gorm.io/gorm"
)

// BoardRepository defines persistence operations for boards.
type BoardRepository interface {
	List(ctx context.Context) ([]models.Board, error)
	GetByID(ctx context.Context, id uint) (*models.Board, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, board *models.Board) error
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id uint) (int64, error)
}

type boardRepository struct {
	db *gorm.DB
}

// NewBoardRepository returns a new BoardRepository implementation.
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

const boardColumns = "boards.*, (SELECT COUNT(*) FROM posts WHERE posts.board_id = boards.id) AS post_count"

// withPostCount selects boards together with their live post count.
func (r *boardRepository) withPostCount(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Board{}).Select(boardColumns)
}

func (r *boardRepository) List(ctx context.Context) ([]models.Board, error) {
	var boards []models.Board
	if err := r.withPostCount(ctx).Order("boards.id ASC").Find(&boards).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return boards, nil
}

func (r *boardRepository) GetByID(ctx context.Context, id uint) (*models.Board, error) {
	var board models.Board
	if err := r.withPostCount(ctx).Where("boards.id = ?", id).Take(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Board", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &board, nil
}

func (r *boardRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Board{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *boardRepository) Create(ctx context.Context, board *models.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("board with this name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes the editable columns of board. created_at and id are never touched.
func (r *boardRepository) Update(ctx context.Context, board *models.Board) error {
	res := r.db.WithContext(ctx).Model(&models.Board{}).
		Where("id = ?", board.ID).
		UpdateColumns(map[string]interface{}{
			"name":        board.Name,
			"description": board.Description,
		})
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewValidationError("board with this name already exists")
		}
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Board", board.ID)
	}
	return nil
}

// Delete removes the board and all of its posts in one transaction.
// It returns the number of posts removed.
func (r *boardRepository) Delete(ctx context.Context, id uint) (_ int64, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, "boards", "Delete")
	defer func() { observability.EndSpan(span, err) }()

	var removed int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("board_id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Delete(&models.Board{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Board", id)
		}
		return nil
	})
	if err != nil {
		return 0, wrap(err)
	}
	observability.CascadeDeletedPosts.WithLabelValues("board").Add(float64(removed))
	return removed, nil
}
