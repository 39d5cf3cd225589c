package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"forum/internal/models"
	"forum/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_ListSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBoardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`(SELECT COUNT(*) FROM posts WHERE posts.board_id = boards.id) AS post_count FROM "boards" ORDER BY boards.id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "post_count"}).
			AddRow(1, "general", "talk", 4).
			AddRow(2, "news", "updates", 0))

	boards, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, int64(4), boards[0].PostCount)
	assert.Equal(t, "news", boards[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Board{Name: "general", Description: "a"}))

	err := repo.Create(ctx, &models.Board{Name: "general", Description: "b"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))

	var count int64
	require.NoError(t, db.Model(&models.Board{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBoardRepository_PostCountIsLive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "alice", "password123")
	board := testutil.CreateBoard(t, db, "general")
	testutil.CreateBoard(t, db, "empty")

	got, err := repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.PostCount)

	testutil.CreatePost(t, db, author, board, "one", "1")
	testutil.CreatePost(t, db, author, board, "two", "2")

	got, err = repo.GetByID(ctx, board.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.PostCount)

	boards, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, int64(2), boards[0].PostCount)
	assert.Equal(t, int64(0), boards[1].PostCount)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestBoardRepository_Update(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	general := testutil.CreateBoard(t, db, "general")
	testutil.CreateBoard(t, db, "news")

	require.NoError(t, repo.Update(ctx, &models.Board{ID: general.ID, Name: "lounge", Description: "chat"}))
	got, err := repo.GetByID(ctx, general.ID)
	require.NoError(t, err)
	assert.Equal(t, "lounge", got.Name)
	assert.WithinDuration(t, general.CreatedAt, got.CreatedAt, time.Millisecond)

	err = repo.Update(ctx, &models.Board{ID: general.ID, Name: "news", Description: "x"})
	assert.True(t, models.IsCode(err, models.CodeValidation))

	err = repo.Update(ctx, &models.Board{ID: 999, Name: "ghost", Description: "x"})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestBoardRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBoardRepository(db)
	ctx := context.Background()

	author := testutil.CreateUser(t, db, "alice", "password123")
	doomed := testutil.CreateBoard(t, db, "doomed")
	kept := testutil.CreateBoard(t, db, "kept")
	for range 3 {
		testutil.CreatePost(t, db, author, doomed, "bye", "soon gone")
	}
	survivor := testutil.CreatePost(t, db, author, kept, "stay", "still here")

	removed, err := repo.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	var remaining []models.Post
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)

	exists, err := repo.Exists(ctx, doomed.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Delete(ctx, doomed.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
