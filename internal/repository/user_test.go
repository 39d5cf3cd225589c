package repository

import (
	"context"
	"regexp"
	"testing"

	"forum/internal/models"
	"forum/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUsernameSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		username     string
		mockBehavior func()
		expectUser   bool
	}{
		{
			name:     "Found",
			username: "alice",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs("alice", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))
			},
			expectUser: true,
		},
		{
			name:     "Missing",
			username: "ghost",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
					WithArgs("ghost", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))
			},
			expectUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByUsername(ctx, tt.username)
			require.NoError(t, err)
			if tt.expectUser {
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			} else {
				assert.Nil(t, user)
			}
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	original := testutil.CreateUser(t, db, "alice", "password123")

	err := repo.Create(ctx, &models.User{Username: "alice", Password: "other"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))

	got, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.Password, got.Password)
	assert.Equal(t, original.Email, got.Email)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", "password123")
	bob := testutil.CreateUser(t, db, "bob", "password123")
	board := testutil.CreateBoard(t, db, "general")
	testutil.CreatePost(t, db, alice, board, "a1", "x")
	testutil.CreatePost(t, db, alice, board, "a2", "x")
	testutil.CreatePost(t, db, bob, board, "b1", "x")

	removed, err := repo.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = repo.GetByID(ctx, alice.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = repo.Delete(ctx, alice.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
