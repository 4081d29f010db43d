package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/repository/postgres"
)

func TestTokenRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTokenRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Save", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO user_token .+ ON CONFLICT \\(user_id\\) DO UPDATE").
			WithArgs(userID, "digest").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(ctx, userID, "digest"))
	})

	t.Run("GetHash", func(t *testing.T) {
		mock.ExpectQuery("SELECT token_hash FROM user_token").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"token_hash"}).AddRow("digest"))

		hash, err := repo.GetHash(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "digest", hash)
	})

	t.Run("GetHashMissing", func(t *testing.T) {
		mock.ExpectQuery("SELECT token_hash FROM user_token").
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"token_hash"}))

		_, err := repo.GetHash(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM user_token").WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))
		deleted, err := repo.Delete(ctx, userID)
		require.NoError(t, err)
		assert.True(t, deleted)

		mock.ExpectExec("DELETE FROM user_token").WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 0))
		deleted, err = repo.Delete(ctx, userID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
