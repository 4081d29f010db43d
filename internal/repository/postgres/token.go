package postgres

import (
	"context"

	"github.com/google/uuid"

	"groupmanagement/internal/repository"
)

type tokenRepository struct {
	db DBTX
}

func NewTokenRepository(db DBTX) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Save replaces any previous token digest of the user.
func (r *tokenRepository) Save(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	query := `INSERT INTO user_token (user_id, token_hash, created_at) VALUES ($1, $2, now())
	          ON CONFLICT (user_id) DO UPDATE SET token_hash = EXCLUDED.token_hash, created_at = EXCLUDED.created_at`
	_, err := r.db.ExecContext(ctx, query, userID, tokenHash)
	return err
}

func (r *tokenRepository) GetHash(ctx context.Context, userID uuid.UUID) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx, `SELECT token_hash FROM user_token WHERE user_id = $1`, userID).Scan(&hash)
	if err != nil {
		return "", notFound(err, "token", userID)
	}
	return hash, nil
}

func (r *tokenRepository) Delete(ctx context.Context, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_token WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
