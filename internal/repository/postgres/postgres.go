package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(q DBTX) repository.Repositories {
	return repository.Repositories{
		Organizations: NewOrganizationRepository(q),
		Users:         NewUserRepository(q),
		Roles:         NewRoleRepository(q),
		Requests:      NewRequestRepository(q),
		Tokens:        NewTokenRepository(q),
	}
}

// Ping checks connectivity of the underlying pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithinTransaction runs fn at READ COMMITTED. Concurrent role replacements on
// the same organization may interleave between clear and re-add.
func (s *Store) WithinTransaction(ctx context.Context, fn func(repos repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorContext(ctx, "Failed to roll back transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound and leaves other errors as is.
func notFound(err error, entity string, key any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError(entity, key)
	}
	return err
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
