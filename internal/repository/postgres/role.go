package postgres

import (
	"context"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

type roleRepository struct {
	db DBTX
}

func NewRoleRepository(db DBTX) repository.RoleRepository {
	return &roleRepository{db: db}
}

// AddUserToRole grants role to the live user with email. The count of matched
// users distinguishes an unknown email from an existing assignment.
func (r *roleRepository) AddUserToRole(ctx context.Context, email, role string, orgID uuid.UUID) error {
	query := `WITH u AS (
	            SELECT id FROM "user" WHERE LOWER(email) = LOWER($1) AND removed_at IS NULL
	          ), ins AS (
	            INSERT INTO user_organization (user_id, organization_id, role_name)
	            SELECT id, $2, $3 FROM u
	            ON CONFLICT DO NOTHING
	          )
	          SELECT count(*) FROM u`
	logger.DatabaseCall(ctx, "INSERT", "user_organization", "email", email, "role", role, "orgID", orgID)
	var matched int64
	if err := r.db.QueryRowContext(ctx, query, email, orgID, role).Scan(&matched); err != nil {
		logger.DatabaseResult(ctx, "INSERT", 0, err, "email", email)
		return err
	}
	logger.DatabaseResult(ctx, "INSERT", matched, nil, "email", email)
	if matched == 0 {
		return domain.NotFoundError("user", email)
	}
	return nil
}

func (r *roleRepository) ClearRoles(ctx context.Context, orgID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_organization WHERE organization_id = $1`, orgID)
	return err
}

func (r *roleRepository) ListAvailableRoles(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT name FROM role ORDER BY name`)
}

func (r *roleRepository) ListEmailsInRole(ctx context.Context, role string, orgID uuid.UUID) ([]string, error) {
	query := `SELECT u.email FROM "user" u
	            JOIN user_organization uo ON (uo.user_id = u.id)
	          WHERE uo.organization_id = $1 AND uo.role_name = $2 AND u.removed_at IS NULL
	          ORDER BY u.email`
	return r.listStrings(ctx, query, orgID, role)
}

func (r *roleRepository) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
