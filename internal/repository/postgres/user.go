package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

// usersWithRolesQuery yields one row per (user, organization) with the roles
// aggregated; users without roles get a single row with a NULL organization.
const usersWithRolesQuery = `SELECT u.id, u.email, u.firstname, u.lastname, u.superuser, u.created_at, u.removed_at,
	       uo.organization_id, COALESCE(array_remove(array_agg(uo.role_name ORDER BY uo.role_name), NULL), '{}')
	FROM "user" u
	  LEFT JOIN user_organization uo ON (uo.user_id = u.id)
	WHERE %s
	GROUP BY u.id, u.email, u.firstname, u.lastname, u.superuser, u.created_at, u.removed_at, uo.organization_id
	ORDER BY u.lastname, u.firstname, u.id`

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO "user" (id, email, firstname, lastname, superuser, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	u.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.FirstName, u.LastName, u.Superuser, u.CreatedAt)
	return err
}

// GetByEmail returns the live account for email. A removed account is
// returned only when no live one shares the address.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserWithRolesInOrganizations, error) {
	users, err := r.listWithRoles(ctx, "LOWER(u.email) = LOWER($1)", email)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.NotFoundError("user", email)
	}
	for i := range users {
		if users[i].RemovalDateTime == nil {
			return &users[i], nil
		}
	}
	return &users[0], nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserWithRolesInOrganizations, error) {
	users, err := r.listWithRoles(ctx, "u.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.NotFoundError("user", id)
	}
	return &users[0], nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error) {
	return r.listWithRoles(ctx, "u.removed_at IS NULL")
}

func (r *userRepository) ListPublicUsers(ctx context.Context) ([]domain.UserWithRolesInOrganizations, error) {
	return r.listWithRoles(ctx, "u.removed_at IS NULL AND LOWER(u.email) LIKE $1", "%"+domain.PublicEmailDomain)
}

// ListUsersForAdminOrganizations lists members of the organizations where
// adminEmail holds ADMIN, with roles limited to those organizations.
func (r *userRepository) ListUsersForAdminOrganizations(ctx context.Context, adminEmail string) ([]domain.UserWithRolesInOrganizations, error) {
	logger.EnterMethod(ctx, "userRepository.ListUsersForAdminOrganizations", "adminEmail", adminEmail)
	where := `u.removed_at IS NULL AND uo.organization_id IN (
	    SELECT ao.organization_id FROM user_organization ao
	      JOIN "user" au ON (au.id = ao.user_id)
	    WHERE LOWER(au.email) = LOWER($1) AND ao.role_name = $2)`
	users, err := r.listWithRoles(ctx, where, adminEmail, domain.RoleAdmin)
	if err != nil {
		logger.ExitMethodWithError(ctx, "userRepository.ListUsersForAdminOrganizations", err)
		return nil, err
	}
	logger.ExitMethod(ctx, "userRepository.ListUsersForAdminOrganizations", "count", len(users))
	return users, nil
}

func (r *userRepository) listWithRoles(ctx context.Context, where string, args ...any) ([]domain.UserWithRolesInOrganizations, error) {
	query := sqlf(usersWithRolesQuery, where)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.UserWithRolesInOrganizations{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var (
			u         domain.UserWithRolesInOrganizations
			removedAt sql.NullTime
			orgID     uuid.NullUUID
			roles     []string
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Superuser, &u.CreationDateTime,
			&removedAt, &orgID, pq.Array(&roles)); err != nil {
			return nil, err
		}
		if removedAt.Valid {
			t := removedAt.Time
			u.RemovalDateTime = &t
		}

		i, seen := index[u.ID]
		if !seen {
			u.Organizations = []domain.OrganizationRoles{}
			users = append(users, u)
			i = len(users) - 1
			index[u.ID] = i
		}
		if orgID.Valid {
			users[i].Organizations = append(users[i].Organizations, domain.OrganizationRoles{ID: orgID.UUID, Roles: roles})
		}
	}
	return users, rows.Err()
}

func (r *userRepository) ListOrganizationUsers(ctx context.Context, orgID uuid.UUID) ([]domain.UserWithRoles, error) {
	query := `SELECT u.email, u.firstname, u.lastname, array_agg(uo.role_name ORDER BY uo.role_name)
	          FROM "user" u
	            JOIN user_organization uo ON (uo.user_id = u.id)
	          WHERE uo.organization_id = $1 AND u.removed_at IS NULL
	          GROUP BY u.email, u.firstname, u.lastname
	          ORDER BY u.lastname, u.firstname`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.UserWithRoles{}
	for rows.Next() {
		var u domain.UserWithRoles
		if err := rows.Scan(&u.Email, &u.FirstName, &u.LastName, pq.Array(&u.Roles)); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) ListUserItems(ctx context.Context, publicOnly bool) ([]domain.PublicUserListItem, error) {
	query := `SELECT id, email, firstname, lastname FROM "user" WHERE removed_at IS NULL`
	var args []any
	if publicOnly {
		query += ` AND LOWER(email) LIKE $1`
		args = append(args, "%"+domain.PublicEmailDomain)
	}
	query += ` ORDER BY lastname, firstname`
	return r.listItems(ctx, query, args...)
}

func (r *userRepository) ListModifiedSince(ctx context.Context, ifModifiedSince string) ([]domain.PublicUserListItem, error) {
	since, err := repository.ParseModifiedSince(ifModifiedSince)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, email, firstname, lastname FROM "user" WHERE removed_at IS NULL AND created_at > $1 ORDER BY lastname, firstname`
	return r.listItems(ctx, query, since)
}

func (r *userRepository) listItems(ctx context.Context, query string, args ...any) ([]domain.PublicUserListItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.PublicUserListItem{}
	for rows.Next() {
		var it domain.PublicUserListItem
		if err := rows.Scan(&it.ID, &it.Email, &it.FirstName, &it.LastName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *userRepository) Remove(ctx context.Context, email string) (bool, error) {
	var userID uuid.UUID
	query := `UPDATE "user" SET removed_at = now() WHERE LOWER(email) = LOWER($1) AND removed_at IS NULL RETURNING id`
	logger.DatabaseCall(ctx, "UPDATE", "user", "email", email)
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			logger.DatabaseResult(ctx, "UPDATE", 0, nil, "email", email)
			return false, nil
		}
		logger.DatabaseResult(ctx, "UPDATE", 0, err, "email", email)
		return false, err
	}

	for _, q := range []string{
		`DELETE FROM user_organization WHERE user_id = $1`,
		`DELETE FROM request WHERE user_id = $1`,
		`DELETE FROM user_token WHERE user_id = $1`,
	} {
		if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
			return false, err
		}
	}
	logger.DatabaseResult(ctx, "UPDATE", 1, nil, "email", email, "userID", userID)
	return true, nil
}
