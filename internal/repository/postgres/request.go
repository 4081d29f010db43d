package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

const requestWithOrganizationQuery = `SELECT r.id, u.email, u.firstname, u.lastname, r.organization_id,
	       o.name_fi, o.name_en, o.name_sv, r.role_name, r.sent, r.created_at
	FROM request r
	  JOIN "user" u ON (u.id = r.user_id)
	  JOIN organization o ON (o.id = r.organization_id)
	WHERE %s
	ORDER BY r.created_at, r.id`

type requestRepository struct {
	db DBTX
}

func NewRequestRepository(db DBTX) repository.RequestRepository {
	return &requestRepository{db: db}
}

// Add stores a request for the live user with email and returns its id.
func (r *requestRepository) Add(ctx context.Context, email string, orgID uuid.UUID, role string) (int, error) {
	query := `INSERT INTO request (user_id, organization_id, role_name, sent, created_at)
	          SELECT id, $2, $3, false, now() FROM "user" WHERE LOWER(email) = LOWER($1) AND removed_at IS NULL
	          RETURNING id`
	logger.DatabaseCall(ctx, "INSERT", "request", "email", email, "orgID", orgID, "role", role)
	var id int
	if err := r.db.QueryRowContext(ctx, query, email, orgID, role).Scan(&id); err != nil {
		logger.DatabaseResult(ctx, "INSERT", 0, err, "email", email)
		return 0, notFound(err, "user", email)
	}
	logger.DatabaseResult(ctx, "INSERT", 1, nil, "requestID", id)
	return id, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int) (*domain.UserRequest, error) {
	query := `SELECT r.id, u.email, r.organization_id, r.role_name, r.sent, r.created_at
	          FROM request r JOIN "user" u ON (u.id = r.user_id)
	          WHERE r.id = $1`
	req := &domain.UserRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.UserEmail, &req.OrganizationID,
		&req.RoleName, &req.Sent, &req.CreatedAt)
	if err != nil {
		return nil, notFound(err, "request", id)
	}
	return req, nil
}

func (r *requestRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM request WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError("request", id)
	}
	return nil
}

func (r *requestRepository) ListForOrganizations(ctx context.Context, orgIDs []uuid.UUID) ([]domain.UserRequestWithOrganization, error) {
	if orgIDs == nil {
		return r.listWithOrganization(ctx, "true")
	}
	ids := make([]string, len(orgIDs))
	for i, id := range orgIDs {
		ids[i] = id.String()
	}
	return r.listWithOrganization(ctx, "r.organization_id = ANY($1::uuid[])", pq.Array(ids))
}

func (r *requestRepository) ListUnsent(ctx context.Context) ([]domain.UserRequestWithOrganization, error) {
	return r.listWithOrganization(ctx, "r.sent = false")
}

func (r *requestRepository) listWithOrganization(ctx context.Context, where string, args ...any) ([]domain.UserRequestWithOrganization, error) {
	rows, err := r.db.QueryContext(ctx, sqlf(requestWithOrganizationQuery, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.UserRequestWithOrganization{}
	for rows.Next() {
		var req domain.UserRequestWithOrganization
		var nameFi, nameEn, nameSv string
		if err := rows.Scan(&req.ID, &req.Email, &req.FirstName, &req.LastName, &req.OrganizationID,
			&nameFi, &nameEn, &nameSv, &req.Role, &req.Sent, &req.CreatedAt); err != nil {
			return nil, err
		}
		req.OrganizationName = map[string]string{
			domain.LangFi: nameFi,
			domain.LangEn: nameEn,
			domain.LangSv: nameSv,
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ListByEmail groups the requested roles of email per organization.
func (r *requestRepository) ListByEmail(ctx context.Context, email string) ([]domain.PublicUserRequest, error) {
	query := `SELECT r.organization_id, array_agg(r.role_name ORDER BY r.role_name)
	          FROM request r JOIN "user" u ON (u.id = r.user_id)
	          WHERE LOWER(u.email) = LOWER($1)
	          GROUP BY r.organization_id
	          ORDER BY r.organization_id`
	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.PublicUserRequest{}
	for rows.Next() {
		var req domain.PublicUserRequest
		if err := rows.Scan(&req.OrganizationID, pq.Array(&req.Roles)); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *requestRepository) MarkSent(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	values := make([]int64, len(ids))
	for i, id := range ids {
		values[i] = int64(id)
	}
	logger.DatabaseCall(ctx, "UPDATE", "request", "count", len(ids))
	res, err := r.db.ExecContext(ctx, `UPDATE request SET sent = true WHERE id = ANY($1)`, pq.Array(values))
	if err != nil {
		logger.DatabaseResult(ctx, "UPDATE", 0, err)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult(ctx, "UPDATE", n, nil)
	return nil
}
