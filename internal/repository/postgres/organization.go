package postgres

import (
	"context"

	"github.com/google/uuid"

	"groupmanagement/internal/domain"
	"groupmanagement/internal/logger"
	"groupmanagement/internal/repository"
)

const organizationColumns = `id, url, name_fi, name_en, name_sv, description_fi, description_en, description_sv, removed, modified`

type organizationRepository struct {
	db DBTX
}

func NewOrganizationRepository(db DBTX) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func scanOrganization(s scanner) (*domain.Organization, error) {
	o := &domain.Organization{}
	err := s.Scan(&o.ID, &o.URL, &o.NameFi, &o.NameEn, &o.NameSv,
		&o.DescriptionFi, &o.DescriptionEn, &o.DescriptionSv, &o.Removed, &o.Modified)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO organization (id, url, name_fi, name_en, name_sv, description_fi, description_en, description_sv, removed, modified)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now()) RETURNING modified`
	return r.db.QueryRowContext(ctx, query, o.ID, o.URL, o.NameFi, o.NameEn, o.NameSv,
		o.DescriptionFi, o.DescriptionEn, o.DescriptionSv, o.Removed).Scan(&o.Modified)
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE organization SET url=$1, name_fi=$2, name_en=$3, name_sv=$4, description_fi=$5, description_en=$6, description_sv=$7, removed=$8, modified=now()
	          WHERE id=$9`
	logger.DatabaseCall(ctx, "UPDATE", "organization", "orgID", o.ID)
	res, err := r.db.ExecContext(ctx, query, o.URL, o.NameFi, o.NameEn, o.NameSv,
		o.DescriptionFi, o.DescriptionEn, o.DescriptionSv, o.Removed, o.ID)
	if err != nil {
		logger.DatabaseResult(ctx, "UPDATE", 0, err, "orgID", o.ID)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult(ctx, "UPDATE", n, nil, "orgID", o.ID)
	if n == 0 {
		return domain.NotFoundError("organization", o.ID)
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organization WHERE id = $1`
	o, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "organization", id)
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context, includeRemoved bool) ([]domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organization`
	if !includeRemoved {
		query += ` WHERE removed = false`
	}
	query += ` ORDER BY name_fi`
	return r.list(ctx, query)
}

func (r *organizationRepository) ListModifiedSince(ctx context.Context, ifModifiedSince string, onlyValid bool) ([]domain.Organization, error) {
	since, err := repository.ParseModifiedSince(ifModifiedSince)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + organizationColumns + ` FROM organization WHERE modified > $1`
	if onlyValid {
		query += ` AND removed = false`
	}
	query += ` ORDER BY name_fi`
	return r.list(ctx, query, since)
}

func (r *organizationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Organization, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *o)
	}
	return orgs, rows.Err()
}
