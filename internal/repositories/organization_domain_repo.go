package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrganizationDomainRepository interface {
	WithTx(tx pgx.Tx) OrganizationDomainRepository
	Create(ctx context.Context, domain *models.OrganizationDomain) error
	GetByDomain(ctx context.Context, domain string) (*models.OrganizationDomain, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.OrganizationDomain, error)
	Delete(ctx context.Context, organizationID uuid.UUID, domain string) error
}

type organizationDomainRepo struct {
	db Database
}

func NewOrganizationDomainRepo(db Database) OrganizationDomainRepository {
	return &organizationDomainRepo{db: db}
}

func (r *organizationDomainRepo) WithTx(tx pgx.Tx) OrganizationDomainRepository {
	return &organizationDomainRepo{db: tx}
}

func (r *organizationDomainRepo) Create(ctx context.Context, domain *models.OrganizationDomain) error {
	query := `
		INSERT INTO organization_domains (id, organization_id, domain)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, domain.ID, domain.OrganizationID, domain.Domain)
	return err
}

func (r *organizationDomainRepo) GetByDomain(ctx context.Context, domain string) (*models.OrganizationDomain, error) {
	d := &models.OrganizationDomain{}
	query := `
		SELECT id, organization_id, domain
		FROM organization_domains
		WHERE domain = $1
	`
	err := r.db.QueryRow(ctx, query, domain).Scan(&d.ID, &d.OrganizationID, &d.Domain)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *organizationDomainRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.OrganizationDomain, error) {
	query := `
		SELECT id, organization_id, domain
		FROM organization_domains
		WHERE organization_id = $1
		ORDER BY domain ASC
	`
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var domains []*models.OrganizationDomain
	for rows.Next() {
		d := &models.OrganizationDomain{}
		if err := rows.Scan(&d.ID, &d.OrganizationID, &d.Domain); err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

func (r *organizationDomainRepo) Delete(ctx context.Context, organizationID uuid.UUID, domain string) error {
	query := `DELETE FROM organization_domains WHERE organization_id = $1 AND domain = $2`
	tag, err := r.db.Exec(ctx, query, organizationID, domain)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
