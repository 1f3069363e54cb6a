package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserOrganizationRepository interface {
	WithTx(tx pgx.Tx) UserOrganizationRepository
	Create(ctx context.Context, membership *models.UserOrganization) error
	// GetActiveForUser resolves the membership joined against an active
	// organization. common.ErrNotFound when the user has none.
	GetActiveForUser(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error)
	GetMembership(ctx context.Context, organizationID, userID uuid.UUID) (*models.UserOrganization, error)
	UpdateRole(ctx context.Context, organizationID, userID uuid.UUID, role string) error
	ListMembers(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.UserOrganization, error)
}

type userOrganizationRepo struct {
	db Database
}

func NewUserOrganizationRepo(db Database) UserOrganizationRepository {
	return &userOrganizationRepo{db: db}
}

func (r *userOrganizationRepo) WithTx(tx pgx.Tx) UserOrganizationRepository {
	return &userOrganizationRepo{db: tx}
}

func (r *userOrganizationRepo) Create(ctx context.Context, membership *models.UserOrganization) error {
	query := `
		INSERT INTO user_organizations (id, user_id, organization_id, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, membership.ID, membership.UserID, membership.OrganizationID, membership.Role)
	return err
}

func (r *userOrganizationRepo) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error) {
	m := &models.UserOrganization{}
	query := `
		SELECT uo.id, uo.user_id, uo.organization_id, uo.role, uo.created_at
		FROM user_organizations uo
		JOIN organizations o ON o.id = uo.organization_id
		WHERE uo.user_id = $1 AND o.active = true
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *userOrganizationRepo) GetMembership(ctx context.Context, organizationID, userID uuid.UUID) (*models.UserOrganization, error) {
	m := &models.UserOrganization{}
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM user_organizations
		WHERE organization_id = $1 AND user_id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, userID).Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *userOrganizationRepo) UpdateRole(ctx context.Context, organizationID, userID uuid.UUID, role string) error {
	query := `
		UPDATE user_organizations
		SET role = $1
		WHERE organization_id = $2 AND user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, role, organizationID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *userOrganizationRepo) ListMembers(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.UserOrganization, error) {
	query := `
		SELECT id, user_id, organization_id, role, created_at
		FROM user_organizations
		WHERE organization_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.UserOrganization
	for rows.Next() {
		m := &models.UserOrganization{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.OrganizationID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
