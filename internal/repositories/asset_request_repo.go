package repositories

import (
	"context"
	"errors"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetRequestRepository interface {
	WithTx(tx pgx.Tx) AssetRequestRepository
	Create(ctx context.Context, request *models.AssetRequest) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error)
	// GetForUpdate locks the request row so two concurrent status changes
	// cannot both read PENDING. Call inside a transaction.
	GetForUpdate(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error)
	UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) error
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error)
	ListByRequester(ctx context.Context, organizationID, requesterID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.AssetRequest, error)
}

type assetRequestRepo struct {
	db Database
}

func NewAssetRequestRepo(db Database) AssetRequestRepository {
	return &assetRequestRepo{db: db}
}

func (r *assetRequestRepo) WithTx(tx pgx.Tx) AssetRequestRepository {
	return &assetRequestRepo{db: tx}
}

const requestColumns = `id, requester_id, organization_id, request_description, request_status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.AssetRequest, error) {
	req := &models.AssetRequest{}
	err := row.Scan(&req.ID, &req.RequesterID, &req.OrganizationID, &req.Description,
		&req.Status, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *assetRequestRepo) Create(ctx context.Context, request *models.AssetRequest) error {
	query := `
		INSERT INTO asset_requests (id, requester_id, organization_id, request_description, request_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.RequesterID, request.OrganizationID,
		request.Description, request.Status)
	return err
}

func (r *assetRequestRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM asset_requests WHERE organization_id = $1 AND id = $2`
	return scanRequest(r.db.QueryRow(ctx, query, organizationID, id))
}

func (r *assetRequestRepo) GetForUpdate(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM asset_requests WHERE organization_id = $1 AND id = $2 FOR UPDATE`
	return scanRequest(r.db.QueryRow(ctx, query, organizationID, id))
}

func (r *assetRequestRepo) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) error {
	query := `
		UPDATE asset_requests
		SET request_status = $1, updated_at = NOW()
		WHERE organization_id = $2 AND id = $3
	`
	tag, err := r.db.Exec(ctx, query, status, organizationID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNothingUpdated
	}
	return nil
}

func (r *assetRequestRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM asset_requests
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *assetRequestRepo) ListByRequester(ctx context.Context, organizationID, requesterID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM asset_requests
		WHERE organization_id = $1 AND requester_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, organizationID, requesterID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *assetRequestRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.AssetRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM asset_requests
		WHERE request_status = $1 AND created_at < $2
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, models.RequestPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func scanRequests(rows pgx.Rows) ([]*models.AssetRequest, error) {
	var requests []*models.AssetRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
