package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetAssignmentRepository interface {
	WithTx(tx pgx.Tx) AssetAssignmentRepository
	Create(ctx context.Context, assignment *models.AssetAssignment) error
	// GetOpenByAsset returns the assignment with no return recorded yet.
	GetOpenByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetAssignment, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID, limit, offset int) ([]*models.AssetAssignment, error)
	ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]*models.AssetAssignment, error)
}

type assetAssignmentRepo struct {
	db Database
}

func NewAssetAssignmentRepo(db Database) AssetAssignmentRepository {
	return &assetAssignmentRepo{db: db}
}

func (r *assetAssignmentRepo) WithTx(tx pgx.Tx) AssetAssignmentRepository {
	return &assetAssignmentRepo{db: tx}
}

func (r *assetAssignmentRepo) Create(ctx context.Context, assignment *models.AssetAssignment) error {
	query := `
		INSERT INTO asset_assignments (id, asset_id, assigned_to_id, assigned_by_id, assigned_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, assignment.ID, assignment.AssetID, assignment.AssignedToID,
		assignment.AssignedByID, assignment.AssignedDate, assignment.Notes)
	return err
}

func (r *assetAssignmentRepo) GetOpenByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetAssignment, error) {
	a := &models.AssetAssignment{}
	query := `
		SELECT aa.id, aa.asset_id, aa.assigned_to_id, aa.assigned_by_id, aa.assigned_date, aa.notes
		FROM asset_assignments aa
		LEFT JOIN asset_returns ar ON ar.asset_assignment_id = aa.id
		WHERE aa.asset_id = $1 AND ar.id IS NULL
	`
	err := r.db.QueryRow(ctx, query, assetID).Scan(&a.ID, &a.AssetID, &a.AssignedToID, &a.AssignedByID, &a.AssignedDate, &a.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assetAssignmentRepo) ListByAsset(ctx context.Context, assetID uuid.UUID, limit, offset int) ([]*models.AssetAssignment, error) {
	query := `
		SELECT id, asset_id, assigned_to_id, assigned_by_id, assigned_date, notes
		FROM asset_assignments
		WHERE asset_id = $1
		ORDER BY assigned_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, assetID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func (r *assetAssignmentRepo) ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]*models.AssetAssignment, error) {
	query := `
		SELECT aa.id, aa.asset_id, aa.assigned_to_id, aa.assigned_by_id, aa.assigned_date, aa.notes
		FROM asset_assignments aa
		LEFT JOIN asset_returns ar ON ar.asset_assignment_id = aa.id
		WHERE aa.assigned_to_id = $1 AND ar.id IS NULL
		ORDER BY aa.assigned_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignments(rows)
}

func scanAssignments(rows pgx.Rows) ([]*models.AssetAssignment, error) {
	var assignments []*models.AssetAssignment
	for rows.Next() {
		a := &models.AssetAssignment{}
		if err := rows.Scan(&a.ID, &a.AssetID, &a.AssignedToID, &a.AssignedByID, &a.AssignedDate, &a.Notes); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
