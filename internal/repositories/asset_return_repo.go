package repositories

import (
	"context"

	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetReturnRepository interface {
	WithTx(tx pgx.Tx) AssetReturnRepository
	Create(ctx context.Context, ret *models.AssetReturn) error
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*models.AssetReturn, error)
}

type assetReturnRepo struct {
	db Database
}

func NewAssetReturnRepo(db Database) AssetReturnRepository {
	return &assetReturnRepo{db: db}
}

func (r *assetReturnRepo) WithTx(tx pgx.Tx) AssetReturnRepository {
	return &assetReturnRepo{db: tx}
}

func (r *assetReturnRepo) Create(ctx context.Context, ret *models.AssetReturn) error {
	query := `
		INSERT INTO asset_returns (id, asset_assignment_id, returned_date, return_condition, notes)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, ret.ID, ret.AssetAssignmentID, ret.ReturnedDate, ret.ReturnCondition, ret.Notes)
	return err
}

func (r *assetReturnRepo) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*models.AssetReturn, error) {
	query := `
		SELECT id, asset_assignment_id, returned_date, return_condition, notes
		FROM asset_returns
		WHERE asset_assignment_id = $1
		ORDER BY returned_date DESC
	`
	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []*models.AssetReturn
	for rows.Next() {
		ret := &models.AssetReturn{}
		if err := rows.Scan(&ret.ID, &ret.AssetAssignmentID, &ret.ReturnedDate, &ret.ReturnCondition, &ret.Notes); err != nil {
			return nil, err
		}
		returns = append(returns, ret)
	}
	return returns, rows.Err()
}
