package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetRetireRepository interface {
	WithTx(tx pgx.Tx) AssetRetireRepository
	Create(ctx context.Context, retire *models.AssetRetire) error
	GetByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetRetire, error)
}

type assetRetireRepo struct {
	db Database
}

func NewAssetRetireRepo(db Database) AssetRetireRepository {
	return &assetRetireRepo{db: db}
}

func (r *assetRetireRepo) WithTx(tx pgx.Tx) AssetRetireRepository {
	return &assetRetireRepo{db: tx}
}

func (r *assetRetireRepo) Create(ctx context.Context, retire *models.AssetRetire) error {
	query := `
		INSERT INTO asset_retires (id, asset_id, retired_on, retirement_reason)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, retire.ID, retire.AssetID, retire.RetiredOn, retire.RetirementReason)
	return err
}

func (r *assetRetireRepo) GetByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetRetire, error) {
	ret := &models.AssetRetire{}
	query := `
		SELECT id, asset_id, retired_on, retirement_reason
		FROM asset_retires
		WHERE asset_id = $1
	`
	err := r.db.QueryRow(ctx, query, assetID).Scan(&ret.ID, &ret.AssetID, &ret.RetiredOn, &ret.RetirementReason)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ret, nil
}
