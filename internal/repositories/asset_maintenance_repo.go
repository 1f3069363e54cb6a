package repositories

import (
	"context"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetMaintenanceRepository interface {
	WithTx(tx pgx.Tx) AssetMaintenanceRepository
	Create(ctx context.Context, maintenance *models.AssetMaintenance) error
	// CloseOpen stamps completed_at on the asset's open maintenance records.
	CloseOpen(ctx context.Context, assetID uuid.UUID) error
	ListByAsset(ctx context.Context, assetID uuid.UUID, limit, offset int) ([]*models.AssetMaintenance, error)
}

type assetMaintenanceRepo struct {
	db Database
}

func NewAssetMaintenanceRepo(db Database) AssetMaintenanceRepository {
	return &assetMaintenanceRepo{db: db}
}

func (r *assetMaintenanceRepo) WithTx(tx pgx.Tx) AssetMaintenanceRepository {
	return &assetMaintenanceRepo{db: tx}
}

func (r *assetMaintenanceRepo) Create(ctx context.Context, maintenance *models.AssetMaintenance) error {
	query := `
		INSERT INTO asset_maintenances (id, asset_id, maintenance_date, description, completed_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, maintenance.ID, maintenance.AssetID, maintenance.MaintenanceDate,
		maintenance.Description, maintenance.CompletedAt)
	return err
}

func (r *assetMaintenanceRepo) CloseOpen(ctx context.Context, assetID uuid.UUID) error {
	query := `
		UPDATE asset_maintenances
		SET completed_at = NOW()
		WHERE asset_id = $1 AND completed_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, assetID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNothingUpdated
	}
	return nil
}

func (r *assetMaintenanceRepo) ListByAsset(ctx context.Context, assetID uuid.UUID, limit, offset int) ([]*models.AssetMaintenance, error) {
	query := `
		SELECT id, asset_id, maintenance_date, description, completed_at
		FROM asset_maintenances
		WHERE asset_id = $1
		ORDER BY maintenance_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, assetID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AssetMaintenance
	for rows.Next() {
		m := &models.AssetMaintenance{}
		if err := rows.Scan(&m.ID, &m.AssetID, &m.MaintenanceDate, &m.Description, &m.CompletedAt); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}
