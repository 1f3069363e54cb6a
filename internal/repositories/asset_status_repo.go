package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/jackc/pgx/v5"
)

type AssetStatusRepository interface {
	GetByName(ctx context.Context, name string) (*models.AssetStatus, error)
	List(ctx context.Context) ([]*models.AssetStatus, error)
}

type assetStatusRepo struct {
	db Database
}

func NewAssetStatusRepo(db Database) AssetStatusRepository {
	return &assetStatusRepo{db: db}
}

func (r *assetStatusRepo) GetByName(ctx context.Context, name string) (*models.AssetStatus, error) {
	status := &models.AssetStatus{}
	query := `SELECT id, name FROM asset_statuses WHERE name = $1`
	err := r.db.QueryRow(ctx, query, name).Scan(&status.ID, &status.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (r *assetStatusRepo) List(ctx context.Context) ([]*models.AssetStatus, error) {
	query := `SELECT id, name FROM asset_statuses ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.AssetStatus
	for rows.Next() {
		status := &models.AssetStatus{}
		if err := rows.Scan(&status.ID, &status.Name); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}
