package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetTypeRepository interface {
	Create(ctx context.Context, assetType *models.AssetType) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetType, error)
	Update(ctx context.Context, assetType *models.AssetType) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetType, error)
}

type assetTypeRepo struct {
	db Database
}

func NewAssetTypeRepo(db Database) AssetTypeRepository {
	return &assetTypeRepo{db: db}
}

func (r *assetTypeRepo) Create(ctx context.Context, assetType *models.AssetType) error {
	query := `
		INSERT INTO asset_types (id, organization_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, assetType.ID, assetType.OrganizationID, assetType.Name, assetType.Description)
	return err
}

func (r *assetTypeRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetType, error) {
	assetType := &models.AssetType{}
	query := `
		SELECT id, organization_id, name, description, created_at, updated_at
		FROM asset_types
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&assetType.ID, &assetType.OrganizationID,
		&assetType.Name, &assetType.Description, &assetType.CreatedAt, &assetType.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return assetType, nil
}

func (r *assetTypeRepo) Update(ctx context.Context, assetType *models.AssetType) error {
	query := `
		UPDATE asset_types
		SET name = $1, description = $2, updated_at = NOW()
		WHERE organization_id = $3 AND id = $4
	`
	tag, err := r.db.Exec(ctx, query, assetType.Name, assetType.Description, assetType.OrganizationID, assetType.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *assetTypeRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM asset_types WHERE organization_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, organizationID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *assetTypeRepo) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetType, error) {
	query := `
		SELECT id, organization_id, name, description, created_at, updated_at
		FROM asset_types
		WHERE organization_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.AssetType
	for rows.Next() {
		assetType := &models.AssetType{}
		if err := rows.Scan(&assetType.ID, &assetType.OrganizationID, &assetType.Name, &assetType.Description,
			&assetType.CreatedAt, &assetType.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, assetType)
	}
	return types, rows.Err()
}
