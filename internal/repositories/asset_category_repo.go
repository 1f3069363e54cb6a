package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetCategoryRepository interface {
	Create(ctx context.Context, category *models.AssetCategory) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetCategory, error)
	Update(ctx context.Context, category *models.AssetCategory) error
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetCategory, error)
}

type assetCategoryRepo struct {
	db Database
}

func NewAssetCategoryRepo(db Database) AssetCategoryRepository {
	return &assetCategoryRepo{db: db}
}

func (r *assetCategoryRepo) Create(ctx context.Context, category *models.AssetCategory) error {
	query := `
		INSERT INTO asset_categories (id, organization_id, name, description, relevant_input_fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.OrganizationID, category.Name,
		category.Description, category.RelevantInputFields)
	return err
}

func (r *assetCategoryRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetCategory, error) {
	category := &models.AssetCategory{}
	query := `
		SELECT id, organization_id, name, description, relevant_input_fields, created_at, updated_at
		FROM asset_categories
		WHERE organization_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, organizationID, id).Scan(&category.ID, &category.OrganizationID,
		&category.Name, &category.Description, &category.RelevantInputFields, &category.CreatedAt, &category.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *assetCategoryRepo) Update(ctx context.Context, category *models.AssetCategory) error {
	query := `
		UPDATE asset_categories
		SET name = $1, description = $2, relevant_input_fields = $3, updated_at = NOW()
		WHERE organization_id = $4 AND id = $5
	`
	tag, err := r.db.Exec(ctx, query, category.Name, category.Description, category.RelevantInputFields,
		category.OrganizationID, category.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *assetCategoryRepo) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	query := `DELETE FROM asset_categories WHERE organization_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, organizationID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *assetCategoryRepo) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetCategory, error) {
	query := `
		SELECT id, organization_id, name, description, relevant_input_fields, created_at, updated_at
		FROM asset_categories
		WHERE organization_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.AssetCategory
	for rows.Next() {
		category := &models.AssetCategory{}
		if err := rows.Scan(&category.ID, &category.OrganizationID, &category.Name, &category.Description,
			&category.RelevantInputFields, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
