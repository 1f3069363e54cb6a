package repositories

import (
	"context"
	"errors"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AssetRepository interface {
	WithTx(tx pgx.Tx) AssetRepository
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error)
	// GetForUpdate reads the asset row with a row-level lock so a lifecycle
	// transition's read-then-write is atomic. Call inside a transaction.
	GetForUpdate(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, statusName string) error
	SetImageObject(ctx context.Context, organizationID, id uuid.UUID, objectName string) error
	List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Asset, error)
	ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error)
	CountByCategory(ctx context.Context, organizationID, categoryID uuid.UUID) (int, error)
	CountByType(ctx context.Context, organizationID, typeID uuid.UUID) (int, error)
	CountByVendor(ctx context.Context, organizationID, vendorID uuid.UUID) (int, error)
}

type assetRepo struct {
	db Database
}

func NewAssetRepo(db Database) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) WithTx(tx pgx.Tx) AssetRepository {
	return &assetRepo{db: tx}
}

const assetColumns = `a.id, a.organization_id, a.name, a.description, a.purchase_date, a.purchase_price,
		       a.serial_number, a.asset_identification_number, a.manufacturer, a.model,
		       a.category_relevant_fields_data, a.asset_category_id, a.asset_type_id, a.vendor_id,
		       a.asset_status_id, s.name, a.image_object, a.created_at, a.updated_at`

func scanAsset(row pgx.Row) (*models.Asset, error) {
	asset := &models.Asset{}
	err := row.Scan(&asset.ID, &asset.OrganizationID, &asset.Name, &asset.Description,
		&asset.PurchaseDate, &asset.PurchasePrice, &asset.SerialNumber, &asset.AssetIdentificationNumber,
		&asset.Manufacturer, &asset.Model, &asset.CategoryRelevantFields,
		&asset.AssetCategoryID, &asset.AssetTypeID, &asset.VendorID,
		&asset.AssetStatusID, &asset.Status, &asset.ImageObject, &asset.CreatedAt, &asset.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset) error {
	query := `
		INSERT INTO assets (id, organization_id, name, description, purchase_date, purchase_price,
			serial_number, asset_identification_number, manufacturer, model,
			category_relevant_fields_data, asset_category_id, asset_type_id, vendor_id,
			asset_status_id, image_object, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			(SELECT id FROM asset_statuses WHERE name = $15), $16, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, asset.ID, asset.OrganizationID, asset.Name, asset.Description,
		asset.PurchaseDate, asset.PurchasePrice, asset.SerialNumber, asset.AssetIdentificationNumber,
		asset.Manufacturer, asset.Model, asset.CategoryRelevantFields,
		asset.AssetCategoryID, asset.AssetTypeID, asset.VendorID, models.StatusAvailable, asset.ImageObject)
	return err
}

func (r *assetRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets a
		JOIN asset_statuses s ON s.id = a.asset_status_id
		WHERE a.organization_id = $1 AND a.id = $2
	`
	return scanAsset(r.db.QueryRow(ctx, query, organizationID, id))
}

func (r *assetRepo) GetForUpdate(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets a
		JOIN asset_statuses s ON s.id = a.asset_status_id
		WHERE a.organization_id = $1 AND a.id = $2
		FOR UPDATE OF a
	`
	return scanAsset(r.db.QueryRow(ctx, query, organizationID, id))
}

func (r *assetRepo) Update(ctx context.Context, asset *models.Asset) error {
	query := `
		UPDATE assets
		SET name = $1, description = $2, purchase_date = $3, purchase_price = $4,
		    manufacturer = $5, model = $6, category_relevant_fields_data = $7,
		    asset_category_id = $8, asset_type_id = $9, vendor_id = $10, updated_at = NOW()
		WHERE organization_id = $11 AND id = $12
	`
	tag, err := r.db.Exec(ctx, query, asset.Name, asset.Description, asset.PurchaseDate, asset.PurchasePrice,
		asset.Manufacturer, asset.Model, asset.CategoryRelevantFields,
		asset.AssetCategoryID, asset.AssetTypeID, asset.VendorID, asset.OrganizationID, asset.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNothingUpdated
	}
	return nil
}

func (r *assetRepo) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, statusName string) error {
	query := `
		UPDATE assets
		SET asset_status_id = (SELECT id FROM asset_statuses WHERE name = $1), updated_at = NOW()
		WHERE organization_id = $2 AND id = $3
	`
	tag, err := r.db.Exec(ctx, query, statusName, organizationID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNothingUpdated
	}
	return nil
}

func (r *assetRepo) SetImageObject(ctx context.Context, organizationID, id uuid.UUID, objectName string) error {
	query := `
		UPDATE assets
		SET image_object = $1, updated_at = NOW()
		WHERE organization_id = $2 AND id = $3
	`
	tag, err := r.db.Exec(ctx, query, objectName, organizationID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *assetRepo) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets a
		JOIN asset_statuses s ON s.id = a.asset_status_id
		WHERE a.organization_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *assetRepo) ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM assets WHERE asset_identification_number = $1)`
	err := r.db.QueryRow(ctx, query, identificationNumber).Scan(&exists)
	return exists, err
}

func (r *assetRepo) CountByCategory(ctx context.Context, organizationID, categoryID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM assets WHERE organization_id = $1 AND asset_category_id = $2`
	err := r.db.QueryRow(ctx, query, organizationID, categoryID).Scan(&count)
	return count, err
}

func (r *assetRepo) CountByType(ctx context.Context, organizationID, typeID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM assets WHERE organization_id = $1 AND asset_type_id = $2`
	err := r.db.QueryRow(ctx, query, organizationID, typeID).Scan(&count)
	return count, err
}

func (r *assetRepo) CountByVendor(ctx context.Context, organizationID, vendorID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM assets WHERE organization_id = $1 AND vendor_id = $2`
	err := r.db.QueryRow(ctx, query, organizationID, vendorID).Scan(&count)
	return count, err
}
