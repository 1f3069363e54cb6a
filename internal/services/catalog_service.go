package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
)

// CatalogService manages the organization-scoped reference data (categories,
// types, vendors) and the assets that point at them. Reference deletion is
// rejected while assets still use the row; asset writes are checked for
// tenant-consistent foreign keys.
type CatalogService interface {
	CreateCategory(ctx context.Context, category *models.AssetCategory) error
	UpdateCategory(ctx context.Context, category *models.AssetCategory) error
	DeleteCategory(ctx context.Context, organizationID, id uuid.UUID) error
	GetCategory(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetCategory, error)
	ListCategories(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetCategory, error)

	CreateAssetType(ctx context.Context, assetType *models.AssetType) error
	UpdateAssetType(ctx context.Context, assetType *models.AssetType) error
	DeleteAssetType(ctx context.Context, organizationID, id uuid.UUID) error
	ListAssetTypes(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetType, error)

	CreateVendor(ctx context.Context, vendor *models.Vendor) error
	UpdateVendor(ctx context.Context, vendor *models.Vendor) error
	DeleteVendor(ctx context.Context, organizationID, id uuid.UUID) error
	ListVendors(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Vendor, error)

	ListAssetStatuses(ctx context.Context) ([]*models.AssetStatus, error)

	CreateAsset(ctx context.Context, asset *models.Asset) error
	UpdateAsset(ctx context.Context, organizationID, id uuid.UUID, patch *models.AssetPatch) (*models.Asset, error)
	GetAsset(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error)
	ListAssets(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Asset, error)

	AttachAssetImage(ctx context.Context, organizationID, id uuid.UUID, reader io.Reader, size int64) error
	AssetImageURL(ctx context.Context, organizationID, id uuid.UUID) (string, error)
}

type catalogService struct {
	categoryRepo repositories.AssetCategoryRepository
	typeRepo     repositories.AssetTypeRepository
	vendorRepo   repositories.VendorRepository
	assetRepo    repositories.AssetRepository
	statusRepo   repositories.AssetStatusRepository
	storageSvc   StorageService
}

func NewCatalogService(categoryRepo repositories.AssetCategoryRepository, typeRepo repositories.AssetTypeRepository,
	vendorRepo repositories.VendorRepository, assetRepo repositories.AssetRepository,
	statusRepo repositories.AssetStatusRepository, storageSvc StorageService) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		typeRepo:     typeRepo,
		vendorRepo:   vendorRepo,
		assetRepo:    assetRepo,
		statusRepo:   statusRepo,
		storageSvc:   storageSvc,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, category *models.AssetCategory) error {
	if err := common.ValidateRequiredString(category.Name, "name"); err != nil {
		return err
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *catalogService) UpdateCategory(ctx context.Context, category *models.AssetCategory) error {
	if err := common.ValidateRequiredString(category.Name, "name"); err != nil {
		return err
	}
	return s.categoryRepo.Update(ctx, category)
}

// DeleteCategory rejects deletion while any asset references the category.
// The guard runs in the application layer so the request fails instead of
// cascading.
func (s *catalogService) DeleteCategory(ctx context.Context, organizationID, id uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}
	count, err := s.assetRepo.CountByCategory(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category is in use by %d asset(s)", common.ErrForbidden, count)
	}
	return s.categoryRepo.Delete(ctx, organizationID, id)
}

func (s *catalogService) GetCategory(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetCategory, error) {
	return s.categoryRepo.GetByID(ctx, organizationID, id)
}

func (s *catalogService) ListCategories(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetCategory, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.categoryRepo.List(ctx, organizationID, limit, offset)
}

func (s *catalogService) CreateAssetType(ctx context.Context, assetType *models.AssetType) error {
	if err := common.ValidateRequiredString(assetType.Name, "name"); err != nil {
		return err
	}
	if assetType.ID == uuid.Nil {
		assetType.ID = uuid.New()
	}
	return s.typeRepo.Create(ctx, assetType)
}

func (s *catalogService) UpdateAssetType(ctx context.Context, assetType *models.AssetType) error {
	if err := common.ValidateRequiredString(assetType.Name, "name"); err != nil {
		return err
	}
	return s.typeRepo.Update(ctx, assetType)
}

func (s *catalogService) DeleteAssetType(ctx context.Context, organizationID, id uuid.UUID) error {
	if _, err := s.typeRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}
	count, err := s.assetRepo.CountByType(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: asset type is in use by %d asset(s)", common.ErrForbidden, count)
	}
	return s.typeRepo.Delete(ctx, organizationID, id)
}

func (s *catalogService) ListAssetTypes(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetType, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.typeRepo.List(ctx, organizationID, limit, offset)
}

func (s *catalogService) CreateVendor(ctx context.Context, vendor *models.Vendor) error {
	if err := common.ValidateRequiredString(vendor.Name, "name"); err != nil {
		return err
	}
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	return s.vendorRepo.Create(ctx, vendor)
}

func (s *catalogService) UpdateVendor(ctx context.Context, vendor *models.Vendor) error {
	if err := common.ValidateRequiredString(vendor.Name, "name"); err != nil {
		return err
	}
	return s.vendorRepo.Update(ctx, vendor)
}

func (s *catalogService) DeleteVendor(ctx context.Context, organizationID, id uuid.UUID) error {
	if _, err := s.vendorRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}
	count, err := s.assetRepo.CountByVendor(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: vendor is in use by %d asset(s)", common.ErrForbidden, count)
	}
	return s.vendorRepo.Delete(ctx, organizationID, id)
}

func (s *catalogService) ListVendors(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Vendor, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.vendorRepo.List(ctx, organizationID, limit, offset)
}

// ListAssetStatuses returns the seeded status enumeration.
func (s *catalogService) ListAssetStatuses(ctx context.Context) ([]*models.AssetStatus, error) {
	return s.statusRepo.List(ctx)
}

func (s *catalogService) CreateAsset(ctx context.Context, asset *models.Asset) error {
	if err := common.ValidateRequiredString(asset.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(asset.SerialNumber, "serial_number"); err != nil {
		return err
	}
	if asset.AssetIdentificationNumber != nil && *asset.AssetIdentificationNumber != "" {
		exists, err := s.assetRepo.ExistsByIdentificationNumber(ctx, *asset.AssetIdentificationNumber)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: asset identification number %q already in use", common.ErrConflict, *asset.AssetIdentificationNumber)
		}
	}
	if err := s.validateScopedReferences(ctx, asset.OrganizationID, asset.AssetCategoryID, asset.AssetTypeID, asset.VendorID); err != nil {
		return err
	}
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	return s.assetRepo.Create(ctx, asset)
}

func (s *catalogService) UpdateAsset(ctx context.Context, organizationID, id uuid.UUID, patch *models.AssetPatch) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := common.ValidateRequiredString(*patch.Name, "name"); err != nil {
			return nil, err
		}
		asset.Name = *patch.Name
	}
	if patch.Description != nil {
		asset.Description = *patch.Description
	}
	if patch.PurchaseDate != nil {
		asset.PurchaseDate = patch.PurchaseDate
	}
	if patch.PurchasePrice != nil {
		asset.PurchasePrice = patch.PurchasePrice
	}
	if patch.Manufacturer != nil {
		asset.Manufacturer = *patch.Manufacturer
	}
	if patch.Model != nil {
		asset.Model = *patch.Model
	}
	if patch.CategoryRelevantFields != nil {
		asset.CategoryRelevantFields = *patch.CategoryRelevantFields
	}
	if patch.AssetCategoryID != nil {
		asset.AssetCategoryID = *patch.AssetCategoryID
	}
	if patch.AssetTypeID != nil {
		asset.AssetTypeID = *patch.AssetTypeID
	}
	if patch.VendorID != nil {
		asset.VendorID = *patch.VendorID
	}

	if err := s.validateScopedReferences(ctx, organizationID, asset.AssetCategoryID, asset.AssetTypeID, asset.VendorID); err != nil {
		return nil, err
	}
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *catalogService) GetAsset(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error) {
	return s.assetRepo.GetByID(ctx, organizationID, id)
}

func (s *catalogService) ListAssets(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Asset, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.assetRepo.List(ctx, organizationID, limit, offset)
}

func (s *catalogService) AttachAssetImage(ctx context.Context, organizationID, id uuid.UUID, reader io.Reader, size int64) error {
	if _, err := s.assetRepo.GetByID(ctx, organizationID, id); err != nil {
		return err
	}
	objectName := fmt.Sprintf("%s/%s-%d", organizationID, id, time.Now().Unix())
	if err := s.storageSvc.EnsureBucket(ctx, assetImageBucket); err != nil {
		return err
	}
	if err := s.storageSvc.UploadObject(ctx, assetImageBucket, objectName, reader, size); err != nil {
		return err
	}
	return s.assetRepo.SetImageObject(ctx, organizationID, id, objectName)
}

func (s *catalogService) AssetImageURL(ctx context.Context, organizationID, id uuid.UUID) (string, error) {
	asset, err := s.assetRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		return "", err
	}
	if asset.ImageObject == nil || *asset.ImageObject == "" {
		return "", common.ErrNotFound
	}
	return s.storageSvc.PresignedURL(ctx, assetImageBucket, *asset.ImageObject, 15*time.Minute)
}

// validateScopedReferences confirms category, type and vendor all belong to
// the asset's organization. A cross-tenant id reads as NotFound here, which
// also avoids leaking other tenants' rows.
func (s *catalogService) validateScopedReferences(ctx context.Context, organizationID, categoryID, typeID, vendorID uuid.UUID) error {
	if _, err := s.categoryRepo.GetByID(ctx, organizationID, categoryID); err != nil {
		return scopedReferenceError("asset_category_id", err)
	}
	if _, err := s.typeRepo.GetByID(ctx, organizationID, typeID); err != nil {
		return scopedReferenceError("asset_type_id", err)
	}
	if _, err := s.vendorRepo.GetByID(ctx, organizationID, vendorID); err != nil {
		return scopedReferenceError("vendor_id", err)
	}
	return nil
}

func scopedReferenceError(field string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("%w: %s does not reference a record in this organization", common.ErrValidation, field)
	}
	return err
}
