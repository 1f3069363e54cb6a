package handlers

import (
	"net/http"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AssetHandlers covers asset CRUD and the image attachment endpoints.
type AssetHandlers struct {
	catalogSvc services.CatalogService
}

func NewAssetHandlers(catalogSvc services.CatalogService) *AssetHandlers {
	return &AssetHandlers{catalogSvc: catalogSvc}
}

type createAssetRequest struct {
	Name                      string    `json:"name"`
	Description               string    `json:"description"`
	PurchaseDate              string    `json:"purchase_date"`
	PurchasePrice             *float64  `json:"purchase_price"`
	SerialNumber              string    `json:"serial_number"`
	AssetIdentificationNumber *string   `json:"asset_identification_number"`
	Manufacturer              string    `json:"manufacturer"`
	Model                     string    `json:"model"`
	CategoryRelevantFields    string    `json:"category_relevant_fields_data"`
	AssetCategoryID           uuid.UUID `json:"asset_category_id"`
	AssetTypeID               uuid.UUID `json:"asset_type_id"`
	VendorID                  uuid.UUID `json:"vendor_id"`
}

func (h *AssetHandlers) CreateAsset(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req createAssetRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	if err := common.ValidateDateFormat(req.PurchaseDate, "purchase_date"); err != nil {
		return common.Fail(c, err)
	}

	asset := &models.Asset{
		OrganizationID:            organizationID,
		Name:                      req.Name,
		Description:               req.Description,
		PurchasePrice:             req.PurchasePrice,
		SerialNumber:              req.SerialNumber,
		AssetIdentificationNumber: req.AssetIdentificationNumber,
		Manufacturer:              req.Manufacturer,
		Model:                     req.Model,
		CategoryRelevantFields:    req.CategoryRelevantFields,
		AssetCategoryID:           req.AssetCategoryID,
		AssetTypeID:               req.AssetTypeID,
		VendorID:                  req.VendorID,
	}
	if req.PurchaseDate != "" {
		purchased, _ := time.Parse("2006-01-02", req.PurchaseDate)
		asset.PurchaseDate = &purchased
	}
	if err := h.catalogSvc.CreateAsset(ctx, asset); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, asset)
}

func (h *AssetHandlers) UpdateAsset(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var patch models.AssetPatch
	if err := c.Bind(&patch); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	asset, err := h.catalogSvc.UpdateAsset(ctx, organizationID, id, &patch)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, asset)
}

func (h *AssetHandlers) GetAsset(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	asset, err := h.catalogSvc.GetAsset(ctx, organizationID, id)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, asset)
}

func (h *AssetHandlers) ListAssets(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	assets, err := h.catalogSvc.ListAssets(ctx, organizationID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, assets)
}

// ListAssetStatuses returns the fixed status enumeration for UI pickers.
func (h *AssetHandlers) ListAssetStatuses(c echo.Context) error {
	statuses, err := h.catalogSvc.ListAssetStatuses(c.Request().Context())
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, statuses)
}

// UploadAssetImage stores the uploaded file in object storage and records the
// object name against the asset.
func (h *AssetHandlers) UploadAssetImage(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "failed to read uploaded file")
	}
	defer file.Close()

	if err := h.catalogSvc.AttachAssetImage(ctx, organizationID, id, file, fileHeader.Size); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetAssetImage returns a short-lived presigned URL for the asset's image.
func (h *AssetHandlers) GetAssetImage(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	url, err := h.catalogSvc.AssetImageURL(ctx, organizationID, id)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"url": url})
}
