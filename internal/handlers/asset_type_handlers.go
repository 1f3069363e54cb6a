package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

type AssetTypeHandlers struct {
	catalogSvc services.CatalogService
}

func NewAssetTypeHandlers(catalogSvc services.CatalogService) *AssetTypeHandlers {
	return &AssetTypeHandlers{catalogSvc: catalogSvc}
}

type assetTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *AssetTypeHandlers) CreateAssetType(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req assetTypeRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}

	assetType := &models.AssetType{
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
	}
	if err := h.catalogSvc.CreateAssetType(ctx, assetType); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, assetType)
}

func (h *AssetTypeHandlers) UpdateAssetType(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var req assetTypeRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}

	assetType := &models.AssetType{
		ID:             id,
		OrganizationID: organizationID,
		Name:           req.Name,
		Description:    req.Description,
	}
	if err := h.catalogSvc.UpdateAssetType(ctx, assetType); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, assetType)
}

func (h *AssetTypeHandlers) DeleteAssetType(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	if err := h.catalogSvc.DeleteAssetType(ctx, organizationID, id); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "asset type deleted"})
}

func (h *AssetTypeHandlers) ListAssetTypes(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	types, err := h.catalogSvc.ListAssetTypes(ctx, organizationID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, types)
}
