package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

type VendorHandlers struct {
	catalogSvc services.CatalogService
}

func NewVendorHandlers(catalogSvc services.CatalogService) *VendorHandlers {
	return &VendorHandlers{catalogSvc: catalogSvc}
}

type vendorRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

func (h *VendorHandlers) CreateVendor(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req vendorRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}

	vendor := &models.Vendor{
		OrganizationID: organizationID,
		Name:           req.Name,
		ContactInfo:    req.ContactInfo,
	}
	if err := h.catalogSvc.CreateVendor(ctx, vendor); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, vendor)
}

func (h *VendorHandlers) UpdateVendor(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var req vendorRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}

	vendor := &models.Vendor{
		ID:             id,
		OrganizationID: organizationID,
		Name:           req.Name,
		ContactInfo:    req.ContactInfo,
	}
	if err := h.catalogSvc.UpdateVendor(ctx, vendor); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, vendor)
}

func (h *VendorHandlers) DeleteVendor(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	if err := h.catalogSvc.DeleteVendor(ctx, organizationID, id); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "vendor deleted"})
}

func (h *VendorHandlers) ListVendors(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	vendors, err := h.catalogSvc.ListVendors(ctx, organizationID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, vendors)
}
