package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles asset category reference data.
type CategoryHandlers struct {
	catalogSvc services.CatalogService
}

func NewCategoryHandlers(catalogSvc services.CatalogService) *CategoryHandlers {
	return &CategoryHandlers{catalogSvc: catalogSvc}
}

type createCategoryRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	RelevantInputFields string `json:"relevant_input_fields"`
}

func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}

	category := &models.AssetCategory{
		OrganizationID:      organizationID,
		Name:                req.Name,
		Description:         req.Description,
		RelevantInputFields: req.RelevantInputFields,
	}
	if err := h.catalogSvc.CreateCategory(ctx, category); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, category)
}

func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}

	category := &models.AssetCategory{
		ID:                  id,
		OrganizationID:      organizationID,
		Name:                req.Name,
		Description:         req.Description,
		RelevantInputFields: req.RelevantInputFields,
	}
	if err := h.catalogSvc.UpdateCategory(ctx, category); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, category)
}

func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	if err := h.catalogSvc.DeleteCategory(ctx, organizationID, id); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "category deleted"})
}

func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	category, err := h.catalogSvc.GetCategory(ctx, organizationID, id)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, category)
}

type listRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	categories, err := h.catalogSvc.ListCategories(ctx, organizationID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, categories)
}
