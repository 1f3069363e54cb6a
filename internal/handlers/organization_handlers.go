package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

// OrganizationHandlers covers organization registration and owner-side
// administration: profile updates, domain management, member roles.
type OrganizationHandlers struct {
	tenantSvc services.TenantService
}

func NewOrganizationHandlers(tenantSvc services.TenantService) *OrganizationHandlers {
	return &OrganizationHandlers{tenantSvc: tenantSvc}
}

// CreateOrganization registers a new organization with the caller as owner.
// A user who already belongs to an active organization gets a conflict.
func (h *OrganizationHandlers) CreateOrganization(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}

	var req services.CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	info, err := h.tenantSvc.CreateOrganization(ctx, userID, &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, info)
}

func (h *OrganizationHandlers) GetMyOrganization(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	info, err := h.tenantSvc.GetOrganizationInfo(ctx, organizationID)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, info)
}

func (h *OrganizationHandlers) UpdateOrganization(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}

	var patch services.OrganizationPatch
	if err := c.Bind(&patch); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	info, err := h.tenantSvc.UpdateOrganization(ctx, userID, &patch)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, info)
}

// DeactivateOrganization soft-deletes the caller's organization. Data stays
// in place; the organization stops resolving for signups and requests.
func (h *OrganizationHandlers) DeactivateOrganization(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}
	if err := h.tenantSvc.DeactivateOrganization(ctx, userID); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "organization deactivated"})
}

type listMembersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *OrganizationHandlers) ListMembers(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listMembersRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	members, err := h.tenantSvc.ListMembers(ctx, organizationID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, members)
}

// AssignManager promotes an employee to asset manager.
func (h *OrganizationHandlers) AssignManager(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	memberID, err := common.ValidateUUID(c.Param("userID"), "userID")
	if err != nil {
		return common.Fail(c, err)
	}
	if err := h.tenantSvc.AssignManagerRole(ctx, organizationID, memberID); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "manager role assigned"})
}

// DismissManager demotes an asset manager back to employee.
func (h *OrganizationHandlers) DismissManager(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	memberID, err := common.ValidateUUID(c.Param("userID"), "userID")
	if err != nil {
		return common.Fail(c, err)
	}
	if err := h.tenantSvc.DismissManager(ctx, organizationID, memberID); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "manager role dismissed"})
}
