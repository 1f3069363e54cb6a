package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

// LifecycleHandlers exposes the asset state transitions and history views.
type LifecycleHandlers struct {
	lifecycleSvc services.LifecycleService
}

func NewLifecycleHandlers(lifecycleSvc services.LifecycleService) *LifecycleHandlers {
	return &LifecycleHandlers{lifecycleSvc: lifecycleSvc}
}

func (h *LifecycleHandlers) AssignAsset(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}

	var req services.AssignAssetRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	req.AssetID = assetID

	assignment, err := h.lifecycleSvc.AssignAsset(ctx, organizationID, userID, &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, assignment)
}

func (h *LifecycleHandlers) ReturnAsset(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req services.ReturnAssetRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	req.AssetID = assetID

	ret, err := h.lifecycleSvc.ReturnAsset(ctx, organizationID, &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, ret)
}

func (h *LifecycleHandlers) RetireAsset(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req services.RetireAssetRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	req.AssetID = assetID

	retire, err := h.lifecycleSvc.RetireAsset(ctx, organizationID, &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, retire)
}

func (h *LifecycleHandlers) StartMaintenance(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req services.MaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	req.AssetID = assetID

	maintenance, err := h.lifecycleSvc.StartMaintenance(ctx, organizationID, &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, maintenance)
}

func (h *LifecycleHandlers) CompleteMaintenance(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	if err := h.lifecycleSvc.CompleteMaintenance(ctx, organizationID, assetID); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "maintenance completed"})
}

func (h *LifecycleHandlers) AssignmentHistory(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	history, err := h.lifecycleSvc.AssignmentHistory(ctx, organizationID, assetID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, history)
}

func (h *LifecycleHandlers) MaintenanceHistory(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	assetID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	history, err := h.lifecycleSvc.MaintenanceHistory(ctx, organizationID, assetID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, history)
}

// MyAssets lists the caller's currently assigned assets.
func (h *LifecycleHandlers) MyAssets(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}
	assignments, err := h.lifecycleSvc.OpenAssignmentsForUser(ctx, userID)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, assignments)
}
