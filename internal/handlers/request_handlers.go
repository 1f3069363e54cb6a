package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

// RequestHandlers exposes the asset request queue.
type RequestHandlers struct {
	requestSvc services.RequestService
}

func NewRequestHandlers(requestSvc services.RequestService) *RequestHandlers {
	return &RequestHandlers{requestSvc: requestSvc}
}

type submitRequestBody struct {
	Description string `json:"request_description"`
}

func (h *RequestHandlers) SubmitRequest(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}

	var body submitRequestBody
	if err := c.Bind(&body); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	request, err := h.requestSvc.SubmitRequest(ctx, organizationID, userID, body.Description)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, request)
}

type processRequestBody struct {
	Action string `json:"action"`
}

// ProcessRequest approves or rejects a pending request.
func (h *RequestHandlers) ProcessRequest(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	requestID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	var body processRequestBody
	if err := c.Bind(&body); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	request, err := h.requestSvc.ProcessRequest(ctx, organizationID, &services.ProcessRequestInput{
		RequestID: requestID,
		Action:    body.Action,
	})
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, request)
}

func (h *RequestHandlers) CancelRequest(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}
	requestID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}

	request, err := h.requestSvc.CancelRequest(ctx, organizationID, userID, requestID)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, request)
}

func (h *RequestHandlers) GetRequest(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	requestID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.Fail(c, err)
	}
	request, err := h.requestSvc.GetRequest(ctx, organizationID, requestID)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, request)
}

// ListRequests lists all requests in the organization (manager view).
func (h *RequestHandlers) ListRequests(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	requests, err := h.requestSvc.ListRequests(ctx, organizationID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, requests)
}

// ListMyRequests lists the caller's own requests.
func (h *RequestHandlers) ListMyRequests(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.FailStatus(c, http.StatusUnauthorized, "not authenticated")
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	requests, err := h.requestSvc.ListMyRequests(ctx, organizationID, userID, req.Limit, req.Offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, requests)
}
