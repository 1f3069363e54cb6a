package handlers

import (
	"net/http"

	"assetra/internal/common"
	"assetra/internal/repositories"

	"github.com/labstack/echo/v4"
)

type AuditLogsHandlers struct {
	auditRepo repositories.AuditLogsRepository
}

func NewAuditLogsHandlers(auditRepo repositories.AuditLogsRepository) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditRepo: auditRepo}
}

// ListAuditLogs returns the organization's audit trail, newest first.
func (h *AuditLogsHandlers) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()
	organizationID, ok := common.GetOrganizationIDFromContext(ctx)
	if !ok {
		return common.Fail(c, common.ErrNoActiveOrganization)
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)
	entries, err := h.auditRepo.ListByOrganization(ctx, organizationID, limit, offset)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, entries)
}
