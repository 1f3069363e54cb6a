package middleware

import (
	"log"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuditMiddleware records mutating requests against organization resources.
type AuditMiddleware struct {
	auditRepo repositories.AuditLogsRepository
}

func NewAuditMiddleware(auditRepo repositories.AuditLogsRepository) *AuditMiddleware {
	return &AuditMiddleware{auditRepo: auditRepo}
}

// AuditRequest logs POST/PUT/PATCH/DELETE requests after they complete.
// Reads are skipped; so are requests with no organization context. A failed
// write to the audit table never fails the request itself.
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			switch method {
			case "POST", "PUT", "PATCH", "DELETE":
			default:
				return err
			}

			ctx := c.Request().Context()
			organizationID, ok := common.GetOrganizationIDFromContext(ctx)
			if !ok {
				return err
			}
			userID, _ := common.GetUserIDFromContext(ctx)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			entry := &models.AuditLog{
				ID:             uuid.New(),
				OrganizationID: organizationID,
				UserID:         userID,
				Action:         method,
				Resource:       c.Path(),
				StatusCode:     status,
				CreatedAt:      time.Now(),
			}
			if logErr := m.auditRepo.Create(ctx, entry); logErr != nil {
				log.Printf("failed to write audit log for %s %s: %v", method, c.Path(), logErr)
			}
			return err
		}
	}
}
