package middleware

import (
	"context"
	"errors"
	"net/http"

	"assetra/internal/common"
	"assetra/internal/services"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and loads the caller's identity
// into the request context. Revoked tokens are rejected via the blacklist
// check inside ValidateToken.
func JWTMiddleware(tokenSvc services.TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := tokenSvc.ValidateToken(c.Request().Context(), auth)
			if err != nil {
				return nil, err
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return nil, errors.New("invalid subject in token")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			ctx = context.WithValue(ctx, common.RoleKey, common.Role(claims.Role))
			c.SetRequest(c.Request().WithContext(ctx))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.FailStatus(c, http.StatusUnauthorized, "invalid or missing token")
		},
	})
}
