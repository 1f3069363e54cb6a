package handlers

import (
	"net/http"
	"strings"

	"assetra/internal/common"
	"assetra/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers exposes signup, login and the token/password flows.
type AuthHandlers struct {
	authSvc services.AuthService
}

func NewAuthHandlers(authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// Signup registers a user. If the email domain belongs to a registered
// organization the user joins it as an employee.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	user, err := h.authSvc.Signup(c.Request().Context(), &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusCreated, user)
}

func (h *AuthHandlers) ConfirmEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return common.FailStatus(c, http.StatusBadRequest, "token is required")
	}
	if err := h.authSvc.ConfirmEmail(c.Request().Context(), token); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "email confirmed"})
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req services.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	tokens, err := h.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	if req.RefreshToken == "" {
		return common.FailStatus(c, http.StatusBadRequest, "refresh_token is required")
	}
	tokens, err := h.authSvc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, tokens)
}

// Logout blacklists the presented access token for its remaining lifetime.
func (h *AuthHandlers) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		return common.FailStatus(c, http.StatusUnauthorized, "missing token")
	}
	if err := h.authSvc.Logout(c.Request().Context(), token); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "logged out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	if req.Email == "" {
		return common.FailStatus(c, http.StatusBadRequest, "email is required")
	}
	if err := h.authSvc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "if the address exists, a reset email has been sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.FailStatus(c, http.StatusBadRequest, "invalid request format")
	}
	if req.Token == "" {
		return common.FailStatus(c, http.StatusBadRequest, "token is required")
	}
	if err := h.authSvc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return common.Fail(c, err)
	}
	return common.Respond(c, http.StatusOK, map[string]string{"message": "password updated"})
}
