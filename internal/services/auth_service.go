package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SignupRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService covers signup, email confirmation, login and the password
// flows. Signup routes new users into an organization by their email domain;
// users whose domain matches nothing start without a membership and can
// register an organization of their own.
type AuthService interface {
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)
	ConfirmEmail(ctx context.Context, token string) error
	Login(ctx context.Context, req *LoginRequest) (*models.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo        repositories.UserRepository
	tenantSvc       TenantService
	tokenSvc        TokenService
	notificationSvc NotificationService
	baseURL         string
}

func NewAuthService(userRepo repositories.UserRepository, tenantSvc TenantService,
	tokenSvc TokenService, notificationSvc NotificationService, baseURL string) AuthService {
	return &authService{
		userRepo:        userRepo,
		tenantSvc:       tenantSvc,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		baseURL:         strings.TrimRight(baseURL, "/"),
	}
}

func (s *authService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", common.ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	domain := common.EmailDomain(email)
	if domain == "" {
		return nil, fmt.Errorf("%w: email address is malformed", common.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email is already registered", common.ErrForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Domain match routes the new user into the owning organization as an
	// employee. No match is not an error; the user simply has no membership.
	if org, err := s.tenantSvc.ResolveSignupTarget(ctx, domain); err == nil {
		if err := s.tenantSvc.AddMember(ctx, org.ID, user.ID, common.RoleEmployee); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	s.sendConfirmation(ctx, user)
	return user, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, token string) error {
	userID, err := s.tokenSvc.ResolveConfirmationToken(ctx, token)
	if err != nil {
		return err
	}
	// Repeat clicks surface ErrAlreadyConfirmed here rather than a dead link.
	return s.userRepo.ConfirmEmail(ctx, userID)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.EmailConfirmed {
		return nil, fmt.Errorf("%w: email address is not confirmed", common.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", common.ErrForbidden)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	userID, err := s.tokenSvc.RefreshTokens(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	return s.tokenSvc.RevokeToken(ctx, accessToken)
}

// ForgotPassword always succeeds for well-formed input so callers cannot
// probe which addresses exist.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	token, err := s.tokenSvc.IssueResetToken(ctx, user.ID)
	if err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.baseURL, token)
	if err := s.notificationSvc.SendPasswordResetEmail(ctx, user.Email, resetURL); err != nil {
		log.Printf("failed to send password reset email to %s: %v", user.Email, err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", common.ErrValidation)
	}
	userID, err := s.tokenSvc.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// issueTokens embeds the caller's current role, or an empty role when the
// user has no active membership yet.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.TokenResponse, error) {
	role := common.Role("")
	membership, err := s.tenantSvc.ResolveActiveMembership(ctx, user.ID)
	switch {
	case err == nil:
		role = common.Role(membership.Role)
	case errors.Is(err, common.ErrNoActiveOrganization):
	default:
		return nil, err
	}
	return s.tokenSvc.GenerateTokens(ctx, user.ID, user.Username, role)
}

func (s *authService) sendConfirmation(ctx context.Context, user *models.User) {
	token, err := s.tokenSvc.IssueConfirmationToken(ctx, user.ID)
	if err != nil {
		log.Printf("failed to issue confirmation token for %s: %v", user.Email, err)
		return
	}
	confirmURL := fmt.Sprintf("%s/auth/confirm-email?token=%s", s.baseURL, token)
	if err := s.notificationSvc.SendConfirmationEmail(ctx, user.Email, confirmURL); err != nil {
		log.Printf("failed to send confirmation email to %s: %v", user.Email, err)
	}
}
