package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"assetra/internal/caching"
	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates bearer tokens and manages the short-lived
// email-confirmation and password-reset tokens.
type TokenService interface {
	GenerateTokens(ctx context.Context, userID uuid.UUID, username string, role common.Role) (*models.TokenResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (uuid.UUID, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	RevokeToken(ctx context.Context, token string) error

	IssueConfirmationToken(ctx context.Context, userID uuid.UUID) (string, error)
	ResolveConfirmationToken(ctx context.Context, token string) (uuid.UUID, error)
	IssueResetToken(ctx context.Context, userID uuid.UUID) (string, error)
	ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error)
}

// TokenClaims are the JWT claims carried by an access token.
type TokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	TokenID  string `json:"token_id"`
	jwt.RegisteredClaims
}

type tokenService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	jwks       *keyfunc.JWKS // non-nil when an external identity provider publishes keys
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

// NewTokenService creates a token service signing with an HS256 secret. When
// jwksURL is non-empty, tokens are additionally accepted from the external
// identity provider publishing keys there.
func NewTokenService(cacheSvc caching.CacheService, jwtSecret, jwksURL string, tokenTTL, refreshTTL time.Duration) (TokenService, error) {
	s := &tokenService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval:  time.Hour,
			RefreshRateLimit: time.Minute,
			RefreshErrorHandler: func(err error) {
				log.Printf("JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
		}
		s.jwks = jwks
	}
	return s, nil
}

func (s *tokenService) GenerateTokens(ctx context.Context, userID uuid.UUID, username string, role common.Role) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		Username: username,
		Role:     string(role),
		TokenID:  tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "assetra-auth",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"assetra-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken := generateSecureToken()
	refreshKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	if err := s.cacheSvc.SetString(ctx, refreshKey, userID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       userID.String(),
		Role:         string(role),
		IssuedAt:     now,
	}, nil
}

// RefreshTokens validates a refresh token and returns the user it belongs to.
// The token is single use.
func (s *tokenService) RefreshTokens(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	key := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	userIDStr, err := s.cacheSvc.GetString(ctx, key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid refresh token", common.ErrUnauthorized)
	}
	if err := s.cacheSvc.Delete(ctx, key); err != nil {
		log.Printf("Failed to rotate refresh token: %v", err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: corrupt refresh token record", common.ErrUnauthorized)
	}
	return userID, nil
}

func (s *tokenService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFor)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: token validation failed", common.ErrUnauthorized)
	}

	if claims.TokenID != "" {
		blacklisted, err := s.cacheSvc.GetString(ctx, fmt.Sprintf("token_blacklist:%s", claims.TokenID))
		if err == nil && blacklisted != "" {
			return nil, fmt.Errorf("%w: token revoked", common.ErrUnauthorized)
		}
	}
	return claims, nil
}

// keyFor selects the verification key: JWKS when the token carries a key id
// and an external provider is configured, the local secret otherwise.
func (s *tokenService) keyFor(token *jwt.Token) (interface{}, error) {
	if s.jwks != nil {
		if _, hasKID := token.Header["kid"]; hasKID {
			return s.jwks.Keyfunc(token)
		}
	}
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
	}
	return s.jwtSecret, nil
}

func (s *tokenService) RevokeToken(ctx context.Context, token string) error {
	claims, err := s.ValidateToken(ctx, token)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.cacheSvc.SetString(ctx, fmt.Sprintf("token_blacklist:%s", claims.TokenID), "revoked", ttl)
}

func (s *tokenService) IssueConfirmationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.issueOneTimeToken(ctx, "confirm_email", userID, 24*time.Hour)
}

// ResolveConfirmationToken looks up the user a confirmation token was issued
// for. The token stays in the cache until it expires; the email_confirmed
// column is what makes confirmation single use, so a repeat click can still
// be answered with the already-confirmed state instead of a dead link.
func (s *tokenService) ResolveConfirmationToken(ctx context.Context, token string) (uuid.UUID, error) {
	return s.resolveOneTimeToken(ctx, "confirm_email", token)
}

func (s *tokenService) IssueResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.issueOneTimeToken(ctx, "reset_password", userID, time.Hour)
}

func (s *tokenService) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	return s.consumeOneTimeToken(ctx, "reset_password", token)
}

func (s *tokenService) issueOneTimeToken(ctx context.Context, kind string, userID uuid.UUID, ttl time.Duration) (string, error) {
	token := generateSecureToken()
	key := fmt.Sprintf("%s:%s", kind, hashToken(token))
	if err := s.cacheSvc.SetString(ctx, key, userID.String(), ttl); err != nil {
		return "", fmt.Errorf("failed to store %s token: %w", strings.ReplaceAll(kind, "_", " "), err)
	}
	return token, nil
}

func (s *tokenService) resolveOneTimeToken(ctx context.Context, kind, token string) (uuid.UUID, error) {
	key := fmt.Sprintf("%s:%s", kind, hashToken(token))
	userIDStr, err := s.cacheSvc.GetString(ctx, key)
	if err != nil {
		return uuid.Nil, common.ErrNotFound
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, common.ErrNotFound
	}
	return userID, nil
}

func (s *tokenService) consumeOneTimeToken(ctx context.Context, kind, token string) (uuid.UUID, error) {
	userID, err := s.resolveOneTimeToken(ctx, kind, token)
	if err != nil {
		return uuid.Nil, err
	}
	key := fmt.Sprintf("%s:%s", kind, hashToken(token))
	if err := s.cacheSvc.Delete(ctx, key); err != nil {
		log.Printf("Failed to delete one-time token: %v", err)
	}
	return userID, nil
}

// generateSecureToken generates a cryptographically secure random token.
func generateSecureToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// hashToken creates a SHA-256 hash of the token for secure storage.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
