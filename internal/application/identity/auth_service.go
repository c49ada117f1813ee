// Package identity authenticates the single dashboard administrator.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MinPasswordLength is checked before credentials are consulted
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "invalid email or password")
	ErrSessionExpired     = shared.NewDomainError("UNAUTHORIZED", "session has expired")
	ErrSessionInvalid     = shared.NewDomainError("UNAUTHORIZED", "invalid session")
	ErrSessionRevoked     = shared.NewDomainError("UNAUTHORIZED", "session has been signed out")
)

// LoginRecorder counts login attempts
type LoginRecorder interface {
	RecordLogin(ctx context.Context, success bool)
}

type nopLoginRecorder struct{}

func (nopLoginRecorder) RecordLogin(context.Context, bool) {}

// AuthService handles authentication operations
type AuthService struct {
	admin      config.AdminConfig
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	recorder   LoginRecorder
	logger     *zap.Logger
}

// AuthOption configures an AuthService
type AuthOption func(*AuthService)

// WithLoginRecorder sets the login attempt recorder
func WithLoginRecorder(r LoginRecorder) AuthOption {
	return func(s *AuthService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithAuthLogger sets the logger
func WithAuthLogger(l *zap.Logger) AuthOption {
	return func(s *AuthService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewAuthService creates a new authentication service
func NewAuthService(
	admin config.AdminConfig,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	opts ...AuthOption,
) *AuthService {
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	s := &AuthService{
		admin:      admin,
		hasher:     hasher,
		jwtService: jwtService,
		blacklist:  blacklist,
		recorder:   nopLoginRecorder{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckLoginInput applies the form checks that run before any credential
// lookup.
func CheckLoginInput(email, password string) error {
	verr := &content.ValidationError{}
	if strings.TrimSpace(email) == "" {
		verr.Missing = append(verr.Missing, "email")
	} else if !shared.IsEmail(strings.TrimSpace(email)) {
		verr.Invalid = append(verr.Invalid, content.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if password == "" {
		verr.Missing = append(verr.Missing, "password")
	} else if len(password) < MinPasswordLength {
		verr.Invalid = append(verr.Invalid, content.FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Login authenticates the admin and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := CheckLoginInput(input.Email, input.Password); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	s.logger.Info("Login attempt", zap.String("email", email), zap.String("ip", input.IP))

	if !s.verify(email, input.Password) {
		s.recorder.RecordLogin(ctx, false)
		s.logger.Warn("Invalid login attempt", zap.String("email", email), zap.String("ip", input.IP))
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(s.admin.Email)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.recorder.RecordLogin(ctx, true)
	s.logger.Info("Admin logged in", zap.String("email", s.admin.Email))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Email:                 s.admin.Email,
	}, nil
}

// verify runs the bcrypt comparison even for an unknown email so both
// failures take the same time.
func (s *AuthService) verify(email, password string) bool {
	if s.admin.PasswordHash == "" {
		return false
	}
	err := s.hasher.Compare(s.admin.PasswordHash, password)
	if err != nil && !errors.Is(err, auth.ErrPasswordMismatch) {
		s.logger.Error("Configured admin password hash is unusable", zap.Error(err))
	}
	return err == nil && strings.EqualFold(email, s.admin.Email)
}

// Authenticate validates an access token and rejects revoked sessions
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		// a blacklist outage must not lock the admin out
		s.logger.Warn("Token blacklist check failed", zap.Error(err))
		return nil
	}
	if revoked {
		return ErrSessionRevoked
	}
	return nil
}

// RefreshToken rotates a refresh token. The presented refresh token is
// revoked so it cannot be replayed.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	if !strings.EqualFold(claims.Email, s.admin.Email) {
		s.logger.Warn("Refresh token for unknown account", zap.String("email", claims.Email))
		return nil, ErrSessionInvalid
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(s.admin.Email)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to refresh token")
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Warn("Failed to revoke rotated refresh token", zap.Error(err))
	}

	s.logger.Info("Token refreshed", zap.String("email", claims.Email))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the given tokens until they would have expired. Tokens
// that no longer validate are ignored.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessToken != "" {
		if claims, err := s.jwtService.ValidateAccessToken(input.AccessToken); err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke access token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
			}
			s.logger.Info("Admin logged out", zap.String("email", claims.Email))
		}
	}
	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				return shared.NewDomainError("INTERNAL_ERROR", "Failed to sign out")
			}
		}
	}
	return nil
}

// AccessTokenTTL is the lifetime of a freshly issued access token
func (s *AuthService) AccessTokenTTL() int {
	return int(s.jwtService.GetAccessTokenExpiration().Seconds())
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return ErrSessionExpired
	default:
		return ErrSessionInvalid
	}
}
