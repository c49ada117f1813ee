package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/auth"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys and headers used by the session middleware
const (
	ClaimsKey     = "session_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
	// ConfirmHeader confirms a delete when the query flag is not used
	ConfirmHeader = "X-Confirm-Delete"
)

// SessionAuthenticator validates an access token
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
}

// AuthConfig configures RequireSession
type AuthConfig struct {
	Authenticator SessionAuthenticator
	// CookieName is checked when no Authorization header is sent
	CookieName string
	Logger     *zap.Logger
}

// TokenFromRequest returns the bearer token, or the session cookie value
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if header := c.GetHeader(AuthHeaderKey); header != "" {
		if !strings.HasPrefix(header, BearerPrefix) {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil {
			return v
		}
	}
	return ""
}

// RequireSession answers 401 unless the request carries a live admin session
func RequireSession(cfg AuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := TokenFromRequest(c, cfg.CookieName)
		if token == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.Authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("Session rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			code := dto.ErrCodeUnauthorized
			// every session error shares the UNAUTHORIZED code; compare identity
			if err == identity.ErrSessionExpired {
				code = dto.ErrCodeTokenExpired
			}
			abortUnauthorized(c, code, sessionMessage(err))
			return
		}

		c.Set(ClaimsKey, claims)
		ctx, _ := logger.WithAdmin(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "Authentication required"
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetClaims returns the session claims set by RequireSession
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
