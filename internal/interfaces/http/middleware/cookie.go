package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/infrastructure/config"
)

// SetSessionCookie stores the access token in the dashboard cookie
func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, token string, maxAge int) {
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(cfg.Name, token, maxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

// ClearSessionCookie expires the dashboard cookie
func ClearSessionCookie(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
