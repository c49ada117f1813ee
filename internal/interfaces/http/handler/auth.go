package handler

import (
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/application/identity"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles the admin session endpoints
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new auth handler. Successful logins also set
// the session cookie read by the dashboard pages.
func NewAuthHandler(authService *identity.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// LoginRequest represents the login form
// @Description Admin credentials
type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"secret123"`
}

// TokenResponse represents an issued token pair
// @Description Access and refresh tokens
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type" example:"Bearer"`
}

// LoginResponse represents a successful login
// @Description Tokens plus the signed-in email
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	Email string        `json:"email" example:"admin@example.com"`
}

// RefreshTokenRequest carries a refresh token
// @Description Refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke with the
// access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// Login godoc
// @ID           login
// @Summary      Admin login
// @Description  Signs the administrator in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	middleware.SetSessionCookie(c, h.cookie, result.AccessToken, h.authService.AccessTokenTTL())
	h.Success(c, LoginResponse{
		Token: TokenResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
			TokenType:             result.TokenType,
		},
		Email: result.Email,
	})
}

// RefreshToken godoc
// @ID           refreshToken
// @Summary      Refresh access token
// @Description  Exchanges a refresh token for a new pair. The old refresh token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} APIResponse[TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	middleware.SetSessionCookie(c, h.cookie, result.AccessToken, h.authService.AccessTokenTTL())
	h.Success(c, TokenResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
	})
}

// Logout godoc
// @ID           logout
// @Summary      Sign out
// @Description  Revokes the current access token, and the refresh token when one is sent
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Refresh token to revoke"
// @Success      200 {object} APIResponse[LogoutResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindError(c, err)
		return
	}

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		AccessToken:  middleware.TokenFromRequest(c, h.cookie.Name),
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	middleware.ClearSessionCookie(c, h.cookie)
	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}
