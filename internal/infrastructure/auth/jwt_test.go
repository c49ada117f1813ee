package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmail = "admin@example.com"

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}
	return NewJWTService(cfg)
}

func TestNewJWTService(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                 "test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}

	svc := NewJWTService(cfg)

	assert.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.accessSecret)
	assert.Equal(t, []byte(cfg.Secret), svc.refreshSecret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.GetAccessTokenExpiration())
	assert.Equal(t, cfg.RefreshTokenExpiration, svc.GetRefreshTokenExpiration())
	assert.Equal(t, cfg.Issuer, svc.issuer)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	before := time.Now()

	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.WithinDuration(t, before.Add(15*time.Minute), pair.AccessTokenExpiresAt, 5*time.Second)
	assert.WithinDuration(t, before.Add(7*24*time.Hour), pair.RefreshTokenExpiresAt, 5*time.Second)
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, testEmail, claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessToken_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  -1 * time.Hour,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("invalid-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_DifferentSecret(t *testing.T) {
	issuer := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-key-at-least-32-c",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "test-issuer",
	})
	pair, err := issuer.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "someone-else",
	})
	pair, err := other.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongTokenType(t *testing.T) {
	// Same secret for both so only the type claim differs
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAccessToken_MissingEmail(t *testing.T) {
	svc := newTestJWTService()
	claims := svc.claims("", TokenTypeAccess, time.Now(), time.Minute)
	token, err := svc.sign(claims, svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestValidateAccessToken_RejectsOtherSigningMethods(t *testing.T) {
	svc := newTestJWTService()
	claims := svc.claims(testEmail, TokenTypeAccess, time.Now(), time.Minute)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair_Success(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	newPair, oldClaims, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, testEmail, oldClaims.Email)
	assert.NotEqual(t, pair.AccessToken, newPair.AccessToken)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testEmail, claims.Email)
	assert.NotEqual(t, oldClaims.ID, claims.ID)
}

func TestRefreshTokenPair_WithAccessToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)

	// different secrets, so the access token does not even verify
	_, _, err = svc.RefreshTokenPair(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(testEmail)
	require.NoError(t, err)
	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)

	assert.Zero(t, (&Claims{}).GetRemainingTTL())
	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	assert.Zero(t, expired.GetRemainingTTL())
}
