package identity

import (
	"time"
)

// LoginInput contains the input for the admin login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for logging
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Email                 string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the tokens to revoke. Either may be empty.
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
}
