package service

import (
	"context"

	"ticket-server/internal/models"
)

// TokenPair is the credential pair returned by register and login.
type TokenPair struct {
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
}

// RegisterParams are the fields required to create a new account.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService manages session credentials: issuing access/refresh/verification
// tokens, validating bearer tokens and exchanging refresh tokens.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token itself is not rotated and stays valid until its expiry.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Authenticate resolves a bearer token into its user. A token whose
	// subject no longer exists yields (nil, nil) rather than an error.
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)

	IssueAccessToken(user *models.User) (string, error)
	IssueRefreshToken(user *models.User) (string, error)
	IssueVerificationToken(user *models.User) (string, error)
}
