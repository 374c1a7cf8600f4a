package identity

import (
	"context"
	"errors"
)

//go:generate mockgen -source=types.go -destination=mock.go -package=identity

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignUpRejected     = errors.New("sign up rejected")
	ErrInvalidToken       = errors.New("invalid token")
	ErrProviderFailure    = errors.New("identity provider failure")
)

// Identity is the authenticated subject behind an access token.
type Identity struct {
	UserID   string
	Email    string
	FullName string
	Provider string
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
}

// Provider relays credential flows to the hosted auth service.
type Provider interface {
	SignUp(ctx context.Context, email, password, fullName string) (*Identity, *Session, error)
	SignIn(ctx context.Context, email, password string) (*Identity, *Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// TokenVerifier resolves a bearer token to its identity.
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*Identity, error)
}

type supabaseUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
}

func (u *supabaseUser) toIdentity() *Identity {
	return &Identity{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: stringClaim(u.UserMetadata, "full_name"),
		Provider: stringClaim(u.AppMetadata, "provider"),
	}
}

// supabaseAuthResponse covers both the token grant and the sign up reply.
// Sign up answers with a bare user when email confirmation is pending.
type supabaseAuthResponse struct {
	Session
	User *supabaseUser `json:"user"`

	ID    string `json:"id"`
	Email string `json:"email"`
}

type supabaseError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorCode        string `json:"error_code"`
}

func (e supabaseError) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error, e.ErrorCode} {
		if s != "" {
			return s
		}
	}
	return "unknown error"
}

func stringClaim(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
