package config

import (
	"os"
	"strings"
)

type AuthConfig struct {
	SupabaseURL     string
	SupabaseAnonKey string
	// JWTSecret enables local token verification. Without it every bearer
	// token is checked against the Supabase user endpoint.
	JWTSecret string
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		SupabaseURL:     strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		JWTSecret:       os.Getenv("SUPABASE_JWT_SECRET"),
	}
}

func (c *AuthConfig) Validate() error {
	if c.SupabaseURL == "" {
		return ErrSupabaseURLMissing
	}
	if c.SupabaseAnonKey == "" {
		return ErrSupabaseKeyMissing
	}
	return nil
}
