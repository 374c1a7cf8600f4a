package config

import (
	"os"
	"strings"
)

type CORSConfig struct {
	AllowedOrigins []string
}

func LoadCORSConfig() *CORSConfig {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return &CORSConfig{AllowedOrigins: []string{"*"}}
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return &CORSConfig{AllowedOrigins: origins}
}
