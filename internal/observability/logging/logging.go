package logging

import (
	"io"
	"log/slog"
)

// Module names the component a log line originates from.
type Module string

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type HandlerConfig struct {
	Service       ServiceInfo
	Environment   Environment
	DefaultModule Module
	Level         slog.Leveler
	GCPProjectID  string
}

// NewLogger builds the JSON logger used across the service.
func NewLogger(w io.Writer, cfg HandlerConfig) *slog.Logger {
	return slog.New(NewHandler(w, cfg))
}
