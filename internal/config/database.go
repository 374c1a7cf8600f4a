package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"
)

const (
	databaseURLEnv       = "DATABASE_URL"
	dbHostEnv            = "DB_HOST"
	dbPortEnv            = "DB_PORT"
	dbUserEnv            = "DB_USER"
	dbPasswordEnv        = "DB_PASSWORD"
	dbNameEnv            = "DB_NAME"
	dbSSLModeEnv         = "DB_SSLMODE"
	dbMaxOpenConnsEnv    = "DB_MAX_OPEN_CONNS"
	dbMaxIdleConnsEnv    = "DB_MAX_IDLE_CONNS"
	dbConnMaxLifetimeEnv = "DB_CONN_MAX_LIFETIME"

	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "situgas"
	defaultDBSSLMode         = "disable"
	defaultDBMaxOpenConns    = 20
	defaultDBMaxIdleConns    = 5
	defaultDBConnMaxLifetime = 30 * time.Minute
)

type DatabaseConfig struct {
	// URL wins over the discrete fields when set.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func LoadDatabaseConfig() (*DatabaseConfig, error) {
	cfg := &DatabaseConfig{
		URL:      os.Getenv(databaseURLEnv),
		Host:     getEnvOrDefault(dbHostEnv, defaultDBHost),
		User:     getEnvOrDefault(dbUserEnv, defaultDBUser),
		Password: os.Getenv(dbPasswordEnv),
		Name:     getEnvOrDefault(dbNameEnv, defaultDBName),
		SSLMode:  getEnvOrDefault(dbSSLModeEnv, defaultDBSSLMode),
	}

	port, ok := envInt(dbPortEnv, defaultDBPort)
	if !ok || port <= 0 || port > 65535 {
		return nil, ErrInvalidDatabasePort
	}
	cfg.Port = port

	if v, ok := envInt(dbMaxOpenConnsEnv, defaultDBMaxOpenConns); ok && v > 0 {
		cfg.MaxOpenConns = v
	} else {
		cfg.MaxOpenConns = defaultDBMaxOpenConns
	}
	if v, ok := envInt(dbMaxIdleConnsEnv, defaultDBMaxIdleConns); ok && v >= 0 {
		cfg.MaxIdleConns = v
	} else {
		cfg.MaxIdleConns = defaultDBMaxIdleConns
	}

	lifetime, err := envDuration(dbConnMaxLifetimeEnv, defaultDBConnMaxLifetime)
	if err != nil {
		return nil, err
	}
	cfg.ConnMaxLifetime = lifetime

	return cfg, nil
}

// DSN returns a pgx connection string.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Redacted is DSN with the password masked, for logs.
func (c *DatabaseConfig) Redacted() string {
	u, err := url.Parse(c.DSN())
	if err != nil {
		return fmt.Sprintf("%s:%d/%s", c.Host, c.Port, c.Name)
	}
	return u.Redacted()
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || (c.URL == "" && c.Host == "") {
		return ErrDatabaseDSNMissing
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
