package config

import (
	"fmt"
	"os"
	"strings"
)

// Config carries everything main needs to wire the service. All values come
// from the environment so credentials never live in source.
type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	ListenAddr string
	JWTSecret  string

	// CORSAllowedOrigins is the explicit list of origins allowed to call the
	// API with credentials. Empty means cross-origin access is disabled.
	CORSAllowedOrigins []string
}

func New() (*Config, error) {
	cfg := &Config{
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getenvDefault("DB_HOST", "127.0.0.1:3306"),
		DBName:     getenvDefault("DB_NAME", "personal_finance"),
		ListenAddr: getenvDefault("LISTEN_ADDR", ":8080"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
	}

	if cfg.DBUser == "" {
		return nil, fmt.Errorf("config: DB_USER is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// DSN builds the go-sql-driver connection string. parseTime makes DATE
// columns scan into time.Time.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}

// MigrationDSN is the DSN for the dedicated migration connection. The
// migration files hold several statements each, so multiStatements is on.
func (c *Config) MigrationDSN() string {
	return c.DSN() + "&multiStatements=true"
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
