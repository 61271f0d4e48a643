package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Mail     MailConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	PoolMin  int
	PoolMax  int
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// AuthConfig holds the login gate configuration. The admin account is
// reconciled at startup from these values.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// MailConfig holds Gmail OAuth credentials for receipt dispatch.
// Leaving ClientID empty disables outgoing mail entirely.
type MailConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	Sender       string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present, then viper reads
// values with development defaults.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "condomaster")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_POOL_MIN", 2)
	v.SetDefault("DB_POOL_MAX", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("JWT_TOKEN_TTL_HOURS", 24)
	v.SetDefault("ADMIN_EMAIL", "admin@condominio.cl")
	v.SetDefault("ADMIN_NAME", "Administración Principal")
	v.SetDefault("MAIL_SENDER", "")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			PoolMin:  v.GetInt("DB_POOL_MIN"),
			PoolMax:  v.GetInt("DB_POOL_MAX"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			TokenTTLHours: v.GetInt("JWT_TOKEN_TTL_HOURS"),
			AdminEmail:    v.GetString("ADMIN_EMAIL"),
			AdminName:     v.GetString("ADMIN_NAME"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
		Mail: MailConfig{
			ClientID:     v.GetString("GMAIL_CLIENT_ID"),
			ClientSecret: v.GetString("GMAIL_CLIENT_SECRET"),
			RefreshToken: v.GetString("GMAIL_REFRESH_TOKEN"),
			Sender:       v.GetString("MAIL_SENDER"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.PoolMin < 0 {
		return fmt.Errorf("DB_POOL_MIN must be non-negative")
	}
	if c.Database.PoolMax < 1 {
		return fmt.Errorf("DB_POOL_MAX must be at least 1")
	}
	if c.Database.PoolMin > c.Database.PoolMax {
		return fmt.Errorf("DB_POOL_MIN must be less than or equal to DB_POOL_MAX")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTLHours < 1 {
		return fmt.Errorf("JWT_TOKEN_TTL_HOURS must be at least 1")
	}
	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("ADMIN_EMAIL is required")
	}
	if c.Auth.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}

	// Mail credentials are all-or-nothing; a partial set is a misconfiguration.
	if c.Mail.Enabled() {
		if c.Mail.ClientSecret == "" || c.Mail.RefreshToken == "" || c.Mail.Sender == "" {
			return fmt.Errorf("GMAIL_CLIENT_SECRET, GMAIL_REFRESH_TOKEN and MAIL_SENDER are required when GMAIL_CLIENT_ID is set")
		}
	}

	return nil
}

// DSN builds the PostgreSQL connection string for the configured database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}

// Enabled reports whether outgoing mail is configured.
func (m MailConfig) Enabled() bool {
	return m.ClientID != ""
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
