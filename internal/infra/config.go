package infra

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"scoreline"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"scoreline"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"scoreline"`

	// JWT
	JWTSecret       string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTPlayerExpiry string `env:"JWT_PLAYER_EXPIRY" envDefault:"720h"`

	// Server
	APIPort int `env:"API_PORT" envDefault:"3200"`

	// osu! API credentials
	OsuClientID     string `env:"OSU_CLIENT_ID"`
	OsuClientSecret string `env:"OSU_CLIENT_SECRET"`
	OsuRedirectURI  string `env:"OSU_REDIRECT_URI" envDefault:"http://localhost:3200/auth/callback"`

	// Reconciliation
	RecentFetchLimit int     `env:"RECENT_FETCH_LIMIT" envDefault:"20"`
	FCTolerancePct   float64 `env:"FC_TOLERANCE_PCT" envDefault:"0.03"`
	FCToleranceCap   int     `env:"FC_TOLERANCE_CAP" envDefault:"30"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	if c.OsuClientID == "" || c.OsuClientSecret == "" {
		return fmt.Errorf("OSU_CLIENT_ID and OSU_CLIENT_SECRET must be set")
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
