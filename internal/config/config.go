package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Rate     RateConfig
	Outbox   OutboxConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type SessionConfig struct {
	// Secret signs the session cookie. The default is for local development
	// only and must be overridden in any real deployment.
	Secret string
	TTL    time.Duration
}

type RedisConfig struct {
	URL string
}

// SMTPConfig configures booking/cancellation notices. An empty Host leaves
// email delivery disabled.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Notify   string
}

type RateConfig struct {
	RPS   float64
	Burst int
}

type OutboxConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// LoadConfig reads the environment with local-dev fallbacks. Every value
// can be overridden with the matching variable (DB_HOST, SESSION_SECRET, ...).
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "hospital_db")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("SESSION_SECRET", "dev-secret-change-me")
	v.SetDefault("SESSION_TTL_HOURS", 12)

	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "clinic@localhost")
	v.SetDefault("SMTP_NOTIFY", "")

	v.SetDefault("RATE_RPS", 50.0)
	v.SetDefault("RATE_BURST", 100)

	v.SetDefault("OUTBOX_BATCH_SIZE", 100)
	v.SetDefault("OUTBOX_POLL_INTERVAL_SECONDS", 5)
	v.SetDefault("OUTBOX_RETRY_ATTEMPTS", 3)
	v.SetDefault("OUTBOX_RETRY_DELAY_SECONDS", 2)

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			TTL:    time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
			Notify:   v.GetString("SMTP_NOTIFY"),
		},
		Rate: RateConfig{
			RPS:   v.GetFloat64("RATE_RPS"),
			Burst: v.GetInt("RATE_BURST"),
		},
		Outbox: OutboxConfig{
			BatchSize:     v.GetInt("OUTBOX_BATCH_SIZE"),
			PollInterval:  time.Duration(v.GetInt("OUTBOX_POLL_INTERVAL_SECONDS")) * time.Second,
			RetryAttempts: v.GetInt("OUTBOX_RETRY_ATTEMPTS"),
			RetryDelay:    time.Duration(v.GetInt("OUTBOX_RETRY_DELAY_SECONDS")) * time.Second,
		},
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}

	return cfg, nil
}
