package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, parsed once at startup and passed
// into constructors. Business logic never reads the environment directly.
type Config struct {
	Env        string `env:"ENV" envDefault:"DEVELOPMENT"`
	Port       string `env:"PORT" envDefault:"8000"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost"`

	MongoURI string `env:"DB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"DB_NAME" envDefault:"videotube"`

	RedisAddr string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASS"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	Token Token

	LoginAttempts int           `env:"LOGIN_ATTEMPTS" envDefault:"10"`
	LoginWindow   time.Duration `env:"LOGIN_WINDOW" envDefault:"5m"`
	ResetAttempts int           `env:"RESET_ATTEMPTS" envDefault:"5"`
	ResetWindow   time.Duration `env:"RESET_WINDOW" envDefault:"15m"`

	SMTP SMTP

	// AppBaseURL is the public base URL embedded in password-reset links.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8000"`
}

// Token holds the signing secrets and expiry windows for both token
// kinds. Access and refresh tokens are signed with independent secrets
// so one kind can never validate as the other.
type Token struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"72h"`
	ResetTTL      time.Duration `env:"RESET_TOKEN_EXPIRY" envDefault:"10m"`
}

// SMTP holds outbound-mail credentials for the recovery flow.
type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// Load parses the environment into a Config and validates the fields the
// auth core cannot run without.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Token.AccessSecret == "" {
		return fmt.Errorf("missing ACCESS_TOKEN_SECRET environment variable")
	}
	if c.Token.RefreshSecret == "" {
		return fmt.Errorf("missing REFRESH_TOKEN_SECRET environment variable")
	}
	if c.Token.AccessSecret == c.Token.RefreshSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	return nil
}

// Production reports whether the process runs with the production profile.
func (c Config) Production() bool {
	return c.Env == "PRODUCTION"
}
