package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	AuthModeDirectory = "directory"
	AuthModeRemote    = "remote"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// PolicyFile optionally overrides the built-in role rules.
	PolicyFile           string `env:"POLICY_FILE"`
	AuditWorkers         int    `env:"AUDIT_WORKERS,         default=4"`
	AggregateConcurrency int    `env:"AGGREGATE_CONCURRENCY, default=8"`

	Session SessionConfig
	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type AuthConfig struct {
	Mode    string        `env:"AUTH_MODE,    default=directory"`
	APIURL  string        `env:"AUTH_API_URL"`
	Timeout time.Duration `env:"AUTH_TIMEOUT, default=5s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dashboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// It only reports malformed values; call Validate before serving.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// PolicyPath returns the policy file to load. A non-empty flag value wins
// over POLICY_FILE.
func (c *Config) PolicyPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return c.PolicyFile
}

// Validate reports every setting that would keep the gateway from serving.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET is required"))
	}
	switch c.Auth.Mode {
	case AuthModeDirectory:
	case AuthModeRemote:
		if c.Auth.APIURL == "" {
			errs = append(errs, errors.New("config: AUTH_API_URL is required when AUTH_MODE=remote"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown AUTH_MODE %q", c.Auth.Mode))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("config: SESSION_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
