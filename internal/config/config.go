package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

type Config struct {
	Port string

	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	// DatabaseURL overrides the individual POSTGRES_* values when set.
	DatabaseURL string
	AutoMigrate bool

	JWTSecret  string
	CORSOrigin string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	AITimeout     time.Duration
	Currency      string

	OperatorWorkers int
	LogLevel        string
	SentryDSN       string
}

// ProcessEnvironmentVariables reads the configuration from the process
// environment, after loading any .env file in the working directory.
func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:             "4000",
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		CORSOrigin:       "http://localhost:5173",
		OpenAIModel:      "gpt-4.1-mini",
		OpenAIBaseURL:    "https://api.openai.com/v1",
		AITimeout:        30 * time.Second,
		Currency:         "GBP",
		OperatorWorkers:  4,
		LogLevel:         "info",
	}

	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	setString := func(dst *string, key string) {
		if v := get(key); len(v) != 0 {
			*dst = v
		}
	}

	setString(&env.Port, "PORT")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.DatabaseURL, "DATABASE_URL")
	setString(&env.JWTSecret, "JWT_SECRET")
	setString(&env.CORSOrigin, "CORS_ORIGIN")
	setString(&env.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&env.OpenAIModel, "OPENAI_MODEL")
	setString(&env.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&env.LogLevel, "LOG_LEVEL")
	setString(&env.SentryDSN, "SENTRY_DSN")

	if v := get("CURRENCY"); len(v) != 0 {
		env.Currency = strings.ToUpper(v)
	}

	if v := get("AUTO_MIGRATE"); len(v) != 0 {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
		env.AutoMigrate = b
	}

	if v := get("AI_TIMEOUT"); len(v) != 0 {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("AI_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("AI_TIMEOUT must be positive, got %s", v)
		}
		env.AITimeout = d
	}

	if v := get("OPERATOR_WORKERS"); len(v) != 0 {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("OPERATOR_WORKERS: %w", err)
		}
		if n < 1 {
			return nil, fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", n)
		}
		env.OperatorWorkers = n
	}

	if len(env.JWTSecret) == 0 {
		return nil, ErrMissingJWTSecret
	}

	return &env, nil
}

// PostgresURL returns the connection string for the configured database.
func (c *Config) PostgresURL() string {
	if len(c.DatabaseURL) != 0 {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// AIEnabled reports whether a provider credential is configured.
func (c *Config) AIEnabled() bool {
	return len(c.OpenAIAPIKey) != 0
}
