package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/shiptrain/portal/pkg/errors"
)

// Deployment names
const (
	DeploymentTraining = "training"
	DeploymentMarket   = "market"
)

// Credential schemes
const (
	// SchemeSessionHeader sends the credential verbatim in a custom header
	SchemeSessionHeader = "session-header"
	// SchemeBearer sends the credential as "Authorization: Bearer <credential>"
	SchemeBearer = "bearer"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Storage       StorageConfig
	Session       SessionConfig
	Fixtures      FixturesConfig
	Deployments   map[string]DeploymentConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceNamespace string
	ServiceVersion   string
}

type StorageConfig struct {
	Driver string // "sqlite" or "memory"
	Path   string
}

// SessionConfig configures credentials issued by the mock backend
type SessionConfig struct {
	JWTSecret string
	JWTIssuer string
	TTLHours  int
}

type FixturesConfig struct {
	// Today pins the fixture store's notion of "today" (YYYY-MM-DD); empty means the wall clock
	Today string
}

// DeploymentConfig describes one client deployment: where it talks to and how it
// carries and persists its credential.
type DeploymentConfig struct {
	Name             string
	BaseURL          string
	Timeout          time.Duration
	BinaryTimeout    time.Duration
	CredentialScheme string
	CredentialHeader string
	CredentialKey    string
	ProfileKey       string
	LoginRoute       string
	HomeRoute        string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "portal")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "shiptrain")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")

	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("STORAGE_PATH", defaultStoragePath())

	v.SetDefault("JWT_ISSUER", "portal-mock")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("FIXTURE_TODAY", "")

	v.SetDefault("TRAINING_API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("TRAINING_API_TIMEOUT_MS", 10000)
	v.SetDefault("TRAINING_API_BINARY_TIMEOUT_MS", 30000)
	v.SetDefault("MARKET_API_BASE_URL", "http://localhost:8080")
	v.SetDefault("MARKET_API_TIMEOUT_MS", 15000)
	v.SetDefault("MARKET_API_BINARY_TIMEOUT_MS", 30000)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	allowedOrigins := []string{}
	for _, origin := range strings.Split(v.GetString("ALLOWED_CORS_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: allowedOrigins,
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace: v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
			Path:   v.GetString("STORAGE_PATH"),
		},
		Session: SessionConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			JWTIssuer: v.GetString("JWT_ISSUER"),
			TTLHours:  v.GetInt("SESSION_TTL_HOURS"),
		},
		Fixtures: FixturesConfig{
			Today: v.GetString("FIXTURE_TODAY"),
		},
		Deployments: map[string]DeploymentConfig{
			DeploymentTraining: TrainingDeployment(
				v.GetString("TRAINING_API_BASE_URL"),
				millis(v.GetInt("TRAINING_API_TIMEOUT_MS")),
				millis(v.GetInt("TRAINING_API_BINARY_TIMEOUT_MS")),
			),
			DeploymentMarket: MarketDeployment(
				v.GetString("MARKET_API_BASE_URL"),
				millis(v.GetInt("MARKET_API_TIMEOUT_MS")),
				millis(v.GetInt("MARKET_API_BINARY_TIMEOUT_MS")),
			),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TrainingDeployment returns the training portal deployment: Session-ID header,
// sessionId/userInfo storage keys.
func TrainingDeployment(baseURL string, timeout, binaryTimeout time.Duration) DeploymentConfig {
	return DeploymentConfig{
		Name:             DeploymentTraining,
		BaseURL:          baseURL,
		Timeout:          timeout,
		BinaryTimeout:    binaryTimeout,
		CredentialScheme: SchemeSessionHeader,
		CredentialHeader: "Session-ID",
		CredentialKey:    "sessionId",
		ProfileKey:       "userInfo",
		LoginRoute:       "/login",
		HomeRoute:        "/",
	}
}

// MarketDeployment returns the marketplace deployment: bearer token,
// token/user storage keys.
func MarketDeployment(baseURL string, timeout, binaryTimeout time.Duration) DeploymentConfig {
	return DeploymentConfig{
		Name:             DeploymentMarket,
		BaseURL:          baseURL,
		Timeout:          timeout,
		BinaryTimeout:    binaryTimeout,
		CredentialScheme: SchemeBearer,
		CredentialHeader: "Authorization",
		CredentialKey:    "token",
		ProfileKey:       "user",
		LoginRoute:       "/login",
		HomeRoute:        "/",
	}
}

// Deployment returns the named deployment configuration
func (c *Config) Deployment(name string) (DeploymentConfig, error) {
	d, ok := c.Deployments[name]
	if !ok {
		return DeploymentConfig{}, apperrors.UnknownDeploymentError(name)
	}
	return d, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required for the sqlite storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: sqlite, memory (got %q)", c.Storage.Driver)
	}

	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if c.Fixtures.Today != "" {
		if _, err := time.Parse(time.DateOnly, c.Fixtures.Today); err != nil {
			return fmt.Errorf("FIXTURE_TODAY must be YYYY-MM-DD: %w", err)
		}
	}

	for name, d := range c.Deployments {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("deployment %s: %w", name, err)
		}
	}

	return nil
}

// Validate checks a single deployment
func (d DeploymentConfig) Validate() error {
	if d.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if d.Timeout <= 0 || d.BinaryTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if d.CredentialScheme != SchemeSessionHeader && d.CredentialScheme != SchemeBearer {
		return fmt.Errorf("unknown credential scheme %q", d.CredentialScheme)
	}
	if d.CredentialKey == "" || d.ProfileKey == "" {
		return fmt.Errorf("credential and profile storage keys are required")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "portal-storage.db"
	}
	return filepath.Join(dir, "shiptrain-portal", "storage.db")
}
