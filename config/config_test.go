package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/shiptrain/portal/pkg/errors"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Storage: StorageConfig{Driver: "memory"},
		Session: SessionConfig{TTLHours: 24},
		Deployments: map[string]DeploymentConfig{
			DeploymentTraining: TrainingDeployment("http://localhost:8080/api", 10*time.Second, 30*time.Second),
			DeploymentMarket:   MarketDeployment("http://localhost:8080", 15*time.Second, 30*time.Second),
		},
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{name: "development environment", config: &Config{Server: ServerConfig{AppEnv: "development"}}, expected: true},
		{name: "debug gin mode", config: &Config{Server: ServerConfig{GinMode: "debug"}}, expected: true},
		{name: "production environment", config: &Config{Server: ServerConfig{AppEnv: "production"}}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errorMsg string
	}{
		{name: "valid memory config", mutate: func(*Config) {}},
		{
			name:   "valid sqlite config",
			mutate: func(c *Config) { c.Storage = StorageConfig{Driver: "sqlite", Path: "/tmp/portal.db"} },
		},
		{
			name:     "missing port",
			mutate:   func(c *Config) { c.Server.Port = "" },
			errorMsg: "PORT is required",
		},
		{
			name:     "sqlite without path",
			mutate:   func(c *Config) { c.Storage = StorageConfig{Driver: "sqlite"} },
			errorMsg: "STORAGE_PATH is required",
		},
		{
			name:     "unknown storage driver",
			mutate:   func(c *Config) { c.Storage.Driver = "redis" },
			errorMsg: "STORAGE_DRIVER must be one of",
		},
		{
			name:     "bad fixture date",
			mutate:   func(c *Config) { c.Fixtures.Today = "20/12/2024" },
			errorMsg: "FIXTURE_TODAY must be YYYY-MM-DD",
		},
		{
			name: "deployment without base url",
			mutate: func(c *Config) {
				d := c.Deployments[DeploymentMarket]
				d.BaseURL = ""
				c.Deployments[DeploymentMarket] = d
			},
			errorMsg: "deployment market: base URL is required",
		},
		{
			name: "deployment with unknown scheme",
			mutate: func(c *Config) {
				d := c.Deployments[DeploymentTraining]
				d.CredentialScheme = "cookie"
				c.Deployments[DeploymentTraining] = d
			},
			errorMsg: "unknown credential scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestDeployments_CredentialSchemes(t *testing.T) {
	training := TrainingDeployment("http://x/api", time.Second, time.Second)
	assert.Equal(t, SchemeSessionHeader, training.CredentialScheme)
	assert.Equal(t, "Session-ID", training.CredentialHeader)
	assert.Equal(t, "sessionId", training.CredentialKey)
	assert.Equal(t, "userInfo", training.ProfileKey)

	market := MarketDeployment("http://x", time.Second, time.Second)
	assert.Equal(t, SchemeBearer, market.CredentialScheme)
	assert.Equal(t, "token", market.CredentialKey)
	assert.Equal(t, "user", market.ProfileKey)
}

func TestConfig_Deployment(t *testing.T) {
	cfg := validConfig()

	d, err := cfg.Deployment(DeploymentMarket)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", d.BaseURL)

	_, err = cfg.Deployment("shop")
	assert.ErrorIs(t, err, apperrors.ErrUnknownDeployment)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TRAINING_API_BASE_URL", "http://training.test/api")
	t.Setenv("MARKET_API_TIMEOUT_MS", "2500")
	t.Setenv("ALLOWED_CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	training, err := cfg.Deployment(DeploymentTraining)
	require.NoError(t, err)
	assert.Equal(t, "http://training.test/api", training.BaseURL)
	assert.Equal(t, 10*time.Second, training.Timeout)

	market, err := cfg.Deployment(DeploymentMarket)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, market.Timeout)
	assert.Equal(t, 30*time.Second, market.BinaryTimeout)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 24, cfg.Session.TTLHours)
}
