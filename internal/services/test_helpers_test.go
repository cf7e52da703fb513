package services_test

import (
	"time"

	"github.com/shiptrain/portal/internal/cache"
	"github.com/shiptrain/portal/internal/fixtures"
	"github.com/shiptrain/portal/internal/services"
	"github.com/shiptrain/portal/pkg/jwt"
	"github.com/shiptrain/portal/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// fixtureStore returns the fixture store pinned to a day with scheduled classes
func fixtureStore() *fixtures.Store {
	clock, err := fixtures.PinnedClock("2024-12-20")
	if err != nil {
		panic(err)
	}
	return fixtures.New(fixtures.WithClock(clock))
}

func newAuthService() (*services.AuthService, *jwt.TokenManager) {
	tokens := jwt.NewTokenManager("test-secret", "portal-test", 1)
	return services.NewAuthService(fixtureStore(), cache.NewSessionCache(time.Hour), tokens), tokens
}
