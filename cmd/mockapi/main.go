// Command mockapi serves the fixture store over the training portal (/api) and
// marketplace (/api/v1) API surfaces.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/cache"
	"github.com/shiptrain/portal/internal/fixtures"
	"github.com/shiptrain/portal/internal/handlers"
	"github.com/shiptrain/portal/internal/middleware"
	"github.com/shiptrain/portal/internal/services"
	"github.com/shiptrain/portal/pkg/jwt"
	"github.com/shiptrain/portal/pkg/logger"
	"github.com/shiptrain/portal/pkg/metrics"
	"github.com/shiptrain/portal/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName + "-mockapi",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting portal mock API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	tracerShutdown, err := tracing.InitTracer(tracing.Config{
		ServiceName:      cfg.Observability.ServiceName + "-mockapi",
		ServiceNamespace: cfg.Observability.ServiceNamespace,
		ServiceVersion:   cfg.Observability.ServiceVersion,
		Environment:      cfg.Server.AppEnv,
		Endpoint:         cfg.Observability.ExporterEndpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopMetrics := make(chan struct{})
	defer close(stopMetrics)
	metrics.RecordInfrastructureMetrics(stopMetrics)

	var storeOpts []fixtures.Option
	if cfg.Fixtures.Today != "" {
		clock, clockErr := fixtures.PinnedClock(cfg.Fixtures.Today)
		if clockErr != nil {
			logger.Fatal("Invalid fixture date", zap.Error(clockErr))
		}
		storeOpts = append(storeOpts, fixtures.WithClock(clock))
		logger.Info("Fixture clock pinned", zap.String("today", cfg.Fixtures.Today))
	}
	store := fixtures.New(storeOpts...)

	jwtSecret := cfg.Session.JWTSecret
	if jwtSecret == "" {
		jwtSecret = uuid.NewString()
		logger.Warn("JWT_SECRET not configured, bearer tokens will not survive a restart")
	}
	tokenManager := jwt.NewTokenManager(jwtSecret, cfg.Session.JWTIssuer, cfg.Session.TTLHours)
	sessionCache := cache.NewSessionCache(time.Duration(cfg.Session.TTLHours) * time.Hour)

	authService := services.NewAuthService(store, sessionCache, tokenManager)
	trainingService := services.NewTrainingService(store)
	marketService := services.NewMarketService()

	healthHandler := handlers.NewHealthHandler(func() bool { return len(store.Plans()) > 0 },
		config.DeploymentTraining, config.DeploymentMarket)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName + "-mockapi"))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://127.0.0.1:5173", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.TrainingSessionHeader, middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	loginRateLimiter := middleware.NewRateLimiter(1, 5)       // 1 req/sec, burst of 5
	defer generalRateLimiter.Stop()
	defer loginRateLimiter.Stop()

	api := router.Group("/api", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024))
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	svc := handlers.Services{
		Auth:       authService,
		Training:   trainingService,
		Market:     marketService,
		LoginLimit: loginRateLimiter.Middleware(),
	}
	handlers.RegisterTraining(api, svc)
	handlers.RegisterMarket(api.Group("/v1"), svc)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
