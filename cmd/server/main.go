package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"testnetdir.app/pulse/common/id"
	"testnetdir.app/pulse/common/logger"
	"testnetdir.app/pulse/common/otel"
	"testnetdir.app/pulse/core/config"
	"testnetdir.app/pulse/core/db"
	"testnetdir.app/pulse/internal/discovery"
	"testnetdir.app/pulse/internal/discovery/provider"
	"testnetdir.app/pulse/internal/http/handler"
	"testnetdir.app/pulse/internal/http/middleware"
	httprouter "testnetdir.app/pulse/internal/http/router"
	"testnetdir.app/pulse/internal/insights"
	"testnetdir.app/pulse/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "pulse starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var snapshotCache insights.SnapshotCache
	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		snapshotCache = insights.NewRedisSnapshotCache(redisClient, cfg.Redis.CacheTTL)
		slog.InfoContext(ctx, "redis connected, snapshot cache enabled")
	}

	stores := store.NewStores(database.Pool())

	engine := insights.NewEngine(
		stores.Events(),
		stores.Testnets(),
		stores.Discoveries(),
		stores.Snapshots(),
		snapshotCache,
		insights.Config{Window: cfg.Insights.Window},
	)

	var providers []provider.Provider
	if cfg.Discovery.LlamaBaseURL != "" {
		providers = append(providers, provider.NewLlama(cfg.Discovery.LlamaBaseURL))
	}
	pipeline := discovery.NewPipeline(providers, stores.Testnets(), stores.Discoveries(), discovery.Config{
		MaxPerRun:       cfg.Discovery.MaxPerRun,
		ProviderTimeout: cfg.Discovery.ProviderTimeout,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, engine, pipeline)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, engine *insights.Engine, pipeline *discovery.Pipeline) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	insightsHandler := handler.NewInsightsHandler(engine)
	discoveryHandler := handler.NewDiscoveryHandler(pipeline)
	httprouter.SetupRoutes(router, insightsHandler, discoveryHandler)

	return router
}
