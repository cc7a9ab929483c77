package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"accessibuddy/config"
	"accessibuddy/handlers"
	"accessibuddy/logging"
	"accessibuddy/services"
	"accessibuddy/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.Setup(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := newRedisClient(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize services and handlers
	geoService := services.NewGeoService(cfg.DefaultRadiusKm, redisClient)
	pending := sources.Fetch(ctx, newSource(cfg))
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
		defer cancel()
		if err := geoService.Await(loadCtx, pending); err != nil {
			slog.Error("Failed to load POIs", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handlers.NewRouter(geoService, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "addr", srv.Addr, "source", pending.Source())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// newSource picks the POI source named by DATA_SOURCE. Database sources are
// seeded from the embedded fixture when empty.
func newSource(cfg *config.Config) sources.Source {
	switch cfg.DataSource {
	case config.SourceGeoJSON:
		return &sources.GeoJSONSource{Path: cfg.GeoJSONPath, Category: cfg.GeoJSONCategory}
	case config.SourceSQLite:
		return &sources.SQLiteSource{Path: cfg.SQLitePath, Seed: sources.NewFixtureSource(0)}
	case config.SourceMongo:
		return &sources.MongoSource{URI: cfg.MongoURI, Database: cfg.MongoDatabase, Seed: sources.NewFixtureSource(0)}
	default:
		return sources.NewFixtureSource(cfg.LoadDelay)
	}
}

// newRedisClient connects to REDIS_ADDR when set. An unreachable server is
// logged and nearby queries use the in-memory index instead.
func newRedisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := client.Ping(pingCtx).Result(); err != nil {
		slog.Warn("Redis unavailable, using in-memory geo index", "addr", cfg.RedisAddr, "error", err)
		client.Close()
		return nil
	}
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return client
}
