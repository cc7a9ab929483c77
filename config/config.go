// Package config loads service configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"accessibuddy/models"
)

// Data sources selectable through DATA_SOURCE.
const (
	SourceFixture = "fixture"
	SourceGeoJSON = "geojson"
	SourceSQLite  = "sqlite"
	SourceMongo   = "mongo"
)

// Config holds all runtime settings.
type Config struct {
	Port            string
	DataSource      string
	GeoJSONPath     string
	GeoJSONCategory models.Category
	SQLitePath      string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisDB         int
	LoadDelay       time.Duration
	LoadTimeout     time.Duration
	DefaultRadiusKm float64
	AllowedOrigins  []string
	LogLevel        string
}

// Load reads the given .env files (".env" when none are named) and then the
// process environment. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:            get("PORT", "8080"),
		DataSource:      strings.ToLower(get("DATA_SOURCE", SourceFixture)),
		GeoJSONPath:     get("GEOJSON_PATH", "./data/streetFurniture.geojson"),
		GeoJSONCategory: models.ParseCategory(get("GEOJSON_CATEGORY", string(models.CategoryBench))),
		SQLitePath:      get("SQLITE_PATH", "./data/pois.db"),
		MongoURI:        get("MONGODB_URI", ""),
		MongoDatabase:   get("MONGODB_DATABASE", "poi_db"),
		RedisAddr:       get("REDIS_ADDR", ""),
		LogLevel:        get("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	if cfg.LoadDelay, err = time.ParseDuration(get("LOAD_DELAY", "500ms")); err != nil {
		return nil, fmt.Errorf("invalid LOAD_DELAY value: %w", err)
	}
	if cfg.LoadTimeout, err = time.ParseDuration(get("LOAD_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid LOAD_TIMEOUT value: %w", err)
	}
	if cfg.DefaultRadiusKm, err = strconv.ParseFloat(get("DEFAULT_RADIUS_KM", "5"), 64); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_RADIUS_KM value: %w", err)
	}
	if cfg.DefaultRadiusKm <= 0 {
		return nil, fmt.Errorf("DEFAULT_RADIUS_KM must be positive")
	}

	for _, origin := range strings.Split(get("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	switch cfg.DataSource {
	case SourceFixture, SourceGeoJSON, SourceSQLite:
	case SourceMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable is not set")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q (must be fixture, geojson, sqlite, or mongo)", cfg.DataSource)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
