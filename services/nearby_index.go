package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"accessibuddy/geo"
	"accessibuddy/models"
)

const (
	poiGeoKey    = "pois:geo"
	poiKeyPrefix = "poi:"

	// MaxNearbyResults caps a single nearby query.
	MaxNearbyResults = 50
)

// NearbyPOI is a POI with its distance from the query point.
type NearbyPOI struct {
	models.POI
	DistanceKm float64 `json:"distance_km"`
}

// NearbyIndex answers radius queries, closest first.
type NearbyIndex interface {
	Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]NearbyPOI, error)
}

// MemoryIndex scans the catalog using an s2 cap as the containment test.
type MemoryIndex struct {
	pois []models.POI
}

func NewMemoryIndex(pois []models.POI) *MemoryIndex {
	return &MemoryIndex{pois: pois}
}

func (m *MemoryIndex) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]NearbyPOI, error) {
	c := geo.Cap(lat, lon, radiusKm)

	var results []NearbyPOI
	for _, p := range m.pois {
		if !c.ContainsPoint(geo.PointOf(p.Location)) {
			continue
		}
		results = append(results, NearbyPOI{
			POI:        p,
			DistanceKm: geo.Distance(lat, lon, p.Location.Lat(), p.Location.Lon()),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// RedisIndex keeps POIs in a Redis geo set, with each POI's JSON in a hash.
type RedisIndex struct {
	client *redis.Client
}

func NewRedisIndex(client *redis.Client) *RedisIndex {
	return &RedisIndex{client: client}
}

// Seed replaces the indexed POIs with pois.
func (r *RedisIndex) Seed(ctx context.Context, pois []models.POI) error {
	if err := r.client.Del(ctx, poiGeoKey).Err(); err != nil {
		return fmt.Errorf("clearing %s: %w", poiGeoKey, err)
	}
	slog.Info("Seeding POIs into Redis...", "count", len(pois))

	pipe := r.client.Pipeline()
	for _, p := range pois {
		poiJSON, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal POI %s: %w", p.ID, err)
		}
		pipe.HSet(ctx, poiKeyPrefix+p.ID, "data", poiJSON)
		pipe.GeoAdd(ctx, poiGeoKey, &redis.GeoLocation{
			Name:      p.ID,
			Longitude: p.Location.Lon(),
			Latitude:  p.Location.Lat(),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed POIs into Redis: %w", err)
	}
	slog.Info("Seeded POIs into Redis", "count", len(pois))
	return nil
}

func (r *RedisIndex) Nearby(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]NearbyPOI, error) {
	geoResults, err := r.client.GeoRadius(ctx, poiGeoKey, lon, lat, &redis.GeoRadiusQuery{
		Radius:   radiusKm,
		Unit:     "km",
		WithDist: true,
		Sort:     "ASC",
		Count:    limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis GeoRadius: %w", err)
	}

	results := make([]NearbyPOI, 0, len(geoResults))
	for _, geoResult := range geoResults {
		poiJSON, err := r.client.HGet(ctx, poiKeyPrefix+geoResult.Name, "data").Result()
		if err != nil {
			slog.Warn("Redis get error for POI", "id", geoResult.Name, "error", err)
			continue
		}
		var poi models.POI
		if err := json.Unmarshal([]byte(poiJSON), &poi); err != nil {
			slog.Warn("Failed to unmarshal POI", "id", geoResult.Name, "error", err)
			continue
		}
		results = append(results, NearbyPOI{POI: poi, DistanceKm: geoResult.Dist})
	}
	return results, nil
}
