package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"accessibuddy/browse"
	"accessibuddy/catalog"
	"accessibuddy/geo"
	"accessibuddy/models"
	"accessibuddy/sources"
	"accessibuddy/utils/errors"
)

type GeoService struct {
	defaultRadiusKm float64
	redisClient     *redis.Client // optional geo index
	current         atomic.Pointer[snapshot]
}

type snapshot struct {
	catalog  *catalog.Catalog
	index    NearbyIndex
	rejected int
}

// NewGeoService returns a service with nothing loaded. redisClient may be nil,
// in which case nearby queries run against an in-memory index.
func NewGeoService(defaultRadiusKm float64, redisClient *redis.Client) *GeoService {
	return &GeoService{defaultRadiusKm: defaultRadiusKm, redisClient: redisClient}
}

// Await blocks until pending resolves and installs its result.
func (s *GeoService) Await(ctx context.Context, pending *sources.Pending) error {
	pois, err := pending.Wait(ctx)
	if err != nil {
		return fmt.Errorf("loading POIs from %s: %w", pending.Source(), err)
	}
	slog.Info("Loaded POIs", "source", pending.Source(), "count", len(pois))
	s.Install(ctx, pois)
	return nil
}

// Install validates pois into a catalog, indexes them and makes them visible
// to queries. A Redis seeding failure falls back to the in-memory index.
func (s *GeoService) Install(ctx context.Context, pois []models.POI) {
	cat, rejected := catalog.New(pois)
	valid := cat.All()

	var index NearbyIndex = NewMemoryIndex(valid)
	if s.redisClient != nil {
		redisIndex := NewRedisIndex(s.redisClient)
		if err := redisIndex.Seed(ctx, valid); err != nil {
			slog.Warn("Redis geo index unavailable, using in-memory index", "error", err)
		} else {
			index = redisIndex
		}
	}

	s.current.Store(&snapshot{catalog: cat, index: index, rejected: len(rejected)})
}

// Ready reports whether a dataset has been installed.
func (s *GeoService) Ready() bool {
	return s.current.Load() != nil
}

func (s *GeoService) loaded() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, errors.ErrUnavailable
	}
	return snap, nil
}

// DefaultRadiusKm is the radius applied when a query names none.
func (s *GeoService) DefaultRadiusKm() float64 {
	return s.defaultRadiusKm
}

// Count returns the number of loaded POIs, zero before loading completes.
func (s *GeoService) Count() int {
	if snap := s.current.Load(); snap != nil {
		return snap.catalog.Len()
	}
	return 0
}

// Rejected returns how many loaded records failed validation and were dropped.
func (s *GeoService) Rejected() int {
	if snap := s.current.Load(); snap != nil {
		return snap.rejected
	}
	return 0
}

// Browse renders the map browser view for state.
func (s *GeoService) Browse(state browse.State) (browse.View, error) {
	snap, err := s.loaded()
	if err != nil {
		return browse.View{}, err
	}
	return state.Render(snap.catalog.All()), nil
}

// GetPOI returns the detail view of one POI.
func (s *GeoService) GetPOI(id string) (browse.Detail, error) {
	snap, err := s.loaded()
	if err != nil {
		return browse.Detail{}, err
	}
	p, ok := snap.catalog.Get(id)
	if !ok {
		return browse.Detail{}, errors.ErrNotFound
	}
	return browse.NewDetail(p), nil
}

// CategoryCount describes one category and how many POIs it holds.
type CategoryCount struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
}

// Categories lists every known category with its POI count.
func (s *GeoService) Categories() ([]CategoryCount, error) {
	snap, err := s.loaded()
	if err != nil {
		return nil, err
	}
	counts := snap.catalog.Counts()
	out := make([]CategoryCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, CategoryCount{Category: c, Label: c.Label(), Count: counts[c]})
	}
	return out, nil
}

// FindNearbyPOIs returns POIs within radiusKm of lat/lon, closest first and
// capped at MaxNearbyResults. An empty category matches every POI.
func (s *GeoService) FindNearbyPOIs(ctx context.Context, lat, lon, radiusKm float64, category models.Category) ([]NearbyPOI, error) {
	snap, err := s.loaded()
	if err != nil {
		return nil, err
	}
	if !geo.Valid(lat, lon) {
		return nil, errors.NewAPIError(errors.ErrInvalidInput.Code, errors.ErrInvalidInput.Message,
			errors.ErrInvalidInput.Status, fmt.Sprintf("invalid coordinates: lat=%f, lon=%f", lat, lon))
	}
	if !(radiusKm > 0) {
		radiusKm = s.defaultRadiusKm
	}

	hits, err := snap.index.Nearby(ctx, lat, lon, radiusKm, 0)
	if err != nil {
		return nil, errors.Wrap(err, "INDEX_ERROR", "Failed to query nearby POIs", errors.ErrInternal.Status)
	}

	results := make([]NearbyPOI, 0, len(hits))
	for _, hit := range hits {
		if category != "" && hit.Type != category {
			continue
		}
		results = append(results, hit)
		if len(results) == MaxNearbyResults {
			break
		}
	}

	slog.Debug("Found nearby POIs", "count", len(results), "radius_km", radiusKm)
	return results, nil
}
