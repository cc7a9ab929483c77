package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"accessibuddy/data"
	"accessibuddy/models"
)

// FixtureSource serves a static JSON dataset after an artificial delay.
type FixtureSource struct {
	Data  []byte
	Delay time.Duration
}

// NewFixtureSource returns the embedded Toronto dataset.
func NewFixtureSource(delay time.Duration) *FixtureSource {
	return &FixtureSource{Data: data.TorontoPOIs, Delay: delay}
}

func (s *FixtureSource) Name() string { return "fixture" }

func (s *FixtureSource) Load(ctx context.Context) ([]models.POI, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return DecodeFixture(s.Data)
}

type fixtureRecord struct {
	ID          string          `json:"id"`
	Type        models.Category `json:"type"`
	Name        string          `json:"name"`
	Location    []float64       `json:"location"` // [lat, lon]
	Description string          `json:"description"`
	Features    []string        `json:"features"`
}

// DecodeFixture parses a fixture JSON array. Records whose location is not a
// [lat, lon] pair keep an empty location and are left for ingestion to reject.
func DecodeFixture(b []byte) ([]models.POI, error) {
	var records []fixtureRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	pois := make([]models.POI, 0, len(records))
	for _, r := range records {
		poi := models.POI{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Type:        r.Type,
			Features:    r.Features,
		}
		if poi.Type == "" {
			poi.Type = models.CategoryOther
		}
		if len(r.Location) == 2 {
			poi.Location = models.NewGeoPoint(r.Location[0], r.Location[1])
		}
		pois = append(pois, poi)
	}
	return pois, nil
}
