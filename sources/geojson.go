package sources

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"accessibuddy/models"
)

// GeoJSONSource reads a municipal street furniture export: a FeatureCollection
// of Point or MultiPoint features with address properties.
type GeoJSONSource struct {
	Path string
	// Category applies to features without a recognised ASSETTYPE property.
	Category models.Category
}

func (s *GeoJSONSource) Name() string { return "geojson:" + s.Path }

func (s *GeoJSONSource) Load(ctx context.Context) ([]models.POI, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeGeoJSON(b, s.Category)
}

// DecodeGeoJSON converts a FeatureCollection into POIs. Features without a
// point geometry are skipped.
func DecodeGeoJSON(b []byte, category models.Category) ([]models.POI, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}

	pois := make([]models.POI, 0, len(fc.Features))
	for i, f := range fc.Features {
		pt, ok := firstPoint(f.Geometry)
		if !ok {
			slog.Debug("Skipping feature without point geometry", "index", i)
			continue
		}

		c := category
		if asset, ok := models.LookupCategory(property(f.Properties, "ASSETTYPE")); ok {
			c = asset
		}
		if !c.Known() {
			c = models.CategoryOther
		}

		name := featureName(f.Properties)
		if name == "" {
			name = "Unnamed " + strings.ToLower(c.Noun())
		}

		pois = append(pois, models.POI{
			ID:          featureID(f, i),
			Name:        name,
			Description: fmt.Sprintf("%s located at %s.", c.Noun(), name),
			Type:        c,
			Location:    models.NewGeoPoint(pt.Lat(), pt.Lon()),
		})
	}
	return pois, nil
}

func firstPoint(g orb.Geometry) (orb.Point, bool) {
	switch g := g.(type) {
	case orb.Point:
		return g, true
	case orb.MultiPoint:
		if len(g) > 0 {
			return g[0], true
		}
	}
	return orb.Point{}, false
}

func featureID(f *geojson.Feature, index int) string {
	for _, key := range []string{"_id", "id", "ID"} {
		if id := scalarString(f.Properties[key]); id != "" {
			return id
		}
	}
	if id := scalarString(f.ID); id != "" {
		return id
	}
	return strconv.Itoa(index + 1)
}

func featureName(p geojson.Properties) string {
	number := property(p, "ADDRESSNUMBERTEXT")
	street := property(p, "ADDRESSSTREET")
	if street != "" {
		return strings.TrimSpace(number + " " + street)
	}
	for _, key := range []string{"name", "NAME", "address", "ADDRESS"} {
		if v := property(p, key); v != "" {
			return v
		}
	}
	return ""
}

// property reads key as trimmed text. Numeric values are formatted; any other
// type reads as empty.
func property(p geojson.Properties, key string) string {
	return strings.TrimSpace(scalarString(p[key]))
}

func scalarString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}
