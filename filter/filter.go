// Package filter derives the visible subset of POIs from category toggles,
// free-text search and a search radius.
package filter

import (
	"strings"

	"accessibuddy/geo"
	"accessibuddy/models"
)

// Criteria holds every input to Apply.
type Criteria struct {
	Categories models.CategoryMask
	SearchText string
	// RadiusKm only applies when SearchText is non-empty.
	RadiusKm float64
}

// Apply returns the points visible under c, in their original order.
//
// Points outside the enabled categories are dropped. With a search text, a point
// survives when its name or description contains the text (case-insensitive), or
// when it lies within RadiusKm of the anchor: the first point of the whole set
// whose text matches. Only that first anchor is used as the distance reference.
func Apply(points []models.POI, c Criteria) []models.POI {
	enabled := make([]models.POI, 0, len(points))
	for _, p := range points {
		if c.Categories.Enabled(p.Type) {
			enabled = append(enabled, p)
		}
	}
	if c.SearchText == "" {
		return enabled
	}

	query := strings.ToLower(c.SearchText)
	anchor, found := firstAnchor(points, query)

	visible := make([]models.POI, 0, len(enabled))
	for _, p := range enabled {
		if matches(p, query) {
			visible = append(visible, p)
			continue
		}
		if found && geo.Between(anchor.Location, p.Location) <= c.RadiusKm {
			visible = append(visible, p)
		}
	}
	return visible
}

// Matches reports whether the name or description of p contains query,
// ignoring case.
func Matches(p models.POI, query string) bool {
	return matches(p, strings.ToLower(query))
}

// FirstAnchor returns the first point whose text matches query.
func FirstAnchor(points []models.POI, query string) (models.POI, bool) {
	return firstAnchor(points, strings.ToLower(query))
}

func matches(p models.POI, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery)
}

func firstAnchor(points []models.POI, lowerQuery string) (models.POI, bool) {
	for _, p := range points {
		if matches(p, lowerQuery) {
			return p, true
		}
	}
	return models.POI{}, false
}
