// Package browse models the map browser's UI state: category toggles, search
// text, radius and the selected point. State is a value; every action returns
// a new State and the visible set is recomputed from it on demand.
package browse

import (
	"fmt"
	"math"
	"strings"

	"accessibuddy/filter"
	"accessibuddy/models"
)

// DefaultCenter is downtown Toronto, used when nothing is selected.
var DefaultCenter = models.NewGeoPoint(43.6532, -79.3832)

const noFeatures = "No specific accessibility features listed."

type State struct {
	Categories models.CategoryMask
	SearchText string
	RadiusKm   float64
	SelectedID string
}

// NewState enables every category and uses radiusKm for searches.
func NewState(radiusKm float64) State {
	return State{Categories: models.AllCategories(), RadiusKm: radiusKm}
}

func (s State) ToggleCategory(c models.Category) State {
	return s.SetCategory(c, !s.Categories.Enabled(c))
}

func (s State) SetCategory(c models.Category, on bool) State {
	s.Categories = s.Categories.Clone()
	s.Categories[c] = on
	return s
}

// SetSearch stores the query with surrounding whitespace removed.
func (s State) SetSearch(text string) State {
	s.SearchText = strings.TrimSpace(text)
	return s
}

// SetRadius ignores values that are not positive and finite.
func (s State) SetRadius(km float64) State {
	if km > 0 && !math.IsInf(km, 0) {
		s.RadiusKm = km
	}
	return s
}

func (s State) Select(id string) State {
	s.SelectedID = id
	return s
}

func (s State) ClearSelection() State {
	s.SelectedID = ""
	return s
}

func (s State) Criteria() filter.Criteria {
	return filter.Criteria{
		Categories: s.Categories,
		SearchText: s.SearchText,
		RadiusKm:   s.RadiusKm,
	}
}

// Visible is the filtered subset of points for this state.
func (s State) Visible(points []models.POI) []models.POI {
	return filter.Apply(points, s.Criteria())
}

// Selected finds the selected POI in points, whether or not it is visible.
func (s State) Selected(points []models.POI) (models.POI, bool) {
	if s.SelectedID == "" {
		return models.POI{}, false
	}
	for _, p := range points {
		if p.ID == s.SelectedID {
			return p, true
		}
	}
	return models.POI{}, false
}

// Center is where the map should be centred: the selected POI, or DefaultCenter.
func (s State) Center(points []models.POI) models.GeoPoint {
	if p, ok := s.Selected(points); ok {
		return p.Location
	}
	return DefaultCenter
}

// Filter describes one category toggle.
type Filter struct {
	Category models.Category `json:"category"`
	Label    string          `json:"label"`
	Enabled  bool            `json:"enabled"`
}

// Detail is the expanded view of a single POI.
type Detail struct {
	models.POI
	Label         string   `json:"label"`
	Coordinates   string   `json:"coordinates"`
	Accessibility []string `json:"accessibility"`
}

// NewDetail renders p for the details panel.
func NewDetail(p models.POI) Detail {
	accessibility := p.Features
	if len(accessibility) == 0 {
		accessibility = []string{noFeatures}
	}
	return Detail{
		POI:           p,
		Label:         p.Type.Noun(),
		Coordinates:   fmt.Sprintf("%.4f, %.4f", p.Location.Lat(), p.Location.Lon()),
		Accessibility: accessibility,
	}
}

// View is everything the map browser renders for a state.
type View struct {
	Filters    []Filter     `json:"filters"`
	SearchText string       `json:"search,omitempty"`
	RadiusKm   float64      `json:"radius_km"`
	Visible    []models.POI `json:"visible"`
	Count      int          `json:"count"`
	Center     [2]float64   `json:"center"` // [lat, lon]
	Selected   *Detail      `json:"selected,omitempty"`
}

// Render recomputes the derived view of points under s.
func (s State) Render(points []models.POI) View {
	visible := s.Visible(points)
	center := s.Center(points)

	v := View{
		SearchText: s.SearchText,
		RadiusKm:   s.RadiusKm,
		Visible:    visible,
		Count:      len(visible),
		Center:     [2]float64{center.Lat(), center.Lon()},
	}
	for _, c := range models.Categories {
		v.Filters = append(v.Filters, Filter{Category: c, Label: c.Label(), Enabled: s.Categories.Enabled(c)})
	}
	if p, ok := s.Selected(points); ok {
		d := NewDetail(p)
		v.Selected = &d
	}
	return v
}
