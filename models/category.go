package models

import (
	"encoding/json"
	"strings"
)

// Category groups POIs for filtering and picks their display icon.
type Category string

const (
	CategoryRestroom       Category = "restroom"
	CategoryBench          Category = "bench"
	CategoryTransitShelter Category = "transit-shelter"
	CategoryOther          Category = "other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryRestroom,
	CategoryBench,
	CategoryTransitShelter,
	CategoryOther,
}

var categoryAliases = map[string]Category{
	"restroom":        CategoryRestroom,
	"restrooms":       CategoryRestroom,
	"washroom":        CategoryRestroom,
	"toilet":          CategoryRestroom,
	"bench":           CategoryBench,
	"benches":         CategoryBench,
	"transit-shelter": CategoryTransitShelter,
	"transit_shelter": CategoryTransitShelter,
	"transit shelter": CategoryTransitShelter,
	"shelter":         CategoryTransitShelter,
	"other":           CategoryOther,
}

// ParseCategory maps a raw category string onto a known Category.
// Unrecognised values fall into CategoryOther.
func ParseCategory(s string) Category {
	if c, ok := LookupCategory(s); ok {
		return c
	}
	return CategoryOther
}

// LookupCategory is ParseCategory without the fallback.
func LookupCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Known reports whether c is one of the enumerated categories.
func (c Category) Known() bool {
	switch c {
	case CategoryRestroom, CategoryBench, CategoryTransitShelter, CategoryOther:
		return true
	}
	return false
}

// Label is the human-readable plural used by filter toggles.
func (c Category) Label() string {
	switch c {
	case CategoryRestroom:
		return "Restrooms"
	case CategoryBench:
		return "Benches"
	case CategoryTransitShelter:
		return "Transit shelters"
	default:
		return "Other"
	}
}

// Noun names a single POI of the category, as used in generated descriptions.
func (c Category) Noun() string {
	switch c {
	case CategoryRestroom:
		return "Public washroom"
	case CategoryBench:
		return "Bench"
	case CategoryTransitShelter:
		return "Transit shelter"
	default:
		return "Point of interest"
	}
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = ParseCategory(s)
	return nil
}

// CategoryMask holds one toggle per category. Missing keys are disabled.
type CategoryMask map[Category]bool

// AllCategories returns a mask with every category enabled.
func AllCategories() CategoryMask {
	m := make(CategoryMask, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}

// Enabled reports whether c is toggled on.
func (m CategoryMask) Enabled(c Category) bool {
	return m[c]
}

// Clone returns an independent copy of the mask.
func (m CategoryMask) Clone() CategoryMask {
	out := make(CategoryMask, len(m))
	for c, on := range m {
		out[c] = on
	}
	return out
}
