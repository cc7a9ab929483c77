package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
	}{
		{"bench", CategoryBench},
		{"Bench", CategoryBench},
		{" restroom ", CategoryRestroom},
		{"washroom", CategoryRestroom},
		{"transit-shelter", CategoryTransitShelter},
		{"Transit Shelter", CategoryTransitShelter},
		{"other", CategoryOther},
		{"fountain", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCategory(tt.input))
		})
	}
}

func TestCategoryUnmarshalDegradesToOther(t *testing.T) {
	var poi POI
	err := json.Unmarshal([]byte(`{"id":"1","type":"drinking-fountain"}`), &poi)
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, poi.Type)

	err = json.Unmarshal([]byte(`{"id":"2","type":"Bench"}`), &poi)
	require.NoError(t, err)
	assert.Equal(t, CategoryBench, poi.Type)
}

func TestCategoryKnown(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Known(), c)
	}
	assert.False(t, Category("fountain").Known())
}

func TestCategoryMask(t *testing.T) {
	mask := AllCategories()
	for _, c := range Categories {
		assert.True(t, mask.Enabled(c))
	}

	clone := mask.Clone()
	clone[CategoryBench] = false
	assert.True(t, mask.Enabled(CategoryBench), "clone must not alias the original")
	assert.False(t, clone.Enabled(CategoryBench))

	assert.False(t, CategoryMask{}.Enabled(CategoryRestroom), "missing keys are disabled")
}

func TestGeoPoint(t *testing.T) {
	p := NewGeoPoint(43.6532, -79.3832)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, []float64{-79.3832, 43.6532}, p.Coordinates)
	assert.Equal(t, 43.6532, p.Lat())
	assert.Equal(t, -79.3832, p.Lon())

	var empty GeoPoint
	assert.True(t, math.IsNaN(empty.Lat()))
	assert.True(t, math.IsNaN(empty.Lon()))
}

func TestLookupCategory(t *testing.T) {
	c, ok := LookupCategory("Transit Shelter")
	assert.True(t, ok)
	assert.Equal(t, CategoryTransitShelter, c)

	_, ok = LookupCategory("Litter bin")
	assert.False(t, ok)
}

func TestCategoryText(t *testing.T) {
	assert.Equal(t, "Benches", CategoryBench.Label())
	assert.Equal(t, "Bench", CategoryBench.Noun())
	assert.Equal(t, "Public washroom", CategoryRestroom.Noun())
	assert.Equal(t, "Other", Category("fountain").Label())
}
