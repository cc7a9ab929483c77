package filter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessibuddy/geo"
	"accessibuddy/models"
)

func poi(id string, c models.Category, name, desc string, lat, lon float64) models.POI {
	return models.POI{
		ID:          id,
		Type:        c,
		Name:        name,
		Description: desc,
		Location:    models.NewGeoPoint(lat, lon),
	}
}

func testPoints() []models.POI {
	return []models.POI{
		poi("1", models.CategoryBench, "Yonge & Bloor bench", "Bench near the subway entrance.", 43.6709, -79.3857),
		poi("2", models.CategoryRestroom, "Union Station washroom", "Accessible washroom in the concourse.", 43.6453, -79.3806),
		poi("3", models.CategoryBench, "Finch bench", "Bench on Yonge St north of Finch.", 43.7804, -79.4153),
		poi("4", models.CategoryOther, "Scarborough shelter", "Shelter at the Town Centre.", 43.7764, -79.2318),
		poi("5", models.CategoryBench, "College Park bench", "Bench in the park.", 43.6599, -79.3830),
		poi("6", models.CategoryTransitShelter, "Eglinton shelter", "Shelter at Yonge & Eglinton.", 43.7067, -79.3984),
	}
}

func ids(points []models.POI) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{
			name:     "all categories, no search",
			criteria: Criteria{Categories: models.AllCategories(), RadiusKm: 5},
			expected: []string{"1", "2", "3", "4", "5", "6"},
		},
		{
			name: "benches only keeps original order",
			criteria: Criteria{
				Categories: models.CategoryMask{
					models.CategoryBench:    true,
					models.CategoryRestroom: false,
					models.CategoryOther:    false,
				},
			},
			expected: []string{"1", "3", "5"},
		},
		{
			name:     "empty mask hides everything",
			criteria: Criteria{Categories: models.CategoryMask{}},
			expected: []string{},
		},
		{
			name:     "text matches plus points near the first match",
			criteria: Criteria{Categories: models.AllCategories(), SearchText: "Yonge", RadiusKm: 5},
			expected: []string{"1", "2", "3", "5", "6"},
		},
		{
			name:     "search is case-insensitive",
			criteria: Criteria{Categories: models.AllCategories(), SearchText: "yONGE", RadiusKm: 5},
			expected: []string{"1", "2", "3", "5", "6"},
		},
		{
			name:     "text matches survive a tiny radius",
			criteria: Criteria{Categories: models.AllCategories(), SearchText: "Yonge", RadiusKm: 0.1},
			expected: []string{"1", "3", "6"},
		},
		{
			name:     "nothing matches",
			criteria: Criteria{Categories: models.AllCategories(), SearchText: "nonexistent-place", RadiusKm: 20000},
			expected: []string{},
		},
		{
			name:     "only the first match anchors the radius",
			criteria: Criteria{Categories: models.AllCategories(), SearchText: "shelter", RadiusKm: 5},
			expected: []string{"4", "6"},
		},
		{
			name: "anchor outside the enabled categories still anchors",
			criteria: Criteria{
				Categories: models.CategoryMask{models.CategoryRestroom: true},
				SearchText: "Yonge",
				RadiusKm:   5,
			},
			expected: []string{"2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(testPoints(), tt.criteria)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestApplyRadiusIsInclusive(t *testing.T) {
	points := testPoints()
	radius := geo.Between(points[0].Location, points[4].Location)

	got := Apply(points, Criteria{
		Categories: models.CategoryMask{models.CategoryBench: true},
		SearchText: "Bloor",
		RadiusKm:   radius,
	})
	assert.Equal(t, []string{"1", "5"}, ids(got))

	got = Apply(points, Criteria{
		Categories: models.CategoryMask{models.CategoryBench: true},
		SearchText: "Bloor",
		RadiusKm:   radius - 1e-9,
	})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApplyMalformedCoordinates(t *testing.T) {
	points := append(testPoints(), models.POI{
		ID:   "7",
		Type: models.CategoryBench,
		Name: "Unplaced bench",
	})

	got := Apply(points, Criteria{Categories: models.AllCategories(), SearchText: "Yonge", RadiusKm: 20000})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(got))

	// An anchor without coordinates reaches nothing by distance.
	got = Apply(points, Criteria{Categories: models.AllCategories(), SearchText: "Unplaced", RadiusKm: 20000})
	assert.Equal(t, []string{"7"}, ids(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	points := testPoints()
	before := ids(points)
	_ = Apply(points, Criteria{Categories: models.CategoryMask{models.CategoryBench: true}, SearchText: "bench", RadiusKm: 1})
	assert.Equal(t, before, ids(points))
}

func TestApplyCategoryPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	queries := []string{"", "bench", "shelter", "Yonge", "nothing-here"}

	for i := 0; i < 200; i++ {
		points := make([]models.POI, 0, 30)
		for j := 0; j < 30; j++ {
			c := models.Categories[rng.Intn(len(models.Categories))]
			points = append(points, poi(
				string(rune('a'+j%26)),
				c,
				"Stop "+string(c),
				"",
				43.6+rng.Float64()*0.2,
				-79.5+rng.Float64()*0.3,
			))
		}
		mask := models.CategoryMask{}
		for _, c := range models.Categories {
			mask[c] = rng.Intn(2) == 0
		}
		criteria := Criteria{
			Categories: mask,
			SearchText: queries[rng.Intn(len(queries))],
			RadiusKm:   rng.Float64() * 10,
		}

		for _, p := range Apply(points, criteria) {
			require.True(t, mask.Enabled(p.Type), "iteration %d returned disabled category %s", i, p.Type)
		}
	}
}

func TestFirstAnchor(t *testing.T) {
	anchor, ok := FirstAnchor(testPoints(), "YONGE")
	require.True(t, ok)
	assert.Equal(t, "1", anchor.ID)

	_, ok = FirstAnchor(testPoints(), "nonexistent-place")
	assert.False(t, ok)
}

func TestMatches(t *testing.T) {
	p := testPoints()[2]
	assert.True(t, Matches(p, "finch"))
	assert.True(t, Matches(p, "yonge st"))
	assert.False(t, Matches(p, "bloor"))
}
