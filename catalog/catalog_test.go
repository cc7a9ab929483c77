package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessibuddy/models"
)

func TestNew(t *testing.T) {
	pois := []models.POI{
		{ID: "1", Type: models.CategoryBench, Name: "first", Location: models.NewGeoPoint(43.65, -79.38)},
		{ID: "", Type: models.CategoryBench, Location: models.NewGeoPoint(43.65, -79.38)},
		{ID: "2", Type: models.Category("Washroom"), Location: models.NewGeoPoint(43.66, -79.39)},
		{ID: "3", Type: models.CategoryBench, Location: models.NewGeoPoint(91, 0)},
		{ID: "4", Type: models.CategoryBench, Location: models.NewGeoPoint(math.NaN(), 0)},
		{ID: "5", Type: models.CategoryBench},
		{ID: "1", Type: models.CategoryOther, Name: "second", Location: models.NewGeoPoint(43.67, -79.4)},
		{ID: "6", Type: models.Category("fountain"), Location: models.NewGeoPoint(43.68, -79.41)},
	}

	c, rejected := New(pois)

	require.Equal(t, 3, c.Len())
	ids := []string{}
	for _, p := range c.All() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "6"}, ids)

	assert.Equal(t, []Rejection{
		{ID: "", Reason: "missing id"},
		{ID: "3", Reason: "invalid coordinates"},
		{ID: "4", Reason: "invalid coordinates"},
		{ID: "5", Reason: "invalid coordinates"},
		{ID: "1", Reason: "duplicate id"},
	}, rejected)

	first, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "first", first.Name, "the first record with an id wins")

	washroom, _ := c.Get("2")
	assert.Equal(t, models.CategoryRestroom, washroom.Type)
	fountain, _ := c.Get("6")
	assert.Equal(t, models.CategoryOther, fountain.Type)

	_, ok = c.Get("3")
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	c, _ := New([]models.POI{
		{ID: "1", Type: models.CategoryBench, Location: models.NewGeoPoint(1, 1)},
		{ID: "2", Type: models.CategoryBench, Location: models.NewGeoPoint(1, 1)},
		{ID: "3", Type: models.CategoryRestroom, Location: models.NewGeoPoint(1, 1)},
	})

	assert.Equal(t, map[models.Category]int{
		models.CategoryRestroom:       1,
		models.CategoryBench:          2,
		models.CategoryTransitShelter: 0,
		models.CategoryOther:          0,
	}, c.Counts())
}

func TestNewEmpty(t *testing.T) {
	c, rejected := New(nil)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, rejected)
	assert.NotNil(t, c.All())
}

func TestAllReturnsCopy(t *testing.T) {
	c, _ := New([]models.POI{
		{ID: "1", Name: "Union bench", Type: models.CategoryBench, Location: models.NewGeoPoint(43.65, -79.38)},
	})

	all := c.All()
	all[0].Name = "changed"

	got, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Union bench", got.Name)
	assert.Equal(t, "Union bench", c.All()[0].Name)
}
