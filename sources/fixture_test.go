package sources

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessibuddy/models"
)

func TestFixtureSourceLoadsEmbeddedData(t *testing.T) {
	src := NewFixtureSource(0)
	assert.Equal(t, "fixture", src.Name())

	pois, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pois, 92)

	first := pois[0]
	assert.Equal(t, "225", first.ID)
	assert.Equal(t, models.CategoryBench, first.Type)
	assert.Equal(t, "5 Tangreen Crt", first.Name)
	assert.InDelta(t, 43.7969724294129, first.Location.Lat(), 1e-12)
	assert.InDelta(t, -79.4242901034448, first.Location.Lon(), 1e-12)

	counts := map[models.Category]int{}
	for _, p := range pois {
		counts[p.Type]++
	}
	assert.Equal(t, map[models.Category]int{
		models.CategoryBench:    56,
		models.CategoryRestroom: 4,
		models.CategoryOther:    32,
	}, counts)
}

func TestFixtureSourceDelay(t *testing.T) {
	src := NewFixtureSource(20 * time.Millisecond)

	start := time.Now()
	pois, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, pois)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFixtureSourceDelayCancelled(t *testing.T) {
	src := NewFixtureSource(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeFixture(t *testing.T) {
	pois, err := DecodeFixture([]byte(`[
		{"id": "a", "type": "Restroom", "name": "A", "location": [43.1, -79.2], "description": "d", "features": ["Ramp", "Grab bars"]},
		{"id": "b", "type": "drinking fountain", "name": "B", "location": [43.1], "description": ""},
		{"id": "c", "name": "C", "location": [1, 2]}
	]`))
	require.NoError(t, err)
	require.Len(t, pois, 3)

	assert.Equal(t, models.CategoryRestroom, pois[0].Type)
	assert.Equal(t, []string{"Ramp", "Grab bars"}, pois[0].Features)
	assert.Equal(t, 43.1, pois[0].Location.Lat())
	assert.Equal(t, -79.2, pois[0].Location.Lon())

	assert.Equal(t, models.CategoryOther, pois[1].Type)
	assert.Empty(t, pois[1].Location.Coordinates)

	assert.Equal(t, models.CategoryOther, pois[2].Type)
}

func TestDecodeFixtureInvalidJSON(t *testing.T) {
	_, err := DecodeFixture([]byte(`{"id": 1}`))
	assert.Error(t, err)
}
