// Package catalog holds the validated, immutable POI set built at ingestion.
package catalog

import (
	"log/slog"
	"slices"

	"accessibuddy/geo"
	"accessibuddy/models"
)

// Catalog is safe for concurrent reads; it is never modified after New.
type Catalog struct {
	pois  []models.POI
	index map[string]int
}

// Rejection records a record dropped during ingestion.
type Rejection struct {
	ID     string
	Reason string
}

// New validates pois and keeps the survivors in their original order.
// Records with invalid coordinates, empty ids or ids already seen are
// dropped; unknown categories are folded into CategoryOther.
func New(pois []models.POI) (*Catalog, []Rejection) {
	c := &Catalog{
		pois:  make([]models.POI, 0, len(pois)),
		index: make(map[string]int, len(pois)),
	}
	var rejected []Rejection

	for _, p := range pois {
		switch {
		case p.ID == "":
			rejected = append(rejected, Rejection{ID: p.ID, Reason: "missing id"})
			continue
		case !geo.ValidPoint(p.Location):
			rejected = append(rejected, Rejection{ID: p.ID, Reason: "invalid coordinates"})
			continue
		}
		if _, dup := c.index[p.ID]; dup {
			rejected = append(rejected, Rejection{ID: p.ID, Reason: "duplicate id"})
			continue
		}
		if !p.Type.Known() {
			p.Type = models.ParseCategory(string(p.Type))
		}
		c.index[p.ID] = len(c.pois)
		c.pois = append(c.pois, p)
	}

	for _, r := range rejected {
		slog.Warn("Dropped point of interest", "id", r.ID, "reason", r.Reason)
	}
	slog.Info("Catalog built", "loaded", len(c.pois), "dropped", len(rejected))
	return c, rejected
}

// All returns a copy of the POIs in load order.
func (c *Catalog) All() []models.POI {
	return slices.Clone(c.pois)
}

// Get looks up a POI by id.
func (c *Catalog) Get(id string) (models.POI, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.POI{}, false
	}
	return c.pois[i], true
}

func (c *Catalog) Len() int {
	return len(c.pois)
}

// Counts returns the number of POIs per known category, zero counts included.
func (c *Catalog) Counts() map[models.Category]int {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, cat := range models.Categories {
		counts[cat] = 0
	}
	for _, p := range c.pois {
		counts[p.Type]++
	}
	return counts
}
