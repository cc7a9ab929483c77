package models

import "math"

// POI is a single accessibility-relevant location. Loaded once and never mutated.
type POI struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Type        Category `json:"type" bson:"type"`
	Location    GeoPoint `json:"location" bson:"location"`
	Features    []string `json:"features,omitempty" bson:"features,omitempty"`
}

// GeoPoint is a GeoJSON point; Coordinates are [lon, lat].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Lat returns the latitude, or NaN when the point has no coordinates.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return math.NaN()
	}
	return p.Coordinates[1]
}

// Lon returns the longitude, or NaN when the point has no coordinates.
func (p GeoPoint) Lon() float64 {
	if len(p.Coordinates) < 2 {
		return math.NaN()
	}
	return p.Coordinates[0]
}
