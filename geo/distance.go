// Package geo provides great-circle distance and coordinate checks for POIs.
package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"accessibuddy/models"
)

// EarthRadiusKm is the mean Earth radius used by every distance in this module.
const EarthRadiusKm = 6371.0

// Distance computes the great-circle distance in kilometers between two points
// using the Haversine formula. NaN inputs yield NaN.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Between is Distance for two GeoPoints.
func Between(a, b models.GeoPoint) float64 {
	return Distance(a.Lat(), a.Lon(), b.Lat(), b.Lon())
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// Valid reports whether lat/lon are finite decimal degrees within
// [-90, 90] and [-180, 180].
func Valid(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// ValidPoint is Valid for a GeoPoint.
func ValidPoint(p models.GeoPoint) bool {
	return Valid(p.Lat(), p.Lon())
}

// Cap returns the spherical cap of radiusKm around lat/lon.
func Cap(lat, lon, radiusKm float64) s2.Cap {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	return s2.CapFromCenterAngle(center, s1.Angle(radiusKm/EarthRadiusKm))
}

// PointOf converts a GeoPoint into an s2 point.
func PointOf(p models.GeoPoint) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon()))
}
