package services

import (
	"math"

	"cleansweep-be/models"
)

const earthRadiusMeters = 6371000.0

// CleanupProximityMeters is how far a cleanup photo may be taken from the
// report it closes before the submission is rejected.
const CleanupProximityMeters = 150.0

// CleanupTooFar reports whether a computed report-to-cleanup distance is
// grounds for rejecting the cleanup. An incomparable distance (+Inf,
// meaning one of the locations is missing) never rejects: it means the
// check cannot be made, not that the check failed.
func CleanupTooFar(distance float64) bool {
	if math.IsInf(distance, 1) {
		return false
	}
	return distance > CleanupProximityMeters
}

// DistanceMeters calculates the great-circle distance between two
// coordinate pairs (specified in decimal degrees) using the haversine
// formula. A missing or NaN coordinate yields +Inf, which callers must
// treat as "cannot compare, skip".
func DistanceMeters(a, b *models.Coordinates) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	if math.IsNaN(a.Lat) || math.IsNaN(a.Lng) || math.IsNaN(b.Lat) || math.IsNaN(b.Lng) {
		return math.Inf(1)
	}

	radLat1 := a.Lat * math.Pi / 180
	radLat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}
