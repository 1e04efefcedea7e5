package scoring

import (
	"math"

	"civicreporter-be/models"
)

// SentinelDistanceKm is returned when either endpoint is missing. It is
// larger than every proximity threshold used in this package (0.1, 1 and
// 2 km), so an issue without a location is never "nearby" anything.
const SentinelDistanceKm = 10000.0

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance in kilometers
// between two points, or SentinelDistanceKm if either point is nil.
func DistanceKm(a, b *models.Location) float64 {
	if a == nil || b == nil {
		return SentinelDistanceKm
	}

	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Latitude*math.Pi/180)*math.Cos(b.Latitude*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
