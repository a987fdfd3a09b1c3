package utils

import "math"

// earthRadiusMeters is the spherical-earth approximation used by the
// haversine formula.
const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance in meters between two
// coordinates on a spherical earth.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// WithinRadius reports whether the customer position is inside the event
// geofence. A distance exactly equal to radiusMeters passes.
func WithinRadius(customerLat, customerLon, eventLat, eventLon, radiusMeters float64) bool {
	return HaversineMeters(customerLat, customerLon, eventLat, eventLon) <= radiusMeters
}

// ValidCoordinate reports whether lat/lon form a real WGS84 coordinate.
// NaN and out-of-range values are rejected at the request boundary instead of
// being coerced.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
