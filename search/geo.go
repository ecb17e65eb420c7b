package search

import "math"

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// distanceKm returns the haversine distance in kilometers between two
// coordinate pairs.
func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat1 - lat2)
	dLon := radians(lon1 - lon2)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat2))*math.Cos(radians(lat1))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
