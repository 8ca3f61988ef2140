package geo

import "math"

const earthRadiusMetres = 6371000

// Distance returns the haversine great-circle distance in metres between two
// WGS84 coordinates, rounded to the nearest whole metre. Inputs are assumed
// to be valid degrees; callers validate user-supplied ranges first.
func Distance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusMetres * c)
}
