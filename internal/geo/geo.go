// internal/geo/geo.go
//
// Great-circle distance and compass direction between coordinates.
// Distance uses the haversine formula on a mean-radius sphere; direction is
// the initial bearing from the guess toward the target, bucketed into the
// eight compass points.

package geo

import "math"

// EarthRadiusMeters is the IUGG mean Earth radius.
const EarthRadiusMeters = 6371008.8

// Direction is one of the eight compass points.
type Direction string

const (
	North     Direction = "N"
	NorthEast Direction = "NE"
	East      Direction = "E"
	SouthEast Direction = "SE"
	South     Direction = "S"
	SouthWest Direction = "SW"
	West      Direction = "W"
	NorthWest Direction = "NW"
)

// points in bearing order; bucket i covers [i*45-22.5, i*45+22.5).
var points = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Point is a WGS 84 coordinate in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Distance returns the great-circle distance between a and b in meters,
// rounded to the nearest meter. Zero iff the coordinates are identical.
func Distance(a, b Point) int {
	if a == b {
		return 0
	}
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
	return int(math.Round(EarthRadiusMeters * c))
}

// Bearing returns the initial bearing from a to b in degrees [0, 360).
func Bearing(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLng := radians(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Compass buckets a bearing into one of the eight points. Boundaries sit at
// odd multiples of 22.5°, so each point owns a contiguous 45° arc and 0°
// is squarely North.
func Compass(bearing float64) Direction {
	idx := int(math.Mod(bearing+22.5, 360) / 45)
	return points[idx]
}

// Score computes the distance and direction from guessed toward target.
// When the coordinates are identical the distance is 0 and the direction is
// meaningless; callers treat distance 0 as the win and ignore it.
func Score(guessed, target Point) (distanceMeters int, direction Direction) {
	return Distance(guessed, target), Compass(Bearing(guessed, target))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
