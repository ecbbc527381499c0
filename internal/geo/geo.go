package geo

import (
	"math"
	"strings"

	"github.com/smart-travel-ai/itinerary-engine/internal/catalog"
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance in kilometers between two
// coordinates using the Haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	dlat := lat2Rad - lat1Rad
	dlon := lon2Rad - lon1Rad

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// CityCenter looks up the reference coordinate for a city. Lookup is
// best-effort: an unknown city returns ok=false and the caller passes all
// rows through unfiltered.
func CityCenter(city string) (Point, bool) {
	p, ok := cityCenters[strings.ToLower(strings.TrimSpace(city))]
	return p, ok
}

// WithinRadius keeps the rows at most radiusKm from center and returns the
// computed distance for each kept row. It never widens the radius on its
// own; an empty result is the engine's problem to resolve.
func WithinRadius(snapshot *catalog.Snapshot, rows []int, center Point, radiusKm float64) ([]int, []float64) {
	var kept []int
	var distances []float64
	for _, i := range rows {
		poi := snapshot.POIAt(i)
		d := Distance(center.Lat, center.Lon, poi.Latitude, poi.Longitude)
		if d <= radiusKm {
			kept = append(kept, i)
			distances = append(distances, d)
		}
	}
	return kept, distances
}
