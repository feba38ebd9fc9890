package servicecenter

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Nearby is a center paired with its distance from the search origin.
type Nearby struct {
	Center     *ServiceCenter
	DistanceKm float64
}

// SearchBounds returns the rectangle enclosing the circle of radiusKm around (lat, lng).
func SearchBounds(lat, lng, radiusKm float64) Bounds {
	b := geo.NewBoundAroundPoint(orb.Point{lng, lat}, radiusKm*1000)
	return Bounds{
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
		MinLng: b.Min.Lon(),
		MaxLng: b.Max.Lon(),
	}
}

// DistanceKm is the haversine distance between two coordinates in kilometres.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return geo.DistanceHaversine(orb.Point{lng1, lat1}, orb.Point{lng2, lat2}) / 1000
}

// FilterNearby keeps the centers within radiusKm of (lat, lng), closest
// first. Centers without coordinates are skipped. limit <= 0 means no limit.
func FilterNearby(centers []*ServiceCenter, lat, lng, radiusKm float64, limit int) []Nearby {
	origin := orb.Point{lng, lat}
	out := make([]Nearby, 0, len(centers))
	for _, c := range centers {
		p, ok := c.Location()
		if !ok {
			continue
		}
		d := geo.DistanceHaversine(origin, p) / 1000
		if d <= radiusKm {
			out = append(out, Nearby{Center: c, DistanceKm: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
