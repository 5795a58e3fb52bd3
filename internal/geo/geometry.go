package geo

import (
	"math"

	"github.com/umahmood/haversine"

	"github.com/routesafe/backend/internal/domain"
)

// KmPerDegree is the flat-earth conversion used for segment distances.
// It is only valid at city scale; true geodesic distance would need a
// spherical correction.
const KmPerDegree = 111.0

// PointToSegment returns the planar distance in degrees from point
// (lat, lng) to the segment (aLat, aLng)-(bLat, bLng). The projection
// parameter is clamped to the segment, so points past either endpoint
// measure to that endpoint. A zero-length segment degrades to the
// distance to its single point.
func PointToSegment(lat, lng, aLat, aLng, bLat, bLng float64) float64 {
	segLat := bLat - aLat
	segLng := bLng - aLng
	segLen := math.Hypot(segLat, segLng)
	if segLen == 0 {
		return math.Hypot(lat-aLat, lng-aLng)
	}

	// Projection length of the point vector onto the segment direction.
	t := ((lat-aLat)*segLat + (lng-aLng)*segLng) / segLen

	switch {
	case t < 0:
		return math.Hypot(lat-aLat, lng-aLng)
	case t > segLen:
		return math.Hypot(lat-bLat, lng-bLng)
	default:
		projLat := aLat + t*segLat/segLen
		projLng := aLng + t*segLng/segLen
		return math.Hypot(lat-projLat, lng-projLng)
	}
}

// PointToRoute returns the minimum distance in degrees from a point to a
// polyline. Routes with fewer than two points cannot match anything and
// report +Inf.
func PointToRoute(lat, lng float64, route []domain.RoutePoint) float64 {
	if len(route) < 2 {
		return math.Inf(1)
	}

	minDist := math.Inf(1)
	for i := 0; i < len(route)-1; i++ {
		d := PointToSegment(lat, lng,
			route[i].Latitude, route[i].Longitude,
			route[i+1].Latitude, route[i+1].Longitude)
		if math.IsNaN(d) {
			continue
		}
		if d < minDist {
			minDist = d
		}
	}
	return minDist
}

// DegreesToKm converts a planar degree distance to kilometers.
func DegreesToKm(deg float64) float64 {
	return deg * KmPerDegree
}

// BoundsOf computes the padded bounding box around a set of route points.
// The box is a pre-filter only; padding must stay generous enough that no
// record within the distance threshold falls outside it.
func BoundsOf(points []domain.RoutePoint, padding float64) domain.BoundingBox {
	box := domain.BoundingBox{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLng: math.Inf(1), MaxLng: math.Inf(-1),
	}
	for _, p := range points {
		box.MinLat = math.Min(box.MinLat, p.Latitude)
		box.MaxLat = math.Max(box.MaxLat, p.Latitude)
		box.MinLng = math.Min(box.MinLng, p.Longitude)
		box.MaxLng = math.Max(box.MaxLng, p.Longitude)
	}
	box.MinLat -= padding
	box.MaxLat += padding
	box.MinLng -= padding
	box.MaxLng += padding
	return box
}

// RouteLengthKm sums the haversine length of every leg of a route.
func RouteLengthKm(route []domain.RoutePoint) float64 {
	var total float64
	for i := 1; i < len(route); i++ {
		_, km := haversine.Distance(
			haversine.Coord{Lat: route[i-1].Latitude, Lon: route[i-1].Longitude},
			haversine.Coord{Lat: route[i].Latitude, Lon: route[i].Longitude},
		)
		total += km
	}
	return total
}
