package domain

// RoutePoint is a single vertex of a travel route.
type RoutePoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// BoundingBox is an axis-aligned lat/lng rectangle used as a cheap
// pre-filter before exact distance computation. It is never the final
// proximity criterion.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the point lies inside the box (inclusive).
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// RouteRequest carries the coordinates of a route to assess. From/to are
// required; pointers distinguish an absent field from a legitimate zero
// coordinate. RouteCoordinates, when present, is an ordered list of
// [lat, lng] pairs tracing the actual path.
type RouteRequest struct {
	FromLat          *float64    `json:"from_lat"`
	FromLng          *float64    `json:"from_lng"`
	ToLat            *float64    `json:"to_lat"`
	ToLng            *float64    `json:"to_lng"`
	RouteCoordinates [][]float64 `json:"route_coordinates"`
}
