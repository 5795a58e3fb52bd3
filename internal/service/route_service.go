package service

import (
	"fmt"
	"math"

	"github.com/routesafe/backend/internal/domain"
	"github.com/routesafe/backend/internal/geo"
	"github.com/routesafe/backend/internal/store"
	"github.com/routesafe/backend/pkg/utils"
)

// Bounding-box padding in degrees. The polyline padding can be tighter
// because the box already hugs the path; the endpoint fallback needs
// slack for whatever path the traveler actually takes between them.
const (
	polylinePadding = 0.005
	endpointPadding = 0.02
)

// DefaultMaxDistanceKm is the proximity threshold when none is configured.
const DefaultMaxDistanceKm = 0.5

// RouteService finds accidents near a travel route and scores its safety.
type RouteService struct {
	store         *store.Store
	maxDistanceKm float64
}

// NewRouteService creates a route service over the loaded dataset.
// A non-positive threshold falls back to the default.
func NewRouteService(st *store.Store, maxDistanceKm float64) *RouteService {
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultMaxDistanceKm
	}
	return &RouteService{store: st, maxDistanceKm: maxDistanceKm}
}

// AssessRoute validates the request, filters the dataset down to the
// accidents within the distance threshold of the route, and derives the
// safety assessment. Per-record failures skip that record only.
func (s *RouteService) AssessRoute(req domain.RouteRequest) (domain.RouteAssessment, error) {
	if req.FromLat == nil || req.FromLng == nil || req.ToLat == nil || req.ToLng == nil {
		return domain.RouteAssessment{}, domain.ErrMissingInput
	}
	start := domain.RoutePoint{Latitude: *req.FromLat, Longitude: *req.FromLng}
	end := domain.RoutePoint{Latitude: *req.ToLat, Longitude: *req.ToLng}
	if !finiteCoord(start) || !finiteCoord(end) {
		return domain.RouteAssessment{}, fmt.Errorf("%w: non-numeric coordinate", domain.ErrMissingInput)
	}

	polyline := parsePolyline(req.RouteCoordinates)

	// Padding must never be tighter than the threshold expressed in
	// degrees, or the box could false-negative records right at the edge.
	minPadding := s.maxDistanceKm / geo.KmPerDegree

	var box domain.BoundingBox
	if len(polyline) > 0 {
		box = geo.BoundsOf(polyline, math.Max(polylinePadding, minPadding))
	} else {
		box = geo.BoundsOf([]domain.RoutePoint{start, end}, math.Max(endpointPadding, minPadding))
	}

	candidates := s.store.Within(box)

	hotspots := make([]domain.ProximityResult, 0, len(candidates))
	for _, rec := range candidates {
		if math.IsNaN(rec.Latitude) || math.IsNaN(rec.Longitude) {
			continue
		}

		var deg float64
		if len(polyline) > 1 {
			deg = geo.PointToRoute(rec.Latitude, rec.Longitude, polyline)
		} else {
			deg = geo.PointToSegment(rec.Latitude, rec.Longitude,
				start.Latitude, start.Longitude, end.Latitude, end.Longitude)
		}
		if math.IsNaN(deg) || math.IsInf(deg, 0) {
			continue
		}

		km := geo.DegreesToKm(deg)
		if km <= s.maxDistanceKm {
			hotspots = append(hotspots, domain.ProximityResult{
				AccidentRecord: *rec,
				DistanceKm:     utils.RoundTo(km, 4),
			})
		}
	}

	assessment := ScoreSafety(hotspots)

	path := polyline
	if len(path) < 2 {
		path = []domain.RoutePoint{start, end}
	}

	return domain.RouteAssessment{
		Hotspots:      hotspots,
		SafetyScore:   assessment.Score,
		SafetyLevel:   assessment.Level,
		AccidentCount: len(hotspots),
		RouteLengthKm: utils.RoundTo(geo.RouteLengthKm(path), 3),
	}, nil
}

// ScoreSafety derives the 0-100 score and level from nearby accidents.
// Density costs up to 80 points (5 per accident), severity up to 15, so
// the score bottoms out at 5 and no further clamp is needed. Pure and
// deterministic.
func ScoreSafety(results []domain.ProximityResult) domain.SafetyAssessment {
	score := 100.0
	if len(results) > 0 {
		var totalSeverity float64
		for _, r := range results {
			totalSeverity += r.Severity
		}
		score -= math.Min(80, float64(len(results))*5)
		score -= math.Min(15, totalSeverity)
	}
	return domain.SafetyAssessment{
		Score: int(math.Round(score)),
		Level: ClassifySafety(int(math.Round(score))),
	}
}

// ClassifySafety buckets a score: below 70 is Low, below 85 Medium,
// otherwise High.
func ClassifySafety(score int) domain.SafetyLevel {
	switch {
	case score < 70:
		return domain.SafetyLow
	case score < 85:
		return domain.SafetyMedium
	default:
		return domain.SafetyHigh
	}
}

// parsePolyline validates the raw [lat, lng] pairs from the request.
// Malformed pairs are skipped, never fatal.
func parsePolyline(coords [][]float64) []domain.RoutePoint {
	points := make([]domain.RoutePoint, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			continue
		}
		p := domain.RoutePoint{Latitude: pair[0], Longitude: pair[1]}
		if !finiteCoord(p) {
			continue
		}
		points = append(points, p)
	}
	return points
}

func finiteCoord(p domain.RoutePoint) bool {
	return !math.IsNaN(p.Latitude) && !math.IsInf(p.Latitude, 0) &&
		!math.IsNaN(p.Longitude) && !math.IsInf(p.Longitude, 0)
}
