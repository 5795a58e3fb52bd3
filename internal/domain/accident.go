package domain

// AccidentRecord is one collision report from the city dataset.
// Severity is derived once at load time and never recomputed.
type AccidentRecord struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Injured     int     `json:"injured"`
	Killed      int     `json:"killed"`
	Severity    float64 `json:"severity"`
	Factor      string  `json:"factor"`
	Street      string  `json:"street"`
	CrossStreet string  `json:"cross_street"`
	Borough     string  `json:"borough"`
}

// ComputeSeverity weights fatalities five times heavier than injuries.
func ComputeSeverity(injured, killed int) float64 {
	return float64(injured) + 5*float64(killed)
}

// ProximityResult is an accident found within the distance threshold of a
// route, flattened for the response payload.
type ProximityResult struct {
	AccidentRecord
	DistanceKm float64 `json:"distance_km"`
}

// SafetyLevel buckets a numeric safety score for display.
type SafetyLevel string

const (
	SafetyHigh   SafetyLevel = "High"
	SafetyMedium SafetyLevel = "Medium"
	SafetyLow    SafetyLevel = "Low"
)

// SafetyAssessment summarizes route risk from nearby accident history.
type SafetyAssessment struct {
	Score int         `json:"safety_score"`
	Level SafetyLevel `json:"safety_level"`
}

// RouteAssessment is the full payload for a route-proximity request.
type RouteAssessment struct {
	Hotspots      []ProximityResult `json:"hotspots"`
	SafetyScore   int               `json:"safety_score"`
	SafetyLevel   SafetyLevel       `json:"safety_level"`
	AccidentCount int               `json:"accident_count"`
	RouteLengthKm float64           `json:"route_length_km"`
}
