package domain

// MonthCount is one point of the monthly accident time series.
type MonthCount struct {
	Date  string `json:"date"` // YYYY-MM
	Count int    `json:"count"`
}

// Summary is the dashboard overview of the whole dataset.
type Summary struct {
	TotalAccidents       int            `json:"total_accidents"`
	TotalInjured         int            `json:"total_injured"`
	TotalKilled          int            `json:"total_killed"`
	TopFactors           map[string]int `json:"top_factors"`
	BoroughCounts        map[string]int `json:"borough_counts"`
	TimeOfDayCounts      map[string]int `json:"time_of_day_counts"`
	DayOfWeekCounts      map[string]int `json:"day_of_week_counts"`
	SeverityDistribution map[string]int `json:"severity_distribution"`
	TimeSeries           []MonthCount   `json:"time_series_data"`
}

// Trends groups severity and casualty aggregates for trend charts.
type Trends struct {
	SeverityByFactor    map[string]float64 `json:"severity_by_factor"`
	SeverityByBorough   map[string]float64 `json:"severity_by_borough"`
	InjuriesByBorough   map[string]int     `json:"injuries_by_borough"`
	FatalitiesByBorough map[string]int     `json:"fatalities_by_borough"`
	AccidentsByHour     map[string]int     `json:"accidents_by_hour"`
	AccidentsByDay      map[string]int     `json:"accidents_by_day"`
}
