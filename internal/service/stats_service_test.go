package service

import (
	"testing"

	"github.com/routesafe/backend/internal/domain"
	"github.com/routesafe/backend/internal/store"
)

func newStatsService(records []domain.AccidentRecord) *StatsService {
	return NewStatsService(store.New(records, domain.LoadReport{}))
}

func statsFixture() []domain.AccidentRecord {
	return []domain.AccidentRecord{
		{
			Latitude: 40.70, Longitude: -74.00,
			Date: "06/02/2025", Time: "8:15", // Monday morning
			Injured: 1, Killed: 0, Severity: 1,
			Factor: "Driver Inattention/Distraction", Borough: "BROOKLYN",
		},
		{
			Latitude: 40.71, Longitude: -74.01,
			Date: "06/02/2025", Time: "18:40", // Monday evening
			Injured: 2, Killed: 1, Severity: 7,
			Factor: "Driver Inattention/Distraction", Borough: "BROOKLYN",
		},
		{
			Latitude: 40.80, Longitude: -73.90,
			Date: "07/04/2025", Time: "23:05", // Friday night
			Injured: 0, Killed: 0, Severity: 0,
			Factor: "Unsafe Speed", Borough: "BRONX",
		},
		{
			Latitude: 40.60, Longitude: -74.10,
			Date: "not-a-date", Time: "",
			Injured: 3, Killed: 2, Severity: 13,
			Factor: "", Borough: "",
		},
	}
}

func TestSummary_Totals(t *testing.T) {
	sum := newStatsService(statsFixture()).Summary()

	if sum.TotalAccidents != 4 {
		t.Errorf("total accidents = %d, want 4", sum.TotalAccidents)
	}
	if sum.TotalInjured != 6 {
		t.Errorf("total injured = %d, want 6", sum.TotalInjured)
	}
	if sum.TotalKilled != 3 {
		t.Errorf("total killed = %d, want 3", sum.TotalKilled)
	}
}

func TestSummary_GroupsAndUnknowns(t *testing.T) {
	sum := newStatsService(statsFixture()).Summary()

	if sum.TopFactors["Driver Inattention/Distraction"] != 2 {
		t.Errorf("top factors = %v, want distraction counted twice", sum.TopFactors)
	}
	if sum.TopFactors[unknownKey] != 1 {
		t.Errorf("blank factor not grouped as %s: %v", unknownKey, sum.TopFactors)
	}
	if sum.BoroughCounts["BROOKLYN"] != 2 || sum.BoroughCounts[unknownKey] != 1 {
		t.Errorf("borough counts = %v", sum.BoroughCounts)
	}
}

func TestSummary_TimeBuckets(t *testing.T) {
	sum := newStatsService(statsFixture()).Summary()

	want := map[string]int{"Morning": 1, "Evening": 1, "Night": 1, unknownKey: 1}
	for bucket, count := range want {
		if sum.TimeOfDayCounts[bucket] != count {
			t.Errorf("time of day %s = %d, want %d (all: %v)",
				bucket, sum.TimeOfDayCounts[bucket], count, sum.TimeOfDayCounts)
		}
	}

	if sum.DayOfWeekCounts["Monday"] != 2 || sum.DayOfWeekCounts["Friday"] != 1 || sum.DayOfWeekCounts[unknownKey] != 1 {
		t.Errorf("day of week counts = %v", sum.DayOfWeekCounts)
	}
}

func TestSummary_SeverityDistribution(t *testing.T) {
	sum := newStatsService(statsFixture()).Summary()

	want := map[string]int{
		"Low (0-2)":       2, // severities 0 and 1
		"High (6-10)":     1, // severity 7
		"Very High (>10)": 1, // severity 13
	}
	for bucket, count := range want {
		if sum.SeverityDistribution[bucket] != count {
			t.Errorf("severity bucket %s = %d, want %d", bucket, sum.SeverityDistribution[bucket], count)
		}
	}
}

func TestSummary_TimeSeriesSorted(t *testing.T) {
	sum := newStatsService(statsFixture()).Summary()

	if len(sum.TimeSeries) != 2 {
		t.Fatalf("time series has %d points, want 2: %v", len(sum.TimeSeries), sum.TimeSeries)
	}
	if sum.TimeSeries[0].Date != "2025-06" || sum.TimeSeries[0].Count != 2 {
		t.Errorf("first point = %+v, want 2025-06 with 2", sum.TimeSeries[0])
	}
	if sum.TimeSeries[1].Date != "2025-07" || sum.TimeSeries[1].Count != 1 {
		t.Errorf("second point = %+v, want 2025-07 with 1", sum.TimeSeries[1])
	}
}

func TestTrends_SeverityAggregates(t *testing.T) {
	trends := newStatsService(statsFixture()).Trends()

	if got := trends.SeverityByFactor["Driver Inattention/Distraction"]; got != 4 {
		t.Errorf("mean severity for distraction = %v, want 4", got)
	}
	if got := trends.SeverityByBorough["BROOKLYN"]; got != 4 {
		t.Errorf("mean severity for Brooklyn = %v, want 4", got)
	}
	if trends.InjuriesByBorough["BROOKLYN"] != 3 || trends.FatalitiesByBorough["BROOKLYN"] != 1 {
		t.Errorf("Brooklyn casualties = %d injured / %d killed, want 3/1",
			trends.InjuriesByBorough["BROOKLYN"], trends.FatalitiesByBorough["BROOKLYN"])
	}
}

func TestTrends_HourAndDayCounts(t *testing.T) {
	trends := newStatsService(statsFixture()).Trends()

	if trends.AccidentsByHour["8"] != 1 || trends.AccidentsByHour["18"] != 1 || trends.AccidentsByHour["23"] != 1 {
		t.Errorf("accidents by hour = %v", trends.AccidentsByHour)
	}
	if _, ok := trends.AccidentsByHour[""]; ok {
		t.Error("blank time must not produce an hour bucket")
	}

	// All seven days present, zero-filled
	if len(trends.AccidentsByDay) != 7 {
		t.Fatalf("accidents by day has %d entries, want 7: %v", len(trends.AccidentsByDay), trends.AccidentsByDay)
	}
	if trends.AccidentsByDay["Monday"] != 2 || trends.AccidentsByDay["Sunday"] != 0 {
		t.Errorf("accidents by day = %v", trends.AccidentsByDay)
	}
}

func TestTrends_EmptyDataset(t *testing.T) {
	trends := newStatsService(nil).Trends()

	if len(trends.SeverityByFactor) != 0 {
		t.Errorf("empty dataset produced factor severities: %v", trends.SeverityByFactor)
	}
	if len(trends.AccidentsByDay) != 7 {
		t.Errorf("empty dataset should still zero-fill the week: %v", trends.AccidentsByDay)
	}

	sum := newStatsService(nil).Summary()
	if sum.TotalAccidents != 0 || len(sum.TimeSeries) != 0 {
		t.Errorf("empty dataset summary = %+v", sum)
	}
}
