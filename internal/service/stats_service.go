package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/routesafe/backend/internal/domain"
	"github.com/routesafe/backend/internal/store"
	"github.com/routesafe/backend/pkg/utils"
)

// unknownKey groups records whose borough, factor or timestamp could not
// be read.
const unknownKey = "Unknown"

// Date layouts seen in the dataset exports.
var dateLayouts = []string{"01/02/2006", "2006-01-02"}

var dayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// StatsService computes read-only aggregate views over the loaded
// dataset for the dashboard.
type StatsService struct {
	store *store.Store
}

// NewStatsService creates a stats service over the loaded dataset.
func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{store: st}
}

// Summary builds the dataset overview: totals, top contributing factors,
// borough and time-bucket counts, severity distribution and the monthly
// time series.
func (s *StatsService) Summary() domain.Summary {
	records := s.store.All()

	sum := domain.Summary{
		TotalAccidents:       len(records),
		BoroughCounts:        make(map[string]int),
		TimeOfDayCounts:      make(map[string]int),
		DayOfWeekCounts:      make(map[string]int),
		SeverityDistribution: make(map[string]int),
	}

	factorCounts := make(map[string]int)
	monthCounts := make(map[string]int)

	for _, rec := range records {
		sum.TotalInjured += rec.Injured
		sum.TotalKilled += rec.Killed

		factorCounts[orUnknown(rec.Factor)]++
		sum.BoroughCounts[orUnknown(rec.Borough)]++
		sum.SeverityDistribution[severityBucket(rec.Severity)]++

		hour, ok := crashHour(rec.Time)
		if ok {
			sum.TimeOfDayCounts[timeOfDay(hour)]++
		} else {
			sum.TimeOfDayCounts[unknownKey]++
		}

		if date, ok := crashDate(rec.Date); ok {
			sum.DayOfWeekCounts[date.Weekday().String()]++
			monthCounts[date.Format("2006-01")]++
		} else {
			sum.DayOfWeekCounts[unknownKey]++
		}
	}

	sum.TopFactors = topNByCount(factorCounts, 10)

	sum.TimeSeries = make([]domain.MonthCount, 0, len(monthCounts))
	for month, count := range monthCounts {
		sum.TimeSeries = append(sum.TimeSeries, domain.MonthCount{Date: month, Count: count})
	}
	sort.Slice(sum.TimeSeries, func(i, j int) bool {
		return sum.TimeSeries[i].Date < sum.TimeSeries[j].Date
	})

	return sum
}

// Trends builds the severity and casualty aggregates for trend charts.
func (s *StatsService) Trends() domain.Trends {
	records := s.store.All()

	trends := domain.Trends{
		SeverityByFactor:    make(map[string]float64),
		SeverityByBorough:   make(map[string]float64),
		InjuriesByBorough:   make(map[string]int),
		FatalitiesByBorough: make(map[string]int),
		AccidentsByHour:     make(map[string]int),
		AccidentsByDay:      make(map[string]int),
	}

	factorSeverity := make(map[string][]float64)
	boroughSeverity := make(map[string][]float64)

	for _, rec := range records {
		factorSeverity[orUnknown(rec.Factor)] = append(factorSeverity[orUnknown(rec.Factor)], rec.Severity)

		borough := orUnknown(rec.Borough)
		boroughSeverity[borough] = append(boroughSeverity[borough], rec.Severity)
		trends.InjuriesByBorough[borough] += rec.Injured
		trends.FatalitiesByBorough[borough] += rec.Killed

		if hour, ok := crashHour(rec.Time); ok {
			trends.AccidentsByHour[strconv.Itoa(hour)]++
		}
	}

	for borough, sevs := range boroughSeverity {
		trends.SeverityByBorough[borough] = utils.RoundTo(mean(sevs), 3)
	}

	// Top ten factors ranked by mean severity.
	factorMeans := make(map[string]float64, len(factorSeverity))
	for factor, sevs := range factorSeverity {
		factorMeans[factor] = mean(sevs)
	}
	for _, factor := range topNByValue(factorMeans, 10) {
		trends.SeverityByFactor[factor] = utils.RoundTo(factorMeans[factor], 3)
	}

	// Days are zero-filled so charts always get a full week.
	dayCounts := make(map[string]int)
	for _, rec := range records {
		if date, ok := crashDate(rec.Date); ok {
			dayCounts[date.Weekday().String()]++
		}
	}
	for _, day := range dayOrder {
		trends.AccidentsByDay[day] = dayCounts[day]
	}

	return trends
}

// severityBucket labels severity ranges with right-open bounds.
func severityBucket(severity float64) string {
	switch {
	case severity < 2:
		return "Low (0-2)"
	case severity < 5:
		return "Medium (3-5)"
	case severity < 10:
		return "High (6-10)"
	default:
		return "Very High (>10)"
	}
}

// timeOfDay buckets an hour of day.
func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

// crashHour extracts the hour from an "H:MM" or "HH:MM" time string.
func crashHour(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, false
	}
	hour, err := strconv.Atoi(s[:i])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

// crashDate parses the dataset's date formats.
func crashDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownKey
	}
	return s
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}

// topNByCount keeps the n highest-count keys. Ties break alphabetically
// so output is deterministic.
func topNByCount(counts map[string]int, n int) map[string]int {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	out := make(map[string]int, len(keys))
	for _, k := range keys {
		out[k] = counts[k]
	}
	return out
}

// topNByValue returns the n keys with the highest values.
func topNByValue(values map[string]float64, n int) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if values[keys[i]] != values[keys[j]] {
			return values[keys[i]] > values[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
