package services

import (
	"sort"
	"time"

	"overtime-tracker/internal/domain"
)

// dayLabelLayout renders chart labels such as "Jan 5"
const dayLabelLayout = "Jan 2"

// monthLabelLayout renders group labels such as "Jan 2024"
const monthLabelLayout = "Jan 2006"

// FilterByDateRange keeps the entries whose Date falls inside rng, both ends inclusive
func FilterByDateRange(entries []domain.TimeEntry, rng domain.DateRange) []domain.TimeEntry {
	filtered := make([]domain.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if rng.Contains(e.Date) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// DefaultRange is the first day of now's month through now's day
func DefaultRange(now time.Time) domain.DateRange {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return domain.NewDateRange(first, now)
}

// ResolveRange uses the explicit bounds when both are given, otherwise DefaultRange(now).
// Each bound keeps its own calendar day and is moved into now's location.
func ResolveRange(start, end *time.Time, now time.Time) domain.DateRange {
	if start == nil || end == nil {
		return DefaultRange(now)
	}
	return domain.NewDateRange(sameDayIn(*start, now.Location()), sameDayIn(*end, now.Location()))
}

func sameDayIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// GroupByMonth groups entries by the YYYY-MM key of their Date. Entries keep
// their input order inside each group; malformed dates are dropped.
func GroupByMonth(entries []domain.TimeEntry) map[string][]domain.TimeEntry {
	groups := make(map[string][]domain.TimeEntry)
	for _, e := range entries {
		key := e.MonthKey()
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], e)
	}
	return groups
}

// MonthKeys returns the group keys in chronological order
func MonthKeys(groups map[string][]domain.TimeEntry) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MonthLabel turns a YYYY-MM key into "Jan 2024". Unparsable keys are returned as-is.
func MonthLabel(key string) string {
	t, err := time.Parse(domain.MonthKeyLayout, key)
	if err != nil {
		return key
	}
	return t.Format(monthLabelLayout)
}

// DailyTotals sums raw hours per day label in date order. Days from different
// years that share a label are merged into the first occurrence.
func DailyTotals(entries []domain.TimeEntry) []DailyTotal {
	sorted := make([]domain.TimeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	totals := make([]DailyTotal, 0)
	index := make(map[string]int)
	for _, e := range sorted {
		d, err := time.Parse(domain.DateLayout, e.Date)
		if err != nil {
			continue
		}
		label := d.Format(dayLabelLayout)
		if i, ok := index[label]; ok {
			totals[i].RawHours += e.RawHours
			continue
		}
		index[label] = len(totals)
		totals = append(totals, DailyTotal{Label: label, RawHours: e.RawHours})
	}
	return totals
}

// CalculateTotals sums raw and converted hours
func CalculateTotals(entries []domain.TimeEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Raw += e.RawHours
		t.Converted += e.ConvertedHours
	}
	return t
}

// PerMonthTotals sums one month group
func PerMonthTotals(monthEntries []domain.TimeEntry) Totals {
	return CalculateTotals(monthEntries)
}

// BuildHistoryView runs the aggregation pipeline over already-loaded entries
func BuildHistoryView(entries []domain.TimeEntry, rng domain.DateRange) *HistoryView {
	filtered := FilterByDateRange(entries, rng)
	groups := GroupByMonth(filtered)

	months := make([]MonthSummary, 0, len(groups))
	for _, key := range MonthKeys(groups) {
		monthEntries := groups[key]
		months = append(months, MonthSummary{
			Key:     key,
			Label:   MonthLabel(key),
			Entries: monthEntries,
			Totals:  PerMonthTotals(monthEntries),
		})
	}

	grand := CalculateTotals(filtered)
	return &HistoryView{
		Range:       rng,
		Entries:     filtered,
		Months:      months,
		GrandTotals: grand,
		Charts: ChartSeries{
			Daily: DailyTotals(filtered),
			Pie:   RawVsConverted{Raw: grand.Raw, Converted: grand.Converted},
		},
	}
}
