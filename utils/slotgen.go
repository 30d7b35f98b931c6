package utils

import (
	"fmt"
	"sort"
	"time"
)

// SlotSpec is one slot-creation command produced by ExpandSlotRange.
type SlotSpec struct {
	ScheduledAt     time.Time
	DurationMinutes int
}

// ExpandSlotRange expands a date range plus weekday/time-of-day filters
// into the full cartesian product of slot specs: for every calendar day in
// [fromDate, toDate] whose weekday is in daysOfWeek, one spec per entry in
// timesOfDay ("15:04" format). Output is ordered day-ascending then
// time-ascending. Pure function, no store involved.
func ExpandSlotRange(fromDate, toDate time.Time, daysOfWeek []time.Weekday, timesOfDay []string, durationMinutes int) ([]SlotSpec, error) {
	if durationMinutes < 1 {
		return nil, fmt.Errorf("durationMinutes must be at least 1, got %d", durationMinutes)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("toDate %s is before fromDate %s", toDate.Format("2006-01-02"), fromDate.Format("2006-01-02"))
	}
	if len(daysOfWeek) == 0 {
		return nil, fmt.Errorf("daysOfWeek must not be empty")
	}
	if len(timesOfDay) == 0 {
		return nil, fmt.Errorf("timesOfDay must not be empty")
	}

	wanted := make(map[time.Weekday]bool, len(daysOfWeek))
	for _, d := range daysOfWeek {
		wanted[d] = true
	}

	parsed := make([]time.Time, 0, len(timesOfDay))
	for _, tod := range timesOfDay {
		t, err := time.Parse("15:04", tod)
		if err != nil {
			return nil, fmt.Errorf("invalid time of day %q: expected HH:MM", tod)
		}
		parsed = append(parsed, t)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	from := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 0, 0, 0, 0, time.UTC)

	var specs []SlotSpec
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !wanted[day.Weekday()] {
			continue
		}
		for _, tod := range parsed {
			specs = append(specs, SlotSpec{
				ScheduledAt:     time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC),
				DurationMinutes: durationMinutes,
			})
		}
	}

	return specs, nil
}
