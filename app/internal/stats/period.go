package stats

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const day = 24 * time.Hour

// PeriodInfo describes the billing month containing now.
type PeriodInfo struct {
	Start              time.Time
	End                time.Time
	TotalDays          int
	ElapsedDays        int
	RemainingDays      int
	ProgressPercentage float64
}

// ParseStartDate parses the date part of an ISO-8601 timestamp such as
// "2024-02-01T00:00:00.000Z". The time of day and zone are dropped; the
// result is midnight of that calendar date.
func ParseStartDate(iso string) (time.Time, error) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(iso), "T")
	d, err := time.Parse(time.DateOnly, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse start of month %q: %w", iso, err)
	}
	return d, nil
}

// ComputePeriod derives period progress from the billing start timestamp.
// Day arithmetic is done on wall-clock calendar values, so DST shifts do not
// change day counts.
func ComputePeriod(startOfMonth string, now time.Time) (PeriodInfo, error) {
	start, err := ParseStartDate(startOfMonth)
	if err != nil {
		return PeriodInfo{}, err
	}
	end := time.Date(start.Year(), start.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	wall := wallClock(now)

	p := PeriodInfo{
		Start:       start,
		End:         end,
		TotalDays:   int(end.Sub(start) / day),
		ElapsedDays: int(math.Floor(float64(wall.Sub(start)) / float64(day))),
	}
	p.RemainingDays = max(0, p.TotalDays-p.ElapsedDays)
	if p.TotalDays > 0 {
		p.ProgressPercentage = math.Min(float64(p.ElapsedDays)/float64(p.TotalDays)*100, 100)
	}
	return p, nil
}

// DaysSince returns whole calendar days elapsed from start to now.
func DaysSince(start, now time.Time) int {
	return int(math.Floor(float64(wallClock(now).Sub(start)) / float64(day)))
}

// wallClock reinterprets t's local wall time as UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
