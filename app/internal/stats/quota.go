// Package stats turns raw usage, invoice and limit payloads into display
// metrics. Every function here is pure; the current time is passed in.
package stats

import "github.com/marketconnect/cursor-stats/app/domain/entities"

// Quota is the premium request allowance for the current period.
type Quota struct {
	Current    int
	Max        int
	Remaining  int
	Percentage float64
}

// ComputeQuota reads the premium model bucket from usage.
func ComputeQuota(usage entities.UsageSnapshot) Quota {
	premium := usage.Premium()
	q := Quota{
		Current: premium.NumRequests,
		Max:     premium.MaxRequests(),
	}
	q.Remaining = max(0, q.Max-q.Current)
	if q.Max > 0 {
		q.Percentage = float64(q.Current) / float64(q.Max) * 100
	}
	return q
}

// DailyRemaining is how many requests can be used per remaining day without
// exhausting the quota. It is 0 when no days remain.
func DailyRemaining(q Quota, remainingDays int) float64 {
	if remainingDays <= 0 {
		return 0
	}
	return float64(max(0, q.Max-q.Current)) / float64(remainingDays)
}
