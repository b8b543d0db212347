package stats

import (
	"time"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

// Metrics is everything the display layer needs from one bundle.
type Metrics struct {
	Quota          Quota
	QuotaBar       Bar
	Period         *PeriodInfo
	DailyRemaining float64
	Spend          *Spend
	SpendBar       Bar
}

// ComputeMetrics runs every aggregation step over bundle. Period is nil when
// the bundle has no start-of-month value; Spend is nil without a positive
// hard limit. A malformed start-of-month is an error.
func ComputeMetrics(bundle *entities.UsageBundle, now time.Time) (Metrics, error) {
	var m Metrics
	m.Quota = ComputeQuota(bundle.Usage)
	m.QuotaBar = ProgressBar(float64(m.Quota.Current), float64(m.Quota.Max), BarLength)

	if start := bundle.Usage.StartOfMonth; start != "" {
		p, err := ComputePeriod(start, now)
		if err != nil {
			return Metrics{}, err
		}
		m.Period = &p
		m.DailyRemaining = DailyRemaining(m.Quota, p.RemainingDays)
	}

	if s, ok := ComputeSpend(bundle.Invoice, bundle.Limits); ok {
		m.Spend = &s
		// Compared in whole cents so float noise in the sum does not show.
		m.SpendBar = ProgressBar(float64(int(s.Total*100)), float64(int(s.Limit*100)), BarLength)
	}
	return m, nil
}
