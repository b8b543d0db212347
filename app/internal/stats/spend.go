package stats

import (
	"strings"

	"github.com/samber/lo"

	"github.com/marketconnect/cursor-stats/app/domain/entities"
)

// midMonthMarker tags interim invoice lines that are re-billed in the final
// line items and would double count.
const midMonthMarker = "Mid-month"

// Spend compares usage-based charges with the hard limit, in major units.
type Spend struct {
	Total      float64
	Limit      float64
	Remaining  float64
	Percentage float64
}

// InvoiceTotal sums line items in major units, skipping zero and mid-month items.
func InvoiceTotal(invoice *entities.InvoiceSnapshot) float64 {
	if invoice == nil {
		return 0
	}
	billable := lo.Filter(invoice.Items, func(item entities.InvoiceItem, _ int) bool {
		return item.Cents != 0 && !strings.Contains(item.Description, midMonthMarker)
	})
	return lo.SumBy(billable, func(item entities.InvoiceItem) float64 {
		return item.Cents / 100
	})
}

// ComputeSpend returns spend metrics, and false when there is no positive
// hard limit to compare against.
func ComputeSpend(invoice *entities.InvoiceSnapshot, limits *entities.LimitSnapshot) (Spend, bool) {
	limit := limits.Value()
	if limit <= 0 {
		return Spend{}, false
	}
	total := InvoiceTotal(invoice)
	return Spend{
		Total:      total,
		Limit:      limit,
		Remaining:  max(0, limit-total),
		Percentage: total / limit * 100,
	}, true
}
