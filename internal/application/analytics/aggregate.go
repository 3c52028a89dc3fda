package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/globaltours/invoice-api/internal/domain/entity"
)

// Summary is the aggregated dashboard view of the invoice collection.
type Summary struct {
	TotalRevenue   decimal.Decimal
	MonthlyRevenue decimal.Decimal
	TotalTrips     int
	MonthlyTrips   int
	TopRoute       string
	Month          time.Time
}

// Aggregate computes revenue and route statistics in a single pass over the
// given invoices. "Monthly" means the calendar month and year of now.
//
// The top route is the most frequent "from -> to" pair, preferring cities
// over raw locations; ties keep the first-encountered route. It is reported
// as the destination alone, which is what the dashboard card shows. With no
// invoices the top route is "-".
//
// Always recomputed in full; the collection is small enough that incremental
// maintenance is not worth the bookkeeping.
func Aggregate(invoices []*entity.Invoice, now time.Time) Summary {
	s := Summary{
		TotalRevenue:   decimal.Zero,
		MonthlyRevenue: decimal.Zero,
		TotalTrips:     len(invoices),
		TopRoute:       "-",
		Month:          now,
	}

	type routeKey struct{ from, to string }
	counts := make(map[routeKey]int)
	var topKey routeKey
	topCount := 0

	month, year := now.Month(), now.Year()
	for _, inv := range invoices {
		s.TotalRevenue = s.TotalRevenue.Add(inv.TotalAmount)

		if inv.InvoiceDate.Month() == month && inv.InvoiceDate.Year() == year {
			s.MonthlyRevenue = s.MonthlyRevenue.Add(inv.TotalAmount)
			s.MonthlyTrips++
		}

		from, to := inv.Route()
		key := routeKey{from: from, to: to}
		counts[key]++
		// Strictly greater keeps the first-encountered route on ties.
		if counts[key] > topCount {
			topCount = counts[key]
			topKey = key
		}
	}

	if topCount > 0 {
		s.TopRoute = topKey.to
	}
	return s
}
