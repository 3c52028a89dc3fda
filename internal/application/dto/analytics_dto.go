package dto

import "github.com/shopspring/decimal"

// SummaryDTO revenue/trip statistics for the dashboard, recomputed in full
// on every request from the current invoice collection.
type SummaryDTO struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`   // all-time
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"` // current calendar month
	MonthlyTrips   int             `json:"monthly_trips"`
	TotalTrips     int             `json:"total_trips"`
	TopRoute       string          `json:"top_route"`  // destination-only display form
	MonthLabel     string          `json:"month_label"` // e.g. "September 2026"
}
