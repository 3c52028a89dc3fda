package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaltours/invoice-api/internal/domain/entity"
)

var now = time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

func inv(total int64, invoiceDate time.Time, pickup, dest string) *entity.Invoice {
	return &entity.Invoice{
		InvoiceDate:    invoiceDate,
		PickupLocation: pickup,
		Destination:    dest,
		TotalAmount:    decimal.NewFromInt(total),
	}
}

func TestAggregate_RevenueSplitsByMonth(t *testing.T) {
	invoices := []*entity.Invoice{
		inv(1000, now, "Mumbai", "Pune"),
		inv(2000, now.AddDate(0, -1, 0), "Mumbai", "Pune"),
	}

	s := Aggregate(invoices, now)

	assert.True(t, s.TotalRevenue.Equal(decimal.NewFromInt(3000)), "got %s", s.TotalRevenue)
	assert.True(t, s.MonthlyRevenue.Equal(decimal.NewFromInt(1000)), "got %s", s.MonthlyRevenue)
	assert.Equal(t, 2, s.TotalTrips)
	assert.Equal(t, 1, s.MonthlyTrips)
}

func TestAggregate_SameMonthOfDifferentYearExcluded(t *testing.T) {
	invoices := []*entity.Invoice{
		inv(1000, now.AddDate(-1, 0, 0), "Mumbai", "Pune"),
	}

	s := Aggregate(invoices, now)

	assert.True(t, s.MonthlyRevenue.IsZero())
	assert.Equal(t, 0, s.MonthlyTrips)
}

func TestAggregate_TopRouteIsMostFrequentDestination(t *testing.T) {
	invoices := []*entity.Invoice{
		inv(100, now, "A", "B"),
		inv(100, now, "A", "B"),
		inv(100, now, "A", "C"),
	}

	s := Aggregate(invoices, now)

	assert.Equal(t, "B", s.TopRoute)
}

func TestAggregate_TopRouteTieKeepsFirstEncountered(t *testing.T) {
	invoices := []*entity.Invoice{
		inv(100, now, "A", "C"),
		inv(100, now, "A", "B"),
		inv(100, now, "A", "B"),
		inv(100, now, "A", "C"),
	}

	s := Aggregate(invoices, now)

	assert.Equal(t, "C", s.TopRoute)
}

func TestAggregate_TopRoutePrefersCities(t *testing.T) {
	a := inv(100, now, "Andheri East Terminal 2", "Pune Station")
	a.PickupCity = "Mumbai"
	a.DropCity = "Pune"
	b := inv(100, now, "Bandra Kurla Complex", "Shivajinagar")
	b.PickupCity = "Mumbai"
	b.DropCity = "Pune"

	s := Aggregate([]*entity.Invoice{a, b}, now)

	assert.Equal(t, "Pune", s.TopRoute, "same city pair counts as one route")
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, now)

	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.MonthlyRevenue.IsZero())
	assert.Equal(t, 0, s.TotalTrips)
	assert.Equal(t, "-", s.TopRoute)
}

// ── use case ──

type stubRepo struct {
	invoices []*entity.Invoice
}

func (r *stubRepo) Create(*entity.Invoice) error                 { return nil }
func (r *stubRepo) GetByID(string) (*entity.Invoice, error)      { return nil, nil }
func (r *stubRepo) ListAll() ([]*entity.Invoice, error)          { return r.invoices, nil }
func (r *stubRepo) Update(*entity.Invoice) error                 { return nil }
func (r *stubRepo) Delete(string) error                          { return nil }
func (r *stubRepo) GetMaxInvoiceNumber() (int, error)            { return len(r.invoices), nil }

func TestGetSummary(t *testing.T) {
	repo := &stubRepo{invoices: []*entity.Invoice{
		inv(1000, now, "Mumbai", "Pune"),
		inv(2000, now, "Mumbai", "Pune"),
	}}
	uc := NewSummaryUseCase(repo)
	uc.now = func() time.Time { return now }

	out, err := uc.GetSummary(context.Background())

	require.NoError(t, err)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 2, out.TotalTrips)
	assert.Equal(t, "Pune", out.TopRoute)
	assert.Equal(t, "January 2025", out.MonthLabel)
}
