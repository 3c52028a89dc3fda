package analytics

import (
	"context"
	"time"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain/repository"
)

// SummaryUseCase serves the dashboard statistics endpoint.
type SummaryUseCase struct {
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

// NewSummaryUseCase builds the use case.
func NewSummaryUseCase(invoiceRepo repository.InvoiceRepository) *SummaryUseCase {
	return &SummaryUseCase{invoiceRepo: invoiceRepo, now: time.Now}
}

// GetSummary loads the full invoice collection and aggregates it.
func (uc *SummaryUseCase) GetSummary(ctx context.Context) (*dto.SummaryDTO, error) {
	invoices, err := uc.invoiceRepo.ListAll()
	if err != nil {
		return nil, err
	}
	s := Aggregate(invoices, uc.now())
	return &dto.SummaryDTO{
		TotalRevenue:   s.TotalRevenue,
		MonthlyRevenue: s.MonthlyRevenue,
		TotalTrips:     s.TotalTrips,
		MonthlyTrips:   s.MonthlyTrips,
		TopRoute:       s.TopRoute,
		MonthLabel:     s.Month.Format("January 2006"),
	}, nil
}
