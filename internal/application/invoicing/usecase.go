package invoicing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain"
	"github.com/globaltours/invoice-api/internal/domain/entity"
	"github.com/globaltours/invoice-api/internal/domain/fare"
	"github.com/globaltours/invoice-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// InvoiceUseCase owns the submit path for invoices: validation, normalization,
// total derivation, numbering, and the CRUD passthroughs behind the dashboard.
type InvoiceUseCase struct {
	repo   repository.InvoiceRepository
	drafts *DraftUseCase
}

// NewInvoiceUseCase builds the use case. drafts may be nil when the draft
// backend is not configured.
func NewInvoiceUseCase(repo repository.InvoiceRepository, drafts *DraftUseCase) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, drafts: drafts}
}

// Create validates and persists a new invoice. The invoice number is assigned
// as max+1 — advisory, not transactionally guarded; a concurrent create that
// lands on the same number surfaces as ErrConflict from the unique index.
// On success the caller's draft slot is cleared (best effort).
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.SaveInvoiceRequest) (*entity.Invoice, error) {
	inv, err := uc.build(in)
	if err != nil {
		return nil, err
	}

	maxNum, err := uc.repo.GetMaxInvoiceNumber()
	if err != nil {
		return nil, fmt.Errorf("next invoice number: %w", err)
	}
	now := time.Now()
	inv.ID = uuid.New().String()
	inv.InvoiceNumber = maxNum + 1
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if err := uc.repo.Create(inv); err != nil {
		return nil, err
	}

	// The "new invoice" draft slot is only cleared after a successful create;
	// a failed submission leaves it intact for retry.
	if uc.drafts != nil && userID != "" {
		_ = uc.drafts.Clear(ctx, userID)
	}
	return inv, nil
}

// Update overwrites an existing invoice with the submitted form state (full
// overwrite semantics). The invoice number, ID and created_at are preserved;
// the legacy toll amount is reset to zero like any fresh submission. The
// draft slot is untouched — editing never competes with a new-invoice draft.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.SaveInvoiceRequest) (*entity.Invoice, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	inv, err := uc.build(in)
	if err != nil {
		return nil, err
	}
	inv.ID = existing.ID
	inv.InvoiceNumber = existing.InvoiceNumber
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now()

	if err := uc.repo.Update(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Get fetches one invoice by ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List returns invoices newest first, optionally filtered by a dashboard
// search query matching invoice number, customer name, or phone.
func (uc *InvoiceUseCase) List(ctx context.Context, query string) ([]*entity.Invoice, error) {
	all, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return all, nil
	}
	var out []*entity.Invoice
	for _, inv := range all {
		if strings.Contains(strconv.Itoa(inv.InvoiceNumber), query) ||
			strings.Contains(strings.ToLower(inv.CustomerName), query) ||
			strings.Contains(inv.CustomerPhone, query) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// Delete removes an invoice permanently. No soft delete, no undo.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// NextNumber returns the number the next created invoice will receive.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context) (int, error) {
	maxNum, err := uc.repo.GetMaxInvoiceNumber()
	if err != nil {
		return 0, err
	}
	return maxNum + 1, nil
}

// build converts a validated form submission into a canonical invoice:
// required fields checked, numerics clamped, blank stops and zero charges
// filtered, trip-type field exclusion applied, total recomputed. The client's
// total is never trusted.
func (uc *InvoiceUseCase) build(in dto.SaveInvoiceRequest) (*entity.Invoice, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer_name is required", domain.ErrInvalidInput)
	}
	phone := NormalizePhone(in.CustomerPhone)
	if phone == "" {
		return nil, fmt.Errorf("%w: customer_phone must be a 10-digit number", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		return nil, fmt.Errorf("%w: pickup_location is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrInvalidInput)
	}
	switch in.PaymentMode {
	case entity.PaymentCash, entity.PaymentUPI, entity.PaymentBank:
	default:
		return nil, fmt.Errorf("%w: payment_mode must be cash, upi or bank", domain.ErrInvalidInput)
	}

	invoiceDate, err := time.Parse(dateLayout, in.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invoice_date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	journeyDate := invoiceDate
	if in.JourneyDate != "" {
		journeyDate, err = time.Parse(dateLayout, in.JourneyDate)
		if err != nil {
			return nil, fmt.Errorf("%w: journey_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	var returnDate time.Time
	if in.ReturnDate != "" {
		returnDate, err = time.Parse(dateLayout, in.ReturnDate)
		if err != nil {
			return nil, fmt.Errorf("%w: return_date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}

	tripType := TripTypeFor(in.TripType, in.JourneyType)

	fareAmount := ClampMoney(in.FareAmount)
	allowance := ClampMoney(in.DriverAllowance)
	charges := NormalizeCharges(in.Charges)

	inv := &entity.Invoice{
		InvoiceDate: invoiceDate,
		JourneyDate: journeyDate,
		ReturnDate:  returnDate,

		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: phone,
		DriverName:    strings.TrimSpace(in.DriverName),
		DriverPhone:   NormalizePhone(in.DriverPhone),

		PickupLocation: strings.TrimSpace(in.PickupLocation),
		PickupCity:     strings.TrimSpace(in.PickupCity),
		Destination:    strings.TrimSpace(in.Destination),
		DropCity:       strings.TrimSpace(in.DropCity),

		TripType:    tripType,
		JourneyType: JourneyTypeFor(tripType),

		CabType:      strings.TrimSpace(in.CabType),
		VehicleModel: strings.TrimSpace(in.VehicleModel),
		CabNumber:    FormatCabNumber(in.CabNumber),
		StartingKm:   ClampFloat(in.StartingKm),
		ClosingKm:    ClampFloat(in.ClosingKm),

		FareAmount:      fareAmount,
		DriverAllowance: allowance,
		Charges:         charges,
		TotalAmount:     fare.ComputeTotal(fareAmount, allowance, charges),

		PaymentMode: in.PaymentMode,
	}

	// Trip-type exclusion: hidden fields keep their form values client-side
	// but never reach the record.
	if tripType == entity.TripLocal {
		inv.TotalKm = ClampFloat(in.TotalKm)
		inv.TotalHours = ClampFloat(in.TotalHours)
	} else {
		inv.Stops = NormalizeStops(in.Stops)
	}

	return inv, nil
}
