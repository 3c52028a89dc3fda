package invoicing

import (
	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain/entity"
)

// ToResponse maps an invoice entity onto the wire shape. Dates are rendered
// as YYYY-MM-DD; a zero return date is omitted.
func ToResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
		JourneyDate:   inv.JourneyDate.Format(dateLayout),

		CustomerName:  inv.CustomerName,
		CustomerPhone: inv.CustomerPhone,
		DriverName:    inv.DriverName,
		DriverPhone:   inv.DriverPhone,

		PickupLocation: inv.PickupLocation,
		PickupCity:     inv.PickupCity,
		Destination:    inv.Destination,
		DropCity:       inv.DropCity,

		TripType:    inv.TripType,
		JourneyType: inv.JourneyType,

		CabType:      inv.CabType,
		VehicleModel: inv.VehicleModel,
		CabNumber:    inv.CabNumber,
		StartingKm:   inv.StartingKm,
		ClosingKm:    inv.ClosingKm,
		TotalKm:      inv.TotalKm,
		TotalHours:   inv.TotalHours,

		FareAmount:      inv.FareAmount,
		TollAmount:      inv.TollAmount,
		DriverAllowance: inv.DriverAllowance,
		TotalAmount:     inv.TotalAmount,

		PaymentMode: inv.PaymentMode,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
	if !inv.ReturnDate.IsZero() {
		out.ReturnDate = inv.ReturnDate.Format(dateLayout)
	}
	for _, s := range inv.Stops {
		out.Stops = append(out.Stops, dto.StopDTO{ID: s.ID, Location: s.Location, City: s.City})
	}
	for _, c := range inv.Charges {
		out.Charges = append(out.Charges, dto.ChargeDTO{Type: c.Type, Amount: c.Amount})
	}
	return out
}

// ToResponseList maps a slice, preserving order.
func ToResponseList(invs []*entity.Invoice) []*dto.InvoiceResponse {
	out := make([]*dto.InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, ToResponse(inv))
	}
	return out
}
