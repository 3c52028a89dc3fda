package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Field names in these DTOs are load-bearing: they match the stored row and
// the draft slot, so older clients and older drafts keep deserializing.

// StopDTO one intermediate waypoint. Older drafts stored stops as bare
// strings; UnmarshalJSON accepts both shapes so loading never branches on age.
type StopDTO struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	City     string `json:"city,omitempty"`
}

// UnmarshalJSON accepts either {"id":..,"location":..,"city":..} or a legacy
// plain string (treated as the location; ID assigned during normalization).
func (s *StopDTO) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.ID = ""
		s.Location = str
		s.City = ""
		return nil
	}
	type plain StopDTO
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = StopDTO(p)
	return nil
}

// ChargeDTO a named extra charge line.
type ChargeDTO struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// SaveInvoiceRequest is the form payload for create and update. The client's
// total_amount, if sent, is ignored: the server always recomputes.
type SaveInvoiceRequest struct {
	InvoiceDate string `json:"invoice_date"` // YYYY-MM-DD
	JourneyDate string `json:"journey_date"`
	ReturnDate  string `json:"return_date,omitempty"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	DriverName    string `json:"driver_name,omitempty"`
	DriverPhone   string `json:"driver_phone,omitempty"`

	PickupLocation string    `json:"pickup_location"`
	PickupCity     string    `json:"pickup_city,omitempty"`
	Destination    string    `json:"destination"`
	DropCity       string    `json:"drop_city,omitempty"`
	Stops          []StopDTO `json:"stops,omitempty"`

	TripType    string `json:"trip_type,omitempty"`
	JourneyType string `json:"journey_type,omitempty"` // legacy

	CabType      string  `json:"cab_type,omitempty"`
	VehicleModel string  `json:"vehicle_model,omitempty"`
	CabNumber    string  `json:"cab_number,omitempty"`
	StartingKm   float64 `json:"starting_km,omitempty"`
	ClosingKm    float64 `json:"closing_km,omitempty"`

	TotalKm    float64 `json:"total_km,omitempty"`
	TotalHours float64 `json:"total_hours,omitempty"`

	FareAmount      decimal.Decimal `json:"fare_amount"`
	DriverAllowance decimal.Decimal `json:"driver_allowance,omitempty"`
	Charges         []ChargeDTO     `json:"additional_charges,omitempty"`

	PaymentMode string `json:"payment_mode"`
}

// InvoiceResponse the persisted record as returned to clients.
type InvoiceResponse struct {
	ID            string `json:"id"`
	InvoiceNumber int    `json:"invoice_number"`

	InvoiceDate string `json:"invoice_date"`
	JourneyDate string `json:"journey_date"`
	ReturnDate  string `json:"return_date,omitempty"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	DriverName    string `json:"driver_name,omitempty"`
	DriverPhone   string `json:"driver_phone,omitempty"`

	PickupLocation string    `json:"pickup_location"`
	PickupCity     string    `json:"pickup_city,omitempty"`
	Destination    string    `json:"destination"`
	DropCity       string    `json:"drop_city,omitempty"`
	Stops          []StopDTO `json:"stops,omitempty"`

	TripType    string `json:"trip_type"`
	JourneyType string `json:"journey_type,omitempty"`

	CabType      string  `json:"cab_type,omitempty"`
	VehicleModel string  `json:"vehicle_model,omitempty"`
	CabNumber    string  `json:"cab_number,omitempty"`
	StartingKm   float64 `json:"starting_km,omitempty"`
	ClosingKm    float64 `json:"closing_km,omitempty"`

	TotalKm    float64 `json:"total_km,omitempty"`
	TotalHours float64 `json:"total_hours,omitempty"`

	FareAmount      decimal.Decimal `json:"fare_amount"`
	TollAmount      decimal.Decimal `json:"toll_amount"`
	DriverAllowance decimal.Decimal `json:"driver_allowance"`
	Charges         []ChargeDTO     `json:"additional_charges,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`

	PaymentMode string `json:"payment_mode"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NextNumberResponse body of GET /api/invoices/next-number.
type NextNumberResponse struct {
	NextInvoiceNumber int `json:"next_invoice_number"`
}

// InvoiceDraft is the single-slot snapshot of an in-progress form. Keys
// mirror the form: snake_case for plain inputs, camelCase for the complex
// sub-state, exactly as older drafts were written.
type InvoiceDraft struct {
	InvoiceDate    string `json:"invoice_date,omitempty"`
	CustomerName   string `json:"customer_name,omitempty"`
	CustomerPhone  string `json:"customer_phone,omitempty"`
	PickupLocation string `json:"pickup_location,omitempty"`
	PickupCity     string `json:"pickup_city,omitempty"`
	Destination    string `json:"destination,omitempty"`
	DropCity       string `json:"drop_city,omitempty"`
	JourneyDate    string `json:"journey_date,omitempty"`
	ReturnDate     string `json:"return_date,omitempty"`
	JourneyType    string `json:"journey_type,omitempty"`
	CabNumber      string `json:"cab_number,omitempty"`
	CabType        string `json:"cab_type,omitempty"`
	DriverName     string `json:"driver_name,omitempty"`
	DriverPhone    string `json:"driver_phone,omitempty"`
	PaymentMode    string `json:"payment_mode,omitempty"`

	Stops             []StopDTO       `json:"stops,omitempty"`
	AdditionalCharges []ChargeDTO     `json:"additionalCharges,omitempty"`
	BaseFare          decimal.Decimal `json:"baseFare,omitempty"`
	DriverAllowance   decimal.Decimal `json:"driverAllowance,omitempty"`
	TripType          string          `json:"tripType,omitempty"`
	TotalKm           float64         `json:"totalKm,omitempty"`
	TotalHours        float64         `json:"totalHours,omitempty"`
	VehicleModel      string          `json:"vehicleModel,omitempty"`
	StartingKm        float64         `json:"startingKm,omitempty"`
	ClosingKm         float64         `json:"closingKm,omitempty"`
}

// ShareResponse outcome of the export/share pipeline for one invoice.
// SharedDirectly=true means a hosted artifact link went into the message;
// false means the caller must download the PDF and attach it by hand.
type ShareResponse struct {
	SharedDirectly bool   `json:"shared_directly"`
	Filename       string `json:"filename"`
	ArtifactURL    string `json:"artifact_url,omitempty"`
	WhatsAppURL    string `json:"whatsapp_url"`
	Message        string `json:"message"`
}
