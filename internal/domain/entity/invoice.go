package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip types. Governs which fields apply: local trips carry usage stats
// (total km/hours) and no intermediate stops; outstation trips the reverse.
const (
	TripOneWay    = "oneway"
	TripRoundTrip = "roundtrip"
	TripLocal     = "local"
)

// Legacy journey types, kept on old rows for backward compatibility.
// Normalization maps them onto trip types at load time.
const (
	JourneyOneWay = "one-way"
	JourneyTwoWay = "two-way"
)

// Payment modes.
const (
	PaymentCash = "cash"
	PaymentUPI  = "upi"
	PaymentBank = "bank"
)

// ChargeTypes is the fixed vocabulary for additional charge line items.
var ChargeTypes = []string{
	"Waiting Charge",
	"Food Cost",
	"Toll",
	"Parking",
	"Night Charge",
	"Extra KM",
	"Other",
}

// Stop is an intermediate waypoint on an outstation route. Ordering is
// significant (route order) and preserved end to end. The ID is generated
// once and stays stable across edits.
type Stop struct {
	ID       string `json:"id"`
	Location string `json:"location"`
	City     string `json:"city,omitempty"`
}

// AdditionalCharge is a named, variable-amount line item on top of the base fare.
type AdditionalCharge struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Invoice is the persisted billing record for one trip.
//
// TotalAmount is derived: fare + driver allowance + sum of additional charges.
// TollAmount is a legacy field; it stays additive on old rows but is never
// written by new submissions.
type Invoice struct {
	ID            string
	InvoiceNumber int // sequential, human-facing; uniqueness advisory (max+1)

	InvoiceDate time.Time
	JourneyDate time.Time
	ReturnDate  time.Time // zero = not set

	CustomerName  string
	CustomerPhone string // exactly 10 digits after normalization
	DriverName    string
	DriverPhone   string

	PickupLocation string
	PickupCity     string
	Destination    string
	DropCity       string
	Stops          []Stop

	TripType    string // oneway | roundtrip | local
	JourneyType string // legacy: one-way | two-way

	CabType      string
	VehicleModel string
	CabNumber    string // formatted "AA 00 AA 0000"
	StartingKm   float64
	ClosingKm    float64

	// Local-trip usage; only meaningful when TripType == TripLocal.
	TotalKm    float64
	TotalHours float64

	FareAmount      decimal.Decimal
	TollAmount      decimal.Decimal // legacy
	DriverAllowance decimal.Decimal
	Charges         []AdditionalCharge
	TotalAmount     decimal.Decimal

	PaymentMode string // cash | upi | bank

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLocal reports whether the invoice covers a local (hourly/km package) trip.
func (i *Invoice) IsLocal() bool { return i.TripType == TripLocal }

// Route returns the display route, preferring cities over raw locations.
func (i *Invoice) Route() (from, to string) {
	from = i.PickupCity
	if from == "" {
		from = i.PickupLocation
	}
	to = i.DropCity
	if to == "" {
		to = i.Destination
	}
	return from, to
}
