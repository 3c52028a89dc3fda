// Package pdf renders the printable A4 invoice handed to customers.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Business name + contact  │  INVOICE # + Date       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILLED TO: customer  │  JOURNEY: dates / type / cab / driver│
//	│  ─────────────────────────────────────────────────────────  │
//	│  ROUTE: pickup -> stops -> destination  (or local usage)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Description | Amount, then TOTAL + payment mode      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SIGNATURE + courtesy footer                                 │
//	└─────────────────────────────────────────────────────────────┘
//
// Core PDF fonts are cp1252, so the rendered text uses "Rs." and "->"
// rather than the rupee and arrow glyphs the web template shows.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/globaltours/invoice-api/internal/application/invoicing"
	"github.com/globaltours/invoice-api/internal/domain/entity"
	"github.com/globaltours/invoice-api/pkg/config"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ invoicing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements invoicing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF renders the invoice and returns the PDF bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	business config.BusinessConfig,
) ([]byte, error) {
	cfg := marotocfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Invoice #%04d", invoice.InvoiceNumber), true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if invoice.IsLocal() {
		m.AddRows(localUsageRow(invoice))
	} else {
		m.AddRows(routeRow(invoice))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(chargesHeaderRow())
	for _, r := range chargeRows(invoice) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(invoice))

	m.AddRows(line.NewRow(8))
	m.AddRows(signatureRow(business))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: business name + contact (left), INVOICE number + date (right).
func headerRow(invoice *entity.Invoice, business config.BusinessConfig) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 1,
			}),
			text.New(business.Address, props.Text{Size: 8, Top: 10, Color: colorGray}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", business.Phone, business.Email),
				props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%04d", invoice.InvoiceNumber), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 9,
			}),
			text.New("Date: "+formatDate(invoice.InvoiceDate), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// partiesRow: billed-to block (left) and journey details (right).
func partiesRow(invoice *entity.Invoice) core.Row {
	left := col.New(6).Add(
		text.New("BILLED TO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(invoice.CustomerName, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		text.New("Tel: "+invoice.CustomerPhone, props.Text{Size: 8, Top: 13, Color: colorGray}),
	)

	lines := []string{
		"Date: " + formatDate(invoice.JourneyDate),
	}
	if !invoice.ReturnDate.IsZero() {
		lines = append(lines, "Return: "+formatDate(invoice.ReturnDate))
	}
	lines = append(lines, "Type: "+tripTypeLabel(invoice.TripType))
	if invoice.CabType != "" {
		vehicle := invoice.CabType
		if invoice.VehicleModel != "" {
			vehicle += " (" + invoice.VehicleModel + ")"
		}
		lines = append(lines, "Vehicle: "+vehicle)
	}
	if invoice.CabNumber != "" {
		lines = append(lines, "Cab No: "+invoice.CabNumber)
	}
	if invoice.DriverName != "" {
		driver := invoice.DriverName
		if invoice.DriverPhone != "" {
			driver += " (" + invoice.DriverPhone + ")"
		}
		lines = append(lines, "Driver: "+driver)
	}

	components := []core.Component{
		text.New("JOURNEY DETAILS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	}
	top := 6.0
	for _, l := range lines {
		components = append(components, text.New(l, props.Text{Size: 8, Top: top}))
		top += 4.5
	}
	right := col.New(6).Add(components...)

	height := 10.0 + float64(len(lines))*4.5
	return row.New(height).Add(left, right)
}

// routeRow: pickup -> stops -> destination on one line.
func routeRow(invoice *entity.Invoice) core.Row {
	parts := []string{invoice.PickupLocation}
	for _, s := range invoice.Stops {
		parts = append(parts, s.Location)
	}
	parts = append(parts, invoice.Destination)

	return row.New(14).Add(
		col.New(12).Add(
			text.New("ROUTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(parts, "  ->  "), props.Text{Size: 9, Top: 7}),
		),
	)
}

// localUsageRow: km/hours block shown instead of the route for local trips.
func localUsageRow(invoice *entity.Invoice) core.Row {
	usage := fmt.Sprintf("Total KM: %s   |   Total Hours: %s",
		trimFloat(invoice.TotalKm), trimFloat(invoice.TotalHours))
	return row.New(14).Add(
		col.New(12).Add(
			text.New("LOCAL USAGE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (within %s)   |   %s",
				invoice.PickupLocation, cityOr(invoice.PickupCity, invoice.PickupLocation), usage),
				props.Text{Size: 9, Top: 7}),
		),
	)
}

// chargesHeaderRow: two-column charge table header.
func chargesHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Description", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2, Left: 1,
		})),
		col.New(4).Add(text.New("Amount", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// chargeRows: base fare, driver allowance, each additional charge, and the
// legacy toll line when an old row still carries one.
func chargeRows(invoice *entity.Invoice) []core.Row {
	chargeRow := func(label, amount string) core.Row {
		return row.New(7).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1, Left: 1})),
			col.New(4).Add(text.New(amount, props.Text{
				Size: 9, Align: align.Right, Top: 1, Right: 1,
			})),
		)
	}

	rows := []core.Row{
		chargeRow("Base Fare", "Rs. "+invoicing.FormatINR(invoice.FareAmount)),
	}
	if !invoice.DriverAllowance.IsZero() {
		rows = append(rows, chargeRow("Driver Allowance", "Rs. "+invoicing.FormatINR(invoice.DriverAllowance)))
	}
	for _, c := range invoice.Charges {
		rows = append(rows, chargeRow(c.Type, "Rs. "+invoicing.FormatINR(c.Amount)))
	}
	if invoice.TollAmount.IsPositive() {
		rows = append(rows, chargeRow("Toll / Parking", "Rs. "+invoicing.FormatINR(invoice.TollAmount)))
	}
	return rows
}

// totalRow: grand total plus the payment mode underneath.
func totalRow(invoice *entity.Invoice) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Total Amount", props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2, Left: 1,
			}),
			text.New("Payment Mode: "+strings.ToUpper(invoice.PaymentMode), props.Text{
				Size: 8, Top: 10, Left: 1, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Rs. "+invoicing.FormatINR(invoice.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

// signatureRow: "For {business}" block with the signatory line.
func signatureRow(business config.BusinessConfig) core.Row {
	return row.New(22).Add(
		col.New(7),
		col.New(5).Add(
			text.New("For "+business.Name, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("_________________________", props.Text{
				Size: 9, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Authorized Signatory", props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// footerRow: courtesy close.
func footerRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Thank you for travelling with us!", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
			text.New("We wish you a safe and pleasant journey.", props.Text{
				Size: 8, Align: align.Center, Top: 7, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatDate renders a date with its day of week, e.g. "Wed, 15 Jan 2025".
func formatDate(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006")
}

func tripTypeLabel(tripType string) string {
	switch tripType {
	case entity.TripRoundTrip:
		return "Round Trip"
	case entity.TripLocal:
		return "Local"
	default:
		return "One Way"
	}
}

func cityOr(city, fallback string) string {
	if city != "" {
		return city
	}
	return fallback
}

// trimFloat renders a float without trailing zeros ("80", "8.5").
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	s = strings.TrimSuffix(s, ".0")
	return s
}
