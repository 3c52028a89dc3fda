package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/globaltours/invoice-api/internal/domain"
	"github.com/globaltours/invoice-api/internal/domain/entity"
	"github.com/globaltours/invoice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository over PostgreSQL (usable with pool or tx).
// Stops and additional charges are stored as JSONB alongside the row: they
// are only ever read and written with their invoice, never queried on.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, invoice_number, invoice_date, journey_date, return_date,
	customer_name, customer_phone, COALESCE(driver_name, ''), COALESCE(driver_phone, ''),
	pickup_location, COALESCE(pickup_city, ''), destination, COALESCE(drop_city, ''),
	COALESCE(stops, '[]'), trip_type, COALESCE(journey_type, ''),
	COALESCE(cab_type, ''), COALESCE(vehicle_model, ''), COALESCE(cab_number, ''),
	starting_km, closing_km, total_km, total_hours,
	fare_amount, toll_amount, driver_allowance, COALESCE(additional_charges, '[]'),
	total_amount, payment_mode, created_at, updated_at`

// Create inserts the invoice. A duplicate invoice_number (the max+1 race)
// surfaces as domain.ErrConflict.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	stops, charges, err := marshalSublists(invoice)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (
			id, invoice_number, invoice_date, journey_date, return_date,
			customer_name, customer_phone, driver_name, driver_phone,
			pickup_location, pickup_city, destination, drop_city,
			stops, trip_type, journey_type,
			cab_type, vehicle_model, cab_number,
			starting_km, closing_km, total_km, total_hours,
			fare_amount, toll_amount, driver_allowance, additional_charges,
			total_amount, payment_mode, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31
		)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceNumber, invoice.InvoiceDate, invoice.JourneyDate, nullIfZeroTime(invoice.ReturnDate),
		invoice.CustomerName, invoice.CustomerPhone, nullIfEmpty(invoice.DriverName), nullIfEmpty(invoice.DriverPhone),
		invoice.PickupLocation, nullIfEmpty(invoice.PickupCity), invoice.Destination, nullIfEmpty(invoice.DropCity),
		stops, invoice.TripType, nullIfEmpty(invoice.JourneyType),
		nullIfEmpty(invoice.CabType), nullIfEmpty(invoice.VehicleModel), nullIfEmpty(invoice.CabNumber),
		invoice.StartingKm, invoice.ClosingKm, invoice.TotalKm, invoice.TotalHours,
		invoice.FareAmount, invoice.TollAmount, invoice.DriverAllowance, charges,
		invoice.TotalAmount, invoice.PaymentMode, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID returns one invoice, nil when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// ListAll returns every invoice, newest first.
func (r *InvoiceRepo) ListAll() ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update overwrites the full row.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	stops, charges, err := marshalSublists(invoice)
	if err != nil {
		return err
	}
	query := `
		UPDATE invoices SET
			invoice_date = $2, journey_date = $3, return_date = $4,
			customer_name = $5, customer_phone = $6, driver_name = $7, driver_phone = $8,
			pickup_location = $9, pickup_city = $10, destination = $11, drop_city = $12,
			stops = $13, trip_type = $14, journey_type = $15,
			cab_type = $16, vehicle_model = $17, cab_number = $18,
			starting_km = $19, closing_km = $20, total_km = $21, total_hours = $22,
			fare_amount = $23, toll_amount = $24, driver_allowance = $25, additional_charges = $26,
			total_amount = $27, payment_mode = $28, updated_at = $29
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.InvoiceDate, invoice.JourneyDate, nullIfZeroTime(invoice.ReturnDate),
		invoice.CustomerName, invoice.CustomerPhone, nullIfEmpty(invoice.DriverName), nullIfEmpty(invoice.DriverPhone),
		invoice.PickupLocation, nullIfEmpty(invoice.PickupCity), invoice.Destination, nullIfEmpty(invoice.DropCity),
		stops, invoice.TripType, nullIfEmpty(invoice.JourneyType),
		nullIfEmpty(invoice.CabType), nullIfEmpty(invoice.VehicleModel), nullIfEmpty(invoice.CabNumber),
		invoice.StartingKm, invoice.ClosingKm, invoice.TotalKm, invoice.TotalHours,
		invoice.FareAmount, invoice.TollAmount, invoice.DriverAllowance, charges,
		invoice.TotalAmount, invoice.PaymentMode, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the row. Deleting an absent id is not an error.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// GetMaxInvoiceNumber returns the highest assigned number, 0 when empty.
func (r *InvoiceRepo) GetMaxInvoiceNumber() (int, error) {
	var max int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(invoice_number), 0) FROM invoices`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max invoice number: %w", err)
	}
	return max, nil
}

func marshalSublists(invoice *entity.Invoice) (stops, charges []byte, err error) {
	stops, err = json.Marshal(invoice.Stops)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal stops: %w", err)
	}
	charges, err = json.Marshal(invoice.Charges)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal charges: %w", err)
	}
	return stops, charges, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var returnDate *time.Time
	var stops, charges []byte
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.InvoiceDate, &inv.JourneyDate, &returnDate,
		&inv.CustomerName, &inv.CustomerPhone, &inv.DriverName, &inv.DriverPhone,
		&inv.PickupLocation, &inv.PickupCity, &inv.Destination, &inv.DropCity,
		&stops, &inv.TripType, &inv.JourneyType,
		&inv.CabType, &inv.VehicleModel, &inv.CabNumber,
		&inv.StartingKm, &inv.ClosingKm, &inv.TotalKm, &inv.TotalHours,
		&inv.FareAmount, &inv.TollAmount, &inv.DriverAllowance, &charges,
		&inv.TotalAmount, &inv.PaymentMode, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if returnDate != nil {
		inv.ReturnDate = *returnDate
	}
	if err := json.Unmarshal(stops, &inv.Stops); err != nil {
		return nil, fmt.Errorf("unmarshal stops: %w", err)
	}
	if err := json.Unmarshal(charges, &inv.Charges); err != nil {
		return nil, fmt.Errorf("unmarshal charges: %w", err)
	}
	return &inv, nil
}

func nullIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
