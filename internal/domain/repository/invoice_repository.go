package repository

import "github.com/globaltours/invoice-api/internal/domain/entity"

// InvoiceRepository is the persistence port for invoices. All calls are
// fallible remote operations; callers do not retry or cache.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// ListAll returns every invoice ordered by created_at descending.
	ListAll() ([]*entity.Invoice, error)
	// Update overwrites the full row (no partial patch semantics).
	Update(invoice *entity.Invoice) error
	Delete(id string) error
	// GetMaxInvoiceNumber returns the highest invoice_number in the
	// collection, 0 when empty. Next-number assignment is max+1 and is not
	// transactionally guarded; a unique index catches the race at insert.
	GetMaxInvoiceNumber() (int, error)
}
