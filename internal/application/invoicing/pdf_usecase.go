package invoicing

import (
	"context"
	"fmt"

	"github.com/globaltours/invoice-api/internal/domain"
	"github.com/globaltours/invoice-api/internal/domain/repository"
	"github.com/globaltours/invoice-api/pkg/config"
)

// PDFUseCase produces the downloadable PDF for a persisted invoice.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
	business    config.BusinessConfig
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator, business config.BusinessConfig) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator, business: business}
}

// DownloadInvoicePDF loads the invoice, renders it, and returns the bytes
// with the derived filename.
//
// Returns:
//   - (pdfBytes, filename, nil) on success.
//   - domain.ErrNotFound when the invoice does not exist.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, uc.business)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generate: %w", err)
	}

	return pdfBytes, PDFFilename(inv.CustomerName, inv.InvoiceNumber), nil
}

// PDFFilename derives the artifact name:
// {sanitized_customer_name}_invoice_{zero-padded number}.pdf
func PDFFilename(customerName string, invoiceNumber int) string {
	return fmt.Sprintf("%s_invoice_%04d.pdf", SanitizeFilename(customerName), invoiceNumber)
}
