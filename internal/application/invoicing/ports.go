package invoicing

import (
	"context"
	"time"

	"github.com/globaltours/invoice-api/internal/domain/entity"
	"github.com/globaltours/invoice-api/pkg/config"
)

// DraftStore is the single-slot key-value collaborator holding an in-progress
// form. Last writer wins; no history, no expiry. Implementations must treat
// absent keys as "no draft", not as an error.
type DraftStore interface {
	Save(ctx context.Context, key string, data []byte) error
	// Load returns (nil, nil) when no draft is stored under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Clear(ctx context.Context, key string) error
}

// ArtifactStore hosts generated PDF artifacts so the share message can carry
// a direct link instead of asking the user to attach a downloaded file.
type ArtifactStore interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// InvoicePDFGenerator renders an invoice into a printable A4 PDF.
// Rendering is deterministic given the same invoice and branding.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, business config.BusinessConfig) ([]byte, error)
}
