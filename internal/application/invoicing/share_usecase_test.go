package invoicing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaltours/invoice-api/internal/domain/entity"
)

type fakeArtifactStore struct {
	objects map[string][]byte
	putErr  error
	baseURL string
}

func newFakeArtifactStore() *fakeArtifactStore {
	return &fakeArtifactStore{objects: map[string][]byte{}, baseURL: "https://store.example/"}
}

func (s *fakeArtifactStore) Put(_ context.Context, objectName string, data []byte, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[objectName] = data
	return nil
}

func (s *fakeArtifactStore) PresignedURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return s.baseURL + objectName, nil
}

func shareFixture(t *testing.T) (*fakeInvoiceRepo, *PDFUseCase) {
	t.Helper()
	repo := newFakeInvoiceRepo()
	require.NoError(t, repo.Create(sampleShareInvoice()))
	pdfUC := NewPDFUseCase(repo, &stubPDFGenerator{out: []byte("%PDF-1.4")}, testBusiness())
	return repo, pdfUC
}

func sampleShareInvoice() *entity.Invoice {
	return &entity.Invoice{
		ID:             "inv-1",
		InvoiceNumber:  7,
		InvoiceDate:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CustomerName:   "Rohit Kumar",
		CustomerPhone:  "9876543210",
		PickupLocation: "Mumbai Airport",
		Destination:    "Pune Station",
		TotalAmount:    decimal.NewFromInt(3000),
	}
}

func TestShare_WithArtifactStore(t *testing.T) {
	_, pdfUC := shareFixture(t)
	store := newFakeArtifactStore()
	uc := NewShareUseCase(pdfUC, store, testBusiness(), time.Hour, zerolog.Nop())

	resp, pdfBytes, err := uc.Share(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.True(t, resp.SharedDirectly)
	assert.Equal(t, []byte("%PDF-1.4"), pdfBytes)
	assert.Equal(t, "Rohit_Kumar_invoice_0007.pdf", resp.Filename)
	assert.Equal(t, "https://store.example/invoices/inv-1/Rohit_Kumar_invoice_0007.pdf", resp.ArtifactURL)
	assert.Contains(t, resp.Message, "Download your invoice: "+resp.ArtifactURL)
	assert.Contains(t, store.objects, "invoices/inv-1/Rohit_Kumar_invoice_0007.pdf")
}

func TestShare_NoStoreFallsBack(t *testing.T) {
	_, pdfUC := shareFixture(t)
	uc := NewShareUseCase(pdfUC, nil, testBusiness(), time.Hour, zerolog.Nop())

	resp, _, err := uc.Share(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.False(t, resp.SharedDirectly)
	assert.Empty(t, resp.ArtifactURL)
	assert.Contains(t, resp.Message, "Please find the invoice PDF attached.")
}

func TestShare_UploadFailureFallsBack(t *testing.T) {
	_, pdfUC := shareFixture(t)
	store := newFakeArtifactStore()
	store.putErr = errors.New("bucket unavailable")
	uc := NewShareUseCase(pdfUC, store, testBusiness(), time.Hour, zerolog.Nop())

	resp, _, err := uc.Share(context.Background(), "inv-1")

	require.NoError(t, err, "upload failure degrades to fallback, not an error")
	assert.False(t, resp.SharedDirectly)
}

func TestShare_MessageAndComposerURL(t *testing.T) {
	_, pdfUC := shareFixture(t)
	uc := NewShareUseCase(pdfUC, nil, testBusiness(), time.Hour, zerolog.Nop())

	resp, _, err := uc.Share(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Contains(t, resp.Message, "*Global Tours & Travels*")
	assert.Contains(t, resp.Message, "Invoice #0007")
	assert.Contains(t, resp.Message, "15/01/2025")
	assert.Contains(t, resp.Message, "Mumbai Airport -> Pune Station")
	assert.Contains(t, resp.Message, "Total: Rs. 3,000")
	assert.Contains(t, resp.Message, "Contact: 98815 98109")

	// Country code prepended to the bare 10-digit customer number.
	assert.Contains(t, resp.WhatsAppURL, "https://web.whatsapp.com/send?phone=919876543210&text=")
}

func TestShare_InternationalNumberLeftAlone(t *testing.T) {
	repo := newFakeInvoiceRepo()
	inv := sampleShareInvoice()
	inv.CustomerPhone = "919876543210"
	require.NoError(t, repo.Create(inv))
	pdfUC := NewPDFUseCase(repo, &stubPDFGenerator{out: []byte("%PDF")}, testBusiness())
	uc := NewShareUseCase(pdfUC, nil, testBusiness(), time.Hour, zerolog.Nop())

	resp, _, err := uc.Share(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Contains(t, resp.WhatsAppURL, "phone=919876543210&")
}
