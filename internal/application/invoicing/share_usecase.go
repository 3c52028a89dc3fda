package invoicing

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain"
	"github.com/globaltours/invoice-api/internal/domain/entity"
	"github.com/globaltours/invoice-api/pkg/config"
)

// ShareUseCase implements the export/share pipeline: generate the PDF, host
// it when an artifact store is configured, and compose the prefilled WhatsApp
// message for the customer.
//
// Two outcomes, reported via SharedDirectly:
//   - true:  the PDF was uploaded and the message carries a download link.
//   - false: no artifact store (or upload failed); the caller downloads the
//     PDF from the API and attaches it manually in the opened composer.
//
// Upload failure degrades to the fallback instead of failing the share — it
// is independent of PDF generation failure, which does fail the call.
type ShareUseCase struct {
	pdfUC     *PDFUseCase
	artifacts ArtifactStore // nil when storage is not configured
	business  config.BusinessConfig
	urlExpiry time.Duration
	log       zerolog.Logger
}

// NewShareUseCase builds the use case. artifacts may be nil.
func NewShareUseCase(pdfUC *PDFUseCase, artifacts ArtifactStore, business config.BusinessConfig, urlExpiry time.Duration, log zerolog.Logger) *ShareUseCase {
	return &ShareUseCase{
		pdfUC:     pdfUC,
		artifacts: artifacts,
		business:  business,
		urlExpiry: urlExpiry,
		log:       log,
	}
}

// Share runs the pipeline for one invoice and returns the share outcome plus
// the PDF bytes so the handler can also offer them for download.
func (uc *ShareUseCase) Share(ctx context.Context, invoiceID string) (*dto.ShareResponse, []byte, error) {
	inv, err := uc.pdfUC.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("share: load invoice: %w", err)
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}

	pdfBytes, filename, err := uc.pdfUC.DownloadInvoicePDF(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	artifactURL := ""
	if uc.artifacts != nil {
		objectName := fmt.Sprintf("invoices/%s/%s", inv.ID, filename)
		if putErr := uc.artifacts.Put(ctx, objectName, pdfBytes, "application/pdf"); putErr != nil {
			uc.log.Warn().Err(putErr).Str("invoice_id", inv.ID).Msg("artifact upload failed, falling back to download share")
		} else if presigned, urlErr := uc.artifacts.PresignedURL(ctx, objectName, uc.urlExpiry); urlErr != nil {
			uc.log.Warn().Err(urlErr).Str("invoice_id", inv.ID).Msg("presign failed, falling back to download share")
		} else {
			artifactURL = presigned
		}
	}

	message := ComposeShareMessage(inv, uc.business, artifactURL)
	phone := PhoneForMessaging(inv.CustomerPhone, uc.business.CountryCode)

	return &dto.ShareResponse{
		SharedDirectly: artifactURL != "",
		Filename:       filename,
		ArtifactURL:    artifactURL,
		WhatsAppURL:    WhatsAppComposerURL(phone, message),
		Message:        message,
	}, pdfBytes, nil
}

// ComposeShareMessage builds the outbound message: business name, invoice
// number, date, route, total, and a courtesy close. When the PDF is hosted,
// the link replaces the "attached" instruction.
func ComposeShareMessage(inv *entity.Invoice, business config.BusinessConfig, artifactURL string) string {
	attachment := "Please find the invoice PDF attached."
	if artifactURL != "" {
		attachment = "Download your invoice: " + artifactURL
	}
	return fmt.Sprintf(
		"*%s*\n\n"+
			"Invoice #%04d\n"+
			"%s\n\n"+
			"%s -> %s\n"+
			"Total: Rs. %s\n\n"+
			"%s\n\n"+
			"Thank you for choosing %s!\n"+
			"Contact: %s",
		business.Name,
		inv.InvoiceNumber,
		inv.InvoiceDate.Format("02/01/2006"),
		inv.PickupLocation, inv.Destination,
		FormatINR(inv.TotalAmount),
		attachment,
		business.Name,
		business.Phone,
	)
}

// WhatsAppComposerURL returns the WhatsApp Web composer link prefilled with
// the message for the given international number.
func WhatsAppComposerURL(phone, message string) string {
	return "https://web.whatsapp.com/send?phone=" + phone + "&text=" + url.QueryEscape(message)
}
