package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/application/invoicing"
	"github.com/globaltours/invoice-api/internal/domain"
)

// InvoiceHandler handles invoice CRUD, numbering, PDF download and share.
type InvoiceHandler struct {
	uc      *invoicing.InvoiceUseCase
	pdfUC   *invoicing.PDFUseCase
	shareUC *invoicing.ShareUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *invoicing.InvoiceUseCase, pdfUC *invoicing.PDFUseCase, shareUC *invoicing.ShareUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdfUC: pdfUC, shareUC: shareUC}
}

// Create godoc
// @Summary      Create an invoice (number assigned server-side)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveInvoiceRequest  true  "invoice form"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	inv, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoicing.ToResponse(inv))
}

// List godoc
// @Summary      List invoices, newest first; q filters by number, name or phone
// @Tags         invoices
// @Produce      json
// @Param        q  query  string  false  "search query"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invs, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoicing.ToResponseList(invs))
}

// GetByID returns one invoice.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoicing.ToResponse(inv))
}

// Update overwrites an invoice with the submitted form state.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	inv, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(invoicing.ToResponse(inv))
}

// Delete removes an invoice permanently.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return invoiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// NextNumber previews the number the next created invoice will receive.
// GET /api/invoices/next-number
func (h *InvoiceHandler) NextNumber(c *fiber.Ctx) error {
	n, err := h.uc.NextNumber(c.Context())
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{NextInvoiceNumber: n})
}

// DownloadPDF streams the rendered invoice PDF.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// Share godoc
// @Summary      Run the share pipeline: host the PDF when storage is configured and return the WhatsApp composer URL
// @Tags         invoices
// @Produce      json
// @Success      200  {object}  dto.ShareResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/share [post]
func (h *InvoiceHandler) Share(c *fiber.Ctx) error {
	resp, _, err := h.shareUC.Share(c.Context(), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(resp)
}

// invoiceError maps domain errors onto HTTP statuses.
func invoiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invoice not found"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NUMBER_CONFLICT", Message: "invoice number already taken, retry the submission"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
