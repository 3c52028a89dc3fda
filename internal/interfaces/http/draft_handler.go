package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/application/invoicing"
)

// DraftHandler exposes the per-user draft slot for the invoice form.
type DraftHandler struct {
	uc *invoicing.DraftUseCase
}

// NewDraftHandler builds the handler.
func NewDraftHandler(uc *invoicing.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Get returns the stored draft, 204 when the slot is empty.
// GET /api/invoices/draft
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	draft, err := h.uc.Load(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if draft == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(draft)
}

// Put overwrites the slot with the full current form state.
// PUT /api/invoices/draft
func (h *DraftHandler) Put(c *fiber.Ctx) error {
	var draft dto.InvoiceDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.uc.Save(c.Context(), GetUserID(c), &draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete empties the slot.
// DELETE /api/invoices/draft
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
