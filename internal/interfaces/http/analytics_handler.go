package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/globaltours/invoice-api/internal/application/analytics"
	"github.com/globaltours/invoice-api/internal/application/dto"
)

// AnalyticsHandler serves the dashboard statistics.
type AnalyticsHandler struct {
	uc *analytics.SummaryUseCase
}

// NewAnalyticsHandler builds the handler.
func NewAnalyticsHandler(uc *analytics.SummaryUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Summary godoc
// @Summary      Revenue/trip/route statistics over the full invoice collection
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
