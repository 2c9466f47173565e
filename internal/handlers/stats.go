package handlers

import (
	"cardlink/internal/services/stats"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Global returns the aggregate summary across all cards.
func (h *StatsHandler) Global(c *fiber.Ctx) error {
	summary, err := h.statsService.Global(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(summary)
}

// ForCard returns the summary scoped to one card.
func (h *StatsHandler) ForCard(c *fiber.Ctx) error {
	summary, err := h.statsService.ForCard(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(summary)
}
