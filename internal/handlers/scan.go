package handlers

import (
	"cardlink/internal/services/scan"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ScanHandler struct {
	scanService scan.Service
}

func NewScanHandler(scanService scan.Service) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// Record registers one visit to the card's public link. Public by design;
// every call counts as one scan.
func (h *ScanHandler) Record(c *fiber.Ctx) error {
	device, err := h.scanService.Record(c.Context(), c.Params("id"), c.Get("User-Agent"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "scan recorded",
		"device_type": device,
	})
}
