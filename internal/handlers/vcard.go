package handlers

import (
	"fmt"

	"cardlink/internal/metrics"
	"cardlink/internal/services/card"
	"cardlink/internal/services/vcard"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type VCardHandler struct {
	cardService card.Service
	baseURL     string
}

func NewVCardHandler(cardService card.Service, baseURL string) *VCardHandler {
	return &VCardHandler{
		cardService: cardService,
		baseURL:     baseURL,
	}
}

// Download serves the card as a vCard file for direct import into a
// contacts application. Public: it is part of the shared-link surface.
func (h *VCardHandler) Download(c *fiber.Ctx) error {
	cd, err := h.cardService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}

	photoURL := ""
	if cd.PhotoPath != "" {
		photoURL = h.baseURL + "/api/photos/" + cd.PhotoPath
	}

	metrics.VCardDownloadsTotal.Inc()
	c.Set(fiber.HeaderContentType, "text/vcard")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", vcard.Filename(cd)))
	return c.Send(vcard.Serialize(cd, photoURL))
}
