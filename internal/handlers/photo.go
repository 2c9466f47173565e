package handlers

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"cardlink/internal/storage"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

var photoMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type PhotoHandler struct {
	photos storage.Storage
}

func NewPhotoHandler(photos storage.Storage) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Get streams the stored photo bytes. The filename is the opaque reference
// held on the card record.
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	name := c.Params("filename")

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if err := h.photos.Get(ctx, name, &buf); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return response.NotFound(c, "photo not found")
		}
		return response.Error(c, fiber.StatusBadGateway, "photo storage unavailable")
	}

	ext := strings.ToLower(filepath.Ext(name))
	mime, ok := photoMimeTypes[ext]
	if !ok {
		mime = "image/jpeg"
	}
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(buf.Bytes())
}
