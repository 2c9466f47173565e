package handlers

import (
	"mime/multipart"
	"strconv"

	"cardlink/internal/models"
	"cardlink/internal/services/card"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CardHandler struct {
	cardService card.Service
	baseURL     string
}

func NewCardHandler(cardService card.Service, baseURL string) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		baseURL:     baseURL,
	}
}

// List returns all cards, most recent first. Operator only.
func (h *CardHandler) List(c *fiber.Ctx) error {
	cards, err := h.cardService.List(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}
	for _, cd := range cards {
		h.setPhotoURL(cd)
	}
	return c.JSON(cards)
}

// Get returns a single card. Public: this backs the shared link.
func (h *CardHandler) Get(c *fiber.Ctx) error {
	cd, err := h.cardService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	h.setPhotoURL(cd)
	return c.JSON(cd)
}

// Create creates a card from a multipart form with an optional photo.
func (h *CardHandler) Create(c *fiber.Ctx) error {
	input, err := cardInputFromForm(c)
	if err != nil {
		return response.BadRequest(c, "expected multipart form data")
	}

	photo, closePhoto, err := photoFromForm(c)
	if err != nil {
		return response.BadRequest(c, "could not read photo upload")
	}
	if closePhoto != nil {
		defer closePhoto()
	}

	cd, err := h.cardService.Create(c.Context(), input, photo)
	if err != nil {
		return response.FromError(c, err)
	}
	h.setPhotoURL(cd)
	return c.Status(fiber.StatusCreated).JSON(cd)
}

// Update applies a partial update; fields absent from the form keep their
// prior values.
func (h *CardHandler) Update(c *fiber.Ctx) error {
	input, err := cardInputFromForm(c)
	if err != nil {
		return response.BadRequest(c, "expected multipart form data")
	}

	photo, closePhoto, err := photoFromForm(c)
	if err != nil {
		return response.BadRequest(c, "could not read photo upload")
	}
	if closePhoto != nil {
		defer closePhoto()
	}

	cd, err := h.cardService.Update(c.Context(), c.Params("id"), input, photo)
	if err != nil {
		return response.FromError(c, err)
	}
	h.setPhotoURL(cd)
	return c.JSON(cd)
}

// Delete removes a card and its scan history.
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	if err := h.cardService.Delete(c.Context(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(fiber.Map{"message": "card deleted"})
}

func (h *CardHandler) setPhotoURL(cd *models.Card) {
	if cd.PhotoPath != "" {
		cd.PhotoURL = h.baseURL + "/api/photos/" + cd.PhotoPath
	}
}

// cardInputFromForm reads the writable fields, distinguishing absent fields
// from ones explicitly set to a value.
func cardInputFromForm(c *fiber.Ctx) (models.CardInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return models.CardInput{}, err
	}

	get := func(key string) *string {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			v := vals[0]
			return &v
		}
		return nil
	}

	input := models.CardInput{
		FirstName: get("first_name"),
		LastName:  get("last_name"),
		Email:     get("email"),
		Phone:     get("phone"),
		Company:   get("company"),
		Position:  get("position"),
		Website:   get("website"),
	}
	if raw := get("is_active"); raw != nil {
		if active, err := strconv.ParseBool(*raw); err == nil {
			input.IsActive = &active
		}
	}
	return input, nil
}

// photoFromForm opens the optional "photo" part. The returned close func is
// nil when no photo was uploaded.
func photoFromForm(c *fiber.Ctx) (*card.PhotoUpload, func(), error) {
	header, err := c.FormFile("photo")
	if err != nil {
		return nil, nil, nil // no photo part
	}
	if header.Filename == "" {
		return nil, nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &card.PhotoUpload{
		Filename: header.Filename,
		Reader:   file,
	}, func() { closeFile(file) }, nil
}

func closeFile(f multipart.File) {
	_ = f.Close()
}
