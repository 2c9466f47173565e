package handlers

import (
	"cardlink/internal/services/auth"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates the operator and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if input.Password == "" {
		return response.BadRequest(c, "password is required")
	}

	token, err := h.authService.Login(input.Password)
	if err != nil {
		return response.Unauthorized(c, "invalid password")
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"message": "login successful",
	})
}
