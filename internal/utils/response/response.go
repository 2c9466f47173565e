package response

import (
	"errors"

	apperrors "cardlink/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// FromError maps a domain error onto the matching HTTP response.
func FromError(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, apperrors.ErrCardNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrPhotoNotFound):
		return NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return Unauthorized(c, err.Error())
	case errors.Is(err, apperrors.ErrUpstreamFailure):
		return Error(c, fiber.StatusBadGateway, err.Error())
	default:
		return ServerError(c, "internal server error")
	}
}
