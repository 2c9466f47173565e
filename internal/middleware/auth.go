// Package middleware provides HTTP middleware components for the
// application.
package middleware

import (
	"strings"

	"cardlink/internal/services/auth"
	"cardlink/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware guards the operator-only routes. It extracts the bearer
// token from the Authorization header, validates it, and stores the claims
// in the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler short-circuits with 401 before any store access when the token is
// missing, malformed or expired.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.authService.ValidateToken(tokenString)
	if err != nil {
		return response.Unauthorized(c, "invalid or expired token")
	}

	c.Locals("claims", claims)
	return c.Next()
}
