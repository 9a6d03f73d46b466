package handlers

import (
	"net/http"

	"parametric-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// RequireOperator gates the privileged route group behind the operator API
// key from config.
func RequireOperator(apiKey string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if apiKey == "" || c.Get("X-API-Key") != apiKey {
			return c.Status(http.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("UNAUTHORIZED", "Operator API key is required"))
		}
		return c.Next()
	}
}
