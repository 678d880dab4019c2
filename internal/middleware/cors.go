package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows browser clients on the given origins to call the API.
// origins is comma separated; "*" or "" allows any origin.
func CORS(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodHead, fiber.MethodOptions}, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Api-Version",
		ExposeHeaders: "X-Api-Version",
	})
}
