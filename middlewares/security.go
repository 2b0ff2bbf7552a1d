package middlewares

import "github.com/gofiber/fiber/v2"

const contentSecurityPolicy = "default-src 'self'; font-src 'self'; img-src 'self'; script-src 'self'; style-src 'self'; frame-src 'self'"

// SecurityHeaders sets the Content-Security-Policy on every response.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentSecurityPolicy, contentSecurityPolicy)
		return c.Next()
	}
}
