package middlewares

import (
	"errors"
	"log/slog"

	"inspection-backend/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Outside production the cause of a 500 is echoed under "error".
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// 1) Application errors
		if ae, ok := apperrors.As(err); ok {
			status := ae.Kind.Status()
			body := fiber.Map{"message": ae.Message}
			if ae.Details != nil {
				body["errors"] = ae.Details
			}
			if status >= fiber.StatusInternalServerError {
				logServerError(c, err)
				if !production && ae.Err != nil {
					body["error"] = ae.Err.Error()
				}
			}
			return c.Status(status).JSON(body)
		}

		// 2) Fiber errors (use their status code + message)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		// 3) Validation errors (400 + per-field info)
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error",
				"errors":  FieldErrors(ve),
			})
		}

		// 4) Unknown errors (500)
		logServerError(c, err)
		body := fiber.Map{"message": "Internal server error"}
		if !production {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

// NotFound is the catch-all for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, "Not Found")
}

// FieldErrors maps each failed field (JSON path) to the rule it broke.
func FieldErrors(ve validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		// Namespace minus the root struct, e.g. "certificates[1]"
		out[trimNamespace(fe.Namespace())] = fe.Tag()
	}
	return out
}

func trimNamespace(ns string) string {
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return ns
}

func logServerError(c *fiber.Ctx, err error) {
	slog.Error("internal error",
		"error", err,
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
	)
}
