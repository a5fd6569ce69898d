package middleware

import (
	"inventra-backend/internal/pkg/faults"
	"inventra-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the global error handler. Fiber errors keep their code,
// domain faults map through their kind, anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else if kind := faults.KindOf(err); kind != "" {
		code = faults.StatusCode(err)
		message = err.Error()
	}

	return response.Error(c, message, code, map[string]interface{}{})
}
