package router

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error as a JSON body with a message. Errors not
// raised as *fiber.Error become a generic 500; outside production those carry
// a stack trace to ease debugging.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		body := fiber.Map{"error": message}
		if !production && code == fiber.StatusInternalServerError {
			body["stack"] = fmt.Sprintf("%v\n%s", err, debug.Stack())
		}

		return c.Status(code).JSON(body)
	}
}
