package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrServiceUnavailable marks a request that arrived before a required
// backend dependency was ready.
var ErrServiceUnavailable = errors.New("service unavailable")

// ErrorHandlerMiddleware turns returned errors into the uniform envelope.
// Validation failures map to 422, unavailable dependencies to 503, explicit
// fiber errors keep their status, anything else becomes an opaque 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var verr *ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse(fiber.StatusUnprocessableEntity, verr.Error()))
		}

		if errors.Is(err, ErrServiceUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(ErrorResponse(fiber.StatusServiceUnavailable, "Service is temporarily unavailable. Please try again later."))
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return ctx.Status(ferr.Code).JSON(ErrorResponse(ferr.Code, ferr.Message))
		}

		log.Printf("unhandled error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Something went wrong. Please try again."))
	}
}
