package serverutils

import (
	"errors"

	"next-action-be/pkg/rerank"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware normalizes errors bubbling out of controllers
// into the JSON envelope. Typed failures keep their status: validation
// errors are 400s, an unrepairable re-rank response is a 502 (the upstream
// text-generation service misbehaved, not the caller).
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		var parseErr *rerank.ParseError
		if errors.As(err, &parseErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, parseErr.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
