package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/apperr"
)

const msgInternal = "internal server error"

// writeError renders err as a JSON error body with the status its kind maps to.
func writeError(c *fiber.Ctx, log *slog.Logger, err error) error {
	status, body := errorResponse(err)

	attrs := []any{
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", status),
		slog.Any("error", err),
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		attrs = append(attrs, slog.String("request_id", rid))
	}
	if status >= fiber.StatusInternalServerError {
		log.ErrorContext(c.UserContext(), "request failed", attrs...)
	} else {
		log.WarnContext(c.UserContext(), "request rejected", attrs...)
	}

	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, fiber.Map) {
	if appErr, ok := apperr.As(err); ok {
		body := fiber.Map{"detail": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		return statusOf(appErr.Kind), body
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fiber.Map{"detail": fe.Message}
	}
	return fiber.StatusInternalServerError, fiber.Map{"detail": msgInternal}
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict, apperr.KindInvalidArgument, apperr.KindInsufficientStock:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler is the fiber error handler for errors no handler rendered
// itself, such as unknown routes and recovered panics.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, log, err)
	}
}
