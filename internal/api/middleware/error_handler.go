package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/facegeo/internal/domain"
)

// LocalRequestID is where the requestid middleware stores the request ID
const LocalRequestID = "requestid"

// RequestID returns the request ID set by the requestid middleware, if any
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}

func errorBody(c *fiber.Ctx, code, message string) fiber.Map {
	body := fiber.Map{
		"code":    code,
		"message": message,
	}
	if id := RequestID(c); id != "" {
		body["request_id"] = id
	}
	return fiber.Map{"error": body}
}

func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Check if it's our AppError
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			if appErr.StatusCode >= 500 {
				logger.Error("internal error",
					slog.String("code", appErr.Code),
					slog.String("message", appErr.Message),
					slog.String("request_id", RequestID(c)),
					slog.Any("error", appErr.Err),
				)
			} else {
				logger.Debug("request rejected",
					slog.String("code", appErr.Code),
					slog.String("path", c.Path()),
					slog.Any("error", appErr.Err),
				)
			}

			return c.Status(appErr.StatusCode).JSON(errorBody(c, appErr.Code, appErr.Message))
		}

		// Fiber errors (404 route, 405, body too large, ...)
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(errorBody(c, "HTTP_ERROR", fiberErr.Message))
		}

		// Unknown error - log and return generic message
		logger.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Path()),
			slog.String("request_id", RequestID(c)),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(
			errorBody(c, domain.ErrInternal.Code, domain.ErrInternal.Message),
		)
	}
}
