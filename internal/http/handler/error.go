package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"nomia/internal/http/middleware"
)

// User-facing error messages. Expected, user-actionable conditions are
// surfaced verbatim; everything else maps to a generic message with the
// detail logged server-side.
const (
	msgUnauthorized    = "You must be logged in to access this resource"
	msgFetchFailed     = "An error occurred while fetching your user account"
	msgInvalidTeamID   = "Invalid team ID provided"
	msgLimitExceeded   = "You have reached your document limit"
	msgFileNotFound    = "File not found"
	msgInvalidDocument = "Invalid document file"
	msgInvalidPaging   = "Invalid pagination parameters provided"
	msgUnknown         = "An unknown error occurred"
)

// logger emits server-side error detail that must not leak to end users.
var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// errorPayload is the standardized error response body: {"error": "..."}.
type errorPayload struct {
	Error string `json:"error"`
}

// writeError writes a standardized JSON error response without leaking
// internal errors. The message must already be safe for end users.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// logServerError records full error detail alongside the request id for
// operator debugging.
func logServerError(c *fiber.Ctx, err error, context string) {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	logger.Error().
		Err(err).
		Str("request_id", rid).
		Str("path", c.Path()).
		Msg(context)
}

// ErrorHandler returns a Fiber global error handler that standardizes
// error responses. Unauthenticated requests get 401; everything else,
// including misconfiguration and not-found failures that escape the
// handlers, maps to 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusUnauthorized:
			return writeError(c, status, msgUnauthorized)
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		default:
			logServerError(c, err, "unhandled error")
			return writeError(c, fiber.StatusInternalServerError, msgUnknown)
		}
	}
}
