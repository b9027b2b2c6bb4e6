package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"recruitment-hub/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var kindStatus = map[domain.ErrorKind]struct {
	status int
	code   string
}{
	domain.KindUnauthenticated: {fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	domain.KindForbidden:       {fiber.StatusForbidden, "FORBIDDEN"},
	domain.KindNotFound:        {fiber.StatusNotFound, "NOT_FOUND"},
	domain.KindValidation:      {fiber.StatusBadRequest, "VALIDATION_ERROR"},
	domain.KindConflict:        {fiber.StatusConflict, "CONFLICT"},
}

// ErrorHandler maps domain errors and fiber errors to the JSON error body.
// Anything else is logged and reported as an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, errorCode, message := resolve(err)
	traceID := uuid.New().String()[:8]

	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("request failed")
	}

	return c.Status(status).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func resolve(err error) (status int, errorCode, message string) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		if mapped, ok := kindStatus[domainErr.Kind]; ok {
			return mapped.status, mapped.code, domainErr.Message
		}
		return fiber.StatusInternalServerError, "INTERNAL_ERROR", domainErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		errorCode = "INTERNAL_ERROR"
		switch fiberErr.Code {
		case fiber.StatusBadRequest:
			errorCode = "BAD_REQUEST"
		case fiber.StatusUnauthorized:
			errorCode = "UNAUTHENTICATED"
		case fiber.StatusForbidden:
			errorCode = "FORBIDDEN"
		case fiber.StatusNotFound:
			errorCode = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			errorCode = "METHOD_NOT_ALLOWED"
		case fiber.StatusConflict:
			errorCode = "CONFLICT"
		case fiber.StatusRequestEntityTooLarge:
			errorCode = "PAYLOAD_TOO_LARGE"
		case fiber.StatusTooManyRequests:
			errorCode = "TOO_MANY_REQUESTS"
		}
		return fiberErr.Code, errorCode, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}
