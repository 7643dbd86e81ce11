package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds. The source conflated authorization and validation failures;
// here every service failure names one of four kinds so the API layer can
// map it without string matching.
const (
	KindNotFound   = "not_found"
	KindForbidden  = "forbidden"
	KindValidation = "validation"
	KindConflict   = "conflict"
)

type AppError struct {
	Kind    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

func NotFound(msg string) error   { return &AppError{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error  { return &AppError{Kind: KindForbidden, Message: msg} }
func Validation(msg string) error { return &AppError{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error   { return &AppError{Kind: KindConflict, Message: msg} }

func kindToStatus(kind string) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// FromError converts a service error into the uniform error envelope.
// *AppError keeps its kind; *fiber.Error keeps its status; anything else is a 500.
func FromError(c *fiber.Ctx, err error) error {
	var ae *AppError
	if errors.As(err, &ae) {
		return Error(c, kindToStatus(ae.Kind), ae.Kind, ae.Message)
	}
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, "error", fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, "internal", err.Error())
}
