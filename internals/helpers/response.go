package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Every response shares the same envelope: {success, message, data}.
// Failures additionally carry a machine-readable "error" kind.

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, code int, kind, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
		"error":   kind,
	})
}

func ErrorWithDetails(c *fiber.Ctx, code int, kind, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
		"error":   kind,
		"errors":  details,
	})
}

// ValidationError formats validator.v10 field errors into the envelope.
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, KindValidation, "Invalid input")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return ErrorWithDetails(c, fiber.StatusBadRequest, KindValidation, "Validation failed", errorsMap)
}
