package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/luxe/internal/services"
)

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var statusByError = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrDuplicateEmail, fiber.StatusBadRequest, "Email already registered"},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "Invalid email or password"},
	{services.ErrUnauthenticated, fiber.StatusUnauthorized, "Invalid authentication credentials"},
	{services.ErrForbidden, fiber.StatusForbidden, "Admin access required"},
	{services.ErrPasswordMismatch, fiber.StatusBadRequest, "Passwords do not match"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "Password must be at least 6 characters"},
	{services.ErrPasswordTooLong, fiber.StatusBadRequest, "Password must be at most 72 bytes"},
	{services.ErrInvalidChallenge, fiber.StatusBadRequest, "Invalid credentials"},
	{services.ErrCartNotFound, fiber.StatusNotFound, "Cart not found"},
	{services.ErrInvalidQuantity, fiber.StatusBadRequest, "Quantity must be at least 1"},
	{services.ErrInvalidInput, fiber.StatusBadRequest, "Missing required fields"},
}

// mapError turns a service error into a fiber error. Unknown errors pass
// through and end up as 500.
func mapError(err error) error {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return fiber.NewError(m.status, m.message)
		}
	}
	return err
}

// ErrorHandler renders every error as {"success": false, "error": msg}.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   validationErr.Error(),
				"fields":  validationErr.Fields,
			})
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			log.ErrorContext(c.UserContext(), "request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.String("error", err.Error()),
			)
		}

		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, validate *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return &ValidationError{Fields: formatValidationErrors(errs)}
		}
		return err
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s is required", field)
		case "email":
			messages[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			messages[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			messages[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		default:
			messages[field] = fmt.Sprintf("%s failed %s validation", field, err.Tag())
		}
	}
	return messages
}
