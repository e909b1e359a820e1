package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/luxe/internal/services"
)

// PasswordResetHandler manages the forgot-password endpoint.
type PasswordResetHandler struct {
	auth     *services.AuthService
	validate *validator.Validate
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(auth *services.AuthService, validate *validator.Validate) *PasswordResetHandler {
	return &PasswordResetHandler{auth: auth, validate: validate}
}

// Length and equality of the new password are left to the service so its
// check order decides which error the caller sees.
type forgotPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	FirstLetter     string `json:"first_letter"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ForgotPassword resets a password after the phone and name initial check.
// It does not log the user in.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := bind(c, h.validate, &req); err != nil {
		return err
	}

	err := h.auth.RecoverPassword(c.UserContext(), services.RecoveryInput{
		Email:           req.Email,
		Phone:           req.Phone,
		FirstLetter:     req.FirstLetter,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password has been reset successfully",
	})
}
