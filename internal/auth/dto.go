package auth

import (
	"strings"

	"github.com/frahmantamala/budget-tracker/internal"
)

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

const minPasswordLength = 8

func (d RegisterDTO) Validate() *internal.AppError {
	if d.Email == "" || !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Password) < minPasswordLength {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d LoginDTO) Validate() *internal.AppError {
	if d.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d RefreshTokenDTO) Validate() *internal.AppError {
	if d.RefreshToken == "" {
		return internal.NewValidationError("refresh_token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
