// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "fleet/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps a validator instance for request DTO validation.
type echoValidator struct {
	validate *validator.Validate
}

// New creates an Echo-compatible validator.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate implements echo.Validator. Failures surface as the application's
// validation error so the error middleware renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
