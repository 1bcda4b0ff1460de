package handler

import (
	"net/http"
	"time"

	"fleet/internal/delivery/http/middleware"
	"fleet/internal/delivery/http/response"
	"fleet/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for self-service account handlers.
type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get returns the current account.
func (h *ProfileHandler) Get(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	account, err := h.uc.Get(c.Request().Context(), principal.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Profile retrieved successfully")
}

type updateProfileRequest struct {
	CurrentPassword string  `json:"current_password" validate:"required"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           *string `json:"email"`
	BirthDate       *string `json:"birth_date"`
	LicenseNumber   *string `json:"license_number"`
}

// Update applies a partial profile update.
func (h *ProfileHandler) Update(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.UpdateProfileInput{
		CurrentPassword: req.CurrentPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		LicenseNumber:   req.LicenseNumber,
	}
	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate, "birth_date")
		if err != nil {
			return err
		}
		input.BirthDate = &birthDate
	}

	account, err := h.uc.Update(c.Request().Context(), principal.AccountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Profile updated successfully")
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ChangePassword rotates the account password.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.ChangePassword(c.Request().Context(), principal.AccountID, &usecase.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// Delete removes the current account after password confirmation.
func (h *ProfileHandler) Delete(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	var req deleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), principal.AccountID, req.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"deleted_at": time.Now().UTC().Format(time.RFC3339)}, "Account deleted successfully")
}
