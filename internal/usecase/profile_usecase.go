package usecase

import (
	"context"
	"time"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines a partial profile update. Every mutation of the
// profile requires re-confirmation of the current password.
type UpdateProfileInput struct {
	CurrentPassword string
	FirstName       *string
	LastName        *string
	Email           *string
	BirthDate       *time.Time
	LicenseNumber   *string
}

// ChangePasswordInput defines a password rotation request.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// ProfileUsecase defines self-service operations on the current account.
type ProfileUsecase interface {
	Get(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	Update(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*entity.Account, error)

	// Delete removes the account after confirming the password.
	// Reservations owned by the account cascade away.
	Delete(ctx context.Context, accountID uuid.UUID, password string) error

	ChangePassword(ctx context.Context, accountID uuid.UUID, input *ChangePasswordInput) error
}
