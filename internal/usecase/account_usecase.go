// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"fleet/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to open a customer account.
type RegisterInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	BirthDate     time.Time
	LicenseNumber string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries a refresh token to exchange for a new pair.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// LoginOutput returns the issued token pair after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	Account      *entity.Account
}

// AccountUsecase defines the interface for signup and authentication flows.
// This is the contract that the delivery layer (API handlers) depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*LoginOutput, error)
}
