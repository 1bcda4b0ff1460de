package usecase

import (
	"context"
	"time"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateReservationInput books a car for the requesting principal.
// Coverage, rate and total price are derived server-side, never accepted.
type CreateReservationInput struct {
	CarID     uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// UpdateReservationInput rebooks an existing reservation. Derived fields
// supplied by clients are ignored; everything is recomputed. Only staff may
// move a reservation to a different car.
type UpdateReservationInput struct {
	StartDate time.Time
	EndDate   time.Time
	CarID     *uuid.UUID
}

// ListReservationsInput narrows a reservation listing. Non-staff principals
// are always pre-filtered to their own reservations before these apply.
type ListReservationsInput struct {
	Status  string // "", "upcoming" or "past".
	Search  string // Matches renter email and car license plate.
	OrderBy string // "start_date" (default) or "end_date".
	Desc    bool
	OnlyOwn bool // Restrict to the principal's reservations even for staff.
}

// ReservationUsecase is the reservation lifecycle engine's application
// boundary: validation, overlap detection, derivation and the ownership
// rules all run behind this interface.
type ReservationUsecase interface {
	Create(ctx context.Context, principal entity.Principal, input *CreateReservationInput) (*entity.Reservation, error)
	List(ctx context.Context, principal entity.Principal, input *ListReservationsInput) ([]*entity.Reservation, error)
	Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Reservation, error)
	Update(ctx context.Context, principal entity.Principal, id uuid.UUID, input *UpdateReservationInput) (*entity.Reservation, error)

	// Delete removes a reservation. Staff delete unconditionally; the
	// owner must re-confirm their password and the reservation must not
	// have ended yet.
	Delete(ctx context.Context, principal entity.Principal, id uuid.UUID, password string) error
}
