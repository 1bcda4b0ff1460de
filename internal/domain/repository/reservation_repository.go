package repository

import (
	"context"
	"errors"
	"time"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReservationNotFound is returned when a reservation is not found.
var ErrReservationNotFound = errors.New("reservation not found")

// Reservation status filter values, relative to the filter's Today date.
const (
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

// Reservation ordering columns accepted by List.
const (
	OrderByStartDate = "start_date"
	OrderByEndDate   = "end_date"
)

// ReservationFilter narrows reservation listings. A non-nil RenterID scopes
// the result to one account; this is how non-staff principals are fenced in
// before any other filter applies.
type ReservationFilter struct {
	RenterID *uuid.UUID
	Status   string    // "", StatusUpcoming or StatusPast.
	Today    time.Time // Reference date for the Status filter.
	Search   string    // Free text matched against renter email and license plate.
	OrderBy  string    // OrderByStartDate (default) or OrderByEndDate.
	Desc     bool
}

// ReservationRepository defines persistence for reservations, including the
// range-overlap queries the engine and the availability search depend on.
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)

	List(ctx context.Context, filter ReservationFilter) ([]*entity.Reservation, error)

	// FindOverlapping returns reservations for the car whose inclusive
	// range overlaps [start, end]. excludeID, when non-nil, removes the
	// reservation being updated from the check.
	FindOverlapping(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error)

	// ReservedCarIDs returns the ids of cars with at least one
	// reservation overlapping [from, to].
	ReservedCarIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error)

	Create(ctx context.Context, reservation *entity.Reservation) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
