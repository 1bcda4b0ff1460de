// Package policy centralizes the authorization predicates of the back
// office. Handlers and usecases compose these instead of branching on the
// staff flag inline, so ownership and staff-override stay independently
// testable.
package policy

import (
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
)

// CanAccessReservation reports whether the principal may see or mutate the
// reservation: staff always, non-staff only when they are the renter.
func CanAccessReservation(p entity.Principal, r *entity.Reservation) bool {
	return p.Staff || r.OwnedBy(p)
}

// ReservationAccessError returns the error a non-authorized single-object
// access must surface. It is always NotFound, never Forbidden, so the
// existence of another renter's reservation is not confirmed.
func ReservationAccessError() error {
	return domainerrors.ErrReservationNotFound
}

// CanDeleteReservation gates the Future->deleted and Past->deleted
// transitions. Staff may delete anything. The owner may only delete a
// reservation that has not yet ended; credential re-confirmation is handled
// by the caller.
func CanDeleteReservation(p entity.Principal, r *entity.Reservation, today time.Time) error {
	if !CanAccessReservation(p, r) {
		return ReservationAccessError()
	}
	if p.Staff {
		return nil
	}
	if r.IsPast(today) {
		return domainerrors.ErrReservationNotDeletable
	}

	return nil
}

// CanMutateFleet reports whether the principal may create, update or delete
// catalog and fleet records. Reads are open to any authenticated principal.
func CanMutateFleet(p entity.Principal) bool {
	return p.Staff
}
