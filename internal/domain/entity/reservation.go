package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coverage is the insurance/rate tier label derived from the renter's age.
type Coverage string

const (
	CoverageYoungDriver Coverage = "Young Driver"
	CoverageStandard    Coverage = "Standard"
	CoverageSenior      Coverage = "Senior/Premium"
)

// Reservation is the central entity: a booking of one car by one account
// over an inclusive date range. Coverage, Rate and TotalPrice are always
// derived by the pricing engine; they are never accepted from clients and
// are recomputed on every save.
type Reservation struct {
	ID         uuid.UUID
	StartDate  time.Time // Inclusive, date precision.
	EndDate    time.Time // Inclusive, date precision. Never before StartDate.
	Coverage   Coverage
	Rate       decimal.Decimal
	TotalPrice decimal.Decimal
	AccountID  uuid.UUID // The renter. Deleting the account cascades here.
	Renter     *Account
	CarID      uuid.UUID // Deleting the car cascades here.
	Car        *Car
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsPast reports whether the reservation fully ended before today.
func (r *Reservation) IsPast(today time.Time) bool {
	return r.EndDate.Before(today)
}

// IsUpcoming reports whether the reservation starts today or later.
func (r *Reservation) IsUpcoming(today time.Time) bool {
	return !r.StartDate.Before(today)
}

// OwnedBy reports whether the given principal is the renter.
func (r *Reservation) OwnedBy(p Principal) bool {
	return r.AccountID == p.AccountID
}
