// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a customer or staff identity in the back office.
// The birth date drives the age-based coverage tier and is therefore required.
type Account struct {
	ID            uuid.UUID // The unique identifier for this account.
	FirstName     string    // Given name, shown on reservations and invoices.
	LastName      string    // Family name.
	Email         string    // Unique login identifier.
	BirthDate     time.Time // Date of birth, date precision only. Required for pricing.
	LicenseNumber string    // Driving licence number, optional.
	PasswordHash  string    // bcrypt hash of the account credential.
	Staff         bool      // Staff accounts may manage the catalog, fleet and any reservation.
	Active        bool      // Inactive accounts cannot log in.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName returns the display name used in listings.
func (a *Account) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}

	return a.FirstName + " " + a.LastName
}

// Principal is the authenticated actor attached to a request after token
// validation. It carries just enough identity for authorization decisions.
type Principal struct {
	AccountID uuid.UUID
	Staff     bool
}
