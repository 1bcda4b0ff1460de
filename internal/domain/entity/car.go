package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleModel is a brand/trim combination in the catalog. Physical cars
// reference exactly one vehicle model; the model carries the daily price
// that feeds reservation pricing.
type VehicleModel struct {
	ID             uuid.UUID
	Name           string
	BrandID        uuid.UUID
	Brand          *Lookup
	VehicleTypeID  *uuid.UUID // Nulled when the referenced vehicle type is deleted.
	VehicleType    *Lookup
	FuelTypeID     *uuid.UUID
	FuelType       *Lookup
	TransmissionID *uuid.UUID
	Transmission   *Lookup
	Seats          int             // Positive, bounded (1..9).
	DailyPrice     decimal.Decimal // Strictly positive, 2 fractional digits.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Car is a physical unit of the fleet.
type Car struct {
	ID             uuid.UUID
	VehicleModelID uuid.UUID // Deleting the model cascades to its cars.
	Model          *VehicleModel
	LicensePlate   string // Unique across the fleet.
	ColorID        *uuid.UUID
	Color          *Lookup
	Mileage        int // Non-negative.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
