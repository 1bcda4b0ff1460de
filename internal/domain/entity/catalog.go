package entity

import (
	"time"

	"github.com/google/uuid"
)

// LookupKind identifies one of the simple name-only catalog tables.
type LookupKind string

const (
	LookupBrand        LookupKind = "brand"
	LookupVehicleType  LookupKind = "vehicle_type"
	LookupFuelType     LookupKind = "fuel_type"
	LookupColor        LookupKind = "color"
	LookupTransmission LookupKind = "transmission"
)

// LookupKinds lists every catalog lookup table in a stable order.
var LookupKinds = []LookupKind{
	LookupBrand,
	LookupVehicleType,
	LookupFuelType,
	LookupColor,
	LookupTransmission,
}

// Valid reports whether the kind names a known lookup table.
func (k LookupKind) Valid() bool {
	for _, known := range LookupKinds {
		if k == known {
			return true
		}
	}

	return false
}

// Lookup is a catalog lookup record (brand, vehicle type, fuel type, color
// or transmission). All five tables share this shape: an id and a unique name.
type Lookup struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
