package model

import (
	"time"

	"github.com/google/uuid"
)

// The five catalog lookup tables share the same shape: a generated UUID
// and a unique name. They stay separate tables so foreign keys from
// car_model and car point at the right domain.

// BrandModel mirrors the 'brand' table.
type BrandModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BrandModel) TableName() string {
	return "brand"
}

// VehicleTypeModel mirrors the 'vehicle_type' table.
type VehicleTypeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (VehicleTypeModel) TableName() string {
	return "vehicle_type"
}

// FuelTypeModel mirrors the 'fuel_type' table.
type FuelTypeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FuelTypeModel) TableName() string {
	return "fuel_type"
}

// ColorModel mirrors the 'color' table.
type ColorModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ColorModel) TableName() string {
	return "color"
}

// TransmissionModel mirrors the 'transmission' table.
type TransmissionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransmissionModel) TableName() string {
	return "transmission"
}
