package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleModelModel mirrors the 'car_model' table. The brand is mandatory
// and protected against deletion while models reference it; the optional
// classification lookups fall back to NULL when their entry is removed.
type VehicleModelModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string     `gorm:"type:varchar(100);not null"`
	BrandID        uuid.UUID  `gorm:"type:uuid;not null"`
	VehicleTypeID  *uuid.UUID `gorm:"type:uuid"`
	FuelTypeID     *uuid.UUID `gorm:"type:uuid"`
	TransmissionID *uuid.UUID `gorm:"type:uuid"`
	Seats          int        `gorm:"not null;check:seats >= 1 AND seats <= 9"`
	DailyPrice     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Brand        *BrandModel        `gorm:"foreignKey:BrandID;constraint:OnDelete:RESTRICT"`
	VehicleType  *VehicleTypeModel  `gorm:"foreignKey:VehicleTypeID;constraint:OnDelete:SET NULL"`
	FuelType     *FuelTypeModel     `gorm:"foreignKey:FuelTypeID;constraint:OnDelete:SET NULL"`
	Transmission *TransmissionModel `gorm:"foreignKey:TransmissionID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (VehicleModelModel) TableName() string {
	return "car_model"
}

// CarModel mirrors the 'car' table. Deleting a vehicle model removes its
// cars; deleting a color only clears the reference.
type CarModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehicleModelID uuid.UUID  `gorm:"type:uuid;not null"`
	LicensePlate   string     `gorm:"type:varchar(20);unique;not null"`
	ColorID        *uuid.UUID `gorm:"type:uuid"`
	Mileage        int        `gorm:"not null;default:0;check:mileage >= 0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	VehicleModel *VehicleModelModel `gorm:"foreignKey:VehicleModelID;constraint:OnDelete:CASCADE"`
	Color        *ColorModel        `gorm:"foreignKey:ColorID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (CarModel) TableName() string {
	return "car"
}
