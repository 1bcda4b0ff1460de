package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationModel mirrors the 'reservation' table. Dates are calendar
// dates, the range is inclusive on both ends. Besides the application-level
// overlap check, the table carries an exclusion constraint
// (reservation_no_overlap) over (car_id, daterange(start_date, end_date, '[]'))
// as the last line of defense against concurrent double bookings.
type ReservationModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StartDate  time.Time       `gorm:"type:date;not null"`
	EndDate    time.Time       `gorm:"type:date;not null;check:end_date >= start_date"`
	Coverage   string          `gorm:"type:varchar(30);not null"`
	Rate       decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AccountID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CarID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Car     *CarModel     `gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ReservationModel) TableName() string {
	return "reservation"
}
