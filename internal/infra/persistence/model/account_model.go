// Package model holds the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'app_user' table. PostgreSQL generates UUIDs via gen_random_uuid().
type AccountModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(255);unique;not null"`
	BirthDate     time.Time `gorm:"type:date;not null"`
	LicenseNumber string    `gorm:"type:varchar(50)"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Staff         bool      `gorm:"not null;default:false"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "app_user"
}
