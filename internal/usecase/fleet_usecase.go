package usecase

import (
	"context"
	"time"

	"fleet/internal/domain/entity"
	"fleet/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Input DTOs ---

// VehicleModelInput defines the data for creating or replacing a vehicle model.
type VehicleModelInput struct {
	Name           string
	BrandID        uuid.UUID
	VehicleTypeID  *uuid.UUID
	FuelTypeID     *uuid.UUID
	TransmissionID *uuid.UUID
	Seats          int
	DailyPrice     decimal.Decimal
}

// CarInput defines the data for creating or replacing a fleet car.
type CarInput struct {
	VehicleModelID uuid.UUID
	LicensePlate   string
	ColorID        *uuid.UUID
	Mileage        int
}

// FleetUsecase manages vehicle models and physical cars, and answers the
// availability search used by browse flows.
type FleetUsecase interface {
	ListVehicleModels(ctx context.Context) ([]*entity.VehicleModel, error)
	GetVehicleModel(ctx context.Context, id uuid.UUID) (*entity.VehicleModel, error)
	CreateVehicleModel(ctx context.Context, input *VehicleModelInput) (*entity.VehicleModel, error)
	UpdateVehicleModel(ctx context.Context, id uuid.UUID, input *VehicleModelInput) (*entity.VehicleModel, error)
	DeleteVehicleModel(ctx context.Context, id uuid.UUID) error

	ListCars(ctx context.Context, filter repository.CarFilter) ([]*entity.Car, error)
	GetCar(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	CreateCar(ctx context.Context, input *CarInput) (*entity.Car, error)
	UpdateCar(ctx context.Context, id uuid.UUID, input *CarInput) (*entity.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID) error

	// AvailableCars returns cars with no reservation overlapping [from, to].
	AvailableCars(ctx context.Context, from, to time.Time) ([]*entity.Car, error)
}
