package repository

import (
	"context"
	"errors"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific not-found errors for the fleet tables.
var (
	ErrVehicleModelNotFound = errors.New("vehicle model not found")
	ErrCarNotFound          = errors.New("car not found")
)

// CarFilter narrows car listings. Nil fields are ignored.
type CarFilter struct {
	BrandID       *uuid.UUID
	VehicleTypeID *uuid.UUID
	ColorID       *uuid.UUID
}

// VehicleModelRepository defines persistence for catalog vehicle models.
type VehicleModelRepository interface {
	List(ctx context.Context) ([]*entity.VehicleModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleModel, error)
	Create(ctx context.Context, model *entity.VehicleModel) error
	Update(ctx context.Context, model *entity.VehicleModel) error

	// Delete removes a vehicle model; its cars cascade away.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CarRepository defines persistence for physical fleet units.
type CarRepository interface {
	List(ctx context.Context, filter CarFilter) ([]*entity.Car, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	Create(ctx context.Context, car *entity.Car) error
	Update(ctx context.Context, car *entity.Car) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListExcluding returns all cars whose id is not in excludedIDs,
	// used by the availability search.
	ListExcluding(ctx context.Context, excludedIDs []uuid.UUID) ([]*entity.Car, error)
}
