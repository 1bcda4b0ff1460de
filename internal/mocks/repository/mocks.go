// Package repository provides hand-written testify mocks for the
// persistence interfaces.
package repository

import (
	"context"
	"time"

	"fleet/internal/domain/entity"
	"fleet/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AccountRepository mocks repository.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// LookupRepository mocks repository.LookupRepository.
type LookupRepository struct {
	mock.Mock
}

func (m *LookupRepository) List(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error) {
	args := m.Called(ctx, kind)
	if lookups, ok := args.Get(0).([]*entity.Lookup); ok {
		return lookups, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *LookupRepository) FindByID(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error) {
	args := m.Called(ctx, kind, id)
	if lookup, ok := args.Get(0).(*entity.Lookup); ok {
		return lookup, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *LookupRepository) Create(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error {
	return m.Called(ctx, kind, lookup).Error(0)
}

func (m *LookupRepository) Update(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error {
	return m.Called(ctx, kind, lookup).Error(0)
}

func (m *LookupRepository) Delete(ctx context.Context, kind entity.LookupKind, id uuid.UUID) error {
	return m.Called(ctx, kind, id).Error(0)
}

// VehicleModelRepository mocks repository.VehicleModelRepository.
type VehicleModelRepository struct {
	mock.Mock
}

func (m *VehicleModelRepository) List(ctx context.Context) ([]*entity.VehicleModel, error) {
	args := m.Called(ctx)
	if models, ok := args.Get(0).([]*entity.VehicleModel); ok {
		return models, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *VehicleModelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleModel, error) {
	args := m.Called(ctx, id)
	if model, ok := args.Get(0).(*entity.VehicleModel); ok {
		return model, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *VehicleModelRepository) Create(ctx context.Context, model *entity.VehicleModel) error {
	return m.Called(ctx, model).Error(0)
}

func (m *VehicleModelRepository) Update(ctx context.Context, model *entity.VehicleModel) error {
	return m.Called(ctx, model).Error(0)
}

func (m *VehicleModelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// CarRepository mocks repository.CarRepository.
type CarRepository struct {
	mock.Mock
}

func (m *CarRepository) List(ctx context.Context, filter repository.CarFilter) ([]*entity.Car, error) {
	args := m.Called(ctx, filter)
	if cars, ok := args.Get(0).([]*entity.Car); ok {
		return cars, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CarRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	args := m.Called(ctx, id)
	if car, ok := args.Get(0).(*entity.Car); ok {
		return car, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CarRepository) Create(ctx context.Context, car *entity.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *CarRepository) Update(ctx context.Context, car *entity.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *CarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CarRepository) ListExcluding(ctx context.Context, excludedIDs []uuid.UUID) ([]*entity.Car, error) {
	args := m.Called(ctx, excludedIDs)
	if cars, ok := args.Get(0).([]*entity.Car); ok {
		return cars, args.Error(1)
	}

	return nil, args.Error(1)
}

// ReservationRepository mocks repository.ReservationRepository.
type ReservationRepository struct {
	mock.Mock
}

func (m *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	args := m.Called(ctx, id)
	if reservation, ok := args.Get(0).(*entity.Reservation); ok {
		return reservation, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReservationRepository) List(ctx context.Context, filter repository.ReservationFilter) ([]*entity.Reservation, error) {
	args := m.Called(ctx, filter)
	if reservations, ok := args.Get(0).([]*entity.Reservation); ok {
		return reservations, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReservationRepository) FindOverlapping(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error) {
	args := m.Called(ctx, carID, start, end, excludeID)
	if reservations, ok := args.Get(0).([]*entity.Reservation); ok {
		return reservations, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReservationRepository) ReservedCarIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, from, to)
	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *ReservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *ReservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Factory is a RepositoryFactory backed by the mocks above. Tests wire the
// mocks they need and leave the rest nil.
type Factory struct {
	AccountRepo      *AccountRepository
	LookupRepo       *LookupRepository
	VehicleModelRepo *VehicleModelRepository
	CarRepo          *CarRepository
	ReservationRepo  *ReservationRepository
}

func (f *Factory) Accounts() repository.AccountRepository            { return f.AccountRepo }
func (f *Factory) Lookups() repository.LookupRepository              { return f.LookupRepo }
func (f *Factory) VehicleModels() repository.VehicleModelRepository  { return f.VehicleModelRepo }
func (f *Factory) Cars() repository.CarRepository                    { return f.CarRepo }
func (f *Factory) Reservations() repository.ReservationRepository    { return f.ReservationRepo }

// TransactionManager runs the callback against a fixed mock factory
// without any real transaction semantics.
type TransactionManager struct {
	Factory *Factory
}

func (m *TransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
