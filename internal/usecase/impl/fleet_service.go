package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "fleet/internal/delivery/context"
	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/pricing"
	"fleet/internal/domain/repository"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	minSeats = 1
	maxSeats = 9
)

// fleetService implements the FleetUsecase interface.
type fleetService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// FleetServiceParams holds dependencies for the fleet service, injected by Fx.
type FleetServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewFleetService is the constructor for fleetService.
func NewFleetService(params FleetServiceParams) usecase.FleetUsecase {
	return &fleetService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *fleetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateVehicleModelInput(input *usecase.VehicleModelInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
	}
	if input.Seats < minSeats || input.Seats > maxSeats {
		return domainerrors.ErrValidationFailed.WithDetails("seats must be between 1 and 9")
	}
	if !input.DailyPrice.IsPositive() {
		return domainerrors.ErrValidationFailed.WithDetails("daily price must be greater than zero")
	}

	return nil
}

func validateCarInput(input *usecase.CarInput) error {
	if strings.TrimSpace(input.LicensePlate) == "" {
		return domainerrors.ErrValidationFailed.WithDetails("license plate must not be empty")
	}
	if input.Mileage < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("mileage must not be negative")
	}

	return nil
}

// ListVehicleModels returns every model with its catalog references resolved.
func (srv *fleetService) ListVehicleModels(ctx context.Context) ([]*entity.VehicleModel, error) {
	var models []*entity.VehicleModel
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var listErr error
		models, listErr = repoFactory.VehicleModels().List(ctx)

		return listErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vehicle models")
	}

	return models, nil
}

// GetVehicleModel returns a single model.
func (srv *fleetService) GetVehicleModel(ctx context.Context, id uuid.UUID) (*entity.VehicleModel, error) {
	var model *entity.VehicleModel
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		model, findErr = repoFactory.VehicleModels().FindByID(ctx, id)

		return findErr
	})
	if errors.Is(err, repository.ErrVehicleModelNotFound) {
		return nil, domainerrors.ErrVehicleModelNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load vehicle model")
	}

	return model, nil
}

// CreateVehicleModel adds a model to the catalog.
func (srv *fleetService) CreateVehicleModel(ctx context.Context, input *usecase.VehicleModelInput) (*entity.VehicleModel, error) {
	if err := validateVehicleModelInput(input); err != nil {
		return nil, err
	}

	model := &entity.VehicleModel{
		Name:           strings.TrimSpace(input.Name),
		BrandID:        input.BrandID,
		VehicleTypeID:  input.VehicleTypeID,
		FuelTypeID:     input.FuelTypeID,
		TransmissionID: input.TransmissionID,
		Seats:          input.Seats,
		DailyPrice:     input.DailyPrice,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.VehicleModels().Create(ctx, model); createErr != nil {
			return createErr
		}

		var reloadErr error
		model, reloadErr = repoFactory.VehicleModels().FindByID(ctx, model.ID)

		return reloadErr
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Vehicle model created", slog.Any("modelID", model.ID), slog.String("name", model.Name))

	return model, nil
}

// UpdateVehicleModel replaces a model's fields. Price changes affect new
// and re-saved reservations only.
func (srv *fleetService) UpdateVehicleModel(ctx context.Context, id uuid.UUID, input *usecase.VehicleModelInput) (*entity.VehicleModel, error) {
	if err := validateVehicleModelInput(input); err != nil {
		return nil, err
	}

	var updated *entity.VehicleModel
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		model, err := repoFactory.VehicleModels().FindByID(ctx, id)
		if errors.Is(err, repository.ErrVehicleModelNotFound) {
			return domainerrors.ErrVehicleModelNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load vehicle model")
		}

		model.Name = strings.TrimSpace(input.Name)
		model.BrandID = input.BrandID
		model.VehicleTypeID = input.VehicleTypeID
		model.FuelTypeID = input.FuelTypeID
		model.TransmissionID = input.TransmissionID
		model.Seats = input.Seats
		model.DailyPrice = input.DailyPrice

		if err := repoFactory.VehicleModels().Update(ctx, model); err != nil {
			return err
		}

		updated, err = repoFactory.VehicleModels().FindByID(ctx, model.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteVehicleModel removes a model and, via the storage cascade, its cars
// and their reservations.
func (srv *fleetService) DeleteVehicleModel(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deleteErr := repoFactory.VehicleModels().Delete(ctx, id)
		if errors.Is(deleteErr, repository.ErrVehicleModelNotFound) {
			return domainerrors.ErrVehicleModelNotFound
		}

		return deleteErr
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Vehicle model deleted", slog.Any("modelID", id))

	return nil
}

// ListCars returns fleet cars matching the filter.
func (srv *fleetService) ListCars(ctx context.Context, filter repository.CarFilter) ([]*entity.Car, error) {
	var cars []*entity.Car
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var listErr error
		cars, listErr = repoFactory.Cars().List(ctx, filter)

		return listErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cars")
	}

	return cars, nil
}

// GetCar returns a single car.
func (srv *fleetService) GetCar(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	var car *entity.Car
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		car, findErr = repoFactory.Cars().FindByID(ctx, id)

		return findErr
	})
	if errors.Is(err, repository.ErrCarNotFound) {
		return nil, domainerrors.ErrCarNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load car")
	}

	return car, nil
}

// CreateCar registers a physical car in the fleet.
func (srv *fleetService) CreateCar(ctx context.Context, input *usecase.CarInput) (*entity.Car, error) {
	if err := validateCarInput(input); err != nil {
		return nil, err
	}

	car := &entity.Car{
		VehicleModelID: input.VehicleModelID,
		LicensePlate:   strings.TrimSpace(input.LicensePlate),
		ColorID:        input.ColorID,
		Mileage:        input.Mileage,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, findErr := repoFactory.VehicleModels().FindByID(ctx, input.VehicleModelID); errors.Is(findErr, repository.ErrVehicleModelNotFound) {
			return domainerrors.ErrVehicleModelNotFound
		} else if findErr != nil {
			return errors.Wrap(findErr, "failed to load vehicle model")
		}

		if createErr := repoFactory.Cars().Create(ctx, car); createErr != nil {
			return createErr
		}

		var reloadErr error
		car, reloadErr = repoFactory.Cars().FindByID(ctx, car.ID)

		return reloadErr
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Car created", slog.Any("carID", car.ID), slog.String("licensePlate", car.LicensePlate))

	return car, nil
}

// UpdateCar replaces a car's fields.
func (srv *fleetService) UpdateCar(ctx context.Context, id uuid.UUID, input *usecase.CarInput) (*entity.Car, error) {
	if err := validateCarInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Car
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		car, err := repoFactory.Cars().FindByID(ctx, id)
		if errors.Is(err, repository.ErrCarNotFound) {
			return domainerrors.ErrCarNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load car")
		}

		if car.VehicleModelID != input.VehicleModelID {
			if _, findErr := repoFactory.VehicleModels().FindByID(ctx, input.VehicleModelID); errors.Is(findErr, repository.ErrVehicleModelNotFound) {
				return domainerrors.ErrVehicleModelNotFound
			} else if findErr != nil {
				return errors.Wrap(findErr, "failed to load vehicle model")
			}
		}

		car.VehicleModelID = input.VehicleModelID
		car.LicensePlate = strings.TrimSpace(input.LicensePlate)
		car.ColorID = input.ColorID
		car.Mileage = input.Mileage

		if err := repoFactory.Cars().Update(ctx, car); err != nil {
			return err
		}

		updated, err = repoFactory.Cars().FindByID(ctx, car.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteCar removes a car and, via the storage cascade, its reservations.
func (srv *fleetService) DeleteCar(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deleteErr := repoFactory.Cars().Delete(ctx, id)
		if errors.Is(deleteErr, repository.ErrCarNotFound) {
			return domainerrors.ErrCarNotFound
		}

		return deleteErr
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Car deleted", slog.Any("carID", id))

	return nil
}

// AvailableCars returns cars with no reservation overlapping [from, to].
// The range check matches the booking rule, so a car bookable for the
// range always shows up here and vice versa.
func (srv *fleetService) AvailableCars(ctx context.Context, from, to time.Time) ([]*entity.Car, error) {
	from, to = pricing.Date(from), pricing.Date(to)
	if to.Before(from) {
		return nil, domainerrors.ErrInvalidDateRange
	}

	var cars []*entity.Car
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reserved, err := repoFactory.Reservations().ReservedCarIDs(ctx, from, to)
		if err != nil {
			return errors.Wrap(err, "failed to collect reserved cars")
		}

		cars, err = repoFactory.Cars().ListExcluding(ctx, reserved)

		return err
	})
	if err != nil {
		return nil, err
	}

	return cars, nil
}
