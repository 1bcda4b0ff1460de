package postgres

import (
	"context"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"
	"fleet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// carRepository implements the domain's CarRepository interface using GORM.
type carRepository struct {
	db *gorm.DB
}

// NewCarRepository is the constructor for carRepository.
func NewCarRepository(db *gorm.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (repo *carRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("VehicleModel").
		Preload("VehicleModel.Brand").
		Preload("VehicleModel.VehicleType").
		Preload("VehicleModel.FuelType").
		Preload("VehicleModel.Transmission").
		Preload("Color")
}

// List returns fleet cars matching the filter, ordered by license plate.
func (repo *carRepository) List(ctx context.Context, filter repository.CarFilter) ([]*entity.Car, error) {
	tx := repo.withAssociations(ctx)

	if filter.BrandID != nil || filter.VehicleTypeID != nil {
		tx = tx.Joins("JOIN car_model ON car_model.id = car.vehicle_model_id")
		if filter.BrandID != nil {
			tx = tx.Where("car_model.brand_id = ?", *filter.BrandID)
		}
		if filter.VehicleTypeID != nil {
			tx = tx.Where("car_model.vehicle_type_id = ?", *filter.VehicleTypeID)
		}
	}
	if filter.ColorID != nil {
		tx = tx.Where("car.color_id = ?", *filter.ColorID)
	}

	var carsM []model.CarModel
	if err := tx.Order("car.license_plate").Find(&carsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cars")
	}

	return toCarDomainSlice(carsM), nil
}

// FindByID retrieves a single car with its model and catalog references resolved.
func (repo *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	var carM model.CarModel
	err := repo.withAssociations(ctx).First(&carM, "car.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCarNotFound
		}

		return nil, errors.Wrap(err, "failed to find car by id")
	}

	return toCarDomain(&carM), nil
}

// Create persists a new car and backfills the generated id.
func (repo *carRepository) Create(ctx context.Context, car *entity.Car) error {
	carM := fromCarDomain(car)

	if err := repo.db.WithContext(ctx).Create(carM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateLicensePlate
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrVehicleModelNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create car")
	}

	car.ID = carM.ID
	car.CreatedAt = carM.CreatedAt
	car.UpdatedAt = carM.UpdatedAt

	return nil
}

// Update persists changes to an existing car.
func (repo *carRepository) Update(ctx context.Context, car *entity.Car) error {
	carM := fromCarDomain(car)

	result := repo.db.WithContext(ctx).Model(&model.CarModel{}).
		Where("id = ?", car.ID).
		Select("vehicle_model_id", "license_plate", "color_id", "mileage").
		Updates(carM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrDuplicateLicensePlate
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrVehicleModelNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update car")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCarNotFound
	}

	return nil
}

// Delete removes a car. Its reservations cascade away at the database level.
func (repo *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CarModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete car")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCarNotFound
	}

	return nil
}

// ListExcluding returns every car whose id is not in excludedIDs. It backs
// the availability search: the excluded set is the cars reserved in the
// requested range.
func (repo *carRepository) ListExcluding(ctx context.Context, excludedIDs []uuid.UUID) ([]*entity.Car, error) {
	tx := repo.withAssociations(ctx)
	if len(excludedIDs) > 0 {
		tx = tx.Where("car.id NOT IN ?", excludedIDs)
	}

	var carsM []model.CarModel
	if err := tx.Order("car.license_plate").Find(&carsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list available cars")
	}

	return toCarDomainSlice(carsM), nil
}

// toCarDomain maps the persistence model to a pure domain entity.
func toCarDomain(m *model.CarModel) *entity.Car {
	car := &entity.Car{
		ID:             m.ID,
		VehicleModelID: m.VehicleModelID,
		LicensePlate:   m.LicensePlate,
		ColorID:        m.ColorID,
		Mileage:        m.Mileage,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.VehicleModel != nil {
		car.Model = toVehicleModelDomain(m.VehicleModel)
	}
	if m.Color != nil {
		car.Color = &entity.Lookup{ID: m.Color.ID, Name: m.Color.Name}
	}

	return car
}

func toCarDomainSlice(carsM []model.CarModel) []*entity.Car {
	cars := make([]*entity.Car, 0, len(carsM))
	for i := range carsM {
		cars = append(cars, toCarDomain(&carsM[i]))
	}

	return cars
}

// fromCarDomain maps a domain entity to the persistence model.
func fromCarDomain(c *entity.Car) *model.CarModel {
	return &model.CarModel{
		ID:             c.ID,
		VehicleModelID: c.VehicleModelID,
		LicensePlate:   c.LicensePlate,
		ColorID:        c.ColorID,
		Mileage:        c.Mileage,
	}
}
