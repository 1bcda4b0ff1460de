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

// vehicleModelRepository implements the domain's VehicleModelRepository interface using GORM.
type vehicleModelRepository struct {
	db *gorm.DB
}

// NewVehicleModelRepository is the constructor for vehicleModelRepository.
func NewVehicleModelRepository(db *gorm.DB) repository.VehicleModelRepository {
	return &vehicleModelRepository{db: db}
}

func (repo *vehicleModelRepository) withLookups(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Brand").
		Preload("VehicleType").
		Preload("FuelType").
		Preload("Transmission")
}

// List returns every vehicle model with its catalog references resolved.
func (repo *vehicleModelRepository) List(ctx context.Context) ([]*entity.VehicleModel, error) {
	var modelsM []model.VehicleModelModel
	if err := repo.withLookups(ctx).Order("name").Find(&modelsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vehicle models")
	}

	models := make([]*entity.VehicleModel, 0, len(modelsM))
	for i := range modelsM {
		models = append(models, toVehicleModelDomain(&modelsM[i]))
	}

	return models, nil
}

// FindByID retrieves a single vehicle model with its catalog references resolved.
func (repo *vehicleModelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VehicleModel, error) {
	var modelM model.VehicleModelModel
	err := repo.withLookups(ctx).First(&modelM, "car_model.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVehicleModelNotFound
		}

		return nil, errors.Wrap(err, "failed to find vehicle model by id")
	}

	return toVehicleModelDomain(&modelM), nil
}

// Create persists a new vehicle model and backfills the generated id.
func (repo *vehicleModelRepository) Create(ctx context.Context, vehicleModel *entity.VehicleModel) error {
	modelM := fromVehicleModelDomain(vehicleModel)

	if err := repo.db.WithContext(ctx).Create(modelM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrLookupNotFound.WrapMessage("referenced catalog entry does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("missing required vehicle model information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vehicle model")
	}

	vehicleModel.ID = modelM.ID
	vehicleModel.CreatedAt = modelM.CreatedAt
	vehicleModel.UpdatedAt = modelM.UpdatedAt

	return nil
}

// Update persists changes to an existing vehicle model.
func (repo *vehicleModelRepository) Update(ctx context.Context, vehicleModel *entity.VehicleModel) error {
	modelM := fromVehicleModelDomain(vehicleModel)

	result := repo.db.WithContext(ctx).Model(&model.VehicleModelModel{}).
		Where("id = ?", vehicleModel.ID).
		Select("name", "brand_id", "vehicle_type_id", "fuel_type_id", "transmission_id", "seats", "daily_price").
		Updates(modelM)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrLookupNotFound.WrapMessage("referenced catalog entry does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update vehicle model")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVehicleModelNotFound
	}

	return nil
}

// Delete removes a vehicle model. Its cars and their reservations cascade
// away at the database level.
func (repo *vehicleModelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.VehicleModelModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete vehicle model")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVehicleModelNotFound
	}

	return nil
}

// toVehicleModelDomain maps the persistence model to a pure domain entity.
func toVehicleModelDomain(m *model.VehicleModelModel) *entity.VehicleModel {
	vehicleModel := &entity.VehicleModel{
		ID:             m.ID,
		Name:           m.Name,
		BrandID:        m.BrandID,
		VehicleTypeID:  m.VehicleTypeID,
		FuelTypeID:     m.FuelTypeID,
		TransmissionID: m.TransmissionID,
		Seats:          m.Seats,
		DailyPrice:     m.DailyPrice,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.Brand != nil {
		vehicleModel.Brand = &entity.Lookup{ID: m.Brand.ID, Name: m.Brand.Name}
	}
	if m.VehicleType != nil {
		vehicleModel.VehicleType = &entity.Lookup{ID: m.VehicleType.ID, Name: m.VehicleType.Name}
	}
	if m.FuelType != nil {
		vehicleModel.FuelType = &entity.Lookup{ID: m.FuelType.ID, Name: m.FuelType.Name}
	}
	if m.Transmission != nil {
		vehicleModel.Transmission = &entity.Lookup{ID: m.Transmission.ID, Name: m.Transmission.Name}
	}

	return vehicleModel
}

// fromVehicleModelDomain maps a domain entity to the persistence model.
func fromVehicleModelDomain(vm *entity.VehicleModel) *model.VehicleModelModel {
	return &model.VehicleModelModel{
		ID:             vm.ID,
		Name:           vm.Name,
		BrandID:        vm.BrandID,
		VehicleTypeID:  vm.VehicleTypeID,
		FuelTypeID:     vm.FuelTypeID,
		TransmissionID: vm.TransmissionID,
		Seats:          vm.Seats,
		DailyPrice:     vm.DailyPrice,
	}
}
