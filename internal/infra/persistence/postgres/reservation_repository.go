package postgres

import (
	"context"
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"
	"fleet/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reservationRepository implements the domain's ReservationRepository interface using GORM.
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository is the constructor for reservationRepository.
func NewReservationRepository(db *gorm.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (repo *reservationRepository) withAssociations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Account").
		Preload("Car").
		Preload("Car.VehicleModel").
		Preload("Car.VehicleModel.Brand").
		Preload("Car.Color")
}

// FindByID retrieves a single reservation with its renter and car resolved.
func (repo *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var reservationM model.ReservationModel
	err := repo.withAssociations(ctx).First(&reservationM, "reservation.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReservationNotFound
		}

		return nil, errors.Wrap(err, "failed to find reservation by id")
	}

	return toReservationDomain(&reservationM), nil
}

// List returns reservations matching the filter. Search matches the renter
// email and the car license plate, case-insensitively.
func (repo *reservationRepository) List(ctx context.Context, filter repository.ReservationFilter) ([]*entity.Reservation, error) {
	tx := repo.withAssociations(ctx)

	if filter.RenterID != nil {
		tx = tx.Where("reservation.account_id = ?", *filter.RenterID)
	}

	switch filter.Status {
	case repository.StatusUpcoming:
		tx = tx.Where("reservation.start_date >= ?", filter.Today)
	case repository.StatusPast:
		tx = tx.Where("reservation.end_date < ?", filter.Today)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Joins("JOIN app_user ON app_user.id = reservation.account_id").
			Joins("JOIN car ON car.id = reservation.car_id").
			Where("app_user.email ILIKE ? OR car.license_plate ILIKE ?", pattern, pattern)
	}

	// Ordering columns are whitelisted; anything else falls back to start date.
	column := "reservation.start_date"
	if filter.OrderBy == repository.OrderByEndDate {
		column = "reservation.end_date"
	}
	direction := " ASC"
	if filter.Desc {
		direction = " DESC"
	}
	tx = tx.Order(column + direction)

	var reservationsM []model.ReservationModel
	if err := tx.Find(&reservationsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reservations")
	}

	reservations := make([]*entity.Reservation, 0, len(reservationsM))
	for i := range reservationsM {
		reservations = append(reservations, toReservationDomain(&reservationsM[i]))
	}

	return reservations, nil
}

// FindOverlapping returns reservations for the car whose inclusive range
// overlaps [start, end]. Two inclusive ranges overlap exactly when each
// starts no later than the other ends.
func (repo *reservationRepository) FindOverlapping(ctx context.Context, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*entity.Reservation, error) {
	tx := repo.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}

	var reservationsM []model.ReservationModel
	if err := tx.Order("start_date").Find(&reservationsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find overlapping reservations")
	}

	reservations := make([]*entity.Reservation, 0, len(reservationsM))
	for i := range reservationsM {
		reservations = append(reservations, toReservationDomain(&reservationsM[i]))
	}

	return reservations, nil
}

// ReservedCarIDs returns the ids of cars with at least one reservation
// overlapping [from, to].
func (repo *reservationRepository) ReservedCarIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.ReservationModel{}).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Distinct().
		Pluck("car_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect reserved car ids")
	}

	return ids, nil
}

// Create persists a new reservation. The exclusion constraint turns a
// concurrent double booking into an overlap conflict instead of silently
// winning the race.
func (repo *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	reservationM := fromReservationDomain(reservation)

	if err := repo.db.WithContext(ctx).Create(reservationM).Error; err != nil {
		if isExclusionConstraintViolation(err) {
			return domainerrors.ErrOverlappingReservation
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCarNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reservation")
	}

	reservation.ID = reservationM.ID
	reservation.CreatedAt = reservationM.CreatedAt
	reservation.UpdatedAt = reservationM.UpdatedAt

	return nil
}

// Update persists changes to an existing reservation, including the
// recomputed pricing fields.
func (repo *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	reservationM := fromReservationDomain(reservation)

	result := repo.db.WithContext(ctx).Model(&model.ReservationModel{}).
		Where("id = ?", reservation.ID).
		Select("start_date", "end_date", "coverage", "rate", "total_price", "car_id").
		Updates(reservationM)
	if result.Error != nil {
		if isExclusionConstraintViolation(result.Error) {
			return domainerrors.ErrOverlappingReservation
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update reservation")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReservationNotFound
	}

	return nil
}

// Delete removes a reservation.
func (repo *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ReservationModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete reservation")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReservationNotFound
	}

	return nil
}

// toReservationDomain maps the persistence model to a pure domain entity.
func toReservationDomain(m *model.ReservationModel) *entity.Reservation {
	reservation := &entity.Reservation{
		ID:         m.ID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Coverage:   entity.Coverage(m.Coverage),
		Rate:       m.Rate,
		TotalPrice: m.TotalPrice,
		AccountID:  m.AccountID,
		CarID:      m.CarID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}

	if m.Account != nil {
		reservation.Renter = toAccountDomain(m.Account)
	}
	if m.Car != nil {
		reservation.Car = toCarDomain(m.Car)
	}

	return reservation
}

// fromReservationDomain maps a domain entity to the persistence model.
func fromReservationDomain(r *entity.Reservation) *model.ReservationModel {
	return &model.ReservationModel{
		ID:         r.ID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Coverage:   string(r.Coverage),
		Rate:       r.Rate,
		TotalPrice: r.TotalPrice,
		AccountID:  r.AccountID,
		CarID:      r.CarID,
	}
}
