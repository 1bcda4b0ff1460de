package postgres

import (
	"context"
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// lookupRepository implements the domain's LookupRepository interface using GORM.
// All five catalog tables share one shape, so a single repository serves
// them, switching tables by kind.
type lookupRepository struct {
	db *gorm.DB
}

// lookupRow is the shared row shape of the catalog tables.
type lookupRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// lookupTables maps each kind to its table name. The kind is validated in
// the usecase layer; an unknown kind here is a programming error.
var lookupTables = map[entity.LookupKind]string{
	entity.LookupBrand:        "brand",
	entity.LookupVehicleType:  "vehicle_type",
	entity.LookupFuelType:     "fuel_type",
	entity.LookupColor:        "color",
	entity.LookupTransmission: "transmission",
}

// NewLookupRepository is the constructor for lookupRepository.
func NewLookupRepository(db *gorm.DB) repository.LookupRepository {
	return &lookupRepository{db: db}
}

func (repo *lookupRepository) table(ctx context.Context, kind entity.LookupKind) (*gorm.DB, error) {
	name, ok := lookupTables[kind]
	if !ok {
		return nil, errors.Errorf("unknown lookup kind: %s", kind)
	}

	return repo.db.WithContext(ctx).Table(name), nil
}

// List returns every entry of one lookup table ordered by name.
func (repo *lookupRepository) List(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error) {
	tx, err := repo.table(ctx, kind)
	if err != nil {
		return nil, err
	}

	var rows []lookupRow
	if err := tx.Order("name").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list %s entries", kind)
	}

	lookups := make([]*entity.Lookup, 0, len(rows))
	for i := range rows {
		lookups = append(lookups, toLookupDomain(&rows[i]))
	}

	return lookups, nil
}

// FindByID retrieves a single lookup entry.
func (repo *lookupRepository) FindByID(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error) {
	tx, err := repo.table(ctx, kind)
	if err != nil {
		return nil, err
	}

	var row lookupRow
	if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLookupNotFound
		}

		return nil, errors.Wrapf(err, "failed to find %s entry", kind)
	}

	return toLookupDomain(&row), nil
}

// Create inserts a new lookup entry and backfills the generated id.
func (repo *lookupRepository) Create(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error {
	tx, err := repo.table(ctx, kind)
	if err != nil {
		return err
	}

	row := lookupRow{Name: lookup.Name}
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create "+string(kind)+" entry")
	}

	lookup.ID = row.ID
	lookup.CreatedAt = row.CreatedAt
	lookup.UpdatedAt = row.UpdatedAt

	return nil
}

// Update renames an existing lookup entry.
func (repo *lookupRepository) Update(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error {
	tx, err := repo.table(ctx, kind)
	if err != nil {
		return err
	}

	result := tx.Where("id = ?", lookup.ID).Updates(map[string]any{
		"name":       lookup.Name,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrDuplicateName
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update "+string(kind)+" entry")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLookupNotFound
	}

	return nil
}

// Delete removes a lookup entry. A brand still referenced by a vehicle
// model is protected by its RESTRICT foreign key.
func (repo *lookupRepository) Delete(ctx context.Context, kind entity.LookupKind, id uuid.UUID) error {
	tx, err := repo.table(ctx, kind)
	if err != nil {
		return err
	}

	result := tx.Where("id = ?", id).Delete(&lookupRow{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrReferencedRecord
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete "+string(kind)+" entry")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLookupNotFound
	}

	return nil
}

func toLookupDomain(row *lookupRow) *entity.Lookup {
	return &entity.Lookup{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
