package postgres

import (
	"context"
	"fmt"

	"fleet/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds one GORM transaction object and hands out repository instances
// bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// Accounts returns an account repository bound to the transaction.
func (f *gormRepositoryFactory) Accounts() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

// Lookups returns a catalog lookup repository bound to the transaction.
func (f *gormRepositoryFactory) Lookups() repository.LookupRepository {
	return NewLookupRepository(f.tx)
}

// VehicleModels returns a vehicle model repository bound to the transaction.
func (f *gormRepositoryFactory) VehicleModels() repository.VehicleModelRepository {
	return NewVehicleModelRepository(f.tx)
}

// Cars returns a car repository bound to the transaction.
func (f *gormRepositoryFactory) Cars() repository.CarRepository {
	return NewCarRepository(f.tx)
}

// Reservations returns a reservation repository bound to the transaction.
func (f *gormRepositoryFactory) Reservations() repository.ReservationRepository {
	return NewReservationRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
// The overlap check plus the reservation insert is the canonical caller:
// both statements must observe one consistent snapshot.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Roll back on panic so a failing handler never leaks an open transaction.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
