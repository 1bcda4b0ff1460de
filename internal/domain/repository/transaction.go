package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction,
// so a read-then-write sequence such as the overlap check plus the
// reservation insert observes a single consistent state.
type RepositoryFactory interface {
	// Accounts returns an AccountRepository bound to the current transaction.
	Accounts() AccountRepository

	// Lookups returns a LookupRepository bound to the current transaction.
	Lookups() LookupRepository

	// VehicleModels returns a VehicleModelRepository bound to the current transaction.
	VehicleModels() VehicleModelRepository

	// Cars returns a CarRepository bound to the current transaction.
	Cars() CarRepository

	// Reservations returns a ReservationRepository bound to the current transaction.
	Reservations() ReservationRepository
}
