package repository

import (
	"context"
	"errors"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrLookupNotFound is returned when a catalog lookup record is not found.
var ErrLookupNotFound = errors.New("catalog entry not found")

// LookupRepository persists the five name-only catalog tables. Every method
// takes the lookup kind selecting the backing table.
type LookupRepository interface {
	List(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error)
	FindByID(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error)
	Create(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error
	Update(ctx context.Context, kind entity.LookupKind, lookup *entity.Lookup) error
	Delete(ctx context.Context, kind entity.LookupKind, id uuid.UUID) error
}
