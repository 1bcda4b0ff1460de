package usecase

import (
	"context"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogUsecase manages the five name-only lookup tables. Staff gating for
// mutations is enforced at the route level; the usecase validates data only.
type CatalogUsecase interface {
	ListLookups(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error)
	GetLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error)
	CreateLookup(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error)
	UpdateLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID, name string) (*entity.Lookup, error)
	DeleteLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID) error
}
