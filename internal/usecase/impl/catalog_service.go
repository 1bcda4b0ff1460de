package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "fleet/internal/delivery/context"
	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface for the five
// name-only lookup tables.
type catalogService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// CatalogServiceParams holds dependencies for the catalog service, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListLookups returns every entry of one lookup kind, ordered by name.
func (srv *catalogService) ListLookups(ctx context.Context, kind entity.LookupKind) ([]*entity.Lookup, error) {
	if !kind.Valid() {
		return nil, domainerrors.ErrNotFound
	}

	var lookups []*entity.Lookup
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var listErr error
		lookups, listErr = repoFactory.Lookups().List(ctx, kind)

		return listErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list lookups")
	}

	return lookups, nil
}

// GetLookup returns a single lookup entry.
func (srv *catalogService) GetLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID) (*entity.Lookup, error) {
	if !kind.Valid() {
		return nil, domainerrors.ErrNotFound
	}

	var lookup *entity.Lookup
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		lookup, findErr = repoFactory.Lookups().FindByID(ctx, kind, id)

		return findErr
	})
	if errors.Is(err, repository.ErrLookupNotFound) {
		return nil, domainerrors.ErrLookupNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load lookup")
	}

	return lookup, nil
}

// CreateLookup adds a new entry to one lookup table.
func (srv *catalogService) CreateLookup(ctx context.Context, kind entity.LookupKind, name string) (*entity.Lookup, error) {
	if !kind.Valid() {
		return nil, domainerrors.ErrNotFound
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
	}

	lookup := &entity.Lookup{Name: name}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.Lookups().Create(ctx, kind, lookup)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Lookup created", slog.String("kind", string(kind)), slog.String("name", name))

	return lookup, nil
}

// UpdateLookup renames an existing entry.
func (srv *catalogService) UpdateLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID, name string) (*entity.Lookup, error) {
	if !kind.Valid() {
		return nil, domainerrors.ErrNotFound
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name must not be empty")
	}

	var updated *entity.Lookup
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lookup, err := repoFactory.Lookups().FindByID(ctx, kind, id)
		if errors.Is(err, repository.ErrLookupNotFound) {
			return domainerrors.ErrLookupNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load lookup")
		}

		lookup.Name = name
		if err := repoFactory.Lookups().Update(ctx, kind, lookup); err != nil {
			return err
		}
		updated = lookup

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteLookup removes an entry. Entries still referenced by models or
// cars are rejected by the storage layer.
func (srv *catalogService) DeleteLookup(ctx context.Context, kind entity.LookupKind, id uuid.UUID) error {
	if !kind.Valid() {
		return domainerrors.ErrNotFound
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		deleteErr := repoFactory.Lookups().Delete(ctx, kind, id)
		if errors.Is(deleteErr, repository.ErrLookupNotFound) {
			return domainerrors.ErrLookupNotFound
		}

		return deleteErr
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Lookup deleted", slog.String("kind", string(kind)), slog.Any("lookupID", id))

	return nil
}
