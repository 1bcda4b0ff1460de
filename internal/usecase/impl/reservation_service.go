// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "fleet/internal/delivery/context"
	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/policy"
	"fleet/internal/domain/pricing"
	"fleet/internal/domain/repository"
	"fleet/internal/domain/service"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reservationService implements the ReservationUsecase interface. The clock
// is injected so "today" is explicit in pricing and deletion gating.
type reservationService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	clock     func() time.Time
	logger    *slog.Logger
}

// ReservationServiceParams holds dependencies for the reservation service, injected by Fx.
type ReservationServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewReservationService is the constructor for reservationService.
func NewReservationService(params ReservationServiceParams) usecase.ReservationUsecase {
	return &reservationService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		clock:     time.Now,
		logger:    params.Logger,
	}
}

func (srv *reservationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *reservationService) today() time.Time {
	return pricing.Date(srv.clock())
}

// Create validates the requested range against the car's existing bookings,
// derives coverage/rate/total from the renter's age as of today, and
// persists the reservation. The overlap check and the insert share one
// transaction; the storage-level exclusion constraint backstops races.
func (srv *reservationService) Create(ctx context.Context, principal entity.Principal, input *usecase.CreateReservationInput) (*entity.Reservation, error) {
	start, end := pricing.Date(input.StartDate), pricing.Date(input.EndDate)

	var created *entity.Reservation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		car, err := repoFactory.Cars().FindByID(ctx, input.CarID)
		if errors.Is(err, repository.ErrCarNotFound) {
			return domainerrors.ErrCarNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load car for reservation")
		}

		renter, err := repoFactory.Accounts().FindByID(ctx, principal.AccountID)
		if err != nil {
			return errors.Wrap(err, "failed to load renter for reservation")
		}

		if err := srv.ensureNoOverlap(ctx, repoFactory, car.ID, start, end, nil); err != nil {
			return err
		}

		quote, err := pricing.Compute(renter.BirthDate, srv.today(), start, end, car.Model.DailyPrice)
		if err != nil {
			return err
		}

		created = &entity.Reservation{
			StartDate:  start,
			EndDate:    end,
			Coverage:   quote.Coverage,
			Rate:       quote.Rate,
			TotalPrice: quote.TotalPrice,
			AccountID:  renter.ID,
			CarID:      car.ID,
		}

		return repoFactory.Reservations().Create(ctx, created)
	})
	if err != nil {
		srv.log(ctx).Warn("Reservation creation rejected",
			slog.Any("carID", input.CarID),
			slog.Any("accountID", principal.AccountID),
			slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Reservation created",
		slog.Any("reservationID", created.ID),
		slog.Any("carID", created.CarID),
		slog.String("coverage", string(created.Coverage)),
		slog.String("total", created.TotalPrice.String()))

	return created, nil
}

// List returns reservations visible to the principal. Non-staff are fenced
// to their own rows before any other filter applies.
func (srv *reservationService) List(ctx context.Context, principal entity.Principal, input *usecase.ListReservationsInput) ([]*entity.Reservation, error) {
	filter := repository.ReservationFilter{
		Status:  input.Status,
		Today:   srv.today(),
		Search:  input.Search,
		OrderBy: input.OrderBy,
		Desc:    input.Desc,
	}
	if !principal.Staff || input.OnlyOwn {
		renterID := principal.AccountID
		filter.RenterID = &renterID
	}

	var reservations []*entity.Reservation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var listErr error
		reservations, listErr = repoFactory.Reservations().List(ctx, filter)

		return listErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reservations")
	}

	return reservations, nil
}

// Get returns a single reservation. Access by a non-owner non-staff
// principal reports not-found to avoid confirming the resource exists.
func (srv *reservationService) Get(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Reservation, error) {
	var reservation *entity.Reservation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		reservation, findErr = srv.findVisible(ctx, repoFactory, principal, id)

		return findErr
	})
	if err != nil {
		return nil, err
	}

	return reservation, nil
}

// Update re-validates and re-derives everything from scratch. The renter's
// age is taken as of today, so an update may land in a different tier than
// the original booking did; this mirrors the recompute-on-save policy.
func (srv *reservationService) Update(ctx context.Context, principal entity.Principal, id uuid.UUID, input *usecase.UpdateReservationInput) (*entity.Reservation, error) {
	start, end := pricing.Date(input.StartDate), pricing.Date(input.EndDate)

	var updated *entity.Reservation
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reservation, err := srv.findVisible(ctx, repoFactory, principal, id)
		if err != nil {
			return err
		}

		car := reservation.Car
		if input.CarID != nil && *input.CarID != reservation.CarID {
			if !principal.Staff {
				return domainerrors.ErrForbidden.WrapMessage("only staff may move a reservation to another car")
			}
			car, err = repoFactory.Cars().FindByID(ctx, *input.CarID)
			if errors.Is(err, repository.ErrCarNotFound) {
				return domainerrors.ErrCarNotFound
			}
			if err != nil {
				return errors.Wrap(err, "failed to load replacement car")
			}
		}

		excludeID := reservation.ID
		if err := srv.ensureNoOverlap(ctx, repoFactory, car.ID, start, end, &excludeID); err != nil {
			return err
		}

		renter, err := repoFactory.Accounts().FindByID(ctx, reservation.AccountID)
		if err != nil {
			return errors.Wrap(err, "failed to load renter for reservation update")
		}

		quote, err := pricing.Compute(renter.BirthDate, srv.today(), start, end, car.Model.DailyPrice)
		if err != nil {
			return err
		}

		reservation.StartDate = start
		reservation.EndDate = end
		reservation.CarID = car.ID
		reservation.Car = car
		reservation.Coverage = quote.Coverage
		reservation.Rate = quote.Rate
		reservation.TotalPrice = quote.TotalPrice

		if err := repoFactory.Reservations().Update(ctx, reservation); err != nil {
			return err
		}
		updated = reservation

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Reservation updated",
		slog.Any("reservationID", updated.ID),
		slog.String("total", updated.TotalPrice.String()))

	return updated, nil
}

// Delete removes a reservation subject to the deletion state machine:
// staff unconditionally, the owner only before the reservation has ended
// and only with their password re-confirmed.
func (srv *reservationService) Delete(ctx context.Context, principal entity.Principal, id uuid.UUID, password string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reservation, err := srv.findVisible(ctx, repoFactory, principal, id)
		if err != nil {
			return err
		}

		if err := policy.CanDeleteReservation(principal, reservation, srv.today()); err != nil {
			return err
		}

		if !principal.Staff {
			owner, err := repoFactory.Accounts().FindByID(ctx, principal.AccountID)
			if err != nil {
				return errors.Wrap(err, "failed to load owner for deletion")
			}
			if !srv.hasher.Check(password, owner.PasswordHash) {
				return domainerrors.ErrInvalidPassword
			}
		}

		return repoFactory.Reservations().Delete(ctx, reservation.ID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Reservation deleted", slog.Any("reservationID", id), slog.Bool("staff", principal.Staff))

	return nil
}

// findVisible loads a reservation and applies the ownership policy,
// masking foreign reservations as not-found.
func (srv *reservationService) findVisible(ctx context.Context, repoFactory repository.RepositoryFactory, principal entity.Principal, id uuid.UUID) (*entity.Reservation, error) {
	reservation, err := repoFactory.Reservations().FindByID(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, domainerrors.ErrReservationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load reservation")
	}

	if !policy.CanAccessReservation(principal, reservation) {
		return nil, policy.ReservationAccessError()
	}

	return reservation, nil
}

// ensureNoOverlap runs the range-overlap query inside the caller's
// transaction and reports the first conflicting range on failure.
func (srv *reservationService) ensureNoOverlap(ctx context.Context, repoFactory repository.RepositoryFactory, carID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) error {
	if end.Before(start) {
		return domainerrors.ErrInvalidDateRange
	}

	conflicts, err := repoFactory.Reservations().FindOverlapping(ctx, carID, start, end, excludeID)
	if err != nil {
		return errors.Wrap(err, "failed to query overlapping reservations")
	}
	if len(conflicts) > 0 {
		first := conflicts[0]

		return domainerrors.ErrOverlappingReservation.WithDetails(fmt.Sprintf(
			"conflicts with booking %s to %s",
			first.StartDate.Format(time.DateOnly),
			first.EndDate.Format(time.DateOnly)))
	}

	return nil
}
