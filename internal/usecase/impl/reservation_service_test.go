package impl

import (
	"context"
	"testing"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestReservationService(m *testMocks, today string) *reservationService {
	return &reservationService{
		txManager: m.txManager,
		hasher:    m.hasher,
		clock:     testClock(today),
		logger:    testLogger(),
	}
}

func testCar(dailyPrice string) *entity.Car {
	modelID := uuid.New()

	return &entity.Car{
		ID:             uuid.New(),
		VehicleModelID: modelID,
		LicensePlate:   "KA-RE 1234",
		Model: &entity.VehicleModel{
			ID:         modelID,
			Name:       "Corsa",
			Seats:      5,
			DailyPrice: decimal.RequireFromString(dailyPrice),
		},
	}
}

func TestReservationService_Create(t *testing.T) {
	t.Run("derives coverage and total from renter age", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		car := testCar("50.00")
		renter := &entity.Account{ID: uuid.New(), BirthDate: mustDate("1990-06-15")}
		principal := entity.Principal{AccountID: renter.ID}

		m.cars.On("FindByID", mock.Anything, car.ID).Return(car, nil)
		m.accounts.On("FindByID", mock.Anything, renter.ID).Return(renter, nil)
		m.reservations.On("FindOverlapping", mock.Anything, car.ID, mustDate("2026-10-01"), mustDate("2026-10-05"), (*uuid.UUID)(nil)).
			Return([]*entity.Reservation{}, nil)
		m.reservations.On("Create", mock.Anything, mock.AnythingOfType("*entity.Reservation")).Return(nil)

		created, err := srv.Create(context.Background(), principal, &usecase.CreateReservationInput{
			CarID:     car.ID,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-05"),
		})
		require.NoError(t, err)

		assert.Equal(t, entity.CoverageStandard, created.Coverage)
		assert.True(t, created.Rate.Equal(decimal.NewFromInt(1)))
		// 5 inclusive days at 50.00.
		assert.Equal(t, "250.00", created.TotalPrice.StringFixed(2))
		assert.Equal(t, renter.ID, created.AccountID)
		m.reservations.AssertExpectations(t)
	})

	t.Run("young driver pays the surcharge", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		car := testCar("40.00")
		renter := &entity.Account{ID: uuid.New(), BirthDate: mustDate("2004-01-01")}
		principal := entity.Principal{AccountID: renter.ID}

		m.cars.On("FindByID", mock.Anything, car.ID).Return(car, nil)
		m.accounts.On("FindByID", mock.Anything, renter.ID).Return(renter, nil)
		m.reservations.On("FindOverlapping", mock.Anything, car.ID, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).
			Return([]*entity.Reservation{}, nil)
		m.reservations.On("Create", mock.Anything, mock.AnythingOfType("*entity.Reservation")).Return(nil)

		created, err := srv.Create(context.Background(), principal, &usecase.CreateReservationInput{
			CarID:     car.ID,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-03"),
		})
		require.NoError(t, err)

		assert.Equal(t, entity.CoverageYoungDriver, created.Coverage)
		// 3 days at 40.00 times 1.50.
		assert.Equal(t, "180.00", created.TotalPrice.StringFixed(2))
	})

	t.Run("rejects overlapping range", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		car := testCar("50.00")
		renter := &entity.Account{ID: uuid.New(), BirthDate: mustDate("1990-06-15")}
		principal := entity.Principal{AccountID: renter.ID}

		m.cars.On("FindByID", mock.Anything, car.ID).Return(car, nil)
		m.accounts.On("FindByID", mock.Anything, renter.ID).Return(renter, nil)
		m.reservations.On("FindOverlapping", mock.Anything, car.ID, mock.Anything, mock.Anything, (*uuid.UUID)(nil)).
			Return([]*entity.Reservation{{
				StartDate: mustDate("2026-10-03"),
				EndDate:   mustDate("2026-10-08"),
			}}, nil)

		_, err := srv.Create(context.Background(), principal, &usecase.CreateReservationInput{
			CarID:     car.ID,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-05"),
		})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrOverlappingReservation.ErrorCode(), appErr.ErrorCode())
		assert.Contains(t, appErr.Details(), "2026-10-03")
		m.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects inverted range before touching storage", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		car := testCar("50.00")
		renter := &entity.Account{ID: uuid.New(), BirthDate: mustDate("1990-06-15")}
		principal := entity.Principal{AccountID: renter.ID}

		m.cars.On("FindByID", mock.Anything, car.ID).Return(car, nil)
		m.accounts.On("FindByID", mock.Anything, renter.ID).Return(renter, nil)

		_, err := srv.Create(context.Background(), principal, &usecase.CreateReservationInput{
			CarID:     car.ID,
			StartDate: mustDate("2026-10-05"),
			EndDate:   mustDate("2026-10-01"),
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidDateRange)
		m.reservations.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown car", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		carID := uuid.New()
		m.cars.On("FindByID", mock.Anything, carID).Return(nil, repository.ErrCarNotFound)

		_, err := srv.Create(context.Background(), entity.Principal{AccountID: uuid.New()}, &usecase.CreateReservationInput{
			CarID:     carID,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-05"),
		})

		assert.ErrorIs(t, err, domainerrors.ErrCarNotFound)
	})
}

func TestReservationService_Get(t *testing.T) {
	t.Run("owner sees own reservation", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		ownerID := uuid.New()
		reservation := &entity.Reservation{ID: uuid.New(), AccountID: ownerID}
		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

		got, err := srv.Get(context.Background(), entity.Principal{AccountID: ownerID}, reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.ID, got.ID)
	})

	t.Run("foreign reservation reads as not found", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		reservation := &entity.Reservation{ID: uuid.New(), AccountID: uuid.New()}
		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

		_, err := srv.Get(context.Background(), entity.Principal{AccountID: uuid.New()}, reservation.ID)

		assert.ErrorIs(t, err, domainerrors.ErrReservationNotFound)
	})

	t.Run("staff sees any reservation", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		reservation := &entity.Reservation{ID: uuid.New(), AccountID: uuid.New()}
		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

		got, err := srv.Get(context.Background(), entity.Principal{AccountID: uuid.New(), Staff: true}, reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, reservation.ID, got.ID)
	})
}

func TestReservationService_List(t *testing.T) {
	t.Run("non-staff are fenced to their own rows", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		principal := entity.Principal{AccountID: uuid.New()}
		m.reservations.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReservationFilter) bool {
			return f.RenterID != nil && *f.RenterID == principal.AccountID
		})).Return([]*entity.Reservation{}, nil)

		_, err := srv.List(context.Background(), principal, &usecase.ListReservationsInput{})
		require.NoError(t, err)
		m.reservations.AssertExpectations(t)
	})

	t.Run("staff list is unfiltered", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		m.reservations.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReservationFilter) bool {
			return f.RenterID == nil && f.Status == repository.StatusUpcoming
		})).Return([]*entity.Reservation{}, nil)

		_, err := srv.List(context.Background(), entity.Principal{AccountID: uuid.New(), Staff: true},
			&usecase.ListReservationsInput{Status: repository.StatusUpcoming})
		require.NoError(t, err)
		m.reservations.AssertExpectations(t)
	})

	t.Run("staff asking for own rows get the owner filter", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		principal := entity.Principal{AccountID: uuid.New(), Staff: true}
		m.reservations.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReservationFilter) bool {
			return f.RenterID != nil && *f.RenterID == principal.AccountID
		})).Return([]*entity.Reservation{}, nil)

		_, err := srv.List(context.Background(), principal, &usecase.ListReservationsInput{OnlyOwn: true})
		require.NoError(t, err)
		m.reservations.AssertExpectations(t)
	})
}

func TestReservationService_Update(t *testing.T) {
	t.Run("recomputes price on rebooking", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		car := testCar("80.00")
		renter := &entity.Account{ID: uuid.New(), BirthDate: mustDate("1990-06-15")}
		reservation := &entity.Reservation{
			ID:        uuid.New(),
			AccountID: renter.ID,
			CarID:     car.ID,
			Car:       car,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-02"),
		}

		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
		m.reservations.On("FindOverlapping", mock.Anything, car.ID, mustDate("2026-10-10"), mustDate("2026-10-12"), &reservation.ID).
			Return([]*entity.Reservation{}, nil)
		m.accounts.On("FindByID", mock.Anything, renter.ID).Return(renter, nil)
		m.reservations.On("Update", mock.Anything, reservation).Return(nil)

		updated, err := srv.Update(context.Background(), entity.Principal{AccountID: renter.ID}, reservation.ID, &usecase.UpdateReservationInput{
			StartDate: mustDate("2026-10-10"),
			EndDate:   mustDate("2026-10-12"),
		})
		require.NoError(t, err)

		// 3 inclusive days at 80.00.
		assert.Equal(t, "240.00", updated.TotalPrice.StringFixed(2))
		assert.Equal(t, mustDate("2026-10-10"), updated.StartDate)
	})

	t.Run("only staff may move the reservation to another car", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		car := testCar("80.00")
		otherCarID := uuid.New()
		ownerID := uuid.New()
		reservation := &entity.Reservation{ID: uuid.New(), AccountID: ownerID, CarID: car.ID, Car: car}

		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

		_, err := srv.Update(context.Background(), entity.Principal{AccountID: ownerID}, reservation.ID, &usecase.UpdateReservationInput{
			StartDate: mustDate("2026-10-10"),
			EndDate:   mustDate("2026-10-12"),
			CarID:     &otherCarID,
		})

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})
}

func TestReservationService_Delete(t *testing.T) {
	t.Run("owner deletes upcoming with correct password", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		owner := &entity.Account{ID: uuid.New(), PasswordHash: "hash"}
		reservation := &entity.Reservation{
			ID:        uuid.New(),
			AccountID: owner.ID,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-05"),
		}

		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
		m.accounts.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)
		m.reservations.On("Delete", mock.Anything, reservation.ID).Return(nil)

		err := srv.Delete(context.Background(), entity.Principal{AccountID: owner.ID}, reservation.ID, "secret-pass")
		require.NoError(t, err)
		m.reservations.AssertExpectations(t)
	})

	t.Run("owner cannot delete a finished reservation", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		ownerID := uuid.New()
		reservation := &entity.Reservation{
			ID:        uuid.New(),
			AccountID: ownerID,
			StartDate: mustDate("2026-08-01"),
			EndDate:   mustDate("2026-08-05"),
		}
		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)

		err := srv.Delete(context.Background(), entity.Principal{AccountID: ownerID}, reservation.ID, "secret-pass")

		assert.ErrorIs(t, err, domainerrors.ErrReservationNotDeletable)
		m.reservations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("wrong password blocks owner deletion", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		owner := &entity.Account{ID: uuid.New(), PasswordHash: "hash"}
		reservation := &entity.Reservation{
			ID:        uuid.New(),
			AccountID: owner.ID,
			StartDate: mustDate("2026-10-01"),
			EndDate:   mustDate("2026-10-05"),
		}

		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
		m.accounts.On("FindByID", mock.Anything, owner.ID).Return(owner, nil)
		m.hasher.On("Check", "wrong", "hash").Return(false)

		err := srv.Delete(context.Background(), entity.Principal{AccountID: owner.ID}, reservation.ID, "wrong")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidPassword)
		m.reservations.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("staff delete needs no password even for past bookings", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestReservationService(m, "2026-09-01")

		reservation := &entity.Reservation{
			ID:        uuid.New(),
			AccountID: uuid.New(),
			StartDate: mustDate("2026-08-01"),
			EndDate:   mustDate("2026-08-05"),
		}
		m.reservations.On("FindByID", mock.Anything, reservation.ID).Return(reservation, nil)
		m.reservations.On("Delete", mock.Anything, reservation.ID).Return(nil)

		err := srv.Delete(context.Background(), entity.Principal{AccountID: uuid.New(), Staff: true}, reservation.ID, "")
		require.NoError(t, err)
		m.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	})
}
