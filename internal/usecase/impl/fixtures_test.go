package impl

import (
	"io"
	"log/slog"
	"time"

	"fleet/config"
	mockrepo "fleet/internal/mocks/repository"
	mockservice "fleet/internal/mocks/service"
)

// testClock pins "today" so age and deletion gating are deterministic.
func testClock(date string) func() time.Time {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}

	return func() time.Time { return t }
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			MinPasswordLength: 8,
		},
	}
}

type testMocks struct {
	accounts      *mockrepo.AccountRepository
	lookups       *mockrepo.LookupRepository
	vehicleModels *mockrepo.VehicleModelRepository
	cars          *mockrepo.CarRepository
	reservations  *mockrepo.ReservationRepository
	hasher        *mockservice.PasswordHasher
	tokens        *mockservice.TokenService
	txManager     *mockrepo.TransactionManager
}

func newTestMocks() *testMocks {
	m := &testMocks{
		accounts:      new(mockrepo.AccountRepository),
		lookups:       new(mockrepo.LookupRepository),
		vehicleModels: new(mockrepo.VehicleModelRepository),
		cars:          new(mockrepo.CarRepository),
		reservations:  new(mockrepo.ReservationRepository),
		hasher:        new(mockservice.PasswordHasher),
		tokens:        new(mockservice.TokenService),
	}
	m.txManager = &mockrepo.TransactionManager{
		Factory: &mockrepo.Factory{
			AccountRepo:      m.accounts,
			LookupRepo:       m.lookups,
			VehicleModelRepo: m.vehicleModels,
			CarRepo:          m.cars,
			ReservationRepo:  m.reservations,
		},
	}

	return m
}

func mustDate(date string) time.Time {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}

	return t
}
