// Command seed loads a small demo data set: the catalog lookups, a few
// vehicle models and cars, and one staff account. It is idempotent in the
// sense that rerunning it against a seeded database fails on the unique
// constraints instead of duplicating rows.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"fleet/config"
	"fleet/internal/domain/entity"
	"fleet/internal/domain/repository"
	"fleet/internal/domain/service"
	"fleet/internal/infra/auth"
	logs "fleet/internal/infra/log"
	"fleet/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
		),
		fx.Invoke(seed),
	).Run()
}

type seedParams struct {
	fx.In

	Shutdowner fx.Shutdowner
	TxManager  repository.TransactionManager
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

func seed(params seedParams) {
	go func() {
		if err := run(context.Background(), params); err != nil {
			params.Logger.Error("Seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
		params.Logger.Info("Seeding complete")
		_ = params.Shutdowner.Shutdown()
	}()
}

func run(ctx context.Context, params seedParams) error {
	staffHash, err := params.Hasher.Hash("changeme-admin")
	if err != nil {
		return errors.WithStack(err)
	}

	return params.TxManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		lookups, err := seedLookups(ctx, repos.Lookups())
		if err != nil {
			return err
		}

		if err := seedFleet(ctx, repos, lookups); err != nil {
			return err
		}

		return repos.Accounts().Create(ctx, &entity.Account{
			FirstName:    "Back",
			LastName:     "Office",
			Email:        "admin@fleet.local",
			BirthDate:    time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
			PasswordHash: staffHash,
			Staff:        true,
			Active:       true,
		})
	})
}

var lookupNames = map[entity.LookupKind][]string{
	entity.LookupBrand:        {"Opel", "Renault", "Toyota", "Volkswagen"},
	entity.LookupVehicleType:  {"Hatchback", "Sedan", "SUV", "Van"},
	entity.LookupFuelType:     {"Petrol", "Diesel", "Electric", "Hybrid"},
	entity.LookupColor:        {"Black", "White", "Red", "Blue"},
	entity.LookupTransmission: {"Manual", "Automatic"},
}

// seedLookups fills the five catalog tables and returns the created entries
// keyed by kind and name so the fleet seed can reference them.
func seedLookups(ctx context.Context, repo repository.LookupRepository) (map[entity.LookupKind]map[string]*entity.Lookup, error) {
	out := make(map[entity.LookupKind]map[string]*entity.Lookup, len(lookupNames))
	for _, kind := range entity.LookupKinds {
		out[kind] = make(map[string]*entity.Lookup)
		for _, name := range lookupNames[kind] {
			lookup := &entity.Lookup{Name: name}
			if err := repo.Create(ctx, kind, lookup); err != nil {
				return nil, errors.Wrapf(err, "seed %s %q", kind, name)
			}
			out[kind][name] = lookup
		}
	}

	return out, nil
}

func seedFleet(ctx context.Context, repos repository.RepositoryFactory, lookups map[entity.LookupKind]map[string]*entity.Lookup) error {
	ref := func(kind entity.LookupKind, name string) *uuid.UUID {
		id := lookups[kind][name].ID
		return &id
	}

	models := []*entity.VehicleModel{
		{
			Name:           "Corsa",
			BrandID:        lookups[entity.LookupBrand]["Opel"].ID,
			VehicleTypeID:  ref(entity.LookupVehicleType, "Hatchback"),
			FuelTypeID:     ref(entity.LookupFuelType, "Petrol"),
			TransmissionID: ref(entity.LookupTransmission, "Manual"),
			Seats:          5,
			DailyPrice:     decimal.RequireFromString("39.90"),
		},
		{
			Name:           "Clio",
			BrandID:        lookups[entity.LookupBrand]["Renault"].ID,
			VehicleTypeID:  ref(entity.LookupVehicleType, "Hatchback"),
			FuelTypeID:     ref(entity.LookupFuelType, "Diesel"),
			TransmissionID: ref(entity.LookupTransmission, "Manual"),
			Seats:          5,
			DailyPrice:     decimal.RequireFromString("42.50"),
		},
		{
			Name:           "RAV4",
			BrandID:        lookups[entity.LookupBrand]["Toyota"].ID,
			VehicleTypeID:  ref(entity.LookupVehicleType, "SUV"),
			FuelTypeID:     ref(entity.LookupFuelType, "Hybrid"),
			TransmissionID: ref(entity.LookupTransmission, "Automatic"),
			Seats:          5,
			DailyPrice:     decimal.RequireFromString("74.00"),
		},
	}

	plates := [][]string{
		{"FL-101-AA", "FL-102-AB"},
		{"FL-201-BA"},
		{"FL-301-CA", "FL-302-CB"},
	}
	colors := []string{"Black", "White", "Red", "Blue"}

	for i, model := range models {
		if err := repos.VehicleModels().Create(ctx, model); err != nil {
			return errors.Wrapf(err, "seed model %q", model.Name)
		}
		for j, plate := range plates[i] {
			car := &entity.Car{
				VehicleModelID: model.ID,
				LicensePlate:   plate,
				ColorID:        ref(entity.LookupColor, colors[(i+j)%len(colors)]),
				Mileage:        15000 * (i + 1),
			}
			if err := repos.Cars().Create(ctx, car); err != nil {
				return errors.Wrapf(err, "seed car %q", plate)
			}
		}
	}

	return nil
}
