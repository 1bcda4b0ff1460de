// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"fleet/config"
	"fleet/internal/domain/lifecycle"
	"fleet/internal/errors"
	"fleet/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the PostgreSQL client and wires its lifecycle: connectivity is
// verified on start, the pool is closed on stop, and the schema is migrated
// when autoMigrate is enabled.
func New(params Params) (*gorm.DB, error) {
	dbCfg := params.Config.Database
	if dbCfg == nil {
		return nil, errors.New("database configuration is missing")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.Username, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Disable GORM's per-statement implicit transaction.
		// Explicit transactions run via txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if dbCfg.AutoMigrate {
				if err := Migrate(db.WithContext(ctx)); err != nil {
					return errors.Wrap(err, "failed to migrate schema")
				}
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Migrate creates the tables and the reservation overlap exclusion
// constraint. GORM's AutoMigrate cannot express EXCLUDE constraints, so the
// constraint is installed with raw SQL, guarded to stay idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.AccountModel{},
		&model.BrandModel{},
		&model.VehicleTypeModel{},
		&model.FuelTypeModel{},
		&model.ColorModel{},
		&model.TransmissionModel{},
		&model.VehicleModelModel{},
		&model.CarModel{},
		&model.ReservationModel{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	// btree_gist is needed to mix the car_id equality with the daterange
	// overlap operator in one index.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return errors.Wrap(err, "create btree_gist extension")
	}

	const constraintSQL = `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'reservation_no_overlap'
			) THEN
				ALTER TABLE reservation ADD CONSTRAINT reservation_no_overlap
					EXCLUDE USING gist (
						car_id WITH =,
						daterange(start_date, end_date, '[]') WITH &&
					);
			END IF;
		END
		$$`
	if err := db.Exec(constraintSQL).Error; err != nil {
		return errors.Wrap(err, "create reservation overlap constraint")
	}

	return nil
}
