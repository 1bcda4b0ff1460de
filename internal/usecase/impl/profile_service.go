package impl

import (
	"context"
	"log/slog"
	"time"

	"fleet/config"
	deliverycontext "fleet/internal/delivery/context"
	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/pricing"
	"fleet/internal/domain/repository"
	"fleet/internal/domain/service"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	cfg       *config.Config
	clock     func() time.Time
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for the profile service, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		cfg:       params.Config,
		clock:     time.Now,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Get returns the current account.
func (srv *profileService) Get(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		account, findErr = repoFactory.Accounts().FindByID(ctx, accountID)

		return findErr
	})
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account")
	}

	return account, nil
}

// Update applies a partial profile update after re-confirming the current
// password. Changing the email re-checks uniqueness; changing the birth
// date re-checks the adult rule.
func (srv *profileService) Update(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.Accounts().FindByID(ctx, accountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load account")
		}

		if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
			return domainerrors.ErrInvalidPassword
		}

		if input.Email != nil && *input.Email != account.Email {
			_, findErr := repoFactory.Accounts().FindByEmail(ctx, *input.Email)
			if findErr == nil {
				return domainerrors.ErrEmailTaken
			}
			if !errors.Is(findErr, repository.ErrAccountNotFound) {
				return errors.Wrap(findErr, "failed to check email uniqueness")
			}
			account.Email = *input.Email
		}

		if input.BirthDate != nil {
			today := pricing.Date(srv.clock())
			birth := pricing.Date(*input.BirthDate)
			if !birth.Before(today) || pricing.Age(birth, today) < minimumRenterAge {
				return domainerrors.ErrInvalidBirthDate
			}
			account.BirthDate = birth
		}

		if input.FirstName != nil {
			account.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			account.LastName = *input.LastName
		}
		if input.LicenseNumber != nil {
			account.LicenseNumber = *input.LicenseNumber
		}

		if err := repoFactory.Accounts().Update(ctx, account); err != nil {
			return err
		}
		updated = account

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.Any("accountID", accountID))

	return updated, nil
}

// Delete removes the account after confirming the password. Reservations
// owned by the account are removed by the storage cascade.
func (srv *profileService) Delete(ctx context.Context, accountID uuid.UUID, password string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.Accounts().FindByID(ctx, accountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load account")
		}

		if !srv.hasher.Check(password, account.PasswordHash) {
			return domainerrors.ErrInvalidPassword
		}

		return repoFactory.Accounts().Delete(ctx, account.ID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Account deleted", slog.Any("accountID", accountID))

	return nil
}

// ChangePassword rotates the password after verifying the old one.
func (srv *profileService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) error {
	if len(input.NewPassword) < srv.cfg.Auth.MinPasswordLength {
		return domainerrors.ErrPasswordTooShort
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, err := repoFactory.Accounts().FindByID(ctx, accountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load account")
		}

		if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
			return domainerrors.ErrInvalidPassword
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		account.PasswordHash = hash

		return repoFactory.Accounts().Update(ctx, account)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.Any("accountID", accountID))

	return nil
}
