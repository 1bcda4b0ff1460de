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

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minimumRenterAge = 18

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	cfg       *config.Config
	clock     func() time.Time
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Tokens    service.TokenService
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		cfg:       params.Config,
		clock:     time.Now,
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register opens a customer account. Self-registered accounts are never
// staff; the renter must be an adult as of today.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	today := pricing.Date(srv.clock())
	birth := pricing.Date(input.BirthDate)

	if !birth.Before(today) || pricing.Age(birth, today) < minimumRenterAge {
		return nil, domainerrors.ErrInvalidBirthDate
	}
	if len(input.Password) < srv.cfg.Auth.MinPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	account := &entity.Account{
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		BirthDate:     birth,
		LicenseNumber: input.LicenseNumber,
		PasswordHash:  hash,
		Staff:         false,
		Active:        true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		_, findErr := repoFactory.Accounts().FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailTaken
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		return repoFactory.Accounts().Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account registered", slog.Any("accountID", account.ID))

	return account, nil
}

// Login verifies the credentials and issues a token pair. Unknown emails
// and wrong passwords both surface as invalid credentials.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		account, findErr = repoFactory.Accounts().FindByEmail(ctx, input.Email)

		return findErr
	})
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !account.Active {
		return nil, domainerrors.ErrAccountInactive
	}

	access, refresh, err := srv.tokens.GeneratePair(account.ID, account.Staff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token pair")
	}

	srv.log(ctx).Info("Account logged in", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		Account:      account,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The account is
// reloaded so deactivation and staff changes take effect immediately.
func (srv *accountService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.LoginOutput, error) {
	accountID, err := srv.tokens.ValidateRefresh(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid
	}

	var account *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		account, findErr = repoFactory.Accounts().FindByID(ctx, accountID)

		return findErr
	})
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrTokenInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for refresh")
	}

	if !account.Active {
		return nil, domainerrors.ErrAccountInactive
	}

	access, refresh, err := srv.tokens.GeneratePair(account.ID, account.Staff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token pair")
	}

	return &usecase.LoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		Account:      account,
	}, nil
}
