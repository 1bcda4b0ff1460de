package impl

import (
	"context"
	"testing"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"
	"fleet/internal/domain/repository"
	"fleet/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestAccountService(m *testMocks, today string) *accountService {
	return &accountService{
		txManager: m.txManager,
		hasher:    m.hasher,
		tokens:    m.tokens,
		cfg:       testConfig(),
		clock:     testClock(today),
		logger:    testLogger(),
	}
}

func TestAccountService_Register(t *testing.T) {
	validInput := func() *usecase.RegisterInput {
		return &usecase.RegisterInput{
			FirstName:     "Jamie",
			LastName:      "Fox",
			Email:         "jamie@example.com",
			Password:      "long-enough",
			BirthDate:     mustDate("1995-04-02"),
			LicenseNumber: "B123456",
		}
	}

	t.Run("success", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		m.hasher.On("Hash", "long-enough").Return("hashed", nil)
		m.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").Return(nil, repository.ErrAccountNotFound)
		m.accounts.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)

		account, err := srv.Register(context.Background(), validInput())
		require.NoError(t, err)

		assert.Equal(t, "hashed", account.PasswordHash)
		assert.False(t, account.Staff)
		assert.True(t, account.Active)
		m.accounts.AssertExpectations(t)
	})

	t.Run("rejects minors", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		input := validInput()
		input.BirthDate = mustDate("2010-01-01")

		_, err := srv.Register(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrInvalidBirthDate)
	})

	t.Run("turning 18 today is old enough", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		input := validInput()
		input.BirthDate = mustDate("2008-09-01")

		m.hasher.On("Hash", mock.Anything).Return("hashed", nil)
		m.accounts.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, repository.ErrAccountNotFound)
		m.accounts.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := srv.Register(context.Background(), input)
		assert.NoError(t, err)
	})

	t.Run("rejects future birth dates", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		input := validInput()
		input.BirthDate = mustDate("2030-01-01")

		_, err := srv.Register(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrInvalidBirthDate)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		input := validInput()
		input.Password = "short"

		_, err := srv.Register(context.Background(), input)

		assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		m.hasher.On("Hash", mock.Anything).Return("hashed", nil)
		m.accounts.On("FindByEmail", mock.Anything, "jamie@example.com").
			Return(&entity.Account{ID: uuid.New()}, nil)

		_, err := srv.Register(context.Background(), validInput())

		assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
		m.accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAccountService_Login(t *testing.T) {
	t.Run("success issues a token pair", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), Email: "jamie@example.com", PasswordHash: "hash", Active: true}
		m.accounts.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)
		m.tokens.On("GeneratePair", account.ID, false).Return("access", "refresh", nil)

		out, err := srv.Login(context.Background(), &usecase.LoginInput{Email: account.Email, Password: "secret-pass"})
		require.NoError(t, err)

		assert.Equal(t, "access", out.AccessToken)
		assert.Equal(t, "refresh", out.RefreshToken)
		assert.Equal(t, account.ID, out.Account.ID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), Email: "jamie@example.com", PasswordHash: "hash", Active: true}
		m.accounts.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrAccountNotFound)
		m.accounts.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
		m.hasher.On("Check", "wrong", "hash").Return(false)

		_, unknownErr := srv.Login(context.Background(), &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"})
		_, wrongErr := srv.Login(context.Background(), &usecase.LoginInput{Email: account.Email, Password: "wrong"})

		assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), Email: "jamie@example.com", PasswordHash: "hash", Active: false}
		m.accounts.On("FindByEmail", mock.Anything, account.Email).Return(account, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)

		_, err := srv.Login(context.Background(), &usecase.LoginInput{Email: account.Email, Password: "secret-pass"})

		assert.ErrorIs(t, err, domainerrors.ErrAccountInactive)
		m.tokens.AssertNotCalled(t, "GeneratePair", mock.Anything, mock.Anything)
	})
}

func TestAccountService_Refresh(t *testing.T) {
	t.Run("success reloads the account", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), Active: true, Staff: true}
		m.tokens.On("ValidateRefresh", "refresh").Return(account.ID, nil)
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.tokens.On("GeneratePair", account.ID, true).Return("access2", "refresh2", nil)

		out, err := srv.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: "refresh"})
		require.NoError(t, err)
		assert.Equal(t, "access2", out.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		m.tokens.On("ValidateRefresh", "garbage").Return(uuid.Nil, assert.AnError)

		_, err := srv.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: "garbage"})

		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})

	t.Run("deleted account invalidates the token", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestAccountService(m, "2026-09-01")

		accountID := uuid.New()
		m.tokens.On("ValidateRefresh", "refresh").Return(accountID, nil)
		m.accounts.On("FindByID", mock.Anything, accountID).Return(nil, repository.ErrAccountNotFound)

		_, err := srv.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: "refresh"})

		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	})
}
