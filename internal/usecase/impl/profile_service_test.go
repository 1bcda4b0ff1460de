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

func createTestProfileService(m *testMocks, today string) *profileService {
	return &profileService{
		txManager: m.txManager,
		hasher:    m.hasher,
		cfg:       testConfig(),
		clock:     testClock(today),
		logger:    testLogger(),
	}
}

func TestProfileService_Update(t *testing.T) {
	t.Run("requires the current password", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), PasswordHash: "hash"}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "wrong", "hash").Return(false)

		first := "Robin"
		_, err := srv.Update(context.Background(), account.ID, &usecase.UpdateProfileInput{
			CurrentPassword: "wrong",
			FirstName:       &first,
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidPassword)
		m.accounts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{
			ID:           uuid.New(),
			FirstName:    "Jamie",
			LastName:     "Fox",
			Email:        "jamie@example.com",
			PasswordHash: "hash",
		}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)
		m.accounts.On("Update", mock.Anything, account).Return(nil)

		first := "Robin"
		updated, err := srv.Update(context.Background(), account.ID, &usecase.UpdateProfileInput{
			CurrentPassword: "secret-pass",
			FirstName:       &first,
		})
		require.NoError(t, err)

		assert.Equal(t, "Robin", updated.FirstName)
		assert.Equal(t, "Fox", updated.LastName)
		assert.Equal(t, "jamie@example.com", updated.Email)
	})

	t.Run("changing email re-checks uniqueness", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), Email: "jamie@example.com", PasswordHash: "hash"}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)
		m.accounts.On("FindByEmail", mock.Anything, "taken@example.com").
			Return(&entity.Account{ID: uuid.New()}, nil)

		email := "taken@example.com"
		_, err := srv.Update(context.Background(), account.ID, &usecase.UpdateProfileInput{
			CurrentPassword: "secret-pass",
			Email:           &email,
		})

		assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	})

	t.Run("birth date change re-checks the adult rule", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), PasswordHash: "hash"}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)

		birth := mustDate("2015-01-01")
		_, err := srv.Update(context.Background(), account.ID, &usecase.UpdateProfileInput{
			CurrentPassword: "secret-pass",
			BirthDate:       &birth,
		})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidBirthDate)
	})
}

func TestProfileService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), PasswordHash: "hash"}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "secret-pass", "hash").Return(true)
		m.accounts.On("Delete", mock.Anything, account.ID).Return(nil)

		err := srv.Delete(context.Background(), account.ID, "secret-pass")
		require.NoError(t, err)
		m.accounts.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), PasswordHash: "hash"}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "wrong", "hash").Return(false)

		err := srv.Delete(context.Background(), account.ID, "wrong")

		assert.ErrorIs(t, err, domainerrors.ErrInvalidPassword)
		m.accounts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProfileService_ChangePassword(t *testing.T) {
	t.Run("rotates after verifying the old password", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		account := &entity.Account{ID: uuid.New(), PasswordHash: "old-hash"}
		m.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
		m.hasher.On("Check", "old-secret", "old-hash").Return(true)
		m.hasher.On("Hash", "new-secret-pass").Return("new-hash", nil)
		m.accounts.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Account) bool {
			return a.PasswordHash == "new-hash"
		})).Return(nil)

		err := srv.ChangePassword(context.Background(), account.ID, &usecase.ChangePasswordInput{
			OldPassword: "old-secret",
			NewPassword: "new-secret-pass",
		})
		require.NoError(t, err)
		m.accounts.AssertExpectations(t)
	})

	t.Run("new password length is enforced", func(t *testing.T) {
		m := newTestMocks()
		srv := createTestProfileService(m, "2026-09-01")

		err := srv.ChangePassword(context.Background(), uuid.New(), &usecase.ChangePasswordInput{
			OldPassword: "old-secret",
			NewPassword: "short",
		})

		assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
	})
}

func TestCatalogService_Lookups(t *testing.T) {
	t.Run("unknown kind reads as not found", func(t *testing.T) {
		m := newTestMocks()
		srv := &catalogService{txManager: m.txManager, logger: testLogger()}

		_, err := srv.ListLookups(context.Background(), entity.LookupKind("engine"))

		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("create trims and rejects blank names", func(t *testing.T) {
		m := newTestMocks()
		srv := &catalogService{txManager: m.txManager, logger: testLogger()}

		_, err := srv.CreateLookup(context.Background(), entity.LookupBrand, "   ")
		assert.Error(t, err)

		m.lookups.On("Create", mock.Anything, entity.LookupBrand, mock.MatchedBy(func(l *entity.Lookup) bool {
			return l.Name == "Opel"
		})).Return(nil)

		lookup, err := srv.CreateLookup(context.Background(), entity.LookupBrand, "  Opel  ")
		require.NoError(t, err)
		assert.Equal(t, "Opel", lookup.Name)
	})

	t.Run("delete of missing entry", func(t *testing.T) {
		m := newTestMocks()
		srv := &catalogService{txManager: m.txManager, logger: testLogger()}

		id := uuid.New()
		m.lookups.On("Delete", mock.Anything, entity.LookupColor, id).Return(repository.ErrLookupNotFound)

		err := srv.DeleteLookup(context.Background(), entity.LookupColor, id)

		assert.ErrorIs(t, err, domainerrors.ErrLookupNotFound)
	})
}
