// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"time"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PasswordHasher mocks service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// TokenService mocks service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GeneratePair(accountID uuid.UUID, staff bool) (string, string, error) {
	args := m.Called(accountID, staff)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenService) ValidateAccess(token string) (*entity.Principal, error) {
	args := m.Called(token)
	if principal, ok := args.Get(0).(*entity.Principal); ok {
		return principal, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *TokenService) ValidateRefresh(token string) (uuid.UUID, error) {
	args := m.Called(token)
	if id, ok := args.Get(0).(uuid.UUID); ok {
		return id, args.Error(1)
	}

	return uuid.Nil, args.Error(1)
}

func (m *TokenService) AccessTokenDuration() time.Duration {
	args := m.Called()
	if d, ok := args.Get(0).(time.Duration); ok {
		return d
	}

	return 0
}
