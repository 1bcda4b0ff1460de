package service

import (
	"time"

	"fleet/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and validating the JWT
// access/refresh pair. Refresh tokens are stateless: a refresh is valid as
// long as its signature and type check out and the account still exists.
type TokenService interface {
	// GeneratePair creates an access token and a refresh token for an account.
	GeneratePair(accountID uuid.UUID, staff bool) (accessToken string, refreshToken string, err error)

	// ValidateAccess checks an access token and returns the authenticated principal.
	ValidateAccess(tokenString string) (*entity.Principal, error)

	// ValidateRefresh checks a refresh token and returns the account id it was issued for.
	ValidateRefresh(tokenString string) (uuid.UUID, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration
}
