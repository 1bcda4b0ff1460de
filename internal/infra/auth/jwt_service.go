// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fleet/config"
	"fleet/internal/domain/entity"
	"fleet/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens are signed with separate secrets so one cannot
// stand in for the other.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     time.Minute * 15,
		refreshTTL:    time.Hour * 24 * 7,
	}, nil
}

// GeneratePair creates a new access token and refresh token for an account.
func (s *jwtService) GeneratePair(accountID uuid.UUID, staff bool) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.generateToken(accountID, staff, s.accessTTL, s.accessSecret, "access")
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.generateToken(accountID, false, s.refreshTTL, s.refreshSecret, "refresh")
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccess checks an access token and returns the authenticated principal.
func (s *jwtService) ValidateAccess(tokenString string) (*entity.Principal, error) {
	claims, err := s.parseClaims(tokenString, s.accessSecret, "access")
	if err != nil {
		return nil, err
	}

	accountID, err := subjectID(claims)
	if err != nil {
		return nil, err
	}

	staff, _ := claims["staff"].(bool)

	return &entity.Principal{AccountID: accountID, Staff: staff}, nil
}

// ValidateRefresh checks a refresh token and returns the account id it was issued for.
func (s *jwtService) ValidateRefresh(tokenString string) (uuid.UUID, error) {
	claims, err := s.parseClaims(tokenString, s.refreshSecret, "refresh")
	if err != nil {
		return uuid.Nil, err
	}

	return subjectID(claims)
}

// AccessTokenDuration returns the configured lifetime for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// generateToken is a private helper to create a JWT with specific claims.
// The staff flag is carried on access tokens only; refresh tokens grant
// nothing until exchanged.
func (s *jwtService) generateToken(accountID uuid.UUID, staff bool, ttl time.Duration, secret, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  accountID,                  // Subject (who the token is for)
		"iat":  time.Now().Unix(),          // Issued At
		"exp":  time.Now().Add(ttl).Unix(), // Expiration Time
		"type": tokenType,                  // Type of token (access or refresh)
	}
	if tokenType == "access" {
		claims["staff"] = staff
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// parseClaims validates signature, expiry and token type in one place.
func (s *jwtService) parseClaims(tokenString, secret, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func subjectID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(sub)
}
