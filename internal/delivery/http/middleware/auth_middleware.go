// Package middleware contains the HTTP middleware of the delivery layer.
package middleware

import (
	"net/http"
	"strings"

	"fleet/internal/domain/entity"
	"fleet/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// principalKey is the echo.Context key carrying the authenticated principal.
const principalKey = "principal"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and attaches the resulting
// principal to the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		principal, err := m.tokenSvc.ValidateAccess(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(principalKey, *principal)

		return next(c)
	}
}

// RequireStaff rejects non-staff principals. It must be used AFTER the
// Authenticate middleware.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}
		if !principal.Staff {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Staff access required"})
		}

		return next(c)
	}
}

// StaffOrReadOnly lets any authenticated principal read but reserves
// mutations for staff. Catalog and fleet routes use this gate.
func (m *AuthMiddleware) StaffOrReadOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}

		switch c.Request().Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return next(c)
		}

		if !principal.Staff {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Staff access required"})
		}

		return next(c)
	}
}

// GetPrincipal extracts the authenticated principal set by Authenticate.
func GetPrincipal(c echo.Context) (entity.Principal, bool) {
	principal, ok := c.Get(principalKey).(entity.Principal)

	return principal, ok
}
