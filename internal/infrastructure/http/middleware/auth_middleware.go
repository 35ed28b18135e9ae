package middleware

import (
	stdErrors "errors"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/pkg/jwt"
)

const (
	// ClaimsContextKey is the Echo context key for validated token claims
	ClaimsContextKey = "claims"
	// SubjectContextKey is the Echo context key for the caller id
	SubjectContextKey = "subject"
)

// EchoAuth returns an Echo middleware that requires a valid bearer token and
// sets "claims" (*jwt.Claims) and "subject" (string) into Echo context
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return reject(c, apperrors.ErrUnauthenticated())
			}

			claims, err := manager.Validate(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrTokenExpired) {
					return reject(c, apperrors.ErrTokenExpired())
				}
				return reject(c, apperrors.ErrInvalidToken())
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(SubjectContextKey, claims.Subject)
			return next(c)
		}
	}
}

// OptionalEchoAuth validates a token if present but doesn't require it
func OptionalEchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if claims, err := manager.Validate(token); err == nil {
					c.Set(ClaimsContextKey, claims)
					c.Set(SubjectContextKey, claims.Subject)
				}
			}
			return next(c)
		}
	}
}

// reject writes the same error body shape as the handlers
func reject(c echo.Context, appErr apperrors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ClaimsFrom retrieves the validated claims from Echo context
func ClaimsFrom(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
	return claims, ok
}

// extractToken reads the Authorization header, then the access_token query
// parameter used by EventSource clients that cannot set headers
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	return c.QueryParam("access_token")
}
