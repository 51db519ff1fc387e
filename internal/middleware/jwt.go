package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pitch-reservation/internal/utils"
)

// SessionFlag parses an optional "Authorization: Bearer <token>" header.
// A valid token stores its claims in the context under SessionKey; a
// missing or invalid one leaves the request anonymous. Nothing is rejected
// here because the flag grants no access.
func SessionFlag(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw, ok := strings.CutPrefix(auth, "Bearer "); ok && raw != "" {
				if claims, err := utils.ParseSessionToken(secret, raw); err == nil {
					c.Set(SessionKey, claims)
				}
			}
			return next(c)
		}
	}
}
