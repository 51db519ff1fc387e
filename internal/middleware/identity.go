package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pitch-reservation/internal/utils"
)

// SessionKey is the context key SessionFlag stores claims under.
const SessionKey = "session"

// Session returns the parsed session-flag claims, or nil for anonymous
// requests.
func Session(c echo.Context) *utils.SessionClaims {
	if cl, ok := c.Get(SessionKey).(*utils.SessionClaims); ok {
		return cl
	}
	return nil
}

// userID identifies the caller for rate limiting: the session subject when
// logged in, "anon" otherwise.
func userID(c echo.Context) string {
	if cl := Session(c); cl != nil && cl.Subject != "" {
		return cl.Subject
	}
	return "anon"
}
