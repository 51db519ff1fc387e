package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pitch-reservation/internal/middleware"
	"github.com/iliyamo/pitch-reservation/internal/utils"
)

// AuthHandler implements the login flag. There is no user store: a login
// with any non-empty email and password yields a signed flag token, which
// only tells the front end to render its logged-in chrome.
type AuthHandler struct {
	Secret string
	TTL    time.Duration
}

func NewAuthHandler(secret string, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{Secret: secret, TTL: ttl}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Name    string    `json:"name"`
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type sessionResp struct {
	LoggedIn bool       `json:"logged_in"`
	Name     string     `json:"name,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
}

// Login answers POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}
	tok, err := utils.NewSessionToken(h.Secret, email, h.TTL)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "could not issue session")
	}
	return c.JSON(http.StatusOK, loginResp{Name: email, Token: tok.Token, Expires: tok.Exp})
}

// Session answers GET /v1/auth/session with the state of the flag carried
// by the request.
func (h *AuthHandler) Session(c echo.Context) error {
	cl := middleware.Session(c)
	if cl == nil {
		return c.JSON(http.StatusOK, sessionResp{})
	}
	resp := sessionResp{LoggedIn: true, Name: cl.Name}
	if cl.ExpiresAt != nil {
		exp := cl.ExpiresAt.Time
		resp.Expires = &exp
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout answers POST /v1/auth/logout. Tokens are not tracked, so the
// client clears its flag and the server only acknowledges.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
