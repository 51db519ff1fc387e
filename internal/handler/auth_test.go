package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginFlag(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/v1/auth/login", `{"email":"ali@example.com"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/v1/auth/login", `{"password":"x"}`).Code)

	rec := s.do(http.MethodPost, "/v1/auth/login", `{"email":"ali@example.com","password":"anything"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[loginResp](t, rec)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "ali@example.com", login.Name)

	anon := decode[sessionResp](t, s.do(http.MethodGet, "/v1/auth/session", ""))
	assert.False(t, anon.LoggedIn)

	flagged := decode[sessionResp](t, s.do(http.MethodGet, "/v1/auth/session", "", "Authorization", "Bearer "+login.Token))
	assert.True(t, flagged.LoggedIn)
	assert.Equal(t, "ali@example.com", flagged.Name)
	require.NotNil(t, flagged.Expires)

	// searches made with the flag are marked as logged in
	s.do(http.MethodGet, "/v1/pitches", "", "Authorization", "Bearer "+login.Token)
	events := s.events.all()
	require.Len(t, events, 1)
	assert.True(t, events[0].LoggedIn)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/v1/auth/logout", "").Code)
}
