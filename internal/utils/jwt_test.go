package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", "Ayşe", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "Ayşe", claims.Name)
	assert.Equal(t, "ayşe", claims.Subject)
}

func TestParseSessionToken_Rejects(t *testing.T) {
	tok, err := NewSessionToken("secret", "ali", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	expired, err := NewSessionToken("secret", "ali", -time.Minute)
	require.NoError(t, err)
	_, err = ParseSessionToken("secret", expired.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = ParseSessionToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
