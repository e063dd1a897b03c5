package clientstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthSessionLifecycle(t *testing.T) {
	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "client.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, signedIn := AuthSessionFrom(s)
	assert.False(t, signedIn)

	session := AuthSession{
		Token:    "signed.jwt.token",
		Email:    "admin@greenhaven.com",
		Username: "admin",
		Level:    "super",
	}
	require.NoError(t, SaveAuthSession(s, session))

	restored, signedIn := AuthSessionFrom(s)
	require.True(t, signedIn)
	assert.Equal(t, session, restored)

	require.NoError(t, ClearAuthSession(s))
	_, signedIn = AuthSessionFrom(s)
	assert.False(t, signedIn)
}
