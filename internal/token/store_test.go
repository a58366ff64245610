package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "token"))
}

func TestGetWithoutFileReturnsEmpty(t *testing.T) {
	store := newTestStore(t)

	tok, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSetThenGetRoundTrips(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("tok-123"))

	tok, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestSetRestrictsFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewStore(path)

	require.NoError(t, store.Set("tok-123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestClearRemovesToken(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("tok-123"))
	require.NoError(t, store.Clear())

	tok, err := store.Get()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestClearWithoutFileIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Clear())
}

func TestAuthorizationHeader(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.AuthorizationHeader()
	assert.False(t, ok)

	require.NoError(t, store.Set("tok-123"))

	header, ok := store.AuthorizationHeader()
	require.True(t, ok)
	assert.Equal(t, "Bearer tok-123", header)
}
