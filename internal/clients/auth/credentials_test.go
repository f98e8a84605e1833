package auth_client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedwatch/internal/custom_errors"
)

func TestCredentialStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	store := NewCredentialStore(path)

	// Empty store refuses to hand out a token.
	_, err := store.Token()
	assert.ErrorIs(t, err, custom_errors.ErrUnauthenticated)

	cred := &Credential{
		AccessToken: "tok-abc",
		UserID:      "u1",
		ExpiresAt:   time.Now().Add(time.Hour).UTC(),
	}
	require.NoError(t, store.Save(cred))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	// A fresh store reads the same credential back from disk.
	reloaded := NewCredentialStore(path)
	require.NoError(t, reloaded.Load())
	token, err = reloaded.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, "u1", reloaded.Credential().UserID)
}

func TestCredentialStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewCredentialStore(path)
	require.NoError(t, store.Save(&Credential{AccessToken: "tok"}))

	require.NoError(t, store.Clear())
	_, err := store.Token()
	assert.ErrorIs(t, err, custom_errors.ErrUnauthenticated)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestCredentialStore_LoadMissingFile(t *testing.T) {
	store := NewCredentialStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, store.Load())
	assert.Nil(t, store.Credential())
}

func TestCredentialStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := NewCredentialStore(path)
	assert.Error(t, store.Load())
}

func TestCredentialStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := NewCredentialStore(path)
	require.NoError(t, store.Save(&Credential{AccessToken: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
