package users_test

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
	"github.com/jrsteele09/go-school-insights/users"
	"github.com/stretchr/testify/require"
)

func TestNewCredential(t *testing.T) {
	t.Run("hashes password", func(t *testing.T) {
		c, err := users.NewCredential("admin", "admin123", users.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, "admin", c.Username)
		require.NotEqual(t, "admin123", c.PasswordHash)
		require.True(t, c.CheckPassword("admin123"))
		require.False(t, c.CheckPassword("admin124"))
		require.True(t, c.IsAdmin())
	})

	t.Run("defaults role to admin", func(t *testing.T) {
		c, err := users.NewCredential("ops", "pw", "")
		require.NoError(t, err)
		require.Equal(t, users.RoleAdmin, c.Role)
	})

	t.Run("empty username", func(t *testing.T) {
		_, err := users.NewCredential("  ", "pw", users.RoleAdmin)
		require.ErrorContains(t, err, "username is required")
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := users.NewCredential("admin", "", users.RoleAdmin)
		require.ErrorContains(t, err, "password is required")
	})
}

func TestCredentialStore_Lookup(t *testing.T) {
	admin, err := users.NewCredential("admin", "admin123", users.RoleAdmin)
	require.NoError(t, err)

	store, err := users.NewCredentialStore(admin)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	t.Run("present", func(t *testing.T) {
		c, err := store.Lookup("admin")
		require.NoError(t, err)
		require.Equal(t, users.RoleAdmin, c.Role)
	})

	t.Run("absent", func(t *testing.T) {
		c, err := store.Lookup("root")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
		require.Nil(t, c)
	})

	t.Run("returned copy does not alter the store", func(t *testing.T) {
		c, err := store.Lookup("admin")
		require.NoError(t, err)
		c.Role = users.RoleViewer

		again, err := store.Lookup("admin")
		require.NoError(t, err)
		require.Equal(t, users.RoleAdmin, again.Role)
	})
}

func TestNewCredentialStore_Duplicates(t *testing.T) {
	a, err := users.NewCredential("admin", "one", users.RoleAdmin)
	require.NoError(t, err)
	b, err := users.NewCredential("admin", "two", users.RoleAdmin)
	require.NoError(t, err)

	_, err = users.NewCredentialStore(a, b)
	require.ErrorContains(t, err, "duplicate credential")
}

func TestLoadCredentialsFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "users.yaml")
		content := "users:\n  - username: admin\n    password: admin123\n    role: admin\n  - username: auditor\n    password: look-only\n    role: viewer\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		creds, err := users.LoadCredentialsFile(path)
		require.NoError(t, err)
		require.Len(t, creds, 2)
		require.Equal(t, "auditor", creds[1].Username)
		require.Equal(t, users.RoleViewer, creds[1].Role)
		require.True(t, creds[1].CheckPassword("look-only"))
	})

	t.Run("no users", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("users: []\n"), 0o600))

		_, err := users.LoadCredentialsFile(path)
		require.ErrorContains(t, err, "has no users")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := users.LoadCredentialsFile(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("users: [\n"), 0o600))

		_, err := users.LoadCredentialsFile(path)
		require.ErrorContains(t, err, "decode credentials file")
	})
}
