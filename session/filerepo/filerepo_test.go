package filerepo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/stackradar/console/session"
	"github.com/stackradar/console/session/filerepo"
)

func TestSessionRepoRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := filerepo.NewSessionRepo(dir)
	require.NoError(t, err)

	saved := &session.Session{UserID: 7, Email: "user@example.com", FullName: "A User", IsAdmin: false, IsActive: true}
	require.NoError(t, repo.Save(saved))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestSessionRepoLoadWithoutRecord(t *testing.T) {
	repo, err := filerepo.NewSessionRepo(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load()
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestSessionRepoClearIsIdempotent(t *testing.T) {
	repo, err := filerepo.NewSessionRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Save(&session.Session{UserID: 1}))
	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Clear())

	_, err = repo.Load()
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestCredentialRepoRoundTrip(t *testing.T) {
	repo, err := filerepo.NewCredentialRepo(t.TempDir())
	require.NoError(t, err)

	saved := &session.Credential{
		Token: oauth2.Token{
			AccessToken: "tok-123",
			TokenType:   "Bearer",
			Expiry:      time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		},
		RequireTLS: true,
	}
	require.NoError(t, repo.Save(saved))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, saved.Token.AccessToken, loaded.Token.AccessToken)
	require.True(t, saved.Token.Expiry.Equal(loaded.Token.Expiry))
	require.True(t, loaded.RequireTLS)
}

func TestCredentialFileIsOwnerOnly(t *testing.T) {
	dir := t.TempDir()
	repo, err := filerepo.NewCredentialRepo(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(&session.Credential{Token: oauth2.Token{AccessToken: "tok"}}))

	info, err := os.Stat(filepath.Join(dir, "sr_token.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
