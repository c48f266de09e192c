package session

import (
	"errors"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned by repos when no record has been persisted yet.
var ErrNotFound = errors.New("session record not found")

// Repo is the durable store for the session record (the UI-displayable
// identity, persisted across restarts as sr_user).
type Repo interface {
	Save(s *Session) error
	Load() (*Session, error)
	Clear() error
}

// Credential is what the fast-access cache persists: the bearer token with
// its expiry, plus whether it was issued over an encrypted transport.
// Token reuses oauth2.Token so the expiry bookkeeping stays standard.
type Credential struct {
	Token      oauth2.Token `json:"token"`
	RequireTLS bool         `json:"require_tls"`
}

// CredentialRepo is the fast-access credential cache (sr_token). It is a
// separate sync target from Repo: authenticated transport calls read the
// credential from here, never from the session record.
type CredentialRepo interface {
	Save(c *Credential) error
	Load() (*Credential, error)
	Clear() error
}
