package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Store holds the current authenticated identity and keeps its two sync
// targets (durable session record + fast-access credential cache) updated
// under one lock. Controllers receive the Store explicitly; nothing reads
// it through ambient globals.
type Store struct {
	mu         sync.RWMutex
	current    *Session
	repo       Repo
	creds      CredentialRepo
	requireTLS bool
	log        zerolog.Logger
	nowTime    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithRequireTLS marks persisted credentials as issued over an encrypted
// transport. Derived from the API base URL scheme.
func WithRequireTLS(require bool) StoreOption {
	return func(s *Store) {
		s.requireTLS = require
	}
}

// WithLogger sets the store logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates a session store over the given sync targets.
func NewStore(repo Repo, creds CredentialRepo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] session repo is required")
	}
	if creds == nil {
		return nil, errors.New("[NewStore] credential repo is required")
	}

	s := &Store{
		repo:    repo,
		creds:   creds,
		log:     zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Current returns the session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsAdmin reports whether the current session has admin rights,
// defaulting to false when there is no session.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.IsAdmin
}

// SetCurrent adopts sess as the current identity and persists it together
// with its bearer credential. A nil session clears both stores (logout).
// A non-nil session requires a non-empty credential.
func (s *Store) SetCurrent(sess *Session, credential string) error {
	if sess == nil {
		return s.Clear()
	}
	if credential == "" {
		return errors.New("[Store.SetCurrent] non-nil session requires a credential")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(sess); err != nil {
		return fmt.Errorf("[Store.SetCurrent] save session record: %w", err)
	}
	if err := s.creds.Save(&Credential{
		Token: oauth2.Token{
			AccessToken: credential,
			TokenType:   "Bearer",
			Expiry:      s.nowTime().Add(CredentialTTL),
		},
		RequireTLS: s.requireTLS,
	}); err != nil {
		return fmt.Errorf("[Store.SetCurrent] save credential: %w", err)
	}

	s.current = sess
	return nil
}

// Clear logs out: drops the in-memory session and wipes both stores.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.repo.Clear(); err != nil {
		return fmt.Errorf("[Store.Clear] clear session record: %w", err)
	}
	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("[Store.Clear] clear credential: %w", err)
	}
	return nil
}

// Restore adopts any previously persisted session on startup without
// re-validating against the server. Stale-but-optimistic: a later request
// returning 401 is the actual validation and clears everything. Expired or
// TLS-mismatched credentials are discarded immediately.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.Load()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("[Store.Restore] load session record: %w", err)
	}

	cred, err := s.creds.Load()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Record without credential is unusable; drop it.
			s.clearLocked()
			return nil
		}
		return fmt.Errorf("[Store.Restore] load credential: %w", err)
	}

	if !s.credentialUsable(cred) {
		s.clearLocked()
		return nil
	}

	s.current = sess
	return nil
}

// Credential implements transport.CredentialSource. It reads from the
// fast-access cache, not the session record, so the two targets stay
// independently sourced.
func (s *Store) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, err := s.creds.Load()
	if err != nil {
		return ""
	}
	if !s.credentialUsable(cred) {
		return ""
	}
	return cred.Token.AccessToken
}

// HandleUnauthorized is wired into the transport's 401 hook: any
// authorization failure from the server forces a full logout.
func (s *Store) HandleUnauthorized() {
	s.log.Warn().Msg("unauthorized response, clearing session")
	if err := s.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session after 401")
	}
}

func (s *Store) clearLocked() {
	s.current = nil
	if err := s.repo.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session record")
	}
	if err := s.creds.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear credential")
	}
}

func (s *Store) credentialUsable(cred *Credential) bool {
	if cred == nil || cred.Token.AccessToken == "" {
		return false
	}
	if cred.RequireTLS && !s.requireTLS {
		return false
	}
	now := s.nowTime()
	if !cred.Token.Expiry.IsZero() && cred.Token.Expiry.Before(now) {
		return false
	}
	// JWT credentials may expire sooner than the cache entry.
	if claims, err := CredentialClaims(cred.Token.AccessToken); err == nil {
		if !claims.Expiry.IsZero() && claims.Expiry.Before(now) {
			return false
		}
	}
	return true
}
