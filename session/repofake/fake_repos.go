package repofake

import (
	"sync"

	"github.com/stackradar/console/session"
)

var _ session.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory session record store for tests.
type FakeSessionRepo struct {
	mu      sync.RWMutex
	session *session.Session

	SaveErr  error
	ClearErr error
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

func (r *FakeSessionRepo) Save(s *session.Session) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.session = &copied
	return nil
}

func (r *FakeSessionRepo) Load() (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return nil, session.ErrNotFound
	}
	copied := *r.session
	return &copied, nil
}

func (r *FakeSessionRepo) Clear() error {
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

var _ session.CredentialRepo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo is an in-memory credential cache for tests.
type FakeCredentialRepo struct {
	mu         sync.RWMutex
	credential *session.Credential

	SaveErr  error
	ClearErr error
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{}
}

func (r *FakeCredentialRepo) Save(c *session.Credential) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *c
	r.credential = &copied
	return nil
}

func (r *FakeCredentialRepo) Load() (*session.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.credential == nil {
		return nil, session.ErrNotFound
	}
	copied := *r.credential
	return &copied, nil
}

func (r *FakeCredentialRepo) Clear() error {
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credential = nil
	return nil
}
