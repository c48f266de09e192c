// Package filerepo persists the session record and credential cache as
// JSON files under the console's data directory. The two files are the
// console's counterparts of the browser's sr_user storage record and
// sr_token cookie.
package filerepo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stackradar/console/session"
)

const (
	sessionFileName    = "sr_user.json"
	credentialFileName = "sr_token.json"

	filePerm = 0o600
	dirPerm  = 0o700
)

// SessionRepo stores the durable session record.
type SessionRepo struct {
	path string
}

var _ session.Repo = (*SessionRepo)(nil)

// NewSessionRepo creates a durable session record store under dataDir.
func NewSessionRepo(dataDir string) (*SessionRepo, error) {
	if err := os.MkdirAll(dataDir, dirPerm); err != nil {
		return nil, fmt.Errorf("[NewSessionRepo] create data dir: %w", err)
	}
	return &SessionRepo{path: filepath.Join(dataDir, sessionFileName)}, nil
}

func (r *SessionRepo) Save(s *session.Session) error {
	return writeJSONFile(r.path, s)
}

func (r *SessionRepo) Load() (*session.Session, error) {
	var s session.Session
	if err := readJSONFile(r.path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) Clear() error {
	return removeFile(r.path)
}

// CredentialRepo stores the fast-access credential cache.
type CredentialRepo struct {
	path string
}

var _ session.CredentialRepo = (*CredentialRepo)(nil)

// NewCredentialRepo creates a credential cache under dataDir.
func NewCredentialRepo(dataDir string) (*CredentialRepo, error) {
	if err := os.MkdirAll(dataDir, dirPerm); err != nil {
		return nil, fmt.Errorf("[NewCredentialRepo] create data dir: %w", err)
	}
	return &CredentialRepo{path: filepath.Join(dataDir, credentialFileName)}, nil
}

func (r *CredentialRepo) Save(c *session.Credential) error {
	return writeJSONFile(r.path, c)
}

func (r *CredentialRepo) Load() (*session.Credential, error) {
	var c session.Credential
	if err := readJSONFile(r.path, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CredentialRepo) Clear() error {
	return removeFile(r.path)
}

func writeJSONFile(path string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("[filerepo] marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, payload, filePerm); err != nil {
		return fmt.Errorf("[filerepo] write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSONFile(path string, v any) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return session.ErrNotFound
		}
		return fmt.Errorf("[filerepo] read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("[filerepo] unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("[filerepo] remove %s: %w", filepath.Base(path), err)
	}
	return nil
}
