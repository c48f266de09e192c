// Package archive drives the admin-only two-step archival flow: a
// read-only preview, a confirmation gate, then execution. History is a
// read-only log.
package archive

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stackradar/console/radar"
)

var (
	// ErrAdminRequired rejects archive operations for non-admin sessions
	// before any request is sent.
	ErrAdminRequired = errors.New("archive requires an admin session")

	// ErrPreviewRequired rejects execution when no preview has happened in
	// the current dialog session.
	ErrPreviewRequired = errors.New("preview required before execute")

	// ErrNothingToArchive rejects execution when the preview found no
	// inactive projects.
	ErrNothingToArchive = errors.New("preview found no projects to archive")

	// ErrInvalidThreshold rejects non-positive inactivity thresholds.
	ErrInvalidThreshold = errors.New("inactive days threshold must be positive")
)

// API is the backend surface the manager needs.
type API interface {
	PreviewArchive(ctx context.Context, inactiveDays int) (*radar.ArchivePreview, error)
	ExecuteArchive(ctx context.Context, inactiveDays int) (*radar.ArchiveResult, error)
	ArchiveHistory(ctx context.Context, limit int) ([]radar.ArchiveHistoryEntry, error)
}

// Authorizer answers whether the current session may archive.
type Authorizer interface {
	IsAdmin() bool
}

// Manager enforces the preview-confirm-execute gate. Execute is only
// possible after a preview with a non-zero count in the same dialog
// session, and always with the previewed threshold.
type Manager struct {
	mu          sync.Mutex
	api         API
	authz       Authorizer
	log         zerolog.Logger
	previewed   bool
	previewDays int
	count       int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates an archive manager.
func NewManager(api API, authz Authorizer, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[NewManager] api is required")
	}
	if authz == nil {
		return nil, errors.New("[NewManager] authorizer is required")
	}
	m := &Manager{api: api, authz: authz, log: zerolog.Nop()}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Preview runs the read-only, idempotent dry run and arms the execute
// gate with its result.
func (m *Manager) Preview(ctx context.Context, inactiveDays int) (*radar.ArchivePreview, error) {
	if !m.authz.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if inactiveDays <= 0 {
		return nil, ErrInvalidThreshold
	}

	preview, err := m.api.PreviewArchive(ctx, inactiveDays)
	if err != nil {
		return nil, fmt.Errorf("[Manager.Preview]: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.previewed = true
	m.previewDays = inactiveDays
	m.count = preview.Count
	return preview, nil
}

// CanExecute reports whether the gate is armed: a preview ran in this
// dialog session and found at least one project.
func (m *Manager) CanExecute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.previewed && m.count > 0
}

// Execute performs the archival with the previewed threshold. Without a
// prior preview, or with a zero preview count, no request is sent. A
// successful execution disarms the gate; the next run needs a new preview.
func (m *Manager) Execute(ctx context.Context) (*radar.ArchiveResult, error) {
	if !m.authz.IsAdmin() {
		return nil, ErrAdminRequired
	}

	m.mu.Lock()
	if !m.previewed {
		m.mu.Unlock()
		return nil, ErrPreviewRequired
	}
	if m.count == 0 {
		m.mu.Unlock()
		return nil, ErrNothingToArchive
	}
	days := m.previewDays
	m.mu.Unlock()

	result, err := m.api.ExecuteArchive(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("[Manager.Execute]: %w", err)
	}

	m.log.Info().Int("count", result.Count).Int("inactive_days", days).Msg("archive executed")

	m.mu.Lock()
	defer m.mu.Unlock()
	m.previewed = false
	m.count = 0
	return result, nil
}

// Reset disarms the gate when the dialog closes.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.previewed = false
	m.previewDays = 0
	m.count = 0
}

// History loads the most recent archival runs, newest first.
func (m *Manager) History(ctx context.Context, limit int) ([]radar.ArchiveHistoryEntry, error) {
	if !m.authz.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if limit <= 0 {
		limit = 10
	}
	history, err := m.api.ArchiveHistory(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("[Manager.History]: %w", err)
	}
	return history, nil
}
