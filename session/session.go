package session

import "time"

// CredentialTTL is how long a persisted credential stays usable before the
// store refuses to restore it. Matches the backend's 1-day token lifetime.
const CredentialTTL = 24 * time.Hour

// Session is the authenticated identity displayed by the UI. It is a
// transient copy of the backend's user record; the bearer credential is
// held separately in the credential cache, never inside this struct.
type Session struct {
	UserID   int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}
