// Package identity resolves the acting user for each request. Credential
// verification and session issuance belong to an external login flow; this
// package only binds and reads the resulting identity, via API bearer tokens
// or a cookie session.
package identity

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/shelfshare/shelfshare/internal/config"
)

// SessionKeyUserID is the session data key holding the bound user id.
const SessionKeyUserID = "user_id"

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the main
// SQLite database. The sqlDB parameter should be the underlying *sql.DB from
// GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Identity) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// Bind attaches a user id to the request's session. The external login flow
// calls this after it has verified credentials. The token is renewed to
// prevent session fixation.
func (sm *SessionManager) Bind(r *http.Request, userID uint) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	// Stored as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyUserID, int(userID))
	return nil
}

// Clear removes all session data and invalidates the session.
func (sm *SessionManager) Clear(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// UserID retrieves the bound user id from the session. Returns 0 when the
// request carries no valid session.
func (sm *SessionManager) UserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}
