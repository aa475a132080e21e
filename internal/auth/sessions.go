package auth

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/avasiliev/userbase/internal/config"
	"github.com/avasiliev/userbase/internal/entities"
)

// SessionKeyUserID is the session claim carrying the authenticated user id.
const SessionKeyUserID = "user_id"

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// sessions table in the given database. The table must already exist.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) *SessionManager {
	sm := scs.New()
	// Cleanup interval 0 disables the store's own goroutine; expired rows
	// are removed by the maintenance sweeper instead.
	sm.Store = sqlite3store.NewWithCleanupInterval(sqlDB, 0)

	lifetime := cfg.SessionLifetime
	if lifetime == 0 {
		lifetime = 24 * time.Hour
	}
	sm.Lifetime = lifetime

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// CreateSession marks the request's session as authenticated for the user.
// The token is renewed first to prevent session fixation.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	// Stored as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyUserID, int(user.ID))
	return nil
}

// DestroySession removes all session data and invalidates the session.
// Destroying an absent session is a no-op, which keeps logout idempotent.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// UserID retrieves the user id claim from the session.
// Returns 0 if the session is missing or carries no claim.
func (sm *SessionManager) UserID(r *http.Request) uint {
	return uint(sm.GetInt(r.Context(), SessionKeyUserID))
}

// IsAuthenticated returns true if the request has a valid session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.UserID(r) != 0
}
