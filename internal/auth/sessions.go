package auth

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"

	"blog/internal/models"
)

const (
	SessionTTL    = 24 * time.Hour
	SessionCookie = "session_id"
)

// SessionManager tracks which user, if any, a request belongs to. Sessions
// are rows in sqlite so a restart does not log everyone out.
type SessionManager struct {
	db *sql.DB
}

func NewSessionManager(db *sql.DB) *SessionManager {
	return &SessionManager{db: db}
}

// Login revokes the user's existing sessions and issues a new one.
func (m *SessionManager) Login(userID int) (string, time.Time, error) {
	sid := uuid.NewString()
	expires := time.Now().Add(SessionTTL)
	_, err := m.db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return "", time.Time{}, err
	}
	_, err = m.db.Exec(`INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`, sid, userID, expires)
	if err != nil {
		return "", time.Time{}, err
	}
	return sid, expires, nil
}

// Logout revokes the session with the given id.
func (m *SessionManager) Logout(sid string) error {
	_, err := m.db.Exec(`UPDATE sessions SET revoked_at = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return err
}

// CurrentUser resolves the session cookie on r to a user. A missing cookie,
// an unknown, revoked, or expired session, and a user row that no longer
// exists all come back as anonymous (nil), never as an error.
func (m *SessionManager) CurrentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}
	sess, err := m.getSession(cookie.Value)
	if err != nil || sess.RevokedAt != nil || sess.ExpiresAt.Before(time.Now()) {
		return nil
	}
	row := m.db.QueryRow(`SELECT id, email, name, password_hash, role, created_at FROM users WHERE id = ?`, sess.UserID)
	user, err := scanUser(row)
	if err != nil {
		return nil
	}
	return user
}

func (m *SessionManager) getSession(id string) (*models.Session, error) {
	row := m.db.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	var s models.Session
	var revoked sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked); err != nil {
		return nil, err
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}
