// file: service/session_manager.go

package service

import (
	"database/sql"
	"go-session-api/logger"
	"go-session-api/model"
	"go-session-api/repository"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// SessionCookie carries the short-lived signed access token.
	SessionCookie = "auth_session"
	// RefreshCookie carries the long-lived opaque refresh token.
	RefreshCookie = "refresh_token"

	// RefreshTokenTTL is the lifetime of a refresh record.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// SessionManager orchestrates the session lifecycle: Unauthenticated →
// Active (valid access token) → Stale (access expired, refresh valid) →
// Unauthenticated (refresh expired/absent/revoked).
type SessionManager struct {
	sessions      repository.ISessionRepository
	codec         *TokenCodec
	secureCookies bool
	rotateRefresh bool
}

// NewSessionManager creates a new SessionManager. secureCookies should be
// true in production; rotateRefresh enables opt-in rotation of the opaque
// token on every refresh.
func NewSessionManager(sessions repository.ISessionRepository, codec *TokenCodec, secureCookies, rotateRefresh bool) *SessionManager {
	return &SessionManager{
		sessions:      sessions,
		codec:         codec,
		secureCookies: secureCookies,
		rotateRefresh: rotateRefresh,
	}
}

// Codec exposes the verification primitive for the request-path gate,
// which must stay I/O-free.
func (m *SessionManager) Codec() *TokenCodec {
	return m.codec
}

// Create establishes a new session: one refresh record insert plus two
// cookies. A store failure is fatal to the request — no session is
// established.
func (m *SessionManager) Create(w http.ResponseWriter, user model.UserSummary) error {
	logger.Log.WithField("user_id", user.ID).Info("Creating session")

	refreshToken := uuid.NewString()
	session := &model.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(RefreshTokenTTL),
	}
	if err := m.sessions.Create(session); err != nil {
		return err
	}

	now := time.Now().UnixMilli()
	token, _, err := m.codec.Sign(user, model.SessionData{CreatedAt: now, LastActive: now})
	if err != nil {
		return err
	}

	m.setAccessCookie(w, token)
	m.setRefreshCookie(w, refreshToken, int(RefreshTokenTTL/time.Second))
	return nil
}

// Validate reads both credentials from the request. No refresh cookie means
// no session. A verifying access token answers from claims alone, without
// store I/O. Otherwise it falls through to the refresh path.
func (m *SessionManager) Validate(w http.ResponseWriter, r *http.Request) *model.SessionView {
	refreshToken := cookieValue(r, RefreshCookie)
	if refreshToken == "" {
		return nil
	}

	if token := cookieValue(r, SessionCookie); token != "" {
		if claims, ok := m.codec.Verify(token); ok {
			return &model.SessionView{
				User: model.UserSummary{
					ID:    claims.Subject,
					Email: claims.Email,
					Name:  claims.Name,
					Role:  claims.Role,
				},
				ExpiresAt: claims.ExpiresAt.UnixMilli(),
			}
		}
	}

	return m.Refresh(w, refreshToken)
}

// Refresh exchanges a valid refresh token for a new access token. Any
// failure — unknown token, expired record, store error — clears both
// cookies and reports no session. Fail closed, never open.
func (m *SessionManager) Refresh(w http.ResponseWriter, refreshToken string) *model.SessionView {
	session, err := m.sessions.GetByRefreshToken(refreshToken)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Session lookup failed during refresh")
		}
		m.clearCookies(w)
		return nil
	}
	if !session.ExpiresAt.After(time.Now()) {
		logger.Log.WithField("user_id", session.UserID).Info("Refresh token expired")
		m.clearCookies(w)
		return nil
	}

	user := model.UserSummary{
		ID:    session.UserID,
		Email: session.Email,
		Name:  session.Name,
		Role:  session.Role,
	}

	currentToken := refreshToken
	if m.rotateRefresh {
		rotated := uuid.NewString()
		if err := m.sessions.RotateRefreshToken(refreshToken, rotated); err != nil {
			logger.Log.WithError(err).Error("Refresh token rotation failed")
			m.clearCookies(w)
			return nil
		}
		currentToken = rotated
		m.setRefreshCookie(w, rotated, int(time.Until(session.ExpiresAt)/time.Second))
	}

	now := time.Now().UnixMilli()
	token, _, err := m.codec.Sign(user, model.SessionData{CreatedAt: now, LastActive: now})
	if err != nil {
		m.clearCookies(w)
		return nil
	}
	m.setAccessCookie(w, token)

	logger.Log.WithField("user_id", user.ID).Info("Session refreshed")
	return &model.SessionView{
		User:         user,
		ExpiresAt:    session.ExpiresAt.UnixMilli(),
		RefreshToken: currentToken,
	}
}

// Destroy deletes the refresh record named by the cookie, if any, and
// clears both cookies unconditionally. Idempotent: a missing cookie or an
// already-deleted record is not an error.
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) {
	if refreshToken := cookieValue(r, RefreshCookie); refreshToken != "" {
		if err := m.sessions.DeleteByRefreshToken(refreshToken); err != nil {
			logger.Log.WithError(err).Error("Failed to delete session during logout")
		}
	}
	m.clearCookies(w)
}

func (m *SessionManager) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(AccessTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) setRefreshCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionManager) clearCookies(w http.ResponseWriter) {
	for _, name := range []string{SessionCookie, RefreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
