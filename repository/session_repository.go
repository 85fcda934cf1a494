// file: repository/session_repository.go

package repository

import (
	"database/sql"
	"errors"
	"go-session-api/logger"
	"go-session-api/model"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateToken is returned when the unique constraint on
// sessions.refresh_token rejects an insert. Practically unreachable with
// 128-bit random tokens, but it must surface rather than be swallowed.
var ErrDuplicateToken = errors.New("refresh token already exists")

// ISessionRepository defines the contract for refresh record database operations.
type ISessionRepository interface {
	Create(session *model.Session) error
	GetByRefreshToken(token string) (*model.SessionWithUser, error)
	DeleteByRefreshToken(token string) error
	RotateRefreshToken(oldToken, newToken string) error
	DeleteExpired(now time.Time) (int64, error)
}

// SessionRepository implements ISessionRepository.
type SessionRepository struct {
	DB *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Create inserts a new refresh record.
func (r *SessionRepository) Create(session *model.Session) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	})
	log.Info("Executing query to create a new session")

	query := `INSERT INTO sessions (id, user_id, refresh_token, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.DB.Exec(query, session.ID, session.UserID, session.RefreshToken, session.ExpiresAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateToken
		}
		log.WithError(err).Error("Failed to execute create session query")
		return err
	}
	return nil
}

// GetByRefreshToken retrieves a refresh record by its opaque token, joined
// with the owning user's current profile fields so the caller can mint
// fresh claims without a second round trip.
func (r *SessionRepository) GetByRefreshToken(token string) (*model.SessionWithUser, error) {
	session := &model.SessionWithUser{}
	query := `SELECT s.id, s.user_id, s.refresh_token, s.expires_at, u.email, u.name, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.refresh_token = $1`
	err := r.DB.QueryRow(query, token).Scan(
		&session.ID, &session.UserID, &session.RefreshToken, &session.ExpiresAt,
		&session.Email, &session.Name, &session.Role,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get session by refresh token query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	return session, nil
}

// DeleteByRefreshToken deletes the refresh record holding the given token.
// Idempotent: deleting a non-existent token is not an error.
func (r *SessionRepository) DeleteByRefreshToken(token string) error {
	query := `DELETE FROM sessions WHERE refresh_token = $1`
	_, err := r.DB.Exec(query, token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete session query")
		return err
	}
	return nil
}

// RotateRefreshToken swaps the opaque token in place, keeping the record's
// expiry. The old value stops resolving as soon as the update commits.
func (r *SessionRepository) RotateRefreshToken(oldToken, newToken string) error {
	query := `UPDATE sessions SET refresh_token = $1 WHERE refresh_token = $2`
	res, err := r.DB.Exec(query, newToken, oldToken)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute rotate refresh token query")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteExpired purges refresh records whose expiry is in the past and
// reports how many rows were removed.
func (r *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete expired sessions query")
		return 0, err
	}
	return res.RowsAffected()
}
