package service

import (
	"context"
	"go-session-api/logger"
	"go-session-api/repository"
	"time"
)

// SessionReaper periodically purges expired refresh records. Expired rows
// are already rejected by the refresh path, so the sweep changes no
// observable behavior; it only stops the table from accumulating.
type SessionReaper struct {
	sessions repository.ISessionRepository
	interval time.Duration
}

func NewSessionReaper(sessions repository.ISessionRepository, interval time.Duration) *SessionReaper {
	return &SessionReaper{sessions: sessions, interval: interval}
}

// Run sweeps on every tick until the context is canceled.
func (r *SessionReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.sessions.DeleteExpired(time.Now())
			if err != nil {
				logger.Log.WithError(err).Error("Session reap failed")
				continue
			}
			if n > 0 {
				logger.Log.WithField("deleted", n).Info("Reaped expired sessions")
			}
		}
	}
}
