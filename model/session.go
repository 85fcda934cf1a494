// file: model/session.go

package model

import "time"

// Session is a refresh record: one row per login event. The opaque
// RefreshToken is the only long-lived credential and lives nowhere else.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"` // never exposed in JSON responses
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionWithUser is a Session joined with the owning user's current
// profile fields, so a refresh can mint fresh claims in one round trip.
type SessionWithUser struct {
	Session
	Email string
	Name  string
	Role  string
}
