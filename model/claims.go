package model

import "github.com/golang-jwt/jwt/v5"

// SessionData is the nested metadata carried inside the access token.
// Timestamps are epoch milliseconds.
type SessionData struct {
	CreatedAt  int64 `json:"createdAt"`
	LastActive int64 `json:"lastActive"`
}

// AccessClaims is the payload of the signed access token. It exists only
// inside a token and is never persisted.
type AccessClaims struct {
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	SessionData SessionData `json:"sessionData"`
	jwt.RegisteredClaims
}
