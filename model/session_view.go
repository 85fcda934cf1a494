package model

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SessionView is the externally visible result of a successful validation.
// ExpiresAt is epoch milliseconds: the access token's expiry on the fast
// path, the refresh record's expiry on the refresh path. RefreshToken is
// set only on the refresh path.
type SessionView struct {
	User         UserSummary `json:"user"`
	ExpiresAt    int64       `json:"expiresAt"`
	RefreshToken string      `json:"refreshToken,omitempty"`
}
