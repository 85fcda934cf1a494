package service

import (
	"fmt"
	"go-session-api/logger"
	"go-session-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is deliberately short: it forces frequent silent refresh
// and bounds the damage of a leaked access token to seconds.
const AccessTokenTTL = 20 * time.Second

// TokenCodec signs and verifies access tokens. The key is injected once at
// construction and never changes afterwards.
type TokenCodec struct {
	key []byte
	ttl time.Duration
}

func NewTokenCodec(secretKey string) *TokenCodec {
	return &TokenCodec{key: []byte(secretKey), ttl: AccessTokenTTL}
}

// Sign serializes the claims, stamps issued-at and the fixed short expiry,
// and signs with HS256.
func (c *TokenCodec) Sign(user model.UserSummary, data model.SessionData) (string, *model.AccessClaims, error) {
	now := time.Now()
	claims := &model.AccessClaims{
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		SessionData: data,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.key)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID).Error("Failed to sign access token")
		return "", nil, fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, claims, nil
}

// Verify recomputes the signature and checks algorithm and expiry. Every
// failure mode collapses to ok=false: callers must not be able to
// distinguish a forged token from an expired one.
func (c *TokenCodec) Verify(tokenString string) (*model.AccessClaims, bool) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// A token without an expiry is never valid, no matter who signed it.
		jwt.WithExpirationRequired(),
	)

	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}
