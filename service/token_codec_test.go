// file: service/token_codec_test.go

package service

import (
	"go-session-api/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = model.UserSummary{
	ID:    "u-1",
	Email: "ann@x.com",
	Name:  "Ann",
	Role:  "user",
}

func TestTokenCodec_SignVerifyRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	data := model.SessionData{CreatedAt: time.Now().UnixMilli(), LastActive: time.Now().UnixMilli()}

	token, signed, err := codec.Sign(testUser, data)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, ok := codec.Verify(token)
	require.True(t, ok)
	assert.Equal(t, testUser.ID, claims.Subject)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, testUser.Name, claims.Name)
	assert.Equal(t, testUser.Role, claims.Role)
	assert.Equal(t, data, claims.SessionData)
	assert.Equal(t, signed.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenCodec_VerifyRejectsExpired(t *testing.T) {
	codec := &TokenCodec{key: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := codec.Sign(testUser, model.SessionData{})
	require.NoError(t, err)

	_, ok := codec.Verify(token)
	assert.False(t, ok)
}

func TestTokenCodec_VerifyRejectsWrongKey(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	other := NewTokenCodec("another-secret")

	token, _, err := other.Sign(testUser, model.SessionData{})
	require.NoError(t, err)

	_, ok := codec.Verify(token)
	assert.False(t, ok)
}

func TestTokenCodec_VerifyRejectsWrongAlgorithm(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	// Same key, different signing method: must not pass verification.
	claims := &model.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testUser.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := codec.Verify(token)
	assert.False(t, ok)
}

func TestTokenCodec_VerifyRejectsMissingExpiry(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	// Correct key, but no exp claim at all: still invalid.
	claims := &model.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: testUser.ID},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := codec.Verify(token)
	assert.False(t, ok)
}

func TestTokenCodec_VerifyRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, ok := codec.Verify(input)
		assert.False(t, ok, "input %q should not verify", input)
	}
}

func TestTokenCodec_TokenLifetimeIsShort(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	_, claims, err := codec.Sign(testUser, model.SessionData{})
	require.NoError(t, err)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, AccessTokenTTL, lifetime)
}
