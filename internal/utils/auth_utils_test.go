package utils

import (
	"testing"
	"time"

	"collabboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtTokenRoundTrip(t *testing.T) {
	key := []byte("unit-test-secret")
	id := uuid.New()

	token, err := CreateJwtToken(id, "a@b.co", "a", key, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := VerifyToken(token, key)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	key := []byte("unit-test-secret")

	token, err := CreateJwtToken(uuid.New(), "a@b.co", "a", key, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = VerifyToken(token, key)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	token, err := CreateJwtToken(uuid.New(), "a@b.co", "a", []byte("key-one"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("key-two"))
	assert.Error(t, err)
}

func TestVerifyTokenOnlyAcceptsHS256(t *testing.T) {
	key := []byte("unit-test-secret")

	// Same claims, same key, different HMAC variant: must not verify.
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, models.Claims{
		ID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)

	_, err = VerifyToken(signed, key)
	assert.Error(t, err)

	// An unsigned token must never pass either.
	none := jwt.NewWithClaims(jwt.SigningMethodNone, models.Claims{
		ID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken(unsigned, key)
	assert.Error(t, err)
}
