package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJWT_Valid(t *testing.T) {
	tokenStr, err := GenerateJWT("user-1", "Alice", string(RoleStudent), "login-service")
	require.NoError(t, err)

	claims, err := ParseJWT(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Alice", claims.Username)
	assert.Equal(t, string(RoleStudent), claims.Role)
}

func TestParseJWT_Missing(t *testing.T) {
	claims, err := ParseJWT("")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestParseJWT_Garbage(t *testing.T) {
	claims, err := ParseJWT("not-a-jwt")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   "user-1",
		Username: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenStr, err := other.SignedString([]byte("some_other_secret"))
	require.NoError(t, err)

	claims, err := ParseJWT(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_Expired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   "user-1",
		Username: "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenStr, err := expired.SignedString(secret())
	require.NoError(t, err)

	claims, err := ParseJWT(tokenStr)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetSecret(t *testing.T) {
	defer SetSecret("secure_secret_key")

	SetSecret("rotated_secret")
	tokenStr, err := GenerateJWT("user-2", "Bob", string(RoleParent), "login-service")
	require.NoError(t, err)

	claims, err := ParseJWT(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.UserID)

	SetSecret("secure_secret_key")
	_, err = ParseJWT(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
