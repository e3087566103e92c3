package token

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set portal user role
type RoleType string

const (
	// RoleAdmin is the admin role
	RoleAdmin RoleType = "admin"
	// RoleStudent is the student role
	RoleStudent RoleType = "student"
	// RoleParent is the parent role
	RoleParent RoleType = "parent"
	// RoleTeacher is the teacher role
	RoleTeacher RoleType = "teacher"
)

// Claims structure for custom claims in JWT
// The login service mints these; this service only verifies them.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthError sentinels, surfaced as a rejected handshake or 401
var (
	// ErrNoToken no credential supplied
	ErrNoToken = errors.New("missing token")
	// ErrInvalidToken malformed, badly signed or expired credential
	ErrInvalidToken = errors.New("invalid token")
)

var (
	jwtSecret       = []byte("secure_secret_key")
	secretMu        sync.RWMutex
	tokenExpiration = 60 * time.Minute
)

// SetSecret set the shared signing secret, called once from main with the configured value
func SetSecret(secret string) {
	secretMu.Lock()
	defer secretMu.Unlock()
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

func secret() []byte {
	secretMu.RLock()
	defer secretMu.RUnlock()
	return jwtSecret
}

// GenerateJWT generates a JWT token
func GenerateJWT(userID, username, role, issuer string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ParseJWT parses a JWT and extracts the Claims
//
// This is the single verification routine: the connection handshake and the
// HTTP history/inbox guards both go through here so the two paths cannot
// drift apart.
func ParseJWT(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Check if the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret(), nil
	})

	if err != nil {
		// invalid signature, expired, malformed and so on
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
