package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "vrshop_session"

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 72 * time.Hour

var (
	mu           sync.RWMutex
	jwtSecretKey = []byte("dev-only-secret-change-me")
	sessionTTL   = DefaultSessionTTL
)

// Configure sets the signing secret and token lifetime. Called once at start-up.
func Configure(secret []byte, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if len(secret) > 0 {
		jwtSecretKey = secret
	}
	if ttl > 0 {
		sessionTTL = ttl
	}
}

// SessionTTL reports the configured token lifetime.
func SessionTTL() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return sessionTTL
}

// GenerateToken creates a signed session token for a user ID.
func GenerateToken(userID int64) (string, error) {
	mu.RLock()
	secret, ttl := jwtSecretKey, sessionTTL
	mu.RUnlock()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,              // "sub" (Subject) is the standard claim for User ID
		"exp": now.Add(ttl).Unix(), // Expiry
		"iat": now.Unix(),          // "iat" (Issued At)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string.
// It returns the user ID (subject) if the token is valid.
func ValidateToken(tokenString string) (int64, error) {
	mu.RLock()
	secret := jwtSecretKey
	mu.RUnlock()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Only accept the HMAC family we sign with.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return 0, err // expired, malformed, bad signature
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		// JSON numbers decode as float64.
		userIDFloat, ok := claims["sub"].(float64)
		if !ok {
			return 0, errors.New("invalid subject claim")
		}
		return int64(userIDFloat), nil
	}

	return 0, errors.New("invalid token")
}
