package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// CookieName is the session cookie the guard middleware reads.
const CookieName = "clinic_session"

var ErrInvalidSession = errors.New("invalid session")

// SessionManager mints and verifies the signed session state carried by the
// client. The token is the only session storage; nothing is kept server-side.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed session token for an authenticated admin.
func (m *SessionManager) Issue(username string) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username: username,
		Admin:    true,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token. Any failure, including an
// expired or tampered token, comes back as ErrInvalidSession.
func (m *SessionManager) Verify(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid || !claims.Admin {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// TTL reports the configured session lifetime, used to set cookie expiry.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
