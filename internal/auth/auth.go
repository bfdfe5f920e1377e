// Package auth issues and verifies the session tokens behind the shared
// password gate. The cookie carries a signed token, not the bare role, so a
// tampered cookie fails verification instead of granting access.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie set on login.
const CookieName = "mvdti_session"

// SessionTTL — login is valid for 8 hours.
const SessionTTL = 8 * time.Hour

const (
	RoleTI    = "ti"
	RoleJefes = "jefes"
)

var (
	ErrBadCredentials = errors.New("invalid password")
	ErrInvalidSession = errors.New("invalid session")
)

type Sessions struct {
	secret    []byte
	passTI    string
	passJefes string
}

func NewSessions(secret, passTI, passJefes string) *Sessions {
	return &Sessions{secret: []byte(secret), passTI: passTI, passJefes: passJefes}
}

// Configured reports whether both role passwords and the signing secret are set.
func (s *Sessions) Configured() bool {
	return len(s.secret) > 0 && s.passTI != "" && s.passJefes != ""
}

// Login maps a submitted password to a role. Constant-time comparison; the
// two passwords are guaranteed distinct by config validation, so no password
// can yield both roles.
func (s *Sessions) Login(pass string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(pass), []byte(s.passTI)) == 1 {
		return RoleTI, nil
	}
	if subtle.ConstantTimeCompare([]byte(pass), []byte(s.passJefes)) == 1 {
		return RoleJefes, nil
	}
	return "", ErrBadCredentials
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a session token carrying the role, valid for SessionTTL.
func (s *Sessions) Issue(role string) (string, error) {
	if role != RoleTI && role != RoleJefes {
		return "", ErrInvalidSession
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	})
	return token.SignedString(s.secret)
}

// Verify checks the token signature and expiry and returns the role.
func (s *Sessions) Verify(tokenString string) (string, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}
	if c.Role != RoleTI && c.Role != RoleJefes {
		return "", ErrInvalidSession
	}
	return c.Role, nil
}
