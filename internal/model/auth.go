package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Auth errors. ErrInvalidCredentials covers both unknown usernames and bad
// passwords so the failure message never reveals which factor was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// SessionClaims is the signed session state carried in the session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}
