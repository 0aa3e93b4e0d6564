package model

import (
	"errors"

	"github.com/google/uuid"
)

// Refresh token rejections. A presented revoked token also revokes every
// other refresh token of its user.
var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// TokenPair is what a session receives on register, sign in and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenManager signs and parses the bearer and refresh JWTs.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (token, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
}
