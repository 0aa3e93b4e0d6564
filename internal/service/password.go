package service

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/storefront-server/internal/model"
)

const (
	passwordSaltLen = 16
	passwordKeyLen  = 32
	minPasswordLen  = 6
)

func hashPassword(password string, params model.KDFParams) (hash, salt []byte, err error) {
	salt = make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return deriveKey(password, salt, params), salt, nil
}

func verifyPassword(password string, salt []byte, params model.KDFParams, expected []byte) bool {
	return subtle.ConstantTimeCompare(deriveKey(password, salt, params), expected) == 1
}

func deriveKey(password string, salt []byte, params model.KDFParams) []byte {
	return argon2.IDKey([]byte(password), salt, params.Time, params.MemKiB, params.Par, passwordKeyLen)
}
