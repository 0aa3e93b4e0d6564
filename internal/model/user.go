package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user credentials.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents stored sign-in credentials. Profile data lives in the users document.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	Salt         []byte
	KDF          KDFParams
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// KDFParams are argon2id parameters stored with each password hash.
type KDFParams struct {
	Time   uint32 `json:"time"`
	MemKiB uint32 `json:"mem"`
	Par    uint8  `json:"par"`
}

// Credentials are the sign-in form values.
type Credentials struct {
	Email    string
	Password string
}

// Registration are the account creation form values.
type Registration struct {
	Name            string
	Email           string
	Address         string
	Password        string
	ReEnterPassword string
}
