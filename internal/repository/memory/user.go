package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]model.User)}
}

func cloneUser(u model.User) model.User {
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	u.Salt = append([]byte(nil), u.Salt...)
	if u.DeletedAt != nil {
		d := *u.DeletedAt
		u.DeletedAt = &d
	}
	return u
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return model.User{}, model.ErrAlreadyExists
	}
	for _, u := range r.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, user.Email) {
			return model.User{}, model.ErrAlreadyExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}
