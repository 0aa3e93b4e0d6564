package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository stores users by id with a lower-cased email index.
type UserRepository struct {
	db *bbolt.DB
}

func NewUserRepository(db *bbolt.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		idx := tx.Bucket([]byte(usersByEmailBucket))
		if idx == nil {
			return model.ErrNotFound
		}
		id := idx.Get([]byte(strings.ToLower(email)))
		if id == nil {
			return model.ErrNotFound
		}
		var err error
		user, err = getUser(tx, id)
		return err
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		user, err = getUser(tx, []byte(id.String()))
		return err
	})
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		users, err := tx.CreateBucketIfNotExists([]byte(usersBucket))
		if err != nil {
			return err
		}
		idx, err := tx.CreateBucketIfNotExists([]byte(usersByEmailBucket))
		if err != nil {
			return err
		}

		key := []byte(user.ID.String())
		email := []byte(strings.ToLower(user.Email))
		if users.Get(key) != nil || idx.Get(email) != nil {
			return model.ErrAlreadyExists
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := users.Put(key, data); err != nil {
			return err
		}
		return idx.Put(email, key)
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func getUser(tx *bbolt.Tx, id []byte) (model.User, error) {
	b := tx.Bucket([]byte(usersBucket))
	if b == nil {
		return model.User{}, model.ErrNotFound
	}
	data := b.Get(id)
	if data == nil {
		return model.User{}, model.ErrNotFound
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return model.User{}, fmt.Errorf("decoding user: %w", err)
	}
	if user.DeletedAt != nil {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}
