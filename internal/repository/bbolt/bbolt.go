// Package bbolt provides BBolt-backed stores sharing one database file.
package bbolt

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

const (
	documentBucketPrefix = "doc:"
	usersBucket          = "auth:users"
	usersByEmailBucket   = "auth:users_by_email"
	refreshTokensBucket  = "auth:refresh_tokens"
)

// Open opens (creating if needed) the BBolt database at path.
func Open(path string, options *bbolt.Options) (*bbolt.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating bbolt directory: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("opening bbolt db: %w", err)
	}
	return db, nil
}

func documentBucket(collection string) []byte {
	return []byte(documentBucketPrefix + collection)
}
