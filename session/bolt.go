package session

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

const (
	bucketName      = "session"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
)

// BoltStore is the durable Store implementation, backed by a bbolt file in
// the user's data directory. The three session keys are stored
// independently, so refreshing the access token does not rewrite the
// profile; Clear removes all three in one write transaction.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore returns a store backed by the given bbolt database.
func NewBoltStore(db *bbolt.DB) *BoltStore {
	return &BoltStore{db: db}
}

// NewBoltStoreFromFile opens (or creates) a bbolt database at path and
// returns a store backed by it.
func NewBoltStoreFromFile(path string, options *bbolt.Options) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}
	return NewBoltStore(db), nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Read() Session {
	var out Session
	_ = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		out.AccessToken = string(b.Get([]byte(keyAccessToken)))
		out.RefreshToken = string(b.Get([]byte(keyRefreshToken)))
		if raw := b.Get([]byte(keyUser)); raw != nil {
			var profile UserProfile
			if err := json.Unmarshal(raw, &profile); err == nil {
				out.User = &profile
			}
			// Corrupt profile data reads as absent rather than failing.
		}
		return nil
	})
	if out.AccessToken == "" {
		// Invariant: no profile without an access token.
		out.User = nil
	}
	return out
}

func (s *BoltStore) Write(u Update) {
	_ = s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if u.AccessToken != nil {
			if err := putOrDelete(b, keyAccessToken, []byte(*u.AccessToken), *u.AccessToken == ""); err != nil {
				return err
			}
		}
		if u.RefreshToken != nil {
			if err := putOrDelete(b, keyRefreshToken, []byte(*u.RefreshToken), *u.RefreshToken == ""); err != nil {
				return err
			}
		}
		if u.User != nil {
			raw, err := json.Marshal(u.User)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(keyUser), raw); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Clear() {
	_ = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		for _, key := range []string{keyAccessToken, keyRefreshToken, keyUser} {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func putOrDelete(b *bbolt.Bucket, key string, value []byte, empty bool) error {
	if empty {
		return b.Delete([]byte(key))
	}
	return b.Put([]byte(key), value)
}
