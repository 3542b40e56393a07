package invite

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/dropforge/libdrop-go/merkle"
)

var bucketInvites = []byte("invites")

// BoltStore persists invites in bbolt, keyed by list key, using the
// binary codec. A collection configured with one reloads its invites at
// construction and writes through on every update. Sold counters are
// runtime state and are not persisted.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath. The
// parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("invite: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("invite: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketInvites)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("invite: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Put stores or overwrites the invite under key.
func (s *BoltStore) Put(key Key, inv *Invite) error {
	data, err := SerializeInvite(inv)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketInvites).Put(key[:], data)
	})
}

// Get returns the invite persisted under key.
func (s *BoltStore) Get(key Key) (*Invite, error) {
	var inv *Invite
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketInvites).Get(key[:])
		if v == nil {
			return fmt.Errorf("%w: key %x", ErrInviteNotFound, key)
		}
		var err error
		inv, err = DeserializeInvite(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Load returns every persisted invite, keyed by list key.
func (s *BoltStore) Load() (map[Key]Invite, error) {
	out := make(map[Key]Invite)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketInvites).ForEach(func(k, v []byte) error {
			if len(k) != merkle.RootSize {
				return fmt.Errorf("%w: key %x", ErrInvalidInviteData, k)
			}
			var key Key
			copy(key[:], k)
			inv, err := DeserializeInvite(v)
			if err != nil {
				return err
			}
			out[key] = *inv
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
