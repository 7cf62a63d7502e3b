package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/raisefund/libraise-go/funding"
	"github.com/raisefund/libraise-go/token"
)

var bucketCampaigns = []byte("campaigns")

// BoltStore is a CampaignStore backed by a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCampaigns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Save stores or replaces the campaign's state.
func (s *BoltStore) Save(state *funding.State) error {
	if state == nil {
		return ErrNilState
	}
	data, err := EncodeState(state)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCampaigns).Put(state.Address[:], data)
	})
}

// Load retrieves a campaign's state by address.
func (s *BoltStore) Load(addr token.Address) (*funding.State, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketCampaigns).Get(addr[:])
		if v == nil {
			return ErrNotFound
		}
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return DecodeState(data)
}

// List returns the addresses of all stored campaigns in key order.
func (s *BoltStore) List() ([]token.Address, error) {
	var addrs []token.Address
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCampaigns).ForEach(func(k, v []byte) error {
			if len(k) != token.AddressSize {
				return fmt.Errorf("%w: key length %d", ErrCorrupt, len(k))
			}
			var addr token.Address
			copy(addr[:], k)
			addrs = append(addrs, addr)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// Delete removes a campaign from the store.
func (s *BoltStore) Delete(addr token.Address) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCampaigns).Delete(addr[:])
	})
}
