// Package store persists campaign state so a process restart does not lose
// balances, lifecycle status, or claimed recoupment leaves.
package store

import (
	"bytes"
	"errors"
	"sort"
	"sync"

	"github.com/raisefund/libraise-go/funding"
	"github.com/raisefund/libraise-go/token"
)

var (
	// ErrNotFound indicates no campaign is stored under the address.
	ErrNotFound = errors.New("store: campaign not found")

	// ErrNilState indicates a nil state was passed to Save.
	ErrNilState = errors.New("store: nil state")

	// ErrCorrupt indicates stored bytes that do not decode.
	ErrCorrupt = errors.New("store: corrupt record")
)

// CampaignStore persists campaign snapshots keyed by campaign address.
type CampaignStore interface {
	// Save stores or replaces the campaign's state.
	Save(state *funding.State) error

	// Load retrieves a campaign's state by address.
	Load(addr token.Address) (*funding.State, error)

	// List returns the addresses of all stored campaigns.
	List() ([]token.Address, error)

	// Delete removes a campaign from the store.
	Delete(addr token.Address) error
}

// MemStore is an in-memory CampaignStore for testing.
type MemStore struct {
	mu     sync.RWMutex
	states map[token.Address][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{states: make(map[token.Address][]byte)}
}

// Save stores or replaces the campaign's state.
func (s *MemStore) Save(state *funding.State) error {
	if state == nil {
		return ErrNilState
	}
	data, err := EncodeState(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.Address] = data
	return nil
}

// Load retrieves a campaign's state by address.
func (s *MemStore) Load(addr token.Address) (*funding.State, error) {
	s.mu.RLock()
	data, ok := s.states[addr]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return DecodeState(data)
}

// List returns the addresses of all stored campaigns, sorted.
func (s *MemStore) List() ([]token.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	addrs := make([]token.Address, 0, len(s.states))
	for addr := range s.states {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs, nil
}

// Delete removes a campaign from the store.
func (s *MemStore) Delete(addr token.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, addr)
	return nil
}
