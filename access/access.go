// Package access defines the authorization capability campaigns consult
// before issuer-only operations, plus a simple role registry.
package access

import (
	"sync"

	"github.com/raisefund/libraise-go/token"
)

// Role names a granted capability.
type Role string

// Issuer marks accounts allowed to drive a campaign's lifecycle.
const Issuer Role = "issuer"

// Controller is the authorization capability consumed by the core.
type Controller interface {
	// HasRole reports whether the account holds the role.
	HasRole(role Role, account token.Address) bool

	// IsOwner reports whether the account is the owner.
	IsOwner(account token.Address) bool
}

// Registry is an in-memory Controller with a fixed owner and grantable
// roles. The owner implicitly holds every role.
type Registry struct {
	mu    sync.RWMutex
	owner token.Address
	roles map[Role]map[token.Address]bool
}

// NewRegistry creates a registry owned by the given account.
func NewRegistry(owner token.Address) *Registry {
	return &Registry{
		owner: owner,
		roles: make(map[Role]map[token.Address]bool),
	}
}

// Grant gives the account the role.
func (r *Registry) Grant(role Role, account token.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.roles[role] == nil {
		r.roles[role] = make(map[token.Address]bool)
	}
	r.roles[role][account] = true
}

// Revoke removes the role from the account.
func (r *Registry) Revoke(role Role, account token.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles[role], account)
}

// HasRole reports whether the account holds the role or is the owner.
func (r *Registry) HasRole(role Role, account token.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if account == r.owner {
		return true
	}
	return r.roles[role][account]
}

// IsOwner reports whether the account is the owner.
func (r *Registry) IsOwner(account token.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return account == r.owner
}
