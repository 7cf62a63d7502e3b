package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raisefund/libraise-go/token"
)

func makeAddr(seed byte) token.Address {
	var a token.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func TestOwnerHoldsEveryRole(t *testing.T) {
	owner := makeAddr(0x01)
	r := NewRegistry(owner)

	assert.True(t, r.IsOwner(owner))
	assert.True(t, r.HasRole(Issuer, owner))
	assert.True(t, r.HasRole(Role("auditor"), owner))
}

func TestGrantRevoke(t *testing.T) {
	owner, delegate := makeAddr(0x01), makeAddr(0x02)
	r := NewRegistry(owner)

	assert.False(t, r.HasRole(Issuer, delegate))

	r.Grant(Issuer, delegate)
	assert.True(t, r.HasRole(Issuer, delegate))
	assert.False(t, r.IsOwner(delegate))

	// A grant is scoped to its role.
	assert.False(t, r.HasRole(Role("auditor"), delegate))

	r.Revoke(Issuer, delegate)
	assert.False(t, r.HasRole(Issuer, delegate))
}

func TestRevoke_UnknownRole(t *testing.T) {
	r := NewRegistry(makeAddr(0x01))
	// Revoking a never-granted role is a no-op.
	r.Revoke(Issuer, makeAddr(0x02))
	assert.False(t, r.HasRole(Issuer, makeAddr(0x02)))
}
