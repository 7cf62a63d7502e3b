package authorize

import (
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raisefund/libraise-go/token"
)

func makeAddr(seed byte) token.Address {
	var a token.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func newPair(t *testing.T, campaign token.Address) (*Authorizer, *Verifier) {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	auth, err := NewAuthorizer(campaign, priv)
	require.NoError(t, err)
	ver, err := NewVerifier(campaign, priv.PubKey())
	require.NoError(t, err)
	return auth, ver
}

func TestIssueAndVerify(t *testing.T) {
	campaign := makeAddr(0xC0)
	auth, ver := newPair(t, campaign)

	grant, err := auth.Issue(makeAddr(0x01), uint256.NewInt(5000), 1)
	require.NoError(t, err)

	require.NoError(t, ver.Verify(grant))
	assert.True(t, ver.NonceUsed(1))
}

func TestVerify_Replay(t *testing.T) {
	auth, ver := newPair(t, makeAddr(0xC0))

	grant, err := auth.Issue(makeAddr(0x01), uint256.NewInt(5000), 7)
	require.NoError(t, err)

	require.NoError(t, ver.Verify(grant))
	assert.ErrorIs(t, ver.Verify(grant), ErrNonceUsed)
}

func TestVerify_TamperedGrant(t *testing.T) {
	auth, ver := newPair(t, makeAddr(0xC0))

	grant, err := auth.Issue(makeAddr(0x01), uint256.NewInt(5000), 1)
	require.NoError(t, err)

	grant.Amount = uint256.NewInt(9000)
	assert.ErrorIs(t, ver.Verify(grant), ErrBadSignature)
	// A failed verification does not burn the nonce.
	assert.False(t, ver.NonceUsed(1))

	grant, err = auth.Issue(makeAddr(0x01), uint256.NewInt(5000), 2)
	require.NoError(t, err)
	grant.Account = makeAddr(0x02)
	assert.ErrorIs(t, ver.Verify(grant), ErrBadSignature)
}

func TestVerify_WrongCampaign(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	auth, err := NewAuthorizer(makeAddr(0xC0), priv)
	require.NoError(t, err)
	ver, err := NewVerifier(makeAddr(0xC1), priv.PubKey())
	require.NoError(t, err)

	grant, err := auth.Issue(makeAddr(0x01), uint256.NewInt(5000), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, ver.Verify(grant), ErrBadSignature)
}

func TestVerify_WrongKey(t *testing.T) {
	auth, _ := newPair(t, makeAddr(0xC0))
	other, err := ec.NewPrivateKey()
	require.NoError(t, err)
	ver, err := NewVerifier(makeAddr(0xC0), other.PubKey())
	require.NoError(t, err)

	grant, err := auth.Issue(makeAddr(0x01), uint256.NewInt(5000), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, ver.Verify(grant), ErrBadSignature)
}

func TestVerify_NilInputs(t *testing.T) {
	_, ver := newPair(t, makeAddr(0xC0))

	assert.ErrorIs(t, ver.Verify(nil), ErrNilSignature)
	assert.ErrorIs(t, ver.Verify(&Grant{Account: makeAddr(0x01)}), ErrNilSignature)
}

func TestIssue_NilAmount(t *testing.T) {
	auth, _ := newPair(t, makeAddr(0xC0))
	_, err := auth.Issue(makeAddr(0x01), nil, 1)
	assert.ErrorIs(t, err, ErrNilAmount)
}

func TestConstructors_NilKey(t *testing.T) {
	_, err := NewAuthorizer(makeAddr(0xC0), nil)
	assert.ErrorIs(t, err, ErrNilKey)
	_, err = NewVerifier(makeAddr(0xC0), nil)
	assert.ErrorIs(t, err, ErrNilKey)
}

func TestNonceSequenceSharedAcrossAccounts(t *testing.T) {
	auth, ver := newPair(t, makeAddr(0xC0))

	// Nonces are a single sequence shared across accounts.
	g1, err := auth.Issue(makeAddr(0x01), uint256.NewInt(100), 1)
	require.NoError(t, err)
	g2, err := auth.Issue(makeAddr(0x02), uint256.NewInt(200), 1)
	require.NoError(t, err)

	require.NoError(t, ver.Verify(g1))
	assert.ErrorIs(t, ver.Verify(g2), ErrNonceUsed)
}
