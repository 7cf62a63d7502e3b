package store

import (
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raisefund/libraise-go/access"
	"github.com/raisefund/libraise-go/asset"
	"github.com/raisefund/libraise-go/funding"
	"github.com/raisefund/libraise-go/merkle"
	"github.com/raisefund/libraise-go/recoupment"
	"github.com/raisefund/libraise-go/token"
)

func makeAddr(seed byte) token.Address {
	var a token.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func makeHash(seed byte) merkle.Hash {
	var h merkle.Hash
	for i := range h {
		h[i] = seed
	}
	return h
}

func sampleState(addr token.Address) *funding.State {
	return &funding.State{
		Name:              "Film Fund",
		Symbol:            "FF",
		Address:           addr,
		Price:             uint256.NewInt(120000),
		ReturnBasisPoints: 1000,
		Status:            funding.Closed,
		TotalRaised:       uint256.NewInt(5000),
		Balances: []token.Entry{
			{Address: makeAddr(0x01), Amount: uint256.NewInt(4166666)},
			{Address: makeAddr(0x02), Amount: uint256.NewInt(833333)},
		},
		Rounds: []recoupment.RoundState{
			{
				Root:      makeHash(0xAA),
				Deposited: uint256.NewInt(5500),
				Claimed:   []merkle.Hash{makeHash(0xBB), makeHash(0xCC)},
			},
			{
				Root:      makeHash(0xDD),
				Deposited: uint256.NewInt(100),
			},
		},
	}
}

func assertStatesEqual(t *testing.T, want, got *funding.State) {
	t.Helper()
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.Address, got.Address)
	assert.Equal(t, want.Price, got.Price)
	assert.Equal(t, want.ReturnBasisPoints, got.ReturnBasisPoints)
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.TotalRaised, got.TotalRaised)
	assert.Equal(t, want.Balances, got.Balances)
	require.Len(t, got.Rounds, len(want.Rounds))
	for i := range want.Rounds {
		assert.Equal(t, want.Rounds[i].Root, got.Rounds[i].Root)
		assert.Equal(t, want.Rounds[i].Deposited, got.Rounds[i].Deposited)
		assert.ElementsMatch(t, want.Rounds[i].Claimed, got.Rounds[i].Claimed)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	state := sampleState(makeAddr(0xC0))

	data, err := EncodeState(state)
	require.NoError(t, err)

	decoded, err := DecodeState(data)
	require.NoError(t, err)
	assertStatesEqual(t, state, decoded)
}

func TestCodecRoundTrip_Minimal(t *testing.T) {
	state := &funding.State{
		Name:    "x",
		Symbol:  "X",
		Address: makeAddr(0xC0),
		Price:   uint256.NewInt(1),
		Status:  funding.Created,
	}

	data, err := EncodeState(state)
	require.NoError(t, err)

	decoded, err := DecodeState(data)
	require.NoError(t, err)
	// Nil amounts encode as zero.
	assert.True(t, decoded.TotalRaised.IsZero())
	assert.Empty(t, decoded.Balances)
	assert.Empty(t, decoded.Rounds)
}

func TestEncodeState_Nil(t *testing.T) {
	_, err := EncodeState(nil)
	assert.ErrorIs(t, err, ErrNilState)
}

func TestDecodeState_Corrupt(t *testing.T) {
	state := sampleState(makeAddr(0xC0))
	data, err := EncodeState(state)
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeState(nil)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unknown version", func(t *testing.T) {
		bad := append([]byte{}, data...)
		bad[0] = 0xFF
		_, err := DecodeState(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{1, 21, 54, len(data) / 2, len(data) - 1} {
			_, err := DecodeState(data[:n])
			assert.ErrorIs(t, err, ErrCorrupt, "length %d", n)
		}
	})

	t.Run("trailing bytes", func(t *testing.T) {
		bad := append(append([]byte{}, data...), 0x00)
		_, err := DecodeState(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func runStoreSuite(t *testing.T, s CampaignStore) {
	t.Helper()
	a1, a2 := makeAddr(0xC1), makeAddr(0xC2)

	_, err := s.Load(a1)
	assert.ErrorIs(t, err, ErrNotFound)

	state1 := sampleState(a1)
	state2 := sampleState(a2)
	state2.Name = "Second Fund"
	require.NoError(t, s.Save(state1))
	require.NoError(t, s.Save(state2))

	got, err := s.Load(a1)
	require.NoError(t, err)
	assertStatesEqual(t, state1, got)

	// Save replaces.
	state1.Status = funding.Cancelled
	require.NoError(t, s.Save(state1))
	got, err = s.Load(a1)
	require.NoError(t, err)
	assert.Equal(t, funding.Cancelled, got.Status)

	addrs, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []token.Address{a1, a2}, addrs)

	require.NoError(t, s.Delete(a1))
	_, err = s.Load(a1)
	assert.ErrorIs(t, err, ErrNotFound)

	addrs, err = s.List()
	require.NoError(t, err)
	assert.Equal(t, []token.Address{a2}, addrs)

	// Deleting an absent campaign is a no-op.
	require.NoError(t, s.Delete(a1))

	assert.ErrorIs(t, s.Save(nil), ErrNilState)
}

func TestMemStore(t *testing.T) {
	runStoreSuite(t, NewMemStore())
}

func TestBoltStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaigns.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	runStoreSuite(t, s)
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "campaigns.db")

	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	state := sampleState(makeAddr(0xC0))
	require.NoError(t, s.Save(state))
	require.NoError(t, s.Close())

	s, err = OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(state.Address)
	require.NoError(t, err)
	assertStatesEqual(t, state, got)
}

func TestPersistLiveCampaign(t *testing.T) {
	issuer := makeAddr(0xA0)
	contributor := makeAddr(0x01)
	campaignAddr := makeAddr(0xC0)

	payment := asset.NewMemAsset()
	require.NoError(t, payment.Mint(contributor, uint256.NewInt(6000)))
	require.NoError(t, payment.Approve(contributor, campaignAddr, uint256.NewInt(6000)))

	acl := access.NewRegistry(issuer)
	campaign, err := funding.NewCampaign(funding.Params{
		Name:              "Film Fund",
		Symbol:            "FF",
		Address:           campaignAddr,
		Payment:           payment,
		Price:             uint256.NewInt(120000),
		ReturnBasisPoints: 1000,
	}, acl, nil)
	require.NoError(t, err)

	require.NoError(t, campaign.Open(issuer))
	require.NoError(t, campaign.Fund(contributor, uint256.NewInt(5000)))
	require.NoError(t, campaign.Close(issuer))

	path := filepath.Join(t.TempDir(), "campaigns.db")
	s, err := OpenBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(campaign.State()))

	loaded, err := s.Load(campaignAddr)
	require.NoError(t, err)
	restored, err := funding.RestoreCampaign(loaded, payment, acl, nil)
	require.NoError(t, err)

	assert.Equal(t, funding.Closed, restored.Status())
	assert.Equal(t, campaign.TotalRaised(), restored.TotalRaised())
	assert.Equal(t, campaign.BalanceOf(contributor), restored.BalanceOf(contributor))
}
