package fixedpoint

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustConverter(t *testing.T, price uint64) *Converter {
	t.Helper()
	conv, err := NewConverter(uint256.NewInt(price))
	require.NoError(t, err)
	return conv
}

func TestNewConverter_ZeroPrice(t *testing.T) {
	_, err := NewConverter(uint256.NewInt(0))
	assert.ErrorIs(t, err, ErrZeroPrice)

	_, err = NewConverter(nil)
	assert.ErrorIs(t, err, ErrZeroPrice)
}

func TestToTokens(t *testing.T) {
	conv := mustConverter(t, 120000) // 0.0012 base units per token

	tests := []struct {
		name string
		base uint64
		want uint64
	}{
		{"reference contribution", 1000, 833333}, // 1000 * 1e8 / 120000, floored
		{"zero", 0, 0},
		{"below one token unit", 1, 833},
		{"exact multiple", 120000, 100_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToTokens(uint256.NewInt(tt.base))
			require.NoError(t, err)
			assert.Equal(t, uint256.NewInt(tt.want), got)
		})
	}
}

func TestToBase(t *testing.T) {
	conv := mustConverter(t, 120000)

	got, err := conv.ToBase(uint256.NewInt(100_000_000))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(120000), got)

	// 833333 tokens * 120000 / 1e8 = 999.9996, floored to 999: the dust
	// from flooring both directions stays with the campaign.
	got, err = conv.ToBase(uint256.NewInt(833333))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(999), got)
}

func TestRoundTripNeverPaysMore(t *testing.T) {
	prices := []uint64{1, 3, 120000, 100_000_000, 987_654_321}
	bases := []uint64{0, 1, 7, 999, 1000, 120000, 1 << 40}

	for _, price := range prices {
		conv := mustConverter(t, price)
		for _, base := range bases {
			in := uint256.NewInt(base)
			tokens, err := conv.ToTokens(in)
			require.NoError(t, err)
			out, err := conv.ToBase(tokens)
			require.NoError(t, err)
			assert.True(t, out.Cmp(in) <= 0,
				"price=%d base=%d: round trip %s > %s", price, base, out, in)
		}
	}
}

func TestToTokens_Overflow(t *testing.T) {
	conv := mustConverter(t, 120000)

	huge := new(uint256.Int).Not(new(uint256.Int)) // 2^256 - 1
	_, err := conv.ToTokens(huge)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestToBase_Overflow(t *testing.T) {
	conv := mustConverter(t, 120000)

	huge := new(uint256.Int).Not(new(uint256.Int))
	_, err := conv.ToBase(huge)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestApplyBasisPoints(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		bps    uint64
		want   uint64
	}{
		{"ten percent", 5000, 1000, 5500},
		{"zero rate", 5000, 0, 5000},
		{"hundred percent", 5000, 10000, 10000},
		{"floors", 99, 1000, 108}, // 99 * 11000 / 10000 = 108.9
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyBasisPoints(uint256.NewInt(tt.amount), tt.bps)
			require.NoError(t, err)
			assert.Equal(t, uint256.NewInt(tt.want), got)
		})
	}
}

func TestApplyBasisPoints_Overflow(t *testing.T) {
	huge := new(uint256.Int).Not(new(uint256.Int))
	_, err := ApplyBasisPoints(huge, 1000)
	assert.ErrorIs(t, err, ErrOverflow)
}
