package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals uint8
		want     string
	}{
		{"whole", "100", 18, "100000000000000000000"},
		{"fraction", "1.5", 18, "1500000000000000000"},
		{"leading dot", ".5", 6, "500000"},
		{"trailing dot", "7.", 2, "700"},
		{"trailing zeros beyond scale", "1.2300000", 2, "123"},
		{"zero decimals", "42", 0, "42"},
		{"negative", "-2.25", 2, "-225"},
		{"whitespace", "  3 ", 1, "30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.value, tt.decimals)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseUnitsErrors(t *testing.T) {
	require := require.New(t)

	_, err := ParseUnits("", 18)
	require.ErrorIs(err, ErrEmpty)

	for _, bad := range []string{".", "-", "1.2.3", "1e18", "0x10", "abc", "1,5"} {
		_, err = ParseUnits(bad, 18)
		require.ErrorIs(err, ErrInvalidLiteral, bad)
	}

	_, err = ParseUnits("0.001", 2)
	require.ErrorIs(err, ErrFractionTooLong)

	_, err = ParseUnits("1", MaxDecimals+1)
	require.ErrorIs(err, ErrDecimals)
}

func TestFormatUnits(t *testing.T) {
	require := require.New(t)

	v, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(ok)
	require.Equal("100.0", FormatUnits(v, 18))
	require.Equal("0.000001", FormatUnits(big.NewInt(1), 6))
	require.Equal("-2.25", FormatUnits(big.NewInt(-225), 2))
	require.Equal("42.0", FormatUnits(big.NewInt(42), 0))
	require.Equal("0.0", FormatUnits(nil, 18))
}

func TestParseFormatRoundTrip(t *testing.T) {
	require := require.New(t)

	for _, s := range []string{"100.0", "0.5", "123.456789"} {
		v, err := ParseUnits(s, 18)
		require.NoError(err)
		require.Equal(s, FormatUnits(v, 18))
	}
}

func TestToUint256(t *testing.T) {
	require := require.New(t)

	v, err := ToUint256(big.NewInt(7))
	require.NoError(err)
	require.Equal(uint64(7), v.Uint64())

	_, err = ToUint256(big.NewInt(-1))
	require.ErrorIs(err, ErrNegative)

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = ToUint256(tooBig)
	require.ErrorIs(err, ErrOverflow)

	largest := new(big.Int).Sub(tooBig, big.NewInt(1))
	_, err = ToUint256(largest)
	require.NoError(err)
}

func TestCheckRange(t *testing.T) {
	require := require.New(t)

	require.NoError(CheckRange(big.NewInt(255), 8, false))
	require.ErrorIs(CheckRange(big.NewInt(256), 8, false), ErrOverflow)
	require.ErrorIs(CheckRange(big.NewInt(-1), 8, false), ErrNegative)

	require.NoError(CheckRange(big.NewInt(-128), 8, true))
	require.NoError(CheckRange(big.NewInt(127), 8, true))
	require.ErrorIs(CheckRange(big.NewInt(128), 8, true), ErrOverflow)
	require.ErrorIs(CheckRange(big.NewInt(-129), 8, true), ErrOverflow)

	largest := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	require.NoError(CheckRange(largest, 256, true))
	require.ErrorIs(CheckRange(new(big.Int).Add(largest, big.NewInt(1)), 256, true), ErrOverflow)

	require.ErrorIs(CheckRange(big.NewInt(1), 12, false), ErrBitSize)
	require.ErrorIs(CheckRange(big.NewInt(1), 264, false), ErrBitSize)
}
