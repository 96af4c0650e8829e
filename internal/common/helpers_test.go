package common

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		value    *big.Int
		decimals int
		want     string
	}{
		{big.NewInt(1500000), 6, "1.5"},
		{big.NewInt(0), 18, "0.0"},
		{nil, 6, "0.0"},
		{big.NewInt(24981836), 9, "0.024981836"},
		{big.NewInt(1), 18, "0.000000000000000001"},
		{big.NewInt(-2500000), 6, "-2.5"},
		{new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18)), 18, "3.0"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatUnits(tt.value, tt.decimals))
	}
}

func TestParseUnits(t *testing.T) {
	v, err := ParseUnits("0.001234", PRIORDecimals)
	require.NoError(t, err)
	require.Equal(t, "1234000000000000", v.String())

	v, err = ParseUnits("2", USDDecimals)
	require.NoError(t, err)
	require.Equal(t, "2000000", v.String())

	v, err = ParseUnits(".5", USDDecimals)
	require.NoError(t, err)
	require.Equal(t, "500000", v.String())

	for _, bad := range []string{"", "1.2.3", "abc", "-1", "0.1234567"} {
		_, err := ParseUnits(bad, USDDecimals)
		require.Error(t, err, bad)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	v, err := ParseUnits("0.001500", PRIORDecimals)
	require.NoError(t, err)
	require.Equal(t, "0.0015", FormatUnits(v, PRIORDecimals))
}

func TestShortAddress(t *testing.T) {
	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	require.Equal(t, "0x1234...7890", ShortAddress(addr))
}
