package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressQR(t *testing.T) {
	qr, err := AddressQR(addr1)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(qr, "\n"), "\n")
	require.Greater(t, len(lines), 10)

	other, err := AddressQR(addr2)
	require.NoError(t, err)
	require.NotEqual(t, qr, other)
}
