package crypto

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// well-known hardhat/anvil development mnemonic and its first account
const (
	testMnemonic = "test test test test test test test test test test test junk"
	testAddress  = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testKey      = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
)

func TestParsePrivateKey(t *testing.T) {
	for _, in := range []string{testKey, strings.TrimPrefix(testKey, "0x"), "  " + testKey + "\n"} {
		key, err := ParsePrivateKey(in)
		require.NoError(t, err)
		require.Equal(t, common.HexToAddress(testAddress), crypto.PubkeyToAddress(key.PublicKey))
		require.Equal(t, testKey, EncodePrivateKey(key))
	}

	_, err := ParsePrivateKey("")
	require.Error(t, err)
	_, err = ParsePrivateKey("0x1234")
	require.Error(t, err)
}

func TestKeyFromMnemonic(t *testing.T) {
	key, err := KeyFromMnemonic(testMnemonic)
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress(testAddress), crypto.PubkeyToAddress(key.PublicKey))

	_, err = KeyFromMnemonic("not a mnemonic")
	require.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	key, mnemonic, err := GenerateKey()
	require.NoError(t, err)
	require.Len(t, strings.Fields(mnemonic), 12)

	again, err := KeyFromMnemonic(mnemonic)
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(again.PublicKey))

	other, otherMnemonic, err := GenerateKey()
	require.NoError(t, err)
	require.NotEqual(t, mnemonic, otherMnemonic)
	require.NotEqual(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(other.PublicKey))
}
