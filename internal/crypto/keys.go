package crypto

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	hdwallet "github.com/ethereum-optimism/go-ethereum-hdwallet"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

const (
	// DefaultHDPath is the first account of the standard Ethereum derivation path,
	// the same one browser wallets use for an imported mnemonic.
	DefaultHDPath = "m/44'/60'/0'/0/0"

	mnemonicEntropyBits = 128 // 12 words
)

// ParsePrivateKey parses a hex private key with or without 0x prefix
func ParsePrivateKey(keyHex string) (*ecdsa.PrivateKey, error) {
	keyHex = strings.TrimSpace(keyHex)
	keyHex = strings.TrimPrefix(strings.TrimPrefix(keyHex, "0x"), "0X")
	if keyHex == "" {
		return nil, errors.New("empty private key")
	}
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// EncodePrivateKey returns the 0x-prefixed hex form of the key.
func EncodePrivateKey(key *ecdsa.PrivateKey) string {
	return hexutil.Encode(crypto.FromECDSA(key))
}

// NewMnemonic generates a random 12-word BIP-39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// KeyFromMnemonic derives the private key at DefaultHDPath.
func KeyFromMnemonic(mnemonic string) (*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	w, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to create hd wallet: %w", err)
	}
	account := accounts.Account{URL: accounts.URL{Path: DefaultHDPath}}
	key, err := w.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key of path %s: %w", DefaultHDPath, err)
	}
	return key, nil
}

// GenerateKey creates a new mnemonic and the key derived from it.
func GenerateKey() (key *ecdsa.PrivateKey, mnemonic string, err error) {
	mnemonic, err = NewMnemonic()
	if err != nil {
		return nil, "", err
	}
	key, err = KeyFromMnemonic(mnemonic)
	if err != nil {
		return nil, "", err
	}
	return key, mnemonic, nil
}
