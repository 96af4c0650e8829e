package model

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Source tells where a credential came from.
type Source string

const (
	SourceEnv       Source = "env"
	SourceGenerated Source = "generated"
)

// Credential is a private key with the address derived from it.
type Credential struct {
	key *ecdsa.PrivateKey
}

// NewCredential wraps a private key.
func NewCredential(key *ecdsa.PrivateKey) Credential {
	return Credential{key: key}
}

// PrivateKey returns the signing key.
func (c Credential) PrivateKey() *ecdsa.PrivateKey {
	return c.key
}

// Address is always derived from the key, never stored separately.
func (c Credential) Address() common.Address {
	return crypto.PubkeyToAddress(c.key.PublicKey)
}

// Wallet binds a credential to a display label for one run.
type Wallet struct {
	Credential
	Label    string
	Source   Source
	Mnemonic string // generated wallets only
}

// WalletRecord represents one entry of the persisted wallet file
type WalletRecord struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	Mnemonic   string `json:"mnemonic"`
	CreatedAt  string `json:"createdAt"`
}
