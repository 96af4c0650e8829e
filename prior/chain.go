package prior

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Chain is what the sequencer needs from the JSON-RPC node.
// client.EVMClient implements it.
type Chain interface {
	Balance(ctx context.Context, account common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, key *ecdsa.PrivateKey, token, spender common.Address, amount *big.Int) (*types.Transaction, error)
	ClaimFaucet(ctx context.Context, key *ecdsa.PrivateKey) (*types.Transaction, error)
	SendSwap(ctx context.Context, key *ecdsa.PrivateKey, router common.Address, data []byte) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// PriceSource provides the ETH/USD rate for balance reports.
type PriceSource interface {
	GetETHtoUSDrate(ctx context.Context) (string, error)
}
