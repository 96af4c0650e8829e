package client

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
)

const (
	faucetGasLimit  = 200000
	approveGasLimit = 60000
	swapGasLimit    = 500000
)

const erc20ABIJSON = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const faucetABIJSON = `[
	{"type":"function","name":"claimTokens","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

var (
	// ErrTxFailed is returned by WaitMined when the transaction was mined but reverted.
	ErrTxFailed = errors.New("transaction failed")

	erc20ABI  = mustParseABI(erc20ABIJSON)
	faucetABI = mustParseABI(faucetABIJSON)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Sprintf("invalid abi: %v", err))
	}
	return parsed
}

// Backend is the part of ethclient.Client the EVM client uses.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// EVMClient is a client for the testnet JSON-RPC node
type EVMClient struct {
	backend Backend
	chainID *big.Int
	faucet  common.Address
	closer  func()
}

// DialEVMClient connects to rpcURL. The faucet address is the contract ClaimFaucet calls.
func DialEVMClient(ctx context.Context, rpcURL string, chainID int64, faucet common.Address) (*EVMClient, error) {
	eth, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	remoteID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if remoteID.Int64() != chainID {
		eth.Close()
		return nil, fmt.Errorf("rpc chain id %s does not match configured %d", remoteID, chainID)
	}

	c := NewEVMClient(eth, chainID, faucet)
	c.closer = eth.Close
	return c, nil
}

// NewEVMClient wraps an existing backend.
func NewEVMClient(backend Backend, chainID int64, faucet common.Address) *EVMClient {
	return &EVMClient{
		backend: backend,
		chainID: big.NewInt(chainID),
		faucet:  faucet,
	}
}

// Close releases the rpc connection.
func (c *EVMClient) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Balance gets native balance in wei
func (c *EVMClient) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := c.backend.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// TokenBalance gets ERC-20 balance in token base units
func (c *EVMClient) TokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	v, err := c.callUint256(ctx, token, "balanceOf", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	return v, nil
}

// Allowance gets the amount spender may move on behalf of owner
func (c *EVMClient) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	v, err := c.callUint256(ctx, token, "allowance", owner, spender)
	if err != nil {
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	return v, nil
}

func (c *EVMClient) callUint256(ctx context.Context, token common.Address, method string, args ...interface{}) (*big.Int, error) {
	data, err := erc20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return nil, err
	}

	values, err := erc20ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected %s result length %d", method, len(values))
	}
	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s result type %T", method, values[0])
	}
	return v, nil
}

// Approve submits an ERC-20 approve transaction
func (c *EVMClient) Approve(ctx context.Context, key *ecdsa.PrivateKey, token, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx, key, approveGasLimit)
	if err != nil {
		return nil, err
	}
	contract := bind.NewBoundContract(token, erc20ABI, c.backend, c.backend, c.backend)
	tx, err := contract.Transact(opts, "approve", spender, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to send approve: %w", err)
	}
	log.Debug("Approve sent", "token", token, "spender", spender, "amount", amount, "hash", tx.Hash())
	return tx, nil
}

// ClaimFaucet submits claimTokens() to the faucet contract
func (c *EVMClient) ClaimFaucet(ctx context.Context, key *ecdsa.PrivateKey) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx, key, faucetGasLimit)
	if err != nil {
		return nil, err
	}
	contract := bind.NewBoundContract(c.faucet, faucetABI, c.backend, c.backend, c.backend)
	tx, err := contract.Transact(opts, "claimTokens")
	if err != nil {
		return nil, fmt.Errorf("failed to send faucet claim: %w", err)
	}
	log.Debug("Faucet claim sent", "faucet", c.faucet, "hash", tx.Hash())
	return tx, nil
}

// SendSwap submits pre-encoded calldata to the router
func (c *EVMClient) SendSwap(ctx context.Context, key *ecdsa.PrivateKey, router common.Address, data []byte) (*types.Transaction, error) {
	opts, err := c.transactOpts(ctx, key, swapGasLimit)
	if err != nil {
		return nil, err
	}
	contract := bind.NewBoundContract(router, abi.ABI{}, c.backend, c.backend, c.backend)
	tx, err := contract.RawTransact(opts, data)
	if err != nil {
		return nil, fmt.Errorf("failed to send swap: %w", err)
	}
	log.Debug("Swap sent", "router", router, "hash", tx.Hash())
	return tx, nil
}

// WaitMined blocks until tx is mined and checks its status
func (c *EVMClient) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s reverted in block %s", ErrTxFailed, tx.Hash().Hex(), receipt.BlockNumber)
	}
	log.Debug("Transaction mined", "hash", tx.Hash(), "block", receipt.BlockNumber, "gasUsed", receipt.GasUsed)
	return receipt, nil
}

func (c *EVMClient) transactOpts(ctx context.Context, key *ecdsa.PrivateKey, gasLimit uint64) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = gasLimit
	return opts, nil
}
