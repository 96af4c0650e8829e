package client

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/require"
)

var (
	// returns uint256(42) for any call
	constantCode = common.FromHex("0x602a60005260206000f3")
	// reverts on any call
	revertCode = common.FromHex("0x60006000fd")

	tokenAddr  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	revertAddr = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	routerAddr = common.HexToAddress("0x00000000000000000000000000000000000000cc")
)

type simEnv struct {
	sim    *simulated.Backend
	client *EVMClient
	key    *ecdsa.PrivateKey
	owner  common.Address
}

func newSimEnv(t *testing.T, faucet common.Address) *simEnv {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	owner := crypto.PubkeyToAddress(key.PublicKey)

	sim := simulated.NewBackend(types.GenesisAlloc{
		owner:      {Balance: new(big.Int).Mul(big.NewInt(10), big.NewInt(params.Ether))},
		tokenAddr:  {Code: constantCode, Balance: new(big.Int)},
		revertAddr: {Code: revertCode, Balance: new(big.Int)},
	})
	t.Cleanup(func() { sim.Close() })

	return &simEnv{
		sim:    sim,
		client: NewEVMClient(sim.Client(), params.AllDevChainProtocolChanges.ChainID.Int64(), faucet),
		key:    key,
		owner:  owner,
	}
}

// mine commits the pending block and waits for tx's receipt
func (e *simEnv) mine(t *testing.T, tx *types.Transaction) (*types.Receipt, error) {
	t.Helper()
	e.sim.Commit()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.client.WaitMined(ctx, tx)
}

func TestBalance(t *testing.T) {
	env := newSimEnv(t, routerAddr)
	balance, err := env.client.Balance(context.Background(), env.owner)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Mul(big.NewInt(10), big.NewInt(params.Ether)), balance)
}

func TestTokenBalanceAndAllowance(t *testing.T) {
	env := newSimEnv(t, routerAddr)
	ctx := context.Background()

	balance, err := env.client.TokenBalance(ctx, tokenAddr, env.owner)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(42), balance)

	allowance, err := env.client.Allowance(ctx, tokenAddr, env.owner, routerAddr)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(42), allowance)

	// no code at the router address, empty return data cannot be unpacked
	_, err = env.client.TokenBalance(ctx, routerAddr, env.owner)
	require.Error(t, err)
}

func TestSendSwapAndWait(t *testing.T) {
	env := newSimEnv(t, routerAddr)
	ctx := context.Background()

	data := append(common.FromHex("0x03b530a3"), common.LeftPadBytes(big.NewInt(1000).Bytes(), 32)...)
	tx, err := env.client.SendSwap(ctx, env.key, routerAddr, data)
	require.NoError(t, err)
	require.Equal(t, routerAddr, *tx.To())
	require.Equal(t, data, tx.Data())
	require.Equal(t, uint64(swapGasLimit), tx.Gas())

	receipt, err := env.mine(t, tx)
	require.NoError(t, err)
	require.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
}

func TestApproveAndClaim(t *testing.T) {
	env := newSimEnv(t, routerAddr)
	ctx := context.Background()

	tx, err := env.client.Approve(ctx, env.key, tokenAddr, routerAddr, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, uint64(approveGasLimit), tx.Gas())
	packed, err := erc20ABI.Pack("approve", routerAddr, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, packed, tx.Data())
	_, err = env.mine(t, tx)
	require.NoError(t, err)

	tx, err = env.client.ClaimFaucet(ctx, env.key)
	require.NoError(t, err)
	require.Equal(t, routerAddr, *tx.To())
	require.Equal(t, uint64(faucetGasLimit), tx.Gas())
	require.Equal(t, faucetABI.Methods["claimTokens"].ID, tx.Data())
	_, err = env.mine(t, tx)
	require.NoError(t, err)
}

func TestWaitMinedReverted(t *testing.T) {
	env := newSimEnv(t, revertAddr)

	tx, err := env.client.ClaimFaucet(context.Background(), env.key)
	require.NoError(t, err)

	receipt, err := env.mine(t, tx)
	require.ErrorIs(t, err, ErrTxFailed)
	require.NotNil(t, receipt)
	require.Equal(t, types.ReceiptStatusFailed, receipt.Status)
}
