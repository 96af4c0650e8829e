package session

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/prior-testnet-bot/internal/console"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
	"github.com/AlexZinkM/prior-testnet-bot/prior"
)

// countingChain succeeds at everything and counts calls.
type countingChain struct {
	claims, swaps, total int
}

func (c *countingChain) Balance(context.Context, common.Address) (*big.Int, error) {
	c.total++
	return big.NewInt(0), nil
}

func (c *countingChain) TokenBalance(context.Context, common.Address, common.Address) (*big.Int, error) {
	c.total++
	return big.NewInt(0), nil
}

func (c *countingChain) Allowance(context.Context, common.Address, common.Address, common.Address) (*big.Int, error) {
	c.total++
	return big.NewInt(1e18), nil
}

func (c *countingChain) Approve(context.Context, *ecdsa.PrivateKey, common.Address, common.Address, *big.Int) (*types.Transaction, error) {
	c.total++
	return types.NewTx(&types.LegacyTx{}), nil
}

func (c *countingChain) ClaimFaucet(context.Context, *ecdsa.PrivateKey) (*types.Transaction, error) {
	c.total++
	c.claims++
	return types.NewTx(&types.LegacyTx{}), nil
}

func (c *countingChain) SendSwap(context.Context, *ecdsa.PrivateKey, common.Address, []byte) (*types.Transaction, error) {
	c.total++
	c.swaps++
	return types.NewTx(&types.LegacyTx{}), nil
}

func (c *countingChain) WaitMined(context.Context, *types.Transaction) (*types.Receipt, error) {
	c.total++
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(1)}, nil
}

func newScenario(t *testing.T, env, generated []model.Wallet, answers ...string) (*Session, *countingChain, *bytes.Buffer) {
	t.Helper()
	chain := &countingChain{}
	out := &bytes.Buffer{}
	printer := console.NewPrinter(out)
	seq := prior.NewSequencer(chain, printer, prior.Options{
		StepDelay: time.Second,
		Sleep:     func(context.Context, time.Duration) error { return nil },
	})
	s := New(&scriptedPrompter{answers: answers}, printer, &fakeGenerator{}, seq, env, generated)
	return s, chain, out
}

func TestScenarioTwoEnvWalletsOneSwap(t *testing.T) {
	s, chain, out := newScenario(t, wallets(t, 2, model.SourceEnv), nil, "2", "1", "y")

	require.NoError(t, s.Start(context.Background()))
	require.Equal(t, 2, chain.claims)
	require.Equal(t, 2, chain.swaps)
	require.Contains(t, out.String(), "Processing wallet 2/2")
	require.Contains(t, out.String(), "Total swap success: 2/2")
}

func TestScenarioEmptyGeneratedStore(t *testing.T) {
	s, chain, out := newScenario(t, nil, nil, "3")

	require.NoError(t, s.Start(context.Background()))
	require.Zero(t, chain.total)
	require.Contains(t, out.String(), "No generated wallets found")
}

func TestScenarioBadSwapCount(t *testing.T) {
	s, chain, _ := newScenario(t, wallets(t, 2, model.SourceEnv), nil, "2", "abc")

	require.NoError(t, s.Start(context.Background()))
	require.Zero(t, chain.total)
}
