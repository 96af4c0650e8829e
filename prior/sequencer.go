package prior

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"

	"github.com/AlexZinkM/prior-testnet-bot/internal/config"
	"github.com/AlexZinkM/prior-testnet-bot/internal/console"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
)

var (
	ErrInvalidSwapCount = errors.New("swap count must be a positive integer")
	ErrNoWallets        = errors.New("no wallets selected")
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures a Sequencer. Zero values of the optional fields select defaults.
type Options struct {
	Contracts config.Contracts
	StepDelay time.Duration
	TxTimeout time.Duration // bound on each confirmation wait, 0 for none

	Prices PriceSource // optional, enables USD value in balance reports
	Rand   *rand.Rand  // optional
	Sleep  SleepFunc   // optional
}

// Sequencer runs faucet claims and swaps for wallets one after another.
type Sequencer struct {
	chain     Chain
	out       *console.Printer
	contracts config.Contracts
	stepDelay time.Duration
	txTimeout time.Duration
	prices    PriceSource
	rnd       *rand.Rand
	sleep     SleepFunc
}

// NewSequencer creates a Sequencer narrating to out.
func NewSequencer(chain Chain, out *console.Printer, opts Options) *Sequencer {
	s := &Sequencer{
		chain:     chain,
		out:       out,
		contracts: opts.Contracts,
		stepDelay: opts.StepDelay,
		txTimeout: opts.TxTimeout,
		prices:    opts.Prices,
		rnd:       opts.Rand,
		sleep:     opts.Sleep,
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.sleep == nil {
		s.sleep = sleepContext
	}
	return s
}

// Run claims the faucet and performs swaps swaps for every wallet, in order.
// Chain failures are reported and counted, only context cancellation stops the run early.
func (s *Sequencer) Run(ctx context.Context, wallets []model.Wallet, swaps int) (*model.RunOutcome, error) {
	if swaps <= 0 {
		return nil, ErrInvalidSwapCount
	}
	if len(wallets) == 0 {
		return nil, ErrNoWallets
	}

	outcome := &model.RunOutcome{}
	s.out.Println()
	s.out.Info("Processing %d wallet(s)", len(wallets))

	for i, w := range wallets {
		s.out.Println()
		s.out.Printf(console.SymWallet, "Processing wallet %d/%d: %s (%s)", i+1, len(wallets), w.Label, w.Source)

		s.ClaimFaucet(ctx, w)
		if err := s.delay(ctx); err != nil {
			return outcome, err
		}

		result, err := s.RunWalletSwaps(ctx, w, swaps)
		outcome.Add(result)
		if err != nil {
			return outcome, err
		}

		if i < len(wallets)-1 {
			if err := s.delay(ctx); err != nil {
				return outcome, err
			}
		}
	}

	s.out.Println()
	s.out.Info("All selected wallets processed. Total swap success: %d/%d", outcome.Succeeded(), outcome.Attempted())
	log.Info("Run finished", "wallets", len(wallets), "succeeded", outcome.Succeeded(), "attempted", outcome.Attempted())
	return outcome, nil
}

// RunWalletSwaps performs count swaps for w between two balance reports.
// The error is non-nil only if ctx was cancelled during a delay.
func (s *Sequencer) RunWalletSwaps(ctx context.Context, w model.Wallet, count int) (model.WalletOutcome, error) {
	result := model.WalletOutcome{Label: w.Label}

	s.out.Println()
	s.out.Info("Starting %d swap operations for %s...", count, w.Label)
	s.PrintBalances(ctx, w)

	for i := 0; i < count; i++ {
		d := NewDirective(s.rnd)
		result.Attempted++

		s.out.Println()
		s.out.Printf(console.SymSwap, "%s | Swap %d/%d: %s PRIOR for %s", w.Label, i+1, count, d.Amount, d.Token)
		if s.Swap(ctx, w, d) {
			result.Succeeded++
		}

		if i < count-1 {
			if err := s.delay(ctx); err != nil {
				return result, err
			}
		}
	}

	s.out.Println()
	s.out.Info("%s | Completed %d/%d swap operations successfully", w.Label, result.Succeeded, result.Attempted)
	s.PrintBalances(ctx, w)
	return result, nil
}

// ClaimFaucet claims test tokens for w. The result is informational only.
func (s *Sequencer) ClaimFaucet(ctx context.Context, w model.Wallet) bool {
	s.out.Printf(console.SymFaucet, "%s | Claiming tokens from faucet...", w.Label)
	tx, err := s.chain.ClaimFaucet(ctx, w.PrivateKey())
	if err != nil {
		s.out.Error("%s | Error claiming faucet: %v", w.Label, err)
		return false
	}
	s.out.Printf(console.SymPending, "%s | Faucet claim transaction sent: %s", w.Label, tx.Hash().Hex())

	receipt, err := s.waitMined(ctx, tx)
	if err != nil {
		s.out.Error("%s | Error claiming faucet: %v", w.Label, err)
		return false
	}
	s.out.Success("%s | Faucet claim confirmed in block %s", w.Label, receipt.BlockNumber)
	return true
}

func (s *Sequencer) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}
	return s.chain.WaitMined(ctx, tx)
}

func (s *Sequencer) delay(ctx context.Context) error {
	s.out.Printf(console.SymWait, "Waiting for %s...", s.stepDelay)
	if err := s.sleep(ctx, s.stepDelay); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

