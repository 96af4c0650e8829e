package prior

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/AlexZinkM/prior-testnet-bot/internal/common"
	"github.com/AlexZinkM/prior-testnet-bot/internal/console"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
)

// router function selectors, one per destination token
var swapSelectors = map[model.Token][]byte{
	model.TokenUSDT: common.FromHex("0x03b530a3"),
	model.TokenUSDC: common.FromHex("0xf3b68002"),
}

var uint256Args = abi.Arguments{{Type: mustNewType("uint256")}}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// EncodeSwapCall builds router calldata swapping amount PRIOR (wei) into token.
func EncodeSwapCall(token model.Token, amount *big.Int) ([]byte, error) {
	selector, ok := swapSelectors[token]
	if !ok {
		return nil, fmt.Errorf("unknown swap token %q", token)
	}
	args, err := uint256Args.Pack(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}
	return append(append([]byte{}, selector...), args...), nil
}

// EnsureAllowance approves the router for amount PRIOR unless the current allowance covers it.
// Returns false if the allowance could not be checked or the approval failed.
func (s *Sequencer) EnsureAllowance(ctx context.Context, w model.Wallet, amount *big.Int) bool {
	owner := w.Address()
	current, err := s.chain.Allowance(ctx, s.contracts.Prior, owner, s.contracts.Router)
	if err != nil {
		s.out.Error("%s | Error approving PRIOR: %v", w.Label, err)
		return false
	}
	if current.Cmp(amount) >= 0 {
		s.out.Info("%s | Allowance for PRIOR already sufficient: %s", w.Label, pcommon.FormatUnits(current, pcommon.PRIORDecimals))
		return true
	}

	s.out.Printf(console.SymApprove, "%s | Approving PRIOR...", w.Label)
	tx, err := s.chain.Approve(ctx, w.PrivateKey(), s.contracts.Prior, s.contracts.Router, amount)
	if err != nil {
		s.out.Error("%s | Error approving PRIOR: %v", w.Label, err)
		return false
	}
	s.out.Printf(console.SymPending, "%s | Approval transaction sent: %s", w.Label, tx.Hash().Hex())

	receipt, err := s.waitMined(ctx, tx)
	if err != nil {
		s.out.Error("%s | Error approving PRIOR: %v", w.Label, err)
		return false
	}
	s.out.Success("%s | Approval confirmed in block %s", w.Label, receipt.BlockNumber)
	return true
}

// Swap performs one directive: allowance check, router call, confirmation.
// Every failure is reported and turned into false.
func (s *Sequencer) Swap(ctx context.Context, w model.Wallet, d model.SwapDirective) bool {
	if !s.EnsureAllowance(ctx, w, d.AmountWei) {
		s.out.Warning("%s | Approval failed, aborting swap", w.Label)
		return false
	}

	data, err := EncodeSwapCall(d.Token, d.AmountWei)
	if err != nil {
		s.out.Error("%s | Error swapping PRIOR for %s: %v", w.Label, d.Token, err)
		return false
	}

	s.out.Printf(console.SymPending, "%s | Swapping %s PRIOR for %s...", w.Label, d.Amount, d.Token)
	tx, err := s.chain.SendSwap(ctx, w.PrivateKey(), s.contracts.Router, data)
	if err != nil {
		s.out.Error("%s | Error swapping PRIOR for %s: %v", w.Label, d.Token, err)
		return false
	}
	s.out.Printf(console.SymPending, "%s | Swap transaction sent: %s", w.Label, tx.Hash().Hex())

	receipt, err := s.waitMined(ctx, tx)
	if err != nil {
		s.out.Error("%s | Error swapping PRIOR for %s: %v", w.Label, d.Token, err)
		return false
	}
	s.out.Success("%s | Swap confirmed in block %s", w.Label, receipt.BlockNumber)
	return true
}
