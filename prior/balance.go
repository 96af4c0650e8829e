package prior

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	pcommon "github.com/AlexZinkM/prior-testnet-bot/internal/common"
	"github.com/AlexZinkM/prior-testnet-bot/internal/console"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
)

// GetBalances gets native and token balances of w as display strings
func (s *Sequencer) GetBalances(ctx context.Context, w model.Wallet) (*model.BalanceReport, error) {
	addr := w.Address()

	eth, err := s.chain.Balance(ctx, addr)
	if err != nil {
		return nil, err
	}

	report := &model.BalanceReport{
		Address: addr.Hex(),
		ETH:     pcommon.FormatUnits(eth, pcommon.ETHDecimals),
	}

	tokens := []struct {
		name     string
		address  common.Address
		decimals int
		dst      *string
	}{
		{"PRIOR", s.contracts.Prior, pcommon.PRIORDecimals, &report.PRIOR},
		{"USDT", s.contracts.USDT, pcommon.USDDecimals, &report.USDT},
		{"USDC", s.contracts.USDC, pcommon.USDDecimals, &report.USDC},
	}
	for _, t := range tokens {
		v, err := s.chain.TokenBalance(ctx, t.address, addr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.name, err)
		}
		*t.dst = pcommon.FormatUnits(v, t.decimals)
	}

	// Use float only for display, not for anything that is sent on chain
	if s.prices != nil {
		if rate, err := s.prices.GetETHtoUSDrate(ctx); err == nil {
			ethFloat, _ := strconv.ParseFloat(report.ETH, 64)
			rateFloat, _ := strconv.ParseFloat(rate, 64)
			report.ETHUSD = fmt.Sprintf("%.2f", ethFloat*rateFloat)
		}
	}

	return report, nil
}

// PrintBalances prints the balance report of w. Failures are printed, never returned.
func (s *Sequencer) PrintBalances(ctx context.Context, w model.Wallet) {
	s.out.Println()
	s.out.Printf(console.SymWallet, "%s (%s):", w.Label, pcommon.ShortAddress(w.Address()))

	report, err := s.GetBalances(ctx, w)
	if err != nil {
		s.out.Error("%s | Error checking balances: %v", w.Label, err)
		return
	}

	if report.ETHUSD != "" {
		s.out.Printf(console.SymETH, " ETH: %s (~$%s)", report.ETH, report.ETHUSD)
	} else {
		s.out.Printf(console.SymETH, " ETH: %s", report.ETH)
	}
	s.out.Printf(console.SymPRIOR, " PRIOR: %s", report.PRIOR)
	s.out.Printf(console.SymUSDT, " USDT: %s", report.USDT)
	s.out.Printf(console.SymUSDC, " USDC: %s", report.USDC)
}
