package model

import "math/big"

// Token is a swap destination on the router.
type Token string

const (
	TokenUSDT Token = "USDT"
	TokenUSDC Token = "USDC"
)

// SwapTokens lists the tokens a directive can pick from.
var SwapTokens = [...]Token{TokenUSDT, TokenUSDC}

// SwapDirective is drawn fresh for every swap attempt
type SwapDirective struct {
	Amount    string   // PRIOR, exactly 6 decimals
	AmountWei *big.Int // Amount scaled to 18 decimals
	Token     Token
}

// WalletOutcome counts successful swaps for a single wallet.
type WalletOutcome struct {
	Label     string
	Succeeded int
	Attempted int
}

// RunOutcome aggregates wallet outcomes over a run.
type RunOutcome struct {
	Wallets []WalletOutcome
}

// Add appends a wallet result.
func (r *RunOutcome) Add(w WalletOutcome) {
	r.Wallets = append(r.Wallets, w)
}

// Succeeded returns the total of successful swaps.
func (r *RunOutcome) Succeeded() int {
	n := 0
	for _, w := range r.Wallets {
		n += w.Succeeded
	}
	return n
}

// Attempted returns the total of attempted swaps.
func (r *RunOutcome) Attempted() int {
	n := 0
	for _, w := range r.Wallets {
		n += w.Attempted
	}
	return n
}
