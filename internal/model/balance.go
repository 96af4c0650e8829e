package model

// BalanceReport holds display strings for one wallet's balances
type BalanceReport struct {
	Address string
	ETH     string
	PRIOR   string
	USDT    string
	USDC    string
	ETHUSD  string // empty unless price lookup is enabled and succeeded
}
