// priorbot claims PRIOR from the testnet faucet and swaps it through the router
// for a set of wallets, one wallet after another.
//
// Usage: go run ./cmd/priorbot
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/AlexZinkM/prior-testnet-bot/internal/client"
	"github.com/AlexZinkM/prior-testnet-bot/internal/config"
	"github.com/AlexZinkM/prior-testnet-bot/internal/console"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
	"github.com/AlexZinkM/prior-testnet-bot/internal/session"
	"github.com/AlexZinkM/prior-testnet-bot/internal/wallet"
	"github.com/AlexZinkM/prior-testnet-bot/prior"
)

var _ prior.Chain = (*client.EVMClient)(nil)

func main() {
	out := console.NewPrinter(os.Stdout)
	if err := run(out); err != nil {
		log.Debug("Fatal error", "err", err)
		console.NewPrinter(os.Stderr).Error("Fatal error: %v", err)
		os.Exit(1)
	}
}

func run(out *console.Printer) error {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	color.NoColor = !useColor
	lvl, _ := config.ParseLogLevel(cfg.LogLevel)
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, useColor)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// a second signal terminates the process
		<-ctx.Done()
		stop()
	}()

	envWallets, err := wallet.LoadEnvCredentials(os.LookupEnv)
	if err != nil {
		out.Warning("Some env keys were skipped: %v", err)
	}
	store := wallet.NewStore(cfg.WalletFile)
	generated := store.LoadPersisted()
	log.Debug("Wallets loaded", "env", len(envWallets), "generated", len(generated), "file", store.Path())

	runner := &dialingRunner{cfg: cfg, out: out}
	prompt := console.NewLinePrompter(os.Stdin, os.Stdout)
	return session.New(prompt, out, store, runner, envWallets, generated).Start(ctx)
}

// dialingRunner connects to the node only when a run is confirmed,
// so wallet generation works offline.
type dialingRunner struct {
	cfg *config.Config
	out *console.Printer
}

func (r *dialingRunner) Run(ctx context.Context, wallets []model.Wallet, swaps int) (*model.RunOutcome, error) {
	contracts := r.cfg.Contracts()

	evm, err := client.DialEVMClient(ctx, r.cfg.RPCURL, r.cfg.ChainID, contracts.Faucet)
	if err != nil {
		return nil, err
	}
	defer evm.Close()
	log.Info("Connected to node", "chainID", r.cfg.ChainID)

	opts := prior.Options{
		Contracts: contracts,
		StepDelay: r.cfg.StepDelay,
		TxTimeout: r.cfg.TxTimeout,
	}
	if r.cfg.PriceLookup {
		opts.Prices = client.NewCoinGeckoClient(r.cfg.CoinGeckoURL)
	}
	return prior.NewSequencer(evm, r.out, opts).Run(ctx, wallets, swaps)
}
