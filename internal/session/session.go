package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/AlexZinkM/prior-testnet-bot/internal/console"
	"github.com/AlexZinkM/prior-testnet-bot/internal/crypto"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
	"github.com/AlexZinkM/prior-testnet-bot/internal/wallet"
)

const menu = `Select operation:
1. Generate new wallet
2. Run swaps with env wallets
3. Run swaps with generated wallets
4. Run swaps with all wallets
Enter choice (1-4): `

// Generator creates and persists a new wallet.
type Generator interface {
	Generate() (*model.Wallet, error)
}

// Runner executes the faucet and swap sequence.
type Runner interface {
	Run(ctx context.Context, wallets []model.Wallet, swaps int) (*model.RunOutcome, error)
}

// Session is one interactive run of the bot.
type Session struct {
	prompt    console.Prompter
	out       *console.Printer
	generator Generator
	runner    Runner
	env       []model.Wallet
	generated []model.Wallet
	now       func() time.Time
}

// New creates a session over already loaded wallet sets.
func New(prompt console.Prompter, out *console.Printer, generator Generator, runner Runner, env, generated []model.Wallet) *Session {
	return &Session{
		prompt:    prompt,
		out:       out,
		generator: generator,
		runner:    runner,
		env:       env,
		generated: generated,
		now:       time.Now,
	}
}

// Start shows the menu and performs the selected operation.
// Invalid input, closed input and declined confirmation end the session with a message and a nil error.
func (s *Session) Start(ctx context.Context) error {
	err := s.start(ctx)
	if errors.Is(err, errCanceled) {
		return nil
	}
	return err
}

func (s *Session) start(ctx context.Context) error {
	s.out.Banner("PRIOR TESTNET AUTO BOT")
	s.out.Info("Bot started on %s", s.now().UTC().Format(time.RFC3339))

	s.out.Println()
	s.out.Info("Available wallets:")
	s.out.Println(fmt.Sprintf("  Env wallets: %d", len(s.env)))
	s.out.Println(fmt.Sprintf("  Generated wallets: %d", len(s.generated)))

	answer, err := s.ask(ctx, string(console.SymInfo)+" "+menu)
	if err != nil {
		return err
	}
	choice, err := ParseChoice(answer)
	if err != nil {
		s.out.Error("Invalid choice. Please select 1-4")
		return nil
	}

	if choice == ChoiceGenerate {
		s.generate()
		return nil
	}

	wallets := SelectWallets(choice, s.env, s.generated)
	if len(wallets) == 0 {
		s.out.Error("%s", emptyMessage(choice))
		return nil
	}
	return s.processSwaps(ctx, wallets)
}

func (s *Session) processSwaps(ctx context.Context, wallets []model.Wallet) error {
	s.out.Printf(console.SymWallet, "Loaded %d wallet(s):", len(wallets))
	for i, w := range wallets {
		s.out.Println(fmt.Sprintf("  %d. %s", i+1, shortLabel(w)))
	}

	answer, err := s.ask(ctx, "\n"+string(console.SymInfo)+" How many swaps to perform per wallet? ")
	if err != nil {
		return err
	}
	swaps, err := ParseSwapCount(answer)
	if err != nil {
		s.out.Error("Please provide a valid number of swaps")
		return nil
	}

	s.out.Info("Will claim faucet and perform %d swaps for each of %d wallet(s)", swaps, len(wallets))
	answer, err = s.ask(ctx, string(console.SymInfo)+" Proceed? (y/n) ")
	if err != nil {
		return err
	}
	if !IsConfirmed(answer) {
		s.out.Info("Operation canceled")
		return nil
	}

	if ctx.Err() != nil {
		s.interrupted()
		return errCanceled
	}
	if _, err := s.runner.Run(ctx, wallets, swaps); err != nil {
		return fmt.Errorf("failed to run swaps: %w", err)
	}
	return nil
}

func (s *Session) generate() {
	w, err := s.generator.Generate()
	if err != nil {
		s.out.Error("Error generating wallet: %v", err)
		return
	}

	s.out.Success("New wallet generated and saved:")
	s.out.Println("  Address: " + w.Address().Hex())
	s.out.Println("  Private Key: " + crypto.EncodePrivateKey(w.PrivateKey()))
	s.out.Println("  Mnemonic: " + w.Mnemonic)
	s.out.Warning("Please store these credentials securely! Anyone with the key or mnemonic controls the funds.")

	qr, err := wallet.AddressQR(w.Address().Hex())
	if err != nil {
		log.Warn("Could not render address QR code", "err", err)
		return
	}
	s.out.Println()
	s.out.Info("Scan to fund %s:", w.Label)
	s.out.Println(qr)
}

// ask treats a closed input or a cancelled ctx as a cancelled session.
func (s *Session) ask(ctx context.Context, question string) (string, error) {
	if ctx.Err() != nil {
		s.interrupted()
		return "", errCanceled
	}
	answer, err := s.prompt.Ask(question)
	if ctx.Err() != nil {
		s.interrupted()
		return "", errCanceled
	}
	if errors.Is(err, io.EOF) {
		s.out.Println()
		s.out.Info("No input, exiting")
		return "", errCanceled
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return answer, nil
}

func (s *Session) interrupted() {
	s.out.Println()
	s.out.Info("Interrupted, exiting")
}

var errCanceled = errors.New("session canceled")
