package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pcommon "github.com/AlexZinkM/prior-testnet-bot/internal/common"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
	"github.com/AlexZinkM/prior-testnet-bot/prior"
)

// Choice is a menu option.
type Choice int

const (
	ChoiceGenerate Choice = iota + 1
	ChoiceEnvWallets
	ChoiceGeneratedWallets
	ChoiceAllWallets
)

var ErrInvalidChoice = errors.New("invalid choice, please select 1-4")

// ParseChoice accepts exactly "1" to "4", surrounding spaces ignored.
func ParseChoice(s string) (Choice, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return ChoiceGenerate, nil
	case "2":
		return ChoiceEnvWallets, nil
	case "3":
		return ChoiceGeneratedWallets, nil
	case "4":
		return ChoiceAllWallets, nil
	default:
		return 0, ErrInvalidChoice
	}
}

// ParseSwapCount accepts a positive base-10 integer.
func ParseSwapCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, prior.ErrInvalidSwapCount
	}
	return n, nil
}

// IsConfirmed reports whether the answer is y or yes, in any case.
func IsConfirmed(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// SelectWallets returns the wallet set of a run choice, env wallets first.
func SelectWallets(c Choice, env, generated []model.Wallet) []model.Wallet {
	switch c {
	case ChoiceEnvWallets:
		return env
	case ChoiceGeneratedWallets:
		return generated
	case ChoiceAllWallets:
		all := make([]model.Wallet, 0, len(env)+len(generated))
		all = append(all, env...)
		return append(all, generated...)
	default:
		return nil
	}
}

// emptyMessage explains why a selection has no wallets.
func emptyMessage(c Choice) string {
	switch c {
	case ChoiceEnvWallets:
		return "No env wallets found. Please check your .env file"
	case ChoiceGeneratedWallets:
		return "No generated wallets found. Please generate some first"
	default:
		return "No wallets found in either env or generated sources"
	}
}

// shortLabel renders a wallet as "label (source) (0x1234...abcd)".
func shortLabel(w model.Wallet) string {
	return fmt.Sprintf("%s (%s) (%s)", w.Label, w.Source, pcommon.ShortAddress(w.Address()))
}
