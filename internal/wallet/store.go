package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/AlexZinkM/prior-testnet-bot/internal/crypto"
	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
)

const (
	envKeyPrefix = "PRIVATE_KEY_"
	envKeySingle = "PRIVATE_KEY"
)

// ErrStoreCorrupt is returned by Generate when the wallet file exists but cannot be parsed.
// Generation refuses to overwrite it so existing entries are never lost.
var ErrStoreCorrupt = errors.New("wallet file is not a valid wallet list")

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvCredentials reads PRIVATE_KEY_1..n, stopping at the first index that is not set.
// If no indexed key is set, PRIVATE_KEY is used as a single wallet.
// Keys that fail to parse are skipped and reported in the returned error,
// the valid wallets are returned regardless.
func LoadEnvCredentials(lookup LookupFunc) ([]model.Wallet, error) {
	var (
		wallets []model.Wallet
		errs    []error
	)

	for i := 1; ; i++ {
		name := envKeyPrefix + strconv.Itoa(i)
		raw, ok := lookup(name)
		if !ok || strings.TrimSpace(raw) == "" {
			break
		}
		key, err := crypto.ParsePrivateKey(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		wallets = append(wallets, model.Wallet{
			Credential: model.NewCredential(key),
			Label:      fmt.Sprintf("Env Wallet %d", i),
			Source:     model.SourceEnv,
		})
	}

	if len(wallets) == 0 && len(errs) == 0 {
		if raw, ok := lookup(envKeySingle); ok && strings.TrimSpace(raw) != "" {
			key, err := crypto.ParsePrivateKey(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", envKeySingle, err))
			} else {
				wallets = append(wallets, model.Wallet{
					Credential: model.NewCredential(key),
					Label:      "Default Env Wallet",
					Source:     model.SourceEnv,
				})
			}
		}
	}

	return wallets, errors.Join(errs...)
}

// Store is the append-only file of generated wallets.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the wallet file location.
func (s *Store) Path() string {
	return s.path
}

// LoadPersisted returns the wallets of the record file.
// A missing, unreadable or malformed file yields no wallets.
func (s *Store) LoadPersisted() []model.Wallet {
	records, err := s.readRecords()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("Ignoring wallet file", "path", s.path, "err", err)
		}
		return nil
	}

	wallets := make([]model.Wallet, 0, len(records))
	for i, r := range records {
		key, err := crypto.ParsePrivateKey(r.PrivateKey)
		if err != nil {
			log.Warn("Skipping wallet record", "path", s.path, "index", i, "err", err)
			continue
		}
		wallets = append(wallets, model.Wallet{
			Credential: model.NewCredential(key),
			Label:      fmt.Sprintf("Generated Wallet %d", i+1),
			Source:     model.SourceGenerated,
			Mnemonic:   r.Mnemonic,
		})
	}
	return wallets
}

// Generate creates a new wallet from a fresh mnemonic and appends it to the record file.
// Either the full record is written or the file is left untouched.
func (s *Store) Generate() (*model.Wallet, error) {
	records, err := s.readRecords()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read wallet file: %w", err)
	}

	key, mnemonic, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	cred := model.NewCredential(key)

	records = append(records, model.WalletRecord{
		Address:    cred.Address().Hex(),
		PrivateKey: crypto.EncodePrivateKey(key),
		Mnemonic:   mnemonic,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	})

	if err := s.writeRecords(records); err != nil {
		return nil, fmt.Errorf("failed to save wallet: %w", err)
	}

	return &model.Wallet{
		Credential: cred,
		Label:      fmt.Sprintf("Generated Wallet %d", len(records)),
		Source:     model.SourceGenerated,
		Mnemonic:   mnemonic,
	}, nil
}

func (s *Store) readRecords() ([]model.WalletRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	// Skip UTF-8 BOM if present
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []model.WalletRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}
	return records, nil
}

// writeRecords replaces the file through a temp file and rename.
func (s *Store) writeRecords(records []model.WalletRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallets: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to chmod file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace wallet file: %w", err)
	}
	return nil
}
