package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
// It is built once by Load and passed to the components that need it.
// Wallet keys (PRIVATE_KEY, PRIVATE_KEY_n) are not part of it, see wallet.LoadEnvCredentials.
type Config struct {
	RPCURL     string        `envconfig:"RPC_URL" default:"https://base-sepolia-rpc.publicnode.com"`
	ChainID    int64         `envconfig:"CHAIN_ID" default:"84532"`
	WalletFile string        `envconfig:"WALLET_FILE" default:"wallets.json"`
	StepDelay  time.Duration `envconfig:"STEP_DELAY" default:"10s"`
	TxTimeout  time.Duration `envconfig:"TX_TIMEOUT" default:"3m"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`

	PriorAddress  string `envconfig:"PRIOR_ADDRESS" default:"0xc19Ec2EEBB009b2422514C51F9118026f1cD89ba"`
	USDTAddress   string `envconfig:"USDT_ADDRESS" default:"0x014397DaEa96CaC46DbEdcbce50A42D5e0152B2E"`
	USDCAddress   string `envconfig:"USDC_ADDRESS" default:"0x109694D75363A75317A8136D80f50F871E81044e"`
	FaucetAddress string `envconfig:"FAUCET_ADDRESS" default:"0xCa602D9E45E1Ed25105Ee43643ea936B8e2Fd6B7"`
	RouterAddress string `envconfig:"ROUTER_ADDRESS" default:"0x0f1DADEcc263eB79AE3e4db0d57c49a8b6178B0B"`

	PriceLookup  bool   `envconfig:"PRICE_LOOKUP" default:"false"`
	CoinGeckoURL string `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
}

// Contracts holds the parsed addresses of the testnet deployment.
type Contracts struct {
	Prior  common.Address
	USDT   common.Address
	USDC   common.Address
	Faucet common.Address
	Router common.Address
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are not an error, existing variables are not overridden.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return errors.New("RPC_URL must not be empty")
	}
	if c.ChainID <= 0 {
		return errors.New("CHAIN_ID must be positive")
	}
	if c.WalletFile == "" {
		return errors.New("WALLET_FILE must not be empty")
	}
	if c.StepDelay < 0 {
		return errors.New("STEP_DELAY must not be negative")
	}
	for name, addr := range map[string]string{
		"PRIOR_ADDRESS":  c.PriorAddress,
		"USDT_ADDRESS":   c.USDTAddress,
		"USDC_ADDRESS":   c.USDCAddress,
		"FAUCET_ADDRESS": c.FaucetAddress,
		"ROUTER_ADDRESS": c.RouterAddress,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%s is not a valid address: %q", name, addr)
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Contracts returns the deployment addresses. Call Validate first.
func (c *Config) Contracts() Contracts {
	return Contracts{
		Prior:  common.HexToAddress(c.PriorAddress),
		USDT:   common.HexToAddress(c.USDTAddress),
		USDC:   common.HexToAddress(c.USDCAddress),
		Faucet: common.HexToAddress(c.FaucetAddress),
		Router: common.HexToAddress(c.RouterAddress),
	}
}

// ParseLogLevel maps LOG_LEVEL values to slog levels understood by the go-ethereum logger.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown LOG_LEVEL %q", s)
	}
}
