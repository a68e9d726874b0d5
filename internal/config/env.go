package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/xrp-wallet/internal/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Passwords are never part of it: they arrive per request or from ReadPassword.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	WalletDBPath string `envconfig:"WALLET_DB_PATH" default:"wallet.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	Network     string `envconfig:"XRPL_NETWORK" default:"testnet"`
	TestnetURL  string `envconfig:"XRPL_TESTNET_URL" default:"wss://s.altnet.rippletest.net:51233"`
	MainnetURL  string `envconfig:"XRPL_MAINNET_URL" default:"wss://xrplcluster.com/"`
	FaucetURL   string `envconfig:"XRPL_FAUCET_URL" default:"https://faucet.altnet.rippletest.net/accounts"`
	MaxFeeDrops uint64 `envconfig:"MAX_FEE_DROPS" default:"2000000"`

	PriceAPIURL string `envconfig:"PRICE_API_URL" default:"https://api.coingecko.com/api/v3"`

	PayCooldown  int `envconfig:"PAY_COOLDOWN_MINUTES" default:"0"`
	SettleDelay  int `envconfig:"SETTLE_DELAY_SECONDS" default:"3"`
	HistoryLimit int `envconfig:"HISTORY_LIMIT" default:"20"`

	ScryptN int `envconfig:"SCRYPT_N" default:"262144"`
}

// maxScryptN is the largest cost the vault will open.
const maxScryptN = 1 << 20

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c, err := Load()
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads a fresh Config from the environment without touching the global one.
func Load() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if _, ok := c.Networks()[c.Network]; !ok {
		return nil, fmt.Errorf("unknown XRPL_NETWORK %q", c.Network)
	}
	if c.ScryptN < 2 || c.ScryptN > maxScryptN || c.ScryptN&(c.ScryptN-1) != 0 {
		return nil, fmt.Errorf("SCRYPT_N must be a power of two up to %d, got %d", maxScryptN, c.ScryptN)
	}
	return c, nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Networks returns the selectable networks keyed by model.NetworkTestnet and model.NetworkMainnet.
func (c *Config) Networks() map[string]model.NetworkConfig {
	testnet := model.Testnet
	testnet.EndpointURL = c.TestnetURL
	testnet.FaucetURL = c.FaucetURL

	mainnet := model.Mainnet
	mainnet.EndpointURL = c.MainnetURL

	return map[string]model.NetworkConfig{
		testnet.Key: testnet,
		mainnet.Key: mainnet,
	}
}

// ActiveNetwork returns the network selected by XRPL_NETWORK.
func (c *Config) ActiveNetwork() model.NetworkConfig {
	return c.Networks()[c.Network]
}

// PayCooldownDuration returns PAY_COOLDOWN_MINUTES as a duration.
func (c *Config) PayCooldownDuration() time.Duration {
	return time.Duration(c.PayCooldown) * time.Minute
}

// SettleDelayDuration returns SETTLE_DELAY_SECONDS as a duration.
func (c *Config) SettleDelayDuration() time.Duration {
	return time.Duration(c.SettleDelay) * time.Second
}

// ReadPassword prompts on stderr and reads a password from the terminal without echo.
// Caller must zero the returned slice after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
