package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/chain"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/logging"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/walletconfig"
)

type (
	App struct {
		Name      string `yaml:"name"`
		ProjectID string `yaml:"project_id"`
		URL       string `yaml:"url"`
		Icon      string `yaml:"icon"`
		SSR       bool   `yaml:"ssr"`
	}

	Server struct {
		ListenAddr      string        `yaml:"listen_addr"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	}

	Publisher struct {
		RPCURL         string `yaml:"rpc_url"`
		ChainID        uint64 `yaml:"chain_id"`
		PrivateKey     string `yaml:"-"`
		GasFeeCap      int64  `yaml:"gas_fee_cap"`
		GasTipCap      int64  `yaml:"gas_tip_cap"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	}

	Config struct {
		App       App            `yaml:"app"`
		Chains    []chain.Chain  `yaml:"chains"`
		Server    Server         `yaml:"server"`
		Log       logging.Config `yaml:"log"`
		Publisher Publisher      `yaml:"publisher"`
	}
)

func Default() Config {
	return Config{
		App: App{
			Name:      walletconfig.DefaultAppName,
			ProjectID: walletconfig.PlaceholderProjectID,
			SSR:       true,
		},
		Chains: []chain.Chain{chain.VirtualMainnet()},
		Server: Server{
			ListenAddr:      ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: logging.DefaultConfig(),
		Publisher: Publisher{
			ChainID:        1,
			GasFeeCap:      2_000_000_000,
			GasTipCap:      1_000_000_000,
			TimeoutSeconds: 600,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		blob, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(blob, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.App.ProjectID = envOr("WALLETCONNECT_PROJECT_ID", c.App.ProjectID)
	c.Server.ListenAddr = envOr("LISTEN_ADDR", c.Server.ListenAddr)
	c.Log.Level = envOr("LOG_LEVEL", c.Log.Level)
	c.Log.File = envOr("LOG_FILE", c.Log.File)
	c.Publisher.RPCURL = envOr("RPC_URL", c.Publisher.RPCURL)
	c.Publisher.ChainID = uint64(envInt64("CHAIN_ID", int64(c.Publisher.ChainID)))
	c.Publisher.PrivateKey = envOr("PRIVATE_KEY", c.Publisher.PrivateKey)
	c.Publisher.GasFeeCap = envInt64("GAS_FEE_CAP", c.Publisher.GasFeeCap)
	c.Publisher.GasTipCap = envInt64("GAS_TIP_CAP", c.Publisher.GasTipCap)
}

// Registry builds the chain registry from the configured descriptors. The
// publisher's RPC override is not applied here since the registry is served
// to wallets.
func (c Config) Registry() (*chain.Registry, error) {
	return chain.NewRegistry(c.Chains...)
}

// PublisherChain returns the publisher's chain with the RPC override, if
// any, as its default endpoint.
func (c Config) PublisherChain() (chain.Chain, error) {
	reg, err := c.Registry()
	if err != nil {
		return chain.Chain{}, err
	}
	ch, err := reg.Get(c.Publisher.ChainID)
	if err != nil {
		return chain.Chain{}, err
	}
	return ch.WithRPCOverride(c.Publisher.RPCURL), nil
}

func (c Config) WalletOptions(chains []chain.Chain) walletconfig.Options {
	return walletconfig.Options{
		AppName:   c.App.Name,
		ProjectID: c.App.ProjectID,
		AppURL:    c.App.URL,
		AppIcon:   c.App.Icon,
		Chains:    chains,
		SSR:       c.App.SSR,
	}
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
