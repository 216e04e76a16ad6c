// Package walletconfig assembles the configuration object a wallet-connection
// front end consumes: app metadata, the WalletConnect project id, and the
// chains with their transports.
package walletconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/chain"
)

const (
	DefaultAppName = "RainbowKit App"
	// PlaceholderProjectID is accepted so that a config can be generated
	// before a WalletConnect project exists.
	PlaceholderProjectID = "YOUR_PROJECT_ID"
)

var (
	ErrNoChains         = errors.New("at least one chain is required")
	ErrAppName          = errors.New("app name is required")
	ErrProjectID        = errors.New("invalid project id")
	ErrDuplicateChainID = errors.New("duplicate chain id")

	projectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
)

type Options struct {
	AppName   string
	ProjectID string
	AppURL    string
	AppIcon   string
	Chains    []chain.Chain
	SSR       bool
}

type Config struct {
	AppName    string            `json:"appName"`
	ProjectID  string            `json:"projectId"`
	AppURL     string            `json:"appUrl,omitempty"`
	AppIcon    string            `json:"appIcon,omitempty"`
	Chains     []chain.Chain     `json:"chains"`
	Transports map[string]string `json:"transports"`
	SSR        bool              `json:"ssr"`

	// PlaceholderProjectID is set when ProjectID is empty or the placeholder.
	PlaceholderProjectID bool `json:"-"`
}

// Build validates opts and produces the front-end configuration.
func Build(opts Options) (*Config, error) {
	if opts.AppName == "" {
		return nil, ErrAppName
	}
	if len(opts.Chains) == 0 {
		return nil, ErrNoChains
	}

	placeholder := opts.ProjectID == "" || opts.ProjectID == PlaceholderProjectID
	if !placeholder && !projectIDPattern.MatchString(opts.ProjectID) {
		return nil, fmt.Errorf("%w: %q must be 32 hex characters", ErrProjectID, opts.ProjectID)
	}
	projectID := opts.ProjectID
	if projectID == "" {
		projectID = PlaceholderProjectID
	}

	cfg := &Config{
		AppName:              opts.AppName,
		ProjectID:            projectID,
		AppURL:               opts.AppURL,
		AppIcon:              opts.AppIcon,
		Chains:               make([]chain.Chain, 0, len(opts.Chains)),
		Transports:           make(map[string]string, len(opts.Chains)),
		SSR:                  opts.SSR,
		PlaceholderProjectID: placeholder,
	}
	for _, c := range opts.Chains {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		key := strconv.FormatUint(c.ID, 10)
		if _, ok := cfg.Transports[key]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateChainID, c.ID)
		}
		cfg.Transports[key] = c.DefaultRPC()
		cfg.Chains = append(cfg.Chains, c)
	}
	return cfg, nil
}

// Default reproduces the stock setup: one virtual mainnet chain, the
// placeholder project id and server-side rendering enabled.
func Default() *Config {
	cfg, err := Build(Options{
		AppName:   DefaultAppName,
		ProjectID: PlaceholderProjectID,
		Chains:    []chain.Chain{chain.VirtualMainnet()},
		SSR:       true,
	})
	if err != nil {
		panic(err)
	}
	return cfg
}
