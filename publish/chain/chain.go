package chain

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DefaultKey names the RPC and explorer entries used when none is selected.
const DefaultKey = "default"

type (
	Currency struct {
		Name     string `json:"name" yaml:"name"`
		Symbol   string `json:"symbol" yaml:"symbol"`
		Decimals uint8  `json:"decimals" yaml:"decimals"`
	}

	RPCEndpoints struct {
		HTTP      []string `json:"http" yaml:"http"`
		WebSocket []string `json:"webSocket,omitempty" yaml:"web_socket,omitempty"`
	}

	Explorer struct {
		Name string `json:"name" yaml:"name"`
		URL  string `json:"url" yaml:"url"`
	}

	// Chain describes a network to wallet tooling.
	Chain struct {
		ID             uint64                  `json:"id" yaml:"id"`
		Name           string                  `json:"name" yaml:"name"`
		Network        string                  `json:"network,omitempty" yaml:"network,omitempty"`
		NativeCurrency Currency                `json:"nativeCurrency" yaml:"native_currency"`
		RPCURLs        map[string]RPCEndpoints `json:"rpcUrls" yaml:"rpc_urls"`
		BlockExplorers map[string]Explorer     `json:"blockExplorers,omitempty" yaml:"block_explorers,omitempty"`
		Testnet        bool                    `json:"testnet,omitempty" yaml:"testnet,omitempty"`
	}

	// AddChainParams is the EIP-3085 wallet_addEthereumChain parameter.
	AddChainParams struct {
		ChainID           string   `json:"chainId"`
		ChainName         string   `json:"chainName"`
		NativeCurrency    Currency `json:"nativeCurrency"`
		RPCURLs           []string `json:"rpcUrls"`
		BlockExplorerURLs []string `json:"blockExplorerUrls,omitempty"`
	}
)

// VirtualMainnet is the Tenderly virtual fork of Ethereum mainnet.
func VirtualMainnet() Chain {
	return Chain{
		ID:   1,
		Name: "Virtual Mainnet",
		NativeCurrency: Currency{
			Name:     "VETH",
			Symbol:   "VETH",
			Decimals: 18,
		},
		RPCURLs: map[string]RPCEndpoints{
			DefaultKey: {HTTP: []string{"https://virtual.mainnet.rpc.tenderly.co/cdbc3e91-7911-4cdf-968a-cac82f48125c"}},
		},
		BlockExplorers: map[string]Explorer{
			DefaultKey: {
				Name: "Tenderly Explorer",
				URL:  "https://virtual.mainnet.rpc.tenderly.co/637fdce9-f5de-4130-977e-35b03d5b3277",
			},
		},
	}
}

func (c Chain) Validate() error {
	var errs []error
	if c.ID == 0 {
		errs = append(errs, errors.New("chain id must be positive"))
	}
	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if n := len(c.NativeCurrency.Symbol); n < 2 || n > 6 {
		errs = append(errs, fmt.Errorf("native currency symbol %q must be 2-6 characters", c.NativeCurrency.Symbol))
	}
	if c.NativeCurrency.Name == "" {
		errs = append(errs, errors.New("native currency name is required"))
	}
	if c.NativeCurrency.Decimals > 36 {
		errs = append(errs, fmt.Errorf("native currency decimals %d out of range", c.NativeCurrency.Decimals))
	}

	def, ok := c.RPCURLs[DefaultKey]
	if !ok || len(def.HTTP) == 0 {
		errs = append(errs, errors.New("a default http rpc url is required"))
	}
	for key, rpc := range c.RPCURLs {
		for _, u := range rpc.HTTP {
			if err := checkURL(u, "http", "https"); err != nil {
				errs = append(errs, fmt.Errorf("rpc %s: %w", key, err))
			}
		}
		for _, u := range rpc.WebSocket {
			if err := checkURL(u, "ws", "wss"); err != nil {
				errs = append(errs, fmt.Errorf("rpc %s: %w", key, err))
			}
		}
	}
	for key, ex := range c.BlockExplorers {
		if ex.Name == "" {
			errs = append(errs, fmt.Errorf("explorer %s: name is required", key))
		}
		if err := checkURL(ex.URL, "http", "https"); err != nil {
			errs = append(errs, fmt.Errorf("explorer %s: %w", key, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("chain %d (%s): %w", c.ID, c.Name, err)
	}
	return nil
}

// DefaultRPC returns the first default http endpoint, or "" if there is none.
func (c Chain) DefaultRPC() string {
	def := c.RPCURLs[DefaultKey]
	if len(def.HTTP) == 0 {
		return ""
	}
	return def.HTTP[0]
}

func (c Chain) DefaultExplorer() (Explorer, bool) {
	ex, ok := c.BlockExplorers[DefaultKey]
	return ex, ok
}

// WithRPCOverride returns a copy of c whose default http endpoint is rpc.
// The previous default endpoints are kept behind it as fallbacks.
func (c Chain) WithRPCOverride(rpc string) Chain {
	if rpc == "" || rpc == c.DefaultRPC() {
		return c
	}
	out := c
	out.RPCURLs = make(map[string]RPCEndpoints, len(c.RPCURLs))
	for k, v := range c.RPCURLs {
		out.RPCURLs[k] = v
	}
	def := out.RPCURLs[DefaultKey]
	def.HTTP = append([]string{rpc}, def.HTTP...)
	out.RPCURLs[DefaultKey] = def
	return out
}

func (c Chain) AddChainParams() AddChainParams {
	out := AddChainParams{
		ChainID:        hexutil.EncodeUint64(c.ID),
		ChainName:      c.Name,
		NativeCurrency: c.NativeCurrency,
		RPCURLs:        append([]string(nil), c.RPCURLs[DefaultKey].HTTP...),
	}
	if ex, ok := c.DefaultExplorer(); ok {
		out.BlockExplorerURLs = []string{ex.URL}
	}
	return out
}

func checkURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("url %q must use one of %v", raw, schemes)
}
