package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish"
)

// newPublisher connects to the configured chain. The private key is only
// required when withKey is set.
func newPublisher(e *env, withKey bool) (*publish.Publisher, error) {
	c, err := e.cfg.PublisherChain()
	if err != nil {
		return nil, err
	}

	var key *ecdsa.PrivateKey
	if withKey || e.cfg.Publisher.PrivateKey != "" {
		if e.cfg.Publisher.PrivateKey == "" {
			return nil, fmt.Errorf("private-key is required (PRIVATE_KEY)")
		}
		var addr common.Address
		key, addr, err = parsePrivateKey(e.cfg.Publisher.PrivateKey)
		if err != nil {
			return nil, err
		}
		e.log.Debug("loaded signing key", zap.Stringer("address", addr))
	}

	return publish.NewPublisher(
		c.DefaultRPC(),
		c,
		key,
		big.NewInt(e.cfg.Publisher.GasFeeCap),
		big.NewInt(e.cfg.Publisher.GasTipCap),
		e.log,
	)
}

func timeoutContext(cmd *cobra.Command, e *env) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), time.Duration(e.cfg.Publisher.TimeoutSeconds)*time.Second)
}

func newVerifyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the RPC endpoint serves the configured chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPublisher(e, false)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx, cancel := timeoutContext(cmd, e)
			defer cancel()
			if err := p.VerifyChain(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chain %d (%s) ok\n", p.Chain().ID, p.Chain().Name)
			return nil
		},
	}
}

func parsePrivateKey(v string) (*ecdsa.PrivateKey, common.Address, error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "0x")
	key, err := crypto.HexToECDSA(v)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("parse private key: %w", err)
	}
	return key, crypto.PubkeyToAddress(key.PublicKey), nil
}

func parseAddress(v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("invalid address: %s", v)
	}
	return common.HexToAddress(v), nil
}
