package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/walletconfig"
)

func newChainCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Inspect configured chain descriptors",
	}

	var id uint64
	show := &cobra.Command{
		Use:   "show",
		Short: "Print chain descriptors as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := e.cfg.Registry()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("id") {
				return printJSON(cmd, reg.All())
			}
			c, err := reg.Get(id)
			if err != nil {
				return err
			}
			return printJSON(cmd, c)
		},
	}
	show.Flags().Uint64Var(&id, "id", 0, "only this chain id")

	var paramsID uint64
	addParams := &cobra.Command{
		Use:   "add-params",
		Short: "Print the wallet_addEthereumChain parameter for a chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := e.cfg.Registry()
			if err != nil {
				return err
			}
			c, err := reg.Get(paramsID)
			if err != nil {
				return err
			}
			return printJSON(cmd, c.AddChainParams())
		},
	}
	addParams.Flags().Uint64Var(&paramsID, "id", 1, "chain id")

	cmd.AddCommand(show, addParams)
	return cmd
}

func newWalletConfigCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet-config",
		Short: "Print the wallet-connection configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wc, err := buildWalletConfig(e)
			if err != nil {
				return err
			}
			return printJSON(cmd, wc)
		},
	}
}

func buildWalletConfig(e *env) (*walletconfig.Config, error) {
	reg, err := e.cfg.Registry()
	if err != nil {
		return nil, err
	}
	wc, err := walletconfig.Build(e.cfg.WalletOptions(reg.All()))
	if err != nil {
		return nil, err
	}
	if wc.PlaceholderProjectID {
		e.log.Warn("wallet config uses the placeholder project id, set WALLETCONNECT_PROJECT_ID",
			zap.String("projectID", wc.ProjectID))
	}
	return wc, nil
}
