package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/config"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/logging"
)

// env is the shared state built by the root command before any subcommand runs.
type env struct {
	configPath string
	cfg        config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "vnet",
		Short:         "Call-data encoding and wallet wiring for a virtual EVM network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = e.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", os.Getenv("VNET_CONFIG"), "YAML config file (VNET_CONFIG)")

	root.AddCommand(
		newEncodeCmd(e),
		newDecodeCmd(e),
		newChainCmd(e),
		newWalletConfigCmd(e),
		newServeCmd(e),
		newVerifyCmd(e),
		newEnterCmd(e),
	)
	return root
}
