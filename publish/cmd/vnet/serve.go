package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/server"
)

func newServeCmd(e *env) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wallet configuration and chain descriptors over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("listen") {
				addr = e.cfg.Server.ListenAddr
			}
			reg, err := e.cfg.Registry()
			if err != nil {
				return err
			}
			wc, err := buildWalletConfig(e)
			if err != nil {
				return err
			}

			promReg := prometheus.NewRegistry()
			promReg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			s, err := server.New(addr, reg, wc, promReg, promReg, e.log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx, e.cfg.Server.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "listen", "", "listen address (default from config, LISTEN_ADDR)")
	return cmd
}
