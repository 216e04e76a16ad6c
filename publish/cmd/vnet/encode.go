package main

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/units"
)

const (
	defaultSignature = "function enter(uint256 amount)"
	defaultAmount    = "100"
)

func newEncodeCmd(e *env) *cobra.Command {
	var (
		sig      string
		amount   string
		decimals uint8
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a single-amount function call and print it as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := calldata.EncodeAmount(sig, amount, decimals)
			if err != nil {
				return err
			}
			e.log.Debug("encoded call data",
				zap.String("sig", sig),
				zap.String("amount", amount),
				zap.Uint8("decimals", decimals),
				zap.Int("bytes", len(data)),
			)
			fmt.Fprintln(cmd.OutOrStdout(), calldata.Hex(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&sig, "sig", defaultSignature, "function signature")
	cmd.Flags().StringVar(&amount, "amount", defaultAmount, "decimal amount")
	cmd.Flags().Uint8Var(&decimals, "decimals", 18, "decimal places of the amount")
	return cmd
}

func newDecodeCmd(e *env) *cobra.Command {
	var (
		sig      string
		decimals uint8
	)
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode call data against a function signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := calldata.ParseHex(args[0])
			if err != nil {
				return err
			}
			f, err := calldata.NewFunction(sig)
			if err != nil {
				return err
			}
			values, err := f.Decode(data)
			if err != nil {
				return err
			}

			out := make([]string, len(values))
			for i, v := range values {
				if n, ok := v.(*big.Int); ok && cmd.Flags().Changed("decimals") {
					out[i] = units.FormatUnits(n, decimals)
					continue
				}
				out[i] = fmt.Sprint(v)
			}
			return printJSON(cmd, map[string]any{
				"signature": f.Signature(),
				"args":      out,
			})
		},
	}
	cmd.Flags().StringVar(&sig, "sig", defaultSignature, "function signature")
	cmd.Flags().Uint8Var(&decimals, "decimals", 18, "render integer arguments with this many decimals")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(blob))
	return nil
}
