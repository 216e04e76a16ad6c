package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/contracts/erc20"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/contracts/sushibar"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/units"
)

type enterReport struct {
	Bar      string `json:"bar"`
	CallData string `json:"call_data"`
	Approve  string `json:"approve_tx,omitempty"`
	Enter    string `json:"enter_tx,omitempty"`
	GasUsed  uint64 `json:"gas_used,omitempty"`
}

func newEnterCmd(e *env) *cobra.Command {
	var (
		amount  string
		bar     string
		token   string
		approve bool
		send    bool
	)
	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Deposit SUSHI into the bar: simulate by default, --send to submit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			barAddr := sushibar.Address
			if bar != "" {
				a, err := parseAddress(bar)
				if err != nil {
					return err
				}
				barAddr = sushibar.Target(a)
			}
			tokenAddr := sushibar.SushiToken
			if token != "" {
				a, err := parseAddress(token)
				if err != nil {
					return err
				}
				tokenAddr = a
			}

			value, err := units.ParseUnits(amount, sushibar.Decimals)
			if err != nil {
				return err
			}
			if _, err := units.ToUint256(value); err != nil {
				return err
			}
			data, err := sushibar.EncodeEnter(sushibar.EnterArgs{Amount: value})
			if err != nil {
				return err
			}
			out := enterReport{Bar: barAddr.Hex(), CallData: calldata.Hex(data)}

			p, err := newPublisher(e, send || approve)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx, cancel := timeoutContext(cmd, e)
			defer cancel()
			if err := p.VerifyChain(ctx); err != nil {
				return err
			}

			if approve {
				approveData, err := erc20.EncodeApprove(erc20.ApproveArgs{Spender: barAddr, Amount: value})
				if err != nil {
					return err
				}
				receipt, err := p.Call(ctx, tokenAddr, approveData, erc20.ApproveGasLimit)
				if err != nil {
					return err
				}
				out.Approve = receipt.TxHash.Hex()
			}

			if !send {
				if _, err := p.Simulate(ctx, barAddr, data); err != nil {
					return err
				}
				e.log.Info("simulated enter", zap.String("amount", amount), zap.Stringer("bar", barAddr))
				return printJSON(cmd, out)
			}

			receipt, err := p.Call(ctx, barAddr, data, sushibar.EnterGasLimit)
			if err != nil {
				return err
			}
			out.Enter = receipt.TxHash.Hex()
			out.GasUsed = receipt.GasUsed
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&amount, "amount", defaultAmount, "SUSHI amount")
	cmd.Flags().StringVar(&bar, "bar", "", "bar address (default mainnet xSUSHI)")
	cmd.Flags().StringVar(&token, "token", "", "token to approve (default mainnet SUSHI)")
	cmd.Flags().BoolVar(&approve, "approve", false, "send an approve for the amount first")
	cmd.Flags().BoolVar(&send, "send", false, "submit the transaction instead of simulating it")
	return cmd
}
