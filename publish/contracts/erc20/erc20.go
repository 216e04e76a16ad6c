package erc20

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

const ApproveGasLimit uint64 = 80_000

var (
	funcApprove   = w3.MustNewFunc("approve(address,uint256)", "bool")
	funcAllowance = w3.MustNewFunc("allowance(address,address)", "uint256")
	funcBalanceOf = w3.MustNewFunc("balanceOf(address)", "uint256")
	funcDecimals  = w3.MustNewFunc("decimals()", "uint8")
)

type ApproveArgs struct {
	Spender common.Address
	Amount  *big.Int
}

func EncodeApprove(args ApproveArgs) ([]byte, error) {
	return funcApprove.EncodeArgs(args.Spender, args.Amount)
}

func EncodeAllowance(owner, spender common.Address) ([]byte, error) {
	return funcAllowance.EncodeArgs(owner, spender)
}

func EncodeBalanceOf(owner common.Address) ([]byte, error) {
	return funcBalanceOf.EncodeArgs(owner)
}

func EncodeDecimals() ([]byte, error) {
	return funcDecimals.EncodeArgs()
}

// DecodeBalance unpacks the uint256 returned by balanceOf or allowance.
func DecodeBalance(output []byte) (*big.Int, error) {
	amount := new(big.Int)
	if err := funcBalanceOf.DecodeReturns(output, amount); err != nil {
		return nil, err
	}
	return amount, nil
}

func DecodeDecimals(output []byte) (uint8, error) {
	var decimals uint8
	if err := funcDecimals.DecodeReturns(output, &decimals); err != nil {
		return 0, err
	}
	return decimals, nil
}
