package sushibar

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
)

const (
	name = "SushiBar"
	// Decimals of both SUSHI and xSUSHI.
	Decimals uint8 = 18

	EnterGasLimit uint64 = 120_000
)

var (
	// Address of the xSUSHI bar on Ethereum mainnet.
	Address = w3.A("0x8798249c2E607446EfB7Ad49eC89dD1865Ff4272")
	// SushiToken is the token the bar pulls on enter.
	SushiToken = w3.A("0x6B3595068778DD592e39A122f4f5a5cF09C90fE2")

	funcEnter = calldata.MustNewFunction("function enter(uint256 _amount)")
	funcLeave = calldata.MustNewFunction("function leave(uint256 _share)")
)

type EnterArgs struct {
	Amount *big.Int
}

type LeaveArgs struct {
	Share *big.Int
}

func Name() string { return name }

func EnterSignature() string { return funcEnter.Signature() }

func EncodeEnter(args EnterArgs) ([]byte, error) {
	return funcEnter.Encode(args.Amount)
}

func EncodeLeave(args LeaveArgs) ([]byte, error) {
	return funcLeave.Encode(args.Share)
}

func DecodeEnter(data []byte) (EnterArgs, error) {
	args, err := funcEnter.Decode(data)
	if err != nil {
		return EnterArgs{}, err
	}
	amount, ok := args[0].(*big.Int)
	if !ok {
		return EnterArgs{}, fmt.Errorf("decode enter: unexpected amount type %T", args[0])
	}
	return EnterArgs{Amount: amount}, nil
}

// Target returns addr, or the mainnet bar when addr is the zero address.
func Target(addr common.Address) common.Address {
	if addr == (common.Address{}) {
		return Address
	}
	return addr
}
