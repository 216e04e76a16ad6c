package calldata

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/lmittmann/w3"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/units"
)

var (
	ErrShortCallData    = errors.New("call data shorter than a selector")
	ErrSelectorMismatch = errors.New("selector mismatch")
	ErrArgCount         = errors.New("wrong argument count")
	ErrNotInteger       = errors.New("argument is not an integer type")
)

// Function is a single contract function bound from its signature.
type Function struct {
	fn   *w3.Func
	name string
}

func NewFunction(signature string) (*Function, error) {
	fn, err := parse(signature)
	if err != nil {
		return nil, err
	}
	name, _, _ := strings.Cut(fn.Signature, "(")
	return &Function{fn: fn, name: name}, nil
}

func MustNewFunction(signature string) *Function {
	f, err := NewFunction(signature)
	if err != nil {
		panic(err)
	}
	return f
}

// Signature returns the canonical signature, e.g. "enter(uint256)".
func (f *Function) Signature() string {
	return f.fn.Signature
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) NumArgs() int {
	return len(f.fn.Args)
}

func (f *Function) Selector() [4]byte {
	return f.fn.Selector
}

func (f *Function) Encode(args ...any) ([]byte, error) {
	if len(args) != f.NumArgs() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, f.Signature(), f.NumArgs(), len(args))
	}
	data, err := f.fn.EncodeArgs(args...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", f.Signature(), err)
	}
	return data, nil
}

// Decode checks the selector of data and unpacks the arguments that follow it.
func (f *Function) Decode(data []byte) ([]any, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortCallData, len(data))
	}
	sel := f.fn.Selector
	if !bytes.Equal(data[:4], sel[:]) {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrSelectorMismatch, hexutil.Encode(sel[:]), hexutil.Encode(data[:4]))
	}
	args, err := f.fn.Args.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Signature(), err)
	}
	return args, nil
}

// EncodeAmount encodes a call to a single-argument function whose argument
// is an integer amount scaled to the given number of decimals. The amount
// must fit the declared width; negative amounts need a signed type.
func EncodeAmount(signature, amount string, decimals uint8) ([]byte, error) {
	f, err := NewFunction(signature)
	if err != nil {
		return nil, err
	}
	if f.NumArgs() != 1 {
		return nil, fmt.Errorf("%w: %s takes %d, want 1", ErrArgCount, f.Signature(), f.NumArgs())
	}

	v, err := units.ParseUnits(amount, decimals)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	arg, err := integerArg(f.fn.Args[0].Type, v)
	if err != nil {
		return nil, fmt.Errorf("%s amount: %w", f.Signature(), err)
	}
	return f.Encode(arg)
}

// integerArg range-checks v against t and converts it to the Go type the
// ABI packer expects: native integers up to 64 bits, *big.Int above.
func integerArg(t abi.Type, v *big.Int) (any, error) {
	var signed bool
	switch t.T {
	case abi.UintTy:
	case abi.IntTy:
		signed = true
	default:
		return nil, ErrNotInteger
	}
	if err := units.CheckRange(v, t.Size, signed); err != nil {
		return nil, err
	}

	switch {
	case t.Size == 8 && signed:
		return int8(v.Int64()), nil
	case t.Size == 8:
		return uint8(v.Uint64()), nil
	case t.Size == 16 && signed:
		return int16(v.Int64()), nil
	case t.Size == 16:
		return uint16(v.Uint64()), nil
	case t.Size == 32 && signed:
		return int32(v.Int64()), nil
	case t.Size == 32:
		return uint32(v.Uint64()), nil
	case t.Size == 64 && signed:
		return v.Int64(), nil
	case t.Size == 64:
		return v.Uint64(), nil
	}
	return v, nil
}

// Hex renders b as 0x-prefixed lowercase hex.
func Hex(b []byte) string {
	return hexutil.Encode(b)
}

// ParseHex accepts call data with or without the 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return b, nil
}
