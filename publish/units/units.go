package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// MaxDecimals bounds the scale accepted by ParseUnits and FormatUnits.
const MaxDecimals = 77

var (
	ErrEmpty           = errors.New("empty numeric literal")
	ErrInvalidLiteral  = errors.New("invalid numeric literal")
	ErrFractionTooLong = errors.New("fractional component exceeds decimals")
	ErrDecimals        = errors.New("decimals out of range")
	ErrNegative        = errors.New("negative value")
	ErrOverflow        = errors.New("value out of range")
	ErrBitSize         = errors.New("invalid integer bit size")
)

// ParseUnits scales a decimal literal such as "100" or "1.5" into an integer
// with the given number of decimal places.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	if decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: %d", ErrDecimals, decimals)
	}

	v := strings.TrimSpace(value)
	if v == "" {
		return nil, ErrEmpty
	}

	negative := false
	if strings.HasPrefix(v, "-") {
		negative = true
		v = v[1:]
	}

	whole, fraction, hasDot := strings.Cut(v, ".")
	if hasDot && strings.Contains(fraction, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, value)
	}
	if whole == "" && fraction == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, value)
	}
	if !digitsOnly(whole) || !digitsOnly(fraction) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, value)
	}

	fraction = strings.TrimRight(fraction, "0")
	if len(fraction) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has %d fractional digits, max %d", ErrFractionTooLong, value, len(fraction), decimals)
	}
	if whole == "" {
		whole = "0"
	}

	digits := whole + fraction + strings.Repeat("0", int(decimals)-len(fraction))
	out, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLiteral, value)
	}
	if negative {
		out.Neg(out)
	}
	return out, nil
}

// FormatUnits renders v with the given number of decimal places. The
// fractional part keeps at least one digit.
func FormatUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0.0"
	}
	abs := new(big.Int).Abs(v).String()
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
	}

	d := int(decimals)
	if len(abs) <= d {
		abs = strings.Repeat("0", d-len(abs)+1) + abs
	}
	whole := abs[:len(abs)-d]
	fraction := strings.TrimRight(abs[len(abs)-d:], "0")
	if fraction == "" {
		fraction = "0"
	}
	return sign + whole + "." + fraction
}

// ToUint256 checks that v fits an ABI uint256 slot.
func ToUint256(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidLiteral)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegative, v)
	}
	out, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("%w: %s", ErrOverflow, v)
	}
	return out, nil
}

// CheckRange checks that v fits an ABI integer of the given bit size.
// Negative values are only accepted when signed is set.
func CheckRange(v *big.Int, bits int, signed bool) error {
	if v == nil {
		return fmt.Errorf("%w: nil", ErrInvalidLiteral)
	}
	if bits <= 0 || bits > 256 || bits%8 != 0 {
		return fmt.Errorf("%w: %d", ErrBitSize, bits)
	}
	if !signed {
		if v.Sign() < 0 {
			return fmt.Errorf("%w: %s", ErrNegative, v)
		}
		if v.BitLen() > bits {
			return fmt.Errorf("%w: %s does not fit uint%d", ErrOverflow, v, bits)
		}
		return nil
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	lowest := new(big.Int).Neg(limit)
	if v.Cmp(lowest) < 0 || v.Cmp(limit) >= 0 {
		return fmt.Errorf("%w: %s does not fit int%d", ErrOverflow, v, bits)
	}
	return nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
