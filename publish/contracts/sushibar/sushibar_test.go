package sushibar

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/units"
)

func TestEncodeEnterMatchesAmountEncoding(t *testing.T) {
	require := require.New(t)

	amount, err := units.ParseUnits("100", Decimals)
	require.NoError(err)

	data, err := EncodeEnter(EnterArgs{Amount: amount})
	require.NoError(err)

	want, err := calldata.EncodeAmount("enter(uint256)", "100", Decimals)
	require.NoError(err)
	require.Equal(want, data)

	decoded, err := DecodeEnter(data)
	require.NoError(err)
	require.Equal(0, amount.Cmp(decoded.Amount))
}

func TestDecodeEnterRejectsLeave(t *testing.T) {
	require := require.New(t)

	data, err := EncodeLeave(LeaveArgs{Share: big.NewInt(1)})
	require.NoError(err)

	_, err = DecodeEnter(data)
	require.ErrorIs(err, calldata.ErrSelectorMismatch)
}

func TestTarget(t *testing.T) {
	require := require.New(t)

	require.Equal(Address, Target(common.Address{}))
	other := common.HexToAddress("0x0000000000000000000000000000000000000001")
	require.Equal(other, Target(other))
	require.Equal("enter(uint256)", EnterSignature())
	require.Equal("SushiBar", Name())
}
