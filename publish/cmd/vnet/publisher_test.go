package main

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/contracts/erc20"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/contracts/sushibar"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/internal/ethtest"
)

// withNode points the CLI at an in-process node for chain 1. A signing key
// is exported when withKey is set.
func withNode(t *testing.T, withKey bool) *ethtest.Node {
	t.Helper()

	node := ethtest.NewNode(1)
	t.Setenv("RPC_URL", node.HTTP(t))
	t.Setenv("CHAIN_ID", "1")
	t.Setenv("PRIVATE_KEY", "")
	if withKey {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		t.Setenv("PRIVATE_KEY", hexutil.Encode(crypto.FromECDSA(key)))
	}
	return node
}

func hundredSushi(t *testing.T) []byte {
	t.Helper()
	amount, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(t, ok)
	data, err := sushibar.EncodeEnter(sushibar.EnterArgs{Amount: amount})
	require.NoError(t, err)
	return data
}

func TestVerify(t *testing.T) {
	require := require.New(t)

	node := withNode(t, false)
	out, err := run(t, "verify")
	require.NoError(err)
	require.Equal("chain 1 (Virtual Mainnet) ok\n", out)

	node.SetChainID(5)
	_, err = run(t, "verify")
	require.ErrorIs(err, publish.ErrChainMismatch)
}

func TestEnterSimulates(t *testing.T) {
	require := require.New(t)

	node := withNode(t, false)
	out, err := run(t, "enter")
	require.NoError(err)

	var report enterReport
	require.NoError(json.Unmarshal([]byte(out), &report))
	require.Equal(sushibar.Address.Hex(), report.Bar)
	require.Equal(calldata.Hex(hundredSushi(t)), report.CallData)
	require.Empty(report.Approve)
	require.Empty(report.Enter)

	require.Empty(node.Sent())
	require.Len(node.Calls(), 1)
}

func TestEnterSend(t *testing.T) {
	require := require.New(t)

	node := withNode(t, true)
	out, err := run(t, "enter", "--send")
	require.NoError(err)

	var report enterReport
	require.NoError(json.Unmarshal([]byte(out), &report))

	sent := node.Sent()
	require.Len(sent, 1)
	require.Equal(sent[0].Hash().Hex(), report.Enter)
	require.Equal(sushibar.Address, *sent[0].To())
	require.Equal(hundredSushi(t), sent[0].Data())
	require.Equal(sushibar.EnterGasLimit, sent[0].Gas())
	require.Equal(uint64(42_000), report.GasUsed)
}

func TestEnterApproveThenSend(t *testing.T) {
	require := require.New(t)

	node := withNode(t, true)
	out, err := run(t, "enter", "--approve", "--send", "--amount", "2.5")
	require.NoError(err)

	var report enterReport
	require.NoError(json.Unmarshal([]byte(out), &report))

	sent := node.Sent()
	require.Len(sent, 2)

	approve, enter := sent[0], sent[1]
	require.Equal(sushibar.SushiToken, *approve.To())
	want, err := erc20.EncodeApprove(erc20.ApproveArgs{Spender: sushibar.Address, Amount: big.NewInt(2_500_000_000_000_000_000)})
	require.NoError(err)
	require.Equal(want, approve.Data())
	require.Equal(approve.Hash().Hex(), report.Approve)

	require.Equal(sushibar.Address, *enter.To())
	require.Equal(enter.Hash().Hex(), report.Enter)
	require.Equal(approve.Nonce()+1, enter.Nonce())
}

func TestEnterApproveNeedsKey(t *testing.T) {
	require := require.New(t)

	node := withNode(t, false)
	_, err := run(t, "enter", "--approve")
	require.ErrorContains(err, "PRIVATE_KEY")
	require.Empty(node.Sent())
}
