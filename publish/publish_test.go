package publish

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lmittmann/w3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/chain"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/contracts/sushibar"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/internal/ethtest"
)

func newTestPublisher(t *testing.T, node *ethtest.Node, withKey bool) *Publisher {
	t.Helper()

	var key *ecdsa.PrivateKey
	if withKey {
		var err error
		key, err = crypto.GenerateKey()
		require.NoError(t, err)
	}
	client := w3.NewClient(rpc.DialInProc(node.Server(t)))
	p := newPublisher(client, chain.VirtualMainnet(), key, big.NewInt(2_000_000_000), big.NewInt(1_000_000_000), zap.NewNop())
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestVerifyChain(t *testing.T) {
	require := require.New(t)

	node := ethtest.NewNode(1)
	p := newTestPublisher(t, node, false)
	require.NoError(p.VerifyChain(testContext(t)))

	node.SetChainID(11155111)
	err := p.VerifyChain(testContext(t))
	require.ErrorIs(err, ErrChainMismatch)
}

func TestSimulateAndEstimate(t *testing.T) {
	require := require.New(t)

	node := ethtest.NewNode(1)
	node.SetOutput([]byte{0xca, 0xfe})
	p := newTestPublisher(t, node, true)

	data, err := sushibar.EncodeEnter(sushibar.EnterArgs{Amount: big.NewInt(100)})
	require.NoError(err)

	out, err := p.Simulate(testContext(t), sushibar.Address, data)
	require.NoError(err)
	require.Equal([]byte{0xca, 0xfe}, out)

	calls := node.Calls()
	require.Len(calls, 1)
	require.Contains(calls[0], "to")

	gas, err := p.EstimateGas(testContext(t), sushibar.Address, data)
	require.NoError(err)
	require.Equal(uint64(51_234), gas)
}

func TestCallSignsForChain(t *testing.T) {
	require := require.New(t)

	node := ethtest.NewNode(1)
	node.SetNonce(7)
	p := newTestPublisher(t, node, true)

	data, err := sushibar.EncodeEnter(sushibar.EnterArgs{Amount: big.NewInt(100)})
	require.NoError(err)

	receipt, err := p.Call(testContext(t), sushibar.Address, data, sushibar.EnterGasLimit)
	require.NoError(err)
	require.Equal(types.ReceiptStatusSuccessful, receipt.Status)

	sent := node.Sent()
	require.Len(sent, 1)
	tx := sent[0]
	require.Equal(receipt.TxHash, tx.Hash())
	require.Equal(uint64(7), tx.Nonce())
	require.Equal(sushibar.Address, *tx.To())
	require.Equal(data, tx.Data())
	require.Equal(sushibar.EnterGasLimit, tx.Gas())
	require.Equal(0, big.NewInt(1).Cmp(tx.ChainId()))

	from, err := types.Sender(types.NewLondonSigner(big.NewInt(1)), tx)
	require.NoError(err)
	require.Equal(p.Address(), from)
}

func TestCallReverted(t *testing.T) {
	require := require.New(t)

	node := ethtest.NewNode(1)
	node.SetStatus(types.ReceiptStatusFailed)
	p := newTestPublisher(t, node, true)

	_, err := p.Call(testContext(t), sushibar.Address, []byte{0x01}, 21_000)
	require.ErrorIs(err, ErrReverted)
}

func TestSendWithoutKey(t *testing.T) {
	p := newTestPublisher(t, ethtest.NewNode(1), false)
	_, err := p.Send(testContext(t), sushibar.Address, nil, 21_000)
	require.ErrorIs(t, err, ErrNoKey)
}

func TestSendRejectsForeignHash(t *testing.T) {
	require := require.New(t)

	node := ethtest.NewNode(1)
	node.ReturnWrongHash()
	p := newTestPublisher(t, node, true)

	_, err := p.Send(testContext(t), sushibar.Address, []byte{0x01}, 21_000)
	require.ErrorIs(err, ErrHashMismatch)
}
