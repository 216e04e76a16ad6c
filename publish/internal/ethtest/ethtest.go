// Package ethtest serves an in-process fake of the eth_ JSON-RPC methods the
// publisher uses.
package ethtest

import (
	"encoding/json"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// Node records calls and raw transactions. Receipts carry Status for every
// transaction it has accepted.
type Node struct {
	mu      sync.Mutex
	chainID uint64
	nonce   uint64
	output  []byte
	status  uint64
	wrong   bool
	sent    []*types.Transaction
	calls   []map[string]any
}

func NewNode(chainID uint64) *Node {
	return &Node{chainID: chainID, status: types.ReceiptStatusSuccessful}
}

func (n *Node) SetChainID(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chainID = id
}

func (n *Node) SetNonce(nonce uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nonce = nonce
}

// SetOutput sets the bytes eth_call returns.
func (n *Node) SetOutput(out []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.output = out
}

func (n *Node) SetStatus(status uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.status = status
}

// ReturnWrongHash makes eth_sendRawTransaction answer with a hash that does
// not belong to the submitted transaction.
func (n *Node) ReturnWrongHash() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.wrong = true
}

func (n *Node) Sent() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Transaction(nil), n.sent...)
}

// Calls returns the eth_call messages in arrival order.
func (n *Node) Calls() []map[string]any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]map[string]any(nil), n.calls...)
}

// Server registers n under the eth namespace and stops it on cleanup.
func (n *Node) Server(t testing.TB) *rpc.Server {
	t.Helper()
	srv := rpc.NewServer()
	if err := srv.RegisterName("eth", &api{n}); err != nil {
		t.Fatalf("register eth api: %v", err)
	}
	t.Cleanup(srv.Stop)
	return srv
}

// HTTP serves n over HTTP and returns the endpoint URL.
func (n *Node) HTTP(t testing.TB) string {
	t.Helper()
	hs := httptest.NewServer(n.Server(t))
	t.Cleanup(hs.Close)
	return hs.URL
}

type api struct {
	n *Node
}

func (a *api) ChainId() hexutil.Uint64 {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()
	return hexutil.Uint64(a.n.chainID)
}

func (a *api) GetTransactionCount(addr common.Address, block *string) hexutil.Uint64 {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()
	return hexutil.Uint64(a.n.nonce + uint64(len(a.n.sent)))
}

func (a *api) Call(msg map[string]any, block *string, overrides *json.RawMessage) hexutil.Bytes {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()
	a.n.calls = append(a.n.calls, msg)
	return a.n.output
}

func (a *api) EstimateGas(msg map[string]any, block *string, overrides *json.RawMessage) hexutil.Uint64 {
	return 51_234
}

func (a *api) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}
	a.n.mu.Lock()
	defer a.n.mu.Unlock()
	a.n.sent = append(a.n.sent, tx)
	if a.n.wrong {
		return common.HexToHash("0xdead"), nil
	}
	return tx.Hash(), nil
}

func (a *api) GetTransactionReceipt(hash common.Hash) *types.Receipt {
	a.n.mu.Lock()
	defer a.n.mu.Unlock()
	return &types.Receipt{
		Type:              types.DynamicFeeTxType,
		Status:            a.n.status,
		CumulativeGasUsed: 42_000,
		Logs:              []*types.Log{},
		TxHash:            hash,
		GasUsed:           42_000,
		EffectiveGasPrice: big.NewInt(1),
		BlockNumber:       big.NewInt(1),
	}
}
