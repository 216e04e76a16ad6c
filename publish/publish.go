package publish

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/lmittmann/w3/w3types"
	"go.uber.org/zap"

	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/calldata"
	"github.com/Muhammad-Shahrukh-Azeem/DeChain/publish/chain"
)

const receiptPollInterval = 2 * time.Second

var (
	ErrChainMismatch = errors.New("rpc chain id does not match descriptor")
	ErrReverted      = errors.New("transaction reverted")
	ErrNoKey         = errors.New("publisher has no signing key")
	ErrHashMismatch  = errors.New("rpc returned a different transaction hash")
)

type (
	// Caller is the subset of *w3.Client the publisher needs.
	Caller interface {
		CallCtx(ctx context.Context, calls ...w3types.RPCCaller) error
		Close() error
	}

	Publisher struct {
		client    Caller
		chain     chain.Chain
		signer    types.Signer
		key       *ecdsa.PrivateKey
		address   common.Address
		gasFeeCap *big.Int
		gasTipCap *big.Int
		log       *zap.Logger
	}
)

// NewPublisher dials rpcURL, or the chain's default RPC when rpcURL is empty.
// key may be nil for read-only use (VerifyChain, Simulate).
func NewPublisher(rpcURL string, c chain.Chain, key *ecdsa.PrivateKey, gasFeeCap, gasTipCap *big.Int, log *zap.Logger) (*Publisher, error) {
	if rpcURL == "" {
		rpcURL = c.DefaultRPC()
	}
	client, err := w3.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return newPublisher(client, c, key, gasFeeCap, gasTipCap, log.With(zap.String("rpc", rpcURL))), nil
}

func newPublisher(client Caller, c chain.Chain, key *ecdsa.PrivateKey, gasFeeCap, gasTipCap *big.Int, log *zap.Logger) *Publisher {
	p := &Publisher{
		client:    client,
		chain:     c,
		signer:    types.NewLondonSigner(new(big.Int).SetUint64(c.ID)),
		key:       key,
		gasFeeCap: gasFeeCap,
		gasTipCap: gasTipCap,
		log:       log.With(zap.Uint64("chainID", c.ID)),
	}
	if key != nil {
		p.address = crypto.PubkeyToAddress(key.PublicKey)
	}
	return p
}

func (p *Publisher) Address() common.Address {
	return p.address
}

func (p *Publisher) Chain() chain.Chain {
	return p.chain
}

func (p *Publisher) Close() error {
	return p.client.Close()
}

// VerifyChain checks that the RPC endpoint serves the descriptor's chain.
func (p *Publisher) VerifyChain(ctx context.Context) error {
	var id uint64
	if err := p.client.CallCtx(ctx, eth.ChainID().Returns(&id)); err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	if id != p.chain.ID {
		return fmt.Errorf("%w: rpc reports %d, descriptor %d (%s)", ErrChainMismatch, id, p.chain.ID, p.chain.Name)
	}
	p.log.Debug("chain verified")
	return nil
}

func (p *Publisher) message(to common.Address, data []byte) *w3types.Message {
	return &w3types.Message{
		From:  p.address,
		To:    &to,
		Input: data,
	}
}

// Simulate runs data against to with eth_call and returns the raw output.
func (p *Publisher) Simulate(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	var out []byte
	if err := p.client.CallCtx(ctx, eth.Call(p.message(to, data), nil, nil).Returns(&out)); err != nil {
		return nil, fmt.Errorf("eth_call %s: %w", to.Hex(), err)
	}
	p.log.Debug("simulated call", zap.Stringer("to", to), zap.String("data", calldata.Hex(data)))
	return out, nil
}

func (p *Publisher) EstimateGas(ctx context.Context, to common.Address, data []byte) (uint64, error) {
	var gas uint64
	if err := p.client.CallCtx(ctx, eth.EstimateGas(p.message(to, data), nil).Returns(&gas)); err != nil {
		return 0, fmt.Errorf("estimate gas: %w", err)
	}
	return gas, nil
}

func (p *Publisher) getNonce(ctx context.Context) (uint64, error) {
	var nonce uint64
	if err := p.client.CallCtx(ctx, eth.Nonce(p.address, nil).Returns(&nonce)); err != nil {
		return 0, fmt.Errorf("get nonce: %w", err)
	}
	return nonce, nil
}

func (p *Publisher) sendTx(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	signedTx, err := types.SignTx(tx, p.signer, p.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}
	var hash common.Hash
	if err := p.client.CallCtx(ctx, eth.SendTx(signedTx).Returns(&hash)); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}
	if hash != signedTx.Hash() {
		return common.Hash{}, fmt.Errorf("%w: node returned %s, signed %s", ErrHashMismatch, hash.Hex(), signedTx.Hash().Hex())
	}
	return hash, nil
}

// Send signs and submits an EIP-1559 transaction carrying data to to.
func (p *Publisher) Send(ctx context.Context, to common.Address, data []byte, gasLimit uint64) (common.Hash, error) {
	if p.key == nil {
		return common.Hash{}, ErrNoKey
	}
	nonce, err := p.getNonce(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   new(big.Int).SetUint64(p.chain.ID),
		Nonce:     nonce,
		To:        &to,
		GasFeeCap: p.gasFeeCap,
		GasTipCap: p.gasTipCap,
		Gas:       gasLimit,
		Data:      data,
	})

	hash, err := p.sendTx(ctx, tx)
	if err != nil {
		return common.Hash{}, err
	}
	p.log.Info("sent transaction",
		zap.Stringer("hash", hash),
		zap.Stringer("to", to),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas", gasLimit),
	)
	return hash, nil
}

func (p *Publisher) WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		var receipt *types.Receipt
		err := p.client.CallCtx(ctx, eth.TxReceipt(txHash).Returns(&receipt))
		if err == nil && receipt != nil {
			return receipt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Call sends data to to and waits for it to be mined successfully.
func (p *Publisher) Call(ctx context.Context, to common.Address, data []byte, gasLimit uint64) (*types.Receipt, error) {
	hash, err := p.Send(ctx, to, data, gasLimit)
	if err != nil {
		return nil, err
	}
	receipt, err := p.WaitForReceipt(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("wait %s: %w", hash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", ErrReverted, hash.Hex())
	}
	p.log.Info("transaction mined", zap.Stringer("hash", hash), zap.Uint64("gasUsed", receipt.GasUsed))
	return receipt, nil
}
