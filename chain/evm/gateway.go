package evm

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/contracts"
	"github.com/sora-xor/bridge-relayer/network"
)

// ErrCommitmentNotFound mirrors chain/substrate's sentinel for the EVM
// source: the requested nonce has not been observed in any scanned window
// yet (spec §4.1's "not yet emitted" outcome of the discovery step).
var ErrCommitmentNotFound = fmt.Errorf("evm: commitment not found for nonce")

// submitGasOverhead is added on top of a batch's own declared total_max_gas
// to cover the channel contract's fixed per-submission bookkeeping (nonce
// check, merkle/multisig verification, dispatch loop overhead) that isn't
// accounted for in any individual message's MaxGas (spec §6).
const submitGasOverhead = 260_000

// Gateway adapts a channel contract to relay.SourceSide and relay.ReceiverSide.
// It does not implement the signer registry: per spec §4.1, approvals live
// on Main regardless of which chain sources a direction's commitments, so
// registry access is wired separately at the direction level through
// signer.Registry over a *substrate.Client pointed at Main.
type Gateway struct {
	conn    *Connection
	scanner *ChannelScanner
	srcNet  network.GenericNetworkId

	mu             sync.Mutex
	inboundByNonce map[uint64]commitment.EVMInbound
	highestInbound uint64
}

// NewGateway binds a Gateway to the channel contract at channelAddress.
// srcNet identifies this EVM chain in the direction's Sub::Inbound digests
// it ultimately signs (spec §3's GenericNetworkId::EVM tag).
func NewGateway(conn *Connection, channelAddress common.Address, srcNet network.GenericNetworkId) (*Gateway, error) {
	scanner, err := NewChannelScanner(conn, channelAddress)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		conn:           conn,
		scanner:        scanner,
		srcNet:         srcNet,
		inboundByNonce: make(map[uint64]commitment.EVMInbound),
	}, nil
}

// refresh scans for newly dispatched messages and folds them into the
// nonce-indexed view CommitmentByNonce serves from. The channel contract has
// no "outbound_nonce(dst)" storage item to read directly, unlike a
// Substrate pallet, so the gateway maintains the equivalent itself from the
// MessageDispatched log stream (spec §9's EVM event scan implementation
// detail).
func (g *Gateway) refresh(ctx context.Context) error {
	result, err := g.scanner.Tick(ctx)
	if err != nil {
		return fmt.Errorf("scan channel %s: %w", g.scanner.Address(), err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if len(result.Resets) > 0 {
		// A reset invalidates outbound_nonce accounting below the reset
		// block's batch, but EVMInbound's own nonce sequence (the contract's
		// message-dispatch counter, not the batch counter a reset rewinds)
		// is unaffected; nothing to roll back here.
		log.WithFields(log.Fields{
			"channel": g.scanner.Address().Hex(),
			"resets":  len(result.Resets),
		}).Info("channel reset observed")
	}

	for _, d := range result.Dispatched {
		in := commitment.EVMInbound{
			Channel:     g.scanner.Address(),
			Source:      d.Source,
			BlockNumber: d.Raw.BlockNumber,
			NonceValue:  d.Nonce,
			Payload:     d.Payload,
		}
		g.inboundByNonce[d.Nonce] = in
		if d.Nonce > g.highestInbound {
			g.highestInbound = d.Nonce
		}
	}

	return nil
}

// OutboundNonce implements relay.SourceSide: the highest EVM::Inbound nonce
// this channel has emitted toward dstNet (Main).
func (g *Gateway) OutboundNonce(ctx context.Context, dstNet network.GenericNetworkId) (uint64, error) {
	if err := g.refresh(ctx); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.highestInbound, nil
}

// CommitmentByNonce implements relay.SourceSide.
func (g *Gateway) CommitmentByNonce(ctx context.Context, dstNet network.GenericNetworkId, nonce uint64) (commitment.GenericCommitment, error) {
	if err := g.refresh(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	c, ok := g.inboundByNonce[nonce]
	if !ok {
		return nil, fmt.Errorf("nonce %d: %w", nonce, ErrCommitmentNotFound)
	}
	return c, nil
}

// InboundNonce implements relay.ReceiverSide: the last batch this channel
// has accepted from the opposite side (Main::Outbound).
func (g *Gateway) InboundNonce(ctx context.Context, srcNet network.GenericNetworkId) (uint64, error) {
	return g.scanner.BatchNonce(ctx)
}

// SubmitCommitment implements relay.ReceiverSide for an EVM::Outbound batch.
func (g *Gateway) SubmitCommitment(ctx context.Context, srcNet network.GenericNetworkId, c commitment.GenericCommitment, proof commitment.Proof) error {
	out, ok := c.(commitment.EVMOutbound)
	if !ok {
		return fmt.Errorf("evm: SubmitCommitment expects commitment.EVMOutbound, got %T", c)
	}
	if proof.EVM == nil {
		return fmt.Errorf("evm: SubmitCommitment requires an EVM proof")
	}

	messages := make([]contracts.ChannelMessage, len(out.Messages))
	for i, m := range out.Messages {
		messages[i] = contracts.ChannelMessage{Target: m.Target, MaxGas: m.MaxGas, Payload: m.Payload}
	}
	batch := contracts.ChannelBatch{
		Nonce:       out.NonceValue,
		TotalMaxGas: out.TotalMaxGas,
		Messages:    messages,
	}

	opts := g.conn.MakeTxOpts(ctx)
	// spec §6's gas policy overrides whatever static limit config carries:
	// a batch's dispatch gas is bounded by its own declared total, so the
	// submitting transaction must cover at least that much plus a fixed
	// overhead for the channel contract's own batch-processing logic.
	opts.GasLimit = out.TotalMaxGas + submitGasOverhead
	tx, err := g.scanner.Channel().Submit(opts, batch, proof.EVM.V, proof.EVM.R, proof.EVM.S)
	if err != nil {
		return fmt.Errorf("submit batch %d: %w", out.NonceValue, err)
	}

	_, err = g.conn.WatchTransaction(ctx, tx, g.conn.config.Descendants)
	if err != nil {
		return fmt.Errorf("await batch %d confirmation: %w", out.NonceValue, err)
	}
	return nil
}

