package evm

import (
	"context"
	"fmt"
	"math/big"

	goEthereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/sora-xor/bridge-relayer/contracts"
)

// scanWindowBlocks bounds how far back ChannelScanner looks for history on
// its first tick: recent finalized history only, not full chain genesis.
const scanWindowBlocks = 49_000

// ChannelScanner discovers new commitments emitted by a channel contract by
// filtering MessageDispatched/BatchDispatched/Reseted logs over the window
// [latestChannelBlock, finalized], advancing the cursor after each tick.
type ChannelScanner struct {
	conn               *Connection
	channel            *contracts.Channel
	channelAddress     common.Address
	latestChannelBlock uint64
	initialized        bool
}

func NewChannelScanner(conn *Connection, channelAddress common.Address) (*ChannelScanner, error) {
	channel, err := contracts.NewChannel(channelAddress, conn.Client())
	if err != nil {
		return nil, fmt.Errorf("bind channel contract at %s: %w", channelAddress, err)
	}
	return &ChannelScanner{conn: conn, channel: channel, channelAddress: channelAddress}, nil
}

// ScanResult is one tick's worth of discovered log activity, in the order
// a caller should apply them: resets first, then dispatches.
type ScanResult struct {
	Resets      []contracts.ChannelReseted
	Dispatched  []contracts.ChannelMessageDispatched
	Batches     []contracts.ChannelBatchDispatched
	FromBlock   uint64
	ToBlock     uint64
}

// Tick scans one window of blocks ending at the chain's latest finalized
// block. On the first call the window starts scanWindowBlocks behind
// finalized (or genesis, whichever is later); subsequent calls resume from
// where the previous tick left off.
func (s *ChannelScanner) Tick(ctx context.Context) (*ScanResult, error) {
	header, err := s.conn.Client().HeaderByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
	if err != nil {
		return nil, fmt.Errorf("fetch finalized header: %w", err)
	}
	finalized := header.Number.Uint64()

	if !s.initialized {
		s.latestChannelBlock = scanWindowStart(finalized)
		s.initialized = true
	}

	from := s.latestChannelBlock
	if from > finalized {
		return &ScanResult{FromBlock: from, ToBlock: from}, nil
	}

	opts := &bind.FilterOpts{Start: from, End: &finalized, Context: ctx}

	result := &ScanResult{FromBlock: from, ToBlock: finalized}

	resetIter, err := s.channel.FilterReseted(opts)
	if err != nil {
		return nil, fmt.Errorf("filter Reseted logs: %w", err)
	}
	for resetIter.Next() {
		result.Resets = append(result.Resets, *resetIter.Event)
	}
	if err := resetIter.Error(); err != nil {
		return nil, fmt.Errorf("iterate Reseted logs: %w", err)
	}

	dispatchIter, err := s.channel.FilterMessageDispatched(opts, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("filter MessageDispatched logs: %w", err)
	}
	for dispatchIter.Next() {
		result.Dispatched = append(result.Dispatched, *dispatchIter.Event)
	}
	if err := dispatchIter.Error(); err != nil {
		return nil, fmt.Errorf("iterate MessageDispatched logs: %w", err)
	}

	batchIter, err := s.channel.FilterBatchDispatched(opts, nil)
	if err != nil {
		return nil, fmt.Errorf("filter BatchDispatched logs: %w", err)
	}
	for batchIter.Next() {
		result.Batches = append(result.Batches, *batchIter.Event)
	}
	if err := batchIter.Error(); err != nil {
		return nil, fmt.Errorf("iterate BatchDispatched logs: %w", err)
	}

	s.latestChannelBlock = advanceCursor(s.latestChannelBlock, result.Resets, finalized)

	return result, nil
}

// scanWindowStart picks the first block a fresh ChannelScanner looks at:
// scanWindowBlocks behind finalized, or genesis if the chain is younger than
// that window.
func scanWindowStart(finalized uint64) uint64 {
	if finalized > scanWindowBlocks {
		return finalized - scanWindowBlocks
	}
	return 0
}

// advanceCursor computes the next tick's starting block. A reset rewinds the
// contract's own dispatch state, but it never moves the scan cursor
// backward: the next tick always resumes right after the block just
// scanned, regardless of any reset observed within it.
func advanceCursor(current uint64, resets []contracts.ChannelReseted, finalized uint64) uint64 {
	maxResetBlock := uint64(0)
	for _, r := range resets {
		if r.Raw.BlockNumber > maxResetBlock {
			maxResetBlock = r.Raw.BlockNumber
		}
	}
	if maxResetBlock > current {
		current = maxResetBlock
	}
	return finalized + 1
}

func (s *ChannelScanner) BatchNonce(ctx context.Context) (uint64, error) {
	return s.channel.BatchNonce(&bind.CallOpts{Context: ctx})
}

// Channel exposes the bound contract for callers (Gateway) that need to
// submit transactions against it, not just scan its logs.
func (s *ChannelScanner) Channel() *contracts.Channel {
	return s.channel
}

// Address returns the channel contract address this scanner watches.
func (s *ChannelScanner) Address() common.Address {
	return s.channelAddress
}

// WatchReseted is a convenience passthrough for callers that want live
// subscription semantics instead of the tick-based scan.
func (s *ChannelScanner) WatchReseted(opts *bind.WatchOpts, sink chan<- *contracts.ChannelReseted) (goEthereum.Subscription, error) {
	return s.channel.WatchReseted(opts, sink)
}
