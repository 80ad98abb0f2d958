// Copyright 2020 Snowfork
// SPDX-License-Identifier: LGPL-3.0-only

package substrate

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/snowfork/go-substrate-rpc-client/v4/rpc/author"
	"github.com/snowfork/go-substrate-rpc-client/v4/types"
	"golang.org/x/sync/errgroup"
)

// Writer submits extrinsics against a chain: unsigned for the signer
// registry's approve/submit calls (spec §4.2's "no wallet, no gas cost"
// unsigned-transaction model) and signed for calls that do carry an
// account (e.g. a relayer's own housekeeping extrinsics), rate-limited by a
// bounded pool of in-flight watched extrinsics (spec §5 "Shared resources").
type Writer struct {
	conn                 *Connection
	nonce                uint32
	pool                 *ExtrinsicPool
	maxWatchedExtrinsics int64
	maxBatchCallSize     int64
	mu                   sync.Mutex
}

func NewWriter(conn *Connection, maxWatchedExtrinsics int64, maxBatchCallSize int64) *Writer {
	return &Writer{
		conn:                 conn,
		maxWatchedExtrinsics: maxWatchedExtrinsics,
		maxBatchCallSize:     maxBatchCallSize,
	}
}

func (wr *Writer) Start(_ context.Context, eg *errgroup.Group) error {
	if wr.conn.Keypair() != nil {
		nonce, err := wr.queryAccountNonce()
		if err != nil {
			return err
		}
		wr.nonce = nonce
	}

	wr.pool = NewExtrinsicPool(eg, wr.conn, wr.maxWatchedExtrinsics)
	return nil
}

// SubmitUnsigned submits an unsigned extrinsic and waits only for it to
// enter a block (not full finalization): BridgeDataSigner::approve and the
// inbound channel's submit are idempotent, so a later relayer retry after a
// dropped unsigned transaction is harmless (spec §4.2 duplicate-submission
// policy).
func (wr *Writer) SubmitUnsigned(ctx context.Context, extrinsicName string, payload ...interface{}) error {
	meta, err := wr.conn.Metadata()
	if err != nil {
		return err
	}

	c, err := types.NewCall(meta, extrinsicName, payload...)
	if err != nil {
		return fmt.Errorf("build call %s: %w", extrinsicName, err)
	}
	ext := types.NewExtrinsic(c)

	sub, err := wr.conn.API().RPC.Author.SubmitAndWatchExtrinsic(ext)
	if err != nil {
		return fmt.Errorf("submit unsigned extrinsic %s: %w", extrinsicName, err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("unsigned extrinsic %s subscription failed: %w", extrinsicName, err)
		case status := <-sub.Chan():
			if status.IsDropped || status.IsInvalid || status.IsUsurped {
				log.WithFields(log.Fields{"extrinsic": extrinsicName, "reason": reason(&status)}).
					Warn("unsigned extrinsic removed from the transaction pool")
				return nil
			}
			if status.IsInBlock || status.IsFinalized {
				return nil
			}
		}
	}
}

// BatchCall splits calls into utility.batch_all groups of maxBatchCallSize
// and submits each signed and rate-limited.
func (wr *Writer) BatchCall(ctx context.Context, extrinsic string, calls []interface{}) error {
	batchSize := int(wr.maxBatchCallSize)
	var j int
	for i := 0; i < len(calls); i += batchSize {
		j += batchSize
		if j > len(calls) {
			j = len(calls)
		}
		slicedCalls := append([]interface{}{}, calls[i:j]...)
		encodedCalls := make([]types.Call, len(slicedCalls))
		for k := range slicedCalls {
			call, err := wr.prepCall(extrinsic, slicedCalls[k])
			if err != nil {
				return err
			}
			encodedCalls[k] = *call
		}
		if err := wr.SubmitAndRateLimit(ctx, "Utility.batch_all", encodedCalls); err != nil {
			return fmt.Errorf("batch call failed: %w", err)
		}
	}
	return nil
}

// SubmitAndRateLimit submits a signed extrinsic through the bounded pool of
// watched extrinsics, returning as soon as it is accepted for watching
// (not waiting for finalization).
func (wr *Writer) SubmitAndRateLimit(ctx context.Context, extrinsicName string, payload ...interface{}) error {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	extI, err := wr.prepExtrinstic(ctx, extrinsicName, payload...)
	if err != nil {
		return err
	}

	callback := func(h types.Hash) error { return nil }

	if err := wr.pool.WaitForSubmitAndWatch(ctx, extI, callback); err != nil {
		return err
	}

	wr.nonce = wr.nonce + 1
	return nil
}

// SubmitAndWatch submits a signed extrinsic and blocks until finalization.
func (wr *Writer) SubmitAndWatch(ctx context.Context, extrinsicName string, payload ...interface{}) error {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	sub, err := wr.submit(ctx, extrinsicName, payload...)
	if err != nil {
		return err
	}
	wr.nonce = wr.nonce + 1
	defer sub.Unsubscribe()

	for {
		select {
		case status := <-sub.Chan():
			if status.IsDropped || status.IsInvalid || status.IsUsurped || status.IsFinalityTimeout {
				return fmt.Errorf("extrinsic write status was dropped, invalid, usurped or finality timed out")
			}
			if status.IsFinalized {
				log.WithFields(log.Fields{
					"extrinsic": extrinsicName, "block": status.AsFinalized,
				}).Debug("extrinsic finalized")
				return nil
			}
		case err = <-sub.Err():
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

func (wr *Writer) submit(ctx context.Context, extrinsicName string, payload ...interface{}) (*author.ExtrinsicStatusSubscription, error) {
	extI, err := wr.prepExtrinstic(ctx, extrinsicName, payload...)
	if err != nil {
		return nil, err
	}

	return wr.conn.API().RPC.Author.SubmitAndWatchExtrinsic(*extI)
}

func (wr *Writer) queryAccountNonce() (uint32, error) {
	meta, err := wr.conn.Metadata()
	if err != nil {
		return 0, err
	}

	key, err := types.CreateStorageKey(meta, "System", "Account", wr.conn.Keypair().PublicKey, nil)
	if err != nil {
		return 0, err
	}

	var accountInfo types.AccountInfo
	ok, err := wr.conn.API().RPC.State.GetStorageLatest(key, &accountInfo)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no account info found for %s", wr.conn.Keypair().URI)
	}

	return uint32(accountInfo.Nonce), nil
}

func (wr *Writer) prepExtrinstic(_ context.Context, extrinsicName string, payload ...interface{}) (*types.Extrinsic, error) {
	meta, err := wr.conn.Metadata()
	if err != nil {
		return nil, err
	}

	c, err := types.NewCall(meta, extrinsicName, payload...)
	if err != nil {
		return nil, err
	}

	latestHash, err := wr.conn.API().RPC.Chain.GetFinalizedHead()
	if err != nil {
		return nil, err
	}

	latestBlock, err := wr.conn.API().RPC.Chain.GetBlock(latestHash)
	if err != nil {
		return nil, err
	}

	ext := types.NewExtrinsic(c)
	era := NewMortalEra(uint64(latestBlock.Block.Header.Number))

	rv, err := wr.conn.API().RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return nil, err
	}

	o := types.SignatureOptions{
		BlockHash:          latestHash,
		Era:                era,
		GenesisHash:        wr.conn.GenesisHash(),
		Nonce:              types.NewUCompactFromUInt(uint64(wr.nonce)),
		SpecVersion:        rv.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: rv.TransactionVersion,
	}

	extI := ext
	if err := extI.Sign(*wr.conn.Keypair(), o); err != nil {
		return nil, err
	}

	return &extI, nil
}

func (wr *Writer) prepCall(extrinsicName string, payload ...interface{}) (*types.Call, error) {
	meta, err := wr.conn.Metadata()
	if err != nil {
		return nil, err
	}

	c, err := types.NewCall(meta, extrinsicName, payload...)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
