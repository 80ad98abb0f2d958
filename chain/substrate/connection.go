// Copyright 2020 Snowfork
// SPDX-License-Identifier: LGPL-3.0-only

// Package substrate provides typed access to a Substrate-family chain
// (Main or the peer parachain): pallet storage, constants, unsigned/signed
// extrinsic submission, and finalized-block pinning (spec §2 "Substrate
// gateway").
package substrate

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	gsrpc "github.com/snowfork/go-substrate-rpc-client/v4"
	"github.com/snowfork/go-substrate-rpc-client/v4/signature"
	"github.com/snowfork/go-substrate-rpc-client/v4/types"
	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// Connection is a cheaply-clonable-by-reference handle over one chain's
// websocket RPC connection, shared by every caller (spec §3 "Ownership":
// gateways are cheaply clonable handles over shared connection state with
// interior synchronization).
type Connection struct {
	endpoint    string
	kp          *signature.KeyringPair
	api         *gsrpc.SubstrateAPI
	genesisHash types.Hash
	metaCache   *MetadataCache
}

func NewConnection(endpoint string, kp *signature.KeyringPair) *Connection {
	return &Connection{
		endpoint:  endpoint,
		kp:        kp,
		metaCache: newMetadataCache(),
	}
}

func (co *Connection) API() *gsrpc.SubstrateAPI {
	return co.api
}

func (co *Connection) Keypair() *signature.KeyringPair {
	return co.kp
}

func (co *Connection) GenesisHash() types.Hash {
	return co.genesisHash
}

// Metadata returns the metadata for the chain's current runtime version,
// fetching and caching on first use for that spec_version (spec §9
// "Metadata per runtime version").
func (co *Connection) Metadata() (*types.Metadata, error) {
	rv, err := co.api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return nil, fmt.Errorf("fetch runtime version: %w", err)
	}
	return co.metaCache.get(co.api, uint32(rv.SpecVersion), types.Hash{})
}

// MetadataAt returns the metadata valid at a specific block, for use by
// pinned historical reads (the commitment-by-nonce walk of spec §4.1).
func (co *Connection) MetadataAt(blockHash types.Hash) (*types.Metadata, error) {
	rv, err := co.api.RPC.State.GetRuntimeVersion(blockHash)
	if err != nil {
		return nil, fmt.Errorf("fetch runtime version at block: %w", err)
	}
	return co.metaCache.get(co.api, uint32(rv.SpecVersion), blockHash)
}

func (co *Connection) Connect(_ context.Context) error {
	api, err := gsrpc.NewSubstrateAPI(co.endpoint)
	if err != nil {
		return err
	}
	co.api = api

	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return err
	}
	rv, err := api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return err
	}
	co.metaCache.put(uint32(rv.SpecVersion), meta)

	genesisHash, err := api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return err
	}
	co.genesisHash = genesisHash

	log.WithFields(logrus.Fields{
		"endpoint":    co.endpoint,
		"metaVersion": meta.Version,
	}).Info("Connected to chain")

	return nil
}

func (co *Connection) Close() {
	// TODO: Fix design issue in GSRPC preventing on-demand closing of connections
}

func (co *Connection) GetFinalizedHeader() (*types.Header, error) {
	finalizedHash, err := co.api.RPC.Chain.GetFinalizedHead()
	if err != nil {
		return nil, err
	}

	finalizedHeader, err := co.api.RPC.Chain.GetHeader(finalizedHash)
	if err != nil {
		return nil, err
	}

	return finalizedHeader, nil
}

func (co *Connection) GetFinalizedHash() (types.Hash, error) {
	return co.api.RPC.Chain.GetFinalizedHead()
}

func (co *Connection) GetLatestBlockNumber() (*types.BlockNumber, error) {
	latestBlock, err := co.api.RPC.Chain.GetBlockLatest()
	if err != nil {
		return nil, err
	}

	return &latestBlock.Block.Header.Number, nil
}

// MetadataCache caches metadata per spec_version under a sync.RWMutex
// (many concurrent readers, rare writers), fetching on miss.
type MetadataCache struct {
	mu   sync.RWMutex
	byVersion map[uint32]*types.Metadata
}

func newMetadataCache() *MetadataCache {
	return &MetadataCache{byVersion: make(map[uint32]*types.Metadata)}
}

func (c *MetadataCache) get(api *gsrpc.SubstrateAPI, specVersion uint32, blockHash types.Hash) (*types.Metadata, error) {
	c.mu.RLock()
	meta, ok := c.byVersion[specVersion]
	c.mu.RUnlock()
	if ok {
		return meta, nil
	}

	var fetched *types.Metadata
	var err error
	if blockHash == (types.Hash{}) {
		fetched, err = api.RPC.State.GetMetadataLatest()
	} else {
		fetched, err = api.RPC.State.GetMetadata(blockHash)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch metadata for spec_version %d: %w", specVersion, err)
	}

	c.put(specVersion, fetched)
	return fetched, nil
}

func (c *MetadataCache) put(specVersion uint32, meta *types.Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byVersion[specVersion] = meta
}

func (c *MetadataCache) invalidate(specVersion uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byVersion, specVersion)
}

// WatchRuntimeUpgrades follows runtime-upgrade notifications and refreshes
// the metadata cache for each newly observed spec_version. Per spec §7/§9,
// if this background task dies, the process must exit: stale metadata
// would otherwise silently corrupt extrinsic encoding.
func (co *Connection) WatchRuntimeUpgrades(ctx context.Context, eg *errgroup.Group) {
	eg.Go(func() error {
		sub, err := co.api.RPC.State.SubscribeRuntimeVersion()
		if err != nil {
			return fmt.Errorf("subscribe to runtime version: %w", err)
		}
		defer sub.Unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return nil
			case err := <-sub.Err():
				return fmt.Errorf("runtime version subscription failed: %w", err)
			case rv, ok := <-sub.Chan():
				if !ok {
					return fmt.Errorf("runtime version subscription closed unexpectedly")
				}
				meta, err := co.api.RPC.State.GetMetadataLatest()
				if err != nil {
					return fmt.Errorf("fetch metadata after runtime upgrade: %w", err)
				}
				co.metaCache.put(uint32(rv.SpecVersion), meta)
				log.WithField("specVersion", rv.SpecVersion).Info("Observed runtime upgrade, refreshed metadata cache")
			}
		}
	})
}
