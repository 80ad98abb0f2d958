package substrate

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/snowfork/go-substrate-rpc-client/v4/types"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
)

// maxWalkHops bounds the commitment-by-nonce backward walk of spec §4.1. The
// protocol invariant (each step strictly decreases nonce) guarantees
// termination; this is a defensive ceiling so a violated invariant surfaces
// as a Fatal error rather than an infinite loop (SPEC_FULL.md §4.1).
const maxWalkHops = 100_000

// PalletNames selects the pallet names a Client reads/writes against: Main
// uses BridgeInboundChannel/BridgeOutboundChannel, the peer parachain uses
// SubstrateBridgeInboundChannel/SubstrateBridgeOutboundChannel (spec §6).
type PalletNames struct {
	Outbound string
	Inbound  string
}

var MainPallets = PalletNames{
	Outbound: "BridgeOutboundChannel",
	Inbound:  "BridgeInboundChannel",
}

var ParachainPallets = PalletNames{
	Outbound: "SubstrateBridgeOutboundChannel",
	Inbound:  "SubstrateBridgeInboundChannel",
}

// Client is the typed substrate gateway: a Connection plus the pallet names
// for this chain's role, implementing relay.SourceSide, relay.ReceiverSide
// and signer.Store.
type Client struct {
	conn    *Connection
	pallets PalletNames
	writer  *Writer
}

func NewClient(conn *Connection, pallets PalletNames, writer *Writer) *Client {
	return &Client{conn: conn, pallets: pallets, writer: writer}
}

func (c *Client) Connection() *Connection { return c.conn }

func (c *Client) storageKey(pallet, item string, args ...[]byte) (types.StorageKey, error) {
	meta, err := c.conn.Metadata()
	if err != nil {
		return nil, err
	}
	argsIface := make([][]byte, len(args))
	copy(argsIface, args)
	return types.CreateStorageKey(meta, pallet, item, argsIface...)
}

// OutboundNonce reads {Outbound}::ChannelNonces[dstNet] — the highest nonce
// ever emitted toward dstNet (spec §3 "Source-side outbound_nonce").
func (c *Client) OutboundNonce(ctx context.Context, dstNet network.GenericNetworkId) (uint64, error) {
	key, err := c.storageKey(c.pallets.Outbound, "ChannelNonces", dstNet.Encode())
	if err != nil {
		return 0, fmt.Errorf("create storage key for %s::ChannelNonces: %w", c.pallets.Outbound, err)
	}
	var nonce types.U64
	ok, err := c.conn.API().RPC.State.GetStorageLatest(key, &nonce)
	if err != nil {
		return 0, fmt.Errorf("get %s::ChannelNonces: %w", c.pallets.Outbound, err)
	}
	if !ok {
		return 0, nil
	}
	return uint64(nonce), nil
}

// InboundNonce reads {Inbound}::ChannelNonces[srcNet] — the highest nonce
// ever accepted from srcNet (spec §3 "Receiver-side inbound_nonce").
func (c *Client) InboundNonce(ctx context.Context, srcNet network.GenericNetworkId) (uint64, error) {
	key, err := c.storageKey(c.pallets.Inbound, "ChannelNonces", srcNet.Encode())
	if err != nil {
		return 0, fmt.Errorf("create storage key for %s::ChannelNonces: %w", c.pallets.Inbound, err)
	}
	var nonce types.U64
	ok, err := c.conn.API().RPC.State.GetStorageLatest(key, &nonce)
	if err != nil {
		return 0, fmt.Errorf("get %s::ChannelNonces: %w", c.pallets.Inbound, err)
	}
	if !ok {
		return 0, nil
	}
	return uint64(nonce), nil
}

// ReportedNonce reads {Inbound}::ReportedChannelNonces[srcNet] — the
// highest nonce for which a StatusReport has been processed, a separate
// cursor from ChannelNonces per spec §6's storage path listing.
func (c *Client) ReportedNonce(ctx context.Context, srcNet network.GenericNetworkId) (uint64, error) {
	key, err := c.storageKey(c.pallets.Inbound, "ReportedChannelNonces", srcNet.Encode())
	if err != nil {
		return 0, fmt.Errorf("create storage key for %s::ReportedChannelNonces: %w", c.pallets.Inbound, err)
	}
	var nonce types.U64
	ok, err := c.conn.API().RPC.State.GetStorageLatest(key, &nonce)
	if err != nil {
		return 0, fmt.Errorf("get %s::ReportedChannelNonces: %w", c.pallets.Inbound, err)
	}
	if !ok {
		return 0, nil
	}
	return uint64(nonce), nil
}

// latestCommitmentAt reads {Outbound}::LatestCommitment[dstNet] pinned at
// blockHash (or the chain tip if blockHash is zero), returning the decoded
// commitment and the source-side block number it was recorded at.
func (c *Client) latestCommitmentAt(dstNet network.GenericNetworkId, blockHash types.Hash) (commitment.GenericCommitment, uint64, error) {
	meta, err := c.metadataFor(blockHash)
	if err != nil {
		return nil, 0, err
	}
	key, err := types.CreateStorageKey(meta, c.pallets.Outbound, "LatestCommitment", dstNet.Encode())
	if err != nil {
		return nil, 0, fmt.Errorf("create storage key for %s::LatestCommitment: %w", c.pallets.Outbound, err)
	}

	switch dstNet.Kind {
	case network.KindEVM:
		var raw scaleEVMOutboundCommitment
		ok, err := c.getStorage(key, &raw, blockHash)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, ErrCommitmentNotFound
		}
		return decodeEVMOutbound(raw), uint64(raw.BlockNumber), nil
	default: // Sub-family destination (parachain or Main)
		var raw scaleSubOutboundCommitment
		ok, err := c.getStorage(key, &raw, blockHash)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, ErrCommitmentNotFound
		}
		return decodeSubOutbound(raw), uint64(raw.BlockNumber), nil
	}
}

func (c *Client) getStorage(key types.StorageKey, target interface{}, blockHash types.Hash) (bool, error) {
	if blockHash == (types.Hash{}) {
		return c.conn.API().RPC.State.GetStorageLatest(key, target)
	}
	return c.conn.API().RPC.State.GetStorage(key, target, blockHash)
}

func (c *Client) metadataFor(blockHash types.Hash) (*types.Metadata, error) {
	if blockHash == (types.Hash{}) {
		return c.conn.Metadata()
	}
	return c.conn.MetadataAt(blockHash)
}

func decodeEVMOutbound(raw scaleEVMOutboundCommitment) commitment.EVMOutbound {
	messages := make([]commitment.EVMMessage, 0, len(raw.Messages))
	for _, m := range raw.Messages {
		messages = append(messages, commitment.EVMMessage{
			MaxGas:  uint64(m.MaxGas),
			Target:  common.Address(m.Target),
			Payload: []byte(m.Payload),
		})
	}
	return commitment.EVMOutbound{
		NonceValue:  uint64(raw.Nonce),
		TotalMaxGas: uint64(raw.TotalMaxGas),
		Messages:    messages,
		BlockNumber: uint64(raw.BlockNumber),
	}
}

func decodeSubOutbound(raw scaleSubOutboundCommitment) commitment.SubOutbound {
	messages := make([]commitment.SubMessage, 0, len(raw.Messages))
	for _, m := range raw.Messages {
		messages = append(messages, commitment.SubMessage{Payload: []byte(m.Payload)})
	}
	return commitment.SubOutbound{
		NonceValue:  uint64(raw.Nonce),
		Messages:    messages,
		BlockNumber: uint64(raw.BlockNumber),
	}
}

// walkReader is the minimal surface the backward nonce walk needs, factored
// out of Client so the walk algorithm in walkCommitmentByNonce can be
// exercised against a fake instead of a live chain connection.
type walkReader interface {
	finalizedHash() (types.Hash, error)
	commitmentAt(dstNet network.GenericNetworkId, blockHash types.Hash) (commitment.GenericCommitment, uint64, error)
	blockHashAt(blockNumber uint64) (types.Hash, error)
}

func (c *Client) finalizedHash() (types.Hash, error) {
	return c.conn.GetFinalizedHash()
}

func (c *Client) commitmentAt(dstNet network.GenericNetworkId, blockHash types.Hash) (commitment.GenericCommitment, uint64, error) {
	return c.latestCommitmentAt(dstNet, blockHash)
}

func (c *Client) blockHashAt(blockNumber uint64) (types.Hash, error) {
	return c.conn.API().RPC.Chain.GetBlockHash(blockNumber)
}

// CommitmentByNonce implements the backward walk of spec §4.1: source
// storage holds only the latest commitment per destination, with its
// source-side block number; to retrieve a past commitment, pin at the
// finalized head, and walk backward via each commitment's recorded block
// number until the target nonce is reached.
func (c *Client) CommitmentByNonce(ctx context.Context, dstNet network.GenericNetworkId, target uint64) (commitment.GenericCommitment, error) {
	return walkCommitmentByNonce(ctx, c, dstNet, target)
}

// walkCommitmentByNonce is CommitmentByNonce's algorithm, factored out over
// walkReader so it can run against a fake reader in tests.
func walkCommitmentByNonce(ctx context.Context, r walkReader, dstNet network.GenericNetworkId, target uint64) (commitment.GenericCommitment, error) {
	finalizedHash, err := r.finalizedHash()
	if err != nil {
		return nil, fmt.Errorf("fetch finalized head: %w", err)
	}

	blockHash := finalizedHash
	for hop := 0; hop < maxWalkHops; hop++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c2, blockNumber, err := r.commitmentAt(dstNet, blockHash)
		if err != nil {
			return nil, err
		}

		if c2.Nonce() == target {
			return c2, nil
		}
		if c2.Nonce() < target {
			return nil, ErrCommitmentNotFound
		}

		nextHash, err := r.blockHashAt(blockNumber)
		if err != nil {
			return nil, fmt.Errorf("resolve block hash for block %d: %w", blockNumber, err)
		}
		blockHash = nextHash
	}

	return nil, ErrWalkExceededMaxHops
}

// AuxiliaryDigest reads the Commitment(net_id, commitment_hash) digest log
// item recorded in the block that a commitment was emitted in (spec §4.3).
func (c *Client) AuxiliaryDigest(ctx context.Context, net network.GenericNetworkId, blockNumber uint64) (commitment.AuxiliaryDigest, error) {
	blockHash, err := c.conn.API().RPC.Chain.GetBlockHash(blockNumber)
	if err != nil {
		return commitment.AuxiliaryDigest{}, fmt.Errorf("resolve block hash for block %d: %w", blockNumber, err)
	}
	block, err := c.conn.API().RPC.Chain.GetBlock(blockHash)
	if err != nil {
		return commitment.AuxiliaryDigest{}, fmt.Errorf("fetch block %d: %w", blockNumber, err)
	}

	digest, err := ExtractAuxiliaryDigest(net, block.Block.Header.Digest)
	if err != nil {
		return commitment.AuxiliaryDigest{}, err
	}
	return *digest, nil
}

// --- Signer registry storage (signer.Store implementation) -----------------

// Peers reads BridgeDataSigner::Peers[net] — the current validator set for
// signing messages bound to net (spec §4.2).
func (c *Client) Peers(ctx context.Context, net network.GenericNetworkId) (map[network.EcdsaPublic]struct{}, bool, error) {
	key, err := c.storageKey("BridgeDataSigner", "Peers", net.Encode())
	if err != nil {
		return nil, false, fmt.Errorf("create storage key for BridgeDataSigner::Peers: %w", err)
	}

	var raw [][33]byte
	ok, err := c.conn.API().RPC.State.GetStorageLatest(key, &raw)
	if err != nil {
		return nil, false, fmt.Errorf("get BridgeDataSigner::Peers: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	peers := make(map[network.EcdsaPublic]struct{}, len(raw))
	for _, pk := range raw {
		peers[network.EcdsaPublic(pk)] = struct{}{}
	}
	return peers, true, nil
}

// Approvals reads BridgeDataSigner::Approvals[net, digest] — current
// approvals for this (network, digest) pair; empty map default.
func (c *Client) Approvals(ctx context.Context, net network.GenericNetworkId, digest [32]byte) (map[network.EcdsaPublic]network.EcdsaSignature, error) {
	key, err := c.storageKey("BridgeDataSigner", "Approvals", net.Encode(), digest[:])
	if err != nil {
		return nil, fmt.Errorf("create storage key for BridgeDataSigner::Approvals: %w", err)
	}

	var raw map[[33]byte][65]byte
	ok, err := c.conn.API().RPC.State.GetStorageLatest(key, &raw)
	if err != nil {
		return nil, fmt.Errorf("get BridgeDataSigner::Approvals: %w", err)
	}
	if !ok {
		return map[network.EcdsaPublic]network.EcdsaSignature{}, nil
	}

	approvals := make(map[network.EcdsaPublic]network.EcdsaSignature, len(raw))
	for pk, sig := range raw {
		approvals[network.EcdsaPublic(pk)] = network.EcdsaSignature(sig)
	}
	return approvals, nil
}

// Approve submits BridgeDataSigner::approve(net, digest, sig) as an unsigned
// extrinsic (spec §4.2: idempotent, no-op if already present).
func (c *Client) Approve(ctx context.Context, net network.GenericNetworkId, digest [32]byte, sig network.EcdsaSignature) error {
	return c.writer.SubmitUnsigned(ctx, "BridgeDataSigner.approve", net.Encode(), digest[:], sig[:])
}

// SubmitCommitment submits {Inbound}::submit(net, commitment, proof) — the
// unsigned extrinsic a receiver chain accepts the first valid submission
// for and rejects subsequent ones for the same nonce (spec §4.2 "Duplicate-
// submission policy"). Implements relay.ReceiverSide for a Substrate-family
// destination; proof.Sub must be populated by the caller.
func (c *Client) SubmitCommitment(ctx context.Context, srcNet network.GenericNetworkId, c2 commitment.GenericCommitment, proof commitment.Proof) error {
	if proof.Sub == nil {
		return fmt.Errorf("substrate: SubmitCommitment requires a Sub proof")
	}
	sigs := make([][]byte, 0, len(proof.Sub.Signatures))
	for _, s := range proof.Sub.Signatures {
		sigs = append(sigs, s[:])
	}
	return c.writer.SubmitUnsigned(ctx, c.pallets.Inbound+".submit", srcNet.Encode(), c2.Encode(), proof.Sub.Digest.CommitmentHash[:], sigs)
}
