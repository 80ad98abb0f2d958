// Package relay implements the generic discover → approve → aggregate →
// submit loop shared by every relay direction (spec §4.1), orchestrating
// chain gateways through the SourceSide/ReceiverSide capability interfaces
// of spec §4.5.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

// Signer signs a digest with this relayer's own peer key, the only
// operation a relay direction needs from a local key rather than a chain
// gateway.
type Signer func(digest [32]byte) (network.EcdsaSignature, error)

// SourceSide is the capability a relay direction needs from the chain a
// commitment originates on (spec §4.5). The signer registry itself
// (peers/approvals/approve) is deliberately not part of this interface: per
// spec §4.1's "submits a signature on the digest to the Main signer
// registry", that registry lives on Main regardless of which chain actually
// sources a given direction's commitments, so it is modeled separately as
// signer.Registry rather than duplicated onto every chain gateway.
type SourceSide interface {
	OutboundNonce(ctx context.Context, dstNet network.GenericNetworkId) (uint64, error)
	CommitmentByNonce(ctx context.Context, dstNet network.GenericNetworkId, nonce uint64) (commitment.GenericCommitment, error)
}

// DigestSource resolves the on-chain auxiliary digest log item a Sub-family
// proof is checked against. Only a Substrate-native source carries one; see
// Engine.NeedsAuxiliaryDigest.
type DigestSource interface {
	AuxiliaryDigest(ctx context.Context, net network.GenericNetworkId, blockNumber uint64) (commitment.AuxiliaryDigest, error)
}

// ReceiverSide is the capability a relay direction needs from the chain a
// commitment is delivered to (spec §4.5). finalized_block/events/
// transactions/run_get_method are chain-family-specific extras accessed
// directly on the concrete gateway type by the direction that needs them,
// not through this shared interface (spec's own note: "polymorphic over
// implementation", not a single lowest-common-denominator interface).
type ReceiverSide interface {
	InboundNonce(ctx context.Context, srcNet network.GenericNetworkId) (uint64, error)
	SubmitCommitment(ctx context.Context, srcNet network.GenericNetworkId, c commitment.GenericCommitment, proof commitment.Proof) error
}

var (
	ErrCommitmentNotFound     = errors.New("relay: commitment not found")
	ErrInboundAheadOfOutbound = errors.New("relay: receiver inbound_nonce ahead of source outbound_nonce")
	ErrPeerSetNotConfigured   = errors.New("relay: peer set not configured")
	ErrDigestNotFound         = errors.New("relay: auxiliary digest not found")
	ErrNotImplemented         = errors.New("relay: direction not implemented")
)

// maxConsecutiveFailures aborts a relay task after this many back-to-back
// failed ticks (spec §7 "three consecutive failures abort the task").
const maxConsecutiveFailures = 3

// ProofAssembler builds the wire-format proof a ReceiverSide.SubmitCommitment
// call needs from a resolved digest and the threshold-subset of approvals,
// varying by destination chain family (EVM vs Sub).
type ProofAssembler func(digest commitment.AuxiliaryDigest, approvals map[network.EcdsaPublic]network.EcdsaSignature) commitment.Proof

// Engine runs one direction's discover → approve → aggregate → submit loop
// on a fixed interval until its context is cancelled.
type Engine struct {
	Name      string
	SourceNet network.GenericNetworkId
	DestNet   network.GenericNetworkId
	Source    SourceSide
	Dest      ReceiverSide
	Registry  *signer.Registry
	Self      network.EcdsaPublic
	Sign      Signer

	// AssembleProof builds the wire proof from the resolved auxiliary
	// digest and threshold-subset of approvals.
	AssembleProof ProofAssembler

	// DigestSource resolves the on-chain digest log item. Required only
	// when NeedsAuxiliaryDigest is set; nil otherwise.
	DigestSource DigestSource

	// NeedsAuxiliaryDigest is true only when both source and destination
	// are Substrate-family chains: the destination's Sub proof verifier
	// checks that the commitment hash was actually anchored in a digest
	// log item on the source chain (light-client-style verification),
	// which only exists for a Substrate-native source. EVM/TON sources
	// carry no such log; their Sub-family receivers (e.g. Main) trust the
	// multisig alone, so the digest is built in-memory instead of fetched.
	NeedsAuxiliaryDigest bool

	Interval time.Duration

	consecutiveFailures int
}

// Run ticks the engine on Interval until ctx is cancelled or three
// consecutive ticks fail.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := e.runTick(ctx); err != nil {
				e.consecutiveFailures++
				log.WithFields(log.Fields{
					"direction": e.Name,
					"failures":  e.consecutiveFailures,
				}).WithError(err).Warn("relay tick failed")

				if e.consecutiveFailures >= maxConsecutiveFailures {
					return fmt.Errorf("%s: %d consecutive tick failures, last error: %w", e.Name, e.consecutiveFailures, err)
				}
				continue
			}
			e.consecutiveFailures = 0
		}
	}
}

// runTick drains the full backlog of pending nonces in one pass, per spec
// §4.1's "for nonce in (inbound_nonce+1)..=outbound_nonce": each pending
// nonce gets one discover → approve → aggregate → submit attempt, in order,
// within the same tick, rather than advancing by a single nonce per tick.
func (e *Engine) runTick(ctx context.Context) error {
	outbound, err := e.Source.OutboundNonce(ctx, e.DestNet)
	if err != nil {
		return fmt.Errorf("fetch outbound_nonce: %w", err)
	}
	inbound, err := e.Dest.InboundNonce(ctx, e.SourceNet)
	if err != nil {
		return fmt.Errorf("fetch inbound_nonce: %w", err)
	}

	if inbound > outbound {
		return fmt.Errorf("%w: inbound=%d outbound=%d", ErrInboundAheadOfOutbound, inbound, outbound)
	}

	for nonce := inbound + 1; nonce <= outbound; nonce++ {
		if err := e.processNonce(ctx, nonce); err != nil {
			return err
		}
	}
	return nil
}

// processNonce runs one discover → approve → aggregate → submit attempt for
// a single pending nonce. It is not an error for the attempt to stop short
// of submission: the peer may not yet hold enough approvals, in which case
// processNonce returns nil and the nonce is retried on a later tick.
func (e *Engine) processNonce(ctx context.Context, next uint64) error {
	c, err := e.Source.CommitmentByNonce(ctx, e.DestNet, next)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("nonce %d: %w", next, ErrCommitmentNotFound)
		}
		return fmt.Errorf("fetch commitment for nonce %d: %w", next, err)
	}

	h := commitment.Hash(c)
	digest := commitment.Digest(e.SourceNet, e.DestNet, h)

	// The signer registry stores approvals keyed by whatever digest form the
	// destination's own verifier recovers publics against: an EVM channel's
	// ecrecover expects the EIP-191 personal-message wrapping, a Substrate
	// multisig verifier does not (spec §3, §6's "Digest framing for EVM").
	approvalDigest := digest
	if e.DestNet.Kind == network.KindEVM {
		approvalDigest = commitment.EthSignedDigest(digest)
	}

	peers, ok, err := e.Registry.Peers(ctx, e.DestNet)
	if err != nil {
		return fmt.Errorf("fetch peers: %w", err)
	}
	if !ok {
		return ErrPeerSetNotConfigured
	}
	if _, isPeer := peers[e.Self]; isPeer {
		should, err := e.Registry.ShouldApprove(ctx, e.DestNet, e.Self, approvalDigest)
		if err != nil {
			return fmt.Errorf("check approval state: %w", err)
		}
		if should {
			sig, err := e.Sign(approvalDigest)
			if err != nil {
				return fmt.Errorf("sign digest: %w", err)
			}
			if err := e.Registry.Approve(ctx, e.DestNet, approvalDigest, sig); err != nil && !signer.IsBenignRaceError(err) {
				return fmt.Errorf("submit approval: %w", err)
			}
		}
	}

	approvals, err := e.Registry.Approvals(ctx, e.DestNet, approvalDigest)
	if err != nil {
		return fmt.Errorf("fetch approvals: %w", err)
	}
	if network.Threshold(len(peers)) > len(approvals) {
		return nil
	}

	auxDigest := commitment.AuxiliaryDigest{NetworkId: e.SourceNet, CommitmentHash: h}
	if e.NeedsAuxiliaryDigest && e.DigestSource != nil {
		if blockNumber, ok := commitmentBlockNumber(c); ok {
			fetched, err := e.DigestSource.AuxiliaryDigest(ctx, e.DestNet, blockNumber)
			if err != nil && !errors.Is(err, ErrDigestNotFound) {
				return fmt.Errorf("fetch auxiliary digest: %w", err)
			}
			if err == nil {
				auxDigest = fetched
			}
		}
	}

	proof := commitment.Proof{}
	if e.AssembleProof != nil {
		proof = e.AssembleProof(auxDigest, approvals)
	}

	if err := e.Dest.SubmitCommitment(ctx, e.SourceNet, c, proof); err != nil && !signer.IsBenignRaceError(err) {
		return fmt.Errorf("submit commitment: %w", err)
	}

	return nil
}

// isNotFound matches a chain gateway's own "commitment not found" sentinel
// by message rather than type, the same cross-package approach
// signer.IsBenignRaceError uses: gateways vary by chain family (chain/
// substrate, chain/evm, chain/ton) and each owns its own not-found error,
// so the generic engine recognizes the class by substring instead of
// depending on every concrete gateway package for its sentinel.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "not found")
}

// commitmentBlockNumber extracts the source-side block number a commitment
// was recorded at, for variants that carry one (the Sub-family outbound
// commitments a Substrate source pins its digest lookup to).
func commitmentBlockNumber(c commitment.GenericCommitment) (uint64, bool) {
	type blockNumbered interface {
		BlockNumberHint() uint64
	}
	if bn, ok := c.(blockNumbered); ok {
		return bn.BlockNumberHint(), true
	}
	return 0, false
}
