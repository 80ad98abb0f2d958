// Package signer wraps the on-chain signer registry (BridgeDataSigner /
// MultisigVerifier pallets on Main) that every relay direction shares for
// threshold-signature aggregation, per spec §4.2.
package signer

import (
	"context"
	"strings"

	"github.com/sora-xor/bridge-relayer/network"
)

// Store is the contract a chain gateway must expose for the signer
// registry operations of spec §4.2. chain/substrate.Client implements it;
// it is defined here (rather than in chain/substrate) so that package
// signer has no dependency on any one chain gateway implementation.
type Store interface {
	Peers(ctx context.Context, net network.GenericNetworkId) (map[network.EcdsaPublic]struct{}, bool, error)
	Approvals(ctx context.Context, net network.GenericNetworkId, digest [32]byte) (map[network.EcdsaPublic]network.EcdsaSignature, error)
	Approve(ctx context.Context, net network.GenericNetworkId, digest [32]byte, sig network.EcdsaSignature) error
}

// Registry is a thin typed client over a Store, providing the
// should-approve / enough-approvals predicates of spec §4.1 and §4.2.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Threshold implements spec §3/§4.2: 2n/3 + 1, not queried on-chain, fixed.
func Threshold(n int) int {
	return network.Threshold(n)
}

// ShouldApprove implements spec §4.1:
//
//	should_approve(net,pub,d) = (|approvals(net,d)| < threshold(peers(net))) ∧ pub ∉ approvals(net,d).keys
func (r *Registry) ShouldApprove(ctx context.Context, net network.GenericNetworkId, pub network.EcdsaPublic, digest [32]byte) (bool, error) {
	peers, ok, err := r.store.Peers(ctx, net)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrPeerSetNotConfigured
	}

	approvals, err := r.store.Approvals(ctx, net, digest)
	if err != nil {
		return false, err
	}
	if len(approvals) >= Threshold(len(peers)) {
		return false, nil
	}
	if _, present := approvals[pub]; present {
		return false, nil
	}
	return true, nil
}

// EnoughApprovals implements spec §4.1:
//
//	enough_approvals(net,d) = |approvals(net,d)| ≥ threshold(peers(net))
func (r *Registry) EnoughApprovals(ctx context.Context, net network.GenericNetworkId, digest [32]byte) (bool, error) {
	peers, ok, err := r.store.Peers(ctx, net)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrPeerSetNotConfigured
	}
	approvals, err := r.store.Approvals(ctx, net, digest)
	if err != nil {
		return false, err
	}
	return len(approvals) >= Threshold(len(peers)), nil
}

func (r *Registry) Approvals(ctx context.Context, net network.GenericNetworkId, digest [32]byte) (map[network.EcdsaPublic]network.EcdsaSignature, error) {
	return r.store.Approvals(ctx, net, digest)
}

// Peers passes through the configured peer set for net, so callers that
// need raw membership (e.g. "am I a peer on this network") don't need their
// own reference to the underlying Store.
func (r *Registry) Peers(ctx context.Context, net network.GenericNetworkId) (map[network.EcdsaPublic]struct{}, bool, error) {
	return r.store.Peers(ctx, net)
}

// Approve submits an approval. Per spec §4.2 this is idempotent — if the
// underlying store has already recorded a signature from this peer for this
// digest, it is expected to no-op rather than error; callers should treat
// any "already present" style response identically to success via
// IsBenignRaceError.
func (r *Registry) Approve(ctx context.Context, net network.GenericNetworkId, digest [32]byte, sig network.EcdsaSignature) error {
	return r.store.Approve(ctx, net, digest, sig)
}

// benignRaceSubstrings are the on-chain engine messages spec §4.2 and §7
// name as expected consensus-race noise during contention: duplicate
// submission attempts from racing peers. Relayers must downgrade these to
// an info log and continue rather than treating them as errors.
var benignRaceSubstrings = []string{
	"transaction already imported",
	"transaction is temporarily banned",
	"already submitted",
}

// IsBenignRaceError reports whether err looks like one of the consensus-race
// error strings named in spec §4.2/§7/§8 scenario 5, which must be swallowed
// (logged at info) rather than propagated as a failure.
func IsBenignRaceError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range benignRaceSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
