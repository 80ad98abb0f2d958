package relay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

type fakeCommitment struct {
	nonce uint64
}

func (c fakeCommitment) Nonce() uint64 { return c.nonce }
func (c fakeCommitment) Encode() []byte {
	return []byte{byte(c.nonce)}
}

type fakeSource struct {
	outbound    uint64
	commitments map[uint64]commitment.GenericCommitment
}

func (s *fakeSource) OutboundNonce(_ context.Context, _ network.GenericNetworkId) (uint64, error) {
	return s.outbound, nil
}

func (s *fakeSource) CommitmentByNonce(_ context.Context, _ network.GenericNetworkId, nonce uint64) (commitment.GenericCommitment, error) {
	c, ok := s.commitments[nonce]
	if !ok {
		return nil, errors.New("commitment not found")
	}
	return c, nil
}

type fakeDest struct {
	inbound   uint64
	submitted []commitment.GenericCommitment
}

func (d *fakeDest) InboundNonce(_ context.Context, _ network.GenericNetworkId) (uint64, error) {
	return d.inbound, nil
}

func (d *fakeDest) SubmitCommitment(_ context.Context, _ network.GenericNetworkId, c commitment.GenericCommitment, _ commitment.Proof) error {
	d.submitted = append(d.submitted, c)
	d.inbound = c.Nonce()
	return nil
}

type fakeStore struct {
	peers     map[network.EcdsaPublic]struct{}
	approvals map[[32]byte]map[network.EcdsaPublic]network.EcdsaSignature
}

func newFakeStore(peers ...network.EcdsaPublic) *fakeStore {
	set := make(map[network.EcdsaPublic]struct{}, len(peers))
	for _, p := range peers {
		set[p] = struct{}{}
	}
	return &fakeStore{peers: set, approvals: map[[32]byte]map[network.EcdsaPublic]network.EcdsaSignature{}}
}

func (s *fakeStore) Peers(_ context.Context, _ network.GenericNetworkId) (map[network.EcdsaPublic]struct{}, bool, error) {
	return s.peers, true, nil
}

func (s *fakeStore) Approvals(_ context.Context, _ network.GenericNetworkId, digest [32]byte) (map[network.EcdsaPublic]network.EcdsaSignature, error) {
	return s.approvals[digest], nil
}

func (s *fakeStore) Approve(_ context.Context, _ network.GenericNetworkId, digest [32]byte, sig network.EcdsaSignature) error {
	pub := network.EcdsaPublic{}
	copy(pub[:], sig[:33])
	if s.approvals[digest] == nil {
		s.approvals[digest] = map[network.EcdsaPublic]network.EcdsaSignature{}
	}
	s.approvals[digest][pub] = sig
	return nil
}

func selfPublic() network.EcdsaPublic {
	var p network.EcdsaPublic
	p[0] = 0xAB
	return p
}

func selfSign(digest [32]byte) (network.EcdsaSignature, error) {
	var sig network.EcdsaSignature
	copy(sig[:33], selfPublic()[:])
	return sig, nil
}

func newTestEngine(source *fakeSource, dest *fakeDest, store *fakeStore) *Engine {
	return &Engine{
		Name:      "test",
		SourceNet: network.Sub(1),
		DestNet:   network.Sub(2),
		Source:    source,
		Dest:      dest,
		Registry:  signer.NewRegistry(store),
		Self:      selfPublic(),
		Sign:      selfSign,
		AssembleProof: func(digest commitment.AuxiliaryDigest, approvals map[network.EcdsaPublic]network.EcdsaSignature) commitment.Proof {
			p := commitment.AssembleSubProof(digest, approvals)
			return commitment.Proof{Sub: &p}
		},
		Interval: time.Millisecond,
	}
}

func TestRunTickApprovesThenSubmitsOnceThresholdReached(t *testing.T) {
	source := &fakeSource{
		outbound: 1,
		commitments: map[uint64]commitment.GenericCommitment{
			1: fakeCommitment{nonce: 1},
		},
	}
	dest := &fakeDest{inbound: 0}
	store := newFakeStore(selfPublic())

	e := newTestEngine(source, dest, store)

	if err := e.runTick(context.Background()); err != nil {
		t.Fatalf("runTick: %v", err)
	}

	if len(dest.submitted) != 1 {
		t.Fatalf("expected commitment submitted once solo peer self-approves, got %d submissions", len(dest.submitted))
	}
}

func TestRunTickDrainsFullBacklogInOneTick(t *testing.T) {
	source := &fakeSource{
		outbound: 3,
		commitments: map[uint64]commitment.GenericCommitment{
			1: fakeCommitment{nonce: 1},
			2: fakeCommitment{nonce: 2},
			3: fakeCommitment{nonce: 3},
		},
	}
	dest := &fakeDest{inbound: 0}
	store := newFakeStore(selfPublic())

	e := newTestEngine(source, dest, store)

	if err := e.runTick(context.Background()); err != nil {
		t.Fatalf("runTick: %v", err)
	}

	if len(dest.submitted) != 3 {
		t.Fatalf("expected all 3 pending nonces submitted in one tick, got %d", len(dest.submitted))
	}
	for i, c := range dest.submitted {
		if want := uint64(i + 1); c.Nonce() != want {
			t.Fatalf("submitted[%d].Nonce() = %d, want %d (strict per-nonce ordering)", i, c.Nonce(), want)
		}
	}
}

func TestRunTickNoOpWhenInboundCaughtUp(t *testing.T) {
	source := &fakeSource{outbound: 1, commitments: map[uint64]commitment.GenericCommitment{}}
	dest := &fakeDest{inbound: 1}
	store := newFakeStore(selfPublic())

	e := newTestEngine(source, dest, store)

	if err := e.runTick(context.Background()); err != nil {
		t.Fatalf("runTick: %v", err)
	}
	if len(dest.submitted) != 0 {
		t.Fatalf("expected no submission when inbound == outbound, got %d", len(dest.submitted))
	}
}

func TestRunTickErrorsWhenInboundAheadOfOutbound(t *testing.T) {
	source := &fakeSource{outbound: 1, commitments: map[uint64]commitment.GenericCommitment{}}
	dest := &fakeDest{inbound: 5}
	store := newFakeStore(selfPublic())

	e := newTestEngine(source, dest, store)

	err := e.runTick(context.Background())
	if !errors.Is(err, ErrInboundAheadOfOutbound) {
		t.Fatalf("expected ErrInboundAheadOfOutbound, got %v", err)
	}
}

func TestRunTickCommitmentNotFound(t *testing.T) {
	source := &fakeSource{outbound: 2, commitments: map[uint64]commitment.GenericCommitment{}}
	dest := &fakeDest{inbound: 0}
	store := newFakeStore(selfPublic())

	e := newTestEngine(source, dest, store)

	err := e.runTick(context.Background())
	if !errors.Is(err, ErrCommitmentNotFound) {
		t.Fatalf("expected ErrCommitmentNotFound, got %v", err)
	}
}

func TestRunAbortsAfterConsecutiveFailures(t *testing.T) {
	source := &fakeSource{outbound: 2, commitments: map[uint64]commitment.GenericCommitment{}}
	dest := &fakeDest{inbound: 0}
	store := newFakeStore(selfPublic())

	e := newTestEngine(source, dest, store)
	e.Interval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := e.Run(ctx)
	if err == nil {
		t.Fatal("expected Run to abort after consecutive failures")
	}
	if e.consecutiveFailures < maxConsecutiveFailures {
		t.Fatalf("expected at least %d recorded failures, got %d", maxConsecutiveFailures, e.consecutiveFailures)
	}
}
