package substrate

import (
	"context"
	"errors"
	"testing"

	"github.com/snowfork/go-substrate-rpc-client/v4/types"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
)

type walkCommitment struct {
	nonce uint64
}

func (c walkCommitment) Nonce() uint64   { return c.nonce }
func (c walkCommitment) Encode() []byte { return []byte{byte(c.nonce)} }

func walkHash(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}

// fakeWalkReader models a chain where block N's LatestCommitment carries
// nonce N and points back to block N-1, the common case the backward walk
// was written for.
type fakeWalkReader struct {
	finalized       types.Hash
	nonceByHash     map[types.Hash]uint64
	blockNumByHash  map[types.Hash]uint64
	hashByBlockNum  map[uint64]types.Hash
}

func newFakeWalkReader(depth uint64) *fakeWalkReader {
	r := &fakeWalkReader{
		nonceByHash:    map[types.Hash]uint64{},
		blockNumByHash: map[types.Hash]uint64{},
		hashByBlockNum: map[uint64]types.Hash{},
	}
	for n := uint64(1); n <= depth; n++ {
		h := walkHash(byte(n))
		r.nonceByHash[h] = n
		r.blockNumByHash[h] = n
		r.hashByBlockNum[n] = h
	}
	r.finalized = walkHash(byte(depth))
	return r
}

func (r *fakeWalkReader) finalizedHash() (types.Hash, error) {
	return r.finalized, nil
}

func (r *fakeWalkReader) commitmentAt(_ network.GenericNetworkId, blockHash types.Hash) (commitment.GenericCommitment, uint64, error) {
	nonce, ok := r.nonceByHash[blockHash]
	if !ok {
		return nil, 0, errors.New("fakeWalkReader: unknown block hash")
	}
	return walkCommitment{nonce: nonce}, r.blockNumByHash[blockHash], nil
}

func (r *fakeWalkReader) blockHashAt(blockNumber uint64) (types.Hash, error) {
	h, ok := r.hashByBlockNum[blockNumber-1]
	if !ok {
		return types.Hash{}, errors.New("fakeWalkReader: no block below target")
	}
	return h, nil
}

func TestWalkCommitmentByNonceFindsPastNonce(t *testing.T) {
	r := newFakeWalkReader(10)

	c, err := walkCommitmentByNonce(context.Background(), r, network.Sub(1), 4)
	if err != nil {
		t.Fatalf("walkCommitmentByNonce: %v", err)
	}
	if c.Nonce() != 4 {
		t.Fatalf("got nonce %d, want 4", c.Nonce())
	}
}

func TestWalkCommitmentByNonceReturnsLatestDirectly(t *testing.T) {
	r := newFakeWalkReader(5)

	c, err := walkCommitmentByNonce(context.Background(), r, network.Sub(1), 5)
	if err != nil {
		t.Fatalf("walkCommitmentByNonce: %v", err)
	}
	if c.Nonce() != 5 {
		t.Fatalf("got nonce %d, want 5", c.Nonce())
	}
}

func TestWalkCommitmentByNonceNotFoundAboveLatest(t *testing.T) {
	r := newFakeWalkReader(3)

	_, err := walkCommitmentByNonce(context.Background(), r, network.Sub(1), 4)
	if !errors.Is(err, ErrCommitmentNotFound) {
		t.Fatalf("expected ErrCommitmentNotFound, got %v", err)
	}
}

func TestWalkCommitmentByNonceExceedsMaxHops(t *testing.T) {
	// A reader whose every commitment carries a nonce two above its block
	// number never reaches target 1: the walk must give up after maxWalkHops
	// rather than loop forever.
	r := &infiniteWalkReader{}

	_, err := walkCommitmentByNonce(context.Background(), r, network.Sub(1), 1)
	if !errors.Is(err, ErrWalkExceededMaxHops) {
		t.Fatalf("expected ErrWalkExceededMaxHops, got %v", err)
	}
}

type infiniteWalkReader struct{}

func (r *infiniteWalkReader) finalizedHash() (types.Hash, error) {
	return walkHash(0xFF), nil
}

func (r *infiniteWalkReader) commitmentAt(_ network.GenericNetworkId, blockHash types.Hash) (commitment.GenericCommitment, uint64, error) {
	return walkCommitment{nonce: uint64(blockHash[0]) + 2}, uint64(blockHash[0]), nil
}

func (r *infiniteWalkReader) blockHashAt(blockNumber uint64) (types.Hash, error) {
	return walkHash(byte(blockNumber)), nil
}
