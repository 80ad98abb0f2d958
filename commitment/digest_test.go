package commitment

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sora-xor/bridge-relayer/network"
)

func TestHashInjectiveOverDistinctCommitments(t *testing.T) {
	a := EVMOutbound{NonceValue: 1, TotalMaxGas: 100}
	b := EVMOutbound{NonceValue: 2, TotalMaxGas: 100}

	if Hash(a) == Hash(b) {
		t.Fatal("distinct commitments hashed to the same digest")
	}
}

func TestHashStableForEqualCommitments(t *testing.T) {
	a := EVMOutbound{NonceValue: 1, TotalMaxGas: 100, Messages: []EVMMessage{{MaxGas: 1, Target: common.Address{1}}}}
	b := EVMOutbound{NonceValue: 1, TotalMaxGas: 100, Messages: []EVMMessage{{MaxGas: 1, Target: common.Address{1}}}}

	if Hash(a) != Hash(b) {
		t.Fatal("identical commitments hashed to different digests")
	}
}

func TestDigestInjectiveOverSourceReceiverPair(t *testing.T) {
	ch := Hash(EVMOutbound{NonceValue: 7})

	d1 := Digest(network.Sub(1), network.EVM(1), ch)
	d2 := Digest(network.Sub(1), network.EVM(2), ch)
	d3 := Digest(network.Sub(2), network.EVM(1), ch)

	if d1 == d2 || d1 == d3 || d2 == d3 {
		t.Fatal("digest not injective over (source, receiver, hash)")
	}
}

func TestEthSignedDigestWraps(t *testing.T) {
	ch := Hash(EVMOutbound{NonceValue: 1})
	d := Digest(network.Sub(1), network.EVM(1), ch)
	wrapped := EthSignedDigest(d)

	want := crypto.Keccak256Hash([]byte(ethSignedMessagePrefix), d[:])
	if wrapped != want {
		t.Fatal("EthSignedDigest did not match manual Keccak256 wrap")
	}
}
