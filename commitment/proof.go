package commitment

import (
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sora-xor/bridge-relayer/network"
)

// EVMProof is the `(v[], r[], s[])` triple an EVM channel contract's
// `submit` expects (spec §4.3). Order within the arrays is unspecified by
// protocol; the receiver only requires the recovered publics to be a
// threshold-subset of its peer set.
type EVMProof struct {
	V []uint8
	R [][32]byte
	S [][32]byte
}

// AssembleEVMProof splits each 65-byte approval signature into (v, r, s)
// with v = sig[64] + 27, per spec §4.3 and §6's "Digest framing for EVM".
// Approvals are iterated in a stable, sorted-by-public-key order only so
// that output is deterministic for tests; the protocol itself does not
// require any particular order.
func AssembleEVMProof(approvals map[network.EcdsaPublic]network.EcdsaSignature) EVMProof {
	keys := make([]network.EcdsaPublic, 0, len(approvals))
	for k := range approvals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i][:]) < string(keys[j][:])
	})

	proof := EVMProof{
		V: make([]uint8, 0, len(keys)),
		R: make([][32]byte, 0, len(keys)),
		S: make([][32]byte, 0, len(keys)),
	}
	for _, k := range keys {
		sig := approvals[k]
		var r, s [32]byte
		copy(r[:], sig[0:32])
		copy(s[:], sig[32:64])
		v := sig[64] + 27
		proof.V = append(proof.V, v)
		proof.R = append(proof.R, r)
		proof.S = append(proof.S, s)
	}
	return proof
}

// AuxiliaryDigest is the exact digest log item recorded on the source chain
// at the commitment's block, per spec §4.3's Substrate multisig proof: "one
// Commitment(net_id, commitment_hash) log item must be present and unique
// in that block."
type AuxiliaryDigest struct {
	NetworkId      network.GenericNetworkId
	CommitmentHash common.Hash
}

// SubProof is the proof format a Substrate-family receiver's multisig
// verifier accepts.
type SubProof struct {
	Digest     AuxiliaryDigest
	Signatures []network.EcdsaSignature
}

// AssembleSubProof builds a SubProof from a resolved AuxiliaryDigest and a
// set of approvals; signature order is likewise unspecified by protocol.
func AssembleSubProof(digest AuxiliaryDigest, approvals map[network.EcdsaPublic]network.EcdsaSignature) SubProof {
	keys := make([]network.EcdsaPublic, 0, len(approvals))
	for k := range approvals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return string(keys[i][:]) < string(keys[j][:])
	})

	sigs := make([]network.EcdsaSignature, 0, len(keys))
	for _, k := range keys {
		sigs = append(sigs, approvals[k])
	}
	return SubProof{Digest: digest, Signatures: sigs}
}

// BeefyProof is named for completeness of spec §3's MultiProof{EVM,Sub,Beefy}
// sum type but is intentionally never constructed: spec §1 lists "the legacy
// Ethash/BEEFY light-client proof paths (historical, superseded by
// multisig)" as out of scope, and §9 Design Notes treats BEEFY as an
// optional proof variant that "is NOT required for new deployments." No
// relay direction in this repository builds one; reconstructing the MMR-leaf
// and validator-multisig pipeline would mean porting the superseded
// light-client path spec.md explicitly excludes.
type BeefyProof struct {
	MMRLeaf      []byte
	MMRProof     [][32]byte
	Signatures   []network.EcdsaSignature
}

// Proof is the tagged union MultiProof{EVM,Sub,Beefy} handed to
// ReceiverSide.SubmitCommitment.
type Proof struct {
	EVM   *EVMProof
	Sub   *SubProof
	Beefy *BeefyProof
}
