package commitment

import (
	"testing"

	"github.com/sora-xor/bridge-relayer/network"
)

func TestAssembleEVMProofSetsVOffset(t *testing.T) {
	var pub network.EcdsaPublic
	pub[0] = 1

	var sig network.EcdsaSignature
	sig[64] = 1 // recovery id 1

	approvals := map[network.EcdsaPublic]network.EcdsaSignature{pub: sig}

	proof := AssembleEVMProof(approvals)

	if len(proof.V) != 1 || proof.V[0] != 28 {
		t.Fatalf("expected v = recid(1) + 27 = 28, got %v", proof.V)
	}
}

func TestAssembleSubProofCarriesAllSignatures(t *testing.T) {
	approvals := make(map[network.EcdsaPublic]network.EcdsaSignature)
	for i := 0; i < 3; i++ {
		var pub network.EcdsaPublic
		pub[0] = byte(i)
		approvals[pub] = network.EcdsaSignature{}
	}

	proof := AssembleSubProof(AuxiliaryDigest{}, approvals)
	if len(proof.Signatures) != 3 {
		t.Fatalf("expected 3 signatures, got %d", len(proof.Signatures))
	}
}
