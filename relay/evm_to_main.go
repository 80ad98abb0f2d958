package relay

import (
	"time"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

// EVMToMain builds the Engine for the EVM → Main direction: the EVM channel
// contract emits EVM::Inbound commitments, Main accepts them once
// threshold-signed via a Sub proof. No auxiliary digest log exists on the
// EVM source, so the digest is built in-memory (Engine.NeedsAuxiliaryDigest
// stays false) rather than fetched.
func EVMToMain(evmGateway SourceSide, main ReceiverSide, registry *signer.Registry, evmNet, mainNet network.GenericNetworkId, self network.EcdsaPublic, sign Signer, interval time.Duration) *Engine {
	return &Engine{
		Name:      "evm-to-main",
		SourceNet: evmNet,
		DestNet:   mainNet,
		Source:    evmGateway,
		Dest:      main,
		Registry:  registry,
		Self:      self,
		Sign:      sign,
		AssembleProof: func(digest commitment.AuxiliaryDigest, approvals map[network.EcdsaPublic]network.EcdsaSignature) commitment.Proof {
			p := commitment.AssembleSubProof(digest, approvals)
			return commitment.Proof{Sub: &p}
		},
		NeedsAuxiliaryDigest: false,
		Interval:             interval,
	}
}
