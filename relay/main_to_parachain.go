package relay

import (
	"time"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

// substrateToSubstrate is the shared constructor behind MainToParachain and
// ParachainToMain: both ends are Substrate-native, so both carry a digest
// log item the receiver's proof verifier checks against (spec §4.3's
// Substrate multisig proof).
func substrateToSubstrate(name string, source SourceSide, dest ReceiverSide, digestSource DigestSource, registry *signer.Registry, sourceNet, destNet network.GenericNetworkId, self network.EcdsaPublic, sign Signer, interval time.Duration) *Engine {
	return &Engine{
		Name:      name,
		SourceNet: sourceNet,
		DestNet:   destNet,
		Source:    source,
		Dest:      dest,
		Registry:  registry,
		Self:      self,
		Sign:      sign,
		AssembleProof: func(digest commitment.AuxiliaryDigest, approvals map[network.EcdsaPublic]network.EcdsaSignature) commitment.Proof {
			p := commitment.AssembleSubProof(digest, approvals)
			return commitment.Proof{Sub: &p}
		},
		DigestSource:         digestSource,
		NeedsAuxiliaryDigest: true,
		Interval:             interval,
	}
}

// MainToParachain builds the Engine for Main → peer parachain.
func MainToParachain(main SourceSide, digestSource DigestSource, parachain ReceiverSide, registry *signer.Registry, mainNet, parachainNet network.GenericNetworkId, self network.EcdsaPublic, sign Signer, interval time.Duration) *Engine {
	return substrateToSubstrate("main-to-parachain", main, parachain, digestSource, registry, mainNet, parachainNet, self, sign, interval)
}
