package relay

import (
	"time"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

// MainToEVM builds the Engine for the Main → EVM direction: Main emits
// EVM::Outbound batches, the EVM channel contract accepts them once
// threshold-signed (spec §2, §4.3's EVM proof). The signer registry is
// always Main's, which here coincides with the commitment source itself.
func MainToEVM(main SourceSide, evmGateway ReceiverSide, registry *signer.Registry, mainNet, evmNet network.GenericNetworkId, self network.EcdsaPublic, sign Signer, interval time.Duration) *Engine {
	return &Engine{
		Name:      "main-to-evm",
		SourceNet: mainNet,
		DestNet:   evmNet,
		Source:    main,
		Dest:      evmGateway,
		Registry:  registry,
		Self:      self,
		Sign:      sign,
		AssembleProof: func(_ commitment.AuxiliaryDigest, approvals map[network.EcdsaPublic]network.EcdsaSignature) commitment.Proof {
			p := commitment.AssembleEVMProof(approvals)
			return commitment.Proof{EVM: &p}
		},
		NeedsAuxiliaryDigest: false,
		Interval:             interval,
	}
}
