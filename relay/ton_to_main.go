package relay

import (
	"time"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

// TONToMain builds the Engine for the TON → Main direction: the TON channel
// contract's outbound messages become TON::Inbound commitments, Main
// accepts them once threshold-signed. Per spec §2's direction table this
// uses the same (v,r,s) EVM-style multisig proof format as an EVM receiver,
// not a Sub proof with a digest log lookup — TON's channel contract, like
// EVM's, writes no Substrate digest log item for Main to cross-check.
func TONToMain(tonSource SourceSide, main ReceiverSide, registry *signer.Registry, tonNet, mainNet network.GenericNetworkId, self network.EcdsaPublic, sign Signer, interval time.Duration) *Engine {
	return &Engine{
		Name:      "ton-to-main",
		SourceNet: tonNet,
		DestNet:   mainNet,
		Source:    tonSource,
		Dest:      main,
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
