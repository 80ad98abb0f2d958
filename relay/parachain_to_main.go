package relay

import (
	"time"

	"github.com/sora-xor/bridge-relayer/network"
	"github.com/sora-xor/bridge-relayer/signer"
)

// ParachainToMain builds the Engine for the peer parachain → Main direction.
func ParachainToMain(parachain SourceSide, digestSource DigestSource, main ReceiverSide, registry *signer.Registry, parachainNet, mainNet network.GenericNetworkId, self network.EcdsaPublic, sign Signer, interval time.Duration) *Engine {
	return substrateToSubstrate("parachain-to-main", parachain, main, digestSource, registry, parachainNet, mainNet, self, sign, interval)
}
