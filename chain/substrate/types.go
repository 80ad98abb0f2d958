package substrate

import (
	"github.com/snowfork/go-substrate-rpc-client/v4/types"
)

// The following SCALE-decodable shapes mirror the pallet storage items spec
// §6 lists under BridgeOutboundChannel::LatestCommitment /
// SubstrateBridgeOutboundChannel::LatestCommitment. The exact on-chain
// layout is an external collaborator's concern (spec §1); these structs
// carry just the fields spec §3's GenericCommitment variants name, encoded
// the way go-substrate-rpc-client decodes plain structs (exported fields,
// declaration order).

type scaleEVMMessage struct {
	MaxGas  types.U64
	Target  types.H160
	Payload types.Bytes
}

// scaleEVMOutboundCommitment mirrors the envelope
// BridgeOutboundChannel::LatestCommitment stores when keyed by an EVM
// destination network: the commitment plus the source-side block number it
// was emitted at (the pair spec §4.1's commitment-by-nonce walk reads).
type scaleEVMOutboundCommitment struct {
	Nonce       types.U64
	TotalMaxGas types.U64
	Messages    []scaleEVMMessage
	BlockNumber types.U64
}

type scaleSubOutboundMessage struct {
	Payload types.Bytes
}

// scaleSubOutboundCommitment is the same envelope for a Substrate-family
// (parachain) destination network.
type scaleSubOutboundCommitment struct {
	Nonce       types.U64
	Messages    []scaleSubOutboundMessage
	BlockNumber types.U64
}
