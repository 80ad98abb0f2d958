package substrate

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/snowfork/go-substrate-rpc-client/v4/types"

	"github.com/sora-xor/bridge-relayer/commitment"
	"github.com/sora-xor/bridge-relayer/network"
)

// auxiliaryDigestPrefix tags a block-digest log item as the bridge's
// Commitment(net_id, commitment_hash) entry (spec §4.3's Substrate multisig
// proof: "digest is the exact AuxiliaryDigest recorded on source at the
// commitment's block"). Only the commitment hash is decoded from the item;
// no network id is read from it.
const auxiliaryDigestPrefix = 0

// ExtractAuxiliaryDigest scans a block's digest log for the bridge's
// Commitment(net_id, commitment_hash) item. Exactly one such item must be
// present in the block that emitted the commitment: a missing item returns
// ErrDigestNotFound, and a second item is an error. The returned digest's
// NetworkId is the net argument as given, not a value read from the block.
func ExtractAuxiliaryDigest(net network.GenericNetworkId, digest types.Digest) (*commitment.AuxiliaryDigest, error) {
	var found *commitment.AuxiliaryDigest

	for _, item := range digest {
		if !item.IsOther {
			continue
		}
		raw := item.AsOther
		if len(raw) < 1 || raw[0] != auxiliaryDigestPrefix {
			continue
		}

		var hash types.H256
		if err := types.DecodeFromBytes(raw[1:], &hash); err != nil {
			return nil, fmt.Errorf("decode auxiliary digest item: %w", err)
		}

		candidate := commitment.AuxiliaryDigest{
			NetworkId:      net,
			CommitmentHash: common.Hash(hash),
		}
		if found != nil {
			return nil, fmt.Errorf("block digest carries more than one Commitment log item")
		}
		found = &candidate
	}

	if found == nil {
		return nil, ErrDigestNotFound
	}
	return found, nil
}
