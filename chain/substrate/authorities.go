package substrate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sora-xor/bridge-relayer/network"
)

// PublicToEthereumAddress recovers the Ethereum address a compressed
// secp256k1 public key would sign as. Used when cross-checking a recovered
// signer's address form against peer-set entries stored in their
// Substrate-native Authority encoding.
func PublicToEthereumAddress(pub network.EcdsaPublic) (common.Address, error) {
	key, err := crypto.DecompressPubkey(pub[:])
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*key), nil
}
