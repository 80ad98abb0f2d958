// Package network defines the chain-identity and peer types shared by every
// gateway and relay direction: GenericNetworkId, the ECDSA peer identity, and
// the m-of-n threshold rule.
package network

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Kind distinguishes the three chain families a GenericNetworkId can name.
type Kind uint8

const (
	KindSub Kind = iota
	KindEVM
	KindTON
)

func (k Kind) String() string {
	switch k {
	case KindSub:
		return "sub"
	case KindEVM:
		return "evm"
	case KindTON:
		return "ton"
	default:
		return "unknown"
	}
}

// TonNetworkId distinguishes TON mainnet from testnet, mirrored from the
// `--network {mainnet|testnet}` CLI flag in the register-app subcommands.
type TonNetworkId uint8

const (
	TonMainnet TonNetworkId = iota
	TonTestnet
)

func (t TonNetworkId) String() string {
	if t == TonTestnet {
		return "testnet"
	}
	return "mainnet"
}

// GenericNetworkId is the tagged union Sub(SubNetworkId) | EVM(chainID) | TON(TonNetworkId).
// Only one of the three payload fields is meaningful, selected by Kind: a
// plain struct with a discriminant field rather than a sum-type library.
type GenericNetworkId struct {
	Kind   Kind
	SubNet uint32 // valid when Kind == KindSub
	EVMNet uint64 // valid when Kind == KindEVM
	TonNet TonNetworkId
}

func Sub(id uint32) GenericNetworkId { return GenericNetworkId{Kind: KindSub, SubNet: id} }
func EVM(chainID uint64) GenericNetworkId { return GenericNetworkId{Kind: KindEVM, EVMNet: chainID} }
func TON(id TonNetworkId) GenericNetworkId { return GenericNetworkId{Kind: KindTON, TonNet: id} }

func (n GenericNetworkId) String() string {
	switch n.Kind {
	case KindSub:
		return fmt.Sprintf("sub(%d)", n.SubNet)
	case KindEVM:
		return fmt.Sprintf("evm(%d)", n.EVMNet)
	case KindTON:
		return fmt.Sprintf("ton(%s)", n.TonNet)
	default:
		return "unknown-network"
	}
}

// Encode returns the canonical byte encoding consumed by digest hashing.
// It is deliberately simple (tag byte + big-endian payload): the only
// requirement on the encoding is that it be injective over distinct
// (kind, id) pairs.
func (n GenericNetworkId) Encode() []byte {
	out := make([]byte, 0, 16)
	out = append(out, byte(n.Kind))
	switch n.Kind {
	case KindSub:
		var b [4]byte
		putUint32(b[:], n.SubNet)
		out = append(out, b[:]...)
	case KindEVM:
		var b [8]byte
		putUint64(b[:], n.EVMNet)
		out = append(out, b[:]...)
	case KindTON:
		out = append(out, byte(n.TonNet))
	}
	return out
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> (8 * i))
	}
}

// EcdsaPublic is a compressed secp256k1 public key, the peer identity of the
// federated signer set (spec §3 "Peer"). Grounded on
// crypto/secp256k1.Keypair.PublicKey, which returns the same compressed
// encoding via go-ethereum's CompressPubkey.
type EcdsaPublic [33]byte

func (p EcdsaPublic) Hex() string {
	return "0x" + common.Bytes2Hex(p[:])
}

// EcdsaSignature is a 65-byte recoverable ECDSA signature (r || s || v),
// the wire form approvals are stored and transmitted in.
type EcdsaSignature [65]byte

func (s EcdsaSignature) Hex() string {
	return "0x" + common.Bytes2Hex(s[:])
}

// Threshold implements spec §3's m-of-n rule: floor(2n/3) + 1, written as
// the integer formula 2n/3 + 1 (equal to Byzantine 2f+1 when n = 3f+1).
func Threshold(n int) int {
	if n <= 0 {
		return 0
	}
	return 2*n/3 + 1
}
