// Package commitment defines the shared commitment and proof types that flow
// through every relay direction: GenericCommitment and its per-receiver-
// family variants, the digest construction peers sign, and proof assembly
// for submission to a receiver chain.
package commitment

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sora-xor/bridge-relayer/network"
)

// GenericCommitment is implemented by every commitment variant named in
// spec §3. Hash is Keccak-256 of the commitment's canonical encoding; the
// only invariant required of Encode is injectivity (spec §3: "treat encoding
// as an abstract injective function").
type GenericCommitment interface {
	Nonce() uint64
	Encode() []byte
}

// Hash returns the Keccak-256 digest of a commitment's canonical encoding.
func Hash(c GenericCommitment) common.Hash {
	return crypto.Keccak256Hash(c.Encode())
}

// ethSignedMessagePrefix is the EIP-191 personal-message prefix used to wrap
// digests destined for an EVM receiver (spec §3, §6).
const ethSignedMessagePrefix = "\x19Ethereum Signed Message:\n32"

// Digest computes the 32-byte object peers sign for a commitment flowing
// from source to receiver: Keccak256(encode(source, receiver, commitmentHash)).
func Digest(source, receiver network.GenericNetworkId, commitmentHash common.Hash) common.Hash {
	buf := make([]byte, 0, 64)
	buf = append(buf, source.Encode()...)
	buf = append(buf, receiver.Encode()...)
	buf = append(buf, commitmentHash[:]...)
	return crypto.Keccak256Hash(buf)
}

// EthSignedDigest wraps a digest in the EIP-191 personal-message envelope
// required before an EVM receiver's multisig verifier will accept a
// signature over it.
func EthSignedDigest(digest common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte(ethSignedMessagePrefix), digest[:])
}

func putUint64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// --- EVM-receiver commitment variants -------------------------------------

// EVMMessage is one entry of an EVMOutbound batch (spec §3).
type EVMMessage struct {
	MaxGas  uint64
	Target  common.Address
	Payload []byte
}

func (m EVMMessage) encode() []byte {
	out := make([]byte, 0, 32+len(m.Payload))
	out = append(out, putUint64(m.MaxGas)...)
	out = append(out, m.Target.Bytes()...)
	out = append(out, m.Payload...)
	return out
}

// EVMInbound is a commitment replayed from an EVM channel's events to Main.
type EVMInbound struct {
	Channel     common.Address
	Source      common.Address
	BlockNumber uint64
	NonceValue  uint64
	Payload     []byte
}

func (c EVMInbound) Nonce() uint64 { return c.NonceValue }

func (c EVMInbound) Encode() []byte {
	out := make([]byte, 0, 96+len(c.Payload))
	out = append(out, c.Channel.Bytes()...)
	out = append(out, c.Source.Bytes()...)
	out = append(out, putUint64(c.BlockNumber)...)
	out = append(out, putUint64(c.NonceValue)...)
	out = append(out, c.Payload...)
	return out
}

// EVMOutbound is a batch of messages committed on Main to ship to an EVM channel.
type EVMOutbound struct {
	NonceValue  uint64
	TotalMaxGas uint64
	Messages    []EVMMessage
	BlockNumber uint64 // source-side block the commitment was recorded at
}

func (c EVMOutbound) Nonce() uint64 { return c.NonceValue }

// BlockNumberHint pins the backward walk's auxiliary digest lookup (spec §4.3).
func (c EVMOutbound) BlockNumberHint() uint64 { return c.BlockNumber }

func (c EVMOutbound) Encode() []byte {
	out := make([]byte, 0, 16)
	out = append(out, putUint64(c.NonceValue)...)
	out = append(out, putUint64(c.TotalMaxGas)...)
	for _, m := range c.Messages {
		out = append(out, m.encode()...)
	}
	return out
}

// EVMStatusReport reports the outcome of a delivered batch back to Main.
type EVMStatusReport struct {
	NonceValue    uint64
	BaseFee       uint64
	GasSpent      uint64
	Relayer       common.Address
	ResultsBitmap uint64
	Channel       common.Address
	BlockNumber   uint64
}

func (c EVMStatusReport) Nonce() uint64 { return c.NonceValue }

func (c EVMStatusReport) Encode() []byte {
	out := make([]byte, 0, 96)
	out = append(out, putUint64(c.NonceValue)...)
	out = append(out, putUint64(c.BaseFee)...)
	out = append(out, putUint64(c.GasSpent)...)
	out = append(out, c.Relayer.Bytes()...)
	out = append(out, putUint64(c.ResultsBitmap)...)
	out = append(out, c.Channel.Bytes()...)
	out = append(out, putUint64(c.BlockNumber)...)
	return out
}

// EVMBaseFeeUpdate carries a new EVM base fee observation to Main.
//
// Per spec §9 Design Notes, two forms of handle_base_fee_update existed in
// the source: one gating on old_base_fee equality, one on evm_block_number
// monotonicity. This type carries the fields of the monotonic-block form;
// no relay direction in this repository builds or handles base-fee updates.
type EVMBaseFeeUpdate struct {
	NewBaseFee     uint64
	EVMBlockNumber uint64
}

// EVMBaseFeeUpdate has no independent nonce, so it is not a
// GenericCommitment variant; chain/evm.ChannelScanner does not produce it.
func (c EVMBaseFeeUpdate) Encode() []byte {
	out := make([]byte, 0, 16)
	out = append(out, putUint64(c.NewBaseFee)...)
	out = append(out, putUint64(c.EVMBlockNumber)...)
	return out
}

// --- Substrate-receiver commitment variants -------------------------------

// SubMessage is one entry of a Sub::Outbound batch.
type SubMessage struct {
	Payload []byte
}

// SubInbound is a commitment replayed from a Substrate-native source
// (Main or the peer parachain) to the opposite side.
type SubInbound struct {
	NonceValue uint64
	Payload    []byte
}

func (c SubInbound) Nonce() uint64 { return c.NonceValue }

func (c SubInbound) Encode() []byte {
	out := make([]byte, 0, 8+len(c.Payload))
	out = append(out, putUint64(c.NonceValue)...)
	out = append(out, c.Payload...)
	return out
}

// SubOutbound is a batch of Substrate-native messages committed for delivery
// to the opposite Substrate-family chain.
type SubOutbound struct {
	NonceValue  uint64
	Messages    []SubMessage
	BlockNumber uint64 // source-side block the commitment was recorded at
}

func (c SubOutbound) Nonce() uint64 { return c.NonceValue }

// BlockNumberHint pins the backward walk's auxiliary digest lookup (spec §4.3).
func (c SubOutbound) BlockNumberHint() uint64 { return c.BlockNumber }

func (c SubOutbound) Encode() []byte {
	out := make([]byte, 0, 8)
	out = append(out, putUint64(c.NonceValue)...)
	for _, m := range c.Messages {
		out = append(out, m.Payload...)
	}
	return out
}

// --- TON-receiver commitment variant ---------------------------------------

// TonAddress is the canonical (workchain, 32-byte hash) form of a TON
// address, per spec §9's resolved ambiguity: the canonical InboundCommitment
// separates `channel` (contract address) from `source` (event sender).
type TonAddress struct {
	Workchain int8
	Address   [32]byte
}

func (a TonAddress) Encode() []byte {
	out := make([]byte, 0, 33)
	out = append(out, byte(a.Workchain))
	out = append(out, a.Address[:]...)
	return out
}

// TONInbound is a commitment replayed from a TON channel's outbound messages
// to Main.
type TONInbound struct {
	NonceValue    uint64
	Source        TonAddress
	Channel       TonAddress
	TransactionID string
	Payload       []byte
}

func (c TONInbound) Nonce() uint64 { return c.NonceValue }

func (c TONInbound) Encode() []byte {
	out := make([]byte, 0, 64+len(c.Payload))
	out = append(out, putUint64(c.NonceValue)...)
	out = append(out, c.Source.Encode()...)
	out = append(out, c.Channel.Encode()...)
	out = append(out, []byte(c.TransactionID)...)
	out = append(out, c.Payload...)
	return out
}

// ErrUnknownCommitmentKind is returned by decoders when a commitment tag
// cannot be matched to one of the variants above.
var ErrUnknownCommitmentKind = fmt.Errorf("commitment: unknown kind")
