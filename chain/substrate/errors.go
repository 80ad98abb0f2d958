package substrate

import "errors"

var (
	// ErrCommitmentNotFound is returned by CommitmentByNonce when the walk
	// reaches a commitment whose nonce is already below the target: the
	// commitment has not yet been emitted (spec §4.1).
	ErrCommitmentNotFound = errors.New("substrate: commitment not found for nonce")

	// ErrDigestNotFound is returned when a block's digest log carries no
	// Commitment(net_id, commitment_hash) item (spec §4.3, §7 Protocol
	// error class).
	ErrDigestNotFound = errors.New("substrate: auxiliary digest not present in block")

	// ErrPeerSetNotConfigured mirrors signer.ErrPeerSetNotConfigured. The
	// storage read (Client.Peers) reports peers(net) = None as ok=false
	// instead of returning this error.
	ErrPeerSetNotConfigured = errors.New("substrate: peer set not configured for network")

	// ErrWalkExceededMaxHops guards the commitment-by-nonce backward walk
	// (spec §4.1) against runaway iteration if the on-chain invariant of
	// strictly-decreasing nonces is ever violated. Not named in spec.md,
	// added so the Go implementation is a total function instead of an
	// unbounded loop (SPEC_FULL.md §4.1).
	ErrWalkExceededMaxHops = errors.New("substrate: commitment walk exceeded maximum hop count")
)
