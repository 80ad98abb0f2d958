package evm

import (
	"testing"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/sora-xor/bridge-relayer/contracts"
)

func ethLog(blockNumber uint64) types.Log {
	return types.Log{BlockNumber: blockNumber}
}

func TestScanWindowStartBehindFinalized(t *testing.T) {
	finalized := uint64(scanWindowBlocks + 1000)
	got := scanWindowStart(finalized)
	want := finalized - scanWindowBlocks
	if got != want {
		t.Fatalf("scanWindowStart(%d) = %d, want %d", finalized, got, want)
	}
}

func TestScanWindowStartClampsToGenesis(t *testing.T) {
	finalized := uint64(100)
	if got := scanWindowStart(finalized); got != 0 {
		t.Fatalf("scanWindowStart(%d) = %d, want 0 (chain younger than the window)", finalized, got)
	}
}

func TestAdvanceCursorMovesPastFinalizedRegardlessOfResets(t *testing.T) {
	resets := []contracts.ChannelReseted{
		{Raw: ethLog(50)},
	}
	finalized := uint64(200)

	got := advanceCursor(10, resets, finalized)
	if got != finalized+1 {
		t.Fatalf("advanceCursor = %d, want %d", got, finalized+1)
	}
}

func TestAdvanceCursorWithNoResets(t *testing.T) {
	finalized := uint64(75)
	got := advanceCursor(5, nil, finalized)
	if got != finalized+1 {
		t.Fatalf("advanceCursor = %d, want %d", got, finalized+1)
	}
}
