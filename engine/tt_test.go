package engine

import "testing"

func TestTranspositionTableStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0xdeadbeef)
	move := NewMove(12, 28, MoveNormal)

	tt.Store(hash, 123, move, 4, ExactBound, 0)
	value, gotMove, depth, bound, ok := tt.Probe(hash, 0)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if value != 123 || gotMove != move || depth != 4 || bound != ExactBound {
		t.Fatalf("got (value=%d move=%v depth=%d bound=%v)", value, gotMove, depth, bound)
	}
}

func TestTranspositionTableMissOnDifferentHash(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, 0, NullMove, 1, ExactBound, 0)
	if _, _, _, _, ok := tt.Probe(2, 0); ok {
		t.Fatalf("expected a miss on an unrelated hash")
	}
}

func TestTranspositionTableMateScoreRebasing(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(42)
	mateValue := posInf - 3 // mate 3 plies from the root, 1 ply below the node stored at ply 2

	tt.Store(hash, mateValue, NullMove, 5, ExactBound, 2)
	value, _, _, _, ok := tt.Probe(hash, 2)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if value != mateValue {
		t.Fatalf("probing at the same ply it was stored at should round-trip exactly: got %d, want %d", value, mateValue)
	}
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(7, 1, NullMove, 1, ExactBound, 0)
	tt.Clear()
	if _, _, _, _, ok := tt.Probe(7, 0); ok {
		t.Fatalf("expected Clear to evict all entries")
	}
}
