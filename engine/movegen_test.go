package engine

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// uciSet renders every move in l as its UCI string, sorted, so two move
// lists generated in different orders still compare equal.
func uciSet(l *MoveList) []string {
	out := make([]string, l.Len())
	for i := 0; i < l.Len(); i++ {
		out[i] = l.Moves[i].UCIString()
	}
	sort.Strings(out)
	return out
}

func TestGenLegalMovesStartpos(t *testing.T) {
	b := NewBoard()
	var legal MoveList
	b.GenLegalMoves(&legal)

	want := []string{
		"a2a3", "a2a4", "b1a3", "b1c3", "b2b3", "b2b4", "c2c3", "c2c4",
		"d2d3", "d2d4", "e2e3", "e2e4", "f2f3", "f2f4", "g1f3", "g1h3",
		"g2g3", "g2g4", "h2h3", "h2h4",
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, uciSet(&legal)); diff != "" {
		t.Errorf("startpos legal moves mismatch (-want +got):\n%s", diff)
	}
}

// TestGenLegalMovesCastlingBlockedByAttackedTransit checks that a rook
// attacking the king's transit square removes that castling option, while
// the unaffected side (here, queenside) is still generated.
func TestGenLegalMovesCastlingBlockedByAttackedTransit(t *testing.T) {
	// Black rook on f8 bears down the open f-file onto f1, the square the
	// white king would transit through to reach g1: kingside castling must
	// not be generated, but queenside (through d1/c1) still is.
	b, err := FromFEN("5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}

	var legal MoveList
	b.GenLegalMoves(&legal)
	moves := uciSet(&legal)

	for _, m := range moves {
		if m == "e1g1" {
			t.Fatalf("kingside castling should be excluded: king would transit an attacked square (f1); got %v", moves)
		}
	}
	found := false
	for _, m := range moves {
		if m == "e1c1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("queenside castling should still be generated; got %v", moves)
	}
}

// TestGenLegalMovesExcludesPinnedEnPassant reproduces the CPW "position 3"
// edge case: the en-passant capture looks pseudo-legal but would expose the
// capturing king to a discovered check along the fifth rank.
func TestGenLegalMovesExcludesPinnedEnPassant(t *testing.T) {
	b, err := FromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	m, ok := b.ParseUCIMove("c7c5")
	if !ok {
		t.Fatalf("c7c5 should be legal")
	}
	b.MakeMove(m)

	var legal MoveList
	b.GenLegalMoves(&legal)
	for i := 0; i < legal.Len(); i++ {
		if legal.Moves[i].UCIString() == "b5c6" {
			t.Fatalf("en passant capture b5c6 would expose the white king on a5 to the black rook on h5; must be excluded")
		}
	}
}

func TestGenLegalMovesPromotionGeneratesAllFourPieces(t *testing.T) {
	b, err := FromFEN("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var legal MoveList
	b.GenLegalMoves(&legal)

	want := map[string]bool{"a7a8q": false, "a7a8r": false, "a7a8b": false, "a7a8n": false}
	for i := 0; i < legal.Len(); i++ {
		s := legal.Moves[i].UCIString()
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for move, seen := range want {
		if !seen {
			t.Errorf("expected promotion move %s to be generated", move)
		}
	}
}
