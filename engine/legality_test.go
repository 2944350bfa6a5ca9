package engine

import "testing"

func TestCheckmate(t *testing.T) {
	// Fool's mate: after 1. f3 e5 2. g4 Qh4#, black's queen mates white.
	b, err := FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var legal MoveList
	b.GenLegalMoves(&legal)
	if legal.Len() != 0 {
		t.Fatalf("expected no legal moves in checkmate, got %d", legal.Len())
	}
	if !b.InCheck() {
		t.Fatalf("expected side to move to be in check")
	}
	if got := b.terminationGiven(&legal); got != Checkmate {
		t.Fatalf("Termination() = %v, want Checkmate", got)
	}
}

func TestStalemate(t *testing.T) {
	// The textbook king-and-queen-vs-king stalemate.
	b, err := FromFEN("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var legal MoveList
	b.GenLegalMoves(&legal)
	if legal.Len() != 0 {
		t.Fatalf("expected no legal moves in stalemate, got %d", legal.Len())
	}
	if b.InCheck() {
		t.Fatalf("stalemate position must not have the side to move in check")
	}
	if got := b.terminationGiven(&legal); got != Stalemate {
		t.Fatalf("Termination() = %v, want Stalemate", got)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	b := NewBoard()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	for rep := 0; rep < 2; rep++ {
		for _, s := range shuffle {
			m, ok := b.ParseUCIMove(s)
			if !ok {
				t.Fatalf("move %s not legal", s)
			}
			b.MakeMove(m)
		}
	}
	if !b.IsThreefoldRepetition() {
		t.Fatalf("expected threefold repetition after repeating the starting position three times")
	}
	if got := b.Termination(); got != ThreefoldRepetition {
		t.Fatalf("Termination() = %v, want ThreefoldRepetition", got)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	b, err := FromFEN("k7/8/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if !b.IsInsufficientMaterial() {
		t.Fatalf("bare kings should be insufficient material")
	}
}
