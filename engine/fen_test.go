package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/Pp6/8/8/8/4K3 w - b6 0 1",
	}
	for _, fen := range fens {
		b, err := FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Errorf("FEN round trip: got %q, want %q", got, fen)
		}
	}
}

func TestFENRejectsMalformedInput(t *testing.T) {
	cases := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",    // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // invalid color
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w ZQkq - 0 1",  // invalid castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // invalid ep square
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", // invalid halfmove
		"8/8/8/8/8/8/8/8 w - - 0 1",                                 // no kings
	}
	for _, fen := range cases {
		if _, err := FromFEN(fen); err == nil {
			t.Errorf("FromFEN(%q) should have been rejected", fen)
		}
	}
}

func TestFromFENInitialPositionMatchesNewBoard(t *testing.T) {
	a := NewBoard()
	b, err := FromFEN(InitialPositionFEN)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if diff := cmp.Diff(a.Mailbox, b.Mailbox); diff != "" {
		t.Errorf("mailbox mismatch (-NewBoard +FromFEN):\n%s", diff)
	}
	if a.Hash != b.Hash {
		t.Errorf("hash mismatch: %x != %x", a.Hash, b.Hash)
	}
}
