package engine

import "testing"

// Kiwipete: the standard stress position for castling, en passant, and
// promotion all in one generator pass.
const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// The CPW "position 3" edge case: an en-passant capture that would expose
// the capturing king to a discovered check along the fifth rank, and so
// must be excluded from the legal move list despite looking pseudo-legal.
const edgeFEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"

func TestPerftStartpos(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		b := NewBoard()
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(startpos, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		b, err := FromFEN(kiwipeteFEN)
		if err != nil {
			t.Fatalf("FromFEN(kiwipete): %v", err)
		}
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftEdgeEnPassantPin(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
	}
	for _, c := range cases {
		b, err := FromFEN(edgeFEN)
		if err != nil {
			t.Fatalf("FromFEN(edge): %v", err)
		}
		if got := b.Perft(c.depth); got != c.nodes {
			t.Errorf("perft(edge, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func BenchmarkPerft(b *testing.B) {
	for i := 0; i < b.N; i++ {
		board := NewBoard()
		board.Perft(4)
	}
}
