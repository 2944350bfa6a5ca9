package uciloop

import (
	"bytes"
	"strings"
	"testing"

	"chesscore/config"
)

func newTestLoop() *Loop {
	return NewLoop(strings.NewReader(""), &bytes.Buffer{}, config.Default())
}

func TestHandshake(t *testing.T) {
	out := &bytes.Buffer{}
	in := strings.NewReader("uci\nisready\nquit\n")
	NewLoop(in, out, config.Default()).Run()

	s := out.String()
	for _, want := range []string{"id name", "id author", "uciok", "readyok"} {
		if !strings.Contains(s, want) {
			t.Errorf("handshake output missing %q:\n%s", want, s)
		}
	}
}

func TestGoProducesBestMove(t *testing.T) {
	out := &bytes.Buffer{}
	l := NewLoop(strings.NewReader(""), out, config.Default())
	l.handlePosition("position startpos")
	l.handleGo("go depth 2")
	l.searching.Wait()

	s := out.String()
	if !strings.Contains(s, "bestmove ") {
		t.Fatalf("expected a bestmove line, got:\n%s", s)
	}
	if !strings.Contains(s, "info depth 1") || !strings.Contains(s, "info depth 2") {
		t.Errorf("expected an info line per completed depth, got:\n%s", s)
	}
	if !strings.Contains(s, " pv ") {
		t.Errorf("expected a principal variation on the info lines, got:\n%s", s)
	}
}

func TestPositionFEN(t *testing.T) {
	const fen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	l := newTestLoop()
	l.handlePosition("position fen " + fen)
	if got := l.board.FEN(); got != fen {
		t.Fatalf("board FEN = %q, want %q", got, fen)
	}
}

func TestPositionAppliesMoves(t *testing.T) {
	l := newTestLoop()
	l.handlePosition("position startpos moves e2e4 e7e5")
	const want = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := l.board.FEN(); got != want {
		t.Fatalf("board FEN = %q, want %q", got, want)
	}
}

// TestPositionRejectsIllegalTail pins down the all-or-nothing rule: a single
// illegal token in the moves tail discards the entire command, leaving the
// board exactly where the last good command put it.
func TestPositionRejectsIllegalTail(t *testing.T) {
	l := newTestLoop()
	l.handlePosition("position startpos moves e2e4 e7e5")
	want := l.board.FEN()

	l.handlePosition("position startpos moves e2e4 e2e4")
	if got := l.board.FEN(); got != want {
		t.Fatalf("illegal tail must leave the board untouched: got %q, want %q", got, want)
	}

	l.handlePosition("position fen not a real fen at all ok")
	if got := l.board.FEN(); got != want {
		t.Fatalf("bad FEN must leave the board untouched: got %q, want %q", got, want)
	}
}

func TestSearchBudget(t *testing.T) {
	l := newTestLoop()

	if got := searchBudget(l.board, 0, 0, 0, 0, 500); got.Milliseconds() != 500 {
		t.Errorf("movetime 500 should be taken as-is, got %v", got)
	}
	if got := searchBudget(l.board, 60000, 0, 1000, 0, 0); got <= 0 {
		t.Errorf("white on the clock should get a positive budget, got %v", got)
	}
	if got := searchBudget(l.board, 0, 0, 0, 0, 0); got != 0 {
		t.Errorf("no clock parameters means no time bound, got %v", got)
	}
}
