// Package uciloop implements the UCI command loop: reading engine-protocol
// commands from stdin and writing responses to stdout. It owns all
// stdout/stdin formatting; engine package itself never prints anything.
package uciloop

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"

	"chesscore/config"
	"chesscore/engine"
)

var log = logging.MustGetLogger("uciloop")

const (
	engineName   = "chesscore 1.0"
	engineAuthor = "the chesscore contributors"

	maxHashMB = 4096
)

// Loop runs the UCI protocol, reading commands from in and writing responses
// to out, until "quit" or in is exhausted. The search runs on its own
// goroutine so "stop" can be read and acted on mid-search; every command
// that touches the board or the table first waits for the search to finish.
type Loop struct {
	in  *bufio.Reader
	out io.Writer

	cfg   config.Config
	board *engine.Board
	tt    *engine.TranspositionTable
	eval  engine.Evaluator

	stop      atomic.Bool
	searching sync.WaitGroup

	// broken is set when a search dies on an invariant violation; the engine
	// refuses to search again until "ucinewgame" rebuilds its state.
	broken atomic.Bool
}

// NewLoop builds a Loop over in/out using cfg for the table size and default
// search depth.
func NewLoop(in io.Reader, out io.Writer, cfg config.Config) *Loop {
	engine.InitTables()
	return &Loop{
		in:    bufio.NewReader(in),
		out:   out,
		cfg:   cfg,
		board: engine.NewBoard(),
		tt:    engine.NewTranspositionTable(cfg.HashSizeMB),
		eval:  engine.MaterialEvaluator{},
	}
}

// Run blocks until "quit" is received or the input stream ends.
func (l *Loop) Run() {
	for {
		line, err := l.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			if !l.dispatch(line) {
				break
			}
		}
		if err != nil {
			break
		}
	}
	l.stop.Store(true)
	l.searching.Wait()
}

// dispatch handles one command line, returning false when the loop should
// stop (i.e. on "quit").
func (l *Loop) dispatch(line string) bool {
	switch {
	case line == "uci":
		l.handleUCI()
	case line == "isready":
		// Answerable at any time, including mid-search; it must not block.
		l.printf("readyok\n")
	case line == "ucinewgame":
		l.handleNewGame()
	case strings.HasPrefix(line, "setoption"):
		l.handleSetOption(line)
	case strings.HasPrefix(line, "position"):
		l.handlePosition(line)
	case strings.HasPrefix(line, "go"):
		l.handleGo(line)
	case line == "stop":
		l.stop.Store(true)
	case line == "quit":
		return false
	default:
		log.Debugf("ignoring unknown command %q", line)
	}
	return true
}

func (l *Loop) printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// waitSearch blocks until no search is running. Commands that mutate the
// board or the table call this first; a compliant GUI sends "stop" before
// them, so the wait is normally instantaneous.
func (l *Loop) waitSearch() {
	l.searching.Wait()
}

// pvString renders a principal variation as the space-separated UCI move
// list an "info ... pv ..." line carries.
func pvString(pv []engine.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.UCIString()
	}
	return strings.Join(parts, " ")
}

func (l *Loop) handleUCI() {
	l.printf("id name %s\n", engineName)
	l.printf("id author %s\n", engineAuthor)
	l.printf("option name Hash type spin default %d min 1 max %d\n", l.cfg.HashSizeMB, maxHashMB)
	l.printf("option name Threads type spin default 1 min 1 max 1\n")
	l.printf("uciok\n")
}

func (l *Loop) handleNewGame() {
	l.waitSearch()
	l.board = engine.NewBoard()
	l.tt.Clear()
	l.broken.Store(false)
}

func (l *Loop) handleSetOption(line string) {
	fields := strings.Fields(line)
	var name, value string
	for i, f := range fields {
		if f == "name" && i+1 < len(fields) {
			name = fields[i+1]
		}
		if f == "value" && i+1 < len(fields) {
			value = fields[i+1]
		}
	}
	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			log.Warningf("setoption Hash: unusable value %q", value)
			return
		}
		if mb > maxHashMB {
			log.Warningf("setoption Hash: %d MB clamped to the %d MB maximum", mb, maxHashMB)
			mb = maxHashMB
		}
		l.waitSearch()
		l.tt = engine.NewTranspositionTable(mb)
	case "Threads":
		// Accepted for GUI compatibility; the search is single-threaded.
		if value != "1" {
			log.Warningf("setoption Threads: only 1 is supported, ignoring %q", value)
		}
	default:
		log.Debugf("ignoring unknown option %q", name)
	}
}

// handlePosition implements "position [startpos|fen <fen>] [moves <uci>...]".
// The new position is built up on the side and committed only once the whole
// command parses and every move in the tail is legal; a bad FEN or an
// illegal move leaves the current board untouched rather than applying half
// a sequence.
func (l *Loop) handlePosition(line string) {
	args := strings.TrimPrefix(line, "position ")
	var board *engine.Board
	var movesPart string

	switch {
	case strings.HasPrefix(args, "startpos"):
		board = engine.NewBoard()
		movesPart = strings.TrimPrefix(args, "startpos")
	case strings.HasPrefix(args, "fen"):
		rest := strings.Fields(strings.TrimPrefix(args, "fen "))
		if len(rest) < 6 {
			log.Warningf("position: FEN needs 6 fields, got %d", len(rest))
			return
		}
		b, err := engine.FromFEN(strings.Join(rest[0:6], " "))
		if err != nil {
			log.Warningf("position: %v", err)
			return
		}
		board = b
		if idx := strings.Index(args, "moves"); idx >= 0 {
			movesPart = args[idx:]
		}
	default:
		log.Warningf("position: expected startpos or fen, got %q", args)
		return
	}

	movesPart = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(movesPart), "moves"))
	for _, s := range strings.Fields(movesPart) {
		m, ok := board.ParseUCIMove(s)
		if !ok {
			log.Warningf("position: move %q is not legal here, discarding the whole command", s)
			return
		}
		board.MakeMove(m)
	}

	if err := board.Validate(); err != nil {
		log.Warningf("position: %v", err)
		return
	}

	l.waitSearch()
	l.board = board
}

// handleGo parses the "go" parameters into SearchLimits and launches the
// search on its own goroutine, so the loop keeps reading (and a "stop" line
// can reach the flag the search polls).
func (l *Loop) handleGo(line string) {
	l.waitSearch()
	if l.broken.Load() {
		log.Errorf("refusing to search after an invariant violation; send ucinewgame first")
		l.printf("bestmove 0000\n")
		return
	}

	limits := engine.SearchLimits{Depth: l.cfg.DefaultDepth}
	var wtime, btime, winc, binc, movetime int
	infinite := false

	fields := strings.Fields(line)
	intArg := func(i int) int {
		if i+1 < len(fields) {
			if n, err := strconv.Atoi(fields[i+1]); err == nil {
				return n
			}
		}
		return 0
	}
	for i, f := range fields {
		switch f {
		case "depth":
			limits.Depth = intArg(i)
		case "nodes":
			limits.Nodes = uint64(intArg(i))
		case "movetime":
			movetime = intArg(i)
		case "wtime":
			wtime = intArg(i)
		case "btime":
			btime = intArg(i)
		case "winc":
			winc = intArg(i)
		case "binc":
			binc = intArg(i)
		case "infinite", "ponder":
			// Pondering is not supported; treat it as an open-ended search
			// the GUI will end with "stop".
			infinite = true
		}
	}

	if !infinite {
		if budget := searchBudget(l.board, wtime, btime, winc, binc, movetime); budget > 0 {
			limits.Deadline = time.Now().Add(budget)
		}
	}

	l.stop.Store(false)
	searcher := engine.NewSearcher(l.board, l.eval, l.tt, &l.stop)
	searcher.OnInfo(func(info engine.SearchInfo) {
		if info.Mate != 0 {
			l.printf("info depth %d seldepth %d score mate %d nodes %d nps %d time %d",
				info.Depth, info.Seldepth, info.Mate, info.Nodes, info.NPS, info.TimeMs)
		} else {
			l.printf("info depth %d seldepth %d score cp %d nodes %d nps %d time %d",
				info.Depth, info.Seldepth, info.Score, info.Nodes, info.NPS, info.TimeMs)
		}
		if len(info.PV) > 0 {
			l.printf(" pv %s", pvString(info.PV))
		}
		l.printf("\n")
	})

	l.searching.Add(1)
	go func() {
		defer l.searching.Done()
		// An invariant violation inside the core panics; the current search
		// is abandoned and the engine stays unready until "ucinewgame".
		defer func() {
			if r := recover(); r != nil {
				log.Criticalf("search aborted by invariant violation: %v", r)
				l.broken.Store(true)
				l.printf("bestmove 0000\n")
			}
		}()
		best := searcher.Search(limits)
		l.printf("bestmove %s\n", best.UCIString())
	}()
}

// searchBudget translates the "go" clock parameters into a wall-clock budget
// for this one move: an explicit movetime is taken as-is, otherwise a slice
// of the side to move's remaining time plus most of its increment. Zero
// means no time bound was given at all.
func searchBudget(b *engine.Board, wtime, btime, winc, binc, movetime int) time.Duration {
	if movetime > 0 {
		return time.Duration(movetime) * time.Millisecond
	}
	remaining, inc := wtime, winc
	if b.ActiveColor == engine.ColorBlack {
		remaining, inc = btime, binc
	}
	if remaining <= 0 {
		return 0
	}
	budget := remaining/30 + inc*3/4
	if budget >= remaining {
		budget = remaining / 2
	}
	return time.Duration(budget) * time.Millisecond
}
