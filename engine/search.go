// search.go implements the search core (C12): iterative deepening over a
// negamax alpha-beta tree with quiescence at the leaves, seeded by the
// transposition table and cooperatively cancellable mid-search.

package engine

import (
	"sync/atomic"
	"time"
)

const (
	posInf = 1 << 20
	negInf = -posInf

	// maxPly bounds the killer-move table, the iterative-deepening depth
	// (Search goes no deeper than maxPly-1), and the distance from posInf
	// at which a score counts as a mate score needing ply-rebasing in the
	// transposition table.
	maxPly = 128

	drawValue = 0

	// The ordering tiers are kept disjoint: any capture outscores any
	// killer, and killers outscore any history count.
	captureBonus      = 1 << 24
	firstKillerBonus  = 1 << 22
	secondKillerBonus = firstKillerBonus - 1

	// nodesPerStopCheck controls how often the search polls the shared stop
	// flag and the deadline: often enough that "stop" feels immediate,
	// rarely enough that the atomic load and clock read never show up in a
	// profile.
	nodesPerStopCheck = 4096

	quiescenceMaxDepth = 16
)

// SearchLimits bounds one call to Search. A zero value means "unbounded" for
// that field. Nodes is a whole-search budget; Deadline, if set, is polled on
// the same schedule as the stop flag. Translating a UCI "go" clock into a
// Deadline is the caller's job; the search itself has no time-management
// policy.
type SearchLimits struct {
	Depth    int
	Nodes    uint64
	Deadline time.Time
}

// SearchInfo is reported once per completed iterative-deepening depth, the
// data a UCI "info" line is built from.
type SearchInfo struct {
	Depth    int
	Seldepth int
	Score    int
	Mate     int // non-zero: mate in Mate full moves (negative: being mated)
	Nodes    uint64
	NPS      uint64
	TimeMs   int64
	TTHits   uint64
	BestMove Move
	PV       []Move
}

// Searcher owns everything a search needs beyond the board itself: the
// transposition table, move-ordering heuristics, and node/time bookkeeping.
// The killer and history tables are reset at the start of each Search call;
// the transposition table persists across calls (only its generation counter
// advances), which is where knowledge carries over between moves of the same
// game.
type Searcher struct {
	Board *Board
	Eval  Evaluator
	TT    *TranspositionTable

	killerMoves   [maxPly][2]Move
	searchHistory [64][64]int

	limits    SearchLimits
	startTime time.Time
	nodes     uint64
	seldepth  int
	ttHits    uint64
	aborted   bool

	// stop is polled cooperatively every nodesPerStopCheck nodes; the search
	// never starts a goroutine of its own (see the concurrency Non-goals),
	// it only checks whether someone else asked it to unwind.
	stop *atomic.Bool

	onInfo func(SearchInfo)
}

// NewSearcher builds a Searcher over board using eval for scoring and tt as
// its transposition table. stop, if non-nil, is polled during search; a
// caller that sets it from another goroutine triggers early termination.
func NewSearcher(board *Board, eval Evaluator, tt *TranspositionTable, stop *atomic.Bool) *Searcher {
	if stop == nil {
		stop = &atomic.Bool{}
	}
	return &Searcher{Board: board, Eval: eval, TT: tt, stop: stop}
}

// OnInfo installs a callback invoked after each completed iterative-deepening
// depth; uciloop uses this to emit "info depth ... score ... nodes ..." lines
// without search.go importing anything about the UCI protocol.
func (s *Searcher) OnInfo(fn func(SearchInfo)) { s.onInfo = fn }

// shouldStop reports whether the search must unwind: the shared stop flag is
// set, the node budget is spent, or the deadline has passed. Once observed,
// the answer is latched so every frame on the way back to the root sees it
// without re-reading the clock.
func (s *Searcher) shouldStop() bool {
	if s.aborted {
		return true
	}
	if s.stop.Load() ||
		(s.limits.Nodes != 0 && s.nodes >= s.limits.Nodes) ||
		(!s.limits.Deadline.IsZero() && time.Now().After(s.limits.Deadline)) {
		s.aborted = true
	}
	return s.aborted
}

// Search runs iterative deepening up to limits.Depth (or maxPly-1 if
// unspecified or larger), returning the best move found at the deepest completed
// iteration. It always returns a legal move if one exists, even if stopped
// before finishing depth 1, by falling back to the first legal move.
func (s *Searcher) Search(limits SearchLimits) Move {
	depthLimit := limits.Depth
	if depthLimit <= 0 || depthLimit > maxPly-1 {
		depthLimit = maxPly - 1
	}

	var legal MoveList
	s.Board.GenLegalMoves(&legal)
	if legal.Len() == 0 {
		return NullMove
	}
	best := legal.Moves[0]

	s.TT.NewGeneration()
	s.killerMoves = [maxPly][2]Move{}
	s.searchHistory = [64][64]int{}
	s.limits = limits
	s.startTime = time.Now()
	s.nodes = 0
	s.ttHits = 0
	s.aborted = false

	for depth := 1; depth <= depthLimit; depth++ {
		s.seldepth = 0

		move, score := s.rootNegamax(&legal, depth)
		if s.shouldStop() {
			// An interrupted iteration's score is not trustworthy, but at
			// depth 1 its move is still better than an arbitrary legal one.
			if depth == 1 {
				best = move
			}
			break
		}
		best = move
		s.TT.Store(s.Board.Hash, score, best, depth, ExactBound, 0)

		elapsed := time.Since(s.startTime)
		info := SearchInfo{
			Depth:    depth,
			Seldepth: s.seldepth,
			Score:    score,
			Nodes:    s.nodes,
			TimeMs:   elapsed.Milliseconds(),
			TTHits:   s.ttHits,
			BestMove: best,
			PV:       extractPV(s.Board, s.TT, depth),
		}
		if secs := elapsed.Seconds(); secs > 0 {
			info.NPS = uint64(float64(s.nodes) / secs)
		}
		if score > posInf-maxPly {
			info.Mate = (posInf - score + 1) / 2
		} else if score < -posInf+maxPly {
			info.Mate = -(posInf + score + 1) / 2
		}
		if s.onInfo != nil {
			s.onInfo(info)
		}

		// A forced mate found at this depth can't be improved by a deeper
		// one; searching on only burns the clock.
		if info.Mate != 0 {
			break
		}
	}
	log.Debugf("search done: best=%s nodes=%d tthits=%d", best.UCIString(), s.nodes, s.ttHits)
	return best
}

func (s *Searcher) rootNegamax(moves *MoveList, depth int) (Move, int) {
	s.orderMoves(moves, 0)

	// Check extension (spec C12): a side to move in check searches one ply
	// deeper than depth would otherwise allow, so a forced sequence of
	// checks is never cut off mid-tree by the depth budget.
	childDepth := depth - 1
	if s.Board.InCheck() {
		childDepth = depth
	}

	alpha, beta := negInf, posInf
	best, bestScore := moves.Moves[0], negInf

	for i := 0; i < moves.Len(); i++ {
		m := moves.Moves[i]
		s.Board.MakeMove(m)
		score := -s.negamax(childDepth, 1, -beta, -alpha)
		s.Board.UnmakeMove()

		if s.shouldStop() {
			break
		}
		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}
	return best, bestScore
}

func (s *Searcher) negamax(depth, ply, alpha, beta int) int {
	s.nodes++
	if s.aborted || (s.nodes%nodesPerStopCheck == 0 && s.shouldStop()) {
		return alpha
	}
	if ply > s.seldepth {
		s.seldepth = ply
	}

	// A repetition draw is path-dependent: the same position reached along a
	// different move order may not be drawn at all, so it must be recognized
	// before the (path-independent) transposition table gets a chance to
	// return a stored score.
	if s.Board.IsThreefoldRepetition() {
		return drawValue
	}

	// inCheck at node entry drives the check extension below and also
	// decides whether a depth-exhausted node is allowed to drop into
	// quiescence (spec C12: "at depth <= 0 and not in check, return
	// quiescence" — a node in check keeps searching at full width instead,
	// since a king in check is exactly the position a static evaluator
	// mishandles worst).
	inCheck := s.Board.InCheck()

	origAlpha := alpha
	var ttMove Move
	if value, move, ttDepth, bound, ok := s.TT.Probe(s.Board.Hash, ply); ok {
		ttMove = move
		if ttDepth >= depth {
			s.ttHits++
			switch bound {
			case ExactBound:
				return value
			case LowerBound:
				if value > alpha {
					alpha = value
				}
			case UpperBound:
				if value < beta {
					beta = value
				}
			}
			if alpha >= beta {
				return value
			}
		}
	}

	if depth <= 0 && !inCheck {
		return s.quiescence(quiescenceMaxDepth, ply, alpha, beta)
	}

	var moves MoveList
	s.Board.GenLegalMoves(&moves)
	if moves.Len() == 0 {
		if inCheck {
			return -posInf + ply
		}
		return drawValue
	}
	// Checked only once mate is ruled out: a mate delivered on the hundredth
	// halfmove still ends the game as a mate, not a fifty-move draw.
	if s.Board.HalfmoveCnt >= 100 {
		return drawValue
	}

	s.orderMovesWithTT(&moves, ply, ttMove)

	// Check extension (spec C12): don't decrement depth on recursion out of
	// a node that is in check. Capped once ply nears maxPly so a long forced
	// check sequence can't walk the killer-move/PV-rebasing tables (sized to
	// maxPly) out of bounds; at that point the node is deep enough that the
	// extension has already done its job.
	childDepth := depth - 1
	if inCheck && ply < maxPly-1 {
		childDepth = depth
	}

	best := moves.Moves[0]
	bound := UpperBound
	for i := 0; i < moves.Len(); i++ {
		m := moves.Moves[i]
		s.Board.MakeMove(m)
		score := -s.negamax(childDepth, ply+1, -beta, -alpha)
		s.Board.UnmakeMove()

		if score >= beta {
			s.TT.Store(s.Board.Hash, beta, m, depth, LowerBound, ply)
			if s.Board.Mailbox[m.To()] == PieceNone && m.Type() != MoveEnPassant {
				s.recordKiller(ply, m)
			}
			return beta
		}
		if score > alpha {
			alpha = score
			best = m
			bound = ExactBound
			s.searchHistory[m.From()][m.To()] += depth * depth
		}
	}

	if alpha == origAlpha {
		bound = UpperBound
	}
	s.TT.Store(s.Board.Hash, alpha, best, depth, bound, ply)
	return alpha
}

// quiescence extends the search along capture (and promotion) lines only,
// so the static evaluator is never asked to judge a position where a piece
// is hanging mid-exchange.
func (s *Searcher) quiescence(depth, ply, alpha, beta int) int {
	s.nodes++
	if s.aborted || (s.nodes%nodesPerStopCheck == 0 && s.shouldStop()) {
		return alpha
	}
	if ply > s.seldepth {
		s.seldepth = ply
	}
	standPat := s.Eval.Evaluate(s.Board)
	if depth == 0 {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var moves MoveList
	s.Board.GenLegalMoves(&moves)
	s.orderMoves(&moves, 0)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Moves[i]
		isCapture := m.Type() == MoveEnPassant || s.Board.Mailbox[m.To()] != PieceNone
		if !isCapture && m.Type() != MovePromotion {
			continue
		}
		s.Board.MakeMove(m)
		score := -s.quiescence(depth-1, ply+1, -beta, -alpha)
		s.Board.UnmakeMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (s *Searcher) recordKiller(ply int, m Move) {
	if s.killerMoves[ply][0] == m {
		return
	}
	s.killerMoves[ply][1] = s.killerMoves[ply][0]
	s.killerMoves[ply][0] = m
}

func (s *Searcher) orderMoves(moves *MoveList, ply int) {
	s.orderMovesWithTT(moves, ply, NullMove)
}

// orderMovesWithTT scores each candidate move (TT move first, then captures
// by MVV-LVA, then killers, then history) and insertion-sorts the list by
// that score; the list is always short enough that insertion sort beats the
// overhead of a general-purpose sort.
func (s *Searcher) orderMovesWithTT(moves *MoveList, ply int, ttMove Move) {
	n := moves.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		m := moves.Moves[i]
		switch {
		case m == ttMove:
			scores[i] = 1 << 30
		case s.Board.Mailbox[m.To()] != PieceNone || m.Type() == MoveEnPassant:
			scores[i] = pieceValue[capturedPieceType(s.Board, m)] - pieceValue[s.Board.Mailbox[m.From()]/2] + captureBonus
		case m.Type() == MovePromotion:
			scores[i] = pieceValue[m.PromoPiece()+1]
		case s.killerMoves[ply][0] == m:
			scores[i] = firstKillerBonus
		case s.killerMoves[ply][1] == m:
			scores[i] = secondKillerBonus
		default:
			scores[i] = min(s.searchHistory[m.From()][m.To()], secondKillerBonus-1)
		}
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && scores[j-1] < scores[j]; j-- {
			moves.Moves[j], moves.Moves[j-1] = moves.Moves[j-1], moves.Moves[j]
			scores[j], scores[j-1] = scores[j-1], scores[j]
		}
	}
}

func capturedPieceType(b *Board, m Move) PieceType {
	if m.Type() == MoveEnPassant {
		return Pawn
	}
	return b.Mailbox[m.To()] / 2
}

// extractPV walks the TT's best-move chain from root, the method described
// in spec §4.7: it applies each stored best move to a scratch board cloned
// from the real position, stopping the walk as soon as a position has no TT
// entry, the stored move isn't legal there, or applying it would revisit a
// hash already seen in this walk (a cycle, which would otherwise loop
// forever on a draw-by-repetition line). maxLen bounds the walk to the
// iterative-deepening depth that produced it; a PV longer than the depth
// actually searched isn't meaningful.
func extractPV(root *Board, tt *TranspositionTable, maxLen int) []Move {
	if maxLen <= 0 {
		return nil
	}
	scratch := root.Clone()
	seen := map[uint64]bool{scratch.Hash: true}
	pv := make([]Move, 0, maxLen)

	for len(pv) < maxLen {
		_, move, _, _, ok := tt.Probe(scratch.Hash, 0)
		if !ok || move.IsNull() || !scratch.IsLegalMove(move) {
			break
		}
		scratch.MakeMove(move)
		if seen[scratch.Hash] {
			break
		}
		seen[scratch.Hash] = true
		pv = append(pv, move)
	}
	return pv
}
