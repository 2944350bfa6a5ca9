// legality.go implements the legality filter and check/mate/stalemate
// classification (C7).

package engine

// IsAttacked reports whether sq is attacked by any piece of color by. It
// works by superimposing attacker geometry from sq's own perspective: a
// pawn of color by attacks sq iff sq, attacked from the opposite color's
// pawn-attack table, hits a by-colored pawn, and similarly for knights,
// king, and sliders via the magic lookup.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	occ := b.Bitboards[allIndex]

	if pawnAttacks[1^by][sq]&b.Bitboards[PieceWPawn+by] != 0 {
		return true
	}
	if knightAttacks[sq]&b.Bitboards[PieceWKnight+by] != 0 {
		return true
	}
	if kingAttacks[sq]&b.Bitboards[PieceWKing+by] != 0 {
		return true
	}
	bishopsQueens := b.Bitboards[PieceWBishop+by] | b.Bitboards[PieceWQueen+by]
	if lookupBishopAttacks(sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := b.Bitboards[PieceWRook+by] | b.Bitboards[PieceWQueen+by]
	if lookupRookAttacks(sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func (b *Board) InCheck() bool {
	return b.IsAttacked(b.KingSquare(b.ActiveColor), 1^b.ActiveColor)
}

// GenLegalMoves generates every legal move for the side to move: each
// pseudo-legal move is made, tested for leaving the mover's king attacked,
// and unmade. Castling moves are already filtered for transit-square safety
// at generation time, so the make/unmake round trip here is redundant but
// harmless for them.
func (b *Board) GenLegalMoves(l *MoveList) {
	l.Reset()

	var pseudo MoveList
	b.GenPseudoLegalMoves(&pseudo)

	mover := b.ActiveColor
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Moves[i]
		b.MakeMove(m)
		if !b.IsAttacked(b.KingSquare(mover), b.ActiveColor) {
			l.Push(m)
		}
		b.UnmakeMove()
	}
}

// IsLegalMove reports whether m is a legal move in the current position by
// generating the full legal move list and looking m up in it; extractPV uses
// it to vet each stored TT move before playing it.
func (b *Board) IsLegalMove(m Move) bool {
	var legal MoveList
	b.GenLegalMoves(&legal)
	for i := 0; i < legal.Len(); i++ {
		if legal.Moves[i] == m {
			return true
		}
	}
	return false
}

// terminationGiven classifies the current position's terminal status given the
// list of legal moves already generated for it (callers in the search hot
// path already have this list; recomputing it here would double the work).
func (b *Board) terminationGiven(legal *MoveList) Termination {
	if legal.Len() == 0 {
		if b.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if b.IsThreefoldRepetition() {
		return ThreefoldRepetition
	}
	if b.HalfmoveCnt >= 100 {
		return FiftyMoveRule
	}
	if b.IsInsufficientMaterial() {
		return InsufficientMaterial
	}
	return Ongoing
}

// Termination classifies the current position's terminal status.
func (b *Board) Termination() Termination {
	var legal MoveList
	b.GenLegalMoves(&legal)
	return b.terminationGiven(&legal)
}

// IsInsufficientMaterial reports a draw by insufficient material: king vs
// king, king+minor vs king, or king+bishop vs king+bishop with same-colored
// bishops (the classic drawn-material set; anything else, including
// opposite-colored bishops or two knights, is left for the search to
// evaluate rather than declared an automatic draw).
func (b *Board) IsInsufficientMaterial() bool {
	if b.Bitboards[PieceWPawn]|b.Bitboards[PieceBPawn] != 0 {
		return false
	}
	white := b.calculateMaterial(ColorWhite)
	black := b.calculateMaterial(ColorBlack)
	if white > 3 || black > 3 {
		return false
	}
	if white == 0 && black == 0 {
		return true
	}
	// A single minor piece (weight 3) versus a bare king is insufficient;
	// two minors or a rook/queen (weight >=5, already excluded above) is not
	// automatically so.
	if (white == 0 && black <= 3) || (black == 0 && white <= 3) {
		return true
	}
	if white == 3 && black == 3 {
		wBishops := countBits(b.Bitboards[PieceWBishop])
		bBishops := countBits(b.Bitboards[PieceBBishop])
		if wBishops == 1 && bBishops == 1 {
			wSq := bitScan(b.Bitboards[PieceWBishop])
			bSq := bitScan(b.Bitboards[PieceBBishop])
			return squareColor(wSq) == squareColor(bSq)
		}
	}
	return false
}

// squareColor returns 0 for a dark square, 1 for a light square.
func squareColor(sq Square) int {
	return (File(sq) + Rank(sq)) & 1
}
