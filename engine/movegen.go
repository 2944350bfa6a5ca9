// movegen.go implements the pseudo-legal move generator (C6): candidate
// moves per piece class, using the non-slider tables (C2) and magic
// bitboards (C3). No self-legality (own king safety) is enforced here
// except for castling, whose transit/landing squares are checked against
// attack at generation time as required by the castling rule itself; see
// legality.go for the general check/mate/stalemate filter.

package engine

// GenPseudoLegalMoves appends every pseudo-legal move for the side to move
// to l. l is not reset first, so callers that want a fresh list should pass
// a zero-valued MoveList or call l.Reset().
func (b *Board) GenPseudoLegalMoves(l *MoveList) {
	b.genPawnMoves(l)
	b.genPieceMoves(l)
	b.genKingMoves(l)
}

func (b *Board) genPawnMoves(l *MoveList) {
	c := b.ActiveColor
	occupancy := b.Bitboards[allIndex]
	enemies := b.Bitboards[occupancyIndex(1 ^ c)]
	pawns := b.Bitboards[PieceWPawn+c]

	var ep Bitboard
	if b.EPTarget >= 0 {
		ep = squareBB(b.EPTarget)
	}

	dir, startRank, promoRank := 8, rank2, rank8
	if c == ColorBlack {
		dir, startRank, promoRank = -8, rank7, rank1
	}

	for pawns != 0 {
		from := popLSB(&pawns)
		fromBB := squareBB(from)

		fwd := from + dir
		fwdBB := squareBB(fwd)
		if fwdBB&occupancy == 0 {
			if fwdBB&promoRank != 0 {
				l.Push(NewPromotionMove(fwd, from, PromotionKnight))
				l.Push(NewPromotionMove(fwd, from, PromotionBishop))
				l.Push(NewPromotionMove(fwd, from, PromotionRook))
				l.Push(NewPromotionMove(fwd, from, PromotionQueen))
			} else {
				l.Push(NewMove(fwd, from, MoveNormal))
			}
			if fromBB&startRank != 0 {
				dblFwd := from + 2*dir
				if squareBB(dblFwd)&occupancy == 0 {
					l.Push(NewMove(dblFwd, from, MoveNormal))
				}
			}
		}

		attacks := pawnAttacks[c][from] & (enemies | ep)
		for attacks != 0 {
			to := popLSB(&attacks)
			toBB := squareBB(to)
			switch {
			case toBB&promoRank != 0:
				l.Push(NewPromotionMove(to, from, PromotionKnight))
				l.Push(NewPromotionMove(to, from, PromotionBishop))
				l.Push(NewPromotionMove(to, from, PromotionRook))
				l.Push(NewPromotionMove(to, from, PromotionQueen))
			case toBB&ep != 0:
				l.Push(NewMove(to, from, MoveEnPassant))
			default:
				l.Push(NewMove(to, from, MoveNormal))
			}
		}
	}
}

// genPieceMoves generates knight, bishop, rook and queen moves.
func (b *Board) genPieceMoves(l *MoveList) {
	c := b.ActiveColor
	allies := b.Bitboards[occupancyIndex(c)]
	occupancy := b.Bitboards[allIndex]

	for piece := PieceWKnight + c; piece <= PieceWQueen+c; piece += 2 {
		pieces := b.Bitboards[piece]
		for pieces != 0 {
			from := popLSB(&pieces)

			var dests Bitboard
			switch piece {
			case PieceWKnight, PieceBKnight:
				dests = knightAttacks[from]
			case PieceWBishop, PieceBBishop:
				dests = lookupBishopAttacks(from, occupancy)
			case PieceWRook, PieceBRook:
				dests = lookupRookAttacks(from, occupancy)
			case PieceWQueen, PieceBQueen:
				dests = lookupQueenAttacks(from, occupancy)
			}

			dests &^= allies
			for dests != 0 {
				l.Push(NewMove(popLSB(&dests), from, MoveNormal))
			}
		}
	}
}

func (b *Board) genKingMoves(l *MoveList) {
	c := b.ActiveColor
	king := b.KingSquare(c)
	dests := kingAttacks[king] &^ b.Bitboards[occupancyIndex(c)]
	for dests != 0 {
		l.Push(NewMove(popLSB(&dests), king, MoveNormal))
	}
	b.genCastlingMoves(l, king)
}

// castlingPath is the set of squares (including the king's square) that
// must be empty for the given castling right, indexed 0=WK,1=WQ,2=BK,3=BQ.
var castlingPath = [4]Bitboard{0x70, 0x1E, 0x7000000000000000, 0x1E00000000000000}

// castlingKingTransit is the three squares (start, the square passed
// through, and landing) that must not be attacked for the given castling
// right.
var castlingKingTransit = [4]Bitboard{0x70, 0x1C, 0x7000000000000000, 0x1C00000000000000}

var castlingRookSquare = [4]Square{7, 0, 63, 56}
var castlingKingDest = [4]Square{6, 2, 62, 58}

// genCastlingMoves appends legal castling moves. Castling legality (no
// check, no attacked transit squares) is resolved here rather than in
// legality.go because generation already has the occupancy and king square
// at hand, and the spec treats the transit-square check as part of
// generating the move in the first place.
func (b *Board) genCastlingMoves(l *MoveList, king Square) {
	c := b.ActiveColor
	// castlingPath's masks include the king's own starting square (to reuse
	// the same mask for both the emptiness and the attack check), so the
	// king itself must not count as a blocker of its own path.
	occupancy := b.Bitboards[allIndex] &^ squareBB(king)

	rightBit := [2]CastlingRights{CastlingWhiteShort, CastlingBlackShort}[c]
	idx := 2 * c
	if b.CastlingRights&rightBit != 0 &&
		occupancy&castlingPath[idx] == 0 &&
		!b.anySquareAttacked(castlingKingTransit[idx], 1^c) {
		l.Push(NewMove(castlingKingDest[idx], king, MoveCastling))
	}

	rightBit = [2]CastlingRights{CastlingWhiteLong, CastlingBlackLong}[c]
	idx = 2*c + 1
	if b.CastlingRights&rightBit != 0 &&
		occupancy&castlingPath[idx] == 0 &&
		!b.anySquareAttacked(castlingKingTransit[idx], 1^c) {
		l.Push(NewMove(castlingKingDest[idx], king, MoveCastling))
	}
}

// anySquareAttacked reports whether any set square in bb is attacked by
// color by. Used to check the king's current square plus its transit
// squares in one pass when validating castling.
func (b *Board) anySquareAttacked(bb Bitboard, by Color) bool {
	for bb != 0 {
		sq := popLSB(&bb)
		if b.IsAttacked(sq, by) {
			return true
		}
	}
	return false
}
