// notation.go converts between Move and UCI's long algebraic move strings
// (e.g. "e2e4", "e7e8q"), the only move notation the UCI surface uses.

package engine

var promoLetters = [4]byte{'n', 'b', 'r', 'q'}

// UCIString renders m in UCI long algebraic notation. The null move (no
// legal move available, e.g. checkmate or stalemate) renders as "0000", the
// UCI protocol's reserved notation for it.
func (m Move) UCIString() string {
	if m.IsNull() {
		return "0000"
	}
	s := square2String[m.From()] + square2String[m.To()]
	if m.Type() == MovePromotion {
		s += string(promoLetters[m.PromoPiece()])
	}
	return s
}

// ParseUCIMove resolves a UCI move string against the legal moves available
// in the current position. Parsing a move in isolation (without the board
// that gives it meaning) can't distinguish a normal king step from castling,
// or know whether a pawn step to the back rank is a promotion, so this walks
// the legal move list rather than decoding the squares independently.
func (b *Board) ParseUCIMove(s string) (Move, bool) {
	if len(s) < 4 || len(s) > 5 {
		return NullMove, false
	}
	from := stringToSquare(s[0:2])
	to := stringToSquare(s[2:4])
	var promo PromotionFlag = -1
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = PromotionKnight
		case 'b':
			promo = PromotionBishop
		case 'r':
			promo = PromotionRook
		case 'q':
			promo = PromotionQueen
		default:
			return NullMove, false
		}
	}

	var legal MoveList
	b.GenLegalMoves(&legal)
	for i := 0; i < legal.Len(); i++ {
		m := legal.Moves[i]
		if m.From() != from || m.To() != to {
			continue
		}
		if m.Type() == MovePromotion {
			if promo == m.PromoPiece() {
				return m, true
			}
			continue
		}
		if promo == -1 {
			return m, true
		}
	}
	return NullMove, false
}
