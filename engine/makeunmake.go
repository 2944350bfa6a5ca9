// makeunmake.go implements reversible make/unmake (C9): every mutation is
// captured by a compact UndoRecord pushed onto the board's undo stack, with
// no back-reference to prior Board values, keeping Board trivially copyable
// and the search stack bounded by search depth rather than game length.

package engine

// UndoRecord holds exactly what's needed to reverse one ply: the move
// itself (to recover from/to/kind without re-decoding anything else), the
// piece that moved, the captured piece and the square it actually occupied
// (which differs from the move's destination for en passant), and the
// board-wide fields make() otherwise overwrites.
type UndoRecord struct {
	Move           Move
	MovedPiece     Piece
	CapturedPiece  Piece
	CapturedSquare Square
	CastlingRights CastlingRights
	EPTarget       Square
	HalfmoveCnt    int
	Hash           uint64
}

// MakeMove applies m to the board. The caller must ensure m is at least
// pseudo-legal; MakeMove does not check legality (see GenLegalMoves).
func (b *Board) MakeMove(m Move) {
	from, to := m.From(), m.To()
	moved := b.Mailbox[from]
	mover := b.ActiveColor

	capturedSq := to
	if m.Type() == MoveEnPassant {
		if moved == PieceWPawn {
			capturedSq = to - 8
		} else {
			capturedSq = to + 8
		}
	}
	capturedPiece := b.Mailbox[capturedSq]

	b.undo = append(b.undo, UndoRecord{
		Move:           m,
		MovedPiece:     moved,
		CapturedPiece:  capturedPiece,
		CapturedSquare: capturedSq,
		CastlingRights: b.CastlingRights,
		EPTarget:       b.EPTarget,
		HalfmoveCnt:    b.HalfmoveCnt,
		Hash:           b.Hash,
	})

	b.removePiece(moved, from)
	if capturedPiece != PieceNone {
		b.removePiece(capturedPiece, capturedSq)
	}

	switch m.Type() {
	case MoveNormal, MoveEnPassant:
		b.placePiece(moved, to)
	case MoveCastling:
		b.placePiece(moved, to)
		rookFrom, rookTo := castlingRookSquares(to)
		rook := b.Mailbox[rookFrom]
		b.removePiece(rook, rookFrom)
		b.placePiece(rook, rookTo)
	case MovePromotion:
		b.placePiece(PieceWKnight+2*m.PromoPiece()+mover, to)
	}

	if moved == PieceWPawn || moved == PieceBPawn || capturedPiece != PieceNone {
		b.HalfmoveCnt = 0
	} else {
		b.HalfmoveCnt++
	}

	b.updateCastlingRights(moved, from, capturedPiece, capturedSq)
	b.updateEPTarget(moved, from, to)

	if mover == ColorBlack {
		b.FullmoveCnt++
	}

	b.ActiveColor = 1 ^ mover
	b.Hash ^= colorKey

	b.pushRepetition(b.Hash)
}

// UnmakeMove reverses the most recent MakeMove, restoring the board to a
// state bit-identical to the one before it, including the Zobrist hash.
func (b *Board) UnmakeMove() {
	n := len(b.undo) - 1
	rec := b.undo[n]
	b.undo = b.undo[:n]

	b.popRepetition(b.Hash)

	mover := 1 ^ b.ActiveColor
	if mover == ColorBlack {
		b.FullmoveCnt--
	}

	m := rec.Move
	from, to := m.From(), m.To()

	switch m.Type() {
	case MoveNormal, MoveEnPassant:
		b.removePiece(rec.MovedPiece, to)
		b.placePiece(rec.MovedPiece, from)
	case MoveCastling:
		b.removePiece(rec.MovedPiece, to)
		b.placePiece(rec.MovedPiece, from)
		rookFrom, rookTo := castlingRookSquares(to)
		rook := b.Mailbox[rookTo]
		b.removePiece(rook, rookTo)
		b.placePiece(rook, rookFrom)
	case MovePromotion:
		b.removePiece(PieceWKnight+2*m.PromoPiece()+mover, to)
		b.placePiece(rec.MovedPiece, from)
	}

	if rec.CapturedPiece != PieceNone {
		b.placePiece(rec.CapturedPiece, rec.CapturedSquare)
	}

	b.CastlingRights = rec.CastlingRights
	b.EPTarget = rec.EPTarget
	b.HalfmoveCnt = rec.HalfmoveCnt
	b.ActiveColor = mover
	b.Hash = rec.Hash
}

// castlingRookSquares returns the rook's origin and destination squares for
// a castling move landing on king-destination to.
func castlingRookSquares(kingTo Square) (rookFrom, rookTo Square) {
	switch kingTo {
	case 6: // g1, White O-O
		return 7, 5
	case 2: // c1, White O-O-O
		return 0, 3
	case 62: // g8, Black O-O
		return 63, 61
	default: // c8, Black O-O-O
		return 56, 59
	}
}

// updateCastlingRights clears whichever rights the move invalidates (king
// or rook moved, or a rook was captured on its original square) and keeps
// the Zobrist hash in step with the change.
func (b *Board) updateCastlingRights(moved Piece, from Square, captured Piece, capturedSq Square) {
	oldRights := b.CastlingRights
	newRights := oldRights

	switch moved {
	case PieceWRook:
		if from == 0 {
			newRights &^= CastlingWhiteLong
		} else if from == 7 {
			newRights &^= CastlingWhiteShort
		}
	case PieceBRook:
		if from == 56 {
			newRights &^= CastlingBlackLong
		} else if from == 63 {
			newRights &^= CastlingBlackShort
		}
	case PieceWKing:
		newRights &^= CastlingWhiteShort | CastlingWhiteLong
	case PieceBKing:
		newRights &^= CastlingBlackShort | CastlingBlackLong
	}

	switch captured {
	case PieceWRook:
		if capturedSq == 0 {
			newRights &^= CastlingWhiteLong
		} else if capturedSq == 7 {
			newRights &^= CastlingWhiteShort
		}
	case PieceBRook:
		if capturedSq == 56 {
			newRights &^= CastlingBlackLong
		} else if capturedSq == 63 {
			newRights &^= CastlingBlackShort
		}
	}

	if newRights != oldRights {
		b.Hash ^= castlingKeys[oldRights]
		b.Hash ^= castlingKeys[newRights]
		b.CastlingRights = newRights
	}
}

// updateEPTarget clears the previous en passant target (it is only legal
// for one move) and sets a new one on a double pawn push, keeping the hash
// in step either way.
func (b *Board) updateEPTarget(moved Piece, from, to Square) {
	if b.EPTarget >= 0 {
		b.Hash ^= epKeys[b.EPTarget]
	}

	newEP := -1
	switch {
	case moved == PieceWPawn && to-from == 16:
		newEP = from + 8
	case moved == PieceBPawn && from-to == 16:
		newEP = from - 8
	}
	b.EPTarget = newEP
	if newEP >= 0 {
		b.Hash ^= epKeys[newEP]
	}
}
