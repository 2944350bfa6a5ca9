// board.go implements Board (C4): the piece-colored bitboards plus the
// redundant piece-on-square mailbox, side to move, castling rights,
// en-passant target and move clocks, and the Zobrist hash of the position.

package engine

import "fmt"

// Board is a chess position together with the mutable history (undo stack,
// repetition ledger) needed to make it reversible. It owns all state the
// search mutates; nothing about it is safe to share across goroutines.
//
// Bitboards is indexed by Piece (0..11) for the twelve piece-color
// combinations, plus three extra slots: 12 = white occupancy, 13 = black
// occupancy, 14 = all occupancy.
type Board struct {
	Bitboards      [15]Bitboard
	Mailbox        [64]Piece
	ActiveColor    Color
	CastlingRights CastlingRights
	// EPTarget is the square a pawn skipped on its last double push, or -1
	// if en passant is not available this move.
	EPTarget    Square
	HalfmoveCnt int
	FullmoveCnt int
	Hash        uint64

	undo       []UndoRecord
	repetition map[uint64]int
}

// NewBoard returns a Board at the standard starting position.
func NewBoard() *Board {
	b, err := FromFEN(InitialPositionFEN)
	if err != nil {
		// The built-in starting FEN is a repository invariant, not user
		// input; a parse failure here means the constant itself is broken.
		panic(err)
	}
	return b
}

// Clone returns an independent copy of b: its own undo stack (started empty)
// and its own repetition ledger, so making and unmaking moves on the clone
// (e.g. walking a principal variation) never mutates the original. The
// bitboards and mailbox are plain arrays, so the struct copy already covers
// those; only the two reference-typed fields need their own backing storage.
func (b *Board) Clone() *Board {
	c := *b
	c.undo = nil
	c.repetition = make(map[uint64]int, len(b.repetition))
	for hash, count := range b.repetition {
		c.repetition[hash] = count
	}
	return &c
}

// occupancyIndex returns the index of the allied-occupancy bitboard slot for
// a color: 12 for white, 13 for black.
func occupancyIndex(c Color) int { return 12 + c }

// allIndex is the index of the combined-occupancy bitboard slot.
const allIndex = 14

func (b *Board) placePiece(piece Piece, sq Square) {
	bb := squareBB(sq)
	b.Bitboards[piece] |= bb
	b.Bitboards[occupancyIndex(piece%2)] |= bb
	b.Bitboards[allIndex] |= bb
	b.Mailbox[sq] = piece
	b.Hash ^= pieceKeys[piece][sq]
}

func (b *Board) removePiece(piece Piece, sq Square) {
	bb := squareBB(sq)
	b.Bitboards[piece] &^= bb
	b.Bitboards[occupancyIndex(piece%2)] &^= bb
	b.Bitboards[allIndex] &^= bb
	b.Mailbox[sq] = PieceNone
	b.Hash ^= pieceKeys[piece][sq]
}

// PieceAt returns the piece occupying sq, or PieceNone.
func (b *Board) PieceAt(sq Square) Piece { return b.Mailbox[sq] }

// KingSquare returns the square of color c's king.
func (b *Board) KingSquare(c Color) Square {
	return bitScan(b.Bitboards[PieceWKing+c])
}

// Validate checks the board's structural invariants: pairwise-disjoint piece
// bitboards whose union equals the occupancy slots, a mailbox that agrees
// with the bitboards at every square, exactly one king per side, and sane
// clocks. Any violation here means make/unmake corrupted the position. Too
// slow for the search hot path; run it between searches or in tests.
func (b *Board) Validate() error {
	var union, white, black Bitboard
	for piece := PieceWPawn; piece <= PieceBKing; piece++ {
		bb := b.Bitboards[piece]
		if union&bb != 0 {
			return fmt.Errorf("engine: piece bitboards overlap at piece %d", piece)
		}
		union |= bb
		if piece%2 == ColorWhite {
			white |= bb
		} else {
			black |= bb
		}
	}
	if white != b.Bitboards[occupancyIndex(ColorWhite)] ||
		black != b.Bitboards[occupancyIndex(ColorBlack)] ||
		union != b.Bitboards[allIndex] {
		return fmt.Errorf("engine: occupancy bitboards disagree with piece bitboards")
	}

	for sq := 0; sq < 64; sq++ {
		want := PieceNone
		for piece := PieceWPawn; piece <= PieceBKing; piece++ {
			if b.Bitboards[piece]&squareBB(sq) != 0 {
				want = piece
				break
			}
		}
		if b.Mailbox[sq] != want {
			return fmt.Errorf("engine: mailbox[%s] = %d, bitboards say %d", square2String[sq], b.Mailbox[sq], want)
		}
	}

	if countBits(b.Bitboards[PieceWKing]) != 1 || countBits(b.Bitboards[PieceBKing]) != 1 {
		return fmt.Errorf("engine: each side must have exactly one king")
	}
	if b.HalfmoveCnt < 0 || b.FullmoveCnt < 1 {
		return fmt.Errorf("engine: negative halfmove clock or zero fullmove number")
	}
	return nil
}

// calculateMaterial sums pieceWeights over one side's pieces; used only to
// detect draws by insufficient material.
func (b *Board) calculateMaterial(c Color) (material int) {
	for piece := c; piece <= PieceWKing; piece += 2 {
		material += countBits(b.Bitboards[piece]) * pieceWeights[piece]
	}
	return material
}
