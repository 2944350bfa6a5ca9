package engine

// MoveType tags the shape of a move's undo. A single fixed-width encoding
// with a kind tag replaces an open set of move subclasses.
type MoveType = int

const (
	MoveNormal MoveType = iota
	MoveCastling
	MovePromotion
	MoveEnPassant
)

// PromotionFlag identifies the promotion piece for a MovePromotion move.
type PromotionFlag = int

const (
	PromotionKnight PromotionFlag = iota
	PromotionBishop
	PromotionRook
	PromotionQueen
)

// Move packs a move into 16 bits:
//
//	0-5:   to square
//	6-11:  from square
//	12-13: promotion piece (see PromotionFlag)
//	14-15: move kind (see MoveType)
type Move uint16

// NewMove builds a non-promotion move of the given kind.
func NewMove(to, from Square, kind MoveType) Move {
	return Move(to | (from << 6) | (kind << 14))
}

// NewPromotionMove builds a MovePromotion move for the given promotion piece.
func NewPromotionMove(to, from Square, promo PromotionFlag) Move {
	return Move(to | (from << 6) | (promo << 12) | (MovePromotion << 14))
}

func (m Move) To() Square                { return int(m & 0x3F) }
func (m Move) From() Square              { return int(m>>6) & 0x3F }
func (m Move) PromoPiece() PromotionFlag { return int(m>>12) & 0x3 }
func (m Move) Type() MoveType            { return int(m>>14) & 0x3 }

func (m Move) IsNull() bool { return m == 0 }

// NullMove is returned by the search when no legal move exists.
const NullMove Move = 0

// MoveList is a preallocated move buffer; 218 is the established upper bound
// on legal moves in any reachable chess position.
type MoveList struct {
	Moves         [218]Move
	LastMoveIndex int
}

func (l *MoveList) Push(m Move) {
	l.Moves[l.LastMoveIndex] = m
	l.LastMoveIndex++
}

func (l *MoveList) Len() int { return l.LastMoveIndex }

func (l *MoveList) Reset() { l.LastMoveIndex = 0 }
