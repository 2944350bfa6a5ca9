package engine

// Color identifies the side to move or the owner of a piece.
type Color = int

const (
	ColorWhite Color = iota
	ColorBlack
)

// PieceType is a piece kind independent of color.
type PieceType = int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece identifies a colored piece. The encoding interleaves color into the
// low bit (piece = pieceType*2 + color) so that "the other color's piece of
// the same type" is a simple XOR with 1, and bitboards for a whole piece
// class of one color form a contiguous, strided index range.
type Piece = int

const (
	PieceWPawn Piece = iota
	PieceBPawn
	PieceWKnight
	PieceBKnight
	PieceWBishop
	PieceBBishop
	PieceWRook
	PieceBRook
	PieceWQueen
	PieceBQueen
	PieceWKing
	PieceBKing
	PieceNone = -1
)

// pieceWeights are used only to detect draws by insufficient material; they
// are not the search evaluator's material values (see eval.go).
var pieceWeights = [12]int{1, 1, 3, 3, 3, 3, 5, 5, 9, 9, 0, 0}

var pieceSymbols = [12]byte{'P', 'p', 'N', 'n', 'B', 'b', 'R', 'r', 'Q', 'q', 'K', 'k'}

// CastlingRights is a 4-bit mask: WK, WQ, BK, BQ.
type CastlingRights = int

const (
	CastlingWhiteShort CastlingRights = 1
	CastlingWhiteLong  CastlingRights = 2
	CastlingBlackShort CastlingRights = 4
	CastlingBlackLong  CastlingRights = 8
)

// Termination classifies how a game ended, or that it hasn't.
type Termination int

const (
	Ongoing Termination = iota
	Checkmate
	Stalemate
	ThreefoldRepetition
	FiftyMoveRule
	InsufficientMaterial
)
