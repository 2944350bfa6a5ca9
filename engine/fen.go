// fen.go parses and serializes Forsyth-Edwards Notation. FEN support is
// needed internally by Board (the "position fen ..." UCI command and test
// fixtures both need it); formatting FEN as a user-facing I/O surface is out
// of scope, but the core cannot set up a position without parsing one.

package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialPositionFEN is the standard chess starting position.
const InitialPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN parses a FEN string into a Board. It rejects malformed input with
// a descriptive error rather than silently defaulting any field.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		log.Debugf("rejecting FEN %q: expected 6 fields, got %d", fen, len(fields))
		return nil, fmt.Errorf("engine: FEN %q: expected 6 fields, got %d", fen, len(fields))
	}

	b := &Board{EPTarget: -1}
	for i := range b.Mailbox {
		b.Mailbox[i] = PieceNone
	}

	if err := b.parsePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("engine: FEN %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		b.ActiveColor = ColorWhite
	case "b":
		b.ActiveColor = ColorBlack
	default:
		return nil, fmt.Errorf("engine: FEN %q: invalid active color %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				b.CastlingRights |= CastlingWhiteShort
			case 'Q':
				b.CastlingRights |= CastlingWhiteLong
			case 'k':
				b.CastlingRights |= CastlingBlackShort
			case 'q':
				b.CastlingRights |= CastlingBlackLong
			default:
				return nil, fmt.Errorf("engine: FEN %q: invalid castling rights %q", fen, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		if len(fields[3]) != 2 || fields[3][0] < 'a' || fields[3][0] > 'h' || fields[3][1] < '1' || fields[3][1] > '8' {
			return nil, fmt.Errorf("engine: FEN %q: invalid en passant target %q", fen, fields[3])
		}
		b.EPTarget = stringToSquare(fields[3])
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("engine: FEN %q: invalid halfmove clock %q", fen, fields[4])
	}
	b.HalfmoveCnt = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("engine: FEN %q: invalid fullmove number %q", fen, fields[5])
	}
	b.FullmoveCnt = fullmove

	if countBits(b.Bitboards[PieceWKing]) != 1 || countBits(b.Bitboards[PieceBKing]) != 1 {
		return nil, fmt.Errorf("engine: FEN %q: each side must have exactly one king", fen)
	}

	b.Hash = b.computeHash()
	b.repetition = map[uint64]int{b.Hash: 1}
	return b, nil
}

func (b *Board) parsePlacement(placement string) error {
	sq := 56 // FEN ranks run 8th to 1st; rank 8 starts at square 56.
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			sq -= 16
		case c >= '1' && c <= '8':
			sq += int(c - '0')
		default:
			piece, err := pieceFromFENByte(c)
			if err != nil {
				return err
			}
			if sq < 0 || sq > 63 {
				return fmt.Errorf("piece placement overruns the board")
			}
			b.placePiece(piece, sq)
			sq++
		}
	}
	return nil
}

func pieceFromFENByte(c byte) (Piece, error) {
	switch c {
	case 'P':
		return PieceWPawn, nil
	case 'p':
		return PieceBPawn, nil
	case 'N':
		return PieceWKnight, nil
	case 'n':
		return PieceBKnight, nil
	case 'B':
		return PieceWBishop, nil
	case 'b':
		return PieceBBishop, nil
	case 'R':
		return PieceWRook, nil
	case 'r':
		return PieceBRook, nil
	case 'Q':
		return PieceWQueen, nil
	case 'q':
		return PieceBQueen, nil
	case 'K':
		return PieceWKing, nil
	case 'k':
		return PieceBKing, nil
	default:
		return PieceNone, fmt.Errorf("invalid piece placement character %q", c)
	}
}

// FEN serializes the board back into Forsyth-Edwards Notation.
func (b *Board) FEN() string {
	var sb strings.Builder
	sb.Grow(72)

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := rank*8 + file
			piece := b.Mailbox[sq]
			if piece == PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pieceSymbols[piece])
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank != 0 {
			sb.WriteByte('/')
		}
	}

	if b.ActiveColor == ColorWhite {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if b.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if b.CastlingRights&CastlingWhiteShort != 0 {
			sb.WriteByte('K')
		}
		if b.CastlingRights&CastlingWhiteLong != 0 {
			sb.WriteByte('Q')
		}
		if b.CastlingRights&CastlingBlackShort != 0 {
			sb.WriteByte('k')
		}
		if b.CastlingRights&CastlingBlackLong != 0 {
			sb.WriteByte('q')
		}
	}
	sb.WriteByte(' ')

	if b.EPTarget < 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(square2String[b.EPTarget])
	}

	fmt.Fprintf(&sb, " %d %d", b.HalfmoveCnt, b.FullmoveCnt)
	return sb.String()
}
