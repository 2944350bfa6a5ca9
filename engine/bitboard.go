// bitboard.go implements the 64-bit occupancy-set primitives and the square
// index model every other component is built on.

package engine

import "math/bits"

// Bitboard is a 64-bit set of squares; bit i is set iff square i is occupied.
type Bitboard = uint64

// Square is a board square index in [0, 63]; A1 = 0, H8 = 63.
type Square = int

// File and Rank extract the file (0=a..7=h) and rank (0=1st..7=8th) of a
// square.
func File(sq Square) int { return sq & 7 }
func Rank(sq Square) int { return sq >> 3 }

const (
	notAFile  Bitboard = 0xFEFEFEFEFEFEFEFE
	notHFile  Bitboard = 0x7F7F7F7F7F7F7F7F
	notABFile Bitboard = 0xFCFCFCFCFCFCFCFC
	notGHFile Bitboard = 0x3F3F3F3F3F3F3F3F
	notRank1  Bitboard = 0xFFFFFFFFFFFFFF00
	notRank8  Bitboard = 0x00FFFFFFFFFFFFFF
	rank1     Bitboard = 0xFF
	rank2     Bitboard = 0xFF00
	rank7     Bitboard = 0xFF000000000000
	rank8     Bitboard = 0xFF00000000000000
)

// bitScanLookup is a de Bruijn-style lookup table for the index of the
// lowest set bit of a 64-bit word.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

const bitscanMagic uint64 = 0x07EDD5E59A4E28C2

// bitScan returns the index of the lowest set bit. bitScan(0) is 63.
func bitScan(bb Bitboard) int {
	return bitScanLookup[(bb&-bb)*bitscanMagic>>58]
}

// popLSB clears the lowest set bit of bb and returns its square index.
func popLSB(bb *Bitboard) Square {
	sq := bitScan(*bb)
	*bb &= *bb - 1
	return sq
}

// countBits returns the population count of bb.
func countBits(bb Bitboard) int { return bits.OnesCount64(bb) }

// squareBB returns the single-bit bitboard for a square.
func squareBB(sq Square) Bitboard { return 1 << uint(sq) }

// square2String maps each board square to its algebraic name.
var square2String = [64]string{
	"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
	"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
	"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
	"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
	"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
	"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
	"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
	"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
}

// stringToSquare parses an algebraic square name ("e4") into a square index.
// Returns -1 for "-".
func stringToSquare(s string) Square {
	if s == "-" {
		return -1
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	return rank*8 + file
}
