package engine

import "testing"

// randOccupancies are fixed pseudo-random-looking occupancy bitboards used
// to spot-check the magic lookup against the from-scratch ray-caster at a
// handful of squares and blocker configurations, rather than enumerating
// every one of the 2^12 subsets exhaustively (initMagicTables already does
// that once at init time; these tests catch a regression in the lookup
// indexing itself).
var randOccupancies = []Bitboard{
	0,
	0xFFFFFFFFFFFFFFFF,
	0x0000000000000001,
	0x8000000000000000,
	0x00FF000000FF0000,
	0x1020400004020100,
	0x0000181818000000,
}

func TestMagicBishopMatchesRayCast(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		for _, occ := range randOccupancies {
			want := genBishopAttacks(squareBB(sq), occ)
			got := lookupBishopAttacks(sq, occ)
			if got != want {
				t.Fatalf("bishop sq=%d occ=%#x: got %#x want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestMagicRookMatchesRayCast(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		for _, occ := range randOccupancies {
			want := genRookAttacks(squareBB(sq), occ)
			got := lookupRookAttacks(sq, occ)
			if got != want {
				t.Fatalf("rook sq=%d occ=%#x: got %#x want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestMagicQueenIsUnionOfRookAndBishop(t *testing.T) {
	sq := 35 // d5
	occ := randOccupancies[5]
	want := lookupBishopAttacks(sq, occ) | lookupRookAttacks(sq, occ)
	if got := lookupQueenAttacks(sq, occ); got != want {
		t.Fatalf("queen sq=%d occ=%#x: got %#x want %#x", sq, occ, got, want)
	}
}

func TestAttackTablesMatchGenerators(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		bb := squareBB(sq)
		if got, want := knightAttacks[sq], genKnightAttacks(bb); got != want {
			t.Errorf("knightAttacks[%d] = %#x, want %#x", sq, got, want)
		}
		if got, want := kingAttacks[sq], genKingAttacks(bb); got != want {
			t.Errorf("kingAttacks[%d] = %#x, want %#x", sq, got, want)
		}
		for _, c := range []Color{ColorWhite, ColorBlack} {
			if got, want := pawnAttacks[c][sq], genPawnAttacks(bb, c); got != want {
				t.Errorf("pawnAttacks[%d][%d] = %#x, want %#x", c, sq, got, want)
			}
		}
	}
}
