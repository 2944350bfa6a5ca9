// magic.go implements magic bitboards for sliding-piece attack lookup (C3):
// for each (square, occupancy) pair, the attack set is found in O(1) via a
// precomputed multiplier hash of the relevant-occupancy mask.
//
// Layout follows the classic fixed-shift scheme: for a given square, the
// relevant occupancy bits are isolated, multiplied by a precomputed magic
// constant chosen to be collision-free for that square, and shifted down to
// index a per-square sub-table sized 2^bitCount.

package engine

var (
	bishopOccupancy [64]Bitboard
	rookOccupancy   [64]Bitboard
	// bishopAttacks and rookAttacks are the per-square sub-tables; sized to
	// the maximum possible relevant-occupancy bit count (9 for bishops, 12
	// for rooks) rather than exactly 2^bitCount[square], trading a small
	// amount of unused tail space for one flat array shape.
	bishopAttacks [64][512]Bitboard
	rookAttacks   [64][4096]Bitboard
)

// bishopBitCount and rookBitCount give the number of relevant-occupancy bits
// for each square (and hence the size of that square's sub-table).
var bishopBitCount = [64]int{
	6, 5, 5, 5, 5, 5, 5, 6,
	5, 5, 5, 5, 5, 5, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 9, 9, 7, 5, 5,
	5, 5, 7, 7, 7, 7, 5, 5,
	5, 5, 5, 5, 5, 5, 5, 5,
	6, 5, 5, 5, 5, 5, 5, 6,
}

var rookBitCount = [64]int{
	12, 11, 11, 11, 11, 11, 11, 12,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	11, 10, 10, 10, 10, 10, 10, 11,
	12, 11, 11, 11, 11, 11, 11, 12,
}

var bishopMagicNumbers = [64]uint64{
	0x11410121040100, 0x2084820928010, 0xa010208481080040, 0x214240082000610,
	0x4d104000400480, 0x1012010804408, 0x42044101452000c, 0x2844804050104880,
	0x814204290a0a00, 0x10280688224500, 0x1080410101010084, 0x10020a108408004,
	0x2482020210c80080, 0x480104a0040400, 0x411006404200810, 0x1024010908024292,
	0x1004401001011a, 0x810006081220080, 0x1040404206004100, 0x58080000820041ce,
	0x3406000422010890, 0x1a004100520210, 0x202a000048040400, 0x225004441180110,
	0x8064240102240, 0x1424200404010402, 0x1041100041024200, 0x8082002012008200,
	0x1010008104000, 0x8808004000806000, 0x380a000080c400, 0x31040100042d0101,
	0x110109008082220, 0x4010880204201, 0x4006462082100300, 0x4002010040140041,
	0x40090200250880, 0x2010100c40c08040, 0x12800ac01910104, 0x10b20051020100,
	0x210894104828c000, 0x50440220004800, 0x1002011044180800, 0x4220404010410204,
	0x1002204a2020401, 0x21021001000210, 0x4880081009402, 0xc208088c088e0040,
	0x4188464200080, 0x3810440618022200, 0xc020310401040420, 0x2000008208800e0,
	0x4c910240020, 0x425100a8602a0, 0x20c4206a0c030510, 0x4c10010801184000,
	0x200202020a026200, 0x6000004400841080, 0xc14004121082200, 0x400324804208800,
	0x1802200040504100, 0x1820000848488820, 0x8620682a908400, 0x8010600084204240,
}

var rookMagicNumbers = [64]uint64{
	0x2080008040002010, 0x40200010004000, 0x100090010200040, 0x2080080010000480,
	0x880040080080102, 0x8200106200042108, 0x410041000408b200, 0x100009a00402100,
	0x5800800020804000, 0x848404010002000, 0x101001820010041, 0x10a0040100420080,
	0x8a02002006001008, 0x926000844110200, 0x8000800200800100, 0x28060001008c2042,
	0x10818002204000, 0x10004020004001, 0x110002008002400, 0x11a020010082040,
	0x2001010008000410, 0x42010100080400, 0x4004040008020110, 0x820000840041,
	0x400080208000, 0x2080200040005000, 0x8000200080100080, 0x4400080180500080,
	0x4900080080040080, 0x4004004480020080, 0x8006000200040108, 0xc481000100006396,
	0x1000400080800020, 0x201004400040, 0x10008010802000, 0x204012000a00,
	0x800400800802, 0x284000200800480, 0x3000403000200, 0x840a6000514,
	0x4080c000228012, 0x10002000444010, 0x620001000808020, 0xc210010010009,
	0x100c001008010100, 0xc10020004008080, 0x20100802040001, 0x808008305420014,
	0xc010800840043080, 0x208401020890100, 0x10b0081020028280, 0x6087001001220900,
	0xc080011000500, 0x9810200040080, 0x2000010882100400, 0x2000050880540200,
	0x800020104200810a, 0x6220250242008016, 0x9180402202900a, 0x40210500100009,
	0x6000814102026, 0x410100080a040013, 0x10405008022d1184, 0x1000009400410822,
}

// initMagicTables computes the relevant-occupancy masks and populates the
// per-square attack sub-tables for every (square, blocker subset) pair.
// Called once by InitTables.
func initMagicTables() {
	initBishopOccupancy()
	initRookOccupancy()

	for sq := 0; sq < 64; sq++ {
		bb := squareBB(sq)

		bitCount := bishopBitCount[sq]
		for i := 0; i < 1<<bitCount; i++ {
			occ := genOccupancySubset(i, bitCount, bishopOccupancy[sq])
			key := occ * bishopMagicNumbers[sq] >> (64 - bitCount)
			bishopAttacks[sq][key] = genBishopAttacks(bb, occ)
		}

		bitCount = rookBitCount[sq]
		for i := 0; i < 1<<bitCount; i++ {
			occ := genOccupancySubset(i, bitCount, rookOccupancy[sq])
			key := occ * rookMagicNumbers[sq] >> (64 - bitCount)
			rookAttacks[sq][key] = genRookAttacks(bb, occ)
		}
	}
}

func initBishopOccupancy() {
	const notANot1 = notAFile & notRank1
	const notHNot1 = notHFile & notRank1
	const notANot8 = notAFile & notRank8
	const notHNot8 = notHFile & notRank8

	for sq := 0; sq < 64; sq++ {
		var occ, bishop Bitboard = 0, squareBB(sq)
		for i := bishop & notAFile >> 9; i&notANot1 != 0; i >>= 9 {
			occ |= i
		}
		for i := bishop & notHFile >> 7; i&notHNot1 != 0; i >>= 7 {
			occ |= i
		}
		for i := bishop & notAFile << 7; i&notANot8 != 0; i <<= 7 {
			occ |= i
		}
		for i := bishop & notHFile << 9; i&notHNot8 != 0; i <<= 9 {
			occ |= i
		}
		bishopOccupancy[sq] = occ
	}
}

func initRookOccupancy() {
	for sq := 0; sq < 64; sq++ {
		var occ, rook Bitboard = 0, squareBB(sq)
		for i := rook & notRank1 >> 8; i&notRank1 != 0; i >>= 8 {
			occ |= i
		}
		for i := rook & notAFile >> 1; i&notAFile != 0; i >>= 1 {
			occ |= i
		}
		for i := rook & notHFile << 1; i&notHFile != 0; i <<= 1 {
			occ |= i
		}
		for i := rook & notRank8 << 8; i&notRank8 != 0; i <<= 8 {
			occ |= i
		}
		rookOccupancy[sq] = occ
	}
}

// genOccupancySubset enumerates the key-th subset of the relevant-occupancy
// mask's set bits, used to exhaustively populate every blocker combination
// at init time.
func genOccupancySubset(key, relevantBitCount int, relevantOccupancy Bitboard) (occ Bitboard) {
	for i := 0; i < relevantBitCount; i++ {
		sq := popLSB(&relevantOccupancy)
		if key&(1<<i) != 0 {
			occ |= squareBB(sq)
		}
	}
	return occ
}

// genBishopAttacks ray-casts a bishop's attacks from scratch, stopping at
// (and including) the first blocker in each diagonal direction. Only used to
// populate the magic tables at init time.
func genBishopAttacks(bishop, occupancy Bitboard) (attacks Bitboard) {
	for i := bishop & notAFile >> 9; i&notHFile != 0; i >>= 9 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	for i := bishop & notHFile >> 7; i&notAFile != 0; i >>= 7 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	for i := bishop & notAFile << 7; i&notHFile != 0; i <<= 7 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	for i := bishop & notHFile << 9; i&notAFile != 0; i <<= 9 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	return attacks
}

// genRookAttacks ray-casts a rook's attacks from scratch, stopping at (and
// including) the first blocker in each direction. Only used at init time.
func genRookAttacks(rook, occupancy Bitboard) (attacks Bitboard) {
	for i := rook & notAFile >> 1; i&notHFile != 0; i >>= 1 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	for i := rook & notHFile << 1; i&notAFile != 0; i <<= 1 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	for i := rook & notRank1 >> 8; i&notRank8 != 0; i >>= 8 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	for i := rook & notRank8 << 8; i&notRank1 != 0; i <<= 8 {
		attacks |= i
		if i&occupancy != 0 {
			break
		}
	}
	return attacks
}

// lookupBishopAttacks returns the bishop attack set for (square, occupancy)
// in O(1) via the magic multiplier hash.
func lookupBishopAttacks(sq Square, occupancy Bitboard) Bitboard {
	occupancy &= bishopOccupancy[sq]
	occupancy *= bishopMagicNumbers[sq]
	occupancy >>= 64 - bishopBitCount[sq]
	return bishopAttacks[sq][occupancy]
}

// lookupRookAttacks returns the rook attack set for (square, occupancy) in
// O(1) via the magic multiplier hash.
func lookupRookAttacks(sq Square, occupancy Bitboard) Bitboard {
	occupancy &= rookOccupancy[sq]
	occupancy *= rookMagicNumbers[sq]
	occupancy >>= 64 - rookBitCount[sq]
	return rookAttacks[sq][occupancy]
}

// lookupQueenAttacks is the union of a queen's rook-wise and bishop-wise
// attack sets from the same square.
func lookupQueenAttacks(sq Square, occupancy Bitboard) Bitboard {
	return lookupBishopAttacks(sq, occupancy) | lookupRookAttacks(sq, occupancy)
}

var tablesInitialized bool

// InitTables initializes all process-wide read-only lookup tables: non-slider
// attacks, magic bitboards, and Zobrist keys. Call this once, as close as
// possible to program start; nothing in this package works before it runs.
func InitTables() {
	if tablesInitialized {
		return
	}
	initNonSliderAttacks()
	initMagicTables()
	initZobristKeys()
	tablesInitialized = true
	log.Debug("lookup tables initialized")
}
