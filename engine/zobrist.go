// zobrist.go implements Zobrist hashing (C8): a deterministic per-feature
// random table XORed together to produce a position hash, updated
// incrementally by make/unmake and also computable by a full recompute for
// validation.

package engine

import "math/rand/v2"

var (
	pieceKeys    [12][64]uint64
	epKeys       [64]uint64
	castlingKeys [16]uint64
	colorKey     uint64
)

// initZobristKeys fills the Zobrist key tables with a fixed PRNG seed so
// hashes are reproducible across runs, which matters for perft cross-checks
// and for replaying a reported bug from its FEN. Called once by InitTables.
func initZobristKeys() {
	rng := rand.New(rand.NewPCG(0x9E3779B97F4A7C15, 0xBF58476D1CE4E5B9))

	for piece := PieceWPawn; piece <= PieceBKing; piece++ {
		for sq := 0; sq < 64; sq++ {
			pieceKeys[piece][sq] = rng.Uint64()
		}
	}
	for sq := 0; sq < 64; sq++ {
		epKeys[sq] = rng.Uint64()
	}
	for i := 0; i < 16; i++ {
		castlingKeys[i] = rng.Uint64()
	}
	colorKey = rng.Uint64()
}

// computeHash recomputes the Zobrist hash of the board from scratch. Used to
// validate the incrementally-maintained Board.Hash (full ≡ incremental is a
// tested property; see makeunmake_test.go).
//
// The en-passant file key is XORed whenever EPTarget is set, regardless of
// whether an en passant capture is geometrically possible in the position
// (the "always hash" rule — see DESIGN.md for why this was chosen over the
// stricter "legally relevant" rule). Both this function and the incremental
// updates in makeunmake.go must agree on the rule; this is the one enforced.
func (b *Board) computeHash() (hash uint64) {
	for piece := PieceWPawn; piece <= PieceBKing; piece++ {
		bb := b.Bitboards[piece]
		for bb != 0 {
			hash ^= pieceKeys[piece][popLSB(&bb)]
		}
	}
	if b.EPTarget >= 0 {
		hash ^= epKeys[b.EPTarget]
	}
	hash ^= castlingKeys[b.CastlingRights]
	if b.ActiveColor == ColorBlack {
		hash ^= colorKey
	}
	return hash
}
