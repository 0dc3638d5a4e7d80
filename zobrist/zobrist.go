// Package zobrist computes reproducible position fingerprints used as
// transposition keys. Two positions that agree on piece placement, side to
// move, castling rights and en-passant file hash identically regardless of
// the move order that produced them.
package zobrist

import "github.com/notnil/chess"

const (
	pieceKinds   = 12 // six piece types per color
	squareCount  = 64
	castleRights = 4
	epFiles      = 8
)

type table struct {
	pieces   [pieceKinds * squareCount]uint64
	side     uint64
	castling [castleRights]uint64
	epFile   [epFiles]uint64
}

var features table

func init() {
	rng := splitmix64{state: 0x9e3779b97f4a7c15}
	for i := range features.pieces {
		features.pieces[i] = rng.next()
	}
	features.side = rng.next()
	for i := range features.castling {
		features.castling[i] = rng.next()
	}
	for i := range features.epFile {
		features.epFile[i] = rng.next()
	}
}

// Fingerprint hashes a position. Pure function of the position's
// rules-relevant state; no history dependence.
func Fingerprint(pos *chess.Position) uint64 {
	var hash uint64
	for sq, piece := range pos.Board().SquareMap() {
		hash ^= features.pieces[pieceIndex(piece)*squareCount+int(sq)]
	}
	if pos.Turn() == chess.Black {
		hash ^= features.side
	}
	rights := pos.CastleRights()
	if rights.CanCastle(chess.White, chess.KingSide) {
		hash ^= features.castling[0]
	}
	if rights.CanCastle(chess.White, chess.QueenSide) {
		hash ^= features.castling[1]
	}
	if rights.CanCastle(chess.Black, chess.KingSide) {
		hash ^= features.castling[2]
	}
	if rights.CanCastle(chess.Black, chess.QueenSide) {
		hash ^= features.castling[3]
	}
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		hash ^= features.epFile[int(ep.File())]
	}
	return hash
}

func pieceIndex(p chess.Piece) int {
	idx := (int(p.Type()) - 1) * 2
	if p.Color() == chess.Black {
		idx++
	}
	return idx
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
