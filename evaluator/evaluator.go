// Package evaluator scores positions for the forced-capture variant.
// Scores are centipawns in the absolute frame: positive favors White. The
// search core flips into mover-relative terms at its boundary.
//
// Beyond material and piece placement the evaluation leans on two
// variant-specific terms: exposed pieces are penalized hard, because an
// opponent who can capture must capture, and cheap pieces attacking
// expensive ones earn a bonus for the forcing sequences they create.
package evaluator

import (
	"github.com/notnil/chess"

	"forcedchess/board"
)

const terminalScore = 30000

// pieceValues is indexed by chess.PieceType (King through Pawn).
var pieceValues = [7]int{0, 20000, 900, 500, 330, 320, 100}

type Evaluator struct{}

func New() *Evaluator {
	return &Evaluator{}
}

// PieceValue returns the static value used for capture ordering.
func (e *Evaluator) PieceValue(t chess.PieceType) int {
	if t <= chess.NoPieceType || int(t) >= len(pieceValues) {
		return 0
	}
	return pieceValues[t]
}

// StaticScore evaluates pos from White's perspective.
func (e *Evaluator) StaticScore(pos *chess.Position) int {
	switch pos.Status() {
	case chess.Checkmate:
		if pos.Turn() == chess.White {
			return -terminalScore
		}
		return terminalScore
	case chess.Stalemate:
		return 0
	}
	if board.InsufficientMaterial(pos) {
		return 0
	}

	endgame := isEndgame(pos)
	material, positional := materialAndPlacement(pos, endgame)
	return material +
		positional/10 +
		exposure(pos) +
		kingSafety(pos) +
		captureThreats(pos)/5
}

func materialAndPlacement(pos *chess.Position, endgame bool) (material, positional int) {
	for sq, piece := range pos.Board().SquareMap() {
		value := pieceValues[piece.Type()]
		placement := tableFor(piece.Type(), endgame)[tableIndex(sq, piece.Color())]
		if piece.Color() == chess.White {
			material += value
			positional += placement
		} else {
			material -= value
			positional -= placement
		}
	}
	return material, positional
}

func tableFor(t chess.PieceType, endgame bool) *[64]int {
	switch t {
	case chess.Pawn:
		return &pawnTable
	case chess.Knight:
		return &knightTable
	case chess.Bishop:
		return &bishopTable
	case chess.Rook:
		return &rookTable
	case chess.Queen:
		return &queenTable
	case chess.King:
		if endgame {
			return &kingEndTable
		}
		return &kingMiddleTable
	}
	return &[64]int{}
}

func tableIndex(sq chess.Square, c chess.Color) int {
	file := int(sq.File())
	rank := int(sq.Rank())
	if c == chess.White {
		rank = 7 - rank
	}
	return rank*8 + file
}

// exposure penalizes attacked pieces: under compulsory capture an
// undefended piece is as good as lost, so the penalty is half its value;
// a defended one still risks an unfavorable exchange.
func exposure(pos *chess.Position) int {
	brd := pos.Board()
	score := 0
	for sq, piece := range brd.SquareMap() {
		if piece.Type() == chess.King {
			continue
		}
		if !board.IsAttacked(brd, sq, piece.Color().Other()) {
			continue
		}
		penalty := pieceValues[piece.Type()] / 10
		if !board.IsAttacked(brd, sq, piece.Color()) {
			penalty = pieceValues[piece.Type()] / 2
		}
		if piece.Color() == chess.White {
			score -= penalty
		} else {
			score += penalty
		}
	}
	return score
}

// kingSafety counts enemy attacks on the squares around each king.
// Sacrifices are forcing in this variant, so a draughty king is worth a
// stiff penalty per attacked neighbor square.
func kingSafety(pos *chess.Position) int {
	brd := pos.Board()
	score := 0
	for sq, piece := range brd.SquareMap() {
		if piece.Type() != chess.King {
			continue
		}
		attacked := 0
		file := int(sq.File())
		rank := int(sq.Rank())
		for df := -1; df <= 1; df++ {
			for dr := -1; dr <= 1; dr++ {
				if df == 0 && dr == 0 {
					continue
				}
				nf, nr := file+df, rank+dr
				if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
					continue
				}
				if board.IsAttacked(brd, chess.Square(nr*8+nf), piece.Color().Other()) {
					attacked++
				}
			}
		}
		penalty := attacked * 20
		if piece.Color() == chess.White {
			score -= penalty
		} else {
			score += penalty
		}
	}
	return score
}

// captureThreats rewards a cheap piece bearing on a more valuable enemy
// piece; forcing the resulting exchange is how this variant wins material.
func captureThreats(pos *chess.Position) int {
	brd := pos.Board()
	squares := brd.SquareMap()
	score := 0
	for from, piece := range squares {
		if piece.Type() == chess.King {
			continue
		}
		ours := pieceValues[piece.Type()]
		for target, victim := range squares {
			if victim.Color() == piece.Color() {
				continue
			}
			theirs := pieceValues[victim.Type()]
			if theirs <= ours || victim.Type() == chess.King {
				continue
			}
			if !board.AttacksSquare(brd, from, target) {
				continue
			}
			bonus := (theirs - ours) / 20
			if piece.Color() == chess.White {
				score += bonus
			} else {
				score -= bonus
			}
		}
	}
	return score
}

// isEndgame flags positions where the king should leave shelter: both
// queens gone, or neither side has more than two pieces beyond king and
// pawns.
func isEndgame(pos *chess.Position) bool {
	var queens, whitePieces, blackPieces int
	for _, piece := range pos.Board().SquareMap() {
		switch piece.Type() {
		case chess.King, chess.Pawn:
			continue
		case chess.Queen:
			queens++
		}
		if piece.Color() == chess.White {
			whitePieces++
		} else {
			blackPieces++
		}
	}
	return queens == 0 || (whitePieces <= 2 && blackPieces <= 2)
}
