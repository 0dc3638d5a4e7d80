package board

import "github.com/notnil/chess"

// IsAttacked reports whether sq is attacked by any piece of color by.
func IsAttacked(b *chess.Board, sq chess.Square, by chess.Color) bool {
	for from, piece := range b.SquareMap() {
		if piece.Color() == by && AttacksSquare(b, from, sq) {
			return true
		}
	}
	return false
}

// AttacksSquare reports whether the piece standing on from attacks to.
// Attack here means the bare capture geometry; pins and legality are the
// move generator's business.
func AttacksSquare(b *chess.Board, from, to chess.Square) bool {
	if from == to {
		return false
	}
	piece := b.Piece(from)
	if piece == chess.NoPiece {
		return false
	}
	df := int(to.File()) - int(from.File())
	dr := int(to.Rank()) - int(from.Rank())
	adf, adr := abs(df), abs(dr)

	switch piece.Type() {
	case chess.Pawn:
		if adf != 1 {
			return false
		}
		if piece.Color() == chess.White {
			return dr == 1
		}
		return dr == -1
	case chess.Knight:
		return (adf == 1 && adr == 2) || (adf == 2 && adr == 1)
	case chess.King:
		return adf <= 1 && adr <= 1
	case chess.Bishop:
		return adf == adr && rayClear(b, from, to, sign(df), sign(dr))
	case chess.Rook:
		return (df == 0 || dr == 0) && rayClear(b, from, to, sign(df), sign(dr))
	case chess.Queen:
		return (adf == adr || df == 0 || dr == 0) && rayClear(b, from, to, sign(df), sign(dr))
	}
	return false
}

// rayClear checks the squares strictly between from and to along the given
// file/rank step for occupancy.
func rayClear(b *chess.Board, from, to chess.Square, stepFile, stepRank int) bool {
	file := int(from.File()) + stepFile
	rank := int(from.Rank()) + stepRank
	for {
		sq := chess.Square(rank*8 + file)
		if sq == to {
			return true
		}
		if b.Piece(sq) != chess.NoPiece {
			return false
		}
		file += stepFile
		rank += stepRank
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
