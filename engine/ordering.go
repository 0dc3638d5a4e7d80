package engine

import (
	"sort"

	"github.com/notnil/chess"
)

// Ordering priorities. The previous iteration's principal move goes first,
// then the cached hint, then captures by most-valuable-victim /
// least-valuable-attacker. Quiet moves keep their generation order.
const (
	principalPriority = 1_000_000
	hintPriority      = 500_000
	captureBase       = 10_000
	checkBonus        = 5_000
	promotionBonus    = 8_000
)

// SameMove reports whether a and b describe the same move. Move values
// from different generation passes are distinct pointers, so identity is
// by squares and promotion.
func SameMove(a, b *chess.Move) bool {
	return a.S1() == b.S1() && a.S2() == b.S2() && a.Promo() == b.Promo()
}

// orderMoves returns moves sorted best-first. The sort is stable so that
// equally scored moves keep the generator's order and the search stays
// deterministic.
func (e *Engine) orderMoves(pos Position, moves []*chess.Move, hint, principal *chess.Move) []*chess.Move {
	if len(moves) < 2 {
		return moves
	}
	type scored struct {
		move  *chess.Move
		score int
	}
	ranked := make([]scored, len(moves))
	for i, m := range moves {
		ranked[i] = scored{move: m, score: e.moveScore(pos, m, hint, principal)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	ordered := make([]*chess.Move, len(moves))
	for i := range ranked {
		ordered[i] = ranked[i].move
	}
	return ordered
}

func (e *Engine) moveScore(pos Position, m, hint, principal *chess.Move) int {
	if principal != nil && SameMove(m, principal) {
		return principalPriority
	}
	if hint != nil && SameMove(m, hint) {
		return hintPriority
	}
	if !pos.IsCapture(m) {
		return 0
	}
	score := captureBase + e.victimValue(pos, m) - e.attackerValue(pos, m)/10
	if pos.GivesCheck(m) {
		score += checkBonus
	}
	if m.Promo() != chess.NoPieceType {
		score += promotionBonus
	}
	return score
}

func (e *Engine) victimValue(pos Position, m *chess.Move) int {
	victim := pos.Current().Board().Piece(m.S2())
	if victim == chess.NoPiece {
		// En passant: the captured pawn is not on the target square.
		return e.eval.PieceValue(chess.Pawn)
	}
	return e.eval.PieceValue(victim.Type())
}

func (e *Engine) attackerValue(pos Position, m *chess.Move) int {
	return e.eval.PieceValue(pos.Current().Board().Piece(m.S1()).Type())
}
