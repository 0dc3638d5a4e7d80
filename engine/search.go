package engine

import (
	"github.com/notnil/chess"

	"forcedchess/zobrist"
)

const (
	// mateValue anchors mate scores; matePlyBias makes nearer mates score
	// higher, so the search prefers the shortest one.
	mateValue   = 30000
	matePlyBias = 100
	// MateThreshold is the magnitude beyond which a score means forced
	// mate; the driver stops deepening past it.
	MateThreshold = 29000
	// maxWindow bounds every score the search can produce.
	maxWindow = 999_999
)

// matedScore is the side to move's score when it has no moves and stands
// in check. Mates found higher in the tree (larger depth remaining) score
// worse for the loser, i.e. better for the winner.
func matedScore(depth int) int {
	return -mateValue + (matePlyBias - depth)
}

// alphaBeta is the negamax search: scores are always from the side to
// move's perspective and the recursion negates across each move. It is
// fail-soft above the quiescence boundary, returning the best score found
// even when that breaks the window. The returned move is nil at terminal
// and quiescence nodes.
func (e *Engine) alphaBeta(pos Position, depth, alpha, beta int, principal *chess.Move) (int, *chess.Move) {
	e.stats.Nodes++
	if e.shouldStop() {
		return 0, nil
	}

	key := zobrist.Fingerprint(pos.Current())
	score, hint, usable := e.tt.Probe(key, depth, alpha, beta)
	if usable {
		e.stats.TTCutoffs++
		return score, hint
	}

	if pos.IsCheckmate() {
		return matedScore(depth), nil
	}
	if pos.IsStalemate() || pos.IsInsufficientMaterial() || pos.IsClaimableDraw() {
		return 0, nil
	}
	if depth <= 0 {
		return e.quiesce(pos, alpha, beta, 0), nil
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if pos.InCheck() {
			return matedScore(depth), nil
		}
		return 0, nil
	}

	alphaOrig := alpha
	bestScore := -maxWindow
	var bestMove *chess.Move
	for _, m := range e.orderMoves(pos, moves, hint, principal) {
		pos.Push(m)
		childScore, _ := e.alphaBeta(pos, depth-1, -beta, -alpha, nil)
		pos.Pop()
		if e.shouldStop() {
			return 0, nil
		}
		score := -childScore
		if score > bestScore {
			bestScore, bestMove = score, m
		}
		if score >= beta {
			e.stats.BetaCutoffs++
			e.tt.Store(key, depth, score, BoundLower, m)
			return score, m
		}
		if score > alpha {
			alpha = score
		}
	}

	bound := BoundExact
	if bestScore <= alphaOrig {
		bound = BoundUpper
	}
	e.tt.Store(key, depth, bestScore, bound, bestMove)
	return bestScore, bestMove
}
