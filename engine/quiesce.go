package engine

import "github.com/notnil/chess"

// quiesce extends the search along tactical moves (captures and checks)
// until the position quiets down, so leaf scores are never taken in the
// middle of an exchange. depthLeft counts down from 0; below the
// configured floor the stand-pat score is accepted as is.
//
// Unlike the main search this is fail-hard: a cutoff returns beta itself.
func (e *Engine) quiesce(pos Position, alpha, beta, depthLeft int) int {
	e.stats.QNodes++
	if e.shouldStop() {
		return 0
	}

	standPat := e.relativeScore(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if depthLeft < e.cfg.QuiesceFloor {
		return standPat
	}

	legal := pos.LegalMoves()
	tactical := make([]*chess.Move, 0, len(legal))
	for _, m := range legal {
		if pos.IsCapture(m) || pos.GivesCheck(m) {
			tactical = append(tactical, m)
		}
	}
	if len(tactical) == 0 {
		return standPat
	}

	for _, m := range e.orderMoves(pos, tactical, nil, nil) {
		pos.Push(m)
		score := -e.quiesce(pos, -beta, -alpha, depthLeft-1)
		pos.Pop()
		if e.shouldStop() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
