package engine

import (
	"time"

	"github.com/notnil/chess"

	"forcedchess/zobrist"
)

// Search runs iterative deepening from pos. maxDepth <= 0 falls back to
// the configured depth, then to 50 under a time budget and 1 without one.
// budget <= 0 falls back to the configured budget; zero means unbounded.
//
// Each iteration deepens by one ply; an iteration cut short by the budget
// or by Stop is discarded and the previous one's move stands. The depth-1
// iteration always runs to completion so a legal move comes back even at
// budget zero.
func (e *Engine) Search(pos Position, maxDepth int, budget time.Duration) Result {
	if maxDepth <= 0 {
		maxDepth = e.cfg.MaxDepth
	}
	if budget <= 0 && e.cfg.TimeBudgetMs > 0 {
		budget = time.Duration(e.cfg.TimeBudgetMs) * time.Millisecond
	}
	if maxDepth <= 0 {
		if budget > 0 {
			maxDepth = 50
		} else {
			maxDepth = 1
		}
	}

	e.stats = SearchStats{Start: time.Now()}
	e.stop.Store(false)
	e.hasDeadline = budget > 0
	e.deadline = e.stats.Start.Add(budget)
	e.tt.NextGeneration()

	// Common under compulsory capture: a single legal reply needs no
	// search at all.
	if moves := pos.LegalMoves(); len(moves) == 1 {
		e.stats.CompletedDepth = 1
		return Result{
			BestMove: moves[0],
			Score:    e.relativeScore(pos),
			Depth:    1,
			Elapsed:  time.Since(e.stats.Start),
			PV:       moves,
		}
	}

	var best *chess.Move
	bestScore := 0
	completed := 0
	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && e.shouldStop() {
			break
		}
		e.ignoreStop = depth == 1
		depthStart := time.Now()

		alpha, beta := -maxWindow, maxWindow
		if e.cfg.EnableAspiration && best != nil {
			alpha = bestScore - e.cfg.AspirationWindow
			beta = bestScore + e.cfg.AspirationWindow
		}
		score, move, interrupted := e.searchDepth(pos, depth, alpha, beta, best)
		e.ignoreStop = false
		if interrupted {
			break
		}

		bestScore = score
		completed = depth
		e.stats.CompletedDepth = completed
		e.stats.DepthDurations = append(e.stats.DepthDurations, time.Since(depthStart))
		if move == nil {
			// Terminal root: mate or a dead draw, nothing to play.
			break
		}
		best = move
		if e.OnIteration != nil {
			e.OnIteration(Iteration{
				Depth:    depth,
				Score:    bestScore,
				BestMove: best,
				Nodes:    e.stats.Nodes + e.stats.QNodes,
				Elapsed:  time.Since(e.stats.Start),
			})
		}
		if intAbs(bestScore) > MateThreshold {
			break
		}
	}

	if best == nil {
		// Interrupted before any iteration finished, or an unsearchable
		// root. Any legal move beats forfeiting on time.
		if moves := pos.LegalMoves(); len(moves) > 0 {
			best = moves[0]
		}
	}

	res := Result{
		BestMove: best,
		Score:    bestScore,
		Depth:    completed,
		Nodes:    e.stats.Nodes + e.stats.QNodes,
		Elapsed:  time.Since(e.stats.Start),
	}
	if best != nil {
		res.PV = e.principalVariation(pos, completed)
	}
	if e.cfg.LogSearchStats {
		e.logSearch(res)
	}
	return res
}

// searchDepth runs one deepening step, re-searching with a widened window
// when the aspiration guess fails. Fail low reopens alpha, fail high
// reopens beta; at most two re-searches happen before the window is
// maximal on both sides.
func (e *Engine) searchDepth(pos Position, depth, alpha, beta int, principal *chess.Move) (int, *chess.Move, bool) {
	for {
		score, move := e.alphaBeta(pos, depth, alpha, beta, principal)
		if e.shouldStop() {
			return 0, nil, true
		}
		if score <= alpha && alpha > -maxWindow {
			e.stats.AspirationLows++
			alpha = -maxWindow
			continue
		}
		if score >= beta && beta < maxWindow {
			e.stats.AspirationHighs++
			beta = maxWindow
			continue
		}
		return score, move, false
	}
}

// principalVariation replays the cache's best-move chain from pos, up to
// depth moves. Each hint is matched against the legal move list before it
// is pushed, both to validate it and to pick up the generator's move tags;
// the chain stops at the first miss.
func (e *Engine) principalVariation(pos Position, depth int) []*chess.Move {
	if depth <= 0 {
		return nil
	}
	pv := make([]*chess.Move, 0, depth)
	for len(pv) < depth {
		hint := e.tt.HintMove(zobrist.Fingerprint(pos.Current()))
		if hint == nil {
			break
		}
		var legal *chess.Move
		for _, m := range pos.LegalMoves() {
			if SameMove(m, hint) {
				legal = m
				break
			}
		}
		if legal == nil {
			break
		}
		pv = append(pv, legal)
		pos.Push(legal)
	}
	for range pv {
		pos.Pop()
	}
	return pv
}
