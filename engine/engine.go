// Package engine implements the search core for the forced-capture
// variant: a negamax alpha-beta search with quiescence, a transposition
// cache keyed by Zobrist fingerprint, MVV-LVA move ordering, and an
// iterative-deepening driver with aspiration windows.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
)

// Engine runs searches. One Engine serves one search at a time; the
// transposition cache persists across searches and across positions.
type Engine struct {
	cfg   Config
	eval  Evaluator
	tt    *TranspositionTable
	stats SearchStats

	stop        atomic.Bool
	deadline    time.Time
	hasDeadline bool
	// ignoreStop shields the depth-1 iteration so a move always comes
	// back, however small the budget.
	ignoreStop bool

	// OnIteration, when set, is invoked after every completed deepening
	// step with the result the driver just adopted.
	OnIteration func(Iteration)
}

func New(eval Evaluator, cfg Config) *Engine {
	return &Engine{
		cfg:  cfg,
		eval: eval,
		tt:   NewTranspositionTable(cfg.TTEntries),
	}
}

// Stop asks a running search to wind down. The search discards the
// iteration in flight and returns the last completed one.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// TT exposes the transposition cache for diagnostics.
func (e *Engine) TT() *TranspositionTable {
	return e.tt
}

// Stats returns the counters from the most recent search.
func (e *Engine) Stats() SearchStats {
	return e.stats
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) shouldStop() bool {
	if e.ignoreStop {
		return false
	}
	if e.stop.Load() {
		return true
	}
	return e.hasDeadline && time.Now().After(e.deadline)
}

// relativeScore flips the evaluator's absolute score into the side to
// move's perspective.
func (e *Engine) relativeScore(pos Position) int {
	score := e.eval.StaticScore(pos.Current())
	if pos.Current().Turn() == chess.Black {
		return -score
	}
	return score
}

func (e *Engine) logSearch(res Result) {
	tts := e.tt.Stats()
	log.Info().
		Int("depth", res.Depth).
		Int("score", res.Score).
		Int64("nodes", res.Nodes).
		Int64("beta_cutoffs", e.stats.BetaCutoffs).
		Int64("tt_cutoffs", e.stats.TTCutoffs).
		Float64("tt_hit_rate", tts.HitRate).
		Dur("elapsed", res.Elapsed).
		Msg("search complete")
}
