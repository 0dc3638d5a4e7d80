package engine

import (
	"time"

	"github.com/notnil/chess"
)

// Result is what a Search call settles on: the move from the deepest
// completed iteration, its score in mover-relative centipawns, and the
// principal variation reconstructed from the transposition cache.
type Result struct {
	BestMove *chess.Move
	Score    int
	Depth    int
	Nodes    int64
	Elapsed  time.Duration
	PV       []*chess.Move
}

// Mate reports whether the score is within mating range for either side.
func (r Result) Mate() bool {
	return intAbs(r.Score) > MateThreshold
}

// Iteration describes one completed deepening step; it is delivered to the
// OnIteration callback as the driver adopts the step's result.
type Iteration struct {
	Depth    int
	Score    int
	BestMove *chess.Move
	Nodes    int64
	Elapsed  time.Duration
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
