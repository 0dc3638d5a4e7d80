package engine

import (
	"testing"

	"github.com/notnil/chess"
)

func TestProbeExactEntry(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(42, 5, 123, BoundExact, nil)

	score, _, ok := tt.Probe(42, 5, -1000, 1000)
	if !ok || score != 123 {
		t.Fatalf("exact entry at equal depth should be usable: ok=%v score=%d", ok, score)
	}
	score, _, ok = tt.Probe(42, 3, -1000, 1000)
	if !ok || score != 123 {
		t.Fatalf("exact entry deeper than requested should be usable: ok=%v score=%d", ok, score)
	}
	if _, _, ok := tt.Probe(42, 7, -1000, 1000); ok {
		t.Fatalf("entry shallower than requested must not be usable")
	}
	if _, _, ok := tt.Probe(99, 1, -1000, 1000); ok {
		t.Fatalf("missing key must miss")
	}
}

func TestProbeBoundCompatibility(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(1, 4, 200, BoundLower, nil)
	tt.Store(2, 4, -200, BoundUpper, nil)

	if _, _, ok := tt.Probe(1, 4, -1000, 300); ok {
		t.Fatalf("lower bound below beta must not cut off")
	}
	if score, _, ok := tt.Probe(1, 4, -1000, 150); !ok || score != 200 {
		t.Fatalf("lower bound at or above beta should cut off: ok=%v score=%d", ok, score)
	}
	if _, _, ok := tt.Probe(2, 4, -300, 1000); ok {
		t.Fatalf("upper bound above alpha must not cut off")
	}
	if score, _, ok := tt.Probe(2, 4, -150, 1000); !ok || score != -200 {
		t.Fatalf("upper bound at or below alpha should cut off: ok=%v score=%d", ok, score)
	}
}

func TestUnusableEntryStillReturnsHint(t *testing.T) {
	tt := NewTranspositionTable(100)
	hint := &chess.Move{}
	tt.Store(7, 2, 50, BoundExact, hint)

	_, got, ok := tt.Probe(7, 6, -1000, 1000)
	if ok {
		t.Fatalf("shallow entry must not be usable at depth 6")
	}
	if got != hint {
		t.Fatalf("hint move should come back even when the score is unusable")
	}
	if tt.HintMove(7) != hint {
		t.Fatalf("HintMove should return the cached move")
	}
	if tt.HintMove(8) != nil {
		t.Fatalf("HintMove on a missing key should be nil")
	}
}

func TestStoreKeepsFreshDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(5, 8, 100, BoundExact, nil)
	tt.Store(5, 3, 999, BoundExact, nil)

	score, _, ok := tt.Probe(5, 8, -100000, 100000)
	if !ok || score != 100 {
		t.Fatalf("shallower store must not replace a fresh deeper entry: ok=%v score=%d", ok, score)
	}

	tt.Store(5, 8, 777, BoundExact, nil)
	if score, _, ok := tt.Probe(5, 8, -100000, 100000); !ok || score != 777 {
		t.Fatalf("equal-depth store should replace: ok=%v score=%d", ok, score)
	}
}

func TestStaleDeepEntryLosesToShallowStore(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(5, 8, 100, BoundExact, nil)
	for i := 0; i < staleGenerations+1; i++ {
		tt.NextGeneration()
	}
	tt.Store(5, 3, 999, BoundExact, nil)

	score, _, ok := tt.Probe(5, 3, -100000, 100000)
	if !ok || score != 999 {
		t.Fatalf("stale deep entry should yield to a fresh shallow one: ok=%v score=%d", ok, score)
	}
}

func TestEvictionKeepsTableUnderCapacity(t *testing.T) {
	tt := NewTranspositionTable(10)
	for i := 0; i < 50; i++ {
		if i%5 == 0 {
			tt.NextGeneration()
		}
		tt.Store(uint64(i), 1, i, BoundExact, nil)
	}
	if tt.Count() > 10 {
		t.Fatalf("table exceeded capacity: %d entries", tt.Count())
	}
}

func TestSweepDropsAncientEntries(t *testing.T) {
	tt := NewTranspositionTable(1000)
	tt.Store(1, 1, 0, BoundExact, nil)
	for i := 0; i < sweepInterval; i++ {
		tt.NextGeneration()
	}
	if tt.Count() != 0 {
		t.Fatalf("sweep should have dropped the ancient entry, %d left", tt.Count())
	}
}

func TestStatsAndClear(t *testing.T) {
	tt := NewTranspositionTable(100)
	tt.Store(1, 1, 10, BoundExact, nil)
	tt.Probe(1, 1, -100, 100)
	tt.Probe(2, 1, -100, 100)

	s := tt.Stats()
	if s.Probes != 2 || s.Hits != 1 || s.Stores != 1 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.HitRate != 0.5 {
		t.Fatalf("hit rate should be 0.5, got %f", s.HitRate)
	}

	tt.Clear()
	if tt.Count() != 0 || tt.Stats().Probes != 0 {
		t.Fatalf("clear should empty entries and counters")
	}
}

func TestBoundString(t *testing.T) {
	if BoundExact.String() != "exact" || BoundLower.String() != "lower" || BoundUpper.String() != "upper" {
		t.Fatalf("bound names wrong: %s %s %s", BoundExact, BoundLower, BoundUpper)
	}
}
