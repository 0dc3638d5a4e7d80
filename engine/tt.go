package engine

import (
	"sort"
	"sync"

	"github.com/notnil/chess"
)

// Bound classifies what a cached score proves about the true value.
type Bound uint8

const (
	// BoundExact scores came from a fully resolved window.
	BoundExact Bound = iota
	// BoundLower scores came from a beta cutoff: the true value is at
	// least this high.
	BoundLower
	// BoundUpper scores came from a node that never raised alpha: the
	// true value is at most this low.
	BoundUpper
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	}
	return "unknown"
}

const (
	// staleGenerations is how many searches an entry may sit unreplaced
	// before a deeper-but-older entry loses its right to stay.
	staleGenerations = 10
	// sweepInterval is how often NextGeneration garbage-collects entries
	// that old.
	sweepInterval = 100
)

// Entry is one cached search outcome, stamped with the generation of the
// search that produced it.
type Entry struct {
	Key      uint64      `json:"key"`
	Depth    int         `json:"depth"`
	Score    int         `json:"score"`
	Bound    Bound       `json:"bound"`
	BestMove *chess.Move `json:"-"`
	Gen      uint32      `json:"gen"`
}

// TranspositionTable caches search outcomes by position fingerprint. The
// search owns it during a call, but the lock lets diagnostics endpoints
// read counters while a search is running.
type TranspositionTable struct {
	mu       sync.RWMutex
	entries  map[uint64]Entry
	capacity int
	gen      uint32

	probes  uint64
	hits    uint64
	stores  uint64
	rejects uint64
}

func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	return &TranspositionTable{
		entries:  make(map[uint64]Entry),
		capacity: capacity,
	}
}

// NextGeneration marks the start of a new search. Every sweepInterval
// generations it also drops entries that have gone stale.
func (tt *TranspositionTable) NextGeneration() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.gen++
	if tt.gen%sweepInterval != 0 {
		return
	}
	for key, e := range tt.entries {
		if tt.gen-e.Gen > staleGenerations {
			delete(tt.entries, key)
		}
	}
}

// Probe looks up key for a node searched to depth with window (alpha,
// beta). ok reports that score can be used directly: the entry is at
// least as deep and its bound resolves within the window. The hint move
// is returned whenever the key is present, usable or not, so the caller
// can still order with it.
func (tt *TranspositionTable) Probe(key uint64, depth, alpha, beta int) (score int, hint *chess.Move, ok bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.probes++
	e, found := tt.entries[key]
	if !found || e.Key != key {
		return 0, nil, false
	}
	tt.hits++
	hint = e.BestMove
	if e.Depth < depth {
		return 0, hint, false
	}
	switch e.Bound {
	case BoundExact:
		return e.Score, hint, true
	case BoundLower:
		if e.Score >= beta {
			return e.Score, hint, true
		}
	case BoundUpper:
		if e.Score <= alpha {
			return e.Score, hint, true
		}
	}
	return 0, hint, false
}

// Store records a search outcome. An existing entry survives only if it is
// deeper than the newcomer and still fresh; anything else is overwritten.
func (tt *TranspositionTable) Store(key uint64, depth, score int, bound Bound, best *chess.Move) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.stores++
	if e, found := tt.entries[key]; found {
		if depth < e.Depth && tt.gen-e.Gen <= staleGenerations {
			tt.rejects++
			return
		}
	}
	tt.entries[key] = Entry{
		Key:      key,
		Depth:    depth,
		Score:    score,
		Bound:    bound,
		BestMove: best,
		Gen:      tt.gen,
	}
	if len(tt.entries) > tt.capacity {
		tt.evictOldest()
	}
}

// evictOldest drops the oldest tenth of the table. Caller holds the lock.
func (tt *TranspositionTable) evictOldest() {
	type aged struct {
		key uint64
		gen uint32
	}
	all := make([]aged, 0, len(tt.entries))
	for key, e := range tt.entries {
		all = append(all, aged{key: key, gen: e.Gen})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].gen < all[j].gen })
	n := len(all) / 10
	if n < 1 {
		n = 1
	}
	for _, a := range all[:n] {
		delete(tt.entries, a.key)
	}
}

// HintMove returns the cached best move for key, if any, ignoring depth
// and bounds.
func (tt *TranspositionTable) HintMove(key uint64) *chess.Move {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	if e, found := tt.entries[key]; found {
		return e.BestMove
	}
	return nil
}

func (tt *TranspositionTable) Count() int {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return len(tt.entries)
}

func (tt *TranspositionTable) Capacity() int {
	return tt.capacity
}

func (tt *TranspositionTable) Generation() uint32 {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.gen
}

// Clear empties the table but keeps the generation counter running.
func (tt *TranspositionTable) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.entries = make(map[uint64]Entry)
	tt.probes, tt.hits, tt.stores, tt.rejects = 0, 0, 0, 0
}

// TTStats is a point-in-time snapshot for diagnostics.
type TTStats struct {
	Probes     uint64  `json:"probes"`
	Hits       uint64  `json:"hits"`
	HitRate    float64 `json:"hit_rate"`
	Stores     uint64  `json:"stores"`
	Rejects    uint64  `json:"rejects"`
	Count      int     `json:"count"`
	Capacity   int     `json:"capacity"`
	Generation uint32  `json:"generation"`
}

func (tt *TranspositionTable) Stats() TTStats {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	s := TTStats{
		Probes:     tt.probes,
		Hits:       tt.hits,
		Stores:     tt.stores,
		Rejects:    tt.rejects,
		Count:      len(tt.entries),
		Capacity:   tt.capacity,
		Generation: tt.gen,
	}
	if s.Probes > 0 {
		s.HitRate = float64(s.Hits) / float64(s.Probes)
	}
	return s
}
