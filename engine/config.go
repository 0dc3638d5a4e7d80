package engine

// Config carries the search tunables. Zero values mean "use the default";
// callers normally start from DefaultConfig and override fields.
type Config struct {
	// MaxDepth caps iterative deepening. When zero the driver picks 50
	// under a time budget and 1 without one.
	MaxDepth int `json:"max_depth"`
	// TimeBudgetMs is the default per-search budget when the caller does
	// not pass one. Zero means unbounded.
	TimeBudgetMs int `json:"time_budget_ms"`
	// TTEntries bounds the transposition cache.
	TTEntries int `json:"tt_entries"`

	EnableAspiration bool `json:"enable_aspiration"`
	// AspirationWindow is the half-width of the window centered on the
	// previous iteration's score.
	AspirationWindow int `json:"aspiration_window"`

	// QuiesceFloor is the (negative) quiescence depth at which the search
	// settles for the stand-pat score.
	QuiesceFloor int `json:"quiesce_floor"`

	LogSearchStats bool `json:"log_search_stats"`
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:         0,
		TimeBudgetMs:     0,
		TTEntries:        1 << 20,
		EnableAspiration: true,
		AspirationWindow: 25,
		QuiesceFloor:     -10,
		LogSearchStats:   false,
	}
}
