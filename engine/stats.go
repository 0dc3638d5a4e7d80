package engine

import "time"

// SearchStats accumulates counters over one Search call. The struct is
// reset at the start of every search and read after it returns; the search
// itself runs on a single goroutine, so plain ints are fine.
type SearchStats struct {
	Nodes           int64 `json:"nodes"`
	QNodes          int64 `json:"qnodes"`
	BetaCutoffs     int64 `json:"beta_cutoffs"`
	TTCutoffs       int64 `json:"tt_cutoffs"`
	AspirationLows  int64 `json:"aspiration_fail_lows"`
	AspirationHighs int64 `json:"aspiration_fail_highs"`
	CompletedDepth  int   `json:"completed_depth"`

	Start          time.Time       `json:"-"`
	DepthDurations []time.Duration `json:"-"`
}
