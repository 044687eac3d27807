package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats collects counters for one search call. They live on the Engine and
// are reset at the start of every search.
type Stats struct {
	Nodes       uint64
	Leaves      uint64
	CacheHits   uint64
	CacheMisses uint64
	BetaCutoffs uint64
	Passes      uint64
	Elapsed     time.Duration
}

// NPS is the node rate over the elapsed time.
func (s Stats) NPS() uint64 {
	ms := s.Elapsed.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	return s.Nodes * 1000 / uint64(ms)
}

// MarshalZerologObject lets a Stats value be logged with Event.Object.
func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("leaves", s.Leaves).
		Uint64("cache_hits", s.CacheHits).
		Uint64("cache_misses", s.CacheMisses).
		Uint64("beta_cutoffs", s.BetaCutoffs).
		Uint64("passes", s.Passes).
		Dur("elapsed", s.Elapsed).
		Uint64("nps", s.NPS())
}
