package pricing

import "sync/atomic"

// Sequencer hands out monotonically increasing generations so callers that
// recompute prices concurrently (debounced keystroke handlers) can discard
// stale results. Compose itself enforces no ordering; only the result of the
// most recently started computation should be applied.
//
//	gen := seq.Next()
//	res, err := pricing.Compose(...)
//	if seq.Fresh(gen) {
//	    apply(res)
//	}
type Sequencer struct {
	latest atomic.Uint64
}

// Next starts a new generation, superseding all previous ones.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Fresh reports whether gen is still the most recent generation.
func (s *Sequencer) Fresh(gen uint64) bool {
	return s.latest.Load() == gen
}
