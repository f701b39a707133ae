package utils

import (
	"math/rand/v2"
	"time"
)

// RandomInterval calls a function repeatedly, waiting a random delay drawn
// uniformly from [min, max] (whole milliseconds, both ends inclusive) before
// each call. The delay is drawn again after every call.
//
// RandomInterval does not own a goroutine: the host advances it from its
// update tick, so the callback always runs on the game loop.
type RandomInterval struct {
	fn        func()
	minMs     int64
	maxMs     int64
	rng       *rand.Rand
	remaining time.Duration
	cleared   bool
}

// NewRandomInterval arms a new interval. A nil rng uses the global source.
// min and max are truncated to whole milliseconds; when min > max they are
// swapped.
func NewRandomInterval(fn func(), min, max time.Duration, rng *rand.Rand) *RandomInterval {
	lo, hi := min.Milliseconds(), max.Milliseconds()
	if lo > hi {
		lo, hi = hi, lo
	}
	ri := &RandomInterval{
		fn:    fn,
		minMs: lo,
		maxMs: hi,
		rng:   rng,
	}
	ri.remaining = ri.nextDelay()
	return ri
}

// NewInterval arms an interval with a fixed period.
func NewInterval(fn func(), period time.Duration) *RandomInterval {
	return NewRandomInterval(fn, period, period, nil)
}

func (ri *RandomInterval) nextDelay() time.Duration {
	span := ri.maxMs - ri.minMs + 1
	var n int64
	if ri.rng != nil {
		n = ri.rng.Int64N(span)
	} else {
		n = rand.Int64N(span)
	}
	return time.Duration(ri.minMs+n) * time.Millisecond
}

// Advance moves the clock by elapsed and invokes the callback once for every
// delay that ran out. A zero-length delay fires at most once per Advance.
func (ri *RandomInterval) Advance(elapsed time.Duration) {
	if ri.cleared {
		return
	}
	ri.remaining -= elapsed
	for ri.remaining <= 0 && !ri.cleared {
		ri.fn()
		next := ri.nextDelay()
		if next <= 0 {
			ri.remaining = 0
			return
		}
		ri.remaining += next
	}
}

// Remaining returns the time left until the next call.
func (ri *RandomInterval) Remaining() time.Duration { return ri.remaining }

// Clear cancels the interval; the callback is never invoked again.
// Clear may be called from inside the callback.
func (ri *RandomInterval) Clear() { ri.cleared = true }

// Cleared reports whether Clear has been called.
func (ri *RandomInterval) Cleared() bool { return ri.cleared }
