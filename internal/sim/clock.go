package sim

import "time"

// Clock paces the simulation at a fixed tick. Long stalls are not replayed:
// elapsed time is capped and at most one step is taken per call.
type Clock struct {
	tick       time.Duration
	maxElapsed time.Duration
	last       time.Time
	started    bool
}

// NewClock creates a clock stepping every tick. Elapsed time above maxElapsed is ignored.
func NewClock(tick, maxElapsed time.Duration) *Clock {
	return &Clock{tick: tick, maxElapsed: maxElapsed}
}

// Ready reports whether a step is due at now and, if so, starts the next tick.
func (c *Clock) Ready(now time.Time) bool {
	if !c.started {
		c.last = now
		c.started = true
	}
	elapsed := now.Sub(c.last)
	if elapsed > c.maxElapsed {
		elapsed = c.maxElapsed
	}
	if elapsed < c.tick {
		return false
	}
	c.last = now
	return true
}

// Reset forgets the last tick so the next call to Ready starts a fresh interval.
func (c *Clock) Reset() {
	c.started = false
}
