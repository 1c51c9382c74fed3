package sim

import "time"

// Clock is a manually advanced clock. Every advance is forwarded to the
// registered hooks so that physics progresses with simulated time.
// It is not safe for concurrent use.
type Clock struct {
	now   time.Time
	hooks []func(dt time.Duration)
}

// NewClock creates a clock reading start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the simulated time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Sleep advances the clock by d.
func (c *Clock) Sleep(d time.Duration) {
	c.Advance(d)
}

// Advance moves the clock forward by d. Non-positive values are ignored.
func (c *Clock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}

	c.now = c.now.Add(d)

	for _, hook := range c.hooks {
		hook(d)
	}
}

// OnAdvance registers fn to run after every advance.
func (c *Clock) OnAdvance(fn func(dt time.Duration)) {
	c.hooks = append(c.hooks, fn)
}
