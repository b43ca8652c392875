package core

import "time"

type Clock struct {
	startTime time.Time
	elapsed   time.Duration
	now       func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Updates the clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if !c.startTime.IsZero() {
		c.elapsed = c.timeNow().Sub(c.startTime)
	}
}

// Starts the clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.timeNow()
	c.elapsed = 0
}

// Stops the clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.Update()
	c.startTime = time.Time{}
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

func (c *Clock) timeNow() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
