// Package clk provides the tick generator used to derive bus timing
// from a reference clock.
package clk

import "fmt"

// Counter divides a reference clock down to a target rate, exposing a
// mid-period pulse and a period-boundary pulse. The consumer toggles
// its output line on Full and stages data on Half, so data is stable
// before the line rises.
type Counter struct {
	max     int
	half    int
	count   int
	enabled bool
}

// NewCounter creates a Counter dividing refHz down to hz.
func NewCounter(refHz, hz int) (*Counter, error) {
	if hz <= 0 || refHz <= 0 {
		return nil, fmt.Errorf("invalid clock rates: ref %dHz, target %dHz", refHz, hz)
	}
	max := refHz / hz
	half := max / 2
	if !(0 < half && half < max-1) {
		return nil, fmt.Errorf("cannot count to %dHz with %dHz clock; !(0 < %d < %d)", hz, refHz, half, max-1)
	}
	return &Counter{max: max, half: half}, nil
}

// SetEnable starts or stops the counter. Disabling resets the count.
func (c *Counter) SetEnable(en bool) {
	c.enabled = en
	if !en {
		c.count = 0
	}
}

// Enabled reports whether the counter is running.
func (c *Counter) Enabled() bool { return c.enabled }

// Half reports the mid-period pulse for the current tick.
func (c *Counter) Half() bool { return c.enabled && c.count == c.half }

// Full reports the period-boundary pulse for the current tick.
func (c *Counter) Full() bool { return c.enabled && c.count == c.max-1 }

// Tick advances the counter one reference clock cycle.
func (c *Counter) Tick() {
	if !c.enabled {
		c.count = 0
		return
	}
	if c.count < c.max-1 {
		c.count++
	} else {
		c.count = 0
	}
}
