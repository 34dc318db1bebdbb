package sim

import "fmt"

// Checker watches the two lines and verifies line discipline: data
// bits change only while the clock is low; an edge during clock high
// is a start or stop and must land on a byte boundary, after the
// acknowledge bit.
type Checker struct {
	prevSCL, prevSDA bool
	started          bool

	inTransfer bool
	bits       int

	violations []string
	cycle      int
}

// NewChecker creates a Checker. Lines idle high.
func NewChecker() *Checker {
	return &Checker{prevSCL: true, prevSDA: true}
}

// Tick observes the resolved line levels for one cycle.
func (c *Checker) Tick(scl, sda bool) {
	defer func() {
		c.prevSCL, c.prevSDA = scl, sda
		c.started = true
		c.cycle++
	}()
	if !c.started {
		return
	}

	if scl && !c.prevSCL && c.inTransfer {
		c.bits++
	}

	if scl && c.prevSCL && sda != c.prevSDA {
		// A start from idle sees no prior edges. Otherwise the clock
		// pulses 9 times per byte plus once more to set up the stop or
		// repeated start, so a legal edge lands at 9n+1.
		if !(c.bits == 0 || c.bits%9 == 1) {
			c.violations = append(c.violations,
				fmt.Sprintf("cycle %d: data edge %d clocks into a byte", c.cycle, c.bits%9))
		}
		if sda {
			c.inTransfer = false
		} else {
			c.inTransfer = true
			c.bits = 0
		}
	}
}

// Violations reports every observed protocol violation.
func (c *Checker) Violations() []string {
	return c.violations
}
