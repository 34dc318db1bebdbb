package sim

import "github.com/veletron/oled.go/pkg/i2c"

// Harness connects a controller to a Device through open drain lines.
// Each Step runs one cycle: the controller sees the data line as it was
// left at the end of the previous cycle.
type Harness struct {
	dev      *Device
	checker  *Checker
	devDrive bool
	line     bool
}

// NewHarness wires dev to a controller stepped through Step.
func NewHarness(dev *Device) *Harness {
	return &Harness{dev: dev, checker: NewChecker(), devDrive: true, line: true}
}

// Checker exposes the line discipline checker.
func (h *Harness) Checker() *Checker {
	return h.checker
}

// Step runs one cycle of the controller and the device.
func (h *Harness) Step(tick func(sdaIn bool) i2c.Pins) {
	pins := tick(h.line)
	scl := SCLLine(pins)
	ctrl := !(pins.SDAOE && !pins.SDA)
	h.devDrive = h.dev.Tick(scl, ctrl && h.devDrive)
	h.line = ctrl && h.devDrive
	h.checker.Tick(scl, h.line)
}

// Run steps n cycles.
func (h *Harness) Run(tick func(sdaIn bool) i2c.Pins, n int) {
	for i := 0; i < n; i++ {
		h.Step(tick)
	}
}

// RunUntil steps until done reports true, giving up after max cycles.
// It reports whether done was reached.
func (h *Harness) RunUntil(tick func(sdaIn bool) i2c.Pins, done func() bool, max int) bool {
	for i := 0; i < max; i++ {
		h.Step(tick)
		if done() {
			return true
		}
	}
	return false
}
