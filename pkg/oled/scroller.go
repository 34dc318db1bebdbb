package oled

import (
	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/oled/rom"
)

// Scroller scrolls the screen up one line.  It replays the scroll
// sequence, patching the column address and display start line bytes so
// each scroll shifts the window by one more line and blanks the row that
// wraps around.  Adjusted tracks how many lines the window is currently
// shifted, modulo 16; the Locator folds it back into row addressing.
type Scroller struct {
	w        *Writer
	adjusted uint8
}

// NewScroller returns a Scroller for the device at addr reading the
// scroll sequence from im through its own port.
func NewScroller(addr uint8, im *rom.Image) *Scroller {
	s := &Scroller{w: NewWriter(addr, im)}

	// The marked positions needing a command byte rewrite.  The lower
	// column and start line marks sit one byte before their argument:
	// the former behind a continuation control byte, the latter behind
	// its opcode.
	markIHCA, _ := im.ScrollMark(rom.MarkInitialHigherColumnAddress)
	markDSL, _ := im.ScrollMark(rom.MarkDisplayStartLine)
	markLCA := make(map[int]bool, 8)
	for i := 0; i < 8; i++ {
		off, _ := im.ScrollMark(rom.MarkLowerColumnAddress(i))
		markLCA[off+1] = true
	}

	s.w.SetPatch(func(written int, b byte) byte {
		switch {
		case written == markIHCA:
			return b + s.adjusted>>1
		case markLCA[written]:
			return b + (s.adjusted&1)<<3
		case written == markDSL+1:
			if s.adjusted == 15 {
				return 0
			}
			return 8 + s.adjusted*8
		}
		return b
	})
	return s
}

// Start begins a scroll.  Calling it while busy is ignored.
func (s *Scroller) Start() {
	if s.w.Busy() {
		return
	}
	s.w.Start(rom.SeqScroll)
}

// Reset zeroes the scroll position.  Only valid while idle.
func (s *Scroller) Reset() {
	if !s.w.Busy() {
		s.adjusted = 0
	}
}

// Busy reports whether a scroll is in flight.
func (s *Scroller) Busy() bool { return s.w.Busy() }

// OK reports whether the last scroll was fully acknowledged.
func (s *Scroller) OK() bool { return s.w.OK() }

// Adjusted is the current scroll offset in lines, 0..15.
func (s *Scroller) Adjusted() uint8 { return s.adjusted }

// Tick advances the Scroller one cycle.
func (s *Scroller) Tick(out i2c.BusOut) i2c.BusIn {
	wasBusy := s.w.Busy()
	in := s.w.Tick(out)
	if wasBusy && !s.w.Busy() && s.w.OK() {
		s.adjusted = (s.adjusted + 1) & 0x0F
	}
	return in
}
