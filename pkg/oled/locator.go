package oled

import (
	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/sh1107"
)

// Locator points the display's RAM address at a character cell.  The
// panel is mounted with pages running across the screen, so the column
// selects the page and the row selects the column address.  A row or
// column of zero leaves that axis alone.  adjust is the scroll offset:
// rows are remapped modulo 16 so row 1 always names the top line of the
// scrolled screen.
type Locator struct {
	addr   uint8
	adjust func() uint8
	snd    sender
}

// NewLocator returns a Locator for the device at addr.  adjust supplies
// the current scroll offset and may be nil when the screen never
// scrolls.
func NewLocator(addr uint8, adjust func() uint8) *Locator {
	return &Locator{addr: addr, adjust: adjust}
}

// Start begins repositioning.  Calling it while busy is ignored.
func (l *Locator) Start(row, col uint8) {
	if l.snd.busy {
		return
	}

	script := []i2c.Transfer{
		i2c.StartTransfer(i2c.Write, l.addr),
		i2c.DataTransfer(sh1107.ControlByte{Channel: sh1107.ChannelCommand}.Byte()),
	}
	if col != 0 {
		script = append(script,
			i2c.DataTransfer(sh1107.SetPageAddress{Page: 16 - col}.Bytes()[0]))
	}
	if row != 0 {
		var adj uint8
		if l.adjust != nil {
			adj = l.adjust()
		}
		adjusted := (row - 1 + adj) & 0x0F
		script = append(script,
			i2c.DataTransfer(sh1107.SetLowerColumnAddress{Lower: (adjusted & 1) << 3}.Bytes()[0]),
			i2c.DataTransfer(sh1107.SetHigherColumnAddress{Higher: adjusted >> 1}.Bytes()[0]))
	}
	l.snd.start(script)
}

// Busy reports whether a reposition is in flight.
func (l *Locator) Busy() bool { return l.snd.busy }

// OK reports whether the last reposition was fully acknowledged.
func (l *Locator) OK() bool { return l.snd.ok }

// Tick advances the Locator one cycle.
func (l *Locator) Tick(out i2c.BusOut) i2c.BusIn {
	return l.snd.tick(out)
}
