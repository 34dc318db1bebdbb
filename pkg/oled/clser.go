package oled

import (
	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/sh1107"
)

// Clser blanks the whole display RAM, page by page.  Each page is
// addressed with a command transmission and then filled with 128 zero
// bytes in a data transmission; the column address only needs resetting
// once, before page zero.
type Clser struct {
	script []i2c.Transfer
	snd    sender
}

// NewClser returns a Clser for the device at addr.
func NewClser(addr uint8) *Clser {
	cmdCtrl := sh1107.ControlByte{Channel: sh1107.ChannelCommand}.Byte()
	dataCtrl := sh1107.ControlByte{Channel: sh1107.ChannelData}.Byte()

	var script []i2c.Transfer
	for page := uint8(0); page < 16; page++ {
		script = append(script,
			i2c.StartTransfer(i2c.Write, addr),
			i2c.DataTransfer(cmdCtrl))
		if page == 0 {
			script = append(script,
				i2c.DataTransfer(sh1107.SetLowerColumnAddress{}.Bytes()[0]),
				i2c.DataTransfer(sh1107.SetHigherColumnAddress{}.Bytes()[0]))
		}
		script = append(script,
			i2c.DataTransfer(sh1107.SetPageAddress{Page: page}.Bytes()[0]),
			i2c.StartTransfer(i2c.Write, addr),
			i2c.DataTransfer(dataCtrl))
		for i := 0; i < 128; i++ {
			script = append(script, i2c.DataTransfer(0))
		}
	}
	return &Clser{script: script}
}

// Start begins a clear.  Calling it while busy is ignored.
func (c *Clser) Start() {
	if c.snd.busy {
		return
	}
	c.snd.start(c.script)
}

// Busy reports whether a clear is in flight.
func (c *Clser) Busy() bool { return c.snd.busy }

// OK reports whether the last clear was fully acknowledged.
func (c *Clser) OK() bool { return c.snd.ok }

// Tick advances the Clser one cycle.
func (c *Clser) Tick(out i2c.BusOut) i2c.BusIn {
	return c.snd.tick(out)
}
