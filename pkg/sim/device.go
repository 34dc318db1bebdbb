// Package sim provides a bit-level model of an SH1107 peripheral for
// exercising the bus engine and the display controller without
// hardware.
package sim

import (
	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/sh1107"
)

// SCLLine resolves the clock line level from the controller's drive.
func SCLLine(p i2c.Pins) bool {
	return !(p.SCLOE && !p.SCL)
}

// SDALine resolves the data line level from the controller's drive and
// the peripheral's. Both are open drain.
func SDALine(p i2c.Pins, dev bool) bool {
	return !(p.SDAOE && !p.SDA) && dev
}

type devPhase int

const (
	devIdle devPhase = iota
	devShift
	devAck
	devReadBit
	devReadAck
)

// Device is a virtual SH1107. It watches the two lines, acknowledges
// its address, feeds written bytes through a protocol parser and serves
// queued bytes on reads. A NACK can be injected at a chosen byte of a
// transaction to exercise failure paths.
type Device struct {
	addr uint8

	parser *sh1107.Parser

	prevSCL, prevSDA bool
	phase            devPhase
	sr               byte
	bit              int
	isAddr           bool
	reading          bool
	ackNext          bool
	byteIx           int
	drive            bool

	nackAt int

	readData []byte
	readIx   int

	starts   int
	stops    int
	received []byte
	decoded  []sh1107.Sequence
}

// NewDevice returns a Device answering at addr.
func NewDevice(addr uint8) *Device {
	return &Device{
		addr:    addr,
		parser:  sh1107.NewParser(),
		prevSCL: true,
		prevSDA: true,
		drive:   true,
		nackAt:  -1,
	}
}

// NACKAt makes the device withhold its acknowledgment of byte n of each
// transaction, counting the address byte as byte 0. A negative n clears
// the injection.
func (d *Device) NACKAt(n int) { d.nackAt = n }

// SetReadData queues the bytes the device serves on reads.
func (d *Device) SetReadData(b []byte) {
	d.readData = append(d.readData[:0], b...)
	d.readIx = 0
}

// Starts counts start conditions seen, repeated starts included.
func (d *Device) Starts() int { return d.starts }

// Stops counts stop conditions seen.
func (d *Device) Stops() int { return d.stops }

// Received is every data byte acknowledged so far, address bytes
// excluded, in wire order across all transactions.
func (d *Device) Received() []byte { return d.received }

// Parser exposes the protocol parser fed by writes.
func (d *Device) Parser() *sh1107.Parser { return d.parser }

// Decoded is every command and data run recovered from writes so far.
func (d *Device) Decoded() []sh1107.Sequence { return d.decoded }

// Tick advances the device one cycle. scl and sda are the resolved
// line levels; the return value is the device's own data line drive,
// false when it is pulling the line low.
func (d *Device) Tick(scl, sda bool) bool {
	defer func() {
		d.prevSCL = scl
		d.prevSDA = sda
	}()

	if scl && d.prevSCL {
		switch {
		case d.prevSDA && !sda: // start or repeated start
			d.starts++
			d.phase = devShift
			d.sr = 0
			d.bit = 0
			d.isAddr = true
			d.byteIx = 0
			d.drive = true
			return d.drive
		case !d.prevSDA && sda: // stop
			d.stops++
			d.phase = devIdle
			d.drive = true
			return d.drive
		}
	}

	rising := scl && !d.prevSCL
	falling := !scl && d.prevSCL

	switch d.phase {
	case devIdle:

	case devShift:
		if rising {
			d.sr = d.sr<<1 | boolBit(sda)
			d.bit++
		}
		if falling && d.bit == 8 {
			if d.isAddr {
				match := d.sr>>1 == d.addr
				d.reading = d.sr&1 == 1
				d.ackNext = match && d.byteIx != d.nackAt
			} else {
				d.ackNext = d.byteIx != d.nackAt
				if d.ackNext {
					d.received = append(d.received, d.sr)
					d.decoded = append(d.decoded, d.parser.Feed([]byte{d.sr})...)
				}
			}
			d.byteIx++
			d.drive = !d.ackNext
			d.phase = devAck
		}

	case devAck:
		if falling {
			d.drive = true
			if !d.ackNext {
				d.phase = devIdle
			} else if d.reading {
				d.loadReadByte()
				d.phase = devReadBit
				d.presentBit()
			} else {
				d.sr = 0
				d.bit = 0
				d.isAddr = false
				d.phase = devShift
			}
		}

	case devReadBit:
		if falling {
			d.bit++
			if d.bit == 8 {
				d.drive = true
				d.phase = devReadAck
			} else {
				d.presentBit()
			}
		}

	case devReadAck:
		if rising {
			d.ackNext = !sda
		}
		if falling {
			if d.ackNext {
				d.loadReadByte()
				d.bit = 0
				d.phase = devReadBit
				d.presentBit()
			} else {
				d.drive = true
				d.phase = devIdle
			}
		}
	}

	return d.drive
}

func (d *Device) loadReadByte() {
	d.sr = 0xFF
	if d.readIx < len(d.readData) {
		d.sr = d.readData[d.readIx]
		d.readIx++
	}
	d.bit = 0
}

func (d *Device) presentBit() {
	d.drive = d.sr&(0x80>>d.bit) != 0
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
