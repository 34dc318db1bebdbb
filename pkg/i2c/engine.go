// Package i2c implements the bus master engine: a bit-level two-wire
// protocol state machine advanced one step per reference clock tick.
package i2c

import (
	"fmt"

	"github.com/veletron/oled.go/pkg/clk"
)

// ValidSpeeds lists the supported bus frequencies in Hz.
var ValidSpeeds = []int{100_000, 400_000, 1_000_000, 2_000_000}

type state int

const (
	stIdle state = iota
	stStartWait
	stWriteBitLow
	stWriteBitHigh
	stWriteAckLow
	stWriteAckHigh
	stReadBitLow
	stReadBitHigh
	stReadBitLastHigh
	stReadAckLow
	stCommonAckHigh
	stRepStartLow
	stRepStartHigh
	stFinLow
	stFinHigh
)

// Engine is the bus master. It accepts one Transfer at a time through
// its input slot plus a one-shot strobe, drives the clock and data
// lines, and reports busy/ack/read status.
//
// A negative acknowledgment is not an error here: it is reported via
// Ack=false and triggers the stop sequence automatically. Enqueueing
// while the slot is occupied or strobing while busy is a caller
// contract violation and is prevented by construction in the embedding
// top level.
type Engine struct {
	counter *clk.Counter

	st    state
	rw    RW
	sr    byte // shift register, current byte
	bitIx int

	in     Transfer
	inFull bool

	rdata  byte
	rReady bool

	busy bool
	ack  bool

	scl, sclOE bool
	sda, sdaOE bool
}

// NewEngine creates an Engine clocked by refHz driving the bus at
// speedHz. speedHz must be one of ValidSpeeds and achievable with the
// given reference clock.
func NewEngine(refHz, speedHz int) (*Engine, error) {
	ok := false
	for _, s := range ValidSpeeds {
		if s == speedHz {
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("unsupported bus speed %dHz", speedHz)
	}
	// Count at twice the bus rate: the line toggles every full period.
	c, err := clk.NewCounter(refHz, speedHz*2)
	if err != nil {
		return nil, err
	}
	return &Engine{
		counter: c,
		ack:     true,
		scl:     true, sclOE: true,
		sda: true, sdaOE: true,
	}, nil
}

// Out reports the engine's status for the current tick.
func (e *Engine) Out() BusOut {
	return BusOut{
		Busy:   e.busy,
		Ack:    e.ack,
		WReady: !e.inFull,
		RReady: e.rReady,
		RData:  e.rdata,
	}
}

// Pins reports the line drive state for the current tick.
func (e *Engine) Pins() Pins {
	return Pins{SCL: e.scl, SCLOE: e.sclOE, SDA: e.sda, SDAOE: e.sdaOE}
}

// Tick advances the engine one reference clock cycle. in carries the
// port values driven by this tick's bus owner; sdaIn is the sampled
// level of the data line.
func (e *Engine) Tick(in BusIn, sdaIn bool) {
	if in.WEn && !e.inFull {
		e.in = in.WData
		e.inFull = true
	}
	if in.REn && e.rReady {
		e.rReady = false
	}

	half := e.counter.Half()
	full := e.counter.Full()
	if full {
		e.scl = !e.scl
	}

	switch e.st {
	case stIdle:
		e.sdaOE = true
		e.sda = true
		e.scl = true
		if in.Stb && e.inFull {
			// START: data line falls while the clock is held high.
			e.busy = true
			e.ack = true
			e.sda = false
			e.counter.SetEnable(true)
			e.rw = e.in.RW
			e.sr = e.in.addressByte()
			e.bitIx = 0
			e.inFull = false
			e.st = stStartWait
		}

	case stStartWait:
		if full {
			e.st = stWriteBitLow
		}

	case stWriteBitLow:
		if half {
			// Stage the next bit while the clock is low. MSB first.
			e.sda = (e.sr>>(7-e.bitIx))&1 == 1
		} else if full {
			e.st = stWriteBitHigh
		}

	case stWriteBitHigh:
		if full {
			if e.bitIx == 7 {
				// Release the data line so the peer can acknowledge.
				e.sdaOE = false
				e.st = stWriteAckLow
			} else {
				e.bitIx++
				e.st = stWriteBitLow
			}
		}

	case stWriteAckLow:
		if full {
			e.st = stWriteAckHigh
		}

	case stWriteAckHigh:
		if half {
			// The addressee pulls the line low to acknowledge. Keep the
			// line released until the end of the cycle, otherwise it can
			// look like a STOP condition.
			e.ack = !sdaIn
			e.st = stCommonAckHigh
		}

	case stReadBitLow:
		if full {
			e.st = stReadBitHigh
		}

	case stReadBitHigh:
		if half {
			if e.bitIx == 7 {
				e.rdata = e.sr | boolBit(sdaIn, 7-e.bitIx)
				e.rReady = true
				e.st = stReadBitLastHigh
				break
			}
			e.sr |= boolBit(sdaIn, 7-e.bitIx)
			e.bitIx++
		}
		if full {
			e.st = stReadBitLow
		}

	case stReadBitLastHigh:
		if full {
			e.st = stReadAckLow
		}

	case stReadAckLow:
		if half {
			// Take the line back and drive our acknowledgment: low to
			// keep reading if another data item is queued, high to end.
			e.sdaOE = true
			e.sda = !(e.inFull && e.in.Kind == KindData)
		} else if full {
			e.st = stCommonAckHigh
		}

	case stCommonAckHigh:
		if full {
			e.commonAck()
		}

	case stRepStartLow:
		if half {
			// Raise the data line so it can fall again mid clock-high.
			e.sda = true
		}
		if full {
			e.st = stRepStartHigh
		}

	case stRepStartHigh:
		if half {
			// Repeated START: data line falls mid clock-high.
			e.sda = false
		} else if full {
			e.st = stWriteBitLow
		}

	case stFinLow:
		if half {
			e.sda = false
		} else if full {
			e.st = stFinHigh
		}

	case stFinHigh:
		if half {
			// STOP: data line rises while the clock is held high.
			e.sda = true
		} else if full {
			e.counter.SetEnable(false)
			e.busy = false
			e.scl = true
			e.st = stIdle
		}
	}

	e.counter.Tick()
}

// commonAck decides what follows an acknowledgment bit by consulting
// the input slot.
func (e *Engine) commonAck() {
	if !e.inFull {
		e.sdaOE = true
		e.st = stFinLow
		return
	}
	t := e.in
	switch {
	case e.ack && t.Kind == KindData && e.rw == Write:
		e.sr = t.Data
		e.bitIx = 0
		e.inFull = false
		e.sdaOE = true
		e.sda = false
		e.st = stWriteBitLow

	case e.ack && t.Kind == KindData && e.rw == Read:
		e.sr = 0
		e.bitIx = 0
		e.inFull = false
		e.sdaOE = false
		e.st = stReadBitLow

	case e.ack && t.Kind == KindStart && e.rw == Write:
		e.rw = t.RW
		e.sr = t.addressByte()
		e.bitIx = 0
		e.inFull = false
		e.sdaOE = true
		e.sda = false
		e.st = stRepStartLow

	default:
		// Consume anything that got queued before the NACK was
		// realised, then stop.
		e.inFull = false
		e.sdaOE = true
		e.st = stFinLow
	}
}

func boolBit(b bool, shift int) byte {
	if b {
		return 1 << shift
	}
	return 0
}
