package oled

import (
	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/oled/rom"
)

// PatchFunc rewrites a single streamed ROM byte.  written is how many
// payload bytes of the sequence were already sent.
type PatchFunc func(written int, b byte) byte

type writerState int

const (
	wrIdle writerState = iota
	wrAddrOffset0
	wrAddrOffset1
	wrAddrLen0
	wrAddrLen1
	wrAddrPayload
	wrStrobe
	wrLoop
	wrSendLatch
	wrSendWait
	wrBreakNext0
	wrBreakNext1
	wrBreakLatch
	wrFin
)

// Writer replays one ROM sequence over the bus: it looks the sequence up
// in the index, streams each run as its own transmission (runs after the
// first via repeated start), and stops on the zero next-run length.  A
// transmission that loses the bus or gets no acknowledgment aborts the
// whole sequence; there are no retries.
type Writer struct {
	addr  uint8
	bus   *rom.Bus
	patch PatchFunc

	st      writerState
	index   int
	stb     bool
	addrReg int
	offset  int
	remain  int
	written int

	busy bool
	ok   bool
}

// NewWriter returns a Writer that reads im through its own port and
// addresses the device at addr.
func NewWriter(addr uint8, im *rom.Image) *Writer {
	return &Writer{addr: addr, bus: im.NewBus(), ok: true}
}

// SetPatch installs a per-byte rewrite hook, or removes it when nil.
func (w *Writer) SetPatch(f PatchFunc) {
	w.patch = f
}

// Start requests replay of the sequence at index.  It takes effect on
// the next Tick; calling it while busy is a caller error and is ignored.
func (w *Writer) Start(index int) {
	if w.busy {
		return
	}
	w.index = index
	w.stb = true
}

// Busy reports whether a replay is in flight.
func (w *Writer) Busy() bool { return w.busy }

// OK reports whether the last replay ran to completion with every byte
// acknowledged.
func (w *Writer) OK() bool { return w.ok }

func (w *Writer) setAddr(a int) {
	w.addrReg = a
	w.bus.SetAddr(a)
}

// Tick advances the Writer one cycle.  out is the engine's output from
// the previous tick; the returned BusIn is the engine input the Writer
// drives this tick.
func (w *Writer) Tick(out i2c.BusOut) i2c.BusIn {
	var in i2c.BusIn

	switch w.st {
	case wrIdle:
		if w.stb {
			w.stb = false
			w.setAddr(w.index * 4)
			w.busy = true
			w.written = 0
			w.st = wrAddrOffset0
		}

	case wrAddrOffset0:
		w.setAddr(w.addrReg + 1)
		w.st = wrAddrOffset1

	case wrAddrOffset1:
		w.offset = int(w.bus.Data())
		w.setAddr(w.addrReg + 1)
		w.st = wrAddrLen0

	case wrAddrLen0:
		w.offset |= int(w.bus.Data()) << 8
		w.setAddr(w.addrReg + 1)
		w.st = wrAddrLen1

	case wrAddrLen1:
		w.remain = int(w.bus.Data())
		w.setAddr(w.offset)
		w.st = wrAddrPayload

	case wrAddrPayload:
		w.remain |= int(w.bus.Data()) << 8
		in.WData = i2c.StartTransfer(i2c.Write, w.addr)
		in.WEn = true
		w.st = wrStrobe

	case wrStrobe:
		in.Stb = true
		w.st = wrLoop

	case wrLoop:
		if w.remain == 0 {
			w.setAddr(w.offset + 1)
			w.offset++
			w.st = wrBreakNext0
		} else if out.WReady {
			b := w.bus.Data()
			if w.patch != nil {
				b = w.patch(w.written, b)
			}
			in.WData = i2c.DataTransfer(b)
			in.WEn = true
			w.setAddr(w.offset + 1)
			w.offset++
			w.remain--
			w.written++
			w.st = wrSendLatch
		}

	case wrSendLatch:
		w.st = wrSendWait

	case wrSendWait:
		if out.Busy && out.Ack && out.WReady {
			w.st = wrLoop
		} else if !out.Busy {
			w.abort()
		}

	case wrBreakNext0:
		w.remain = int(w.bus.Data())
		w.setAddr(w.offset + 1)
		w.offset++
		w.st = wrBreakNext1

	case wrBreakNext1:
		next := w.remain | int(w.bus.Data())<<8
		if next == 0 {
			w.st = wrFin
		} else {
			w.remain = next
			in.WData = i2c.StartTransfer(i2c.Write, w.addr)
			in.WEn = true
			w.st = wrBreakLatch
		}

	case wrBreakLatch:
		w.st = wrLoop

	case wrFin:
		if !out.Busy && out.Ack && out.WReady {
			w.busy = false
			w.ok = true
			w.st = wrIdle
		} else if !out.Busy {
			w.abort()
		}
	}

	w.bus.Tick()
	return in
}

func (w *Writer) abort() {
	w.busy = false
	w.ok = false
	w.st = wrIdle
}
