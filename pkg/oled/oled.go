// Package oled drives an SH1107 display as a 16x16 character terminal.
// An OLED owns a bus engine and a handful of sequencers that take turns
// on it: a ROM writer replaying canned command sequences, a locator for
// cursor addressing, a clser for screen blanking and a scroller that
// shifts the display window.  Commands and their arguments arrive as
// bytes through a small queue and each reports success or failure when
// it completes.
package oled

import (
	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/oled/font"
	"github.com/veletron/oled.go/pkg/oled/rom"
)

// DefaultAddr is the SH1107's bus address with SA0 low.
const DefaultAddr uint8 = 0x3C

// Command is the first byte of each queued request.
type Command byte

// Commands.  LOCATE takes a row and a column byte, PRINT a count byte
// and that many payload bytes, PRINT_BYTE the byte to show in hex.  The
// rest take no arguments.
const (
	CommandNop        Command = 0x00
	CommandInit       Command = 0x01
	CommandDisplayOn  Command = 0x02
	CommandDisplayOff Command = 0x03
	CommandCls        Command = 0x04
	CommandLocate     Command = 0x05
	CommandPrint      Command = 0x06
	CommandCursorOn   Command = 0x07
	CommandCursorOff  Command = 0x08
	CommandID         Command = 0x09
	CommandPrintByte  Command = 0x0A
)

// Result is the completion status of the most recent command.
type Result byte

// Results.  The result reads BUSY from command acceptance until the
// command finishes.
const (
	ResultSuccess Result = 0
	ResultBusy    Result = 1
	ResultFailure Result = 2
)

const queueDepth = 256

type oledState int

const (
	stIdle oledState = iota
	stWriterWait
	stClserWait
	stClsLocate
	stLocateRow
	stLocateCol
	stLocateWait
	stPrintCount
	stPrintData
	stPrintChpr
	stIDStart
	stIDStrobe
	stIDControl
	stIDStartRead
	stIDQueueRead
	stIDRecv
	stIDRecvDone
	stIDFirstHalf
	stIDSecondHalf
	stPrintByteStart
	stPrintByteFirst
	stPrintByteSecond
)

type chprState int

const (
	chIdle chprState = iota
	chWriterWait
	chWriterWaitScroll
	chScrollerWait
	chLocatorWait
)

// OLED is the terminal controller.  All parts advance together, one
// Tick per reference clock cycle.
type OLED struct {
	addr uint8

	eng      *i2c.Engine
	writer   *Writer
	locator  *Locator
	clser    *Clser
	scroller *Scroller

	queue  []byte
	result Result

	row, col uint8
	cursor   bool

	st        oledState
	remaining uint8
	locRow    uint8

	ch       chprState
	chprData byte
	chprRun  bool
	chprOK   bool

	idRecvd byte
	hexLow  byte
}

// New builds an OLED for the device at DefaultAddr, clocked at refHz
// and driving the bus at speedHz.
func New(refHz, speedHz int) (*OLED, error) {
	eng, err := i2c.NewEngine(refHz, speedHz)
	if err != nil {
		return nil, err
	}
	im := rom.Build(font.New())
	o := &OLED{
		addr:     DefaultAddr,
		eng:      eng,
		writer:   NewWriter(DefaultAddr, im),
		clser:    NewClser(DefaultAddr),
		scroller: NewScroller(DefaultAddr, im),
		row:      1,
		col:      1,
	}
	o.locator = NewLocator(DefaultAddr, o.scroller.Adjusted)
	return o, nil
}

// Enqueue adds one command or argument byte.  It reports false when the
// queue is full and the byte was dropped.
func (o *OLED) Enqueue(b byte) bool {
	if len(o.queue) >= queueDepth {
		return false
	}
	o.queue = append(o.queue, b)
	return true
}

// PrintRequest encodes text as one or more print requests, splitting
// at the count byte's limit.
func PrintRequest(text []byte) []byte {
	cmd := make([]byte, 0, len(text)+2*(len(text)/255+1))
	for len(text) > 255 {
		cmd = append(cmd, byte(CommandPrint), 255)
		cmd = append(cmd, text[:255]...)
		text = text[255:]
	}
	cmd = append(cmd, byte(CommandPrint), byte(len(text)))
	return append(cmd, text...)
}

// Result is the status of the most recent command.
func (o *OLED) Result() Result { return o.result }

// Row is the 1-based cursor row.
func (o *OLED) Row() uint8 { return o.row }

// Col is the 1-based cursor column.
func (o *OLED) Col() uint8 { return o.col }

// Cursor reports whether the cursor is enabled.
func (o *OLED) Cursor() bool { return o.cursor }

// Tick advances the controller one reference clock cycle.  sdaIn is the
// sampled data line; the returned Pins are the controller's line drive
// for this cycle.
func (o *OLED) Tick(sdaIn bool) i2c.Pins {
	out := o.eng.Out()

	own := o.fsm(out)
	o.chpr(out)

	wIn := o.writer.Tick(out)
	lIn := o.locator.Tick(out)
	cIn := o.clser.Tick(out)
	sIn := o.scroller.Tick(out)

	// Arbitrate after the sequencers have run so one strobed this
	// cycle gets the bus before its first push.  At most one is ever
	// active; the top level serializes them.
	var in i2c.BusIn
	switch o.selected() {
	case selWriter:
		in = wIn
	case selLocator:
		in = lIn
	case selClser:
		in = cIn
	case selScroller:
		in = sIn
	default:
		in = own
	}

	o.eng.Tick(in, sdaIn)
	return o.eng.Pins()
}

type selection int

const (
	selOwn selection = iota
	selWriter
	selLocator
	selClser
	selScroller
)

func (o *OLED) selected() selection {
	switch {
	case o.writer.Busy():
		return selWriter
	case o.locator.Busy():
		return selLocator
	case o.clser.Busy():
		return selClser
	case o.scroller.Busy():
		return selScroller
	}
	return selOwn
}

func (o *OLED) pop() byte {
	b := o.queue[0]
	o.queue = o.queue[1:]
	return b
}

func (o *OLED) finish(ok bool) {
	if ok {
		o.result = ResultSuccess
	} else {
		o.result = ResultFailure
	}
	o.st = stIdle
}

func (o *OLED) fsm(out i2c.BusOut) i2c.BusIn {
	var in i2c.BusIn

	switch o.st {
	case stIdle:
		if len(o.queue) == 0 || o.selected() != selOwn || !out.WReady {
			break
		}
		o.result = ResultBusy
		switch Command(o.pop()) {
		case CommandNop:
			o.result = ResultSuccess

		case CommandInit:
			o.writer.Start(rom.SeqInit)
			o.row, o.col = 1, 1
			o.scroller.Reset()
			o.st = stWriterWait

		case CommandDisplayOn:
			o.writer.Start(rom.SeqDisplayOn)
			o.st = stWriterWait

		case CommandDisplayOff:
			o.writer.Start(rom.SeqDisplayOff)
			o.st = stWriterWait

		case CommandCls:
			o.clser.Start()
			o.row, o.col = 1, 1
			o.st = stClserWait

		case CommandLocate:
			o.st = stLocateRow

		case CommandPrint:
			o.st = stPrintCount

		case CommandCursorOn:
			o.cursor = true
			o.result = ResultSuccess

		case CommandCursorOff:
			o.cursor = false
			o.result = ResultSuccess

		case CommandID:
			o.st = stIDStart

		case CommandPrintByte:
			o.st = stPrintByteStart

		default:
			o.result = ResultFailure
		}

	case stWriterWait:
		if !o.writer.Busy() {
			o.finish(o.writer.OK())
		}

	case stClserWait:
		if !o.clser.Busy() {
			o.locator.Start(o.row, o.col)
			o.st = stClsLocate
		}

	case stClsLocate:
		if !o.locator.Busy() {
			o.finish(o.clser.OK() && o.locator.OK())
		}

	case stLocateRow:
		if len(o.queue) > 0 {
			// A zero argument leaves that axis where it is.
			o.locRow = o.pop()
			if o.locRow != 0 {
				o.row = o.locRow
			}
			o.st = stLocateCol
		}

	case stLocateCol:
		if len(o.queue) > 0 {
			locCol := o.pop()
			if locCol != 0 {
				o.col = locCol
			}
			o.locator.Start(o.locRow, locCol)
			o.st = stLocateWait
		}

	case stLocateWait:
		if !o.locator.Busy() {
			o.finish(o.locator.OK())
		}

	case stPrintCount:
		if len(o.queue) > 0 {
			o.remaining = o.pop()
			if o.remaining == 0 {
				o.finish(true)
			} else {
				o.st = stPrintData
			}
		}

	case stPrintData:
		if len(o.queue) > 0 {
			o.startChpr(o.pop())
			o.st = stPrintChpr
		}

	case stPrintChpr:
		if !o.chprRun {
			if !o.chprOK {
				o.finish(false)
			} else if o.remaining == 1 {
				o.finish(true)
			} else {
				o.remaining--
				o.st = stPrintData
			}
		}

	case stIDStart:
		in.WData = i2c.StartTransfer(i2c.Write, o.addr)
		in.WEn = true
		o.st = stIDStrobe

	case stIDStrobe:
		in.Stb = true
		o.st = stIDControl

	case stIDControl:
		if out.Busy && out.Ack && out.WReady {
			in.WData = i2c.DataTransfer(0x00) // command, no continuation
			in.WEn = true
			o.st = stIDStartRead
		} else if !out.Busy {
			o.finish(false)
		}

	case stIDStartRead:
		if out.Busy && out.Ack && out.WReady {
			in.WData = i2c.StartTransfer(i2c.Read, o.addr)
			in.WEn = true
			o.st = stIDQueueRead
		} else if !out.Busy {
			o.finish(false)
		}

	case stIDQueueRead:
		if out.Busy && out.Ack && out.WReady {
			// One queued data entry makes the engine read one byte.
			in.WData = i2c.DataTransfer(0x00)
			in.WEn = true
			o.st = stIDRecv
		} else if !out.Busy {
			o.finish(false)
		}

	case stIDRecv:
		if out.RReady {
			o.idRecvd = out.RData
			in.REn = true
			o.st = stIDRecvDone
		} else if !out.Busy {
			o.finish(false)
		}

	case stIDRecvDone:
		if !out.Busy {
			o.startChpr(hexDigit(o.idRecvd >> 4))
			o.st = stIDFirstHalf
		}

	case stIDFirstHalf:
		if !o.chprRun {
			o.startChpr(hexDigit(o.idRecvd & 0x0F))
			o.st = stIDSecondHalf
		}

	case stIDSecondHalf:
		if !o.chprRun {
			o.finish(o.chprOK)
		}

	case stPrintByteStart:
		if len(o.queue) > 0 {
			b := o.pop()
			o.hexLow = b & 0x0F
			o.startChpr(hexDigit(b >> 4))
			o.st = stPrintByteFirst
		}

	case stPrintByteFirst:
		if !o.chprRun {
			o.startChpr(hexDigit(o.hexLow))
			o.st = stPrintByteSecond
		}

	case stPrintByteSecond:
		if !o.chprRun {
			o.finish(o.chprOK)
		}
	}

	return in
}

func hexDigit(n byte) byte {
	if n > 9 {
		return 'A' + n - 10
	}
	return '0' + n
}

func (o *OLED) startChpr(b byte) {
	o.chprData = b
	o.chprRun = true
	o.chprOK = true
}

// chpr prints one character at the cursor: carriage return and line
// feed move the cursor (scrolling off the bottom row), anything else
// draws the glyph and advances.  The locator is re-aimed afterwards so
// display RAM stays in step with the cursor.
func (o *OLED) chpr(out i2c.BusOut) {
	switch o.ch {
	case chIdle:
		if !o.chprRun {
			break
		}
		switch o.chprData {
		case '\r':
			o.col = 1
			o.locator.Start(0, 1)
			o.ch = chLocatorWait
		case '\n':
			if o.row == 16 {
				o.col = 1
				o.scroller.Start()
				o.ch = chScrollerWait
			} else {
				o.col = 1
				o.row++
				o.locator.Start(o.row, 1)
				o.ch = chLocatorWait
			}
		default:
			o.writer.Start(rom.SeqChar + int(o.chprData))
			if o.col == 16 {
				if o.row == 16 {
					o.col = 1
					o.ch = chWriterWaitScroll
				} else {
					o.col = 1
					o.row++
					o.ch = chWriterWait
				}
			} else {
				o.col++
				o.ch = chWriterWait
			}
		}

	case chWriterWait:
		if !o.writer.Busy() {
			if !o.writer.OK() {
				o.chprOK = false
			}
			o.locator.Start(o.row, o.col)
			o.ch = chLocatorWait
		}

	case chWriterWaitScroll:
		if !o.writer.Busy() {
			if !o.writer.OK() {
				o.chprOK = false
			}
			o.scroller.Start()
			o.ch = chScrollerWait
		}

	case chScrollerWait:
		if !o.scroller.Busy() {
			if !o.scroller.OK() {
				o.chprOK = false
			}
			o.locator.Start(o.row, o.col)
			o.ch = chLocatorWait
		}

	case chLocatorWait:
		if !o.locator.Busy() {
			if !o.locator.OK() {
				o.chprOK = false
			}
			o.chprRun = false
			o.ch = chIdle
		}
	}
}
