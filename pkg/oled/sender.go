package oled

import "github.com/veletron/oled.go/pkg/i2c"

type senderState int

const (
	sndIdle senderState = iota
	sndPush
	sndStrobe
	sndWait
	sndFin
)

// sender streams a fixed script of transfers to the engine, one byte per
// acknowledgment.  The byte immediately after a start only needs fifo
// room; every later byte additionally waits for the previous one to be
// acknowledged.  Any lost acknowledgment aborts the rest of the script.
type sender struct {
	script []i2c.Transfer

	st         senderState
	pos        int
	afterStart bool

	busy bool
	ok   bool
}

func (s *sender) start(script []i2c.Transfer) {
	s.script = script
	s.pos = 0
	s.afterStart = false
	s.busy = true
	s.ok = true
	s.st = sndPush
}

func (s *sender) tick(out i2c.BusOut) i2c.BusIn {
	var in i2c.BusIn

	switch s.st {
	case sndIdle:

	case sndPush:
		if s.pos >= len(s.script) {
			s.st = sndFin
			break
		}
		t := s.script[s.pos]
		ready := out.WReady
		if !s.afterStart && s.pos > 0 {
			ready = out.Busy && out.Ack && out.WReady
			if !out.Busy {
				s.abort()
				break
			}
		}
		if ready {
			in.WData = t
			in.WEn = true
			s.afterStart = t.Kind == i2c.KindStart
			s.pos++
			if s.pos == 1 {
				s.st = sndStrobe
			} else {
				s.st = sndWait
			}
		}

	case sndStrobe:
		in.Stb = true
		s.st = sndWait

	case sndWait:
		// One settle cycle so the ack from the byte just queued is
		// not confused with the previous byte's.
		s.st = sndPush

	case sndFin:
		if !out.Busy && out.Ack && out.WReady {
			s.busy = false
			s.st = sndIdle
		} else if !out.Busy {
			s.abort()
		}
	}

	return in
}

func (s *sender) abort() {
	s.busy = false
	s.ok = false
	s.st = sndIdle
}
