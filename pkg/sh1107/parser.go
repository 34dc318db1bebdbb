package sh1107

// ParseState is where the incremental parser is within the control byte
// framing.
type ParseState int

const (
	// StateControl expects a control byte.
	StateControl ParseState = iota
	// StateControlPartialCommand expects a control byte while a command
	// sits half decoded.  Only a Command channel may follow.
	StateControlPartialCommand
	// StateCommand expects a command byte.
	StateCommand
	// StateData expects a display RAM byte.
	StateData
)

func (s ParseState) String() string {
	switch s {
	case StateControl:
		return "Control"
	case StateControlPartialCommand:
		return "ControlPartialCommand"
	case StateCommand:
		return "Command"
	case StateData:
		return "Data"
	}
	return "ParseState(?)"
}

// Parser incrementally decodes a control byte framed stream back into
// commands and data runs.  Feed may be called any number of times with
// any split of the stream.
type Parser struct {
	state        ParseState
	continuation bool

	buf     []byte
	partial []byte

	validFinish   bool
	unrecoverable bool
}

// NewParser returns a parser at the start of a stream.
func NewParser() *Parser {
	return &Parser{
		state:        StateControl,
		continuation: true,
	}
}

// Feed consumes in and returns the sequences completed by it.  A run of
// data bytes within one call coalesces into a single DataBytes.  After an
// unrecoverable byte Feed consumes nothing and returns nil.
func (p *Parser) Feed(in []byte) []Sequence {
	if p.unrecoverable {
		return nil
	}

	p.buf = append(p.buf, in...)

	var out []Sequence
	for len(p.buf) > 0 {
		b := p.buf[0]

		switch p.state {
		case StateControl, StateControlPartialCommand:
			cb, ok := ParseControlByte(b)
			if !ok {
				p.fail()
				return out
			}
			if p.state == StateControlPartialCommand && cb.Channel != ChannelCommand {
				// A half decoded command cannot be followed by data.
				p.fail()
				return out
			}
			p.continuation = cb.Continuation
			if cb.Channel == ChannelCommand {
				p.state = StateCommand
			} else {
				p.state = StateData
			}

		case StateCommand:
			p.partial = append(p.partial, b)
			c, m := ParseCommand(p.partial)
			switch m {
			case NoMatch:
				p.fail()
				return out
			case Matched:
				p.partial = nil
				out = append(out, c)
			}
			if p.continuation {
				if len(p.partial) > 0 {
					p.state = StateControlPartialCommand
				} else {
					p.state = StateControl
				}
			}

		case StateData:
			appended := false
			if n := len(out); n > 0 {
				if d, ok := out[n-1].(DataBytes); ok {
					d.Data = append(d.Data, b)
					out[n-1] = d
					appended = true
				}
			}
			if !appended {
				out = append(out, DataBytes{Data: []byte{b}})
			}
			if p.continuation {
				p.state = StateControl
			}
		}

		p.buf = p.buf[1:]
		p.validFinish = len(p.partial) == 0 &&
			(p.state == StateControl || !p.continuation)
	}

	return out
}

func (p *Parser) fail() {
	p.unrecoverable = true
	p.validFinish = false
}

// State returns the parser's current framing state.
func (p *Parser) State() ParseState { return p.state }

// Continuation returns the continuation flag of the last control byte.
func (p *Parser) Continuation() bool { return p.continuation }

// ValidFinish reports whether the stream may validly stop here, with no
// bytes structurally required to follow.
func (p *Parser) ValidFinish() bool { return p.validFinish }

// Unrecoverable reports whether a byte arrived that no valid stream
// contains at that point.  The parser stays stuck once this is set.
func (p *Parser) Unrecoverable() bool { return p.unrecoverable }

// Leftover returns the bytes accepted by Feed but not yet consumed.  It
// is only ever non-empty after an unrecoverable byte.
func (p *Parser) Leftover() []byte { return p.buf }

// Partial returns the accumulated bytes of a command still being decoded.
func (p *Parser) Partial() []byte { return p.partial }
