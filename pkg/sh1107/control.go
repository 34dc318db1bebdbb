package sh1107

// Channel selects what the bytes following a control byte address: the
// command decoder or display RAM.
type Channel uint8

const (
	ChannelCommand Channel = 0
	ChannelData    Channel = 1
)

func (c Channel) String() string {
	switch c {
	case ChannelCommand:
		return "Command"
	case ChannelData:
		return "Data"
	}
	return "Channel(?)"
}

// ControlByte frames every byte run sent to the controller.  Continuation
// set means another control byte follows the next payload byte.
type ControlByte struct {
	Continuation bool
	Channel      Channel
}

// ParseControlByte decodes b.  It reports ok=false when any of the low six
// bits are set, which no control byte ever has.
func ParseControlByte(b byte) (ControlByte, bool) {
	if b&0x3F != 0 {
		return ControlByte{}, false
	}
	return ControlByte{
		Continuation: b&0x80 == 0x80,
		Channel:      Channel(b >> 6 & 1),
	}, true
}

// Byte encodes the control byte for the wire.
func (cb ControlByte) Byte() byte {
	b := byte(cb.Channel) << 6
	if cb.Continuation {
		b |= 0x80
	}
	return b
}
