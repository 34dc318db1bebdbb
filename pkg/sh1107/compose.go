package sh1107

// Mark labels a position inside a composed byte stream.  Marks occupy no
// bytes; ComposeWithMarks reports where each one landed so callers can
// patch the stream later.
type Mark string

func (Mark) item() {}

// Compose encodes each run of commands and data into the smallest control
// byte framing.  If everything from some point on shares one channel, a
// single non-continuation control byte introduces the rest; before that
// point every payload byte gets its own continuation control byte.
func Compose(runs ...[]Item) [][]byte {
	out, _ := ComposeWithMarks(runs...)
	return out
}

// ComposeWithMarks is Compose plus the stream offset of every Mark,
// counted across all runs.
func ComposeWithMarks(runs ...[]Item) ([][]byte, map[Mark]int) {
	marks := make(map[Mark]int)
	out := make([][]byte, 0, len(runs))
	off := 0
	for _, run := range runs {
		b := composeRun(run, marks, off)
		out = append(out, b)
		off += len(b)
	}
	return out, marks
}

func composeRun(items []Item, marks map[Mark]int, base int) []byte {
	// Channel per item; -1 for marks, which take no bytes.
	chans := make([]int8, len(items))
	for i, it := range items {
		switch it.(type) {
		case Mark:
			chans[i] = -1
		case DataBytes:
			chans[i] = int8(ChannelData)
		default:
			chans[i] = int8(ChannelCommand)
		}
	}

	var out []byte
	tail := false
	for i, it := range items {
		if m, ok := it.(Mark); ok {
			marks[m] = base + len(out)
			continue
		}
		sq := it.(Sequence)
		ch := Channel(chans[i])

		if !tail {
			same := true
			for _, c := range chans[i:] {
				if c >= 0 && c != chans[i] {
					same = false
					break
				}
			}
			if same {
				tail = true
				out = append(out, ControlByte{Channel: ch}.Byte())
			}
		}

		if tail {
			out = append(out, sq.Bytes()...)
		} else {
			for _, b := range sq.Bytes() {
				out = append(out, ControlByte{Continuation: true, Channel: ch}.Byte(), b)
			}
		}
	}
	return out
}
