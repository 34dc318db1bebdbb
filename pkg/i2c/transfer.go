package i2c

// RW is the transfer direction carried in the address byte's low bit.
type RW uint8

// Transfer directions.
const (
	Write RW = 0
	Read  RW = 1
)

// Kind tags a Transfer.
type Kind uint8

// Transfer kinds.
const (
	// KindData is one payload byte.
	KindData Kind = iota
	// KindStart initiates or re-initiates addressing.
	KindStart
)

// Transfer is one item for the engine's input slot: either a start
// (address + direction) or a single payload byte.
type Transfer struct {
	Kind Kind
	Addr byte // 7-bit peripheral address, KindStart only
	RW   RW   // KindStart only
	Data byte // KindData only
}

// StartTransfer creates a KindStart transfer.
func StartTransfer(rw RW, addr byte) Transfer {
	return Transfer{Kind: KindStart, Addr: addr & 0x7F, RW: rw}
}

// DataTransfer creates a KindData transfer.
func DataTransfer(b byte) Transfer {
	return Transfer{Kind: KindData, Data: b}
}

// addressByte is the first byte clocked out after a start condition:
// 7-bit address then the direction bit, MSB first.
func (t Transfer) addressByte() byte {
	return t.Addr<<1 | byte(t.RW)
}

// BusIn carries the port values driven into the engine for one tick.
// Exactly one owner may drive it per tick.
type BusIn struct {
	WData Transfer // input slot write data
	WEn   bool     // latch WData into the slot
	REn   bool     // consume the read-data slot
	Stb   bool     // begin a transaction from idle
}

// BusOut is the engine's status as observed by its consumers.
type BusOut struct {
	Busy   bool
	Ack    bool // result of the most recent acknowledgment bit
	WReady bool // input slot is empty
	RReady bool // a received byte is available
	RData  byte
}

// Pins is the engine's view of the two bus lines. Lines are
// open-drain: a line is driven low when its output enable is set and
// its level is low, released otherwise.
type Pins struct {
	SCL   bool
	SCLOE bool
	SDA   bool
	SDAOE bool
}
