package sh1107

import "fmt"

// Item is anything that can appear in a composed run: a Command, a
// DataBytes run, or a positional Mark.
type Item interface {
	item()
}

// Sequence is a single decoded unit on the wire, either a Command or a
// DataBytes run.
type Sequence interface {
	Item
	Bytes() []byte
}

// Command is a member of the SH1107 command set.
type Command interface {
	Sequence
	command()
}

// cmdTag is embedded by every Command variant.
type cmdTag struct{}

func (cmdTag) item()    {}
func (cmdTag) command() {}

// DataBytes is a run of raw display RAM bytes.
type DataBytes struct {
	Data []byte
}

func (DataBytes) item() {}

func (d DataBytes) Bytes() []byte { return d.Data }

// AddressingMode selects how the address pointer advances after a RAM
// write.
type AddressingMode uint8

const (
	AddressingPage     AddressingMode = 0 // column address increments (POR)
	AddressingVertical AddressingMode = 1 // page address increments
)

// Adc selects segment remap.
type Adc uint8

const (
	AdcNormal  Adc = 0 // POR
	AdcFlipped Adc = 1
)

// ScanDirection selects common output scan direction.
type ScanDirection uint8

const (
	ScanForwards  ScanDirection = 0 // POR
	ScanBackwards ScanDirection = 1
)

// ClockFreq is the oscillator frequency adjustment, in 5% steps from -25%
// to +50%.
type ClockFreq uint8

const (
	FreqNeg25 ClockFreq = iota
	FreqNeg20
	FreqNeg15
	FreqNeg10
	FreqNeg5
	FreqZero // POR
	FreqPos5
	FreqPos10
	FreqPos15
	FreqPos20
	FreqPos25
	FreqPos30
	FreqPos35
	FreqPos40
	FreqPos45
	FreqPos50
)

// Percent returns the adjustment as a signed percentage.
func (f ClockFreq) Percent() int {
	return -25 + int(f)*5
}

// SetLowerColumnAddress sets the low nibble of the column address.
// POR is 0x0.
type SetLowerColumnAddress struct {
	cmdTag
	Lower uint8 // 0x0..0xF
}

func (c SetLowerColumnAddress) Bytes() []byte { return []byte{c.Lower} }

// SetHigherColumnAddress sets the high bits of the column address.
// POR is 0x0.
type SetHigherColumnAddress struct {
	cmdTag
	Higher uint8 // 0x0..0x7
}

func (c SetHigherColumnAddress) Bytes() []byte { return []byte{0x10 | c.Higher} }

type SetMemoryAddressingMode struct {
	cmdTag
	Mode AddressingMode
}

func (c SetMemoryAddressingMode) Bytes() []byte { return []byte{0x20 | byte(c.Mode)} }

// SetContrastControlRegister sets the segment output current.  POR is
// 0x80.
type SetContrastControlRegister struct {
	cmdTag
	Level uint8
}

func (c SetContrastControlRegister) Bytes() []byte { return []byte{0x81, c.Level} }

type SetSegmentRemap struct {
	cmdTag
	Adc Adc
}

func (c SetSegmentRemap) Bytes() []byte { return []byte{0xA0 | byte(c.Adc)} }

// SetMultiplexRatio sets how many commons are actually driven.  POR is
// 128.
type SetMultiplexRatio struct {
	cmdTag
	Ratio uint8 // 1..0x80
}

func (c SetMultiplexRatio) Bytes() []byte { return []byte{0xA8, c.Ratio - 1} }

// SetEntireDisplayOn forces every pixel on regardless of RAM contents.
// POR is off.
type SetEntireDisplayOn struct {
	cmdTag
	On bool
}

func (c SetEntireDisplayOn) Bytes() []byte { return []byte{0xA4 | boolByte(c.On)} }

// SetDisplayReverse inverts the RAM to pixel mapping.  POR is off.
type SetDisplayReverse struct {
	cmdTag
	Reverse bool
}

func (c SetDisplayReverse) Bytes() []byte { return []byte{0xA6 | boolByte(c.Reverse)} }

// SetDisplayOffset maps COM lines to rows with an offset.  POR is 0.
type SetDisplayOffset struct {
	cmdTag
	Offset uint8 // 0..0x7F
}

func (c SetDisplayOffset) Bytes() []byte { return []byte{0xD3, c.Offset} }

// SetDCDC enables the built-in DC-DC converter.  POR is on.
type SetDCDC struct {
	cmdTag
	On bool
}

func (c SetDCDC) Bytes() []byte { return []byte{0xAD, 0x8A | boolByte(c.On)} }

// DisplayOn takes the panel in and out of sleep.  POR is off.
type DisplayOn struct {
	cmdTag
	On bool
}

func (c DisplayOn) Bytes() []byte { return []byte{0xAE | boolByte(c.On)} }

// SetPageAddress sets the page the next RAM write lands in.  POR is 0.
type SetPageAddress struct {
	cmdTag
	Page uint8 // 0x0..0xF
}

func (c SetPageAddress) Bytes() []byte { return []byte{0xB0 | c.Page} }

type SetCommonOutputScanDirection struct {
	cmdTag
	Direction ScanDirection
}

func (c SetCommonOutputScanDirection) Bytes() []byte {
	return []byte{0xC0 | byte(c.Direction)<<3}
}

// SetDisplayClockFrequency sets the internal clock divide ratio and
// oscillator adjustment.  POR is 1 / 0%.
type SetDisplayClockFrequency struct {
	cmdTag
	Ratio uint8 // 1..16
	Freq  ClockFreq
}

func (c SetDisplayClockFrequency) Bytes() []byte {
	return []byte{0xD5, byte(c.Freq)<<4 | (c.Ratio - 1)}
}

// SetPreDischargePeriod sets pre-charge and discharge periods in DCLKs.
// POR is 2/2.
type SetPreDischargePeriod struct {
	cmdTag
	Precharge uint8 // 0..15
	Discharge uint8 // 1..15
}

func (c SetPreDischargePeriod) Bytes() []byte {
	return []byte{0xD9, c.Discharge<<4 | c.Precharge}
}

// SetVCOMDeselectLevel sets the common deselect voltage.  Values above
// 0x40 all clamp to beta of 1.0.  POR is 0x35.
type SetVCOMDeselectLevel struct {
	cmdTag
	Level uint8
}

func (c SetVCOMDeselectLevel) Bytes() []byte { return []byte{0xDB, c.Level} }

// SetDisplayStartLine sets the column address mapped to COM0, which
// scrolls the display contents horizontally.  POR is 0.
type SetDisplayStartLine struct {
	cmdTag
	Column uint8 // 0..0x7F
}

func (c SetDisplayStartLine) Bytes() []byte { return []byte{0xDC, c.Column} }

// ReadModifyWrite starts a read-modify-write block.  Must be paired with
// End, which restores the column and page address.
type ReadModifyWrite struct {
	cmdTag
}

func (ReadModifyWrite) Bytes() []byte { return []byte{0xE0} }

// End closes a ReadModifyWrite block.
type End struct {
	cmdTag
}

func (End) Bytes() []byte { return []byte{0xEE} }

// Nop does nothing.
type Nop struct {
	cmdTag
}

func (Nop) Bytes() []byte { return []byte{0xE3} }

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// Validate reports whether the command's fields are inside the ranges the
// controller accepts.
func Validate(c Command) error {
	switch c := c.(type) {
	case SetLowerColumnAddress:
		if c.Lower > 0x0F {
			return fmt.Errorf("sh1107: lower column address %#x out of range", c.Lower)
		}
	case SetHigherColumnAddress:
		if c.Higher > 0x07 {
			return fmt.Errorf("sh1107: higher column address %#x out of range", c.Higher)
		}
	case SetMemoryAddressingMode:
		if c.Mode > AddressingVertical {
			return fmt.Errorf("sh1107: addressing mode %d out of range", c.Mode)
		}
	case SetSegmentRemap:
		if c.Adc > AdcFlipped {
			return fmt.Errorf("sh1107: segment remap %d out of range", c.Adc)
		}
	case SetMultiplexRatio:
		if c.Ratio < 0x01 || c.Ratio > 0x80 {
			return fmt.Errorf("sh1107: multiplex ratio %#x out of range", c.Ratio)
		}
	case SetDisplayOffset:
		if c.Offset > 0x7F {
			return fmt.Errorf("sh1107: display offset %#x out of range", c.Offset)
		}
	case SetPageAddress:
		if c.Page > 0x0F {
			return fmt.Errorf("sh1107: page address %#x out of range", c.Page)
		}
	case SetCommonOutputScanDirection:
		if c.Direction > ScanBackwards {
			return fmt.Errorf("sh1107: scan direction %d out of range", c.Direction)
		}
	case SetDisplayClockFrequency:
		if c.Ratio < 1 || c.Ratio > 16 {
			return fmt.Errorf("sh1107: clock divide ratio %d out of range", c.Ratio)
		}
		if c.Freq > FreqPos50 {
			return fmt.Errorf("sh1107: clock frequency adjustment %d out of range", c.Freq)
		}
	case SetPreDischargePeriod:
		if c.Precharge > 15 {
			return fmt.Errorf("sh1107: pre-charge period %d out of range", c.Precharge)
		}
		if c.Discharge < 1 || c.Discharge > 15 {
			return fmt.Errorf("sh1107: discharge period %d out of range", c.Discharge)
		}
	case SetDisplayStartLine:
		if c.Column > 0x7F {
			return fmt.Errorf("sh1107: display start line %#x out of range", c.Column)
		}
	}
	return nil
}

// Match is the outcome of matching accumulated bytes against the command
// set.
type Match int

const (
	// NoMatch means the bytes cannot begin any command.
	NoMatch Match = iota
	// MatchPartial means the bytes are a strict prefix of at least one
	// command.
	MatchPartial
	// Matched means the bytes decode to exactly one command.
	Matched
)

type commandParser func(cmd []byte) (Command, Match)

// commandParsers is tried in opcode order; the first parser that reports
// anything other than NoMatch wins.
var commandParsers = []commandParser{
	parseLowerColumnAddress,
	parseHigherColumnAddress,
	parseMemoryAddressingMode,
	parseContrastControlRegister,
	parseSegmentRemap,
	parseEntireDisplayOn,
	parseDisplayReverse,
	parseMultiplexRatio,
	parseDCDC,
	parseDisplayOn,
	parsePageAddress,
	parseCommonOutputScanDirection,
	parseDisplayOffset,
	parseDisplayClockFrequency,
	parsePreDischargePeriod,
	parseVCOMDeselectLevel,
	parseDisplayStartLine,
	parseReadModifyWrite,
	parseNop,
	parseEnd,
}

// ParseCommand matches cmd against the command set.  The returned Command
// is nil unless the result is Matched.
func ParseCommand(cmd []byte) (Command, Match) {
	for _, p := range commandParsers {
		if c, m := p(cmd); m != NoMatch {
			return c, m
		}
	}
	return nil, NoMatch
}

func parseLowerColumnAddress(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] > 0x0F {
		return nil, NoMatch
	}
	return SetLowerColumnAddress{Lower: cmd[0]}, Matched
}

func parseHigherColumnAddress(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0x10 || cmd[0] > 0x17 {
		return nil, NoMatch
	}
	return SetHigherColumnAddress{Higher: cmd[0] &^ 0x10}, Matched
}

func parseMemoryAddressingMode(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0x20 || cmd[0] > 0x21 {
		return nil, NoMatch
	}
	return SetMemoryAddressingMode{Mode: AddressingMode(cmd[0] &^ 0x20)}, Matched
}

func parseContrastControlRegister(cmd []byte) (Command, Match) {
	if cmd[0] != 0x81 || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetContrastControlRegister{Level: cmd[1]}, Matched
}

func parseSegmentRemap(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0xA0 || cmd[0] > 0xA1 {
		return nil, NoMatch
	}
	return SetSegmentRemap{Adc: Adc(cmd[0] &^ 0xA0)}, Matched
}

func parseEntireDisplayOn(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0xA4 || cmd[0] > 0xA5 {
		return nil, NoMatch
	}
	return SetEntireDisplayOn{On: cmd[0] == 0xA5}, Matched
}

func parseDisplayReverse(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0xA6 || cmd[0] > 0xA7 {
		return nil, NoMatch
	}
	return SetDisplayReverse{Reverse: cmd[0] == 0xA7}, Matched
}

func parseMultiplexRatio(cmd []byte) (Command, Match) {
	if cmd[0] != 0xA8 || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetMultiplexRatio{Ratio: cmd[1]&0x7F + 1}, Matched
}

func parseDCDC(cmd []byte) (Command, Match) {
	if cmd[0] != 0xAD || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetDCDC{On: cmd[1] == 0x8B}, Matched
}

func parseDisplayOn(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0xAE || cmd[0] > 0xAF {
		return nil, NoMatch
	}
	return DisplayOn{On: cmd[0] == 0xAF}, Matched
}

func parsePageAddress(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0xB0 || cmd[0] > 0xBF {
		return nil, NoMatch
	}
	return SetPageAddress{Page: cmd[0] &^ 0xB0}, Matched
}

func parseCommonOutputScanDirection(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] < 0xC0 || cmd[0] > 0xCF {
		return nil, NoMatch
	}
	return SetCommonOutputScanDirection{
		Direction: ScanDirection(cmd[0] >> 3 & 1),
	}, Matched
}

func parseDisplayOffset(cmd []byte) (Command, Match) {
	if cmd[0] != 0xD3 || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetDisplayOffset{Offset: cmd[1] & 0x7F}, Matched
}

func parseDisplayClockFrequency(cmd []byte) (Command, Match) {
	if cmd[0] != 0xD5 || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetDisplayClockFrequency{
		Ratio: cmd[1]&0x0F + 1,
		Freq:  ClockFreq(cmd[1] >> 4),
	}, Matched
}

func parsePreDischargePeriod(cmd []byte) (Command, Match) {
	if cmd[0] != 0xD9 || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetPreDischargePeriod{
		Precharge: cmd[1] & 0x0F,
		Discharge: cmd[1] >> 4,
	}, Matched
}

func parseVCOMDeselectLevel(cmd []byte) (Command, Match) {
	if cmd[0] != 0xDB || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetVCOMDeselectLevel{Level: cmd[1]}, Matched
}

func parseDisplayStartLine(cmd []byte) (Command, Match) {
	if cmd[0] != 0xDC || len(cmd) > 2 {
		return nil, NoMatch
	}
	if len(cmd) < 2 {
		return nil, MatchPartial
	}
	return SetDisplayStartLine{Column: cmd[1] & 0x7F}, Matched
}

func parseReadModifyWrite(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] != 0xE0 {
		return nil, NoMatch
	}
	return ReadModifyWrite{}, Matched
}

func parseNop(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] != 0xE3 {
		return nil, NoMatch
	}
	return Nop{}, Matched
}

func parseEnd(cmd []byte) (Command, Match) {
	if len(cmd) != 1 || cmd[0] != 0xEE {
		return nil, NoMatch
	}
	return End{}, Matched
}
