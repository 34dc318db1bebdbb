package sh1107

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var commandCases = []struct {
	bytes []byte
	cmd   Command
	match Match
	// canonical is the encoding of cmd when it differs from bytes
	// (don't-care bits dropped).
	canonical []byte
}{
	{bytes: []byte{0x07}, cmd: SetLowerColumnAddress{Lower: 0x7}, match: Matched},
	{bytes: []byte{0x13}, cmd: SetHigherColumnAddress{Higher: 0x3}, match: Matched},
	{bytes: []byte{0x18}, match: NoMatch},
	{bytes: []byte{0x20}, cmd: SetMemoryAddressingMode{Mode: AddressingPage}, match: Matched},
	{bytes: []byte{0x21}, cmd: SetMemoryAddressingMode{Mode: AddressingVertical}, match: Matched},
	{bytes: []byte{0x81}, match: MatchPartial},
	{bytes: []byte{0x81, 0x7F}, cmd: SetContrastControlRegister{Level: 0x7F}, match: Matched},
	{bytes: []byte{0x81, 0x00}, cmd: SetContrastControlRegister{Level: 0x00}, match: Matched},
	{bytes: []byte{0xA0}, cmd: SetSegmentRemap{Adc: AdcNormal}, match: Matched},
	{bytes: []byte{0xA1}, cmd: SetSegmentRemap{Adc: AdcFlipped}, match: Matched},
	{bytes: []byte{0xA8, 0x00}, cmd: SetMultiplexRatio{Ratio: 0x01}, match: Matched},
	{bytes: []byte{0xA8, 0x7F}, cmd: SetMultiplexRatio{Ratio: 0x80}, match: Matched},
	{bytes: []byte{0xA8, 0xA7}, cmd: SetMultiplexRatio{Ratio: 0x28}, match: Matched, canonical: []byte{0xA8, 0x27}},
	{bytes: []byte{0xA4}, cmd: SetEntireDisplayOn{On: false}, match: Matched},
	{bytes: []byte{0xA5}, cmd: SetEntireDisplayOn{On: true}, match: Matched},
	{bytes: []byte{0xA6}, cmd: SetDisplayReverse{Reverse: false}, match: Matched},
	{bytes: []byte{0xA7}, cmd: SetDisplayReverse{Reverse: true}, match: Matched},
	{bytes: []byte{0xD3, 0x00}, cmd: SetDisplayOffset{Offset: 0}, match: Matched},
	{bytes: []byte{0xD3, 0x7F}, cmd: SetDisplayOffset{Offset: 0x7F}, match: Matched},
	{bytes: []byte{0xD3, 0xC8}, cmd: SetDisplayOffset{Offset: 0x48}, match: Matched, canonical: []byte{0xD3, 0x48}},
	{bytes: []byte{0xAD, 0x8A}, cmd: SetDCDC{On: false}, match: Matched},
	{bytes: []byte{0xAD, 0x8B}, cmd: SetDCDC{On: true}, match: Matched},
	{bytes: []byte{0xAE}, cmd: DisplayOn{On: false}, match: Matched},
	{bytes: []byte{0xAF}, cmd: DisplayOn{On: true}, match: Matched},
	{bytes: []byte{0xB0}, cmd: SetPageAddress{Page: 0x0}, match: Matched},
	{bytes: []byte{0xB9}, cmd: SetPageAddress{Page: 0x9}, match: Matched},
	{bytes: []byte{0xC0}, cmd: SetCommonOutputScanDirection{Direction: ScanForwards}, match: Matched},
	{bytes: []byte{0xC5}, cmd: SetCommonOutputScanDirection{Direction: ScanForwards}, match: Matched, canonical: []byte{0xC0}},
	{bytes: []byte{0xC8}, cmd: SetCommonOutputScanDirection{Direction: ScanBackwards}, match: Matched},
	{bytes: []byte{0xCF}, cmd: SetCommonOutputScanDirection{Direction: ScanBackwards}, match: Matched, canonical: []byte{0xC8}},
	{bytes: []byte{0xD5, 0x50}, cmd: SetDisplayClockFrequency{Ratio: 1, Freq: FreqZero}, match: Matched},
	{bytes: []byte{0xD5, 0xCA}, cmd: SetDisplayClockFrequency{Ratio: 11, Freq: FreqPos35}, match: Matched},
	{bytes: []byte{0xD5, 0x17}, cmd: SetDisplayClockFrequency{Ratio: 8, Freq: FreqNeg20}, match: Matched},
	{bytes: []byte{0xD9, 0x22}, cmd: SetPreDischargePeriod{Precharge: 2, Discharge: 2}, match: Matched},
	{bytes: []byte{0xD9, 0xFF}, cmd: SetPreDischargePeriod{Precharge: 15, Discharge: 15}, match: Matched},
	{bytes: []byte{0xDB, 0x00}, cmd: SetVCOMDeselectLevel{Level: 0x00}, match: Matched},
	{bytes: []byte{0xDB, 0x3F}, cmd: SetVCOMDeselectLevel{Level: 0x3F}, match: Matched},
	{bytes: []byte{0xDB, 0xAA}, cmd: SetVCOMDeselectLevel{Level: 0xAA}, match: Matched},
	{bytes: []byte{0xDC, 0x03}, cmd: SetDisplayStartLine{Column: 0x03}, match: Matched},
	{bytes: []byte{0xDC, 0x66}, cmd: SetDisplayStartLine{Column: 0x66}, match: Matched},
	{bytes: []byte{0xDC, 0xAF}, cmd: SetDisplayStartLine{Column: 0x2F}, match: Matched, canonical: []byte{0xDC, 0x2F}},
	{bytes: []byte{0xE0}, cmd: ReadModifyWrite{}, match: Matched},
	{bytes: []byte{0xEE}, cmd: End{}, match: Matched},
	{bytes: []byte{0xE3}, cmd: Nop{}, match: Matched},
}

func TestParseCommand(t *testing.T) {
	for _, c := range commandCases {
		cmd, m := ParseCommand(c.bytes)
		require.Equalf(t, c.match, m, "parse % x", c.bytes)
		if c.match == Matched {
			require.Equalf(t, c.cmd, cmd, "parse % x", c.bytes)
		} else {
			require.Nilf(t, cmd, "parse % x", c.bytes)
		}
	}
}

func TestCommandBytes(t *testing.T) {
	for _, c := range commandCases {
		if c.match != Matched {
			continue
		}
		want := c.bytes
		if c.canonical != nil {
			want = c.canonical
		}
		require.Equalf(t, want, c.cmd.Bytes(), "encode %#v", c.cmd)
	}
}

func TestControlByte(t *testing.T) {
	cases := []struct {
		b  byte
		cb ControlByte
	}{
		{0x00, ControlByte{Continuation: false, Channel: ChannelCommand}},
		{0x80, ControlByte{Continuation: true, Channel: ChannelCommand}},
		{0x40, ControlByte{Continuation: false, Channel: ChannelData}},
		{0xC0, ControlByte{Continuation: true, Channel: ChannelData}},
	}
	for _, c := range cases {
		cb, ok := ParseControlByte(c.b)
		require.Truef(t, ok, "parse %#x", c.b)
		require.Equalf(t, c.cb, cb, "parse %#x", c.b)
		require.Equalf(t, c.b, c.cb.Byte(), "encode %+v", c.cb)
	}

	for _, b := range []byte{0x01, 0x3F, 0x41, 0x82, 0xFF} {
		_, ok := ParseControlByte(b)
		require.Falsef(t, ok, "parse %#x", b)
	}
}

func TestValidate(t *testing.T) {
	valid := []Command{
		SetLowerColumnAddress{Lower: 0x0F},
		SetHigherColumnAddress{Higher: 0x07},
		SetMultiplexRatio{Ratio: 0x80},
		SetDisplayClockFrequency{Ratio: 16, Freq: FreqPos50},
		SetPreDischargePeriod{Precharge: 0, Discharge: 1},
		SetDisplayStartLine{Column: 0x7F},
		Nop{},
	}
	for _, c := range valid {
		require.NoErrorf(t, Validate(c), "validate %#v", c)
	}

	invalid := []Command{
		SetLowerColumnAddress{Lower: 0x10},
		SetHigherColumnAddress{Higher: 0x08},
		SetMultiplexRatio{Ratio: 0},
		SetMultiplexRatio{Ratio: 0x81},
		SetDisplayClockFrequency{Ratio: 0},
		SetDisplayClockFrequency{Ratio: 17},
		SetPreDischargePeriod{Precharge: 16, Discharge: 2},
		SetPreDischargePeriod{Precharge: 2, Discharge: 0},
		SetPageAddress{Page: 0x10},
		SetDisplayOffset{Offset: 0x80},
		SetDisplayStartLine{Column: 0x80},
	}
	for _, c := range invalid {
		require.Errorf(t, Validate(c), "validate %#v", c)
	}
}

// composeItems and composeBytes come from driving a real panel through
// power-on and a two page write.
var composeItems = []Item{
	SetDisplayClockFrequency{Ratio: 7, Freq: FreqNeg5},
	SetDCDC{On: true},
	SetSegmentRemap{Adc: AdcNormal},
	SetVCOMDeselectLevel{Level: 0x40},
	SetMemoryAddressingMode{Mode: AddressingPage},
	DisplayOn{On: true},
	SetPageAddress{Page: 0},
	SetLowerColumnAddress{Lower: 0},
	SetHigherColumnAddress{Higher: 0},
	DataBytes{Data: []byte{0xFF, 0x77}},
	SetPageAddress{Page: 0x8},
	DataBytes{Data: []byte{0x11, 0x88}},
}

var composeBytes = []byte{
	0x80, 0xD5, // cont/cmd SetDisplayClockFrequency
	0x80, 0x46, // 7, -5%
	0x80, 0xAD, // SetDCDC
	0x80, 0x8B, // on
	0x80, 0xA0, // SetSegmentRemap Normal
	0x80, 0xDB, // SetVCOMDeselectLevel
	0x80, 0x40,
	0x80, 0x20, // SetMemoryAddressingMode Page
	0x80, 0xAF, // DisplayOn true
	0x80, 0xB0, // SetPageAddress 0
	0x80, 0x00, // SetLowerColumnAddress 0
	0x80, 0x10, // SetHigherColumnAddress 0
	0xC0, 0xFF, // cont/data
	0xC0, 0x77,
	0x80, 0xB8, // SetPageAddress 8
	0x40,       // data to the end
	0x11, 0x88,
}

func TestCompose(t *testing.T) {
	require.Equal(t, [][]byte{composeBytes}, Compose(composeItems))

	t.Run("single command", func(t *testing.T) {
		require.Equal(t,
			[][]byte{{0x00, 0xAF}},
			Compose([]Item{DisplayOn{On: true}}))
	})

	t.Run("data only", func(t *testing.T) {
		require.Equal(t,
			[][]byte{{0x40, 0x01, 0x02, 0x03}},
			Compose([]Item{DataBytes{Data: []byte{0x01, 0x02, 0x03}}}))
	})
}

func TestComposeWithMarks(t *testing.T) {
	items := []Item{
		SetMemoryAddressingMode{Mode: AddressingVertical},
		Mark("InitialPageAddress"),
		SetPageAddress{Page: 0},
		Mark("InitialHigherColumnAddress"),
		SetHigherColumnAddress{Higher: 0},
		Mark("InitialLowerColumnAddress"),
		SetLowerColumnAddress{Lower: 0},
		Mark("FinalHigherColumnAddress"),
		SetHigherColumnAddress{Higher: 0},
		Mark("FinalLowerColumnAddress"),
		SetLowerColumnAddress{Lower: 0},
		SetMemoryAddressingMode{Mode: AddressingPage},
		Mark("DisplayStartLine"),
		SetDisplayStartLine{Column: 0},
	}

	bytes, marks := ComposeWithMarks(items)
	require.Equal(t, [][]byte{{
		0x00, // 0: !cont/cmd
		0x21, // 1: SetMemoryAddressingMode Vertical
		0xB0, // 2: SetPageAddress 0
		0x10, // 3: SetHigherColumnAddress 0
		0x00, // 4: SetLowerColumnAddress 0
		0x10, // 5: SetHigherColumnAddress 0
		0x00, // 6: SetLowerColumnAddress 0
		0x20, // 7: SetMemoryAddressingMode Page
		0xDC, // 8: SetDisplayStartLine
		0x00, // 9: 0
	}}, bytes)
	require.Equal(t, map[Mark]int{
		"InitialPageAddress":         2,
		"InitialHigherColumnAddress": 3,
		"InitialLowerColumnAddress":  4,
		"FinalHigherColumnAddress":   5,
		"FinalLowerColumnAddress":    6,
		"DisplayStartLine":           8,
	}, marks)
}

func TestParseComposed(t *testing.T) {
	p := NewParser()
	seqs := p.Feed(composeBytes)

	want := make([]Sequence, 0, len(composeItems))
	for _, it := range composeItems {
		want = append(want, it.(Sequence))
	}
	require.Equal(t, want, seqs)
	require.True(t, p.ValidFinish())
	require.False(t, p.Unrecoverable())
}

func TestParsePartial(t *testing.T) {
	no5 := SetDisplayClockFrequency{Ratio: 7, Freq: FreqNeg5}
	on := DisplayOn{On: true}
	off := DisplayOn{On: false}

	cases := []struct {
		in       []byte
		seqs     []Sequence
		leftover []byte
		partial  []byte
		state    ParseState
		cont     bool
		finish   bool
		broken   bool
	}{
		{in: []byte{0x80}, state: StateCommand, cont: true},
		{in: []byte{0x80, 0xD5}, partial: []byte{0xD5}, state: StateControlPartialCommand, cont: true},
		{in: []byte{0x80, 0xD5, 0x80}, partial: []byte{0xD5}, state: StateCommand, cont: true},
		{in: []byte{0x80, 0xD5, 0x80, 0x46}, seqs: []Sequence{no5}, state: StateControl, cont: true, finish: true},
		{in: []byte{0x80, 0xD5, 0x80, 0x46, 0x00}, seqs: []Sequence{no5}, state: StateCommand, finish: true},
		{in: []byte{0x80, 0xD5, 0x80, 0x46, 0x00, 0xAF}, seqs: []Sequence{no5, on}, state: StateCommand, finish: true},
		{in: []byte{0x80, 0xD5, 0x80, 0x46, 0x00, 0xAF, 0xAE}, seqs: []Sequence{no5, on, off}, state: StateCommand, finish: true},
		{in: []byte{0x80, 0xAF, 0x80, 0xD5}, seqs: []Sequence{on}, partial: []byte{0xD5}, state: StateControlPartialCommand, cont: true},
		{in: []byte{0x80, 0xAF, 0x80, 0xD5, 0x80}, seqs: []Sequence{on}, partial: []byte{0xD5}, state: StateCommand, cont: true},
		{in: []byte{0x80, 0xAF, 0x80, 0xD5, 0x00}, seqs: []Sequence{on}, partial: []byte{0xD5}, state: StateCommand},
		{in: []byte{0x80, 0xAF, 0x00}, seqs: []Sequence{on}, state: StateCommand, finish: true},
		{in: []byte{0x80, 0xAF, 0x00, 0xD5}, seqs: []Sequence{on}, partial: []byte{0xD5}, state: StateCommand},
		{in: []byte{0x80, 0xAF, 0x00, 0xD5, 0x46}, seqs: []Sequence{on, no5}, state: StateCommand, finish: true},
		{in: []byte{0x00, 0xAF, 0x80}, seqs: []Sequence{on}, leftover: []byte{0x80}, partial: []byte{0x80}, state: StateCommand, broken: true},
		{in: []byte{0x00}, state: StateCommand, finish: true},
		{in: []byte{0x00, 0xAF}, seqs: []Sequence{on}, state: StateCommand, finish: true},
		{in: []byte{0x80, 0xAF}, seqs: []Sequence{on}, state: StateControl, cont: true, finish: true},
		{in: []byte{0x40}, state: StateData, finish: true},
		{in: []byte{0x40, 0xAA}, seqs: []Sequence{DataBytes{Data: []byte{0xAA}}}, state: StateData, finish: true},
		{in: []byte{0x40, 0xAA, 0x40}, seqs: []Sequence{DataBytes{Data: []byte{0xAA, 0x40}}}, state: StateData, finish: true},
		{in: []byte{0x40, 0xAA, 0x40, 0xAA}, seqs: []Sequence{DataBytes{Data: []byte{0xAA, 0x40, 0xAA}}}, state: StateData, finish: true},
		{in: []byte{0xC0}, state: StateData, cont: true},
		{in: []byte{0xC0, 0xAA}, seqs: []Sequence{DataBytes{Data: []byte{0xAA}}}, state: StateControl, cont: true, finish: true},
	}

	for i, c := range cases {
		p := NewParser()
		seqs := p.Feed(c.in)
		require.Equalf(t, c.seqs, seqs, "case %d: sequences", i)
		require.Equalf(t, c.leftover, p.Leftover(), "case %d: leftover", i)
		require.Equalf(t, c.partial, p.Partial(), "case %d: partial", i)
		require.Equalf(t, c.state, p.State(), "case %d: state", i)
		require.Equalf(t, c.cont, p.Continuation(), "case %d: continuation", i)
		require.Equalf(t, c.finish, p.ValidFinish(), "case %d: valid finish", i)
		require.Equalf(t, c.broken, p.Unrecoverable(), "case %d: unrecoverable", i)
	}
}

func TestParseSplitFeeds(t *testing.T) {
	p := NewParser()
	require.Empty(t, p.Feed([]byte{0x80, 0xD5}))
	require.False(t, p.ValidFinish())

	seqs := p.Feed([]byte{0x80, 0x46, 0x00, 0xAF})
	require.Equal(t, []Sequence{
		SetDisplayClockFrequency{Ratio: 7, Freq: FreqNeg5},
		DisplayOn{On: true},
	}, seqs)
	require.True(t, p.ValidFinish())
	require.False(t, p.Unrecoverable())
}

func TestParserStuckAfterUnrecoverable(t *testing.T) {
	p := NewParser()
	p.Feed([]byte{0x01})
	require.True(t, p.Unrecoverable())
	require.Nil(t, p.Feed([]byte{0x00, 0xAF}))
	require.True(t, p.Unrecoverable())
}
