package oled

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veletron/oled.go/pkg/i2c"
	"github.com/veletron/oled.go/pkg/oled/font"
	"github.com/veletron/oled.go/pkg/oled/rom"
	"github.com/veletron/oled.go/pkg/sim"
)

const (
	testRefHz   = 12_000_000
	testSpeedHz = 2_000_000
)

func testImage() *rom.Image {
	return rom.Build(font.New())
}

// seqBench drives one sequencer against an engine and a simulated
// device.
type seqBench struct {
	t   *testing.T
	eng *i2c.Engine
	dev *sim.Device
	h   *sim.Harness
}

func newSeqBench(t *testing.T) *seqBench {
	eng, err := i2c.NewEngine(testRefHz, testSpeedHz)
	require.NoError(t, err)
	dev := sim.NewDevice(DefaultAddr)
	return &seqBench{t: t, eng: eng, dev: dev, h: sim.NewHarness(dev)}
}

// runUntilIdle ticks the component until busy deasserts.
func (b *seqBench) runUntilIdle(tick func(i2c.BusOut) i2c.BusIn, busy func() bool) {
	b.t.Helper()
	step := func(sdaIn bool) i2c.Pins {
		in := tick(b.eng.Out())
		b.eng.Tick(in, sdaIn)
		return b.eng.Pins()
	}
	require.True(b.t, b.h.RunUntil(step, func() bool { return !busy() }, 1_000_000),
		"sequencer never finished")
}

func TestWriterSingleRun(t *testing.T) {
	b := newSeqBench(t)
	w := NewWriter(DefaultAddr, testImage())

	w.Start(rom.SeqDisplayOn)
	b.runUntilIdle(w.Tick, w.Busy)

	require.True(t, w.OK())
	require.Equal(t, []byte{0x00, 0xAF}, b.dev.Received())
	require.Equal(t, 1, b.dev.Starts())
	require.Equal(t, 1, b.dev.Stops())
}

func TestWriterChainsRuns(t *testing.T) {
	b := newSeqBench(t)
	w := NewWriter(DefaultAddr, testImage())

	w.Start(rom.SeqScroll)
	b.runUntilIdle(w.Tick, w.Busy)

	require.True(t, w.OK())
	// Ten runs as one bus transaction held open with repeated starts.
	require.Equal(t, 160, len(b.dev.Received()))
	require.Equal(t, 10, b.dev.Starts())
	require.Equal(t, 1, b.dev.Stops())
}

func TestWriterEmptySequence(t *testing.T) {
	b := newSeqBench(t)
	w := NewWriter(DefaultAddr, testImage())

	w.Start(rom.SeqNull)
	b.runUntilIdle(w.Tick, w.Busy)

	require.True(t, w.OK())
	require.Empty(t, b.dev.Received())
	require.Equal(t, 1, b.dev.Starts())
	require.Equal(t, 1, b.dev.Stops())
}

func TestWriterPatch(t *testing.T) {
	b := newSeqBench(t)
	w := NewWriter(DefaultAddr, testImage())
	w.SetPatch(func(written int, d byte) byte {
		if written == 1 {
			return d ^ 0x01
		}
		return d
	})

	w.Start(rom.SeqDisplayOn)
	b.runUntilIdle(w.Tick, w.Busy)

	require.Equal(t, []byte{0x00, 0xAE}, b.dev.Received())
}

func TestWriterNACKAborts(t *testing.T) {
	b := newSeqBench(t)
	w := NewWriter(DefaultAddr, testImage())
	b.dev.NACKAt(2) // refuse the second payload byte

	w.Start(rom.SeqDisplayOn)
	b.runUntilIdle(w.Tick, w.Busy)

	require.False(t, w.OK())
	require.Equal(t, []byte{0x00}, b.dev.Received())
	require.Equal(t, 1, b.dev.Stops())
}

func TestWriterAddressNACKAborts(t *testing.T) {
	b := newSeqBench(t)
	w := NewWriter(DefaultAddr, testImage())
	b.dev.NACKAt(0)

	w.Start(rom.SeqInit)
	b.runUntilIdle(w.Tick, w.Busy)

	require.False(t, w.OK())
	require.Empty(t, b.dev.Received())
}

func TestScrollerPatchesAndAdvances(t *testing.T) {
	b := newSeqBench(t)
	s := NewScroller(DefaultAddr, testImage())

	s.Start()
	b.runUntilIdle(s.Tick, s.Busy)
	require.True(t, s.OK())
	require.Equal(t, uint8(1), s.Adjusted())

	got := b.dev.Received()
	require.Equal(t, 160, len(got))
	// First scroll runs with the offset still at zero: column bytes
	// unchanged, start line moved to the second line.
	require.Equal(t, byte(0x10), got[3])
	require.Equal(t, byte(0x00), got[5])
	require.Equal(t, byte(0x08), got[159])

	s.Start()
	b.runUntilIdle(s.Tick, s.Busy)
	require.Equal(t, uint8(2), s.Adjusted())

	got = b.dev.Received()[160:]
	// Second scroll sees an odd offset: blanking shifts eight columns
	// along, start line moves another line down.
	require.Equal(t, byte(0x10), got[3])
	require.Equal(t, byte(0x08), got[5])
	require.Equal(t, byte(0x10), got[159])
}

func TestScrollerWrapsAfterSixteen(t *testing.T) {
	b := newSeqBench(t)
	s := NewScroller(DefaultAddr, testImage())

	for i := 0; i < 16; i++ {
		s.Start()
		b.runUntilIdle(s.Tick, s.Busy)
	}
	require.Equal(t, uint8(0), s.Adjusted())

	// The sixteenth scroll resets the start line to the top.
	last := b.dev.Received()[15*160:]
	require.Equal(t, byte(0x00), last[159])
}

func TestScrollerFailureKeepsAdjust(t *testing.T) {
	b := newSeqBench(t)
	s := NewScroller(DefaultAddr, testImage())
	b.dev.NACKAt(0)

	s.Start()
	b.runUntilIdle(s.Tick, s.Busy)

	require.False(t, s.OK())
	require.Equal(t, uint8(0), s.Adjusted())
}

func TestScrollerReset(t *testing.T) {
	b := newSeqBench(t)
	s := NewScroller(DefaultAddr, testImage())

	s.Start()
	b.runUntilIdle(s.Tick, s.Busy)
	require.Equal(t, uint8(1), s.Adjusted())

	s.Reset()
	require.Equal(t, uint8(0), s.Adjusted())
}

func TestLocatorScript(t *testing.T) {
	b := newSeqBench(t)
	l := NewLocator(DefaultAddr, nil)

	l.Start(3, 5)
	b.runUntilIdle(l.Tick, l.Busy)

	require.True(t, l.OK())
	// Page from the column, column address pair from the row.
	require.Equal(t, []byte{0x00, 0xBB, 0x00, 0x11}, b.dev.Received())
}

func TestLocatorSkipsZeroAxes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		row, col uint8
		want     []byte
	}{
		{"row only", 2, 0, []byte{0x00, 0x08, 0x10}},
		{"col only", 0, 1, []byte{0x00, 0xBF}},
		{"neither", 0, 0, []byte{0x00}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := newSeqBench(t)
			l := NewLocator(DefaultAddr, nil)

			l.Start(tc.row, tc.col)
			b.runUntilIdle(l.Tick, l.Busy)

			require.Equal(t, tc.want, b.dev.Received())
		})
	}
}

func TestLocatorUsesAdjust(t *testing.T) {
	b := newSeqBench(t)
	adjust := uint8(3)
	l := NewLocator(DefaultAddr, func() uint8 { return adjust })

	// Row 1 with three lines of scroll addresses the fourth line.
	l.Start(1, 0)
	b.runUntilIdle(l.Tick, l.Busy)

	require.Equal(t, []byte{0x00, 0x08, 0x11}, b.dev.Received())
}

func TestClserBlanksEveryPage(t *testing.T) {
	b := newSeqBench(t)
	c := NewClser(DefaultAddr)

	c.Start()
	b.runUntilIdle(c.Tick, c.Busy)

	require.True(t, c.OK())
	got := b.dev.Received()
	require.Equal(t, 2098, len(got))
	require.Equal(t, 32, b.dev.Starts())
	require.Equal(t, 1, b.dev.Stops())

	// Page zero resets the column address first.
	require.Equal(t, []byte{0x00, 0x00, 0x10, 0xB0, 0x40}, got[:5])
	for _, d := range got[5 : 5+128] {
		require.Equal(t, byte(0), d)
	}
	// Later pages only need the page set.
	require.Equal(t, []byte{0x00, 0xB1, 0x40}, got[133:136])
}

func TestClserNACKAborts(t *testing.T) {
	b := newSeqBench(t)
	c := NewClser(DefaultAddr)
	b.dev.NACKAt(3)

	c.Start()
	b.runUntilIdle(c.Tick, c.Busy)

	require.False(t, c.OK())
	require.Equal(t, []byte{0x00, 0x00}, b.dev.Received())
}

// oledBench drives a full controller against a simulated device.
type oledBench struct {
	t   *testing.T
	o   *OLED
	dev *sim.Device
	h   *sim.Harness
}

func newOLEDBench(t *testing.T) *oledBench {
	o, err := New(testRefHz, testSpeedHz)
	require.NoError(t, err)
	dev := sim.NewDevice(DefaultAddr)
	return &oledBench{t: t, o: o, dev: dev, h: sim.NewHarness(dev)}
}

func (b *oledBench) send(bytes ...byte) {
	b.t.Helper()
	for _, x := range bytes {
		require.True(b.t, b.o.Enqueue(x))
	}
}

func (b *oledBench) await() Result {
	b.t.Helper()
	require.True(b.t,
		b.h.RunUntil(b.o.Tick, func() bool { return b.o.Result() != ResultBusy }, 5_000_000),
		"command never completed")
	return b.o.Result()
}

func (b *oledBench) run(bytes ...byte) Result {
	b.t.Helper()
	b.send(bytes...)
	// Give the controller a tick to accept the command first.
	b.h.Step(b.o.Tick)
	return b.await()
}

func TestOLEDInit(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandInit)))
	require.Equal(t, uint8(1), b.o.Row())
	require.Equal(t, uint8(1), b.o.Col())

	got := b.dev.Received()
	require.Equal(t, 26, len(got))
	require.Equal(t, byte(0x00), got[0])
	require.Equal(t, byte(0xAE), got[1])
	require.Equal(t, byte(0xAF), got[25])
}

func TestOLEDNop(t *testing.T) {
	b := newOLEDBench(t)
	require.Equal(t, ResultSuccess, b.run(byte(CommandNop)))
	require.Empty(t, b.dev.Received())
}

func TestOLEDUnknownCommand(t *testing.T) {
	b := newOLEDBench(t)
	require.Equal(t, ResultFailure, b.run(0x7F))
}

func TestOLEDDisplayOnOff(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandDisplayOn)))
	require.Equal(t, []byte{0x00, 0xAF}, b.dev.Received())

	require.Equal(t, ResultSuccess, b.run(byte(CommandDisplayOff)))
	require.Equal(t, []byte{0x00, 0xAF, 0x00, 0xAE}, b.dev.Received())
}

func TestOLEDDisplayOnFailure(t *testing.T) {
	b := newOLEDBench(t)
	b.dev.NACKAt(0)
	require.Equal(t, ResultFailure, b.run(byte(CommandDisplayOn)))
}

func TestOLEDCursor(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandCursorOn)))
	require.True(t, b.o.Cursor())
	require.Equal(t, ResultSuccess, b.run(byte(CommandCursorOff)))
	require.False(t, b.o.Cursor())
}

func TestOLEDLocate(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandLocate), 3, 5))
	require.Equal(t, uint8(3), b.o.Row())
	require.Equal(t, uint8(5), b.o.Col())
	require.Equal(t, []byte{0x00, 0xBB, 0x00, 0x11}, b.dev.Received())
}

func TestOLEDLocateKeepsZeroAxes(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandLocate), 4, 0))
	require.Equal(t, uint8(4), b.o.Row())
	require.Equal(t, uint8(1), b.o.Col())
	// Only the row axis went out.
	require.Equal(t, []byte{0x00, 0x08, 0x11}, b.dev.Received())
}

func TestOLEDPrintChar(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandPrint), 1, 'A'))
	require.Equal(t, uint8(1), b.o.Row())
	require.Equal(t, uint8(2), b.o.Col())

	g := font.New().Glyph('A')
	got := b.dev.Received()
	// Glyph data then the cursor re-aim to row 1, column 2.
	require.Equal(t, append([]byte{0x40}, g[:]...), got[:9])
	require.Equal(t, []byte{0x00, 0xBE, 0x00, 0x10}, got[9:])
}

func TestOLEDPrintZeroCount(t *testing.T) {
	b := newOLEDBench(t)
	require.Equal(t, ResultSuccess, b.run(byte(CommandPrint), 0))
	require.Empty(t, b.dev.Received())
}

func TestOLEDPrintCRLF(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandPrint), 2, '\r', '\n'))
	require.Equal(t, uint8(2), b.o.Row())
	require.Equal(t, uint8(1), b.o.Col())
}

func TestOLEDPrintWrapsAtLineEnd(t *testing.T) {
	b := newOLEDBench(t)

	b.send(byte(CommandLocate), 1, 16)
	b.h.Step(b.o.Tick)
	require.Equal(t, ResultSuccess, b.await())

	require.Equal(t, ResultSuccess, b.run(byte(CommandPrint), 1, 'x'))
	require.Equal(t, uint8(2), b.o.Row())
	require.Equal(t, uint8(1), b.o.Col())
}

func TestOLEDPrintScrollsOnBottomLine(t *testing.T) {
	b := newOLEDBench(t)

	b.send(byte(CommandLocate), 16, 1)
	b.h.Step(b.o.Tick)
	require.Equal(t, ResultSuccess, b.await())
	before := len(b.dev.Received())

	require.Equal(t, ResultSuccess, b.run(byte(CommandPrint), 1, '\n'))
	require.Equal(t, uint8(16), b.o.Row())
	require.Equal(t, uint8(1), b.o.Col())

	// A scroll replay went out: 160 patched bytes plus the cursor
	// re-aim, which now folds in the new scroll offset.
	got := b.dev.Received()[before:]
	require.Equal(t, 160+4, len(got))
	require.Equal(t, byte(0x08), got[159])
	// Row 16 with one line scrolled wraps back to line zero.
	require.Equal(t, []byte{0x00, 0xBF, 0x00, 0x10}, got[160:])
}

func TestOLEDPrintFailure(t *testing.T) {
	b := newOLEDBench(t)
	b.dev.NACKAt(0)
	require.Equal(t, ResultFailure, b.run(byte(CommandPrint), 1, 'A'))
}

func TestOLEDCls(t *testing.T) {
	b := newOLEDBench(t)

	b.send(byte(CommandLocate), 7, 9)
	b.h.Step(b.o.Tick)
	require.Equal(t, ResultSuccess, b.await())
	before := len(b.dev.Received())

	require.Equal(t, ResultSuccess, b.run(byte(CommandCls)))
	require.Equal(t, uint8(1), b.o.Row())
	require.Equal(t, uint8(1), b.o.Col())

	// Full clear then the cursor re-aimed home.
	got := b.dev.Received()[before:]
	require.Equal(t, 2098+4, len(got))
	require.Equal(t, []byte{0x00, 0xBF, 0x00, 0x10}, got[2098:])
}

func TestOLEDID(t *testing.T) {
	b := newOLEDBench(t)
	b.dev.SetReadData([]byte{0x07})

	require.Equal(t, ResultSuccess, b.run(byte(CommandID)))
	// Two hex digits were printed.
	require.Equal(t, uint8(3), b.o.Col())

	got := b.dev.Received()
	// Control byte for the register read, then the two glyph replays
	// with their cursor re-aims.
	require.Equal(t, byte(0x00), got[0])
	g0 := font.New().Glyph('0')
	require.Equal(t, append([]byte{0x40}, g0[:]...), got[1:10])
	g7 := font.New().Glyph('7')
	require.Equal(t, append([]byte{0x40}, g7[:]...), got[14:23])
}

func TestOLEDIDFailure(t *testing.T) {
	b := newOLEDBench(t)
	b.dev.NACKAt(0)
	require.Equal(t, ResultFailure, b.run(byte(CommandID)))
}

func TestOLEDPrintByte(t *testing.T) {
	b := newOLEDBench(t)

	require.Equal(t, ResultSuccess, b.run(byte(CommandPrintByte), 0xA5))
	require.Equal(t, uint8(3), b.o.Col())

	got := b.dev.Received()
	gA := font.New().Glyph('A')
	require.Equal(t, append([]byte{0x40}, gA[:]...), got[:9])
	g5 := font.New().Glyph('5')
	require.Equal(t, append([]byte{0x40}, g5[:]...), got[13:22])
}

func TestOLEDBackToBackCommands(t *testing.T) {
	b := newOLEDBench(t)

	// Queue everything up front; the controller works through it.
	b.send(byte(CommandInit))
	b.send(byte(CommandPrint), 2, 'h', 'i')
	b.h.Step(b.o.Tick)
	require.Equal(t, ResultSuccess, b.await())
	require.True(t,
		b.h.RunUntil(b.o.Tick, func() bool {
			return b.o.Result() != ResultBusy && b.o.Col() == 3
		}, 5_000_000))
	require.Equal(t, uint8(3), b.o.Col())
}
