// Package rom builds the display controller's instruction ROM: a small
// index of byte sequences that get replayed over the bus verbatim.
//
// The ROM starts with one little-endian (offset uint16, length uint16)
// pair per sequence.  A sequence is one or more runs, each sent as a
// separate bus transmission: starting at offset, write length bytes, then
// read a little-endian uint16 giving the length of the next run, or zero
// when the sequence is done.
package rom

import (
	"encoding/binary"

	"github.com/veletron/oled.go/pkg/oled/font"
	"github.com/veletron/oled.go/pkg/sh1107"
)

// Sequence ids, in index order.
const (
	SeqInit       = 0
	SeqDisplayOff = 2
	SeqDisplayOn  = 1
	SeqScroll     = 3
	// SeqChar plus a character code selects that glyph's data run.
	SeqChar = 4
	// SeqNull is an empty sequence: the device is addressed and then the
	// transmission ends, which probes for an ACK without sending anything.
	SeqNull = SeqChar + 256

	SeqCount = SeqNull + 1
)

// Marks within the scroll sequence whose bytes the scroller patches on
// each replay.
const (
	MarkInitialHigherColumnAddress sh1107.Mark = "InitialHigherColumnAddress"
	MarkDisplayStartLine           sh1107.Mark = "DisplayStartLine"
)

// MarkLowerColumnAddress returns the mark for the i'th per-row lower
// column address command, 0 through 7.
func MarkLowerColumnAddress(i int) sh1107.Mark {
	return sh1107.Mark("LowerColumnAddress" + string(rune('0'+i)))
}

// Image is a built ROM.  It is immutable once built.
type Image struct {
	data        []byte
	scrollMarks map[sh1107.Mark]int
}

// Build composes every sequence with f's glyphs and packs them into an
// Image.
func Build(f *font.Font) *Image {
	initRuns := sh1107.Compose([]sh1107.Item{
		sh1107.DisplayOn{On: false},
		sh1107.SetDisplayClockFrequency{Ratio: 1, Freq: sh1107.FreqZero},
		sh1107.SetDisplayOffset{Offset: 0},
		sh1107.SetDisplayStartLine{Column: 0},
		sh1107.SetDCDC{On: true},
		sh1107.SetSegmentRemap{Adc: sh1107.AdcNormal},
		sh1107.SetCommonOutputScanDirection{Direction: sh1107.ScanForwards},
		sh1107.SetContrastControlRegister{Level: 0x80},
		sh1107.SetMultiplexRatio{Ratio: 0x80},
		sh1107.SetPreDischargePeriod{Precharge: 2, Discharge: 2},
		sh1107.SetVCOMDeselectLevel{Level: 0x35},
		sh1107.SetDisplayReverse{Reverse: false},
		sh1107.SetMemoryAddressingMode{Mode: sh1107.AddressingPage},
		sh1107.SetPageAddress{Page: 0},
		sh1107.SetHigherColumnAddress{Higher: 0},
		sh1107.SetLowerColumnAddress{Lower: 0},
		sh1107.DisplayOn{On: true},
	})

	displayOnRuns := sh1107.Compose([]sh1107.Item{sh1107.DisplayOn{On: true}})
	displayOffRuns := sh1107.Compose([]sh1107.Item{sh1107.DisplayOn{On: false}})

	scrollRuns, scrollMarks := sh1107.ComposeWithMarks(scrollItems()...)

	seqs := make([][][]byte, 0, SeqCount)
	seqs = append(seqs, initRuns, displayOnRuns, displayOffRuns, scrollRuns)
	for code := 0; code < 256; code++ {
		g := f.Glyph(byte(code))
		seqs = append(seqs, sh1107.Compose([]sh1107.Item{
			sh1107.DataBytes{Data: g[:]},
		}))
	}
	// The null sequence is a single empty run.
	seqs = append(seqs, [][]byte{{}})

	var index, payload []byte
	base := SeqCount * 4
	for _, runs := range seqs {
		index = binary.LittleEndian.AppendUint16(index, uint16(base+len(payload)))
		index = binary.LittleEndian.AppendUint16(index, uint16(len(runs[0])))
		for i, run := range runs {
			payload = append(payload, run...)
			next := 0
			if i < len(runs)-1 {
				next = len(runs[i+1])
			}
			payload = binary.LittleEndian.AppendUint16(payload, uint16(next))
		}
	}

	return &Image{
		data:        append(index, payload...),
		scrollMarks: scrollMarks,
	}
}

func scrollItems() [][]sh1107.Item {
	runs := [][]sh1107.Item{{
		sh1107.SetMemoryAddressingMode{Mode: sh1107.AddressingVertical},
		sh1107.SetPageAddress{Page: 0},
		MarkInitialHigherColumnAddress,
		sh1107.SetHigherColumnAddress{Higher: 0},
	}}
	for i := 0; i < 8; i++ {
		runs = append(runs, []sh1107.Item{
			MarkLowerColumnAddress(i),
			sh1107.SetLowerColumnAddress{Lower: uint8(i)},
			sh1107.DataBytes{Data: make([]byte, 16)},
		})
	}
	return append(runs, []sh1107.Item{
		sh1107.SetMemoryAddressingMode{Mode: sh1107.AddressingPage},
		MarkDisplayStartLine,
		sh1107.SetDisplayStartLine{Column: 0},
	})
}

// Len returns the ROM size in bytes.
func (im *Image) Len() int {
	return len(im.data)
}

// At returns the byte at addr.
func (im *Image) At(addr int) byte {
	return im.data[addr]
}

// Bytes returns a copy of the ROM contents, for flashing or inspection.
func (im *Image) Bytes() []byte {
	return append([]byte(nil), im.data...)
}

// ScrollMark returns the offset of mark within the scroll sequence's
// payload stream.  Patch hooks compare it against the count of payload
// bytes already sent.
func (im *Image) ScrollMark(m sh1107.Mark) (int, bool) {
	off, ok := im.scrollMarks[m]
	return off, ok
}
