// Package ttf is a minimal reader of the TrueType `glyf` outline format.
//
// It implements one half of the outline-provider capability set (§6.1 of
// the design spec): iterate contours, iterate control points, classify
// on/off-curve, and report a glyph's bounding rectangle and horizontal
// metrics. Everything this package does not need — hinting bytecode,
// sub-pixel positioning, kerning pair lookup, name-table decoding — is
// left out; those are either non-goals of the glyph pipeline this package
// feeds (hinting, sub-pixel) or belong to text layout rather than glyph
// geometry (kerning).
//
// All coordinates are font design units (FUnits), unscaled: the caller is
// responsible for dividing by UnitsPerEm if it needs em-relative values.
package ttf

import "fmt"

// Index is a Font's glyph index for a rune.
type Index uint16

// Bounds holds an inclusive coordinate range in font units.
type Bounds struct {
	XMin, YMin, XMax, YMax int32
}

// HMetric holds the horizontal metrics of a single glyph, in font units.
type HMetric struct {
	AdvanceWidth    int32
	LeftSideBearing int32
}

// FormatError reports that the input is not a valid TrueType font.
type FormatError string

func (e FormatError) Error() string { return "ttf: invalid format: " + string(e) }

// UnsupportedError reports a valid but unimplemented TrueType feature.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "ttf: unsupported: " + string(e) }

// data is a cursor over a big-endian byte stream.
type data []byte

func (d *data) u32() uint32 {
	x := uint32((*d)[0])<<24 | uint32((*d)[1])<<16 | uint32((*d)[2])<<8 | uint32((*d)[3])
	*d = (*d)[4:]
	return x
}

func (d *data) u16() uint16 {
	x := uint16((*d)[0])<<8 | uint16((*d)[1])
	*d = (*d)[2:]
	return x
}

func (d *data) skip(n int) { *d = (*d)[n:] }

func readTable(ttf []byte, offsetLength []byte) ([]byte, error) {
	d := data(offsetLength)
	offset := int(d.u32())
	length := int(d.u32())
	end := offset + length
	if offset < 0 || length < 0 || end < 0 || end > len(ttf) {
		return nil, FormatError(fmt.Sprintf("bad table range [%d,%d)", offset, end))
	}
	return ttf[offset:end], nil
}

const (
	locaOffsetFormatShort = iota
	locaOffsetFormatLong
)

// cm is a parsed format-4 cmap segment.
type cm struct {
	start, end, delta, offset uint16
}

// Font is a parsed TrueType font, retaining only the tables this package
// needs: cmap (codepoint lookup), glyf/loca (outlines), head (bbox/loca
// format/unitsPerEm), hhea/hmtx (advance widths), maxp (glyph count).
type Font struct {
	cmap, glyf, head, hhea, hmtx, loca, maxp []byte
	cmapIndexes                              []byte

	cm               []cm
	locaOffsetFormat int
	nGlyph, nHMetric int
	unitsPerEm       int
	bounds           Bounds
}

func (f *Font) parseHead() error {
	if len(f.head) != 54 {
		return FormatError(fmt.Sprintf("bad head length: %d", len(f.head)))
	}
	d := data(f.head[18:])
	f.unitsPerEm = int(d.u16())
	d.skip(16)
	f.bounds.XMin = int32(int16(d.u16()))
	f.bounds.YMin = int32(int16(d.u16()))
	f.bounds.XMax = int32(int16(d.u16()))
	f.bounds.YMax = int32(int16(d.u16()))
	d.skip(6)
	switch i := d.u16(); i {
	case 0:
		f.locaOffsetFormat = locaOffsetFormatShort
	case 1:
		f.locaOffsetFormat = locaOffsetFormatLong
	default:
		return FormatError(fmt.Sprintf("bad indexToLocFormat: %d", i))
	}
	return nil
}

func (f *Font) parseMaxp() error {
	if len(f.maxp) != 32 {
		return FormatError(fmt.Sprintf("bad maxp length: %d", len(f.maxp)))
	}
	d := data(f.maxp[4:])
	f.nGlyph = int(d.u16())
	return nil
}

func (f *Font) parseHhea() error {
	if len(f.hhea) != 36 {
		return FormatError(fmt.Sprintf("bad hhea length: %d", len(f.hhea)))
	}
	d := data(f.hhea[34:])
	f.nHMetric = int(d.u16())
	if 4*f.nHMetric+2*(f.nGlyph-f.nHMetric) != len(f.hmtx) {
		return FormatError(fmt.Sprintf("bad hmtx length: %d", len(f.hmtx)))
	}
	return nil
}

func (f *Font) parseCmap() error {
	const (
		cmapFormat4       = 4
		unicodeEncoding   = 0x00000003
		microsoftEncoding = 0x00030001
	)
	if len(f.cmap) < 4 {
		return FormatError("cmap too short")
	}
	d := data(f.cmap[2:])
	nsubtab := int(d.u16())
	if len(f.cmap) < 8*nsubtab+4 {
		return FormatError("cmap too short")
	}
	offset, found := 0, false
	for i := 0; i < nsubtab; i++ {
		pidPsid, o := d.u32(), d.u32()
		if pidPsid == unicodeEncoding {
			offset, found = int(o), true
			break
		} else if pidPsid == microsoftEncoding {
			offset, found = int(o), true
		}
	}
	if !found {
		return UnsupportedError("cmap encoding")
	}
	if offset <= 0 || offset > len(f.cmap) {
		return FormatError("bad cmap offset")
	}
	d = data(f.cmap[offset:])
	if cmapFormat := d.u16(); cmapFormat != cmapFormat4 {
		return UnsupportedError(fmt.Sprintf("cmap format: %d", cmapFormat))
	}
	d.skip(2)
	if language := d.u16(); language != 0 {
		return UnsupportedError(fmt.Sprintf("language: %d", language))
	}
	segCountX2 := int(d.u16())
	if segCountX2%2 == 1 {
		return FormatError(fmt.Sprintf("bad segCountX2: %d", segCountX2))
	}
	segCount := segCountX2 / 2
	d.skip(6) // searchRange, entrySelector, rangeShift
	f.cm = make([]cm, segCount)

	// Format 4 lays its segments out column-wise: every segment's end
	// code, then every start code, then every delta, then every
	// idRangeOffset — never one segment's full record at a time.
	column := func(set func(seg *cm, v uint16)) {
		for i := range f.cm {
			set(&f.cm[i], d.u16())
		}
	}
	column(func(seg *cm, v uint16) { seg.end = v })
	d.skip(2) // reservedPad
	column(func(seg *cm, v uint16) { seg.start = v })
	column(func(seg *cm, v uint16) { seg.delta = v })
	column(func(seg *cm, v uint16) { seg.offset = v })

	f.cmapIndexes = []byte(d)
	return nil
}

// Bounds returns the font-wide union bounding box, in font units.
func (f *Font) Bounds() Bounds { return f.bounds }

// UnitsPerEm returns the number of FUnits per em-square.
func (f *Font) UnitsPerEm() int { return f.unitsPerEm }

// Index returns the glyph index for a rune, or 0 (".notdef") if absent.
func (f *Font) Index(x rune) Index {
	c := uint16(x)
	n := len(f.cm)
	for i, seg := range f.cm {
		if c < seg.start || seg.end < c {
			continue
		}
		if seg.offset == 0 {
			return Index(c + seg.delta)
		}
		// idRangeOffset is a byte offset from its own array slot to the
		// glyphIdArray entry for this segment; f.cmapIndexes starts right
		// after the offsets array, so the same byte arithmetic applies
		// relative to its start instead.
		byteOffset := int(seg.offset) + 2*(i-n+int(c-seg.start))
		d := data(f.cmapIndexes[byteOffset:])
		return Index(d.u16())
	}
	return Index(0)
}

// HMetric returns the horizontal metrics for glyph i, in font units.
func (f *Font) HMetric(i Index) HMetric {
	j := int(i)
	if j >= f.nGlyph {
		return HMetric{}
	}
	if j >= f.nHMetric {
		p := 4 * (f.nHMetric - 1)
		d := data(f.hmtx[p:])
		aw := int32(d.u16())
		p += 2*(j-f.nHMetric) + 4
		d = data(f.hmtx[p:])
		return HMetric{AdvanceWidth: aw, LeftSideBearing: int32(int16(d.u16()))}
	}
	d := data(f.hmtx[4*j:])
	aw := int32(d.u16())
	return HMetric{AdvanceWidth: aw, LeftSideBearing: int32(int16(d.u16()))}
}

// Parse returns a new Font for the given raw TTF bytes.
func Parse(ttfData []byte) (*Font, error) {
	if len(ttfData) < 12 {
		return nil, FormatError("TTF data is too short")
	}
	d := data(ttfData[0:])
	if d.u32() != 0x00010000 {
		return nil, FormatError("bad version")
	}
	n := int(d.u16())
	if len(ttfData) < 16*n+12 {
		return nil, FormatError("TTF data is too short")
	}
	f := new(Font)
	var err error
	for i := 0; i < n; i++ {
		x := 16*i + 12
		switch string(ttfData[x : x+4]) {
		case "cmap":
			f.cmap, err = readTable(ttfData, ttfData[x+8:x+16])
		case "glyf":
			f.glyf, err = readTable(ttfData, ttfData[x+8:x+16])
		case "head":
			f.head, err = readTable(ttfData, ttfData[x+8:x+16])
		case "hhea":
			f.hhea, err = readTable(ttfData, ttfData[x+8:x+16])
		case "hmtx":
			f.hmtx, err = readTable(ttfData, ttfData[x+8:x+16])
		case "loca":
			f.loca, err = readTable(ttfData, ttfData[x+8:x+16])
		case "maxp":
			f.maxp, err = readTable(ttfData, ttfData[x+8:x+16])
		}
		if err != nil {
			return nil, err
		}
	}
	if err := f.parseHead(); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(); err != nil {
		return nil, err
	}
	if err := f.parseCmap(); err != nil {
		return nil, err
	}
	if err := f.parseHhea(); err != nil {
		return nil, err
	}
	return f, nil
}
