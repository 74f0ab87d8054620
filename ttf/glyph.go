package ttf

// Point is a contour coordinate plus whether it is "on" the contour or an
// "off" quadratic control point (the TrueType glyf on/off-curve tag, §3's
// Contour model).
type Point struct {
	X, Y    int32
	OnCurve bool
}

// GlyphBuf holds one glyph's contours, decoded at font-unit scale (no
// hinting, no pixel scaling — the outline extractor, package outline,
// normalizes to the glyph's own em-box).
//
// A GlyphBuf can be reused across calls to Load to avoid reallocating its
// backing slices for every glyph in a cache warm-up pass.
type GlyphBuf struct {
	// B is this glyph's bounding box, taken directly from the glyf table
	// header rather than recomputed from the decoded points (so it
	// matches the font's own stored metrics exactly).
	B Bounds
	// Point holds every point of every contour, concatenated.
	Point []Point
	// End holds, for each contour, the index one past its last point in
	// Point. Contour i consists of Point[End[i-1]:End[i]], with End[-1]
	// taken to be zero.
	End []int

	font *Font
}

// NewGlyphBuf returns a ready-to-use GlyphBuf.
func NewGlyphBuf() *GlyphBuf {
	return &GlyphBuf{
		Point: make([]Point, 0, 256),
		End:   make([]int, 0, 32),
	}
}

// Load decodes glyph index i from f into g, overwriting any previously
// loaded contours.
func (g *GlyphBuf) Load(f *Font, i Index) error {
	g.B = Bounds{}
	g.Point = g.Point[:0]
	g.End = g.End[:0]
	g.font = f
	return g.load(0, i)
}

const loadOffset = 10 // number of contours (int16) + 4x int16 bbox

func (g *GlyphBuf) load(recursion int, i Index) error {
	if recursion >= 32 {
		return UnsupportedError("excessive compound glyph recursion")
	}
	g0, g1, err := g.font.locaRange(i)
	if err != nil {
		return err
	}
	if g0 == g1 {
		// Empty glyph (e.g. space): zero contours, bounds stay zero.
		return nil
	}
	glyf := g.font.glyf[g0:g1]
	if len(glyf) < loadOffset {
		return FormatError("glyf entry too short")
	}
	d := data(glyf[0:])
	ne := int(int16(d.u16()))
	b := Bounds{
		XMin: int32(int16(d.u16())),
		YMin: int32(int16(d.u16())),
		XMax: int32(int16(d.u16())),
		YMax: int32(int16(d.u16())),
	}
	if ne < 0 {
		if ne != -1 {
			return UnsupportedError("negative number of contours")
		}
		if err := g.loadCompound(recursion, glyf); err != nil {
			return err
		}
	} else {
		if err := g.loadSimple(glyf, ne); err != nil {
			return err
		}
	}
	if recursion == 0 {
		g.B = b
	}
	return nil
}

func (g *GlyphBuf) loadSimple(glyf []byte, ne int) error {
	offset := loadOffset
	ne0 := len(g.End)
	for i := 0; i < ne; i++ {
		d := data(glyf[offset:])
		g.End = append(g.End, len(g.Point)+1+int(d.u16()))
		offset += 2
	}
	if len(g.End) == ne0 {
		return nil
	}
	instrLen := int(uint16(glyf[offset])<<8 | uint16(glyf[offset+1]))
	offset += 2 + instrLen

	np0 := len(g.Point)
	np1 := np0 + (g.End[len(g.End)-1] - np0)

	const (
		flagOnCurve             = 1 << 0
		flagXShortVector        = 1 << 1
		flagYShortVector        = 1 << 2
		flagRepeat              = 1 << 3
		flagPositiveXShortOrSameX = 1 << 4
		flagPositiveYShortOrSameY = 1 << 5
	)

	flags := make([]byte, 0, np1-np0)
	for len(flags) < np1-np0 {
		c := glyf[offset]
		offset++
		flags = append(flags, c)
		if c&flagRepeat != 0 {
			count := glyf[offset]
			offset++
			for ; count > 0 && len(flags) < np1-np0; count-- {
				flags = append(flags, c)
			}
		}
	}

	var x int32
	xs := make([]int32, len(flags))
	for i, f := range flags {
		if f&flagXShortVector != 0 {
			dx := int32(glyf[offset])
			offset++
			if f&flagPositiveXShortOrSameX == 0 {
				x -= dx
			} else {
				x += dx
			}
		} else if f&flagPositiveXShortOrSameX == 0 {
			x += int32(int16(uint16(glyf[offset])<<8 | uint16(glyf[offset+1])))
			offset += 2
		}
		xs[i] = x
	}

	var y int32
	for i, f := range flags {
		if f&flagYShortVector != 0 {
			dy := int32(glyf[offset])
			offset++
			if f&flagPositiveYShortOrSameY == 0 {
				y -= dy
			} else {
				y += dy
			}
		} else if f&flagPositiveYShortOrSameY == 0 {
			y += int32(int16(uint16(glyf[offset])<<8 | uint16(glyf[offset+1])))
			offset += 2
		}
		g.Point = append(g.Point, Point{X: xs[i], Y: y, OnCurve: f&flagOnCurve != 0})
	}
	return nil
}

// loadCompound handles composite glyphs (e.g. accented letters): each
// component references another glyph index plus an offset and optional
// 2x2 linear transform. Hinting instructions attached to a compound glyph
// are not read — this package never hints.
func (g *GlyphBuf) loadCompound(recursion int, glyf []byte) error {
	const (
		flagArg1And2AreWords   = 1 << 0
		flagArgsAreXYValues    = 1 << 1
		flagWeHaveAScale       = 1 << 3
		flagMoreComponents     = 1 << 5
		flagWeHaveAnXAndYScale = 1 << 6
		flagWeHaveATwoByTwo    = 1 << 7
	)
	offset := loadOffset
	for {
		if offset+4 > len(glyf) {
			return FormatError("truncated compound glyph")
		}
		d := data(glyf[offset:])
		flags := d.u16()
		component := Index(d.u16())
		offset += 4

		var dx, dy int32
		if flags&flagArg1And2AreWords != 0 {
			dx = int32(int16(uint16(glyf[offset])<<8 | uint16(glyf[offset+1])))
			dy = int32(int16(uint16(glyf[offset+2])<<8 | uint16(glyf[offset+3])))
			offset += 4
		} else {
			dx = int32(int16(int8(glyf[offset])))
			dy = int32(int16(int8(glyf[offset+1])))
			offset += 2
		}
		if flags&flagArgsAreXYValues == 0 {
			return UnsupportedError("compound glyph point-matching args")
		}

		const one = 1 << 14 // 2.14 fixed-point identity
		sx, s01, s10, sy := int32(one), int32(0), int32(0), int32(one)
		switch {
		case flags&flagWeHaveAScale != 0:
			sx = int32(int16(uint16(glyf[offset])<<8 | uint16(glyf[offset+1])))
			sy = sx
			offset += 2
		case flags&flagWeHaveAnXAndYScale != 0:
			sx = int32(int16(uint16(glyf[offset])<<8 | uint16(glyf[offset+1])))
			sy = int32(int16(uint16(glyf[offset+2])<<8 | uint16(glyf[offset+3])))
			offset += 4
		case flags&flagWeHaveATwoByTwo != 0:
			sx = int32(int16(uint16(glyf[offset])<<8 | uint16(glyf[offset+1])))
			s01 = int32(int16(uint16(glyf[offset+2])<<8 | uint16(glyf[offset+3])))
			s10 = int32(int16(uint16(glyf[offset+4])<<8 | uint16(glyf[offset+5])))
			sy = int32(int16(uint16(glyf[offset+6])<<8 | uint16(glyf[offset+7])))
			offset += 8
		}

		np0 := len(g.Point)
		if err := g.load(recursion+1, component); err != nil {
			return err
		}
		for j := np0; j < len(g.Point); j++ {
			p := &g.Point[j]
			nx := int32((int64(p.X)*int64(sx)+int64(p.Y)*int64(s10))>>14) + dx
			ny := int32((int64(p.X)*int64(s01)+int64(p.Y)*int64(sy))>>14) + dy
			p.X, p.Y = nx, ny
		}
		if flags&flagMoreComponents == 0 {
			break
		}
	}
	return nil
}

// locaRange returns the byte range [g0,g1) of glyph i within the glyf
// table, using the loca table's offset format.
func (f *Font) locaRange(i Index) (g0, g1 uint32, err error) {
	if int(i) >= f.nGlyph {
		return 0, 0, FormatError("glyph index out of range")
	}
	if f.locaOffsetFormat == locaOffsetFormatShort {
		if 2*int(i)+4 > len(f.loca) {
			return 0, 0, FormatError("loca table too short")
		}
		d := data(f.loca[2*int(i):])
		g0 = 2 * uint32(d.u16())
		g1 = 2 * uint32(d.u16())
	} else {
		if 4*int(i)+8 > len(f.loca) {
			return 0, 0, FormatError("loca table too short")
		}
		d := data(f.loca[4*int(i):])
		g0 = d.u32()
		g1 = d.u32()
	}
	if g1 < g0 || int(g1) > len(f.glyf) {
		return 0, 0, FormatError("bad loca entry")
	}
	return g0, g1, nil
}
