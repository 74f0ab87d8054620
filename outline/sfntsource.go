package outline

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/glyphgrid/glyphgrid/geom"
)

// SfntSource adapts a golang.org/x/image/font/sfnt glyph to the Source
// capability set, for OpenType/CFF outlines. Unlike TrueType glyf, CFF
// outlines are PostScript-style and commonly contain genuine cubic
// segments, which Extract routes through package curve.
//
// A SfntSource is only valid for the lifetime of the Buffer passed to
// NewSfntSource: Segments re-uses sfnt's internal buffer on every call,
// matching the way sfnt.Font.LoadGlyph itself is meant to be used (one
// long-lived *sfnt.Buffer reused across many glyphs).
type SfntSource struct {
	Font  *sfnt.Font
	Buf   *sfnt.Buffer
	Index sfnt.GlyphIndex

	// unitsPerEm is the font's design-unit scale as a 26.6 ppem, used as
	// the "no scale" ppem per §4.6 step 1: loading at ppem == unitsPerEm
	// pixels makes sfnt's 26.6 fixed-point output equal to font units
	// times 64, which fx26 divides back to the plain font units that
	// ttf.Font reports.
	unitsPerEm fixed.Int26_6
}

// NewSfntSource returns a Source for glyph index gi of font f, loading
// outlines unhinted at the font's native design-unit scale.
func NewSfntSource(f *sfnt.Font, buf *sfnt.Buffer, gi sfnt.GlyphIndex) (SfntSource, error) {
	upm := fixed.I(int(f.UnitsPerEm()))
	return SfntSource{Font: f, Buf: buf, Index: gi, unitsPerEm: upm}, nil
}

// Segments implements Source.
func (s SfntSource) Segments() []Segment {
	segs, err := s.Font.LoadGlyph(s.Buf, s.Index, s.unitsPerEm, nil)
	if err != nil {
		return nil
	}
	out := make([]Segment, 0, len(segs))
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out = append(out, Segment{Op: MoveTo, Points: [3]geom.Vec2{
				fixedToVec(seg.Args[0]),
			}})
		case sfnt.SegmentOpLineTo:
			out = append(out, Segment{Op: LineTo, Points: [3]geom.Vec2{
				fixedToVec(seg.Args[0]),
			}})
		case sfnt.SegmentOpQuadTo:
			out = append(out, Segment{Op: QuadTo, Points: [3]geom.Vec2{
				fixedToVec(seg.Args[0]),
				fixedToVec(seg.Args[1]),
			}})
		case sfnt.SegmentOpCubeTo:
			out = append(out, Segment{Op: CubicTo, Points: [3]geom.Vec2{
				fixedToVec(seg.Args[0]),
				fixedToVec(seg.Args[1]),
				fixedToVec(seg.Args[2]),
			}})
		}
	}
	return out
}

// Bounds implements Source, using sfnt's own glyph bounding box rather
// than one recomputed from the segments.
func (s SfntSource) Bounds() (minX, minY, maxX, maxY float64) {
	b, _, err := s.Font.GlyphBounds(s.Buf, s.Index, s.unitsPerEm, 0)
	if err != nil {
		return 0, 0, 0, 0
	}
	return fx26(b.Min.X), fx26(b.Min.Y), fx26(b.Max.X), fx26(b.Max.Y)
}

// Metrics implements Source.
func (s SfntSource) Metrics() (bearingX, advance float64) {
	adv, err := s.Font.GlyphAdvance(s.Buf, s.Index, s.unitsPerEm, 0)
	if err != nil {
		return 0, 0
	}
	// sfnt has no direct left-side-bearing query; it falls out of
	// Bounds().Min.X relative to the glyph origin, which Extract already
	// subtracts out via src.Bounds(), so bearingX here is the raw
	// left edge and Extract's "bearingX - minX" normalizes it to zero.
	minX, _, _, _ := s.Bounds()
	return minX, fx26(adv)
}

func fixedToVec(p fixed.Point26_6) geom.Vec2 {
	return geom.Vec2{X: fx26(p.X), Y: fx26(p.Y)}
}

func fx26(x fixed.Int26_6) float64 { return float64(x) / 64 }
