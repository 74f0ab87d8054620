package outline

import (
	"github.com/glyphgrid/glyphgrid/geom"
	"github.com/glyphgrid/glyphgrid/ttf"
)

// TTFSource adapts a loaded ttf.GlyphBuf to the Source capability set,
// resolving TrueType's on/off-curve point tags into explicit
// QuadTo/LineTo segments as it walks each contour: two consecutive
// off-curve points imply an on-curve point at their midpoint, and two
// consecutive on-curve points imply a degenerate (straight) quadratic.
type TTFSource struct {
	Font  *ttf.Font
	Glyph *ttf.GlyphBuf
	Index ttf.Index
}

// Segments implements Source.
func (s TTFSource) Segments() []Segment {
	g := s.Glyph
	var segs []Segment
	start := 0
	for _, end := range g.End {
		segs = append(segs, contourSegments(g.Point[start:end])...)
		start = end
	}
	return segs
}

// Bounds implements Source, using the glyf table's own header bbox.
func (s TTFSource) Bounds() (minX, minY, maxX, maxY float64) {
	b := s.Glyph.B
	return float64(b.XMin), float64(b.YMin), float64(b.XMax), float64(b.YMax)
}

// Metrics implements Source.
func (s TTFSource) Metrics() (bearingX, advance float64) {
	hm := s.Font.HMetric(s.Index)
	return float64(hm.LeftSideBearing), float64(hm.AdvanceWidth)
}

func contourSegments(pts []ttf.Point) []Segment {
	n := len(pts)
	if n == 0 {
		return nil
	}
	at := func(i int) geom.Vec2 {
		p := pts[((i%n)+n)%n]
		return geom.Vec2{X: float64(p.X), Y: float64(p.Y)}
	}
	onCurveAt := func(i int) bool {
		return pts[((i%n)+n)%n].OnCurve
	}
	midpoint := func(i, j int) geom.Vec2 {
		return geom.Lerp(at(i), at(j), 0.5)
	}

	start := -1
	for i := 0; i < n; i++ {
		if onCurveAt(i) {
			start = i
			break
		}
	}
	var startPoint geom.Vec2
	if start == -1 {
		// Every point in the contour is off-curve: synthesize a start
		// on-curve point at the midpoint of the first two, per TrueType
		// convention.
		start = 0
		startPoint = midpoint(0, 1)
	} else {
		startPoint = at(start)
	}

	segs := []Segment{{Op: MoveTo, Points: [3]geom.Vec2{startPoint}}}
	i := start
	for count := 0; count < n; {
		next := i + 1
		if onCurveAt(next) {
			end := at(next)
			segs = append(segs, Segment{Op: LineTo, Points: [3]geom.Vec2{end}})
			i = next
			count++
			continue
		}
		control := at(next)
		var end geom.Vec2
		consumed := 1
		if !onCurveAt(next + 1) {
			end = midpoint(next, next+1)
		} else {
			end = at(next + 1)
			consumed = 2
		}
		segs = append(segs, Segment{Op: QuadTo, Points: [3]geom.Vec2{control, end}})
		i = next + consumed - 1
		count += consumed
	}
	return segs
}
