// Package outline turns a font's raw contour description into the flat
// sequence of quadratic Béziers the rest of the pipeline (package vgrid,
// package atlasgroup) operates on.
//
// The outline source is a capability set (§6.1), not an inheritance
// hierarchy: a Source only has to describe its contours as a sequence of
// move/line/quadratic/cubic operations (the same shape every outline
// format — TrueType glyf, CFF/PostScript, SVG paths — eventually reduces
// to) and report a bounding rectangle and horizontal metrics in its own
// stored units. TTFSource (ttfsource.go) implements this for package ttf's
// TrueType glyf outlines, resolving TrueType's on/off-curve point tags into
// explicit QuadTo/LineTo ops as it walks them. SfntSource (sfntsource.go) implements it
// for OpenType/CFF outlines via golang.org/x/image/font/sfnt, whose
// segments are already move/line/quad/cubic and commonly include cubics,
// which get routed through package curve.
package outline

import (
	"github.com/glyphgrid/glyphgrid/curve"
	"github.com/glyphgrid/glyphgrid/geom"
)

// Op is a path operation, in the same small vocabulary every outline
// format reduces to.
type Op int

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
)

// Segment is one path operation. Points holds only as many entries as Op
// needs: 1 for MoveTo/LineTo, 2 for QuadTo (control, end), 3 for CubicTo
// (control1, control2, end).
type Segment struct {
	Op     Op
	Points [3]geom.Vec2
}

// Source is the capability set an outline provider must satisfy (§6.1).
type Source interface {
	// Segments returns the glyph's path, as a sequence of closed
	// contours (each starting with a MoveTo).
	Segments() []Segment
	// Bounds returns the glyph's bounding rectangle, taken from the
	// font's stored metrics rather than recomputed from the segments.
	Bounds() (minX, minY, maxX, maxY float64)
	// Metrics returns the glyph's left side bearing and horizontal
	// advance, in the same units as Bounds and Segments.
	Metrics() (bearingX, advance float64)
}

// Glyph is one glyph's extracted outline: a flat list of quadratic
// Béziers normalized to [0,Size.X] x [0,Size.Y], plus the metrics needed
// to place and advance it.
type Glyph struct {
	Curves   []geom.Bezier2
	Size     geom.Vec2 // glyph box width/height, glyph units
	BearingX float64
	Advance  float64
}

// Extract walks every segment of src and returns the glyph's flattened
// quadratic outline (C3). cubicEps is the sup-norm tolerance used to
// approximate any CubicTo segments (package curve); TrueType glyf sources
// never emit them, CFF/OpenType sources often do.
func Extract(src Source, cubicEps float64) Glyph {
	minX, minY, maxX, maxY := src.Bounds()
	size := geom.Vec2{X: maxX - minX, Y: maxY - minY}
	origin := geom.Vec2{X: minX, Y: minY}

	curves := flatten(src.Segments(), origin, cubicEps)

	bearingX, advance := src.Metrics()
	return Glyph{
		Curves:   curves,
		Size:     size,
		BearingX: bearingX - minX,
		Advance:  advance,
	}
}

// flatten converts a sequence of closed-contour segments into quadratic
// Béziers, translating every point by -origin so the result is normalized
// to the glyph's own bounding box.
func flatten(segs []Segment, origin geom.Vec2, cubicEps float64) []geom.Bezier2 {
	var curves []geom.Bezier2
	var cur, contourStart geom.Vec2
	contourStartIdx := -1

	closeContour := func() {
		if contourStartIdx >= 0 && cur != contourStart {
			curves = append(curves, geom.Bezier2{E0: cur, C: geom.Lerp(cur, contourStart, 0.5), E1: contourStart})
			cur = contourStart
		}
		contourStartIdx = -1
	}

	for _, s := range segs {
		switch s.Op {
		case MoveTo:
			closeContour()
			cur = s.Points[0].Sub(origin)
			contourStart = cur
			contourStartIdx = len(curves)
		case LineTo:
			end := s.Points[0].Sub(origin)
			curves = append(curves, geom.Bezier2{E0: cur, C: geom.Lerp(cur, end, 0.5), E1: end})
			cur = end
		case QuadTo:
			control := s.Points[0].Sub(origin)
			end := s.Points[1].Sub(origin)
			curves = append(curves, geom.Bezier2{E0: cur, C: control, E1: end})
			cur = end
		case CubicTo:
			c1 := s.Points[0].Sub(origin)
			c2 := s.Points[1].Sub(origin)
			end := s.Points[2].Sub(origin)
			qs := curve.Approximate(curve.Cubic{P0: cur, P1: c1, P2: c2, P3: end}, cubicEps)
			curves = append(curves, qs...)
			cur = end
		}
	}
	closeContour()
	return curves
}
