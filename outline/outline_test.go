package outline

import (
	"testing"

	"github.com/glyphgrid/glyphgrid/geom"
)

// fakeSource is a hand-built Source for exercising flatten/Extract without
// going through a real font parser.
type fakeSource struct {
	segs                   []Segment
	minX, minY, maxX, maxY float64
	bearingX, advance      float64
}

func (f fakeSource) Segments() []Segment { return f.segs }
func (f fakeSource) Bounds() (minX, minY, maxX, maxY float64) {
	return f.minX, f.minY, f.maxX, f.maxY
}
func (f fakeSource) Metrics() (bearingX, advance float64) { return f.bearingX, f.advance }

func moveTo(x, y float64) Segment { return Segment{Op: MoveTo, Points: [3]geom.Vec2{{X: x, Y: y}}} }
func lineTo(x, y float64) Segment { return Segment{Op: LineTo, Points: [3]geom.Vec2{{X: x, Y: y}}} }
func quadTo(cx, cy, x, y float64) Segment {
	return Segment{Op: QuadTo, Points: [3]geom.Vec2{{X: cx, Y: cy}, {X: x, Y: y}}}
}
func cubicTo(c1x, c1y, c2x, c2y, x, y float64) Segment {
	return Segment{Op: CubicTo, Points: [3]geom.Vec2{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, {X: x, Y: y}}}
}

// A testable property from the extraction contract: every contour closes,
// i.e. curve i's E1 equals curve (i+1 mod n)'s E0.
func assertClosed(t *testing.T, curves []geom.Bezier2, start, end int) {
	t.Helper()
	for i := start; i < end; i++ {
		next := i + 1
		if next == end {
			next = start
		}
		if curves[i].E1 != curves[next].E0 {
			t.Errorf("curve %d.E1 = %v, curve %d.E0 = %v, want equal (contour not closed)",
				i, curves[i].E1, next, curves[next].E0)
		}
	}
}

func TestFlattenClosesContourWithoutExplicitReturn(t *testing.T) {
	segs := []Segment{
		moveTo(0, 0),
		lineTo(10, 0),
		lineTo(5, 10),
		// no closing LineTo back to (0,0): flatten must synthesize it.
	}
	curves := flatten(segs, geom.Vec2{}, 0.1)
	if len(curves) != 3 {
		t.Fatalf("len(curves) = %d, want 3", len(curves))
	}
	assertClosed(t, curves, 0, len(curves))
	if curves[2].E1 != (geom.Vec2{X: 0, Y: 0}) {
		t.Errorf("closing curve E1 = %v, want (0,0)", curves[2].E1)
	}
}

func TestFlattenTranslatesByOrigin(t *testing.T) {
	segs := []Segment{moveTo(5, 5), lineTo(15, 5), lineTo(10, 15)}
	curves := flatten(segs, geom.Vec2{X: 5, Y: 5}, 0.1)
	if curves[0].E0 != (geom.Vec2{X: 0, Y: 0}) {
		t.Errorf("E0 after translation = %v, want (0,0)", curves[0].E0)
	}
}

func TestFlattenLineToUsesMidpointControl(t *testing.T) {
	segs := []Segment{moveTo(0, 0), lineTo(10, 0), lineTo(0, 0)}
	curves := flatten(segs, geom.Vec2{}, 0.1)
	want := geom.Vec2{X: 5, Y: 0}
	if curves[0].C != want {
		t.Errorf("line-as-quadratic control = %v, want %v (midpoint)", curves[0].C, want)
	}
}

func TestFlattenQuadToKeepsControlPoint(t *testing.T) {
	segs := []Segment{moveTo(0, 0), quadTo(5, 10, 10, 0), lineTo(0, 0)}
	curves := flatten(segs, geom.Vec2{}, 0.1)
	want := geom.Vec2{X: 5, Y: 10}
	if curves[0].C != want {
		t.Errorf("QuadTo control = %v, want %v", curves[0].C, want)
	}
}

func TestFlattenCubicToRoutesThroughApproximationAndStillCloses(t *testing.T) {
	segs := []Segment{
		moveTo(0, 0),
		cubicTo(0, 50, 50, 50, 50, 0),
		lineTo(0, 0),
	}
	curves := flatten(segs, geom.Vec2{}, 0.25)
	if len(curves) < 2 {
		t.Fatalf("len(curves) = %d, want at least 2 (cubic + closing line)", len(curves))
	}
	assertClosed(t, curves, 0, len(curves))
}

func TestFlattenMultipleContoursCloseIndependently(t *testing.T) {
	segs := []Segment{
		moveTo(0, 0), lineTo(10, 0), lineTo(5, 10),
		moveTo(20, 0), lineTo(30, 0), lineTo(25, 10),
	}
	curves := flatten(segs, geom.Vec2{}, 0.1)
	if len(curves) != 6 {
		t.Fatalf("len(curves) = %d, want 6", len(curves))
	}
	assertClosed(t, curves, 0, 3)
	assertClosed(t, curves, 3, 6)
	if curves[0].E0 == curves[3].E0 {
		t.Errorf("second contour should not share an origin with the first")
	}
}

func TestExtractNormalizesSizeAndBearingToBounds(t *testing.T) {
	src := fakeSource{
		segs:     []Segment{moveTo(10, 20), lineTo(40, 20), lineTo(25, 60)},
		minX:     10, minY: 20, maxX: 40, maxY: 60,
		bearingX: 12, advance: 50,
	}
	g := Extract(src, 0.1)
	if g.Size != (geom.Vec2{X: 30, Y: 40}) {
		t.Errorf("Size = %v, want (30,40)", g.Size)
	}
	if got, want := g.BearingX, 2.0; got != want {
		t.Errorf("BearingX = %v, want %v (bearingX - minX)", got, want)
	}
	if got, want := g.Advance, 50.0; got != want {
		t.Errorf("Advance = %v, want %v", got, want)
	}
	// Every curve endpoint must land within [0,Size] after normalization.
	for i, c := range g.Curves {
		for _, p := range []geom.Vec2{c.E0, c.E1} {
			if p.X < -1e-9 || p.X > g.Size.X+1e-9 || p.Y < -1e-9 || p.Y > g.Size.Y+1e-9 {
				t.Errorf("curve %d endpoint %v outside normalized box %v", i, p, g.Size)
			}
		}
	}
}

func TestExtractEmptySegmentsYieldsNoCurves(t *testing.T) {
	src := fakeSource{minX: 0, minY: 0, maxX: 0, maxY: 0}
	g := Extract(src, 0.1)
	if len(g.Curves) != 0 {
		t.Errorf("len(Curves) = %d, want 0 for a segment-less glyph (e.g. space)", len(g.Curves))
	}
}
