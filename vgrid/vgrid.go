// Package vgrid builds the fixed-size spatial index (§4.4, C4) that lets
// the shader narrow a fragment down to the handful of curves near it
// instead of testing every curve in the glyph.
package vgrid

import (
	"fmt"
	"math"

	"github.com/glyphgrid/glyphgrid/geom"
)

// MaxCellCurves is the number of curve slots a cell has room for. The
// shader's fetch sequence (§6.3) reads one RGBA8 grid texel per cell,
// i.e. four slot bytes, so this is not a tunable.
const MaxCellCurves = 4

// TooManyCurvesInCellError reports that a cell's incident curve count
// exceeded MaxCellCurves (§7).
type TooManyCurvesInCellError struct {
	X, Y  int
	Count int
}

func (e TooManyCurvesInCellError) Error() string {
	return fmt.Sprintf("vgrid: cell (%d,%d) has %d curves, exceeds max %d", e.X, e.Y, e.Count, MaxCellCurves)
}

// Cell is one grid cell's encoded slot list. Real curve indices are
// stored as curveIndex+2; unused trailing slots carry the sentinels 0
// and 1, ordered so Slots[0] > Slots[1] iff MidInside (§4.4 step 4).
type Cell struct {
	Slots     [MaxCellCurves]int
	MidInside bool
}

// Grid is one glyph's W×H VGrid (§3).
type Grid struct {
	W, H  int
	Cells []Cell // row-major, length W*H, index (y*W + x)
}

// At returns the cell at grid coordinate (x,y).
func (g *Grid) At(x, y int) Cell { return g.Cells[y*g.W+x] }

// Build constructs the VGrid for a glyph's flattened curve list over a
// W×H grid spanning [0,glyphSize.X] x [0,glyphSize.Y].
func Build(curves []geom.Bezier2, glyphSize geom.Vec2, W, H int) (*Grid, error) {
	lists := make([][]int, W*H)

	if glyphSize.X > 0 && glyphSize.Y > 0 {
		sx := float64(W) / glyphSize.X
		sy := float64(H) / glyphSize.Y
		for ci, c := range curves {
			b := c.Bounds()
			x0 := clampInt(int(math.Floor(b.MinX*sx)), 0, W-1)
			x1 := clampInt(int(math.Ceil(b.MaxX*sx))-1, 0, W-1)
			y0 := clampInt(int(math.Floor(b.MinY*sy)), 0, H-1)
			y1 := clampInt(int(math.Ceil(b.MaxY*sy))-1, 0, H-1)
			for y := y0; y <= y1; y++ {
				cellTop, cellBottom := float64(y)/sy, float64(y+1)/sy
				for x := x0; x <= x1; x++ {
					cellLeft, cellRight := float64(x)/sx, float64(x+1)/sx
					if curveIntersectsCell(c, cellLeft, cellRight, cellTop, cellBottom) {
						idx := y*W + x
						lists[idx] = append(lists[idx], ci)
					}
				}
			}
		}
	}

	cells := make([]Cell, W*H)
	for y := 0; y < H; y++ {
		cy := (float64(y) + 0.5) / float64(H) * glyphSize.Y
		for x := 0; x < W; x++ {
			cx := (float64(x) + 0.5) / float64(W) * glyphSize.X
			idx := y*W + x
			list := lists[idx]
			if len(list) > MaxCellCurves {
				return nil, TooManyCurvesInCellError{X: x, Y: y, Count: len(list)}
			}
			mid := midInside(curves, geom.Vec2{X: cx, Y: cy})
			cells[idx] = encodeCell(list, mid)
		}
	}
	return &Grid{W: W, H: H, Cells: cells}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// curveIntersectsCell is the "finer test" of §4.4 step 1: true if any of
// the curve's parametric points at t in {0,1} or where B(t).x or B(t).y
// crosses a cell edge falls within the cell's rectangle.
func curveIntersectsCell(c geom.Bezier2, left, right, top, bottom float64) bool {
	inCell := func(p geom.Vec2) bool {
		return p.X >= left && p.X <= right && p.Y >= top && p.Y <= bottom
	}
	if inCell(c.At(0)) || inCell(c.At(1)) {
		return true
	}
	for _, xEdge := range [2]float64{left, right} {
		for _, t := range axisCrossings(c.E0.X, c.C.X, c.E1.X, xEdge) {
			if inCell(c.At(t)) {
				return true
			}
		}
	}
	for _, yEdge := range [2]float64{top, bottom} {
		for _, t := range axisCrossings(c.E0.Y, c.C.Y, c.E1.Y, yEdge) {
			if inCell(c.At(t)) {
				return true
			}
		}
	}
	return false
}

// axisCrossings solves the scalar quadratic (1-t)^2*e0 + 2(1-t)t*c +
// t^2*e1 == target for t in [0,1], returning 0, 1, or 2 roots.
func axisCrossings(e0, c, e1, target float64) []float64 {
	a := e0 - 2*c + e1
	b := 2 * (c - e0)
	cc := e0 - target
	var ts []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil
		}
		t := -cc / b
		if t >= 0 && t <= 1 {
			ts = append(ts, t)
		}
		return ts
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t >= 0 && t <= 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// midInside is the §4.4 step 3 even-odd ray cast, against the whole
// glyph's curve list regardless of which cell is being tested.
func midInside(curves []geom.Bezier2, center geom.Vec2) bool {
	count := 0
	for _, c := range curves {
		for _, t := range axisCrossings(c.E0.Y, c.C.Y, c.E1.Y, center.Y) {
			// t==1 is the shared endpoint with the next segment in the
			// contour; counting it here and as t==0 of the next curve
			// would double-count the crossing, so only t==0 and interior
			// t count.
			if t >= 1 {
				continue
			}
			if c.At(t).X > center.X {
				count++
			}
		}
	}
	return count%2 == 1
}

// encodeCell lays real curve indices into the leading slots as
// curveIndex+2, then fills the remainder with the sentinel pair ordered
// per §4.4 step 4.
func encodeCell(list []int, midInside bool) Cell {
	var cell Cell
	cell.MidInside = midInside
	i := 0
	for _, ci := range list {
		cell.Slots[i] = ci + 2
		i++
	}
	s0, s1 := 0, 1
	if midInside {
		s0, s1 = 1, 0
	}
	// Only the first two slots past the real curves carry the sentinel
	// pair; any further slots are zero-filled (matching the all-empty
	// examples [1,0,0,0] / [0,1,0,0], not a repeated s1).
	rem := i
	for ; i < MaxCellCurves; i++ {
		switch i - rem {
		case 0:
			cell.Slots[i] = s0
		case 1:
			cell.Slots[i] = s1
		default:
			cell.Slots[i] = 0
		}
	}
	return cell
}
