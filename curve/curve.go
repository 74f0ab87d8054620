// Package curve approximates cubic Bézier arcs by a short run of quadratic
// Béziers, within a caller-supplied error tolerance.
package curve

import (
	"github.com/glyphgrid/glyphgrid/geom"
)

// maxRecursionDepth bounds the midpoint-subdivision recursion. At the
// limit the current approximation is emitted regardless of its error.
const maxRecursionDepth = 10

// errorConstant is the fixed scale k applied to the cubic's third
// derivative term when estimating the single-quadratic approximation
// error (§4.2).
const errorConstant = 0.25

// Cubic is a cubic Bézier curve with control points P0, P1, P2, P3.
type Cubic struct {
	P0, P1, P2, P3 geom.Vec2
}

// Approximate returns an ordered list of quadratic Béziers whose
// concatenation approximates c to within eps (glyph-unit sup-norm), with
// endpoints P0 and P3 preserved exactly.
func Approximate(c Cubic, eps float64) []geom.Bezier2 {
	var out []geom.Bezier2
	subdivide(c, eps, 0, &out)
	return out
}

func subdivide(c Cubic, eps float64, depth int, out *[]geom.Bezier2) {
	q, errEstimate := approximateOne(c)
	if errEstimate <= eps || depth >= maxRecursionDepth {
		*out = append(*out, q)
		return
	}
	left, right := split(c)
	subdivide(left, eps, depth+1, out)
	subdivide(right, eps, depth+1, out)
}

// approximateOne returns the single best-fit quadratic for c (endpoints
// P0, P3; control point the average of the two "shoulder" controls) along
// with an estimate of its sup-norm error.
func approximateOne(c Cubic) (geom.Bezier2, float64) {
	shoulder0 := c.P1.Scale(3).Sub(c.P0).Scale(0.5)
	shoulder1 := c.P2.Scale(3).Sub(c.P3).Scale(0.5)
	control := shoulder0.Add(shoulder1).Scale(0.5)

	q := geom.Bezier2{E0: c.P0, C: control, E1: c.P3}

	// |P3 - 3P2 + 3P1 - P0| * k
	d := c.P3.Sub(c.P2.Scale(3)).Add(c.P1.Scale(3)).Sub(c.P0)
	errEstimate := d.Norm() * errorConstant
	return q, errEstimate
}

// split de Casteljau-splits c at t=0.5 into two cubics covering [0,0.5] and
// [0.5,1].
func split(c Cubic) (left, right Cubic) {
	p01 := geom.Lerp(c.P0, c.P1, 0.5)
	p12 := geom.Lerp(c.P1, c.P2, 0.5)
	p23 := geom.Lerp(c.P2, c.P3, 0.5)
	p012 := geom.Lerp(p01, p12, 0.5)
	p123 := geom.Lerp(p12, p23, 0.5)
	mid := geom.Lerp(p012, p123, 0.5)

	left = Cubic{c.P0, p01, p012, mid}
	right = Cubic{mid, p123, p23, c.P3}
	return left, right
}
