// Package geom provides the 2D primitives the rest of the glyph pipeline is
// built from: points, quadratic Béziers and axis-aligned rectangles, all in
// glyph units (unscaled font design units).
package geom

import "math"

// Vec2 is a point or vector in glyph units.
type Vec2 struct {
	X, Y float64
}

// Add returns a+b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

// Sub returns a-b.
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Scale returns a scaled by s.
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns the dot product of a and b.
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Cross returns the z-component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Norm returns the Euclidean length of a.
func (a Vec2) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Lerp returns the linear interpolation between a and b at parameter t.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Rect is an axis-aligned rectangle, MinX/MinY inclusive, MaxX/MaxY
// inclusive, in glyph units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle's vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Intersects reports whether r and o share any area or boundary.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Bezier2 is a quadratic Bézier curve: B(t) = (1-t)²e0 + 2(1-t)t·c + t²e1.
type Bezier2 struct {
	E0, C, E1 Vec2
}

// At evaluates the curve at parameter t.
func (b Bezier2) At(t float64) Vec2 {
	mt := 1 - t
	p := b.E0.Scale(mt * mt)
	p = p.Add(b.C.Scale(2 * mt * t))
	p = p.Add(b.E1.Scale(t * t))
	return p
}

// Tangent returns the (unnormalized) derivative of the curve at t.
func (b Bezier2) Tangent(t float64) Vec2 {
	// B'(t) = 2(1-t)(c-e0) + 2t(e1-c)
	a := b.C.Sub(b.E0).Scale(2 * (1 - t))
	c := b.E1.Sub(b.C).Scale(2 * t)
	return a.Add(c)
}

// axisExtremum returns the parametric t where the derivative of a single
// axis (e0, c, e1) vanishes, or (0, false) if the curve is linear in that
// axis or the extremum falls outside (0,1).
func axisExtremum(e0, c, e1 float64) (float64, bool) {
	denom := e0 - 2*c + e1
	if denom == 0 {
		return 0, false
	}
	t := (e0 - c) / denom
	if t <= 0 || t >= 1 {
		return 0, false
	}
	return t, true
}

// Bounds returns the exact axis-aligned bounding box of the curve: the
// extrema occur at t=0, t=1, or wherever the derivative of one axis
// vanishes.
func (b Bezier2) Bounds() Rect {
	r := Rect{
		MinX: math.Min(b.E0.X, b.E1.X),
		MinY: math.Min(b.E0.Y, b.E1.Y),
		MaxX: math.Max(b.E0.X, b.E1.X),
		MaxY: math.Max(b.E0.Y, b.E1.Y),
	}
	if t, ok := axisExtremum(b.E0.X, b.C.X, b.E1.X); ok {
		x := b.At(t).X
		r.MinX = math.Min(r.MinX, x)
		r.MaxX = math.Max(r.MaxX, x)
	}
	if t, ok := axisExtremum(b.E0.Y, b.C.Y, b.E1.Y); ok {
		y := b.At(t).Y
		r.MinY = math.Min(r.MinY, y)
		r.MaxY = math.Max(r.MaxY, y)
	}
	return r
}
