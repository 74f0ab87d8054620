package geom

import (
	"math"
	"testing"
)

func TestBezier2At(t *testing.T) {
	for _, tc := range [...]struct {
		b    Bezier2
		t    float64
		want Vec2
	}{
		{Bezier2{Vec2{0, 0}, Vec2{5, 10}, Vec2{10, 0}}, 0, Vec2{0, 0}},
		{Bezier2{Vec2{0, 0}, Vec2{5, 10}, Vec2{10, 0}}, 1, Vec2{10, 0}},
		{Bezier2{Vec2{0, 0}, Vec2{5, 10}, Vec2{10, 0}}, 0.5, Vec2{5, 5}},
	} {
		got := tc.b.At(tc.t)
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
			t.Errorf("At(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestBezier2BoundsExactExtremum(t *testing.T) {
	// A symmetric curve peaking at t=0.5, y=5: extremum detection must find
	// it rather than just bounding the endpoints.
	b := Bezier2{Vec2{0, 0}, Vec2{5, 10}, Vec2{10, 0}}
	r := b.Bounds()
	if r.MaxY != 5 {
		t.Errorf("MaxY = %v, want 5", r.MaxY)
	}
	if r.MinX != 0 || r.MaxX != 10 {
		t.Errorf("X bounds = [%v,%v], want [0,10]", r.MinX, r.MaxX)
	}
}

func TestBezier2BoundsLinear(t *testing.T) {
	// A degenerate "straight line" quadratic (control = midpoint): bounds
	// must reduce to the endpoint bounding box since the derivative never
	// vanishes inside (0,1).
	b := Bezier2{Vec2{0, 0}, Vec2{5, 5}, Vec2{10, 10}}
	r := b.Bounds()
	want := Rect{0, 0, 10, 10}
	if r != want {
		t.Errorf("Bounds() = %v, want %v", r, want)
	}
}

func TestRectIntersects(t *testing.T) {
	for _, tc := range [...]struct {
		a, b Rect
		want bool
	}{
		{Rect{0, 0, 1, 1}, Rect{1, 1, 2, 2}, true}, // touching at corner
		{Rect{0, 0, 1, 1}, Rect{2, 2, 3, 3}, false},
		{Rect{0, 0, 10, 10}, Rect{3, 3, 4, 4}, true},
	} {
		if got := tc.a.Intersects(tc.b); got != tc.want {
			t.Errorf("%v.Intersects(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
}
