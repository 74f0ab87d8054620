package glyphcache

import (
	"errors"
	"testing"

	"github.com/glyphgrid/glyphgrid/geom"
	"github.com/glyphgrid/glyphgrid/outline"
)

// fakeSource is a minimal outline.Source for testing the cache without
// a real font file.
type fakeSource struct {
	segs       []outline.Segment
	minX, minY float64
	maxX, maxY float64
	bearingX, advance float64
}

func (s fakeSource) Segments() []outline.Segment { return s.segs }
func (s fakeSource) Bounds() (minX, minY, maxX, maxY float64) {
	return s.minX, s.minY, s.maxX, s.maxY
}
func (s fakeSource) Metrics() (bearingX, advance float64) { return s.bearingX, s.advance }

func rectSource(w, h float64) fakeSource {
	v := func(x, y float64) geom.Vec2 { return geom.Vec2{X: x, Y: y} }
	return fakeSource{
		segs: []outline.Segment{
			{Op: outline.MoveTo, Points: [3]geom.Vec2{v(0, 0)}},
			{Op: outline.LineTo, Points: [3]geom.Vec2{v(w, 0)}},
			{Op: outline.LineTo, Points: [3]geom.Vec2{v(w, h)}},
			{Op: outline.LineTo, Points: [3]geom.Vec2{v(0, h)}},
			{Op: outline.LineTo, Points: [3]geom.Vec2{v(0, 0)}},
		},
		minX: 0, minY: 0, maxX: w, maxY: h,
		bearingX: 0, advance: w + 10,
	}
}

func emptySource() fakeSource {
	return fakeSource{advance: 50}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CubicEps = 1
	m, err := NewManager(cfg, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestGlyphCachesOnSecondLookup(t *testing.T) {
	m := newTestManager(t)
	src := rectSource(100, 100)

	rec1, err := m.Glyph("font-a", 'A', src, nil)
	if err != nil {
		t.Fatalf("first Glyph: %v", err)
	}
	if rec1.NoCurves {
		t.Fatal("rec1.NoCurves = true, want false for a rectangle glyph")
	}

	rec2, err := m.Glyph("font-a", 'A', src, nil)
	if err != nil {
		t.Fatalf("second Glyph: %v", err)
	}
	if rec1 != rec2 {
		t.Errorf("rec2 = %+v, want identical to rec1 %+v", rec2, rec1)
	}
}

func TestGlyphEmptyOutlineIsDegenerate(t *testing.T) {
	m := newTestManager(t)
	rec, err := m.Glyph("font-a", ' ', emptySource(), nil)
	var oe OutlineEmptyError
	if !errors.As(err, &oe) {
		t.Fatalf("err = %v, want OutlineEmptyError", err)
	}
	if !rec.NoCurves {
		t.Error("rec.NoCurves = false, want true for an empty outline")
	}
	if rec.Advance != 50 {
		t.Errorf("rec.Advance = %v, want 50 (metrics preserved for degenerate glyphs)", rec.Advance)
	}
}

func TestGlyphOutlineProviderErrorNotCached(t *testing.T) {
	m := newTestManager(t)
	wantErr := errors.New("boom")
	_, err := m.Glyph("font-a", 'X', fakeSource{}, wantErr)
	var pe OutlineProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want OutlineProviderError", err)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err does not wrap original cause %v", wantErr)
	}
	if _, ok := m.cache[Key{FontHandle: "font-a", Codepoint: 'X'}]; ok {
		t.Error("a provider error must not create a cache entry")
	}
}

func TestGlyphDistinctCodepointsGetDistinctOffsets(t *testing.T) {
	m := newTestManager(t)
	recA, err := m.Glyph("font-a", 'A', rectSource(50, 50), nil)
	if err != nil {
		t.Fatalf("Glyph A: %v", err)
	}
	recB, err := m.Glyph("font-a", 'B', rectSource(60, 60), nil)
	if err != nil {
		t.Fatalf("Glyph B: %v", err)
	}
	if recA.GlyphDataOffset == recB.GlyphDataOffset && recA.AtlasGroupIndex == recB.AtlasGroupIndex {
		t.Error("two distinct glyphs were packed at the same atlas location")
	}
}
