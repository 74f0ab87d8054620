// Package glyphcache maps (font handle, codepoint) pairs to packed
// glyph records, orchestrating the C3 -> C2 -> C4 -> C5 pipeline on a
// cache miss (§4.6, C6). The cache is monotonic: entries are never
// evicted, matching the design spec's justification that the strict
// per-atlas-group capacity and application-scale expectations (hundreds
// to low thousands of distinct glyphs) make LRU unnecessary.
package glyphcache

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/glyphgrid/glyphgrid/atlasgroup"
	"github.com/glyphgrid/glyphgrid/geom"
	"github.com/glyphgrid/glyphgrid/outline"
	"github.com/glyphgrid/glyphgrid/vgrid"
)

// OutlineEmptyError reports that a glyph has no contours (e.g.
// whitespace). Manager.Glyph caches a degenerate record and returns it
// together with this error; later lookups of the same key return the
// cached record with a nil error (§7).
type OutlineEmptyError struct {
	Codepoint rune
}

func (e OutlineEmptyError) Error() string {
	return fmt.Sprintf("glyphcache: glyph for %q has no contours", e.Codepoint)
}

// TooManyCurvesInCellError wraps vgrid's capacity failure (§7). Like
// OutlineEmptyError, it is returned together with a cached degenerate
// GlyphRecord.
type TooManyCurvesInCellError struct {
	Codepoint rune
	Cause     error
}

func (e TooManyCurvesInCellError) Error() string {
	return fmt.Sprintf("glyphcache: glyph for %q: %v", e.Codepoint, e.Cause)
}

func (e TooManyCurvesInCellError) Unwrap() error { return e.Cause }

// BezierBudgetExceededError reports that a glyph's curves don't fit the
// glyph-data buffer budget even in a freshly opened atlas group (§7), or
// that it has more curves than a grid slot byte can index
// (atlasgroup.ErrTooManyCurves). It too is returned together with a
// cached degenerate GlyphRecord.
type BezierBudgetExceededError struct {
	Codepoint rune
	Cause     error
}

func (e BezierBudgetExceededError) Error() string {
	return fmt.Sprintf("glyphcache: glyph for %q: %v", e.Codepoint, e.Cause)
}

func (e BezierBudgetExceededError) Unwrap() error { return e.Cause }

// OutlineProviderError wraps an error from the font library's outline
// source and propagates to the caller. Unlike the above, no cache entry
// is stored (§7).
type OutlineProviderError struct {
	Codepoint rune
	Cause     error
}

func (e OutlineProviderError) Error() string {
	return fmt.Sprintf("glyphcache: outline provider failed for %q: %v", e.Codepoint, e.Cause)
}

func (e OutlineProviderError) Unwrap() error { return e.Cause }

// GlyphRecord is the cache value: everything the renderer needs to draw
// one glyph and everything the shader's data contract (§6.3) needs to
// locate it.
type GlyphRecord struct {
	AtlasGroupIndex int
	GlyphDataOffset int // texels, into the group's glyph-data buffer
	EmBoxSize       geom.Vec2
	BearingX        float64
	Advance         float64
	NoCurves        bool // degenerate: zero visible area, metrics still valid
}

// Key identifies a glyph by the font it came from and its codepoint.
// FontHandle is an opaque comparable value the caller chooses (e.g. a
// pointer or small int); the cache never dereferences it.
type Key struct {
	FontHandle any
	Codepoint  rune
}

// Config tunes the pipeline. Zero value is invalid; use DefaultConfig
// and override fields as needed, mirroring the teacher's
// Options-with-defaults convention.
type Config struct {
	GridW, GridH int          // VGrid dimensions, default 20x20 (§3)
	Atlas        atlasgroup.Config
	CubicEps     float64 // cubic->quadratic tolerance, in glyph units (§9 open question)
}

// DefaultConfig returns production-sized settings except CubicEps, which
// is left at zero and must be set by the caller (see DefaultCubicEps)
// once the font is known: a fixed constant would be meaningless across
// fonts of differing unit scale, and NewManager rejects a zero CubicEps
// rather than silently driving curve.Approximate with eps=0 (which would
// subdivide every cubic to the recursion limit).
func DefaultConfig() Config {
	return Config{
		GridW: 20,
		GridH: 20,
		Atlas: atlasgroup.DefaultConfig(),
	}
}

// DefaultCubicEps returns a cubic-approximation tolerance scaled to a
// font's design-unit grid: one two-thousandth of an em, small enough to
// be imperceptible at any rendered size while keeping the quadratic
// count low for typical CFF glyphs.
func DefaultCubicEps(unitsPerEm int) float64 {
	return float64(unitsPerEm) / 2000
}

func (c Config) validate() error {
	if c.GridW <= 0 || c.GridH <= 0 {
		return errors.New("glyphcache: GridW/GridH must be positive")
	}
	if c.CubicEps <= 0 {
		return errors.New("glyphcache: CubicEps must be positive; set it from DefaultCubicEps(font.UnitsPerEm())")
	}
	return c.Atlas.Validate()
}

// Manager is the explicit owner of one glyph cache and its atlas pool
// (§9 Design Notes: "Global singleton -> explicit owner"). It is not
// safe for concurrent use (§5: single-threaded cooperative core).
type Manager struct {
	cfg   Config
	log   *zap.Logger
	pool  *atlasgroup.Pool
	cache map[Key]GlyphRecord
}

// NewManager returns a ready-to-use Manager. A nil logger is replaced
// with a no-op logger, matching the teacher's zero-value-usable struct
// habit.
func NewManager(cfg Config, log *zap.Logger) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:   cfg,
		log:   log,
		pool:  atlasgroup.NewPool(cfg.Atlas),
		cache: make(map[Key]GlyphRecord),
	}, nil
}

// Pool returns the atlas pool backing this cache, for package gpuupload
// to flush.
func (m *Manager) Pool() *atlasgroup.Pool { return m.pool }

// Glyph returns the GlyphRecord for (fontHandle, codepoint), building
// and caching it on first request. Repeated calls for the same key are
// idempotent and return the identical record (§8 property 7,
// monotonicity).
//
// src must already be positioned at the requested glyph (outline
// sources are per-glyph in this design, see package outline); buildErr
// is any error the outline provider itself raised locating or decoding
// the glyph, which is propagated as OutlineProviderError without
// touching the cache.
func (m *Manager) Glyph(fontHandle any, codepoint rune, src outline.Source, buildErr error) (GlyphRecord, error) {
	key := Key{FontHandle: fontHandle, Codepoint: codepoint}
	if rec, ok := m.cache[key]; ok {
		return rec, nil
	}
	if buildErr != nil {
		return GlyphRecord{}, OutlineProviderError{Codepoint: codepoint, Cause: buildErr}
	}

	g := outline.Extract(src, m.cfg.CubicEps)
	rec := GlyphRecord{
		EmBoxSize: g.Size,
		BearingX:  g.BearingX,
		Advance:   g.Advance,
	}

	if len(g.Curves) == 0 {
		rec.NoCurves = true
		m.cache[key] = rec
		// Not logged: whitespace glyphs are expected, not a warning.
		return rec, OutlineEmptyError{Codepoint: codepoint}
	}

	grid, err := vgrid.Build(g.Curves, g.Size, m.cfg.GridW, m.cfg.GridH)
	if err != nil {
		m.log.Warn("glyph exceeds per-cell curve capacity, storing degenerate record",
			zap.Any("font_handle", fontHandle),
			zap.Int32("codepoint", int32(codepoint)),
			zap.Error(err),
		)
		rec.NoCurves = true
		m.cache[key] = rec
		return rec, TooManyCurvesInCellError{Codepoint: codepoint, Cause: err}
	}

	_, offset, _, _, err := m.pool.Insert(g.Curves, grid, g.Size)
	if err != nil {
		m.log.Warn("glyph exceeds glyph-data buffer budget, storing degenerate record",
			zap.Any("font_handle", fontHandle),
			zap.Int32("codepoint", int32(codepoint)),
			zap.Error(err),
		)
		rec.NoCurves = true
		m.cache[key] = rec
		return rec, BezierBudgetExceededError{Codepoint: codepoint, Cause: err}
	}

	rec.AtlasGroupIndex = len(m.pool.Groups()) - 1
	rec.GlyphDataOffset = offset
	m.cache[key] = rec
	return rec, nil
}

