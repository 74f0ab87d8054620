// Package atlasgroup packs glyph curves and VGrids into the two
// CPU-backed byte buffers the shader reads through the §6.3 data
// contract (C5): a linear "glyph-data" texel buffer holding per-glyph
// header + curve texels, and a 2D "grid atlas" holding one texel per
// VGrid cell. Both buffers are append-only; once a group can't accept
// another glyph it is marked full and a new one is opened (see Pool).
package atlasgroup

import (
	"errors"

	"github.com/glyphgrid/glyphgrid/geom"
	"github.com/glyphgrid/glyphgrid/vgrid"
)

// Config sizes an AtlasGroup's two buffers. The defaults (256, 256, 20)
// match the design spec's kBezierAtlasSize/kGridAtlasSize/kGridMaxSize;
// tests use smaller values so AtlasGroupFull is reachable without
// allocating full-size buffers.
type Config struct {
	BezierAtlasSize int // glyph-data buffer side length, in texels
	GridAtlasSize   int // grid atlas side length, in texels
	GridMaxSize     int // allocation stride per glyph's grid region (== VGrid W/H)
}

// DefaultConfig returns the spec's production sizes.
func DefaultConfig() Config {
	return Config{BezierAtlasSize: 256, GridAtlasSize: 256, GridMaxSize: 20}
}

// Validate reports whether c's fields describe a usable atlas group.
func (c Config) Validate() error {
	if c.BezierAtlasSize <= 0 || c.GridAtlasSize <= 0 || c.GridMaxSize <= 0 {
		return errors.New("atlasgroup: sizes must be positive")
	}
	if c.GridMaxSize > c.GridAtlasSize {
		return errors.New("atlasgroup: GridMaxSize must not exceed GridAtlasSize")
	}
	return nil
}

func (c Config) texelCapacity() int { return c.BezierAtlasSize * c.BezierAtlasSize }

// errFull is the internal "this group cannot accept another glyph"
// sentinel (§7: AtlasGroupFull is never externally reported). Pool uses
// errors.Is against it to decide when to open a new group.
var errFull = errors.New("atlasgroup: group is full")

// ErrTooManyCurves reports that a glyph has more curves than a single
// byte can index (curveIndex+2 must fit in the grid atlas's per-slot
// byte), independent of which group it's inserted into: opening a new
// group cannot help, unlike errFull.
var ErrTooManyCurves = errors.New("atlasgroup: glyph has too many curves to index as a byte")

// AtlasGroup holds one pair of CPU-side atlas buffers plus their
// append-only cursors. Groups, once written, are immutable except for
// the Full/Uploaded flags.
type AtlasGroup struct {
	cfg Config

	glyphData []byte // BezierAtlasSize^2 texels, 4 bytes/texel (two 16-bit fields)
	gridAtlas []byte // GridAtlasSize^2 texels, 4 bytes/texel (four slot bytes)

	glyphDataOffset      int // next free texel index into glyphData
	nextGridX, nextGridY int // next free cell-region origin into gridAtlas

	full     bool
	uploaded bool
}

// New returns an empty AtlasGroup sized per cfg.
func New(cfg Config) *AtlasGroup {
	return &AtlasGroup{
		cfg:       cfg,
		glyphData: make([]byte, cfg.texelCapacity()*4),
		gridAtlas: make([]byte, cfg.GridAtlasSize*cfg.GridAtlasSize*4),
	}
}

// Full reports whether the group can no longer accept a glyph.
func (g *AtlasGroup) Full() bool { return g.full }

// Uploaded reports whether GlyphData/GridAtlas have been flushed to the
// GPU since their last mutation.
func (g *AtlasGroup) Uploaded() bool { return g.uploaded }

// MarkUploaded is called by package gpuupload after a successful flush.
func (g *AtlasGroup) MarkUploaded() { g.uploaded = true }

// GlyphData returns the raw glyph-data buffer for GPU upload.
func (g *AtlasGroup) GlyphData() []byte { return g.glyphData }

// GridAtlas returns the raw grid-atlas buffer for GPU upload.
func (g *AtlasGroup) GridAtlas() []byte { return g.gridAtlas }

// Size returns the configured side lengths of the two buffers.
func (g *AtlasGroup) Size() (bezierAtlasSize, gridAtlasSize, gridMaxSize int) {
	return g.cfg.BezierAtlasSize, g.cfg.GridAtlasSize, g.cfg.GridMaxSize
}

// Insert packs one glyph's curves and VGrid into the group, returning
// the glyph-data texel offset and the grid atlas cell-region origin
// (§4.5). A failed insert (errFull or ErrTooManyCurves) leaves both
// buffers and both cursors exactly as they were before the call.
func (g *AtlasGroup) Insert(curves []geom.Bezier2, grid *vgrid.Grid, glyphSize geom.Vec2) (texelOffset, gridX, gridY int, err error) {
	if g.full {
		return 0, 0, 0, errFull
	}
	if (len(curves)-1)+2 > 255 {
		return 0, 0, 0, ErrTooManyCurves
	}

	nTexels := 2 + 3*len(curves)
	if g.glyphDataOffset+nTexels > g.cfg.texelCapacity() {
		g.full = true
		return 0, 0, 0, errFull
	}

	gridX, gridY = g.nextGridX, g.nextGridY

	texelOffset = g.glyphDataOffset
	writeHeaderTexels(g.glyphData, texelOffset, gridX, gridY, grid.W, grid.H)
	writeCurveTexels(g.glyphData, texelOffset+2, curves, glyphSize)
	writeGridCells(g.gridAtlas, g.cfg.GridAtlasSize, gridX, gridY, grid)

	g.glyphDataOffset += nTexels
	g.uploaded = false

	newX := gridX + g.cfg.GridMaxSize
	if newX+g.cfg.GridMaxSize > g.cfg.GridAtlasSize {
		newX = 0
		newY := gridY + g.cfg.GridMaxSize
		if newY+g.cfg.GridMaxSize > g.cfg.GridAtlasSize {
			g.full = true
		} else {
			g.nextGridX, g.nextGridY = newX, newY
		}
	} else {
		g.nextGridX = newX
	}
	return texelOffset, gridX, gridY, nil
}
