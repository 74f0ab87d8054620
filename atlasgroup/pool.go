package atlasgroup

import (
	"errors"
	"fmt"

	"github.com/glyphgrid/glyphgrid/geom"
	"github.com/glyphgrid/glyphgrid/vgrid"
)

// ErrGlyphTooLarge reports that a glyph's curves don't fit even in a
// freshly opened, empty atlas group: its glyph-data footprint exceeds
// the configured BezierAtlasSize budget outright.
var ErrGlyphTooLarge = errors.New("atlasgroup: glyph exceeds the glyph-data buffer budget")

// Pool owns a growable sequence of AtlasGroups, opening a new one
// whenever the current group reports itself full (§4.5, §7
// AtlasGroupFull: never surfaced past this package).
type Pool struct {
	cfg    Config
	groups []*AtlasGroup
}

// NewPool returns an empty Pool. The first group is opened lazily on
// the first Insert.
func NewPool(cfg Config) *Pool {
	return &Pool{cfg: cfg}
}

// Groups returns the pool's atlas groups, in insertion order. Indices
// into this slice are what GlyphRecord.AtlasGroupIndex refers to.
func (p *Pool) Groups() []*AtlasGroup { return p.groups }

// Insert packs one glyph into whichever group currently has room,
// opening new groups as needed. Monotonicity (§8 property 7): once an
// insert succeeds, its (groupIndex, texelOffset) never changes.
func (p *Pool) Insert(curves []geom.Bezier2, grid *vgrid.Grid, glyphSize geom.Vec2) (groupIndex, texelOffset, gridX, gridY int, err error) {
	if len(p.groups) == 0 || p.groups[len(p.groups)-1].Full() {
		p.groups = append(p.groups, New(p.cfg))
	}
	groupIndex = len(p.groups) - 1
	texelOffset, gridX, gridY, err = p.groups[groupIndex].Insert(curves, grid, glyphSize)
	if errors.Is(err, errFull) {
		p.groups = append(p.groups, New(p.cfg))
		groupIndex = len(p.groups) - 1
		texelOffset, gridX, gridY, err = p.groups[groupIndex].Insert(curves, grid, glyphSize)
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("%w: %v", ErrGlyphTooLarge, err)
		}
	}
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return groupIndex, texelOffset, gridX, gridY, nil
}
