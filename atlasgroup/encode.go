package atlasgroup

import (
	"math"

	"github.com/glyphgrid/glyphgrid/geom"
	"github.com/glyphgrid/glyphgrid/vgrid"
)

// A glyph-data texel packs one 2D point as two 16-bit unsigned fields:
// low byte in R, high byte in G for the x field; low byte in B, high
// byte in A for the y field (§4.5).

func putTexel(buf []byte, texelIndex int, x, y uint16) {
	b := buf[texelIndex*4 : texelIndex*4+4]
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(y)
	b[3] = byte(y >> 8)
}

func getTexel(buf []byte, texelIndex int) (x, y uint16) {
	b := buf[texelIndex*4 : texelIndex*4+4]
	x = uint16(b[0]) | uint16(b[1])<<8
	y = uint16(b[2]) | uint16(b[3])<<8
	return x, y
}

// writeHeaderTexels writes the two per-glyph header texels: (gridX,
// gridY) then (W, H).
func writeHeaderTexels(buf []byte, offset, gridX, gridY, w, h int) {
	putTexel(buf, offset, uint16(gridX), uint16(gridY))
	putTexel(buf, offset+1, uint16(w), uint16(h))
}

// ReadHeaderTexels decodes the header texels at offset back into
// (gridX, gridY, w, h), the §8 property 5 round-trip.
func ReadHeaderTexels(buf []byte, offset int) (gridX, gridY, w, h int) {
	x, y := getTexel(buf, offset)
	w16, h16 := getTexel(buf, offset+1)
	return int(x), int(y), int(w16), int(h16)
}

// quantize maps a coordinate in [0,axis] to a 16-bit unsigned code, per
// §4.5: round(coord * UINT16_MAX / axis).
func quantize(coord, axis float64) uint16 {
	if axis <= 0 {
		return 0
	}
	q := math.Round(coord * 65535 / axis)
	if q < 0 {
		q = 0
	}
	if q > 65535 {
		q = 65535
	}
	return uint16(q)
}

func dequantize(code uint16, axis float64) float64 {
	return float64(code) / 65535 * axis
}

// writeCurveTexels writes one (e0, c, e1) triplet per curve, each point
// quantized against glyphSize.
func writeCurveTexels(buf []byte, offset int, curves []geom.Bezier2, glyphSize geom.Vec2) {
	for i, c := range curves {
		base := offset + 3*i
		putTexel(buf, base, quantize(c.E0.X, glyphSize.X), quantize(c.E0.Y, glyphSize.Y))
		putTexel(buf, base+1, quantize(c.C.X, glyphSize.X), quantize(c.C.Y, glyphSize.Y))
		putTexel(buf, base+2, quantize(c.E1.X, glyphSize.X), quantize(c.E1.Y, glyphSize.Y))
	}
}

// ReadCurveTexel decodes the i'th curve's triplet starting at offset
// back into a Bezier2 in glyph units, up to quantization error.
func ReadCurveTexel(buf []byte, offset, i int, glyphSize geom.Vec2) geom.Bezier2 {
	base := offset + 3*i
	x0, y0 := getTexel(buf, base)
	xc, yc := getTexel(buf, base+1)
	x1, y1 := getTexel(buf, base+2)
	return geom.Bezier2{
		E0: geom.Vec2{X: dequantize(x0, glyphSize.X), Y: dequantize(y0, glyphSize.Y)},
		C:  geom.Vec2{X: dequantize(xc, glyphSize.X), Y: dequantize(yc, glyphSize.Y)},
		E1: geom.Vec2{X: dequantize(x1, glyphSize.X), Y: dequantize(y1, glyphSize.Y)},
	}
}

// writeGridCells writes grid's W*H cells into the grid atlas's
// GridMaxSize-strided region at (originX, originY), one texel per
// cell with its four slot bytes in RGBA order.
func writeGridCells(buf []byte, gridAtlasSize, originX, originY int, grid *vgrid.Grid) {
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			cell := grid.At(x, y)
			px, py := originX+x, originY+y
			idx := py*gridAtlasSize + px
			b := buf[idx*4 : idx*4+4]
			for i, slot := range cell.Slots {
				b[i] = byte(slot)
			}
		}
	}
}

// ReadGridCell decodes the slot bytes at grid atlas cell (originX+x,
// originY+y).
func ReadGridCell(buf []byte, gridAtlasSize, originX, originY, x, y int) [vgrid.MaxCellCurves]int {
	px, py := originX+x, originY+y
	idx := py*gridAtlasSize + px
	b := buf[idx*4 : idx*4+4]
	var slots [vgrid.MaxCellCurves]int
	for i := range slots {
		slots[i] = int(b[i])
	}
	return slots
}
