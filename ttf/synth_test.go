package ttf

import "encoding/binary"

// This file hand-assembles minimal, valid TrueType table bytes so the
// parser can be exercised without a real font file on disk (the
// retrieval pack that grounds this repo ships no binary font
// fixtures). Every helper writes exactly the fields package ttf reads;
// anything ttf ignores (checksums, search ranges, instruction bytecode)
// is left zeroed.

type tableEntry struct {
	tag  string
	data []byte
}

// buildFont assembles a minimal sfnt wrapper: version, table directory,
// and table bodies, in the layout Parse expects.
func buildFont(tables []tableEntry) []byte {
	n := len(tables)
	header := make([]byte, 12+16*n)
	binary.BigEndian.PutUint32(header[0:], 0x00010000)
	binary.BigEndian.PutUint16(header[4:], uint16(n))

	var body []byte
	offset := len(header)
	for i, te := range tables {
		rec := header[12+16*i : 12+16*i+16]
		copy(rec[0:4], te.tag)
		binary.BigEndian.PutUint32(rec[8:12], uint32(offset))
		binary.BigEndian.PutUint32(rec[12:16], uint32(len(te.data)))
		body = append(body, te.data...)
		offset += len(te.data)
	}
	return append(header, body...)
}

func buildHead(unitsPerEm uint16, xMin, yMin, xMax, yMax int16, locaFormat uint16) []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint16(b[18:], unitsPerEm)
	binary.BigEndian.PutUint16(b[36:], uint16(xMin))
	binary.BigEndian.PutUint16(b[38:], uint16(yMin))
	binary.BigEndian.PutUint16(b[40:], uint16(xMax))
	binary.BigEndian.PutUint16(b[42:], uint16(yMax))
	binary.BigEndian.PutUint16(b[50:], locaFormat)
	return b
}

func buildMaxp(nGlyph uint16) []byte {
	b := make([]byte, 32)
	binary.BigEndian.PutUint16(b[4:], nGlyph)
	return b
}

func buildHhea(nHMetric uint16) []byte {
	b := make([]byte, 36)
	binary.BigEndian.PutUint16(b[34:], nHMetric)
	return b
}

// buildHmtx writes nHMetric full (advance, lsb) entries, matching
// len(advances) == len(lsbs) == nHMetric (no compressed tail glyphs in
// these tests).
func buildHmtx(advances []uint16, lsbs []int16) []byte {
	b := make([]byte, 4*len(advances))
	for i := range advances {
		binary.BigEndian.PutUint16(b[4*i:], advances[i])
		binary.BigEndian.PutUint16(b[4*i+2:], uint16(lsbs[i]))
	}
	return b
}

// buildCmapFormat4 builds a cmap table with a single format-4 subtable
// containing one segment [start,end] that maps codepoint c to glyph
// index (c + delta), i.e. offset == 0 (no glyphIdArray indirection).
func buildCmapFormat4(start, end, delta uint16) []byte {
	sub := make([]byte, 0, 24)
	put16 := func(v uint16) { b := make([]byte, 2); binary.BigEndian.PutUint16(b, v); sub = append(sub, b...) }
	put16(4)        // format
	put16(24)       // length (informational, unchecked)
	put16(0)        // language
	put16(2)        // segCountX2 (1 segment)
	put16(0)        // searchRange
	put16(0)        // entrySelector
	put16(0)        // rangeShift
	put16(end)      // endCode[0]
	put16(0)        // reservedPad
	put16(start)    // startCode[0]
	put16(delta)    // idDelta[0]
	put16(0)        // idRangeOffset[0]

	head := make([]byte, 12)
	binary.BigEndian.PutUint16(head[2:], 1) // numTables
	binary.BigEndian.PutUint32(head[4:], 0x00000003) // platform=0, encoding=3 (unicode)
	binary.BigEndian.PutUint32(head[8:], uint32(len(head)))
	return append(head, sub...)
}

func putI16(b []byte, v int16) { binary.BigEndian.PutUint16(b, uint16(v)) }

// buildSimpleTriangleGlyph returns the glyf-table bytes for a single
// contour of 3 on-curve points: (0,0), (1000,0), (500,1000), encoded
// with full 16-bit deltas (flag = on-curve bit only).
func buildSimpleTriangleGlyph() []byte {
	b := make([]byte, 10)
	putI16(b[0:], 1) // numberOfContours
	putI16(b[2:], 0) // xMin
	putI16(b[4:], 0) // yMin
	putI16(b[6:], 1000)
	putI16(b[8:], 1000)

	endPts := make([]byte, 2)
	binary.BigEndian.PutUint16(endPts, 2) // last point index within contour

	instrLen := make([]byte, 2) // 0 instructions

	flags := []byte{0x01, 0x01, 0x01} // on-curve, full 16-bit deltas

	xDeltas := make([]byte, 6)
	putI16(xDeltas[0:], 0)
	putI16(xDeltas[2:], 1000)
	putI16(xDeltas[4:], -500)

	yDeltas := make([]byte, 6)
	putI16(yDeltas[0:], 0)
	putI16(yDeltas[2:], 0)
	putI16(yDeltas[4:], 1000)

	out := append([]byte{}, b...)
	out = append(out, endPts...)
	out = append(out, instrLen...)
	out = append(out, flags...)
	out = append(out, xDeltas...)
	out = append(out, yDeltas...)
	return out
}

// buildLocaLong returns a long-format loca table for glyph byte ranges
// glyphRanges[i] = [start,end) into the glyf table.
func buildLocaLong(glyphRanges [][2]uint32) []byte {
	b := make([]byte, 4*(len(glyphRanges)+1))
	for i, r := range glyphRanges {
		if i == 0 {
			binary.BigEndian.PutUint32(b[0:], r[0])
		}
		binary.BigEndian.PutUint32(b[4*(i+1):], r[1])
	}
	return b
}

// minimalTestFont builds a 2-glyph font: glyph 0 is .notdef (empty),
// glyph 1 is the triangle from buildSimpleTriangleGlyph, reachable via
// cmap codepoint 'A'.
func minimalTestFont() []byte {
	glyf1 := buildSimpleTriangleGlyph()
	loca := buildLocaLong([][2]uint32{
		{0, 0},                     // glyph 0: empty
		{0, uint32(len(glyf1))},    // glyph 1: the triangle
	})

	const codepointA = uint16('A')
	var glyphIndexA uint16 = 1
	delta := glyphIndexA - codepointA // wraps as uint16, matching Index()'s c+delta arithmetic

	return buildFont([]tableEntry{
		{"head", buildHead(1000, 0, 0, 1000, 1000, 1 /* long loca */)},
		{"maxp", buildMaxp(2)},
		{"hhea", buildHhea(2)},
		{"hmtx", buildHmtx([]uint16{0, 1200}, []int16{0, 19})},
		{"cmap", buildCmapFormat4(codepointA, codepointA, delta)},
		{"loca", loca},
		{"glyf", glyf1},
	})
}
