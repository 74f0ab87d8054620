// Command vginspect loads a font, builds one glyph's VGrid and atlas
// entry through the full C3->C2->C4->C5 pipeline, and prints the
// result. It is the debug-tool descendant of the teacher's dumpfont:
// where dumpfont prints a font's raw table summary, vginspect prints
// what the glyph pipeline actually produced for one rune.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glyphgrid/glyphgrid/atlasgroup"
	"github.com/glyphgrid/glyphgrid/glyphcache"
	"github.com/glyphgrid/glyphgrid/outline"
	"github.com/glyphgrid/glyphgrid/shaderdata"
	"github.com/glyphgrid/glyphgrid/ttf"
)

var (
	fontfile = flag.String("font", "", "filename of a TrueType font to inspect")
	char     = flag.String("char", "A", "single character to inspect")
)

func main() {
	flag.Parse()

	fontData, err := os.ReadFile(*fontfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vginspect: failed to read %s: %v\n", *fontfile, err)
		os.Exit(1)
	}

	f, err := ttf.Parse(fontData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vginspect: failed to parse %s: %v\n", *fontfile, err)
		os.Exit(1)
	}

	r := []rune(*char)
	if len(r) != 1 {
		fmt.Fprintln(os.Stderr, "vginspect: -char must be exactly one character")
		os.Exit(1)
	}

	cfg := glyphcache.DefaultConfig()
	cfg.CubicEps = glyphcache.DefaultCubicEps(f.UnitsPerEm())
	mgr, err := glyphcache.NewManager(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vginspect: %v\n", err)
		os.Exit(1)
	}

	idx := f.Index(r[0])
	buf := ttf.NewGlyphBuf()
	loadErr := buf.Load(f, idx)
	src := outline.TTFSource{Font: f, Glyph: buf, Index: idx}

	rec, err := mgr.Glyph(fontfile, r[0], src, loadErr)
	if err != nil {
		fmt.Printf("glyph %q: %v (record: %+v)\n", r[0], err, rec)
		return
	}

	fmt.Printf("glyph %q (index %d):\n", r[0], idx)
	fmt.Printf("  em-box size:  %.2f x %.2f\n", rec.EmBoxSize.X, rec.EmBoxSize.Y)
	fmt.Printf("  bearingX:     %.2f\n", rec.BearingX)
	fmt.Printf("  advance:      %.2f\n", rec.Advance)
	fmt.Printf("  no curves:    %v\n", rec.NoCurves)
	if rec.NoCurves {
		return
	}
	fmt.Printf("  atlas group:  %d\n", rec.AtlasGroupIndex)
	fmt.Printf("  data offset:  %d texels\n", rec.GlyphDataOffset)

	group := mgr.Pool().Groups()[rec.AtlasGroupIndex]
	gridX, gridY, w, h := atlasgroup.ReadHeaderTexels(group.GlyphData(), rec.GlyphDataOffset)
	fmt.Printf("  grid origin:  (%d,%d), size %dx%d\n", gridX, gridY, w, h)

	attrib := shaderdata.EncodeVertexAttrib(rec.GlyphDataOffset, shaderdata.BottomRight)
	fmt.Printf("  packed vertex attrib (bottom-right corner): %#08x\n", attrib)
}
