// Command vgdemo is a minimal GLFW+go-gl window that loads a TrueType
// font, builds one glyph through the full pipeline, flushes it to the
// GPU, and prints the packed vertex attributes of the glyph's quad — an
// end-to-end smoke test of the §6.3 data contract. The window it opens
// is only cleared each frame; no quad is drawn.
//
// It is not a text layout engine: one glyph, one quad, no line
// breaking or kerning (those are out of scope, §1).
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/glyphgrid/glyphgrid/glyphcache"
	"github.com/glyphgrid/glyphgrid/gpuupload"
	"github.com/glyphgrid/glyphgrid/outline"
	"github.com/glyphgrid/glyphgrid/shaderdata"
	"github.com/glyphgrid/glyphgrid/ttf"
)

var (
	fontfile = flag.String("font", "", "filename of a TrueType font to render")
	char     = flag.String("char", "A", "single character to render")
)

func init() {
	// GLFW/GL must run on the thread that created the OS window.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vgdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fontData, err := os.ReadFile(*fontfile)
	if err != nil {
		return err
	}
	f, err := ttf.Parse(fontData)
	if err != nil {
		return err
	}
	r := []rune(*char)
	if len(r) != 1 {
		return fmt.Errorf("-char must be exactly one character")
	}

	cfg := glyphcache.DefaultConfig()
	cfg.CubicEps = glyphcache.DefaultCubicEps(f.UnitsPerEm())
	mgr, err := glyphcache.NewManager(cfg, nil)
	if err != nil {
		return err
	}

	idx := f.Index(r[0])
	buf := ttf.NewGlyphBuf()
	loadErr := buf.Load(f, idx)
	src := outline.TTFSource{Font: f, Glyph: buf, Index: idx}
	rec, err := mgr.Glyph(fontfile, r[0], src, loadErr)
	if err != nil {
		return fmt.Errorf("building glyph %q: %w", r[0], err)
	}
	if rec.NoCurves {
		return fmt.Errorf("glyph %q has no visible outline, nothing to draw", r[0])
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(512, 512, "glyphgrid vgdemo", nil, nil)
	if err != nil {
		return err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}
	glfw.SwapInterval(1)

	uploader := gpuupload.NewUploader()
	if err := uploader.Flush(mgr.Pool()); err != nil {
		return err
	}
	handles := uploader.Handles(rec.AtlasGroupIndex)

	fmt.Printf("uploaded glyph %q: group %d, glyphData buffer %d, glyphData texture %d, gridAtlas texture %d\n",
		r[0], rec.AtlasGroupIndex, handles.GlyphDataBuffer, handles.GlyphDataTexture, handles.GridAtlasTexture)

	attribs := [4]uint32{
		shaderdata.EncodeVertexAttrib(rec.GlyphDataOffset, shaderdata.TopLeft),
		shaderdata.EncodeVertexAttrib(rec.GlyphDataOffset, shaderdata.TopRight),
		shaderdata.EncodeVertexAttrib(rec.GlyphDataOffset, shaderdata.BottomLeft),
		shaderdata.EncodeVertexAttrib(rec.GlyphDataOffset, shaderdata.BottomRight),
	}
	fmt.Printf("quad vertex attribs: %#08x %#08x %#08x %#08x\n", attribs[0], attribs[1], attribs[2], attribs[3])

	for !window.ShouldClose() {
		gl.ClearColor(0.1, 0.1, 0.1, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		// Full shader compilation, VAO/VBO setup, and draw call are left
		// out: the point of this demo is exercising the pipeline up to
		// and including GPU upload, not reimplementing a renderer.

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
