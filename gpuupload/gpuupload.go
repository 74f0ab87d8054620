// Package gpuupload flushes dirty atlas groups to the GPU (§6.2): the
// grid atlas as a 2D RGBA8 texture, the glyph-data buffer as a buffer
// texture (GL_TEXTURE_BUFFER) so the fragment shader can texelFetch it
// by integer index exactly as package shaderdata's reference shader
// does. Grounded on the texture-upload idiom shared by
// other_examples/397c5408_dantero-ps-mini-mc-go and
// other_examples/62bc6c1d_mmp-vice (GenTextures/BindTexture/TexImage2D
// sequence), extended with a buffer-texture object for the 1D side per
// Konstantin8105-glsymbol/bloeys-nterm's go-gl version choice
// (v4.1-core, the first to expose GL_TEXTURE_BUFFER).
package gpuupload

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/glyphgrid/glyphgrid/atlasgroup"
)

// GroupHandles holds the live GPU objects backing one AtlasGroup: a
// buffer object + buffer texture for glyphData, and a 2D texture for
// gridAtlas.
type GroupHandles struct {
	GlyphDataBuffer  uint32
	GlyphDataTexture uint32
	GridAtlasTexture uint32
}

// Uploader owns the GPU handles for every atlas group in a Pool, in
// step with the pool's own indexing (handle i backs Pool.Groups()[i]).
// Like glyphcache.Manager, it is an explicit owner, not a singleton.
type Uploader struct {
	handles []GroupHandles
}

// NewUploader returns an Uploader with no GPU objects yet allocated;
// call Flush once a GL context is current.
func NewUploader() *Uploader { return &Uploader{} }

// Handles returns the GPU object handles for group i, valid only after
// a Flush that covered it.
func (u *Uploader) Handles(i int) GroupHandles { return u.handles[i] }

// Flush uploads every group in pool whose Uploaded() is false, creating
// GPU objects for groups seen for the first time and respecifying
// existing ones otherwise. Must be called with a current GL context on
// the calling goroutine (go-gl, like the teacher pack's glfw-based
// examples, is not safe to call off the context's thread).
func (u *Uploader) Flush(pool *atlasgroup.Pool) error {
	groups := pool.Groups()
	for len(u.handles) < len(groups) {
		u.handles = append(u.handles, GroupHandles{})
	}
	for i, g := range groups {
		if g.Uploaded() {
			continue
		}
		if err := u.uploadGroup(i, g); err != nil {
			return fmt.Errorf("gpuupload: group %d: %w", i, err)
		}
		g.MarkUploaded()
	}
	return nil
}

func (u *Uploader) uploadGroup(i int, g *atlasgroup.AtlasGroup) error {
	h := &u.handles[i]
	_, gridAtlasSize, _ := g.Size()

	if h.GlyphDataBuffer == 0 {
		gl.GenBuffers(1, &h.GlyphDataBuffer)
	}
	gl.BindBuffer(gl.TEXTURE_BUFFER, h.GlyphDataBuffer)
	data := g.GlyphData()
	gl.BufferData(gl.TEXTURE_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.TEXTURE_BUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("glBufferData(glyphData): GL error %#x", e)
	}

	if h.GlyphDataTexture == 0 {
		gl.GenTextures(1, &h.GlyphDataTexture)
	}
	gl.BindTexture(gl.TEXTURE_BUFFER, h.GlyphDataTexture)
	gl.TexBuffer(gl.TEXTURE_BUFFER, gl.RGBA8, h.GlyphDataBuffer)
	gl.BindTexture(gl.TEXTURE_BUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("glTexBuffer(glyphData): GL error %#x", e)
	}

	if h.GridAtlasTexture == 0 {
		gl.GenTextures(1, &h.GridAtlasTexture)
		gl.BindTexture(gl.TEXTURE_2D, h.GridAtlasTexture)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, h.GridAtlasTexture)
	}
	grid := g.GridAtlas()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(gridAtlasSize), int32(gridAtlasSize),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(grid))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("glTexImage2D(gridAtlas): GL error %#x", e)
	}

	return nil
}
