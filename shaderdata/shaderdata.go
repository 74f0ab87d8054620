// Package shaderdata is the bit-exact boundary between the CPU-packed
// atlas buffers (package atlasgroup) and the fragment shader that reads
// them (§6.3, C7). It has exactly two jobs: pack the per-vertex 32-bit
// attribute, and hand back the reference GLSL fetch sequence so the
// shader and the CPU encoding can never silently drift apart.
package shaderdata

import "fmt"

// Corner identifies one of the four corners of a glyph's normalized
// em-box quad, (normX, normY) in {0,1}^2.
type Corner struct {
	NormX, NormY uint32
}

var (
	TopLeft     = Corner{0, 0}
	TopRight    = Corner{1, 0}
	BottomLeft  = Corner{0, 1}
	BottomRight = Corner{1, 1}
)

// EncodeVertexAttrib packs the per-vertex attribute the shader expects:
// (glyphDataOffsetTexels << 2) | (normX << 1) | normY (§6.3).
func EncodeVertexAttrib(glyphDataOffsetTexels int, corner Corner) uint32 {
	return uint32(glyphDataOffsetTexels)<<2 | (corner.NormX&1)<<1 | (corner.NormY & 1)
}

// DecodeVertexAttrib is EncodeVertexAttrib's inverse, used by tests to
// verify the packing round-trips.
func DecodeVertexAttrib(attrib uint32) (glyphDataOffsetTexels int, corner Corner) {
	return int(attrib >> 2), Corner{NormX: (attrib >> 1) & 1, NormY: attrib & 1}
}

// FragmentShaderSource is the reference GLSL fetch sequence a renderer's
// fragment shader must implement against the atlas buffers (§6.3 steps
// 1-5). It omits the actual analytic coverage arithmetic (out of scope,
// §1) and stands as living documentation of the byte layout that
// package atlasgroup must produce.
const FragmentShaderSource = `#version 330 core

uniform samplerBuffer glyphData; // atlasgroup's glyph-data buffer, one texel = vec4
uniform sampler2D gridAtlas;     // atlasgroup's grid atlas
uniform vec4 color;

in vec2 vNormCoord;        // normalized glyph-space coordinate, [0,1]^2
flat in int vGlyphDataOffset; // texels, decoded from the packed vertex attribute

out vec4 fragColor;

vec4 fetchHeader(int base) {
	return texelFetch(glyphData, base) * 255.0;
}

vec2 fetchPoint(int texel) {
	vec4 t = texelFetch(glyphData, texel) * 255.0;
	return vec2(t.r + t.g * 256.0, t.b + t.a * 256.0);
}

void main() {
	vec4 h0 = fetchHeader(vGlyphDataOffset);
	vec4 h1 = fetchHeader(vGlyphDataOffset + 1);
	ivec2 gridOrigin = ivec2(h0.r + h0.g * 256.0, h0.b + h0.a * 256.0);
	ivec2 gridSize = ivec2(h1.r + h1.g * 256.0, h1.b + h1.a * 256.0);

	ivec2 cell = ivec2(vNormCoord * vec2(gridSize));
	vec4 slots = texelFetch(gridAtlas, gridOrigin + cell, 0) * 255.0;

	bool midInside = slots.r > slots.g;
	float coverage = midInside ? 1.0 : 0.0;

	for (int i = 0; i < 4; i++) {
		float s = slots[i];
		if (s < 2.0) {
			continue;
		}
		int curveTexel = vGlyphDataOffset + 2 + int(s - 2.0) * 3;
		vec2 e0 = fetchPoint(curveTexel);
		vec2 c = fetchPoint(curveTexel + 1);
		vec2 e1 = fetchPoint(curveTexel + 2);
		// Supersampled analytic ray-intersection coverage against
		// (e0, c, e1), integrated over a parabolic pixel window, is
		// intentionally not reproduced here: it is the shader's own
		// arithmetic, out of scope for this contract.
		coverage += 0.0 * (e0.x + c.x + e1.x);
	}

	fragColor = vec4(color.rgb, color.a * clamp(coverage, 0.0, 1.0));
}
`

// String returns a human-readable summary, useful from cmd/vginspect.
func (c Corner) String() string {
	return fmt.Sprintf("(normX=%d, normY=%d)", c.NormX, c.NormY)
}
