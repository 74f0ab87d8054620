package shaderdata

import "testing"

func TestEncodeDecodeVertexAttribRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		corner Corner
	}{
		{"zero offset top-left", 0, TopLeft},
		{"zero offset bottom-right", 0, BottomRight},
		{"large offset top-right", 65535, TopRight},
		{"typical offset bottom-left", 12345, BottomLeft},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			attrib := EncodeVertexAttrib(tc.offset, tc.corner)
			gotOffset, gotCorner := DecodeVertexAttrib(attrib)
			if gotOffset != tc.offset {
				t.Errorf("offset = %d, want %d", gotOffset, tc.offset)
			}
			if gotCorner != tc.corner {
				t.Errorf("corner = %v, want %v", gotCorner, tc.corner)
			}
		})
	}
}

func TestEncodeVertexAttribLayout(t *testing.T) {
	// Bits 0-1 are (normY, normX); bits 2+ are the texel offset,
	// matching (offset << 2) | (normX << 1) | normY exactly.
	got := EncodeVertexAttrib(1, BottomRight) // normX=1, normY=1
	want := uint32(1)<<2 | 1<<1 | 1
	if got != want {
		t.Errorf("EncodeVertexAttrib = %#x, want %#x", got, want)
	}
}
