package headless

import "github.com/quillui/quill"

// FixedFont is a quill.Font with constant metrics and no texture.
// Every printable ASCII rune measures advance x lineHeight, which
// makes layout results exactly predictable in tests.
type FixedFont struct {
	Advance float32
	Line    float32
}

// NewFixedFont returns a font with 8px advance and 16px line height.
func NewFixedFont() *FixedFont {
	return &FixedFont{Advance: 8, Line: 16}
}

// TextureID returns 0; the font has no atlas texture.
func (f *FixedFont) TextureID() uint32 { return 0 }

// HasGlyph reports printable ASCII coverage.
func (f *FixedFont) HasGlyph(r rune) bool { return r >= 32 && r < 127 }

// LineHeight returns the constant line height scaled.
func (f *FixedFont) LineHeight(scale float32) float32 { return f.Line * scale }

// MeasureText returns rune count times advance by line height.
func (f *FixedFont) MeasureText(text string, scale float32) quill.Vec2 {
	n := 0
	for range text {
		n++
	}
	return quill.Vec2{X: float32(n) * f.Advance * scale, Y: f.Line * scale}
}

// AppendQuads emits one full-cell quad per rune with zero UVs.
func (f *FixedFont) AppendQuads(dst []quill.GlyphQuad, text string, x, y, scale float32) []quill.GlyphQuad {
	pen := x
	for range text {
		dst = append(dst, quill.GlyphQuad{
			X0: pen, Y0: y,
			X1: pen + f.Advance*scale, Y1: y + f.Line*scale,
		})
		pen += f.Advance * scale
	}
	return dst
}
