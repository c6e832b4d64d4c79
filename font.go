package quill

// Font is the opaque font handle the core renders text with. The core
// never loads font assets itself: callers supply font bytes to a
// concrete implementation (see the fontatlas package) and hand the
// resulting handle to New. Implementations should be GPU-oriented,
// using a pre-rasterized texture atlas rather than shaping glyphs at
// render time.
type Font interface {
	// TextureID returns the backend texture ID of the font atlas.
	// The texture must be set on the DrawList before glyph quads are
	// appended.
	TextureID() uint32

	// HasGlyph returns true if the font has a glyph for the given rune.
	HasGlyph(r rune) bool

	// MeasureText returns the pixel dimensions of text at the given scale.
	// Layout uses this during the build pass.
	MeasureText(text string, scale float32) Vec2

	// LineHeight returns the line height at the given scale.
	LineHeight(scale float32) float32

	// AppendQuads appends one rendering quad per glyph of text, laid
	// out with the baseline-adjusted top-left at (x, y), and returns
	// the extended slice. The quads must be consumed within the frame.
	AppendQuads(dst []GlyphQuad, text string, x, y, scale float32) []GlyphQuad
}
