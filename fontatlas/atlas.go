// Package fontatlas builds a glyph atlas from caller-supplied TTF
// bytes and exposes it as a quill.Font. Font data is always an explicit
// parameter; nothing here reads files or embedded resources on its own.
package fontatlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/quillui/quill"
)

// Atlas width in pixels; shelves grow downward as needed.
const atlasWidth = 512

// glyphPad keeps one blank pixel between packed glyphs so linear
// sampling never bleeds neighbors.
const glyphPad = 1

// fallbackRune substitutes for runes the font has no glyph for.
const fallbackRune = '?'

type glyph struct {
	advance  float32
	bearingX float32 // left side bearing, pixels
	bearingY float32 // baseline to glyph top, pixels
	w, h     int
	u0, v0   float32
	u1, v1   float32
}

// Atlas is a rasterized glyph sheet for one font face at one pixel
// size. It implements quill.Font. The alpha-coverage pixels are
// produced at construction; a graphics backend uploads them and
// records the resulting texture ID with SetTextureID.
type Atlas struct {
	sizePx  float32
	ascent  float32
	descent float32
	lineGap float32

	glyphs    map[rune]glyph
	pixels    *image.Alpha
	textureID uint32

	face font.Face
}

// New parses ttf and rasterizes an atlas covering Latin-1 (runes
// 32..255) at sizePx. Parse failures and empty input are construction
// errors; nothing is deferred to first use.
func New(ttf []byte, sizePx float32) (*Atlas, error) {
	if len(ttf) == 0 {
		return nil, errors.New("fontatlas: empty font data")
	}
	if sizePx <= 0 {
		return nil, fmt.Errorf("fontatlas: invalid pixel size %v", sizePx)
	}

	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("fontatlas: parse font: %w", err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontatlas: new face: %w", err)
	}

	m := face.Metrics()
	a := &Atlas{
		sizePx:  sizePx,
		ascent:  float32(m.Ascent.Round()),
		descent: float32(-m.Descent.Round()),
		glyphs:  make(map[rune]glyph, 224),
		face:    face,
	}
	a.lineGap = float32(m.Height.Round()) - a.ascent + a.descent

	a.pack()
	return a, nil
}

// pack measures every target glyph, shelf-packs the atlas and
// rasterizes each glyph into its slot.
func (a *Atlas) pack() {
	type slot struct {
		r      rune
		bounds fixed.Rectangle26_6
		adv    fixed.Int26_6
		w, h   int
		x, y   int
	}

	var slots []slot
	for r := rune(32); r <= rune(255); r++ {
		b, adv, ok := a.face.GlyphBounds(r)
		if !ok {
			continue
		}
		slots = append(slots, slot{
			r:      r,
			bounds: b,
			adv:    adv,
			w:      (b.Max.X - b.Min.X).Ceil(),
			h:      (b.Max.Y - b.Min.Y).Ceil(),
		})
	}

	// Shelf packing: left to right, new shelf when the row fills.
	x, y, shelfH := glyphPad, glyphPad, 0
	for i := range slots {
		s := &slots[i]
		if x+s.w+glyphPad > atlasWidth {
			x = glyphPad
			y += shelfH + glyphPad
			shelfH = 0
		}
		s.x, s.y = x, y
		x += s.w + glyphPad
		if s.h > shelfH {
			shelfH = s.h
		}
	}
	atlasHeight := y + shelfH + glyphPad

	a.pixels = image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasHeight))

	for _, s := range slots {
		if s.w > 0 && s.h > 0 {
			// Position the dot so the glyph box lands on the slot.
			dot := fixed.Point26_6{
				X: fixed.I(s.x) - s.bounds.Min.X,
				Y: fixed.I(s.y) - s.bounds.Min.Y,
			}
			dr, mask, maskp, _, ok := a.face.Glyph(dot, s.r)
			if ok {
				draw.DrawMask(a.pixels, dr, image.White, image.Point{}, mask, maskp, draw.Over)
			}
		}

		a.glyphs[s.r] = glyph{
			advance:  float32(s.adv.Round()),
			bearingX: fixedToFloat(s.bounds.Min.X),
			bearingY: -fixedToFloat(s.bounds.Min.Y),
			w:        s.w,
			h:        s.h,
			u0:       float32(s.x) / atlasWidth,
			v0:       float32(s.y) / float32(atlasHeight),
			u1:       float32(s.x+s.w) / atlasWidth,
			v1:       float32(s.y+s.h) / float32(atlasHeight),
		}
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Pixels returns the alpha-coverage atlas image for texture upload.
func (a *Atlas) Pixels() *image.Alpha { return a.pixels }

// AlphaPixels returns the raw coverage bytes and dimensions, in the
// shape quill.Run's font-upload wiring expects.
func (a *Atlas) AlphaPixels() (pixels []byte, width, height int) {
	b := a.pixels.Bounds()
	return a.pixels.Pix, b.Dx(), b.Dy()
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() (w, h int) {
	b := a.pixels.Bounds()
	return b.Dx(), b.Dy()
}

// SetTextureID records the backend texture the atlas was uploaded to.
func (a *Atlas) SetTextureID(id uint32) { a.textureID = id }

// TextureID returns the backend texture ID, or 0 before upload.
func (a *Atlas) TextureID() uint32 { return a.textureID }

// HasGlyph returns true if the font provides a glyph for r.
func (a *Atlas) HasGlyph(r rune) bool {
	_, ok := a.glyphs[r]
	return ok
}

// LineHeight returns the line height at the given scale.
func (a *Atlas) LineHeight(scale float32) float32 {
	return (a.ascent + a.descent + a.lineGap) * scale
}

// MeasureText returns the pixel dimensions of a single line of text.
func (a *Atlas) MeasureText(text string, scale float32) quill.Vec2 {
	var w float32
	for _, r := range text {
		g, ok := a.glyphs[r]
		if !ok {
			g = a.glyphs[fallbackRune]
		}
		w += g.advance
	}
	return quill.Vec2{X: w * scale, Y: a.LineHeight(scale)}
}

// AppendQuads appends one quad per glyph, with the line's top-left at
// (x, y), and returns the extended slice.
func (a *Atlas) AppendQuads(dst []quill.GlyphQuad, text string, x, y, scale float32) []quill.GlyphQuad {
	pen := x
	baseline := y + a.ascent*scale
	for _, r := range text {
		g, ok := a.glyphs[r]
		if !ok {
			g = a.glyphs[fallbackRune]
		}
		if g.w > 0 && g.h > 0 {
			x0 := pen + g.bearingX*scale
			y0 := baseline - g.bearingY*scale
			dst = append(dst, quill.GlyphQuad{
				X0: x0, Y0: y0,
				X1: x0 + float32(g.w)*scale, Y1: y0 + float32(g.h)*scale,
				U0: g.u0, V0: g.v0,
				U1: g.u1, V1: g.v1,
			})
		}
		pen += g.advance * scale
	}
	return dst
}

// Close releases the font face. The atlas pixels and glyph metrics
// stay valid; only rasterization of new faces is affected.
func (a *Atlas) Close() {
	if a.face != nil {
		a.face.Close()
		a.face = nil
	}
}
