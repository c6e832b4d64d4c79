package fontatlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestAtlas(t *testing.T) *Atlas {
	t.Helper()
	a, err := New(goregular.TTF, 16)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(nil, 16)
	assert.Error(t, err, "empty font data")

	_, err = New([]byte("not a font"), 16)
	assert.Error(t, err, "unparseable font data")

	_, err = New(goregular.TTF, 0)
	assert.Error(t, err, "non-positive pixel size")
}

func TestAtlasCoversLatin1(t *testing.T) {
	a := newTestAtlas(t)

	assert.True(t, a.HasGlyph('A'))
	assert.True(t, a.HasGlyph(' '))
	assert.True(t, a.HasGlyph('ü'))
	assert.False(t, a.HasGlyph('漢'), "outside the packed range")
}

func TestAtlasHasCoverage(t *testing.T) {
	a := newTestAtlas(t)

	w, h := a.Size()
	assert.Equal(t, atlasWidth, w)
	assert.Greater(t, h, 0)

	pixels, pw, ph := a.AlphaPixels()
	assert.Equal(t, w, pw)
	assert.Equal(t, h, ph)
	require.Len(t, pixels, pw*ph)

	var covered int
	for _, p := range pixels {
		if p != 0 {
			covered++
		}
	}
	assert.Greater(t, covered, 0, "rasterized glyphs leave coverage")
}

func TestMeasureText(t *testing.T) {
	a := newTestAtlas(t)

	empty := a.MeasureText("", 1)
	assert.Zero(t, empty.X)
	assert.Equal(t, a.LineHeight(1), empty.Y)

	hello := a.MeasureText("hello", 1)
	assert.Greater(t, hello.X, float32(0))

	wide := a.MeasureText("hello world", 1)
	assert.Greater(t, wide.X, hello.X, "longer text measures wider")

	scaled := a.MeasureText("hello", 2)
	assert.InDelta(t, hello.X*2, scaled.X, 0.001, "advance scales linearly")
}

func TestAppendQuads(t *testing.T) {
	a := newTestAtlas(t)

	quads := a.AppendQuads(nil, "hi", 100, 50, 1)
	require.Len(t, quads, 2)

	for _, q := range quads {
		assert.Less(t, q.X0, q.X1)
		assert.Less(t, q.Y0, q.Y1)
		assert.Less(t, q.U0, q.U1)
		assert.Less(t, q.V0, q.V1)
	}
	// Second glyph starts after the first advance.
	assert.Greater(t, quads[1].X0, quads[0].X0)
	// Quads stay within the text line box.
	assert.GreaterOrEqual(t, quads[0].Y0, float32(50))
}

func TestAppendQuadsSubstitutesMissingGlyphs(t *testing.T) {
	a := newTestAtlas(t)

	missing := a.AppendQuads(nil, "漢", 0, 0, 1)
	fallback := a.AppendQuads(nil, "?", 0, 0, 1)
	require.Len(t, missing, 1)
	require.Len(t, fallback, 1)
	assert.Equal(t, fallback[0].U0, missing[0].U0, "missing rune rendered as fallback")
}

func TestAppendQuadsSkipsSpaces(t *testing.T) {
	a := newTestAtlas(t)

	quads := a.AppendQuads(nil, "a b", 0, 0, 1)
	// The space advances the pen but emits no quad.
	require.Len(t, quads, 2)
	assert.Greater(t, quads[1].X0-quads[0].X0, a.MeasureText("a", 1).X)
}

func TestTextureIDRoundTrip(t *testing.T) {
	a := newTestAtlas(t)

	assert.Equal(t, uint32(0), a.TextureID(), "no texture before upload")
	a.SetTextureID(42)
	assert.Equal(t, uint32(42), a.TextureID())
}

func TestMetricsSurviveClose(t *testing.T) {
	a, err := New(goregular.TTF, 16)
	require.NoError(t, err)

	width := a.MeasureText("hello", 1).X
	a.Close()
	a.Close() // idempotent

	assert.Equal(t, width, a.MeasureText("hello", 1).X)
	assert.True(t, a.HasGlyph('h'))
}
