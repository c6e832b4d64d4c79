package quill

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCanvas implements Canvas in memory and records what each flush
// contained.
type testCanvas struct {
	width, height int
	initialized   bool
	closed        bool

	flushes  int
	commands int
	vertices int
}

func newTestCanvas(w, h int) *testCanvas {
	return &testCanvas{width: w, height: h, initialized: true}
}

func (c *testCanvas) Init(width, height int) error {
	c.width, c.height = width, height
	c.initialized = true
	return nil
}

func (c *testCanvas) Resize(width, height int) {
	if !c.initialized {
		return
	}
	c.width, c.height = width, height
}

func (c *testCanvas) Size() (int, int) { return c.width, c.height }

func (c *testCanvas) RenderFrame(fn func(dl *DrawList)) error {
	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	fn(dl)
	dl.Finalize()

	c.flushes++
	c.commands = len(dl.CmdBuffer)
	c.vertices = len(dl.VtxBuffer)
	return nil
}

func (c *testCanvas) Close() { c.closed = true }

// testFont has constant metrics so layout results are predictable.
type testFont struct {
	closed bool
}

func (f *testFont) TextureID() uint32                { return 7 }
func (f *testFont) HasGlyph(r rune) bool             { return r >= 32 && r < 127 }
func (f *testFont) LineHeight(scale float32) float32 { return 16 * scale }

func (f *testFont) MeasureText(text string, scale float32) Vec2 {
	return Vec2{X: float32(len(text)) * 8 * scale, Y: 16 * scale}
}

func (f *testFont) AppendQuads(dst []GlyphQuad, text string, x, y, scale float32) []GlyphQuad {
	pen := x
	for range text {
		dst = append(dst, GlyphQuad{X0: pen, Y0: y, X1: pen + 8*scale, Y1: y + 16*scale})
		pen += 8 * scale
	}
	return dst
}

func (f *testFont) Close() { f.closed = true }

func newTestGui() *Gui {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&testFont{}, WithLogger(logger))
}

func TestRunFramePassOrder(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	var passes []Pass
	err := g.RunFrame(canvas, func(ctx *Context) {
		passes = append(passes, ctx.Pass())
		ctx.Box(10, 10, ColorWhite)
	})
	require.NoError(t, err)

	require.Equal(t, []Pass{PassBuild, PassRender}, passes)
	assert.Equal(t, 1, canvas.flushes)
	assert.Equal(t, uint64(1), g.FrameCount())
}

func TestBuildPassEmitsNothing(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		// The draw list exists only during the render pass.
		if ctx.Pass() == PassBuild {
			require.Nil(t, ctx.dl)
		} else {
			require.NotNil(t, ctx.dl)
			require.Empty(t, ctx.dl.VtxBuffer, "nothing emitted before render primitives run")
		}
		ctx.Box(10, 10, ColorWhite)
	})
	require.NoError(t, err)
	assert.Equal(t, 4, canvas.vertices, "one quad flushed")
}

func TestGeometryResolvedBeforeRender(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		ctx.Column(Gap(4))(func() {
			ctx.Box(50, 20, ColorWhite)
			ctx.Box(50, 20, ColorWhite)
		})
		if ctx.Pass() == PassRender {
			// Second box sits below the first plus the gap.
			assert.Equal(t, float32(0), ctx.t.nodes[1].rect.Y)
			assert.Equal(t, float32(24), ctx.t.nodes[2].rect.Y)
		}
	})
	require.NoError(t, err)
}

func TestStructureMismatchFailsFrame(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		ctx.Box(10, 10, ColorWhite)
		if ctx.Pass() == PassRender {
			ctx.Box(10, 10, ColorWhite) // extra node in the render pass
		}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTreeMismatch)
}

func TestStructureMismatchKindChange(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		if ctx.Pass() == PassBuild {
			ctx.Box(10, 10, ColorWhite)
		} else {
			ctx.Label("not a box", ColorWhite)
		}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTreeMismatch)
}

func TestStructureMismatchMissingNode(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		ctx.Box(10, 10, ColorWhite)
		if ctx.Pass() == PassBuild {
			ctx.Box(10, 10, ColorWhite) // render pass omits this one
		}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTreeMismatch)
}

func TestStructureMismatchInsideScope(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		ctx.Row()(func() {
			ctx.Box(10, 10, ColorWhite)
			if ctx.Pass() == PassRender {
				ctx.Box(10, 10, ColorWhite)
			}
		})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTreeMismatch)
}

func TestMismatchRecoversNextFrame(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	err := g.RunFrame(canvas, func(ctx *Context) {
		if ctx.Pass() == PassRender {
			ctx.Box(10, 10, ColorWhite)
		}
	})
	require.ErrorIs(t, err, ErrTreeMismatch)

	// A consistent callback on the next frame succeeds; the error does
	// not stick to the engine.
	err = g.RunFrame(canvas, func(ctx *Context) {
		ctx.Box(10, 10, ColorWhite)
	})
	require.NoError(t, err)
}

func TestRunFrameClearsTransientInput(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	g.Input().SetMouseButton(MouseButtonLeft, true)
	g.Input().SetMouseWheel(0, 2)

	var sawClick bool
	err := g.RunFrame(canvas, func(ctx *Context) {
		sawClick = ctx.Input().MouseClicked(MouseButtonLeft)
		ctx.Box(10, 10, ColorWhite)
	})
	require.NoError(t, err)

	assert.True(t, sawClick, "click visible during the frame")
	assert.False(t, g.Input().MouseClicked(MouseButtonLeft), "cleared after the frame")
	_, wheelY := g.Input().MouseWheel()
	assert.Zero(t, wheelY)
	assert.True(t, g.Input().MouseDown(MouseButtonLeft), "held state persists")
}

func TestMismatchedFrameLeavesInputUncleared(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	g.Input().SetMouseButton(MouseButtonLeft, true)

	err := g.RunFrame(canvas, func(ctx *Context) {
		if ctx.Pass() == PassRender {
			ctx.Box(10, 10, ColorWhite)
		}
	})
	require.ErrorIs(t, err, ErrTreeMismatch)

	// The frame did not complete, so the frame-end reset did not run.
	assert.True(t, g.Input().MouseClicked(MouseButtonLeft))
}

func TestRunFrameGuards(t *testing.T) {
	g := newTestGui()
	draw := func(ctx *Context) {}

	err := g.RunFrame(nil, draw)
	assert.Error(t, err)

	err = g.RunFrame(newTestCanvas(640, 480), nil)
	assert.Error(t, err)

	err = g.RunFrame(newTestCanvas(0, 0), draw)
	assert.Error(t, err, "zero-size canvas cannot host a frame")
}

func TestShutdown(t *testing.T) {
	font := &testFont{}
	g := New(font, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	canvas := newTestCanvas(640, 480)

	g.Shutdown(canvas)
	assert.True(t, canvas.closed)
	assert.True(t, font.closed)

	err := g.RunFrame(canvas, func(ctx *Context) {})
	assert.Error(t, err, "frames after shutdown are rejected")

	// Idempotent.
	g.Shutdown(canvas)
}

func TestShutdownNilCanvas(t *testing.T) {
	g := newTestGui()
	g.Shutdown(nil)
}

func TestAdvanceTime(t *testing.T) {
	g := newTestGui()

	g.AdvanceTime(1.0 / 60)
	g.AdvanceTime(1.0 / 60)

	assert.InDelta(t, 2.0/60, g.Time(), 1e-9)
	assert.InDelta(t, 1.0/60, g.DeltaTime(), 1e-9)
}

func TestEmptyFrame(t *testing.T) {
	g := newTestGui()
	canvas := newTestCanvas(640, 480)

	// A callback that emits nothing is a valid (blank) frame.
	err := g.RunFrame(canvas, func(ctx *Context) {})
	require.NoError(t, err)
	assert.Equal(t, 1, canvas.flushes)
	assert.Zero(t, canvas.vertices)
}

func BenchmarkFullFrame(b *testing.B) {
	g := newTestGui()
	canvas := newTestCanvas(1280, 720)

	draw := func(ctx *Context) {
		ctx.Column(Gap(4), Padding(8))(func() {
			for i := 0; i < 20; i++ {
				ctx.Row(Gap(4))(func() {
					ctx.Box(12, 12, ColorGreen)
					ctx.Label("row label", ColorWhite)
					ctx.Spacer()
					ctx.Box(40, 12, ColorGray)
				})
			}
		})
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := g.RunFrame(canvas, draw); err != nil {
			b.Fatal(err)
		}
	}
}
