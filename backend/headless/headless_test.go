package headless

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillui/quill"
)

func newTestGui() *quill.Gui {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return quill.New(NewFixedFont(), quill.WithLogger(logger))
}

func TestCanvasLifecycle(t *testing.T) {
	c := NewCanvas()

	require.Error(t, c.RenderFrame(func(dl *quill.DrawList) {}), "render before init")

	require.NoError(t, c.Init(640, 480))
	w, h := c.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	assert.Error(t, c.Init(640, 480), "double init")

	c.Resize(800, 600)
	w, h = c.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	c.Close()
	assert.Error(t, c.RenderFrame(func(dl *quill.DrawList) {}), "render after close")
}

func TestCanvasInitRejectsZeroSize(t *testing.T) {
	assert.Error(t, NewCanvas().Init(0, 480))
	assert.Error(t, NewCanvas().Init(640, 0))
}

func TestRepeatedCyclesDoNotLeak(t *testing.T) {
	before := LiveCanvases()

	for i := 0; i < 5; i++ {
		c := NewCanvas()
		require.NoError(t, c.Init(320, 240))
		c.Close()
		c.Close() // idempotent
	}

	assert.Equal(t, before, LiveCanvases())
}

func TestCanvasRecordsFrameStats(t *testing.T) {
	c := NewCanvas()
	require.NoError(t, c.Init(640, 480))
	defer c.Close()

	err := c.RenderFrame(func(dl *quill.DrawList) {
		dl.AddRect(0, 0, 10, 10, quill.ColorWhite)
		dl.AddRect(20, 0, 10, 10, quill.ColorWhite)
	})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Frames())
	stats := c.LastFrame()
	assert.Equal(t, 1, stats.Commands, "same texture batches into one command")
	assert.Equal(t, 8, stats.Vertices)
	assert.Equal(t, 12, stats.Indices)
}

func TestFullFrameThroughHeadlessCanvas(t *testing.T) {
	g := newTestGui()
	c := NewCanvas()
	require.NoError(t, c.Init(640, 480))
	defer c.Close()

	err := g.RunFrame(c, func(ctx *quill.Context) {
		ctx.Column(quill.Gap(4))(func() {
			ctx.Label("status", quill.ColorWhite)
			ctx.Box(100, 10, quill.ColorGreen)
		})
	})
	require.NoError(t, err)

	stats := c.LastFrame()
	// "status" is 6 glyph quads plus the box quad.
	assert.Equal(t, 7*4, stats.Vertices)
}

func TestRunDrivesFramesUntilClose(t *testing.T) {
	g := newTestGui()
	c := NewCanvas()
	win := NewWindow(640, 480)
	before := LiveCanvases()

	const frames = 3
	err := quill.Run(win, c, g, func(ctx *quill.Context) {
		ctx.Box(10, 10, quill.ColorWhite)
		if ctx.Pass() == quill.PassBuild && ctx.FrameCount() >= frames {
			win.RequestClose()
		}
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(frames), g.FrameCount())
	assert.Equal(t, frames, win.Polls())
	assert.Equal(t, frames, win.Swaps())
	assert.Equal(t, before, LiveCanvases(), "Run closed the canvas on the way out")
}

func TestRunPropagatesFrameErrors(t *testing.T) {
	g := newTestGui()
	c := NewCanvas()
	win := NewWindow(640, 480)

	err := quill.Run(win, c, g, func(ctx *quill.Context) {
		if ctx.Pass() == quill.PassRender {
			ctx.Box(10, 10, quill.ColorWhite)
		}
	})
	require.ErrorIs(t, err, quill.ErrTreeMismatch)
}

func TestRunDeliversResizes(t *testing.T) {
	g := newTestGui()
	c := NewCanvas()
	win := NewWindow(640, 480)

	err := quill.Run(win, c, g, func(ctx *quill.Context) {
		if ctx.Pass() == quill.PassBuild {
			switch ctx.FrameCount() {
			case 1:
				win.SimulateResize(800, 600)
			case 2:
				assert.Equal(t, quill.Vec2{X: 800, Y: 600}, ctx.DisplaySize())
				win.RequestClose()
			}
		}
		ctx.Box(10, 10, quill.ColorWhite)
	})
	require.NoError(t, err)
}

func TestMinimizedResizeIgnored(t *testing.T) {
	g := newTestGui()
	c := NewCanvas()
	win := NewWindow(640, 480)

	err := quill.Run(win, c, g, func(ctx *quill.Context) {
		if ctx.Pass() == quill.PassBuild {
			switch ctx.FrameCount() {
			case 1:
				// Minimize reports a zero drawable; the canvas keeps
				// its last backing store.
				win.SimulateResize(0, 0)
				win.width, win.height = 640, 480
			case 2:
				assert.Equal(t, quill.Vec2{X: 640, Y: 480}, ctx.DisplaySize())
				win.RequestClose()
			}
		}
		ctx.Box(10, 10, quill.ColorWhite)
	})
	require.NoError(t, err)
}

func TestFixedFontMetrics(t *testing.T) {
	f := NewFixedFont()

	assert.Equal(t, uint32(0), f.TextureID())
	assert.True(t, f.HasGlyph('a'))
	assert.False(t, f.HasGlyph('€'))
	assert.Equal(t, quill.Vec2{X: 40, Y: 16}, f.MeasureText("hello", 1))
	assert.Equal(t, float32(32), f.LineHeight(2))

	quads := f.AppendQuads(nil, "ab", 10, 20, 1)
	require.Len(t, quads, 2)
	assert.Equal(t, float32(10), quads[0].X0)
	assert.Equal(t, float32(18), quads[1].X0)
}
