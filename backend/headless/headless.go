// Package headless hosts the core with no GPU and no OS window: the
// canvas accumulates draw commands and discards them at flush, while
// recording per-frame statistics. It exists for tests and for running
// UI logic in environments with no display.
package headless

import (
	"fmt"
	"sync/atomic"

	"github.com/quillui/quill"
)

// liveCanvases counts canvases between Init and Close, so tests can
// assert that repeated open/close cycles do not leak.
var liveCanvases atomic.Int64

// LiveCanvases returns the number of initialized canvases.
func LiveCanvases() int { return int(liveCanvases.Load()) }

// FrameStats records what the last flushed frame contained.
type FrameStats struct {
	Commands int
	Vertices int
	Indices  int
}

// Canvas implements quill.Canvas without any device. Draw commands are
// counted and dropped.
type Canvas struct {
	width  int
	height int

	initialized bool
	frames      int
	last        FrameStats
}

// NewCanvas returns an uninitialized headless canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Init records the drawable size. No device objects exist, but the
// init guard still applies so the lifecycle matches real backends.
func (c *Canvas) Init(width, height int) error {
	if c.initialized {
		return fmt.Errorf("headless: canvas already initialized")
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("headless: invalid size %dx%d", width, height)
	}
	c.width = width
	c.height = height
	c.initialized = true
	liveCanvases.Add(1)
	return nil
}

// Resize updates the recorded size. A no-op before Init.
func (c *Canvas) Resize(width, height int) {
	if !c.initialized {
		return
	}
	c.width = width
	c.height = height
}

// Size reports the recorded drawable size.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// RenderFrame acquires a pooled draw list, hands it to fn, records the
// frame statistics and discards the commands.
func (c *Canvas) RenderFrame(fn func(dl *quill.DrawList)) error {
	if !c.initialized {
		return fmt.Errorf("headless: render before Init")
	}

	dl := quill.AcquireDrawList()
	defer quill.ReleaseDrawList(dl)

	fn(dl)
	dl.Finalize()

	c.frames++
	c.last = FrameStats{
		Commands: len(dl.CmdBuffer),
		Vertices: len(dl.VtxBuffer),
		Indices:  len(dl.IdxBuffer),
	}
	return nil
}

// Frames returns the number of frames flushed so far.
func (c *Canvas) Frames() int { return c.frames }

// LastFrame returns the statistics of the most recent flushed frame.
func (c *Canvas) LastFrame() FrameStats { return c.last }

// Close releases the canvas. Idempotent.
func (c *Canvas) Close() {
	if !c.initialized {
		return
	}
	c.initialized = false
	liveCanvases.Add(-1)
}

// Window implements quill.Window with no OS window behind it. Close it
// by calling RequestClose; events never arrive on their own.
type Window struct {
	width  int
	height int

	shouldClose bool
	resizeFn    func(width, height int)
	polls       int
	swaps       int
}

// NewWindow returns a headless window of the given drawable size.
func NewWindow(width, height int) *Window {
	return &Window{width: width, height: height}
}

// PollEvents counts the poll. There is no event queue.
func (w *Window) PollEvents() { w.polls++ }

// SwapBuffers counts the presentation. Nothing is presented.
func (w *Window) SwapBuffers() { w.swaps++ }

// ShouldClose reports whether RequestClose was called.
func (w *Window) ShouldClose() bool { return w.shouldClose }

// RequestClose makes the next ShouldClose return true, ending Run.
func (w *Window) RequestClose() { w.shouldClose = true }

// DrawableSize reports the configured size.
func (w *Window) DrawableSize() (width, height int) {
	return w.width, w.height
}

// SetResizeCallback registers fn; trigger it with SimulateResize.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.resizeFn = fn
}

// SimulateResize changes the drawable size and fires the callback.
func (w *Window) SimulateResize(width, height int) {
	w.width = width
	w.height = height
	if w.resizeFn != nil {
		w.resizeFn(width, height)
	}
}

// SetTitlebarVisible is a no-op; there is no title bar.
func (w *Window) SetTitlebarVisible(visible bool) {}

// Polls returns how many times PollEvents ran.
func (w *Window) Polls() int { return w.polls }

// Swaps returns how many times SwapBuffers ran.
func (w *Window) Swaps() int { return w.swaps }
