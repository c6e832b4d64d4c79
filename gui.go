package quill

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// guiLogLevel controls core logging. Raise to slog.LevelDebug for
// per-frame diagnostics.
var guiLogLevel = new(slog.LevelVar)

// DrawFunc is the user-supplied UI-description callback. It runs twice
// per frame, once per Pass, and must build the same tree structure both
// times: the same scopes opened, the same primitives called, in the
// same order. It may read external mutable state (input, application
// data) each invocation, but anything that changes which branches it
// takes must not move between the two invocations of one frame.
// Side effects outside the UI tree (logging, counters) should be gated
// on ctx.Pass() so they do not run twice.
type DrawFunc func(ctx *Context)

// Gui is the frame orchestrator. It owns the per-frame pass state
// machine: every RunFrame executes the draw callback under PassBuild,
// resolves layout over the built tree, executes the callback again
// under PassRender, flushes the canvas, and resets per-frame input.
//
// Construct one Gui at application start; it lives for the process
// lifetime. All methods must be called from the platform main thread.
type Gui struct {
	ctx    *Context
	input  *InputState
	font   Font
	logger *slog.Logger

	elapsed    float64
	delta      float64
	frameCount uint64
	closed     bool
}

// Option configures a Gui instance.
type Option func(*Gui)

// WithInput sets a caller-owned input state, letting the backend wire
// its event callbacks before the Gui exists.
func WithInput(input *InputState) Option {
	return func(g *Gui) { g.input = input }
}

// WithLogger sets the logger used for frame diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gui) { g.logger = logger }
}

// New creates a Gui rendering text with the given font. The font
// handle comes from an explicit loader (see the fontatlas package);
// the core never reaches into a process-wide asset registry.
func New(font Font, opts ...Option) *Gui {
	g := &Gui{
		font:   font,
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel})),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.input == nil {
		g.input = NewInputState()
	}
	g.ctx = newContext(g.logger)

	return g
}

// Input returns the input state tracker backends feed events into.
func (g *Gui) Input() *InputState { return g.input }

// Font returns the active font handle.
func (g *Gui) Font() Font { return g.font }

// AdvanceTime advances the engine clock by dt seconds. The host calls
// this once per update tick, before RunFrame; update and render ticks
// may run at different cadences.
func (g *Gui) AdvanceTime(dt float64) {
	g.elapsed += dt
	g.delta = dt
}

// Time returns the total seconds advanced so far.
func (g *Gui) Time() float64 { return g.elapsed }

// DeltaTime returns the seconds advanced by the last AdvanceTime call.
func (g *Gui) DeltaTime() float64 { return g.delta }

// FrameCount returns the number of frames run so far.
func (g *Gui) FrameCount() uint64 { return g.frameCount }

// RunFrame executes exactly one build+layout+render cycle against the
// given canvas. The canvas is borrowed for the duration of the call
// only. On success the frame has been flushed to the GPU and the
// per-frame input state (pressed sets, wheel delta) has been cleared.
//
// A structural divergence between the two passes returns an error
// wrapping ErrTreeMismatch; the frame's draw output is discarded rather
// than rendered with misassigned geometry.
func (g *Gui) RunFrame(canvas Canvas, draw DrawFunc) error {
	if g.closed {
		return errors.New("quill: RunFrame after Shutdown")
	}
	if canvas == nil {
		return errors.New("quill: RunFrame requires a canvas")
	}
	if draw == nil {
		return errors.New("quill: RunFrame requires a draw callback")
	}

	w, h := canvas.Size()
	if w < 1 || h < 1 {
		return fmt.Errorf("quill: canvas has no drawable area (%dx%d)", w, h)
	}

	g.frameCount++
	display := Vec2{X: float32(w), Y: float32(h)}

	// Build pass: construct the tree, no pixels.
	g.ctx.beginBuild(g.input, g.font, display, g.frameCount, float32(g.delta))
	draw(g.ctx)
	if g.ctx.err != nil {
		return g.ctx.err
	}

	// Layout: every node's rect is resolved before the render pass
	// reads any geometry.
	layoutTree(g.ctx.t, display)

	// Render pass + flush, inside the canvas's scoped draw list.
	if err := canvas.RenderFrame(func(dl *DrawList) {
		g.ctx.beginRender(dl)
		draw(g.ctx)
		g.ctx.finishRender()
	}); err != nil {
		return fmt.Errorf("quill: canvas flush: %w", err)
	}
	if g.ctx.err != nil {
		return g.ctx.err
	}

	// End of frame: transient input state is cleared exactly once,
	// after the render pass, never mid-frame.
	g.input.EndFrame()

	return nil
}

// Shutdown is the single explicit teardown operation: it releases the
// input context, then the canvas, then the font resources, in that
// order, so nothing touches a freed resource mid-teardown. A nil
// canvas (headless tests that own no device) skips the canvas step.
// Safe to call once; subsequent RunFrame calls error.
func (g *Gui) Shutdown(canvas Canvas) {
	if g.closed {
		return
	}
	g.closed = true

	g.input.SetClipboard(nil)
	if canvas != nil {
		canvas.Close()
	}
	if c, ok := g.font.(interface{ Close() }); ok {
		c.Close()
	}
	g.font = nil
}
