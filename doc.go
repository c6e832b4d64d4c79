/*
Package quill is the frame-execution core of an immediate-mode GUI
toolkit: a two-pass (build-then-render) pipeline that decouples UI
description code from layout computation and from the concrete
rendering/windowing backend.

# Overview

The UI is described by a single callback that the engine runs twice per
frame. The first invocation (the build pass) constructs the complete
logical UI tree without emitting a single pixel. Layout then resolves
every node's position and size. The second invocation (the render pass)
walks the same call structure, reads the resolved geometry and emits
draw commands into the canvas, which flushes them to the GPU. After the
flush, the per-frame transient input state (pressed sets, wheel delta)
is cleared for the next tick.

Because geometry is addressed purely by traversal order, the callback
must build the same tree structure in both passes of one frame: same
scopes, same primitives, same order. The engine verifies this and a
divergence fails the frame with ErrTreeMismatch instead of silently
rendering misassigned rectangles.

# Quick Start

	// Setup (see backend/glfw, backend/opengl and fontatlas)
	win, _ := glfwbackend.NewWindow(glfwbackend.Config{Title: "demo", Width: 1280, Height: 720})
	canvas := opengl.NewCanvas()
	atlas, _ := fontatlas.New(ttfBytes, 16)
	ui := quill.New(atlas, quill.WithInput(win.Input()))

	err := quill.Run(win, canvas, ui, func(ctx *quill.Context) {
	    ctx.Column(quill.Gap(8), quill.Padding(12))(func() {
	        ctx.Label("Hello", quill.ColorWhite)
	        ctx.Box(200, 24, quill.ColorGray)
	    })
	})

# Backends

A hosting backend supplies three independent capabilities: Window (OS
window, event loop, resize delivery, optional title-bar chrome),
Canvas (device context, draw-command flush, backing-store sizing) and
ClipboardProvider (may be NopClipboard where the platform offers none).
The core calls only through these interfaces and never branches on
backend identity. backend/glfw and backend/opengl pair up for desktop
OpenGL hosting; backend/headless hosts the core with no GPU at all,
which is how the package tests itself.

# Input

InputState turns raw platform events into frame-scoped queries:
pressed (edge-triggered, one frame), down (held since the down event),
released (edge-triggered), plus pointer position/delta, wheel delta and
a typed-character buffer drained with DrainInputChars. Event setters
apply immediately; only the edge sets and the wheel delta are cleared
at frame end.

# Fonts

The core treats fonts as opaque Font handles. The fontatlas package
builds one from caller-supplied TTF bytes; there is no hidden embedded
asset registry, and a bad font surfaces as a construction error rather
than a blank screen later.

# Threading

Everything here is single-threaded by design: backends deliver events
and the host drives frames on the platform main thread, and no core
operation blocks or yields. Background work belongs to the application,
which must hand results back to the main thread before the next tick.
*/
package quill
