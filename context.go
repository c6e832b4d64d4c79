package quill

import (
	"fmt"
	"log/slog"
)

// Context is the frame-scoped handle the draw callback receives. It is
// NOT context.Context; it is a dedicated UI context type carrying the
// current Pass, the input snapshot, the active font and the frame's
// draw list, with a lifetime of exactly one pass invocation.
//
// The same Context value is handed to the callback for both passes of a
// frame; the Pass accessor tells primitives whether to register nodes
// only (build) or also emit draw commands (render). Do not retain the
// Context or its DrawList across frames.
type Context struct {
	pass  Pass
	input *InputState
	font  Font
	dl    *DrawList // non-nil during the render pass only

	displaySize Vec2
	frameCount  uint64
	deltaTime   float32

	t      *tree
	cursor int   // render-pass structural cursor
	stack  []int // build-pass container stack

	err    error
	logger *slog.Logger

	// Reused between text primitives to avoid per-call allocations.
	glyphBuffer []GlyphQuad
}

func newContext(logger *slog.Logger) *Context {
	return &Context{
		t:           &tree{},
		stack:       make([]int, 0, 16),
		glyphBuffer: make([]GlyphQuad, 0, 256),
		logger:      logger,
	}
}

// Pass returns the pass currently executing.
func (ctx *Context) Pass() Pass { return ctx.pass }

// Input returns the input snapshot for this frame.
func (ctx *Context) Input() *InputState { return ctx.input }

// Font returns the active font.
func (ctx *Context) Font() Font { return ctx.font }

// DisplaySize returns the drawable size in pixels.
func (ctx *Context) DisplaySize() Vec2 { return ctx.displaySize }

// DeltaTime returns the seconds advanced by the last AdvanceTime call.
func (ctx *Context) DeltaTime() float32 { return ctx.deltaTime }

// FrameCount returns the number of frames run so far.
func (ctx *Context) FrameCount() uint64 { return ctx.frameCount }

// beginBuild prepares the context for the build pass of a new frame.
func (ctx *Context) beginBuild(input *InputState, font Font, display Vec2, frame uint64, dt float32) {
	ctx.pass = PassBuild
	ctx.input = input
	ctx.font = font
	ctx.dl = nil
	ctx.displaySize = display
	ctx.frameCount = frame
	ctx.deltaTime = dt
	ctx.t.reset()
	ctx.stack = ctx.stack[:0]
	ctx.cursor = 0
	ctx.err = nil
}

// beginRender switches the context to the render pass. The tree built
// in the build pass stays; the structural cursor restarts from zero.
func (ctx *Context) beginRender(dl *DrawList) {
	ctx.pass = PassRender
	ctx.dl = dl
	ctx.cursor = 0
	ctx.stack = ctx.stack[:0]
	ctx.glyphBuffer = ctx.glyphBuffer[:0]
}

// finishRender verifies the render pass consumed the whole tree.
func (ctx *Context) finishRender() {
	if ctx.err == nil && ctx.cursor != ctx.t.len() {
		ctx.fail("render pass visited %d of %d nodes", ctx.cursor, ctx.t.len())
	}
}

// fail records the first structural-mismatch error of the frame.
// Subsequent primitive calls become no-ops so one divergence does not
// cascade into a wall of noise.
func (ctx *Context) fail(format string, args ...any) {
	if ctx.err != nil {
		return
	}
	detail := fmt.Sprintf(format, args...)
	ctx.logger.Error("tree structure diverged between passes",
		"frame", ctx.frameCount, "node", ctx.cursor, "detail", detail)
	ctx.err = fmt.Errorf("%w: %s", ErrTreeMismatch, detail)
}

// append adds a node during the build pass, attaching it to the open
// container (or as a root) and returning its structural index.
func (ctx *Context) append(n node) int {
	idx := ctx.t.add(n)
	if len(ctx.stack) > 0 {
		parent := ctx.stack[len(ctx.stack)-1]
		ctx.t.nodes[parent].children = append(ctx.t.nodes[parent].children, idx)
	} else {
		ctx.t.roots = append(ctx.t.roots, idx)
	}
	return idx
}

// next advances the render-pass cursor and returns the node it expects
// there, or nil after a structural mismatch.
func (ctx *Context) next(kind nodeKind) *node {
	if ctx.err != nil {
		return nil
	}
	if ctx.cursor >= ctx.t.len() {
		ctx.fail("render pass created a %s node the build pass did not", kind)
		return nil
	}
	n := &ctx.t.nodes[ctx.cursor]
	if n.kind != kind {
		ctx.fail("expected %s at node %d, render pass produced %s", n.kind, ctx.cursor, kind)
		return nil
	}
	ctx.cursor++
	return n
}

// parentKind returns the kind of the open container during the build
// pass, defaulting to column at the root.
func (ctx *Context) parentKind() nodeKind {
	if len(ctx.stack) == 0 {
		return nodeColumn
	}
	return ctx.t.nodes[ctx.stack[len(ctx.stack)-1]].kind
}

// container implements the shared Column/Row scope behavior.
func (ctx *Context) container(kind nodeKind, opts []LayoutOption, contents func()) {
	switch ctx.pass {
	case PassBuild:
		n := node{kind: kind}
		for _, opt := range opts {
			opt(&n)
		}
		idx := ctx.append(n)
		ctx.stack = append(ctx.stack, idx)
		contents()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		// Nodes are stored in pre-order, so everything appended while
		// this scope was open is a descendant.
		ctx.t.nodes[idx].span = ctx.t.len() - idx - 1
	case PassRender:
		n := ctx.next(kind)
		if n == nil {
			return
		}
		idx := ctx.cursor - 1
		expectedEnd := idx + 1 + ctx.spanOf(idx)
		contents()
		if ctx.err == nil && ctx.cursor != expectedEnd {
			ctx.fail("%s scope at node %d: build pass had %d descendant nodes, render pass visited %d",
				kind, idx, ctx.spanOf(idx), ctx.cursor-idx-1)
		}
	}
}

// spanOf returns the number of descendant nodes of a container.
func (ctx *Context) spanOf(idx int) int {
	return ctx.t.nodes[idx].span
}

// Column creates a vertical layout scope.
//
// Usage:
//
//	ctx.Column(quill.Gap(8), quill.Padding(12))(func() {
//	    ctx.Label("Hello", quill.ColorWhite)
//	    ctx.Box(120, 24, quill.ColorGray)
//	})
func (ctx *Context) Column(opts ...LayoutOption) func(func()) {
	return func(contents func()) { ctx.container(nodeColumn, opts, contents) }
}

// Row creates a horizontal layout scope.
func (ctx *Context) Row(opts ...LayoutOption) func(func()) {
	return func(contents func()) { ctx.container(nodeRow, opts, contents) }
}

// Box registers a solid rectangle of the given size. During the render
// pass it fills the rectangle the layout step resolved for it. The
// color is read fresh each pass, so it may vary with external state;
// the size contributes to layout and must not.
func (ctx *Context) Box(w, h float32, color uint32) {
	switch ctx.pass {
	case PassBuild:
		ctx.append(node{kind: nodeBox, size: Vec2{X: w, Y: h}})
	case PassRender:
		n := ctx.next(nodeBox)
		if n == nil || ctx.dl == nil {
			return
		}
		ctx.dl.SetTexture(0)
		ctx.dl.AddRect(n.rect.X, n.rect.Y, n.rect.W, n.rect.H, color)
	}
}

// Label registers a single line of text, sized by the active font.
func (ctx *Context) Label(text string, color uint32) {
	switch ctx.pass {
	case PassBuild:
		size := Vec2{}
		if ctx.font != nil {
			size = ctx.font.MeasureText(text, 1)
		}
		ctx.append(node{kind: nodeText, size: size, text: text, scale: 1})
	case PassRender:
		n := ctx.next(nodeText)
		if n == nil || ctx.dl == nil || ctx.font == nil {
			return
		}
		ctx.glyphBuffer = ctx.font.AppendQuads(ctx.glyphBuffer[:0], text, n.rect.X, n.rect.Y, n.scale)
		ctx.dl.SetTexture(ctx.font.TextureID())
		ctx.dl.AddGlyphQuads(ctx.glyphBuffer, color)
	}
}

// Spacer registers a zero-size node that absorbs leftover main-axis
// space in its container.
func (ctx *Context) Spacer() {
	switch ctx.pass {
	case PassBuild:
		ctx.append(node{kind: nodeSpacer, grow: true})
	case PassRender:
		ctx.next(nodeSpacer)
	}
}

// Space registers fixed spacing along the container's main axis.
func (ctx *Context) Space(pixels float32) {
	switch ctx.pass {
	case PassBuild:
		n := node{kind: nodeSpace}
		if ctx.parentKind() == nodeRow {
			n.size.X = pixels
		} else {
			n.size.Y = pixels
		}
		ctx.append(n)
	case PassRender:
		ctx.next(nodeSpace)
	}
}
