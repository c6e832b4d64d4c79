package quill

// Canvas is the drawing-surface capability a graphics backend
// implements. It owns the device objects (buffers, shaders, textures)
// and the backing-store size, accumulates the draw commands emitted
// during the render pass, and flushes them to the GPU.
//
// The core borrows the canvas only for the duration of one frame cycle;
// application code must not retain it across frames.
type Canvas interface {
	// Init creates the device objects for the given drawable size.
	// Called once, with a live graphics context, before the first
	// frame. Initialization failures (shader compilation, missing
	// context) surface here, not on first use.
	Init(width, height int) error

	// Resize updates the backing store after a window resize.
	// Calling Resize before Init is a no-op.
	Resize(width, height int)

	// Size reports the current drawable size in pixels.
	Size() (width, height int)

	// RenderFrame acquires a DrawList, passes it to fn, then flushes
	// the accumulated commands to the GPU and releases the list. The
	// DrawList is valid only for the duration of fn. Calling
	// RenderFrame before Init is an error.
	RenderFrame(fn func(dl *DrawList)) error

	// Close releases every device resource the canvas owns. Repeated
	// Init/Close cycles must not leak.
	Close()
}
