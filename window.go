package quill

// Window is the windowing capability a backend implements to host the
// core. It owns the OS window and the graphics context, delivers resize
// notifications, and drives the native event loop surface Run uses.
//
// The core never branches on the concrete backend; it only calls
// through this interface.
type Window interface {
	// PollEvents pumps the platform event queue, firing the input and
	// resize callbacks the backend has wired up.
	PollEvents()

	// SwapBuffers presents the frame.
	SwapBuffers()

	// ShouldClose reports whether the user has requested the window to
	// close. Run exits its loop when this becomes true.
	ShouldClose() bool

	// DrawableSize reports the framebuffer size in pixels, which may
	// differ from the window size on high-DPI displays.
	DrawableSize() (width, height int)

	// SetResizeCallback registers fn to be called with the new
	// framebuffer size whenever the drawable resizes.
	SetResizeCallback(fn func(width, height int))

	// SetTitlebarVisible toggles the window's title-bar chrome.
	// Backends that cannot change decoration after window creation
	// silently ignore the call; this is a documented no-op, never an
	// error.
	SetTitlebarVisible(visible bool)
}
