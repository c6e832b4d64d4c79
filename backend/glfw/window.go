//go:build cgo

// Package glfwbackend implements the Window and ClipboardProvider
// capabilities on GLFW 3.3. It owns the OS window and the GL context,
// and translates platform events into the core's input state.
package glfwbackend

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/quillui/quill"
)

func init() {
	// The GL context and the event loop must live on the main thread.
	runtime.LockOSThread()
}

// Config describes the window to create. Zero-value dimensions fall
// back to 1280x720.
type Config struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	Decorated bool
	VSync     bool
}

// Window implements quill.Window on a GLFW window. It creates and
// feeds its own InputState; hand that to the core with
// quill.WithInput.
type Window struct {
	win   *glfw.Window
	input *quill.InputState

	resizeFn func(width, height int)
}

// NewWindow initializes GLFW, opens a window with a 4.1 core GL
// context, makes the context current and wires the event callbacks.
func NewWindow(cfg Config) (*Window, error) {
	if cfg.Width < 1 {
		cfg.Width = 1280
	}
	if cfg.Height < 1 {
		cfg.Height = 720
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwbackend: init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.Decorated, boolHint(cfg.Decorated))

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwbackend: create window: %w", err)
	}

	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{
		win:   win,
		input: quill.NewInputState(),
	}
	w.input.SetClipboard(&Clipboard{win: win})

	win.SetKeyCallback(w.keyCallback)
	win.SetCharCallback(w.charCallback)
	win.SetMouseButtonCallback(w.mouseButtonCallback)
	win.SetScrollCallback(w.scrollCallback)
	win.SetCursorPosCallback(w.cursorPosCallback)
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	return w, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Input returns the input state the window feeds its events into.
func (w *Window) Input() *quill.InputState { return w.input }

// PollEvents pumps the GLFW event queue and refreshes the modifier
// key flags from the live keyboard state.
func (w *Window) PollEvents() {
	glfw.PollEvents()

	w.input.ModCtrl = w.keyHeld(glfw.KeyLeftControl, glfw.KeyRightControl)
	w.input.ModShift = w.keyHeld(glfw.KeyLeftShift, glfw.KeyRightShift)
	w.input.ModAlt = w.keyHeld(glfw.KeyLeftAlt, glfw.KeyRightAlt)
	w.input.ModSuper = w.keyHeld(glfw.KeyLeftSuper, glfw.KeyRightSuper)
}

func (w *Window) keyHeld(a, b glfw.Key) bool {
	return w.win.GetKey(a) == glfw.Press || w.win.GetKey(b) == glfw.Press
}

// SwapBuffers presents the frame.
func (w *Window) SwapBuffers() {
	w.win.SwapBuffers()
}

// ShouldClose reports whether the user requested the window to close.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// DrawableSize reports the framebuffer size in pixels.
func (w *Window) DrawableSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// SetResizeCallback registers fn for framebuffer size changes.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.resizeFn = fn
}

// SetTitlebarVisible toggles window decoration. GLFW supports changing
// the Decorated attribute on a live window on the major desktop
// platforms; where the platform ignores it, the call is a no-op.
func (w *Window) SetTitlebarVisible(visible bool) {
	w.win.SetAttrib(glfw.Decorated, boolHint(visible))
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if w.resizeFn != nil {
		w.resizeFn(width, height)
	}
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := translateKey(key)
	if k == quill.KeyNone {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		w.input.SetKey(k, true)
	case glfw.Release:
		w.input.SetKey(k, false)
	}
}

func (w *Window) charCallback(_ *glfw.Window, ch rune) {
	w.input.AddInputChar(ch)
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b, ok := translateMouseButton(button)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		w.input.SetMouseButton(b, true)
	case glfw.Release:
		w.input.SetMouseButton(b, false)
	}
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	w.input.SetMousePos(float32(xpos), float32(ypos))
}

// translateKey maps GLFW keys to core keys. Unmapped keys translate
// to KeyNone and are dropped.
func translateKey(key glfw.Key) quill.Key {
	switch key {
	case glfw.KeyTab:
		return quill.KeyTab
	case glfw.KeyLeft:
		return quill.KeyLeft
	case glfw.KeyRight:
		return quill.KeyRight
	case glfw.KeyUp:
		return quill.KeyUp
	case glfw.KeyDown:
		return quill.KeyDown
	case glfw.KeyPageUp:
		return quill.KeyPageUp
	case glfw.KeyPageDown:
		return quill.KeyPageDown
	case glfw.KeyHome:
		return quill.KeyHome
	case glfw.KeyEnd:
		return quill.KeyEnd
	case glfw.KeyInsert:
		return quill.KeyInsert
	case glfw.KeyDelete:
		return quill.KeyDelete
	case glfw.KeyBackspace:
		return quill.KeyBackspace
	case glfw.KeySpace:
		return quill.KeySpace
	case glfw.KeyEnter:
		return quill.KeyEnter
	case glfw.KeyEscape:
		return quill.KeyEscape
	case glfw.KeyA:
		return quill.KeyA
	case glfw.KeyC:
		return quill.KeyC
	case glfw.KeyS:
		return quill.KeyS
	case glfw.KeyV:
		return quill.KeyV
	case glfw.KeyX:
		return quill.KeyX
	case glfw.KeyY:
		return quill.KeyY
	case glfw.KeyZ:
		return quill.KeyZ
	case glfw.KeyF1:
		return quill.KeyF1
	case glfw.KeyF2:
		return quill.KeyF2
	case glfw.KeyF3:
		return quill.KeyF3
	case glfw.KeyF4:
		return quill.KeyF4
	case glfw.KeyF5:
		return quill.KeyF5
	case glfw.KeyF6:
		return quill.KeyF6
	case glfw.KeyF7:
		return quill.KeyF7
	case glfw.KeyF8:
		return quill.KeyF8
	case glfw.KeyF9:
		return quill.KeyF9
	case glfw.KeyF10:
		return quill.KeyF10
	case glfw.KeyF11:
		return quill.KeyF11
	case glfw.KeyF12:
		return quill.KeyF12
	default:
		return quill.KeyNone
	}
}

// translateMouseButton maps GLFW mouse buttons to core buttons.
func translateMouseButton(button glfw.MouseButton) (quill.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return quill.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return quill.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return quill.MouseButtonMiddle, true
	default:
		return 0, false
	}
}
