//go:build cgo

package glfwbackend

import "github.com/go-gl/glfw/v3.3/glfw"

// Clipboard implements quill.ClipboardProvider on the OS clipboard via
// GLFW. GLFW reports clipboard failures by returning an empty string,
// which matches the provider contract of degrading silently.
type Clipboard struct {
	win *glfw.Window
}

// GetText returns the clipboard contents, or "" if unavailable.
func (c *Clipboard) GetText() string {
	return c.win.GetClipboardString()
}

// SetText stores text on the clipboard.
func (c *Clipboard) SetText(text string) {
	c.win.SetClipboardString(text)
}
