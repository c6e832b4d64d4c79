package quill

// ClipboardProvider abstracts system clipboard access. Backends that
// can reach the platform clipboard implement it natively; backends that
// cannot use NopClipboard.
//
// For GLFW:
//
//	type GLFWClipboard struct {
//	    window *glfw.Window
//	}
//
//	func (c *GLFWClipboard) GetText() string {
//	    return c.window.GetClipboardString()
//	}
//
//	func (c *GLFWClipboard) SetText(text string) {
//	    c.window.SetClipboardString(text)
//	}
type ClipboardProvider interface {
	// GetText retrieves text from the system clipboard.
	// Returns empty string if clipboard is empty or contains non-text data.
	GetText() string

	// SetText copies text to the system clipboard.
	SetText(text string)
}

// NopClipboard is a ClipboardProvider for backends without platform
// clipboard support: reads return the empty string and writes are
// silently discarded. This degradation is deliberate and is never
// surfaced as an error.
type NopClipboard struct{}

// GetText returns the empty string.
func (NopClipboard) GetText() string { return "" }

// SetText discards the text.
func (NopClipboard) SetText(string) {}
