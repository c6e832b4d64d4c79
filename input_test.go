package quill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseButtonStateMachine(t *testing.T) {
	in := NewInputState()

	// Frame 1: button goes down.
	in.SetMouseButton(MouseButtonLeft, true)
	assert.True(t, in.MouseClicked(MouseButtonLeft))
	assert.True(t, in.MouseDown(MouseButtonLeft), "pressed implies held")
	assert.False(t, in.MouseReleased(MouseButtonLeft))
	assert.False(t, in.MouseUp(MouseButtonLeft))
	in.EndFrame()

	// Frame 2: still held, no new events.
	assert.False(t, in.MouseClicked(MouseButtonLeft), "pressed lasts one frame")
	assert.True(t, in.MouseDown(MouseButtonLeft))
	in.EndFrame()

	// Frame 3: button goes up.
	in.SetMouseButton(MouseButtonLeft, false)
	assert.True(t, in.MouseReleased(MouseButtonLeft))
	assert.False(t, in.MouseDown(MouseButtonLeft))
	assert.True(t, in.MouseUp(MouseButtonLeft))
	in.EndFrame()

	// Frame 4: idle.
	assert.False(t, in.MouseReleased(MouseButtonLeft))
	assert.True(t, in.MouseUp(MouseButtonLeft))
}

func TestMouseButtonRepeatedDownIsIdempotent(t *testing.T) {
	in := NewInputState()

	in.SetMouseButton(MouseButtonLeft, true)
	in.EndFrame()

	// A second down event for a held button must not re-raise pressed.
	in.SetMouseButton(MouseButtonLeft, true)
	assert.False(t, in.MouseClicked(MouseButtonLeft))
	assert.True(t, in.MouseDown(MouseButtonLeft))
}

func TestKeyStateMachine(t *testing.T) {
	in := NewInputState()

	in.SetKey(KeyEnter, true)
	assert.True(t, in.KeyPressed(KeyEnter))
	assert.True(t, in.KeyDown(KeyEnter), "pressed implies held")
	in.EndFrame()

	assert.False(t, in.KeyPressed(KeyEnter))
	assert.True(t, in.KeyDown(KeyEnter), "held survives the frame reset")

	// OS key-repeat shows up as extra down events; they stay collapsed.
	in.SetKey(KeyEnter, true)
	assert.False(t, in.KeyPressed(KeyEnter))

	in.SetKey(KeyEnter, false)
	assert.True(t, in.KeyReleased(KeyEnter))
	assert.True(t, in.KeyUp(KeyEnter))
	in.EndFrame()

	assert.False(t, in.KeyReleased(KeyEnter))
}

func TestKeyOutOfRangeIgnored(t *testing.T) {
	in := NewInputState()

	in.SetKey(Key(-1), true)
	in.SetKey(KeyCount, true)
	in.SetMouseButton(MouseButton(-1), true)
	in.SetMouseButton(MouseButtonCount, true)

	assert.False(t, in.KeyDown(Key(-1)))
	assert.False(t, in.KeyDown(KeyCount))
	assert.False(t, in.MouseDown(MouseButton(-1)))
	assert.False(t, in.MouseDown(MouseButtonCount))
}

func TestMouseDelta(t *testing.T) {
	in := NewInputState()

	in.SetMousePos(0, 0)
	in.SetMousePos(10, 5)

	assert.Equal(t, Vec2{X: 10, Y: 5}, in.MousePosition())
	assert.Equal(t, Vec2{X: 0, Y: 0}, in.PrevMousePosition())
	assert.Equal(t, Vec2{X: 10, Y: 5}, in.MouseDelta())

	// Pointer state persists across the frame reset.
	in.EndFrame()
	assert.Equal(t, Vec2{X: 10, Y: 5}, in.MousePosition())
}

func TestMouseWheelLastWriteWins(t *testing.T) {
	in := NewInputState()

	in.SetMouseWheel(0, 1)
	in.SetMouseWheel(0, 3)
	x, y := in.MouseWheel()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(3), y, "later event replaces, not accumulates")

	in.EndFrame()
	x, y = in.MouseWheel()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y, "wheel delta is frame transient")
}

func TestDrainInputChars(t *testing.T) {
	in := NewInputState()

	in.AddInputChar('h')
	in.AddInputChar('i')
	assert.Equal(t, "hi", in.DrainInputChars())
	assert.Equal(t, "", in.DrainInputChars(), "drain consumes")

	// Typed characters survive frame resets until drained.
	in.AddInputChar('x')
	in.EndFrame()
	assert.Equal(t, "x", in.DrainInputChars())
}

type recordingClipboard struct {
	text string
}

func (c *recordingClipboard) GetText() string     { return c.text }
func (c *recordingClipboard) SetText(text string) { c.text = text }

func TestClipboardProvider(t *testing.T) {
	in := NewInputState()
	cb := &recordingClipboard{}
	in.SetClipboard(cb)

	in.SetClipboardText("hello")
	assert.Equal(t, "hello", cb.text)
	assert.Equal(t, "hello", in.ClipboardText())
}

func TestClipboardDegradesSilently(t *testing.T) {
	in := NewInputState()

	// No provider: reads empty, writes vanish, nothing panics.
	assert.Equal(t, "", in.ClipboardText())
	in.SetClipboardText("lost")
	assert.Equal(t, "", in.ClipboardText())

	// Same behavior through the explicit no-op provider.
	in.SetClipboard(NopClipboard{})
	in.SetClipboardText("also lost")
	assert.Equal(t, "", in.ClipboardText())
}

func TestEndFrameClearsOnlyTransients(t *testing.T) {
	in := NewInputState()

	in.SetMousePos(40, 20)
	in.SetMouseButton(MouseButtonRight, true)
	in.SetKey(KeyA, true)
	in.SetMouseWheel(1, -2)
	in.AddInputChar('q')

	in.EndFrame()

	assert.False(t, in.MouseClicked(MouseButtonRight))
	assert.False(t, in.KeyPressed(KeyA))
	x, y := in.MouseWheel()
	assert.Zero(t, x)
	assert.Zero(t, y)

	assert.True(t, in.MouseDown(MouseButtonRight))
	assert.True(t, in.KeyDown(KeyA))
	assert.Equal(t, Vec2{X: 40, Y: 20}, in.MousePosition())
	assert.Equal(t, "q", in.DrainInputChars())
}

func TestKeyName(t *testing.T) {
	require.Equal(t, "Enter", KeyName(KeyEnter))
	require.Equal(t, "F12", KeyName(KeyF12))
	require.Equal(t, "?", KeyName(KeyCount))
}
