package quill

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyS
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCount
)

// InputState converts raw platform input events into frame-scoped query
// state. It is populated by a backend's event callbacks and read by
// application draw code; the Gui engine resets the per-frame transient
// portions (pressed sets, wheel delta) once per completed frame.
//
// Event setters take effect immediately, not at frame boundaries, so a
// query issued mid-frame always observes the latest platform state.
//
// Per key and button the state machine is Up -> Pressed -> Held -> Up:
// Pressed is a one-frame transient raised by a down event (during that
// frame the key is also Held), collapsing to plain Held at the next
// frame boundary, and Held drops to Up on the up event.
type InputState struct {
	mouseX, mouseY         float32
	prevMouseX, prevMouseY float32

	mouseDown     [MouseButtonCount]bool
	mouseClicked  [MouseButtonCount]bool // true on the frame the button went down
	mouseReleased [MouseButtonCount]bool // true on the frame the button went up

	wheelX, wheelY float32

	keyDown     [KeyCount]bool
	keyPressed  [KeyCount]bool // true on the frame the key went down
	keyReleased [KeyCount]bool // true on the frame the key went up

	// Typed characters accumulated since the last drain. Unlike the
	// pressed sets this buffer survives frame resets; it is consumed
	// only by DrainInputChars.
	inputChars []rune

	// Modifiers, refreshed by the backend each tick.
	ModCtrl  bool
	ModShift bool
	ModAlt   bool
	ModSuper bool

	clipboard ClipboardProvider
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{
		inputChars: make([]rune, 0, 16),
	}
}

// SetClipboard sets the clipboard provider used by ClipboardText and
// SetClipboardText. A nil provider degrades clipboard access to empty
// reads and ignored writes.
func (s *InputState) SetClipboard(cp ClipboardProvider) {
	s.clipboard = cp
}

// SetMousePos records a pointer move: the previous position shifts to
// the old current position and the delta is derived from the pair.
func (s *InputState) SetMousePos(x, y float32) {
	s.prevMouseX, s.prevMouseY = s.mouseX, s.mouseY
	s.mouseX, s.mouseY = x, y
}

// MousePosition returns the current pointer position.
func (s *InputState) MousePosition() Vec2 {
	return Vec2{X: s.mouseX, Y: s.mouseY}
}

// PrevMousePosition returns the pointer position before the most recent
// move event.
func (s *InputState) PrevMousePosition() Vec2 {
	return Vec2{X: s.prevMouseX, Y: s.prevMouseY}
}

// MouseDelta returns current minus previous pointer position.
func (s *InputState) MouseDelta() Vec2 {
	return Vec2{X: s.mouseX - s.prevMouseX, Y: s.mouseY - s.prevMouseY}
}

// SetMouseWheel records a scroll event. The latest event within a frame
// wins; multiple scroll events between two frame resets are not
// accumulated. TODO: confirm whether high-polling-rate devices need
// accumulation here instead of last-write-wins.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.wheelX, s.wheelY = x, y
}

// MouseWheel returns the wheel delta recorded this frame.
func (s *InputState) MouseWheel() (x, y float32) {
	return s.wheelX, s.wheelY
}

// SetMouseButton records a button transition. Repeated down events for
// an already-held button are idempotent.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseReleased[button] = true
	}
}

// SetKey records a key transition. Repeated down events for an
// already-held key are idempotent.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}

	wasDown := s.keyDown[key]
	s.keyDown[key] = down

	if down && !wasDown {
		s.keyPressed[key] = true
	}
	if !down && wasDown {
		s.keyReleased[key] = true
	}
}

// AddInputChar appends a typed character to the buffer.
func (s *InputState) AddInputChar(ch rune) {
	s.inputChars = append(s.inputChars, ch)
}

// DrainInputChars returns all characters typed since the previous drain
// and clears the buffer. A second call with no intervening input
// returns the empty string.
func (s *InputState) DrainInputChars() string {
	if len(s.inputChars) == 0 {
		return ""
	}
	text := string(s.inputChars)
	s.inputChars = s.inputChars[:0]
	return text
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was released this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseReleased[button]
}

// MouseUp returns true if a mouse button is not currently held.
func (s *InputState) MouseUp(button MouseButton) bool {
	return !s.MouseDown(button)
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyReleased returns true if a key was released this frame.
func (s *InputState) KeyReleased(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyReleased[key]
}

// KeyUp returns true if a key is not currently held.
func (s *InputState) KeyUp(key Key) bool {
	return !s.KeyDown(key)
}

// ClipboardText reads text from the system clipboard. A missing or
// failing provider yields the empty string, never an error.
func (s *InputState) ClipboardText() string {
	if s.clipboard == nil {
		return ""
	}
	return s.clipboard.GetText()
}

// SetClipboardText writes text to the system clipboard. With no
// provider the write is silently ignored.
func (s *InputState) SetClipboardText(text string) {
	if s.clipboard != nil {
		s.clipboard.SetText(text)
	}
}

// EndFrame clears the per-frame transient state: the pressed and
// released sets and the wheel delta. Held sets, pointer position and
// the typed-character buffer persist. The Gui engine calls this exactly
// once per frame, after the render pass completes.
func (s *InputState) EndFrame() {
	for i := range s.mouseClicked {
		s.mouseClicked[i] = false
	}
	for i := range s.mouseReleased {
		s.mouseReleased[i] = false
	}
	for i := range s.keyPressed {
		s.keyPressed[i] = false
	}
	for i := range s.keyReleased {
		s.keyReleased[i] = false
	}
	s.wheelX, s.wheelY = 0, 0
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyNone:      "--",
		KeyTab:       "Tab",
		KeyLeft:      "Left",
		KeyRight:     "Right",
		KeyUp:        "Up",
		KeyDown:      "Down",
		KeyPageUp:    "PgUp",
		KeyPageDown:  "PgDn",
		KeyHome:      "Home",
		KeyEnd:       "End",
		KeyInsert:    "Ins",
		KeyDelete:    "Del",
		KeyBackspace: "Backspace",
		KeySpace:     "Space",
		KeyEnter:     "Enter",
		KeyEscape:    "Esc",
		KeyA:         "A",
		KeyC:         "C",
		KeyS:         "S",
		KeyV:         "V",
		KeyX:         "X",
		KeyY:         "Y",
		KeyZ:         "Z",
		KeyF1:        "F1",
		KeyF2:        "F2",
		KeyF3:        "F3",
		KeyF4:        "F4",
		KeyF5:        "F5",
		KeyF6:        "F6",
		KeyF7:        "F7",
		KeyF8:        "F8",
		KeyF9:        "F9",
		KeyF10:       "F10",
		KeyF11:       "F11",
		KeyF12:       "F12",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "?"
}
