package quill

// Pass identifies which of the two per-frame executions of the draw
// callback is currently running.
//
// Every frame the callback runs exactly twice: once under PassBuild to
// construct the logical UI tree (no pixels are emitted), then, after
// layout has resolved every node's geometry, once under PassRender to
// emit draw commands. Within one frame the transition is strictly
// Build -> layout -> Render; no other ordering occurs.
type Pass uint8

const (
	// PassBuild is the first invocation: nodes are registered, sizes
	// are measured, nothing is drawn.
	PassBuild Pass = iota

	// PassRender is the second invocation: nodes read the geometry the
	// layout step resolved for them and emit draw commands.
	PassRender
)

// String returns a human-readable pass name.
func (p Pass) String() string {
	switch p {
	case PassBuild:
		return "build"
	case PassRender:
		return "render"
	default:
		return "unknown"
	}
}
