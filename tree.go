package quill

import "errors"

// ErrTreeMismatch is the contract-violation error reported when the
// draw callback builds a different tree structure in the render pass
// than it did in the build pass of the same frame. Geometry is resolved
// against the build-pass tree and addressed by traversal order, so a
// diverging render pass would read another node's rectangle; the frame
// fails loudly instead of rendering garbage.
var ErrTreeMismatch = errors.New("quill: build/render tree structure mismatch")

// nodeKind discriminates the primitives the frame tree is built from.
type nodeKind uint8

const (
	nodeColumn nodeKind = iota
	nodeRow
	nodeBox
	nodeText
	nodeSpacer
	nodeSpace
)

func (k nodeKind) String() string {
	switch k {
	case nodeColumn:
		return "column"
	case nodeRow:
		return "row"
	case nodeBox:
		return "box"
	case nodeText:
		return "text"
	case nodeSpacer:
		return "spacer"
	case nodeSpace:
		return "space"
	default:
		return "invalid"
	}
}

// node is a single element of one frame's UI tree. Nodes are appended
// in call order during the build pass; that order is the node's
// structural identity, and the render pass walks the same order to find
// each node's resolved rectangle.
type node struct {
	kind nodeKind

	// Desired size. Leaves know theirs at build time (boxes from their
	// arguments, text from font measurement); containers derive theirs
	// during layout.
	size Vec2

	// grow marks a node that absorbs leftover main-axis space in its
	// parent container.
	grow bool

	text  string  // nodeText only
	scale float32 // nodeText only

	// Container layout parameters (nodeColumn / nodeRow).
	gap        float32
	padding    float32
	crossAlign Alignment
	fixedW     float32 // 0 = size to content
	fixedH     float32

	children []int // child indices, container nodes only
	span     int   // descendant node count, container nodes only

	// rect is resolved by the layout step between the two passes.
	rect Rect
}

// tree holds the nodes of one frame in traversal order.
type tree struct {
	nodes []node
	roots []int
}

// reset clears the tree for a new frame, keeping capacity.
func (t *tree) reset() {
	t.nodes = t.nodes[:0]
	t.roots = t.roots[:0]
}

// add appends a node and returns its structural index.
func (t *tree) add(n node) int {
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *tree) len() int { return len(t.nodes) }
