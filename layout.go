package quill

import "github.com/chewxy/math32"

// Alignment controls cross-axis placement of children in a container.
type Alignment uint8

const (
	AlignStart   Alignment = iota // flush with the container's leading edge
	AlignCenter                   // centered on the cross axis
	AlignEnd                      // flush with the trailing edge
	AlignStretch                  // stretched to the container's cross size
)

// LayoutOption configures a Row or Column scope.
type LayoutOption func(*node)

// Gap sets the spacing between children.
func Gap(pixels float32) LayoutOption {
	return func(n *node) { n.gap = pixels }
}

// Padding sets the inner padding on all sides.
func Padding(pixels float32) LayoutOption {
	return func(n *node) { n.padding = pixels }
}

// Align sets cross-axis alignment for children.
func Align(a Alignment) LayoutOption {
	return func(n *node) { n.crossAlign = a }
}

// Width fixes the container width instead of sizing to content.
func Width(w float32) LayoutOption {
	return func(n *node) { n.fixedW = w }
}

// Height fixes the container height instead of sizing to content.
func Height(h float32) LayoutOption {
	return func(n *node) { n.fixedH = h }
}

// Grow marks the container to absorb leftover main-axis space in its
// parent.
func Grow() LayoutOption {
	return func(n *node) { n.grow = true }
}

// layoutTree resolves position and size for every node in the tree.
// It runs between the build pass and the render pass: a measure walk
// bottom-up (content sizes), then an arrange walk top-down (rects).
// Root nodes stack vertically from the display origin.
func layoutTree(t *tree, display Vec2) {
	for _, root := range t.roots {
		measure(t, root)
	}

	y := float32(0)
	for _, root := range t.roots {
		n := &t.nodes[root]
		w := n.size.X
		h := n.size.Y
		if n.grow {
			// A growing root fills the display width and whatever
			// height the roots above it left over.
			w = display.X
			h = math32.Max(h, display.Y-y)
		}
		arrange(t, root, Rect{X: 0, Y: y, W: w, H: h})
		y += h
	}
}

// measure computes the desired size of a node from its children.
// Leaf sizes were recorded during the build pass.
func measure(t *tree, idx int) Vec2 {
	n := &t.nodes[idx]

	switch n.kind {
	case nodeColumn, nodeRow:
		var main, cross float32
		for _, child := range n.children {
			sz := measure(t, child)
			if n.kind == nodeColumn {
				main += sz.Y
				cross = math32.Max(cross, sz.X)
			} else {
				main += sz.X
				cross = math32.Max(cross, sz.Y)
			}
		}
		if len(n.children) > 1 {
			main += n.gap * float32(len(n.children)-1)
		}

		var w, h float32
		if n.kind == nodeColumn {
			w = cross + n.padding*2
			h = main + n.padding*2
		} else {
			w = main + n.padding*2
			h = cross + n.padding*2
		}
		if n.fixedW > 0 {
			w = n.fixedW
		}
		if n.fixedH > 0 {
			h = n.fixedH
		}
		n.size = Vec2{X: w, Y: h}
	}

	return n.size
}

// arrange assigns the node its final rect and positions its children
// inside it, distributing leftover main-axis space to growing children
// and applying cross-axis alignment.
func arrange(t *tree, idx int, rect Rect) {
	n := &t.nodes[idx]
	n.rect = rect

	if n.kind != nodeColumn && n.kind != nodeRow {
		return
	}

	innerX := rect.X + n.padding
	innerY := rect.Y + n.padding
	innerW := math32.Max(0, rect.W-n.padding*2)
	innerH := math32.Max(0, rect.H-n.padding*2)

	// Content size along the main axis, before grow distribution.
	var contentMain float32
	growCount := 0
	for _, child := range n.children {
		c := &t.nodes[child]
		if n.kind == nodeColumn {
			contentMain += c.size.Y
		} else {
			contentMain += c.size.X
		}
		if c.grow {
			growCount++
		}
	}
	if len(n.children) > 1 {
		contentMain += n.gap * float32(len(n.children)-1)
	}

	avail := innerH
	if n.kind == nodeRow {
		avail = innerW
	}
	share := float32(0)
	if growCount > 0 && avail > contentMain {
		share = (avail - contentMain) / float32(growCount)
	}

	cursor := float32(0)
	for _, child := range n.children {
		c := &t.nodes[child]
		cw, ch := c.size.X, c.size.Y

		if n.kind == nodeColumn {
			if c.grow {
				ch += share
			}
			if n.crossAlign == AlignStretch {
				cw = innerW
			}
			x := innerX
			switch n.crossAlign {
			case AlignCenter:
				x = innerX + (innerW-cw)/2
			case AlignEnd:
				x = innerX + innerW - cw
			}
			arrange(t, child, Rect{X: x, Y: innerY + cursor, W: cw, H: ch})
			cursor += ch + n.gap
		} else {
			if c.grow {
				cw += share
			}
			if n.crossAlign == AlignStretch {
				ch = innerH
			}
			y := innerY
			switch n.crossAlign {
			case AlignCenter:
				y = innerY + (innerH-ch)/2
			case AlignEnd:
				y = innerY + innerH - ch
			}
			arrange(t, child, Rect{X: innerX + cursor, Y: y, W: cw, H: ch})
			cursor += cw + n.gap
		}
	}
}
