package geometry

import (
	"math"
	"unicode/utf8"

	"github.com/structboard/structboard/internal/tree"
)

// Fixed footprint of data-structure elements, in world units.
const (
	ArrayCellWidth  = 60.0
	ArrayCellHeight = 40.0

	ListNodeWidth  = 60.0
	ListNodeHeight = 40.0
	ListNodeGap    = 40.0

	TreeNodeRadius  = 20.0
	TreeLevelHeight = 70.0
	TreeBaseSpacing = 60.0

	// Approximate advance of one glyph relative to the font size, used
	// where no text measurement is available.
	TextWidthFactor  = 0.6
	TextHeightFactor = 1.2

	// HandleSize is the half-extent of a resize handle in screen pixels.
	HandleSize = 6.0
)

// ArrayBounds returns the cell strip of an array at (x, y).
func ArrayBounds(x, y float64, count int) Rect {
	return Rect{X: x, Y: y, Width: float64(count) * ArrayCellWidth, Height: ArrayCellHeight}
}

// LinkedListBounds returns the node strip of a linked list at (x, y),
// including the gaps holding the connecting arrows.
func LinkedListBounds(x, y float64, count int) Rect {
	if count <= 0 {
		return Rect{X: x, Y: y, Height: ListNodeHeight}
	}
	w := float64(count)*(ListNodeWidth+ListNodeGap) - ListNodeGap
	return Rect{X: x, Y: y, Width: w, Height: ListNodeHeight}
}

// ListNodeX returns the left edge of node i of a linked list at x.
func ListNodeX(x float64, i int) float64 {
	return x + float64(i)*(ListNodeWidth+ListNodeGap)
}

// TreeWidth is the horizontal span reserved for a tree of the given depth.
// Leaf slots sit TreeBaseSpacing apart, so the span doubles with each level.
func TreeWidth(depth int) float64 {
	if depth <= 0 {
		return 0
	}
	return TreeBaseSpacing * math.Pow(2, float64(depth-1))
}

// TreeRootOffset is the horizontal distance from the root to its children.
// It halves at every level below.
func TreeRootOffset(depth int) float64 {
	return TreeWidth(depth) / 4
}

// TreeBounds returns the box reserved for a tree rooted at (x, y).
func TreeBounds(root *tree.Node, x, y float64) Rect {
	depth := tree.Depth(root)
	if depth == 0 {
		return Rect{X: x, Y: y}
	}
	w := TreeWidth(depth) + 2*TreeNodeRadius
	return Rect{
		X:      x - w/2,
		Y:      y - TreeNodeRadius,
		Width:  w,
		Height: float64(depth) * TreeLevelHeight,
	}
}

// ChildPosition returns the center of the child on side of a node at (x, y).
func ChildPosition(x, y, offset float64, side tree.Side) (float64, float64) {
	if side == tree.SideLeft {
		return x - offset, y + TreeLevelHeight
	}
	return x + offset, y + TreeLevelHeight
}

// PlacedNode is a tree node with its laid-out center.
type PlacedNode struct {
	Node   *tree.Node
	X, Y   float64
	Offset float64
}

// WalkTree visits every node in pre-order with its laid-out center. The
// offset passed along is the one used to place that node's children.
func WalkTree(root *tree.Node, x, y float64, visit func(PlacedNode)) {
	if root == nil {
		return
	}
	walk(root, x, y, TreeRootOffset(tree.Depth(root)), visit)
}

func walk(n *tree.Node, x, y, offset float64, visit func(PlacedNode)) {
	visit(PlacedNode{Node: n, X: x, Y: y, Offset: offset})
	if n.Left != nil {
		cx, cy := ChildPosition(x, y, offset, tree.SideLeft)
		walk(n.Left, cx, cy, offset/2, visit)
	}
	if n.Right != nil {
		cx, cy := ChildPosition(x, y, offset, tree.SideRight)
		walk(n.Right, cx, cy, offset/2, visit)
	}
}

// TreeNodeAt returns the node whose circle contains p, or nil.
func TreeNodeAt(p Point, root *tree.Node, x, y float64) *tree.Node {
	var hit *tree.Node
	WalkTree(root, x, y, func(pn PlacedNode) {
		if math.Hypot(p.X-pn.X, p.Y-pn.Y) <= TreeNodeRadius {
			hit = pn.Node
		}
	})
	return hit
}

// TextSize estimates the box of a single-line text.
func TextSize(text string, fontSize float64) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * fontSize * TextWidthFactor, fontSize * TextHeightFactor
}
