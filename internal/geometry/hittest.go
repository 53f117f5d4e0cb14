package geometry

import (
	"math"

	"github.com/structboard/structboard/internal/tree"
)

// DistancePointToSegment returns the distance from p to the segment ab.
func DistancePointToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = min(max(t, 0), 1)

	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// IsPointNearPath reports whether p lies within tolerance of the polyline
// through points. A single point is tested by plain distance.
func IsPointNearPath(p Point, points []Point, tolerance float64) bool {
	switch len(points) {
	case 0:
		return false
	case 1:
		return DistancePointToSegment(p, points[0], points[0]) <= tolerance
	}
	for i := 1; i < len(points); i++ {
		if DistancePointToSegment(p, points[i-1], points[i]) <= tolerance {
			return true
		}
	}
	return false
}

// unrotate maps p into the frame of a shape rotated by degrees about center.
func unrotate(p, center Point, degrees float64) Point {
	if degrees == 0 {
		return p
	}
	return RotateAbout(-degrees, center.X, center.Y).TransformPoint(p)
}

// IsPointNearRectangle reports whether p lies within tolerance of an edge
// of r rotated by degrees about its center.
func IsPointNearRectangle(p Point, r Rect, degrees, tolerance float64) bool {
	r = r.Normalize()
	local := unrotate(p, r.Center(), degrees)
	c := r.Corners()
	for i := range c {
		if DistancePointToSegment(local, c[i], c[(i+1)%4]) <= tolerance {
			return true
		}
	}
	return false
}

// IsPointInRectangle reports whether p lies inside r rotated by degrees.
func IsPointInRectangle(p Point, r Rect, degrees float64) bool {
	r = r.Normalize()
	return r.Contains(unrotate(p, r.Center(), degrees))
}

// ellipseNorm returns sqrt(dx²/rx² + dy²/ry²) for p in the ellipse's
// unrotated frame: 1 on the boundary, below 1 inside.
func ellipseNorm(p, center Point, rx, ry, degrees float64) float64 {
	local := unrotate(p, center, degrees)
	dx, dy := local.X-center.X, local.Y-center.Y
	return math.Sqrt(dx*dx/(rx*rx) + dy*dy/(ry*ry))
}

// IsPointNearEllipse reports whether p lies near the boundary of the
// ellipse. The normalized radius must be within tolerance/max(rx, ry) of 1.
// A degenerate ellipse is tested as the segment it collapses to.
func IsPointNearEllipse(p, center Point, rx, ry, degrees, tolerance float64) bool {
	rx, ry = abs(rx), abs(ry)
	if rx == 0 || ry == 0 {
		local := unrotate(p, center, degrees)
		a := Point{X: center.X - rx, Y: center.Y - ry}
		b := Point{X: center.X + rx, Y: center.Y + ry}
		return DistancePointToSegment(local, a, b) <= tolerance
	}
	n := ellipseNorm(p, center, rx, ry, degrees)
	return abs(n-1) <= tolerance/max(rx, ry)
}

// IsPointInEllipse reports whether p lies inside the ellipse.
func IsPointInEllipse(p, center Point, rx, ry, degrees float64) bool {
	rx, ry = abs(rx), abs(ry)
	if rx == 0 || ry == 0 {
		return false
	}
	return ellipseNorm(p, center, rx, ry, degrees) <= 1
}

// IsPointInArray tests the cell strip of an array with count values.
func IsPointInArray(p Point, x, y float64, count int, tolerance float64) bool {
	r := ArrayBounds(x, y, count)
	return r.Contains(p) || IsPointNearRectangle(p, r, 0, tolerance)
}

// IsPointInLinkedList tests the node strip of a linked list with count values.
func IsPointInLinkedList(p Point, x, y float64, count int, tolerance float64) bool {
	r := LinkedListBounds(x, y, count)
	return r.Contains(p) || IsPointNearRectangle(p, r, 0, tolerance)
}

// IsPointInTree reports whether p hits a node or an edge of the tree whose
// root is centered at (x, y).
func IsPointInTree(p Point, root *tree.Node, x, y, tolerance float64) bool {
	if root == nil {
		return false
	}
	return hitTreeNode(p, root, x, y, TreeRootOffset(tree.Depth(root)), tolerance)
}

func hitTreeNode(p Point, n *tree.Node, x, y, offset, tolerance float64) bool {
	if math.Hypot(p.X-x, p.Y-y) <= TreeNodeRadius {
		return true
	}

	children := [2]struct {
		node *tree.Node
		side tree.Side
	}{{n.Left, tree.SideLeft}, {n.Right, tree.SideRight}}

	for _, c := range children {
		if c.node == nil {
			continue
		}
		cx, cy := ChildPosition(x, y, offset, c.side)
		from := Point{X: x, Y: y + TreeNodeRadius}
		to := Point{X: cx, Y: cy - TreeNodeRadius}
		if DistancePointToSegment(p, from, to) <= tolerance {
			return true
		}
	}

	for _, c := range children {
		if c.node == nil {
			continue
		}
		cx, cy := ChildPosition(x, y, offset, c.side)
		if hitTreeNode(p, c.node, cx, cy, offset/2, tolerance) {
			return true
		}
	}
	return false
}
