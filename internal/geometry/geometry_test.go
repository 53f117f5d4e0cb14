package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/tree"
)

func pt(x, y float64) Point { return Point{X: x, Y: y} }

func TestDistancePointToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"perpendicular", pt(5, 3), pt(0, 0), pt(10, 0), 3},
		{"before start", pt(-3, 4), pt(0, 0), pt(10, 0), 5},
		{"past end", pt(13, 4), pt(0, 0), pt(10, 0), 5},
		{"on segment", pt(5, 0), pt(0, 0), pt(10, 0), 0},
		{"degenerate", pt(3, 4), pt(0, 0), pt(0, 0), 5},
		{"diagonal", pt(0, 2), pt(0, 0), pt(2, 2), math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistancePointToSegment(tt.p, tt.a, tt.b), 1e-9)
		})
	}
}

func TestIsPointNearPath(t *testing.T) {
	path := []Point{pt(0, 0), pt(10, 0), pt(10, 10)}

	assert.True(t, IsPointNearPath(pt(5, 2), path, 3))
	assert.True(t, IsPointNearPath(pt(12, 5), path, 3))
	assert.False(t, IsPointNearPath(pt(5, 5), path, 3))
	assert.False(t, IsPointNearPath(pt(0, 0), nil, 3))
	assert.True(t, IsPointNearPath(pt(1, 1), []Point{pt(0, 0)}, 2))
}

func TestIsPointNearRectangle(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}

	assert.True(t, IsPointNearRectangle(pt(50, 2), r, 0, 5))
	assert.True(t, IsPointNearRectangle(pt(103, 25), r, 0, 5))
	assert.False(t, IsPointNearRectangle(pt(50, 25), r, 0, 5), "interior is not an edge")
	assert.False(t, IsPointNearRectangle(pt(50, 60), r, 0, 5))

	// Rotated 90 degrees about (50, 25): the long edges now run vertically
	// at x = 25 and x = 75, spanning y from -25 to 75.
	assert.True(t, IsPointNearRectangle(pt(25, 60), r, 90, 2))
	assert.False(t, IsPointNearRectangle(pt(50, 2), r, 90, 2))

	negative := Rect{X: 100, Y: 50, Width: -100, Height: -50}
	assert.True(t, IsPointNearRectangle(pt(50, 2), negative, 0, 5))
}

func TestIsPointInRectangleRotated(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 20}
	assert.True(t, IsPointInRectangle(pt(50, 50), r, 90))
	assert.False(t, IsPointInRectangle(pt(50, 50), r, 0))
}

func TestIsPointNearEllipse(t *testing.T) {
	c := pt(0, 0)

	assert.True(t, IsPointNearEllipse(pt(50, 0), c, 50, 25, 0, 2))
	assert.True(t, IsPointNearEllipse(pt(0, 25), c, 50, 25, 0, 2))
	assert.False(t, IsPointNearEllipse(pt(0, 0), c, 50, 25, 0, 2))
	assert.False(t, IsPointNearEllipse(pt(60, 0), c, 50, 25, 0, 2))

	// Rotated a quarter turn the long axis is vertical.
	assert.True(t, IsPointNearEllipse(pt(0, 50), c, 50, 25, 90, 2))

	// A zero radius collapses to a segment.
	assert.True(t, IsPointNearEllipse(pt(10, 1), c, 50, 0, 0, 2))
}

func TestIsPointInEllipse(t *testing.T) {
	assert.True(t, IsPointInEllipse(pt(10, 5), pt(0, 0), 50, 25, 0))
	assert.False(t, IsPointInEllipse(pt(10, 30), pt(0, 0), 50, 25, 0))
	assert.False(t, IsPointInEllipse(pt(0, 0), pt(0, 0), 0, 25, 0))
}

func TestArrayAndLinkedListRegions(t *testing.T) {
	assert.True(t, IsPointInArray(pt(170, 20), 0, 0, 3, 2))
	assert.False(t, IsPointInArray(pt(185, 20), 0, 0, 3, 2))
	assert.True(t, IsPointInArray(pt(181, 20), 0, 0, 3, 2), "edge proximity")

	// Three nodes: 60 + 40 + 60 + 40 + 60 wide.
	assert.Equal(t, 260.0, LinkedListBounds(0, 0, 3).Width)
	assert.True(t, IsPointInLinkedList(pt(250, 10), 0, 0, 3, 2))
	assert.False(t, IsPointInLinkedList(pt(270, 10), 0, 0, 3, 2))
}

func TestTreeLayoutAndHit(t *testing.T) {
	root := tree.BuildFromValues([]string{"10", "5", "15", "3", "7", "null", "20"})
	// Depth 3: span 240, root offset 60, then 30.
	assert.Equal(t, 60.0, TreeRootOffset(3))

	var placed []PlacedNode
	WalkTree(root, 0, 0, func(pn PlacedNode) { placed = append(placed, pn) })
	assert.Len(t, placed, 6)

	positions := map[string]Point{}
	for _, pn := range placed {
		positions[pn.Node.Value] = pt(pn.X, pn.Y)
	}
	assert.Equal(t, pt(-60, 70), positions["5"])
	assert.Equal(t, pt(90, 140), positions["20"])
	assert.Equal(t, pt(-90, 140), positions["3"])

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"root center", pt(0, 0), true},
		{"root rim", pt(19, 0), true},
		{"grandchild", pt(90, 145), true},
		{"edge root to left", pt(-30, 35), true},
		{"empty slot of 15", pt(30, 140), false},
		{"far away", pt(0, 300), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPointInTree(tt.p, root, 0, 0, 3))
		})
	}

	hit := TreeNodeAt(pt(-58, 72), root, 0, 0)
	if assert.NotNil(t, hit) {
		assert.Equal(t, "5", hit.Value)
	}
	assert.Nil(t, TreeNodeAt(pt(0, 35), root, 0, 0))
}

func TestTreeBoundsContainsAllNodes(t *testing.T) {
	root := tree.BuildFromValues([]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15"})
	b := TreeBounds(root, 100, 100)

	assert.Equal(t, TreeBaseSpacing*8+2*TreeNodeRadius, b.Width)
	assert.Equal(t, 4*TreeLevelHeight, b.Height)

	WalkTree(root, 100, 100, func(pn PlacedNode) {
		node := Rect{X: pn.X - TreeNodeRadius, Y: pn.Y - TreeNodeRadius, Width: 2 * TreeNodeRadius, Height: 2 * TreeNodeRadius}
		assert.True(t, b.ContainsRect(node), "node %s outside bounds", pn.Node.Value)
	})
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name string
		e    document.Element
		want Rect
	}{
		{
			"negative rectangle",
			document.Element{Type: document.TypeRectangle, X: 10, Y: 10, Width: -10, Height: -5},
			Rect{X: 0, Y: 5, Width: 10, Height: 5},
		},
		{
			"circle",
			document.Element{Type: document.TypeCircle, X: 0, Y: 0, RadiusX: 20, RadiusY: 10},
			Rect{X: -20, Y: -10, Width: 40, Height: 20},
		},
		{
			"line",
			document.Element{Type: document.TypeLine, X: 10, Y: 0, EndX: 0, EndY: 20},
			Rect{X: 0, Y: 0, Width: 10, Height: 20},
		},
		{
			"draw",
			document.Element{Type: document.TypeDraw, X: 5, Y: 5, Points: []Point{pt(0, 0), pt(-5, 10), pt(10, 2)}},
			Rect{X: 0, Y: 5, Width: 15, Height: 10},
		},
		{
			"array",
			document.Element{Type: document.TypeArray, X: 1, Y: 2, Values: []string{"a", "b"}},
			Rect{X: 1, Y: 2, Width: 120, Height: 40},
		},
		{
			"text",
			document.Element{Type: document.TypeText, X: 0, Y: 0, Text: "abcd", FontSize: 10},
			Rect{X: 0, Y: 0, Width: 24, Height: 12},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bounds(&tt.e)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
		})
	}
}

func TestBoundsRotated(t *testing.T) {
	rect := document.Element{Type: document.TypeRectangle, X: 0, Y: 0, Width: 100, Height: 20, Rotate: 90}
	b := Bounds(&rect)
	assert.InDelta(t, 40, b.X, 1e-9)
	assert.InDelta(t, -40, b.Y, 1e-9)
	assert.InDelta(t, 20, b.Width, 1e-9)
	assert.InDelta(t, 100, b.Height, 1e-9)

	circle := document.Element{Type: document.TypeCircle, RadiusX: 30, RadiusY: 10, Rotate: 90}
	cb := Bounds(&circle)
	assert.InDelta(t, 20, cb.Width, 1e-9)
	assert.InDelta(t, 60, cb.Height, 1e-9)
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	assert.True(t, outer.ContainsRect(Rect{X: 10, Y: 10, Width: 20, Height: 20}))
	assert.True(t, outer.ContainsRect(outer))
	assert.False(t, outer.ContainsRect(Rect{X: 90, Y: 10, Width: 20, Height: 20}))
}

func TestHitTestFill(t *testing.T) {
	hollow := document.Element{Type: document.TypeRectangle, Width: 100, Height: 100, FillStyle: "transparent"}
	filled := hollow
	filled.FillStyle = "#ff0000"

	assert.False(t, HitTest(&hollow, pt(50, 50), 5))
	assert.True(t, HitTest(&filled, pt(50, 50), 5))
	assert.True(t, HitTest(&hollow, pt(0, 50), 5))
}

func TestResizeElement(t *testing.T) {
	target := Rect{X: 100, Y: 100, Width: 200, Height: 100}

	t.Run("rectangle", func(t *testing.T) {
		e := document.Element{Type: document.TypeRectangle, X: 0, Y: 0, Width: 10, Height: 10}
		out := ResizeElement(e, target)
		assert.Equal(t, Rect{X: 100, Y: 100, Width: 200, Height: 100}, Rect{X: out.X, Y: out.Y, Width: out.Width, Height: out.Height})
	})

	t.Run("circle", func(t *testing.T) {
		e := document.Element{Type: document.TypeCircle, X: 0, Y: 0, RadiusX: 5, RadiusY: 5}
		out := ResizeElement(e, target)
		assert.Equal(t, 200.0, out.X)
		assert.Equal(t, 150.0, out.Y)
		assert.Equal(t, 100.0, out.RadiusX)
		assert.Equal(t, 50.0, out.RadiusY)
	})

	t.Run("line scales endpoints", func(t *testing.T) {
		e := document.Element{Type: document.TypeLine, X: 10, Y: 20, EndX: 0, EndY: 0}
		out := ResizeElement(e, target)
		assert.InDelta(t, 300, out.X, 1e-9)
		assert.InDelta(t, 200, out.Y, 1e-9)
		assert.InDelta(t, 100, out.EndX, 1e-9)
		assert.InDelta(t, 100, out.EndY, 1e-9)
	})

	t.Run("horizontal line keeps height scale", func(t *testing.T) {
		e := document.Element{Type: document.TypeArrow, X: 0, Y: 5, EndX: 10, EndY: 5}
		out := ResizeElement(e, Rect{X: 0, Y: 5, Width: 20, Height: 0})
		assert.InDelta(t, 20, out.EndX, 1e-9)
		assert.InDelta(t, 5, out.EndY, 1e-9)
	})

	t.Run("path scales and keeps relative points", func(t *testing.T) {
		e := document.Element{Type: document.TypeDraw, X: 0, Y: 0, Points: []Point{pt(0, 0), pt(10, 10)}}
		out := ResizeElement(e, target)
		b := Bounds(&out)
		assert.InDelta(t, 100, b.X, 1e-9)
		assert.InDelta(t, 200, b.Width, 1e-9)
		assert.InDelta(t, 100, b.Height, 1e-9)
		assert.Equal(t, pt(0, 0), out.Points[0])
		assert.Equal(t, pt(10, 10), e.Points[1], "input must not change")
	})

	t.Run("data structures only move", func(t *testing.T) {
		e := document.Element{Type: document.TypeArray, X: 0, Y: 0, Values: []string{"1", "2"}}
		out := ResizeElement(e, target)
		assert.Equal(t, 100.0, out.X)
		assert.Equal(t, 100.0, out.Y)
		b := Bounds(&out)
		assert.Equal(t, 120.0, b.Width)
	})

	t.Run("tree moves by its box", func(t *testing.T) {
		e := document.Element{Type: document.TypeBinaryTree, X: 0, Y: 0, Root: tree.BuildFromValues([]string{"1", "2", "3"})}
		out := ResizeElement(e, target)
		b := Bounds(&out)
		assert.InDelta(t, 100, b.X, 1e-9)
		assert.InDelta(t, 100, b.Y, 1e-9)
	})
}

func TestTranslate(t *testing.T) {
	e := document.Element{Type: document.TypeLine, X: 1, Y: 1, EndX: 2, EndY: 2}
	out := Translate(e, 10, -1)
	assert.Equal(t, 11.0, out.X)
	assert.Equal(t, 0.0, out.Y)
	assert.Equal(t, 12.0, out.EndX)
	assert.Equal(t, 1.0, out.EndY)
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(10, 5).Multiply(Scale(2, 2)).Multiply(Rotate(0.3))
	p := pt(3, -7)
	back := m.Invert().TransformPoint(m.TransformPoint(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}
