package geometry

import (
	"math"

	"github.com/structboard/structboard/internal/document"
)

// Bounds returns the world-space bounding box of e.
func Bounds(e *document.Element) Rect {
	switch e.Type {
	case document.TypeRectangle:
		r := Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}.Normalize()
		if e.Rotate == 0 {
			return r
		}
		c := r.Center()
		return RotateAbout(e.Rotate, c.X, c.Y).TransformRect(r)

	case document.TypeCircle:
		rx, ry := abs(e.RadiusX), abs(e.RadiusY)
		rad := Radians(e.Rotate)
		cos, sin := math.Cos(rad), math.Sin(rad)
		hw := math.Sqrt(rx*rx*cos*cos + ry*ry*sin*sin)
		hh := math.Sqrt(rx*rx*sin*sin + ry*ry*cos*cos)
		return Rect{X: e.X - hw, Y: e.Y - hh, Width: 2 * hw, Height: 2 * hh}

	case document.TypeLine, document.TypeArrow:
		return RectFromPoints(Point{X: e.X, Y: e.Y}, Point{X: e.EndX, Y: e.EndY})

	case document.TypeDraw:
		return pathBounds(absolutePoints(e))

	case document.TypeText:
		w, h := TextSize(e.Text, e.FontSize)
		return Rect{X: e.X, Y: e.Y, Width: w, Height: h}

	case document.TypeArray:
		return ArrayBounds(e.X, e.Y, len(e.Values))

	case document.TypeLinkedList:
		return LinkedListBounds(e.X, e.Y, len(e.Values))

	case document.TypeBinaryTree:
		return TreeBounds(e.Root, e.X, e.Y)
	}
	return Rect{X: e.X, Y: e.Y}
}

func absolutePoints(e *document.Element) []Point {
	pts := make([]Point, len(e.Points))
	for i, p := range e.Points {
		pts[i] = Point{X: e.X + p.X, Y: e.Y + p.Y}
	}
	return pts
}

func pathBounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// HitTest reports whether p (world space) hits e. Outlines are hit within
// tolerance; filled rectangles and circles are also hit anywhere inside.
func HitTest(e *document.Element, p Point, tolerance float64) bool {
	switch e.Type {
	case document.TypeRectangle:
		r := Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
		if document.IsFilled(e.FillStyle) && IsPointInRectangle(p, r, e.Rotate) {
			return true
		}
		return IsPointNearRectangle(p, r, e.Rotate, tolerance)

	case document.TypeCircle:
		c := Point{X: e.X, Y: e.Y}
		if document.IsFilled(e.FillStyle) && IsPointInEllipse(p, c, e.RadiusX, e.RadiusY, e.Rotate) {
			return true
		}
		return IsPointNearEllipse(p, c, e.RadiusX, e.RadiusY, e.Rotate, tolerance)

	case document.TypeLine, document.TypeArrow:
		return DistancePointToSegment(p, Point{X: e.X, Y: e.Y}, Point{X: e.EndX, Y: e.EndY}) <= tolerance

	case document.TypeDraw:
		return IsPointNearPath(p, absolutePoints(e), tolerance)

	case document.TypeText:
		w, h := TextSize(e.Text, e.FontSize)
		r := Rect{X: e.X - tolerance, Y: e.Y - tolerance, Width: w + 2*tolerance, Height: h + 2*tolerance}
		return r.Contains(p)

	case document.TypeArray:
		return IsPointInArray(p, e.X, e.Y, len(e.Values), tolerance)

	case document.TypeLinkedList:
		return IsPointInLinkedList(p, e.X, e.Y, len(e.Values), tolerance)

	case document.TypeBinaryTree:
		return IsPointInTree(p, e.Root, e.X, e.Y, tolerance)
	}
	return false
}

// Translate returns a copy of e moved by (dx, dy).
func Translate(e document.Element, dx, dy float64) document.Element {
	out := e.Clone()
	out.X += dx
	out.Y += dy
	if e.Type == document.TypeLine || e.Type == document.TypeArrow {
		out.EndX += dx
		out.EndY += dy
	}
	return out
}

// ResizeElement remaps e into bounds. Rectangles and circles take the box
// directly; lines, arrows and paths scale every point relative to the
// origin of their current box. Text and data structures only move to the
// new origin since their size follows from their content.
func ResizeElement(e document.Element, bounds Rect) document.Element {
	bounds = bounds.Normalize()
	old := Bounds(&e)

	switch e.Type {
	case document.TypeRectangle:
		out := e.Clone()
		out.X, out.Y = bounds.X, bounds.Y
		out.Width, out.Height = bounds.Width, bounds.Height
		return out

	case document.TypeCircle:
		out := e.Clone()
		c := bounds.Center()
		out.X, out.Y = c.X, c.Y
		out.RadiusX, out.RadiusY = bounds.Width/2, bounds.Height/2
		return out

	case document.TypeLine, document.TypeArrow:
		out := e.Clone()
		m := remap(old, bounds)
		start := m.TransformPoint(Point{X: e.X, Y: e.Y})
		end := m.TransformPoint(Point{X: e.EndX, Y: e.EndY})
		out.X, out.Y = start.X, start.Y
		out.EndX, out.EndY = end.X, end.Y
		return out

	case document.TypeDraw:
		out := e.Clone()
		m := remap(old, bounds)
		origin := m.TransformPoint(Point{X: e.X, Y: e.Y})
		for i, p := range absolutePoints(&e) {
			q := m.TransformPoint(p)
			out.Points[i] = Point{X: q.X - origin.X, Y: q.Y - origin.Y}
		}
		out.X, out.Y = origin.X, origin.Y
		return out
	}

	return Translate(e, bounds.X-old.X, bounds.Y-old.Y)
}

// remap maps the box from onto the box to. A zero extent keeps scale 1 on
// that axis.
func remap(from, to Rect) Matrix2D {
	sx, sy := 1.0, 1.0
	if from.Width != 0 {
		sx = to.Width / from.Width
	}
	if from.Height != 0 {
		sy = to.Height / from.Height
	}
	return Translate(to.X, to.Y).Multiply(Scale(sx, sy)).Multiply(Translate(-from.X, -from.Y))
}
