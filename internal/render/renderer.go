// Package render draws the scene held by a store onto a Surface. Nothing is
// retained between frames: every frame is recomputed from live store state.
package render

import (
	"errors"
	"math"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/geometry"
	"github.com/structboard/structboard/internal/store"
	"github.com/structboard/structboard/internal/tree"
)

// ErrNoSurface is returned when a Renderer is created without a surface.
var ErrNoSurface = errors.New("render: no drawing surface")

const (
	BackgroundColor = "#ffffff"
	GridColor       = "#e5e7eb"
	SelectionColor  = "#3b82f6"
	MarqueeFill     = "#3b82f61a"
	StructureColor  = "#1f2937"
	NodeFill        = "#ffffff"

	// GridSize is the world distance between grid lines at scale 1.
	GridSize = 20.0
	// Grid lines closer than this on screen are thinned out.
	minGridStep = 8.0

	StructureFontSize = 16.0
	arrowHeadLength   = 10.0
	listArrowHead     = 8.0
)

// Renderer redraws the scene on every store commit once attached.
type Renderer struct {
	store       *store.Store
	surface     Surface
	unsubscribe func()
}

// New creates a renderer for s drawing onto surface.
func New(s *store.Store, surface Surface) (*Renderer, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &Renderer{store: s, surface: surface}, nil
}

// Attach subscribes the renderer to store commits and draws one frame.
func (r *Renderer) Attach() {
	if r.unsubscribe != nil {
		return
	}
	r.unsubscribe = r.store.Subscribe(r.Frame)
	r.Frame()
}

// Detach stops redrawing on commits.
func (r *Renderer) Detach() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

// Surface returns the surface the renderer draws on.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Frame draws the grid, committed elements, preview, text draft and
// selection overlay, in that order.
func (r *Renderer) Frame() {
	s := r.surface
	v := r.store.View()

	s.ResetTransform()
	s.Clear(BackgroundColor)
	r.drawGrid(v)

	s.Save()
	s.Translate(v.OffsetX, v.OffsetY)
	s.Scale(v.Scale, v.Scale)

	for _, el := range r.store.Elements() {
		r.drawElement(&el)
	}
	if p := r.store.Preview(); p != nil {
		r.drawElement(p)
	}
	if d := r.store.TextDraft(); d != nil {
		r.drawTextDraft(d, v.Scale)
	}
	r.drawOverlay(v.Scale)

	s.Restore()
}

func (r *Renderer) drawGrid(v document.ViewState) {
	s := r.surface
	w, h := s.Size()
	step := GridSize * v.Scale
	for step < minGridStep {
		step *= 2
	}

	s.SetStrokeColor(GridColor)
	s.SetLineWidth(1)
	s.SetDash()
	s.BeginPath()
	for x := gridStart(v.OffsetX, step); x <= w; x += step {
		s.MoveTo(x, 0)
		s.LineTo(x, h)
	}
	for y := gridStart(v.OffsetY, step); y <= h; y += step {
		s.MoveTo(0, y)
		s.LineTo(w, y)
	}
	s.Stroke()
}

func gridStart(offset, step float64) float64 {
	start := math.Mod(offset, step)
	if start < 0 {
		start += step
	}
	return start
}

func dashPattern(p document.StrokePattern) []float64 {
	switch p {
	case document.StrokeDashed:
		return []float64{10, 5}
	case document.StrokeDotted:
		return []float64{2, 4}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (r *Renderer) applyStroke(el *document.Element) {
	s := r.surface
	s.SetStrokeColor(orDefault(el.StrokeStyle, "#000000"))
	w := el.LineWidth
	if w <= 0 {
		w = 1
	}
	s.SetLineWidth(w)
	s.SetLineCap(orDefault(el.LineCap, "butt"))
	s.SetLineJoin(orDefault(el.LineJoin, "miter"))
	s.SetDash(dashPattern(el.StrokePattern)...)
}

func (r *Renderer) drawElement(el *document.Element) {
	s := r.surface
	s.Save()
	defer s.Restore()

	if el.Rotate != 0 {
		c := geometry.Bounds(el).Center()
		s.Translate(c.X, c.Y)
		s.Rotate(geometry.Radians(el.Rotate))
		s.Translate(-c.X, -c.Y)
	}

	switch el.Type {
	case document.TypeRectangle:
		r.applyStroke(el)
		s.BeginPath()
		s.Rect(el.X, el.Y, el.Width, el.Height)
		r.fillAndStroke(el)

	case document.TypeCircle:
		r.applyStroke(el)
		s.BeginPath()
		s.Ellipse(el.X, el.Y, math.Abs(el.RadiusX), math.Abs(el.RadiusY))
		r.fillAndStroke(el)

	case document.TypeLine:
		r.applyStroke(el)
		s.BeginPath()
		s.MoveTo(el.X, el.Y)
		s.LineTo(el.EndX, el.EndY)
		s.Stroke()

	case document.TypeArrow:
		r.applyStroke(el)
		s.BeginPath()
		s.MoveTo(el.X, el.Y)
		s.LineTo(el.EndX, el.EndY)
		s.Stroke()
		s.SetDash()
		s.SetFillColor(orDefault(el.StrokeStyle, "#000000"))
		r.arrowHead(el.X, el.Y, el.EndX, el.EndY, arrowHeadLength+el.LineWidth)

	case document.TypeDraw:
		if len(el.Points) == 0 {
			return
		}
		r.applyStroke(el)
		s.BeginPath()
		s.MoveTo(el.X+el.Points[0].X, el.Y+el.Points[0].Y)
		for _, p := range el.Points[1:] {
			s.LineTo(el.X+p.X, el.Y+p.Y)
		}
		s.Stroke()

	case document.TypeText:
		s.SetFont(el.FontSize, el.FontFamily)
		s.SetFillColor(orDefault(el.Color, "#000000"))
		s.FillText(el.Text, el.X, el.Y)

	case document.TypeArray:
		r.drawArray(el)

	case document.TypeLinkedList:
		r.drawLinkedList(el)

	case document.TypeBinaryTree:
		r.drawTree(el)
	}
}

func (r *Renderer) fillAndStroke(el *document.Element) {
	if document.IsFilled(el.FillStyle) {
		r.surface.SetFillColor(el.FillStyle)
		r.surface.Fill()
	}
	r.surface.Stroke()
}

// arrowHead fills a triangle pointing at (x2, y2) along the segment from
// (x1, y1).
func (r *Renderer) arrowHead(x1, y1, x2, y2, length float64) {
	s := r.surface
	angle := math.Atan2(y2-y1, x2-x1)
	s.BeginPath()
	s.MoveTo(x2, y2)
	s.LineTo(x2-length*math.Cos(angle-math.Pi/6), y2-length*math.Sin(angle-math.Pi/6))
	s.LineTo(x2-length*math.Cos(angle+math.Pi/6), y2-length*math.Sin(angle+math.Pi/6))
	s.ClosePath()
	s.Fill()
}

func (r *Renderer) structureStyle() {
	s := r.surface
	s.SetStrokeColor(StructureColor)
	s.SetLineWidth(2)
	s.SetLineCap("butt")
	s.SetLineJoin("miter")
	s.SetDash()
	s.SetFont(StructureFontSize, "sans-serif")
}

// label draws text centered on (cx, cy).
func (r *Renderer) label(text string, cx, cy float64) {
	s := r.surface
	s.SetFillColor(StructureColor)
	w := s.MeasureText(text)
	s.FillText(text, cx-w/2, cy-StructureFontSize/2)
}

func (r *Renderer) box(x, y, w, h float64) {
	s := r.surface
	s.BeginPath()
	s.Rect(x, y, w, h)
	s.SetFillColor(NodeFill)
	s.Fill()
	s.Stroke()
}

func (r *Renderer) drawArray(el *document.Element) {
	r.structureStyle()
	for i, v := range el.Values {
		x := el.X + float64(i)*geometry.ArrayCellWidth
		r.box(x, el.Y, geometry.ArrayCellWidth, geometry.ArrayCellHeight)
		r.label(v, x+geometry.ArrayCellWidth/2, el.Y+geometry.ArrayCellHeight/2)
	}
}

func (r *Renderer) drawLinkedList(el *document.Element) {
	s := r.surface
	r.structureStyle()
	cy := el.Y + geometry.ListNodeHeight/2
	for i, v := range el.Values {
		x := geometry.ListNodeX(el.X, i)
		r.box(x, el.Y, geometry.ListNodeWidth, geometry.ListNodeHeight)
		r.label(v, x+geometry.ListNodeWidth/2, cy)

		if i == len(el.Values)-1 {
			continue
		}
		from := x + geometry.ListNodeWidth
		to := from + geometry.ListNodeGap
		s.BeginPath()
		s.MoveTo(from, cy)
		s.LineTo(to, cy)
		s.Stroke()
		s.SetFillColor(StructureColor)
		r.arrowHead(from, cy, to, cy, listArrowHead)
	}
}

func (r *Renderer) drawTree(el *document.Element) {
	s := r.surface
	r.structureStyle()
	rad := geometry.TreeNodeRadius

	// Edges first so that nodes paint over their ends.
	s.BeginPath()
	geometry.WalkTree(el.Root, el.X, el.Y, func(pn geometry.PlacedNode) {
		for _, side := range []tree.Side{tree.SideLeft, tree.SideRight} {
			child := pn.Node.Left
			if side == tree.SideRight {
				child = pn.Node.Right
			}
			if child == nil {
				continue
			}
			cx, cy := geometry.ChildPosition(pn.X, pn.Y, pn.Offset, side)
			s.MoveTo(pn.X, pn.Y+rad)
			s.LineTo(cx, cy-rad)
		}
	})
	s.Stroke()

	geometry.WalkTree(el.Root, el.X, el.Y, func(pn geometry.PlacedNode) {
		s.BeginPath()
		s.Ellipse(pn.X, pn.Y, rad, rad)
		s.SetFillColor(NodeFill)
		s.Fill()
		s.Stroke()
		r.label(pn.Node.Value, pn.X, pn.Y)
	})
}

func (r *Renderer) drawTextDraft(d *store.TextDraft, scale float64) {
	s := r.surface
	size := d.FontSize
	if size <= 0 {
		size = document.DefaultStyle().FontSize
	}
	s.SetFont(size, orDefault(d.FontFamily, "sans-serif"))
	s.SetFillColor(orDefault(d.Color, "#000000"))
	s.FillText(d.Text, d.X, d.Y)

	caret := d.X + s.MeasureText(d.Text) + 1/scale
	s.SetStrokeColor(orDefault(d.Color, "#000000"))
	s.SetLineWidth(1 / scale)
	s.SetDash()
	s.BeginPath()
	s.MoveTo(caret, d.Y)
	s.LineTo(caret, d.Y+size*geometry.TextHeightFactor)
	s.Stroke()
}

func (r *Renderer) drawOverlay(scale float64) {
	s := r.surface
	s.SetStrokeColor(SelectionColor)
	s.SetLineWidth(1 / scale)
	s.SetLineCap("butt")
	s.SetLineJoin("miter")

	if start, end, active := r.store.Area(); active {
		a := geometry.RectFromPoints(start, end)
		s.SetDash()
		s.BeginPath()
		s.Rect(a.X, a.Y, a.Width, a.Height)
		s.SetFillColor(MarqueeFill)
		s.Fill()
		s.Stroke()
	}

	if ids := r.store.SelectedIDs(); len(ids) > 1 {
		s.SetDash(5/scale, 3/scale)
		for _, id := range ids {
			el, ok := r.store.Element(id)
			if !ok {
				continue
			}
			b := geometry.Bounds(&el)
			s.BeginPath()
			s.Rect(b.X, b.Y, b.Width, b.Height)
			s.Stroke()
		}
		return
	}

	el, ok := r.store.Element(r.store.SelectedID())
	if !ok {
		return
	}
	b := geometry.Bounds(&el)
	s.SetDash()
	s.BeginPath()
	s.Rect(b.X, b.Y, b.Width, b.Height)
	s.Stroke()

	if !el.Type.Resizable() {
		return
	}
	half := geometry.HandleSize / scale
	s.SetFillColor(NodeFill)
	for _, c := range b.Corners() {
		s.BeginPath()
		s.Rect(c.X-half, c.Y-half, 2*half, 2*half)
		s.Fill()
		s.Stroke()
	}
}
