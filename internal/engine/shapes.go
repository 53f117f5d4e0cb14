package engine

import (
	"log/slog"
	"math"
	"strings"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/store"
)

// StartShape opens a preview of the shape drawn by tool at screen point p.
// Tools that do not draw shapes are ignored.
func (e *Engine) StartShape(tool document.Tool, p document.Point, style document.Style) {
	typ, ok := tool.ShapeType()
	if !ok {
		return
	}
	w := e.ScreenToWorld(p)
	el := &document.Element{
		ID:            document.NewElementID(typ),
		Type:          typ,
		X:             w.X,
		Y:             w.Y,
		StrokeStyle:   style.StrokeStyle,
		LineWidth:     style.LineWidth,
		StrokePattern: style.StrokePattern,
	}
	switch typ {
	case document.TypeRectangle, document.TypeCircle:
		el.FillStyle = style.FillStyle
	case document.TypeLine, document.TypeArrow:
		el.EndX, el.EndY = w.X, w.Y
	case document.TypeDraw:
		el.LineCap = style.LineCap
		el.LineJoin = style.LineJoin
		el.Points = []document.Point{{}}
	}
	e.store.SetPreview(el, w)
	e.store.Commit()
}

// UpdateShape reshapes the preview so that it spans from its start point
// to screen point p. Freehand paths append p instead.
func (e *Engine) UpdateShape(p document.Point) {
	el := e.store.Preview()
	start, ok := e.store.PreviewStart()
	if el == nil || !ok {
		return
	}
	w := e.ScreenToWorld(p)
	switch el.Type {
	case document.TypeRectangle:
		el.Width = w.X - start.X
		el.Height = w.Y - start.Y
	case document.TypeCircle:
		el.X = (start.X + w.X) / 2
		el.Y = (start.Y + w.Y) / 2
		el.RadiusX = math.Abs(w.X-start.X) / 2
		el.RadiusY = math.Abs(w.Y-start.Y) / 2
	case document.TypeLine, document.TypeArrow:
		el.EndX, el.EndY = w.X, w.Y
	case document.TypeDraw:
		el.Points = append(el.Points, document.Point{X: w.X - el.X, Y: w.Y - el.Y})
	}
	e.store.Commit()
}

// FinishShape commits the preview as a new element. Degenerate previews
// are discarded without touching history. It returns the committed id, or
// "" when nothing was committed.
func (e *Engine) FinishShape() string {
	el := e.store.Preview()
	if el == nil {
		return ""
	}
	e.store.ClearPreview()
	if degenerate(el) {
		slog.Debug("discarding degenerate shape", "type", el.Type)
		e.store.Commit()
		return ""
	}
	out := el.Clone()
	if out.Type == document.TypeRectangle {
		normalizeRect(&out)
	}
	e.store.SaveToHistory()
	e.store.Add(out)
	e.store.Commit()
	return out.ID
}

// StartPath, UpdatePath and FinishPath drive a freehand stroke.
func (e *Engine) StartPath(p document.Point, style document.Style) {
	e.StartShape(document.ToolDraw, p, style)
}

func (e *Engine) UpdatePath(p document.Point) { e.UpdateShape(p) }

func (e *Engine) FinishPath() string { return e.FinishShape() }

func degenerate(el *document.Element) bool {
	switch el.Type {
	case document.TypeRectangle:
		return el.Width == 0 || el.Height == 0
	case document.TypeCircle:
		return el.RadiusX == 0 || el.RadiusY == 0
	case document.TypeLine, document.TypeArrow:
		return el.X == el.EndX && el.Y == el.EndY
	case document.TypeDraw:
		return len(el.Points) < 2
	case document.TypeText:
		return strings.TrimSpace(el.Text) == ""
	}
	return false
}

func normalizeRect(el *document.Element) {
	if el.Width < 0 {
		el.X += el.Width
		el.Width = -el.Width
	}
	if el.Height < 0 {
		el.Y += el.Height
		el.Height = -el.Height
	}
}

// --- Text ---

// StartText opens an empty text draft at screen point p. An open draft is
// committed first.
func (e *Engine) StartText(p document.Point, style document.Style) {
	if e.store.TextDraft() != nil {
		e.CommitTextDraft()
	}
	w := e.ScreenToWorld(p)
	e.store.SetTextDraft(&store.TextDraft{
		X:          w.X,
		Y:          w.Y,
		FontSize:   style.FontSize,
		FontFamily: style.FontFamily,
		Color:      style.Color,
	})
	e.store.Commit()
}

// UpdateTextDraft replaces the draft content.
func (e *Engine) UpdateTextDraft(text string) {
	d := e.store.TextDraft()
	if d == nil {
		return
	}
	d.Text = text
	e.store.Commit()
}

// CommitTextDraft turns the draft into a text element unless it is blank.
// It returns the committed id, or "".
func (e *Engine) CommitTextDraft() string {
	d := e.store.TextDraft()
	if d == nil {
		return ""
	}
	e.store.ClearTextDraft()
	el := document.Element{
		ID:         document.NewElementID(document.TypeText),
		Type:       document.TypeText,
		X:          d.X,
		Y:          d.Y,
		Text:       d.Text,
		FontSize:   d.FontSize,
		FontFamily: d.FontFamily,
		Color:      d.Color,
	}
	if degenerate(&el) {
		e.store.Commit()
		return ""
	}
	e.store.SaveToHistory()
	e.store.Add(el)
	e.store.Commit()
	return el.ID
}

// CancelTextDraft drops the draft.
func (e *Engine) CancelTextDraft() {
	if e.store.TextDraft() == nil {
		return
	}
	e.store.ClearTextDraft()
	e.store.Commit()
}
