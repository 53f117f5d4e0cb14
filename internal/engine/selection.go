package engine

import (
	"math"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/geometry"
)

type dragState struct {
	ids   []string
	last  document.Point
	moved bool
}

type resizeState struct {
	original document.Element
	anchor   document.Point
	moved    bool
}

// HitTest returns the id of the topmost element under screen point p, or "".
func (e *Engine) HitTest(p document.Point) string {
	return e.hitAt(e.ScreenToWorld(p))
}

func (e *Engine) hitAt(w document.Point) string {
	tol := e.HitTolerance()
	els := e.store.Elements()
	for i := len(els) - 1; i >= 0; i-- {
		if geometry.HitTest(&els[i], w, tol) {
			return els[i].ID
		}
	}
	return ""
}

// SelectAt selects the topmost element under screen point p, or clears
// the selection when there is none. It returns the selected id.
func (e *Engine) SelectAt(p document.Point) string {
	id := e.HitTest(p)
	if id == "" {
		e.store.ClearSelection()
	} else {
		e.store.Select(id)
	}
	e.store.Commit()
	return id
}

// SelectOrStartArea selects the element under p or, on empty canvas,
// clears the selection and opens a marquee there.
func (e *Engine) SelectOrStartArea(p document.Point) string {
	if id := e.HitTest(p); id != "" {
		e.store.Select(id)
		e.store.Commit()
		return id
	}
	e.store.ClearSelection()
	e.store.StartArea(e.ScreenToWorld(p))
	e.store.Commit()
	return ""
}

// UpdateAreaSelection moves the marquee end to screen point p.
func (e *Engine) UpdateAreaSelection(p document.Point) {
	if _, _, active := e.store.Area(); !active {
		return
	}
	e.store.SetAreaEnd(e.ScreenToWorld(p))
	e.store.Commit()
}

// FinishAreaSelection selects every element whose bounds lie entirely
// inside the marquee and closes it. It returns the selected ids.
func (e *Engine) FinishAreaSelection() []string {
	start, end, active := e.store.Area()
	if !active {
		return nil
	}
	area := geometry.RectFromPoints(start, end)
	var ids []string
	for _, el := range e.store.Elements() {
		if area.ContainsRect(geometry.Bounds(&el)) {
			ids = append(ids, el.ID)
		}
	}
	e.store.EndArea()
	e.store.SelectMany(ids)
	e.store.Commit()
	return ids
}

// SelectionBounds returns the union of the bounds of the selected
// elements and whether anything is selected.
func (e *Engine) SelectionBounds() (geometry.Rect, bool) {
	var out geometry.Rect
	found := false
	for _, id := range e.selectedIDs() {
		el, ok := e.store.Element(id)
		if !ok {
			continue
		}
		b := geometry.Bounds(&el)
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}

// --- Drag ---

// startDrag begins moving the selected elements from screen point p.
func (e *Engine) startDrag(p document.Point) {
	e.drag = &dragState{ids: e.selectedIDs(), last: e.ScreenToWorld(p)}
}

func (e *Engine) dragTo(p document.Point) {
	w := e.ScreenToWorld(p)
	dx, dy := w.X-e.drag.last.X, w.Y-e.drag.last.Y
	if dx == 0 && dy == 0 {
		return
	}
	if !e.drag.moved {
		e.store.SaveToHistory()
		e.drag.moved = true
	}
	for _, id := range e.drag.ids {
		el, ok := e.store.Element(id)
		if !ok {
			continue
		}
		e.store.Replace(geometry.Translate(el, dx, dy))
	}
	e.drag.last = w
	e.store.Commit()
}

// IsDragging reports whether a move gesture is active.
func (e *Engine) IsDragging() bool {
	return e.drag != nil
}

// --- Resize ---

// HandleAt returns the index of the selection corner handle under screen
// point p, clockwise from the top-left, or -1.
func (e *Engine) HandleAt(p document.Point) int {
	id := e.store.SelectedID()
	if id == "" || len(e.store.SelectedIDs()) > 1 {
		return -1
	}
	el, ok := e.store.Element(id)
	if !ok || !el.Type.Resizable() {
		return -1
	}
	for i, c := range geometry.Bounds(&el).Corners() {
		s := e.WorldToScreen(c)
		if math.Abs(s.X-p.X) <= geometry.HandleSize && math.Abs(s.Y-p.Y) <= geometry.HandleSize {
			return i
		}
	}
	return -1
}

// startResize begins dragging corner handle of the single selection. The
// opposite corner stays fixed.
func (e *Engine) startResize(handle int) {
	el, ok := e.store.Element(e.store.SelectedID())
	if !ok {
		return
	}
	corners := geometry.Bounds(&el).Corners()
	e.resize = &resizeState{original: el.Clone(), anchor: corners[(handle+2)%4]}
}

func (e *Engine) resizeTo(p document.Point) {
	w := e.ScreenToWorld(p)
	if !e.resize.moved {
		e.store.SaveToHistory()
		e.resize.moved = true
	}
	bounds := geometry.RectFromPoints(e.resize.anchor, w)
	e.store.Replace(geometry.ResizeElement(e.resize.original, bounds))
	e.store.Commit()
}

// IsResizing reports whether a resize gesture is active.
func (e *Engine) IsResizing() bool {
	return e.resize != nil
}
