package engine

import "github.com/structboard/structboard/internal/document"

// PointerDown routes a press at screen point p to the active tool. A nil
// styles falls back to the engine's defaults.
func (e *Engine) PointerDown(p document.Point, styles document.StyleDefaults) {
	if styles == nil {
		styles = e.styles
	}
	switch e.tool {
	case document.ToolMove:
		e.StartPan(p)

	case document.ToolSelection:
		if h := e.HandleAt(p); h >= 0 {
			e.startResize(h)
			return
		}
		id := e.HitTest(p)
		if id == "" {
			e.SelectOrStartArea(p)
			return
		}
		if !e.store.IsSelected(id) {
			e.store.Select(id)
			e.store.Commit()
		}
		e.startDrag(p)

	case document.ToolText:
		e.StartText(p, styles.For(e.tool))

	default:
		e.StartShape(e.tool, p, styles.For(e.tool))
	}
}

// PointerMove advances whichever gesture is in progress.
func (e *Engine) PointerMove(p document.Point) {
	switch {
	case e.panning:
		e.PanTo(p)
	case e.resize != nil:
		e.resizeTo(p)
	case e.drag != nil:
		e.dragTo(p)
	case e.store.Preview() != nil:
		e.UpdateShape(p)
	default:
		e.UpdateAreaSelection(p)
	}
}

// PointerUp finishes whichever gesture is in progress.
func (e *Engine) PointerUp() {
	switch {
	case e.panning:
		e.EndPan()
	case e.resize != nil:
		e.resize = nil
	case e.drag != nil:
		e.drag = nil
	case e.store.Preview() != nil:
		e.FinishShape()
	default:
		e.FinishAreaSelection()
	}
}

// PointerLeave finishes gestures the same way PointerUp does so that no
// drawing state is left behind when the pointer exits the surface.
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

// Wheel zooms around screen point p. Positive deltaY zooms out.
func (e *Engine) Wheel(p document.Point, deltaY float64) {
	switch {
	case deltaY > 0:
		e.ZoomAt(p.X, p.Y, 1)
	case deltaY < 0:
		e.ZoomAt(p.X, p.Y, -1)
	}
}
