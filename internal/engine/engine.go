// Package engine turns pointer and tool input into scene mutations. It owns
// no scene state of its own beyond the gesture in progress; everything the
// renderer needs lives in the store.
package engine

import (
	"log/slog"

	"github.com/structboard/structboard/internal/document"
	"github.com/structboard/structboard/internal/store"
)

const (
	// DefaultHitTolerance is the hit distance in screen pixels.
	DefaultHitTolerance = 5.0

	// ZoomStep is the relative scale change of one wheel notch.
	ZoomStep = 0.1

	// InsertTop is the screen distance from the top edge at which new
	// data structures are placed.
	InsertTop = 100.0
)

// Engine is the interaction state machine. It is driven by one goroutine.
type Engine struct {
	store *store.Store

	tool      document.Tool
	styles    document.StyleDefaults
	tolerance float64

	viewportW float64
	viewportH float64

	// Gesture state
	panning bool
	lastPan document.Point
	drag    *dragState
	resize  *resizeState
}

type Option func(*Engine)

// WithHitTolerance sets the screen-space hit tolerance.
func WithHitTolerance(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.tolerance = px
		}
	}
}

// WithViewport sets the size of the drawing surface in screen pixels.
func WithViewport(w, h float64) Option {
	return func(e *Engine) {
		e.viewportW, e.viewportH = w, h
	}
}

// WithStyles sets the per-tool style defaults used when PointerDown is
// called without any.
func WithStyles(styles document.StyleDefaults) Option {
	return func(e *Engine) {
		e.styles = styles
	}
}

// New creates an engine driving s. The initial tool is selection.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:     s,
		tool:      document.ToolSelection,
		styles:    document.StyleDefaults{},
		tolerance: DefaultHitTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the store the engine drives.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Tool returns the active tool.
func (e *Engine) Tool() document.Tool {
	return e.tool
}

// ChangeTool switches the active tool. Any preview, text draft, marquee
// or gesture in progress is dropped without being committed.
func (e *Engine) ChangeTool(t document.Tool) {
	if !t.Valid() {
		slog.Debug("ignoring unknown tool", "tool", t)
		return
	}
	e.tool = t
	e.cancelGestures()
	e.store.Commit()
}

func (e *Engine) cancelGestures() {
	e.store.ClearPreview()
	e.store.ClearTextDraft()
	e.store.EndArea()
	e.panning = false
	e.drag = nil
	e.resize = nil
}

// SetStyles replaces the per-tool style defaults.
func (e *Engine) SetStyles(styles document.StyleDefaults) {
	if styles == nil {
		styles = document.StyleDefaults{}
	}
	e.styles = styles
}

// --- View ---

// SetViewport records the surface size used for centering and ResetZoom.
func (e *Engine) SetViewport(w, h float64) {
	e.viewportW, e.viewportH = w, h
}

// Viewport returns the surface size in screen pixels.
func (e *Engine) Viewport() (float64, float64) {
	return e.viewportW, e.viewportH
}

// GetView returns the current view transform.
func (e *Engine) GetView() document.ViewState {
	return e.store.View()
}

// OnViewChange calls fn with the new view after every commit that changed
// it. The returned function unsubscribes.
func (e *Engine) OnViewChange(fn func(document.ViewState)) func() {
	last := e.store.View()
	return e.store.Subscribe(func() {
		v := e.store.View()
		if v != last {
			last = v
			fn(v)
		}
	})
}

func (e *Engine) ScreenToWorld(p document.Point) document.Point {
	return e.store.View().ScreenToWorld(p)
}

func (e *Engine) WorldToScreen(p document.Point) document.Point {
	return e.store.View().WorldToScreen(p)
}

// HitTolerance returns the world-space hit tolerance at the current scale,
// so that the on-screen tolerance stays constant while zooming.
func (e *Engine) HitTolerance() float64 {
	return e.tolerance / e.store.View().Scale
}

// StartPan begins panning at screen point p.
func (e *Engine) StartPan(p document.Point) {
	e.panning = true
	e.lastPan = p
}

// PanTo moves the view by the pointer delta since the last call.
func (e *Engine) PanTo(p document.Point) {
	if !e.panning {
		return
	}
	v := e.store.View()
	v.OffsetX += p.X - e.lastPan.X
	v.OffsetY += p.Y - e.lastPan.Y
	e.lastPan = p
	e.store.SetView(v)
	e.store.Commit()
}

func (e *Engine) EndPan() {
	e.panning = false
}

// IsPanning reports whether a pan gesture is active.
func (e *Engine) IsPanning() bool {
	return e.panning
}

// ZoomAt rescales the view by one step around the screen point (sx, sy).
// A positive direction zooms out. The world point under (sx, sy) stays
// under it.
func (e *Engine) ZoomAt(sx, sy, direction float64) {
	v := e.store.View()
	anchor := v.ScreenToWorld(document.Point{X: sx, Y: sy})
	scale := document.ClampScale(v.Scale * (1 - direction*ZoomStep))
	e.store.SetView(document.ViewState{
		Scale:   scale,
		OffsetX: sx - anchor.X*scale,
		OffsetY: sy - anchor.Y*scale,
	})
	e.store.Commit()
}

// ResetZoom restores scale 1 keeping the world point at the viewport
// center in place.
func (e *Engine) ResetZoom() {
	v := e.store.View()
	cx, cy := e.viewportW/2, e.viewportH/2
	center := v.ScreenToWorld(document.Point{X: cx, Y: cy})
	e.store.SetView(document.ViewState{
		Scale:   1,
		OffsetX: cx - center.X,
		OffsetY: cy - center.Y,
	})
	e.store.Commit()
}

// --- Element mutation ---

// AddElement commits el as an undoable edit. An empty id is generated.
// It returns the element id.
func (e *Engine) AddElement(el document.Element) string {
	if el.ID == "" {
		el.ID = document.NewElementID(el.Type)
	}
	e.store.SaveToHistory()
	e.store.Add(el.Clone())
	e.store.Commit()
	return el.ID
}

// UpdateElement merges p into the element with the given id. Unknown ids
// are ignored. Updates are not recorded in history.
func (e *Engine) UpdateElement(id string, p document.Patch) {
	if !e.store.Update(id, p) {
		slog.Debug("update of unknown element", "id", id)
		return
	}
	e.store.Commit()
}

// RemoveElement deletes the element with the given id.
func (e *Engine) RemoveElement(id string) {
	if _, ok := e.store.Element(id); !ok {
		slog.Debug("remove of unknown element", "id", id)
		return
	}
	e.store.SaveToHistory()
	e.store.Remove(id)
	e.store.Commit()
}

// DeleteSelected removes the single or multi selection.
func (e *Engine) DeleteSelected() {
	ids := e.selectedIDs()
	if len(ids) == 0 {
		return
	}
	e.store.SaveToHistory()
	for _, id := range ids {
		e.store.Remove(id)
	}
	e.store.ClearSelection()
	e.store.Commit()
}

// Clear removes every element.
func (e *Engine) Clear() {
	if e.store.Len() > 0 {
		e.store.SaveToHistory()
	}
	e.cancelGestures()
	e.store.Clear()
	e.store.Commit()
}

// Undo reverts the last recorded edit. A gesture in progress is dropped.
func (e *Engine) Undo() {
	e.drag = nil
	e.resize = nil
	e.store.Undo()
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() {
	e.drag = nil
	e.resize = nil
	e.store.Redo()
}

func (e *Engine) CanUndo() bool { return e.store.CanUndo() }
func (e *Engine) CanRedo() bool { return e.store.CanRedo() }

// LoadElements replaces the scene with els without recording history.
func (e *Engine) LoadElements(els []document.Element) {
	e.cancelGestures()
	e.store.Clear()
	for _, el := range els {
		e.store.Add(el.Clone())
	}
	e.store.Commit()
}

// selectedIDs returns the multi-selection, or the single selection.
func (e *Engine) selectedIDs() []string {
	if ids := e.store.SelectedIDs(); len(ids) > 0 {
		return ids
	}
	if id := e.store.SelectedID(); id != "" {
		return []string{id}
	}
	return nil
}
