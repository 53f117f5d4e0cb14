// Package store holds the authoritative scene state: the committed
// elements, the view transform, selection, in-progress drafts and the
// undo/redo history. It is driven from a single goroutine; callers that
// share a Store across goroutines must serialize access themselves.
package store

import (
	"log/slog"
	"slices"

	"github.com/structboard/structboard/internal/document"
)

// HistoryLimit is the default number of undo snapshots kept.
const HistoryLimit = 50

// Snapshot is a deep copy of the element collection in paint order.
type Snapshot []document.Element

// TextDraft is text being typed at a world position.
type TextDraft struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Text       string  `json:"text"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	Color      string  `json:"color"`
}

type listener struct {
	id int
	fn func()
}

type Store struct {
	elements map[string]*document.Element
	order    []string

	view document.ViewState

	selectedID  string
	selectedIDs map[string]struct{}

	preview      *document.Element
	previewStart *document.Point
	textDraft    *TextDraft

	areaSelecting bool
	areaStart     document.Point
	areaEnd       document.Point

	past         []Snapshot
	future       []Snapshot
	historyLimit int

	listeners []listener
	nextID    int
}

type Option func(*Store)

// WithHistoryLimit overrides HistoryLimit. Non-positive values are ignored.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// New creates an empty store with the identity view.
func New(opts ...Option) *Store {
	s := &Store{
		elements:     make(map[string]*document.Element),
		view:         document.DefaultView(),
		selectedIDs:  make(map[string]struct{}),
		historyLimit: HistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- Notifications ---

// Subscribe registers fn to run on every Commit, after all listeners
// registered before it. The returned function removes it.
func (s *Store) Subscribe(fn func()) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// Commit synchronously notifies every subscriber.
func (s *Store) Commit() {
	for _, l := range slices.Clone(s.listeners) {
		l.fn()
	}
}

// --- Elements ---

// Elements returns copies of the committed elements in paint order.
// Slices inside the copies are shared with the store and must not be
// modified.
func (s *Store) Elements() []document.Element {
	out := make([]document.Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.elements[id])
	}
	return out
}

// Len returns the number of committed elements.
func (s *Store) Len() int {
	return len(s.order)
}

// Element returns a copy of the element with the given id.
func (s *Store) Element(id string) (document.Element, bool) {
	e, ok := s.elements[id]
	if !ok {
		return document.Element{}, false
	}
	return *e, true
}

// Add inserts e on top of the paint order. An element with the same id is
// replaced in place.
func (s *Store) Add(e document.Element) {
	if _, ok := s.elements[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.elements[e.ID] = &e
}

// Replace swaps in e for the element with the same id, keeping its paint
// position. It reports false when no such element exists.
func (s *Store) Replace(e document.Element) bool {
	if _, ok := s.elements[e.ID]; !ok {
		return false
	}
	s.elements[e.ID] = &e
	return true
}

// Update merges p into the element with the given id.
func (s *Store) Update(id string, p document.Patch) bool {
	e, ok := s.elements[id]
	if !ok {
		return false
	}
	p.Apply(e)
	return true
}

// Remove deletes the element and drops it from the selection.
func (s *Store) Remove(id string) bool {
	if _, ok := s.elements[id]; !ok {
		return false
	}
	delete(s.elements, id)
	s.order = slices.DeleteFunc(s.order, func(o string) bool { return o == id })
	if s.selectedID == id {
		s.selectedID = ""
	}
	delete(s.selectedIDs, id)
	return true
}

// Clear removes every element and the selection.
func (s *Store) Clear() {
	s.elements = make(map[string]*document.Element)
	s.order = nil
	s.ClearSelection()
}

// --- View ---

func (s *Store) View() document.ViewState {
	return s.view
}

// SetView stores v with its scale clamped.
func (s *Store) SetView(v document.ViewState) {
	s.view = v.Clamped()
}

// --- Selection ---

func (s *Store) SelectedID() string {
	return s.selectedID
}

// SelectedIDs returns the multi-selection in paint order.
func (s *Store) SelectedIDs() []string {
	var ids []string
	for _, id := range s.order {
		if _, ok := s.selectedIDs[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsSelected reports whether id is part of the single or multi selection.
func (s *Store) IsSelected(id string) bool {
	if id == "" {
		return false
	}
	_, ok := s.selectedIDs[id]
	return ok || s.selectedID == id
}

// Select makes id the single selection and clears the multi-selection.
func (s *Store) Select(id string) {
	s.selectedIDs = make(map[string]struct{})
	s.selectedID = id
}

// SelectMany replaces the multi-selection with ids and clears the single
// selection, unless exactly one id is given: then it is also the single
// selection.
func (s *Store) SelectMany(ids []string) {
	s.selectedIDs = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.selectedIDs[id] = struct{}{}
	}
	s.selectedID = ""
	if len(ids) == 1 {
		s.selectedID = ids[0]
	}
}

func (s *Store) ClearSelection() {
	s.selectedID = ""
	s.selectedIDs = make(map[string]struct{})
}

// --- Preview ---

// Preview returns the element being drawn, or nil. The engine mutates it
// in place while the pointer moves.
func (s *Store) Preview() *document.Element {
	return s.preview
}

// PreviewStart returns the world point where the preview started.
func (s *Store) PreviewStart() (document.Point, bool) {
	if s.previewStart == nil {
		return document.Point{}, false
	}
	return *s.previewStart, true
}

func (s *Store) SetPreview(e *document.Element, start document.Point) {
	s.preview = e
	s.previewStart = &start
}

func (s *Store) ClearPreview() {
	s.preview = nil
	s.previewStart = nil
}

// --- Text draft ---

func (s *Store) TextDraft() *TextDraft {
	return s.textDraft
}

func (s *Store) SetTextDraft(d *TextDraft) {
	s.textDraft = d
}

func (s *Store) ClearTextDraft() {
	s.textDraft = nil
}

// --- Area selection ---

// StartArea begins a marquee at the world point p.
func (s *Store) StartArea(p document.Point) {
	s.areaSelecting = true
	s.areaStart = p
	s.areaEnd = p
}

func (s *Store) SetAreaEnd(p document.Point) {
	if s.areaSelecting {
		s.areaEnd = p
	}
}

func (s *Store) EndArea() {
	s.areaSelecting = false
}

// Area returns the marquee corners and whether a marquee is active.
func (s *Store) Area() (start, end document.Point, active bool) {
	return s.areaStart, s.areaEnd, s.areaSelecting
}

// --- History ---

func (s *Store) snapshot() Snapshot {
	snap := make(Snapshot, 0, len(s.order))
	for _, id := range s.order {
		snap = append(snap, s.elements[id].Clone())
	}
	return snap
}

func (s *Store) restore(snap Snapshot) {
	s.elements = make(map[string]*document.Element, len(snap))
	s.order = make([]string, 0, len(snap))
	for _, e := range snap {
		c := e.Clone()
		s.elements[c.ID] = &c
		s.order = append(s.order, c.ID)
	}
	s.ClearSelection()
}

func (s *Store) pushPast(snap Snapshot) {
	s.past = append(s.past, snap)
	if over := len(s.past) - s.historyLimit; over > 0 {
		s.past = slices.Delete(s.past, 0, over)
		slog.Debug("history limit reached", "evicted", over)
	}
}

// SaveToHistory records the current elements as an undo point and drops
// any redo states.
func (s *Store) SaveToHistory() {
	s.pushPast(s.snapshot())
	s.future = nil
}

// Undo restores the most recent undo point. It is a no-op when there is
// nothing to undo.
func (s *Store) Undo() {
	if len(s.past) == 0 {
		return
	}
	s.future = append(s.future, s.snapshot())
	last := s.past[len(s.past)-1]
	s.past = s.past[:len(s.past)-1]
	s.restore(last)
	s.Commit()
}

// Redo re-applies the most recently undone state.
func (s *Store) Redo() {
	if len(s.future) == 0 {
		return
	}
	s.pushPast(s.snapshot())
	next := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.restore(next)
	s.Commit()
}

func (s *Store) CanUndo() bool { return len(s.past) > 0 }
func (s *Store) CanRedo() bool { return len(s.future) > 0 }

// HistoryLen returns the number of undo and redo snapshots.
func (s *Store) HistoryLen() (past, future int) {
	return len(s.past), len(s.future)
}

// Past returns a deep copy of the undo stack, oldest first.
func (s *Store) Past() []Snapshot {
	out := make([]Snapshot, len(s.past))
	for i, snap := range s.past {
		out[i] = make(Snapshot, len(snap))
		for j, e := range snap {
			out[i][j] = e.Clone()
		}
	}
	return out
}
