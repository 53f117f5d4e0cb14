package document

import (
	"slices"

	"github.com/structboard/structboard/internal/tree"
	"github.com/structboard/structboard/internal/typeid"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ElementType string

const (
	TypeRectangle  ElementType = "rectangle"
	TypeCircle     ElementType = "circle"
	TypeLine       ElementType = "line"
	TypeArrow      ElementType = "arrow"
	TypeDraw       ElementType = "draw"
	TypeText       ElementType = "text"
	TypeArray      ElementType = "array"
	TypeLinkedList ElementType = "linked-list"
	TypeBinaryTree ElementType = "binary-tree"
)

// IsDataStructure reports whether elements of this type are laid out from
// their values rather than drawn freely.
func (t ElementType) IsDataStructure() bool {
	return t == TypeArray || t == TypeLinkedList || t == TypeBinaryTree
}

// Resizable reports whether elements of this type can be resized with
// handles. Text and data structures take their size from their content.
func (t ElementType) Resizable() bool {
	return t != TypeText && !t.IsDataStructure()
}

var idPrefixes = map[ElementType]string{
	TypeRectangle:  typeid.PrefixRectangle,
	TypeCircle:     typeid.PrefixCircle,
	TypeLine:       typeid.PrefixLine,
	TypeArrow:      typeid.PrefixArrow,
	TypeDraw:       typeid.PrefixDraw,
	TypeText:       typeid.PrefixText,
	TypeArray:      typeid.PrefixArray,
	TypeLinkedList: typeid.PrefixLinkedList,
	TypeBinaryTree: typeid.PrefixBinaryTree,
}

// NewElementID generates a fresh id prefixed by the element type.
func NewElementID(t ElementType) string {
	prefix, ok := idPrefixes[t]
	if !ok {
		prefix = "elem"
	}
	return typeid.New(prefix)
}

// IsFilled reports whether a fill style paints anything.
func IsFilled(fill string) bool {
	return fill != "" && fill != "transparent"
}

type StrokePattern string

const (
	StrokeSolid  StrokePattern = "solid"
	StrokeDashed StrokePattern = "dashed"
	StrokeDotted StrokePattern = "dotted"
)

// Element is a single canvas element. Type selects which fields are
// meaningful:
//
//	rectangle     X, Y, Width, Height, Rotate, stroke and fill
//	circle        X, Y (center), RadiusX, RadiusY, Rotate, stroke and fill
//	line, arrow   X, Y, EndX, EndY, stroke
//	draw          X, Y, Points (relative to X, Y), stroke, LineCap, LineJoin
//	text          X, Y, Text, FontSize, FontFamily, Color, Rotate
//	array         X, Y, Values, Rotate
//	linked-list   X, Y, Values, Rotate
//	binary-tree   X, Y (root center), Root, Rotate
//
// Rotate is in degrees.
type Element struct {
	ID   string      `json:"id"`
	Type ElementType `json:"type"`

	X float64 `json:"x"`
	Y float64 `json:"y"`

	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	RadiusX float64 `json:"radiusX,omitempty"`
	RadiusY float64 `json:"radiusY,omitempty"`
	EndX    float64 `json:"endX,omitempty"`
	EndY    float64 `json:"endY,omitempty"`
	Rotate  float64 `json:"rotate,omitempty"`
	Points  []Point `json:"points,omitempty"`

	StrokeStyle   string        `json:"strokeStyle,omitempty"`
	LineWidth     float64       `json:"lineWidth,omitempty"`
	FillStyle     string        `json:"fillStyle,omitempty"`
	StrokePattern StrokePattern `json:"strokePattern,omitempty"`
	LineCap       string        `json:"lineCap,omitempty"`
	LineJoin      string        `json:"lineJoin,omitempty"`

	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	Color      string  `json:"color,omitempty"`

	Values []string   `json:"values,omitempty"`
	Root   *tree.Node `json:"root,omitempty"`
}

// Clone returns a deep copy of e.
func (e Element) Clone() Element {
	c := e
	c.Points = slices.Clone(e.Points)
	c.Values = slices.Clone(e.Values)
	c.Root = tree.Clone(e.Root)
	return c
}

// Patch is a shallow update: every non-nil field replaces the element's
// field. ID and Type are never patched.
type Patch struct {
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	RadiusX *float64 `json:"radiusX,omitempty"`
	RadiusY *float64 `json:"radiusY,omitempty"`
	EndX    *float64 `json:"endX,omitempty"`
	EndY    *float64 `json:"endY,omitempty"`
	Rotate  *float64 `json:"rotate,omitempty"`
	Points  []Point  `json:"points,omitempty"`

	StrokeStyle   *string        `json:"strokeStyle,omitempty"`
	LineWidth     *float64       `json:"lineWidth,omitempty"`
	FillStyle     *string        `json:"fillStyle,omitempty"`
	StrokePattern *StrokePattern `json:"strokePattern,omitempty"`

	Text       *string  `json:"text,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily *string  `json:"fontFamily,omitempty"`
	Color      *string  `json:"color,omitempty"`

	Values []string   `json:"values,omitempty"`
	Root   *tree.Node `json:"root,omitempty"`
}

// Apply merges p into e.
func (p Patch) Apply(e *Element) {
	setFloat(&e.X, p.X)
	setFloat(&e.Y, p.Y)
	setFloat(&e.Width, p.Width)
	setFloat(&e.Height, p.Height)
	setFloat(&e.RadiusX, p.RadiusX)
	setFloat(&e.RadiusY, p.RadiusY)
	setFloat(&e.EndX, p.EndX)
	setFloat(&e.EndY, p.EndY)
	setFloat(&e.Rotate, p.Rotate)
	setFloat(&e.LineWidth, p.LineWidth)
	setFloat(&e.FontSize, p.FontSize)

	setString(&e.StrokeStyle, p.StrokeStyle)
	setString(&e.FillStyle, p.FillStyle)
	setString(&e.Text, p.Text)
	setString(&e.FontFamily, p.FontFamily)
	setString(&e.Color, p.Color)

	if p.StrokePattern != nil {
		e.StrokePattern = *p.StrokePattern
	}
	if p.Points != nil {
		e.Points = slices.Clone(p.Points)
	}
	if p.Values != nil {
		e.Values = slices.Clone(p.Values)
	}
	if p.Root != nil {
		e.Root = tree.Clone(p.Root)
	}
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}
