package document

import (
	"github.com/structboard/structboard/internal/tree"
)

// NewSampleScene returns one element of every kind, laid out so that none
// of them overlap at the default view. Paint order is slice order.
func NewSampleScene() []Element {
	style := DefaultStyle()

	return []Element{
		{
			ID:            NewElementID(TypeRectangle),
			Type:          TypeRectangle,
			X:             60,
			Y:             60,
			Width:         160,
			Height:        100,
			StrokeStyle:   "#1e40af",
			LineWidth:     style.LineWidth,
			FillStyle:     "#dbeafe",
			StrokePattern: StrokeSolid,
		},
		{
			ID:            NewElementID(TypeCircle),
			Type:          TypeCircle,
			X:             340,
			Y:             110,
			RadiusX:       70,
			RadiusY:       45,
			StrokeStyle:   "#9d174d",
			LineWidth:     style.LineWidth,
			FillStyle:     style.FillStyle,
			StrokePattern: StrokeDashed,
		},
		{
			ID:            NewElementID(TypeArrow),
			Type:          TypeArrow,
			X:             460,
			Y:             80,
			EndX:          600,
			EndY:          140,
			StrokeStyle:   style.StrokeStyle,
			LineWidth:     style.LineWidth,
			StrokePattern: StrokeSolid,
		},
		{
			ID:            NewElementID(TypeLine),
			Type:          TypeLine,
			X:             640,
			Y:             60,
			EndX:          760,
			EndY:          160,
			StrokeStyle:   "#047857",
			LineWidth:     3,
			StrokePattern: StrokeDotted,
		},
		{
			ID:          NewElementID(TypeDraw),
			Type:        TypeDraw,
			X:           800,
			Y:           100,
			Points:      []Point{{0, 0}, {20, -20}, {40, 0}, {60, 20}, {80, 0}},
			StrokeStyle: "#b45309",
			LineWidth:   4,
			LineCap:     style.LineCap,
			LineJoin:    style.LineJoin,
		},
		{
			ID:         NewElementID(TypeText),
			Type:       TypeText,
			X:          60,
			Y:          220,
			Text:       "Data structures",
			FontSize:   28,
			FontFamily: style.FontFamily,
			Color:      style.Color,
		},
		{
			ID:     NewElementID(TypeArray),
			Type:   TypeArray,
			X:      60,
			Y:      290,
			Values: []string{"4", "8", "15", "16", "23", "42"},
		},
		{
			ID:     NewElementID(TypeLinkedList),
			Type:   TypeLinkedList,
			X:      60,
			Y:      380,
			Values: []string{"head", "a", "b", "tail"},
		},
		{
			ID:   NewElementID(TypeBinaryTree),
			Type: TypeBinaryTree,
			X:    760,
			Y:    320,
			Root: tree.BuildFromValues([]string{"10", "5", "15", "3", "7", "null", "20"}),
		},
	}
}
