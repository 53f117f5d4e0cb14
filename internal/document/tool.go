package document

// Tool is the active interaction tool chosen by the caller.
type Tool string

const (
	ToolMove      Tool = "move"
	ToolSelection Tool = "selection"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
	ToolArrow     Tool = "arrow"
	ToolDraw      Tool = "draw"
	ToolLine      Tool = "line"
	ToolText      Tool = "text"
)

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	switch t {
	case ToolMove, ToolSelection, ToolRectangle, ToolCircle, ToolArrow, ToolDraw, ToolLine, ToolText:
		return true
	}
	return false
}

// ShapeType returns the element type drawn by a shape tool.
func (t Tool) ShapeType() (ElementType, bool) {
	switch t {
	case ToolRectangle:
		return TypeRectangle, true
	case ToolCircle:
		return TypeCircle, true
	case ToolArrow:
		return TypeArrow, true
	case ToolLine:
		return TypeLine, true
	case ToolDraw:
		return TypeDraw, true
	}
	return "", false
}

// Style is the set of defaults a tool applies to the elements it creates.
type Style struct {
	StrokeStyle   string        `json:"strokeStyle"`
	LineWidth     float64       `json:"lineWidth"`
	FillStyle     string        `json:"fillStyle"`
	StrokePattern StrokePattern `json:"strokePattern"`
	LineCap       string        `json:"lineCap"`
	LineJoin      string        `json:"lineJoin"`
	FontSize      float64       `json:"fontSize"`
	FontFamily    string        `json:"fontFamily"`
	Color         string        `json:"color"`
}

func DefaultStyle() Style {
	return Style{
		StrokeStyle:   "#000000",
		LineWidth:     2,
		FillStyle:     "transparent",
		StrokePattern: StrokeSolid,
		LineCap:       "round",
		LineJoin:      "round",
		FontSize:      20,
		FontFamily:    "sans-serif",
		Color:         "#000000",
	}
}

// StyleDefaults holds per-tool styles.
type StyleDefaults map[Tool]Style

// For returns the style for t, falling back to DefaultStyle. Zero fields in
// a configured style are filled from the default.
func (d StyleDefaults) For(t Tool) Style {
	def := DefaultStyle()
	s, ok := d[t]
	if !ok {
		return def
	}
	if s.StrokeStyle == "" {
		s.StrokeStyle = def.StrokeStyle
	}
	if s.LineWidth <= 0 {
		s.LineWidth = def.LineWidth
	}
	if s.FillStyle == "" {
		s.FillStyle = def.FillStyle
	}
	if s.StrokePattern == "" {
		s.StrokePattern = def.StrokePattern
	}
	if s.LineCap == "" {
		s.LineCap = def.LineCap
	}
	if s.LineJoin == "" {
		s.LineJoin = def.LineJoin
	}
	if s.FontSize <= 0 {
		s.FontSize = def.FontSize
	}
	if s.FontFamily == "" {
		s.FontFamily = def.FontFamily
	}
	if s.Color == "" {
		s.Color = def.Color
	}
	return s
}
