package document

const (
	MinScale = 0.2
	MaxScale = 5.0
)

// ViewState maps world coordinates to screen coordinates:
// screen = world*Scale + Offset.
type ViewState struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultView is the identity view.
func DefaultView() ViewState {
	return ViewState{Scale: 1}
}

// ClampScale limits s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	return min(max(s, MinScale), MaxScale)
}

// Clamped returns v with its scale clamped.
func (v ViewState) Clamped() ViewState {
	v.Scale = ClampScale(v.Scale)
	return v
}

func (v ViewState) ScreenToWorld(p Point) Point {
	return Point{
		X: (p.X - v.OffsetX) / v.Scale,
		Y: (p.Y - v.OffsetY) / v.Scale,
	}
}

func (v ViewState) WorldToScreen(p Point) Point {
	return Point{
		X: p.X*v.Scale + v.OffsetX,
		Y: p.Y*v.Scale + v.OffsetY,
	}
}
