package render

// Surface is an immediate-mode 2D drawing target modeled on Canvas2D.
// Colors are hex strings. Save and Restore cover the transform and every
// style setting. Text is positioned by the top-left corner of its box.
type Surface interface {
	Size() (width, height float64)

	ResetTransform()
	Clear(color string)
	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(radians float64)

	SetStrokeColor(color string)
	SetFillColor(color string)
	SetLineWidth(w float64)
	SetLineCap(lineCap string)
	SetLineJoin(join string)
	// SetDash sets alternating dash and gap lengths; none means solid.
	SetDash(pattern ...float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Rect(x, y, w, h float64)
	Ellipse(cx, cy, rx, ry float64)
	Stroke()
	Fill()

	SetFont(size float64, family string)
	FillText(text string, x, y float64)
	MeasureText(text string) float64
}
