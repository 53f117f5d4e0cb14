package render

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadFontSource reads a TrueType font from path, or returns Go Regular
// when path is empty.
func LoadFontSource(path string) (*text.FontSource, error) {
	if path == "" {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("load default font: %w", err)
		}
		return src, nil
	}
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	return src, nil
}

type rasterState struct {
	strokeColor string
	fillColor   string
	stroke      gg.Stroke
	fontSize    float64
}

// Raster is a Surface that paints into a gg pixel buffer.
type Raster struct {
	ctx   *gg.Context
	fonts *text.FontSource
	faces map[float64]text.Face
	state rasterState
	stack []rasterState
}

// NewRaster creates a width x height raster surface. fonts may be nil, in
// which case text is not drawn.
func NewRaster(width, height int, fonts *text.FontSource) *Raster {
	return &Raster{
		ctx:   gg.NewContext(width, height),
		fonts: fonts,
		faces: make(map[float64]text.Face),
		state: rasterState{
			strokeColor: "#000000",
			fillColor:   "#000000",
			stroke:      gg.DefaultStroke(),
			fontSize:    16,
		},
	}
}

// Close releases the pixel buffer.
func (r *Raster) Close() error {
	return r.ctx.Close()
}

// EncodePNG writes the current pixels as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.ctx.EncodePNG(w)
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.ctx.Width()), float64(r.ctx.Height())
}

func (r *Raster) ResetTransform() {
	r.ctx.Identity()
}

func (r *Raster) Clear(color string) {
	r.ctx.ClearWithColor(gg.Hex(color))
}

func (r *Raster) Save() {
	r.ctx.Push()
	r.stack = append(r.stack, r.state)
}

func (r *Raster) Restore() {
	r.ctx.Pop()
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

func (r *Raster) Translate(x, y float64) { r.ctx.Translate(x, y) }
func (r *Raster) Scale(sx, sy float64)   { r.ctx.Scale(sx, sy) }
func (r *Raster) Rotate(radians float64) { r.ctx.Rotate(radians) }

func (r *Raster) SetStrokeColor(c string) { r.state.strokeColor = c }
func (r *Raster) SetFillColor(c string)   { r.state.fillColor = c }
func (r *Raster) SetLineWidth(w float64)  { r.state.stroke = r.state.stroke.WithWidth(w) }

func (r *Raster) SetLineCap(lineCap string) {
	switch lineCap {
	case "round":
		r.state.stroke = r.state.stroke.WithCap(gg.LineCapRound)
	case "square":
		r.state.stroke = r.state.stroke.WithCap(gg.LineCapSquare)
	default:
		r.state.stroke = r.state.stroke.WithCap(gg.LineCapButt)
	}
}

func (r *Raster) SetLineJoin(join string) {
	switch join {
	case "round":
		r.state.stroke = r.state.stroke.WithJoin(gg.LineJoinRound)
	case "bevel":
		r.state.stroke = r.state.stroke.WithJoin(gg.LineJoinBevel)
	default:
		r.state.stroke = r.state.stroke.WithJoin(gg.LineJoinMiter)
	}
}

func (r *Raster) SetDash(pattern ...float64) {
	if len(pattern) == 0 {
		r.state.stroke.Dash = nil
		return
	}
	r.state.stroke.Dash = gg.NewDash(pattern...)
}

func (r *Raster) BeginPath()                     { r.ctx.ClearPath() }
func (r *Raster) MoveTo(x, y float64)            { r.ctx.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64)            { r.ctx.LineTo(x, y) }
func (r *Raster) ClosePath()                     { r.ctx.ClosePath() }
func (r *Raster) Rect(x, y, w, h float64)        { r.ctx.DrawRectangle(x, y, w, h) }
func (r *Raster) Ellipse(cx, cy, rx, ry float64) { r.ctx.DrawEllipse(cx, cy, rx, ry) }

// Stroke and Fill keep the current path so that a shape can be filled and
// outlined from one path, as on a Canvas2D context.
func (r *Raster) Stroke() {
	r.ctx.SetHexColor(r.state.strokeColor)
	r.ctx.SetStroke(r.state.stroke)
	if err := r.ctx.StrokePreserve(); err != nil {
		slog.Warn("raster stroke failed", "error", err)
	}
}

func (r *Raster) Fill() {
	r.ctx.SetHexColor(r.state.fillColor)
	if err := r.ctx.FillPreserve(); err != nil {
		slog.Warn("raster fill failed", "error", err)
	}
}

func (r *Raster) face(size float64) text.Face {
	if r.fonts == nil || size <= 0 {
		return nil
	}
	f, ok := r.faces[size]
	if !ok {
		f = r.fonts.Face(size)
		r.faces[size] = f
	}
	return f
}

// SetFont selects the size of the loaded font. The family is ignored since
// a raster carries a single font.
func (r *Raster) SetFont(size float64, _ string) {
	r.state.fontSize = size
}

// FillText draws text with its top-left corner at (x, y). gg places glyphs
// in device space, so the position and size are mapped through the current
// transform here. Rotation does not apply to raster text.
func (r *Raster) FillText(s string, x, y float64) {
	x0, y0 := r.ctx.TransformPoint(0, 0)
	x1, y1 := r.ctx.TransformPoint(1, 0)
	scale := math.Hypot(x1-x0, y1-y0)

	f := r.face(r.state.fontSize * scale)
	if f == nil {
		return
	}
	dx, dy := r.ctx.TransformPoint(x, y)
	r.ctx.SetFont(f)
	r.ctx.SetHexColor(r.state.fillColor)
	r.ctx.DrawString(s, dx, dy+f.Metrics().Ascent)
}

// MeasureText returns the advance of s in the current font, in user units.
func (r *Raster) MeasureText(s string) float64 {
	f := r.face(r.state.fontSize)
	if f == nil {
		return 0
	}
	r.ctx.SetFont(f)
	w, _ := r.ctx.MeasureString(s)
	return w
}
