package render

import (
	"encoding/json"
	"strconv"

	"github.com/structboard/structboard/internal/geometry"
)

// DrawCommand is a single drawing operation for a remote Canvas2D client
// to execute. Op names follow the Canvas2D method they map to.
type DrawCommand struct {
	Op    string    `json:"op"`
	Args  []float64 `json:"args,omitempty"`
	Style string    `json:"style,omitempty"`
	Text  string    `json:"text,omitempty"`
}

// Recorder is a Surface that records the commands of the current frame
// instead of drawing them. ResetTransform starts a new frame.
type Recorder struct {
	width, height float64
	fontSize      float64
	fontStack     []float64
	commands      []DrawCommand
}

// NewRecorder creates a recorder for a surface of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height, fontSize: 16}
}

// Resize changes the reported surface size.
func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
}

func (r *Recorder) emit(op string, args ...float64) {
	r.commands = append(r.commands, DrawCommand{Op: op, Args: args})
}

func (r *Recorder) emitStyle(op, style string) {
	r.commands = append(r.commands, DrawCommand{Op: op, Style: style})
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) ResetTransform() {
	r.commands = r.commands[:0]
	r.fontStack = r.fontStack[:0]
	r.emit("resetTransform")
}

func (r *Recorder) Clear(color string) {
	r.commands = append(r.commands, DrawCommand{Op: "clear", Args: []float64{r.width, r.height}, Style: color})
}

func (r *Recorder) Save() {
	r.fontStack = append(r.fontStack, r.fontSize)
	r.emit("save")
}

func (r *Recorder) Restore() {
	if n := len(r.fontStack); n > 0 {
		r.fontSize = r.fontStack[n-1]
		r.fontStack = r.fontStack[:n-1]
	}
	r.emit("restore")
}

func (r *Recorder) Translate(x, y float64)  { r.emit("translate", x, y) }
func (r *Recorder) Scale(sx, sy float64)    { r.emit("scale", sx, sy) }
func (r *Recorder) Rotate(radians float64)  { r.emit("rotate", radians) }
func (r *Recorder) SetStrokeColor(c string) { r.emitStyle("strokeStyle", c) }
func (r *Recorder) SetFillColor(c string)   { r.emitStyle("fillStyle", c) }
func (r *Recorder) SetLineWidth(w float64)  { r.emit("lineWidth", w) }
func (r *Recorder) SetLineCap(c string)     { r.emitStyle("lineCap", c) }
func (r *Recorder) SetLineJoin(j string)    { r.emitStyle("lineJoin", j) }

// SetDash always records its arguments so that an empty pattern reaches
// the client as an empty list.
func (r *Recorder) SetDash(pattern ...float64) {
	r.commands = append(r.commands, DrawCommand{Op: "setLineDash", Args: append([]float64{}, pattern...)})
}

func (r *Recorder) BeginPath()                   { r.emit("beginPath") }
func (r *Recorder) MoveTo(x, y float64)          { r.emit("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)          { r.emit("lineTo", x, y) }
func (r *Recorder) ClosePath()                   { r.emit("closePath") }
func (r *Recorder) Rect(x, y, w, h float64)      { r.emit("rect", x, y, w, h) }
func (r *Recorder) Ellipse(x, y, rx, ry float64) { r.emit("ellipse", x, y, rx, ry) }
func (r *Recorder) Stroke()                      { r.emit("stroke") }
func (r *Recorder) Fill()                        { r.emit("fill") }

func (r *Recorder) SetFont(size float64, family string) {
	r.fontSize = size
	r.emitStyle("font", strconv.FormatFloat(size, 'f', -1, 64)+"px "+family)
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.commands = append(r.commands, DrawCommand{Op: "fillText", Args: []float64{x, y}, Text: text})
}

// MeasureText estimates the advance of text at the current font size. A
// remote client measures for real; the estimate only drives layout done
// on this side, such as centering labels and placing the caret.
func (r *Recorder) MeasureText(text string) float64 {
	w, _ := geometry.TextSize(text, r.fontSize)
	return w
}

// Commands returns the commands recorded since the last frame started.
func (r *Recorder) Commands() []DrawCommand {
	return append([]DrawCommand(nil), r.commands...)
}

// Flush returns the recorded commands and empties the buffer.
func (r *Recorder) Flush() []DrawCommand {
	out := r.Commands()
	r.commands = r.commands[:0]
	return out
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	return DrawCommandsToJSON(r.commands)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
