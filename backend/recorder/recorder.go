// Package recorder provides a sink that records every drawing command
// it receives. It backs the engine's tests and doubles as a generic
// buffering target: a recorded session can be replayed into any other
// sink.
package recorder

import (
	"github.com/quillgfx/quill"
	"github.com/quillgfx/quill/backend"
)

func init() {
	backend.Register(backend.BackendRecorder, func(backend.Config) (quill.Sink, error) {
		return New(), nil
	})
}

// Op identifies a recorded drawing command.
type Op string

// Recorded command kinds, one per sink method.
const (
	OpApplyTransform Op = "apply-transform"
	OpPushState      Op = "push-state"
	OpPopState       Op = "pop-state"
	OpRenderPath     Op = "render-path"
	OpStrokeColor    Op = "stroke-color"
	OpFillColor      Op = "fill-color"
	OpStrokeStyle    Op = "stroke-style"
	OpClipPath       Op = "clip-path"
	OpClipRect       Op = "clip-rect"
	OpClearRect      Op = "clear-rect"
	OpSetFont        Op = "set-font"
	OpDrawText       Op = "draw-text"
	OpBeginPage      Op = "begin-page"
	OpEndPage        Op = "end-page"
	OpFlush          Op = "flush"
)

// Command is a single recorded sink call. Only the fields relevant to
// the Op are populated.
type Command struct {
	Op     Op
	Matrix quill.Matrix
	Path   *quill.Path
	Stroke bool
	Fill   bool
	Rule   quill.FillRule
	Color  quill.RGBA
	Style  quill.Stroke
	Text   string
	Font   string
	Size   float64
	X, Y   float64
	W, H   float64
}

// Recorder is a quill.Sink that appends every call to a command log.
// It implements all optional sink capabilities except TextMeasurer, so
// text extents exercise the engine's built-in metrics.
type Recorder struct {
	commands []Command
}

// Interface conformance.
var (
	_ quill.Sink         = (*Recorder)(nil)
	_ quill.StrokeStyler = (*Recorder)(nil)
	_ quill.Clipper      = (*Recorder)(nil)
	_ quill.Clearer      = (*Recorder)(nil)
)

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Commands returns the recorded command log in call order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Ops returns only the commands matching op, in call order.
func (r *Recorder) Ops(op Op) []Command {
	var result []Command
	for _, cmd := range r.commands {
		if cmd.Op == op {
			result = append(result, cmd)
		}
	}
	return result
}

// Reset discards the command log.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

func (r *Recorder) record(cmd Command) {
	r.commands = append(r.commands, cmd)
}

// ApplyTransform records the transform delta.
func (r *Recorder) ApplyTransform(m quill.Matrix) error {
	r.record(Command{Op: OpApplyTransform, Matrix: m})
	return nil
}

// PushState records a state save.
func (r *Recorder) PushState() error {
	r.record(Command{Op: OpPushState})
	return nil
}

// PopState records a state restore.
func (r *Recorder) PopState() error {
	r.record(Command{Op: OpPopState})
	return nil
}

// RenderPath records a paint operation together with its consumed path.
func (r *Recorder) RenderPath(path *quill.Path, stroke, fill bool, rule quill.FillRule) error {
	r.record(Command{Op: OpRenderPath, Path: path, Stroke: stroke, Fill: fill, Rule: rule})
	return nil
}

// SetStrokeColor records the stroke color.
func (r *Recorder) SetStrokeColor(c quill.RGBA) error {
	r.record(Command{Op: OpStrokeColor, Color: c})
	return nil
}

// SetFillColor records the fill color.
func (r *Recorder) SetFillColor(c quill.RGBA) error {
	r.record(Command{Op: OpFillColor, Color: c})
	return nil
}

// SetStrokeStyle records the stroke style.
func (r *Recorder) SetStrokeStyle(s quill.Stroke) error {
	r.record(Command{Op: OpStrokeStyle, Style: s})
	return nil
}

// ClipPath records a path clip.
func (r *Recorder) ClipPath(path *quill.Path, rule quill.FillRule) error {
	r.record(Command{Op: OpClipPath, Path: path, Rule: rule})
	return nil
}

// ClipRect records a rectangular clip.
func (r *Recorder) ClipRect(x, y, w, h float64) error {
	r.record(Command{Op: OpClipRect, X: x, Y: y, W: w, H: h})
	return nil
}

// ClearRect records a rectangular erase.
func (r *Recorder) ClearRect(x, y, w, h float64) error {
	r.record(Command{Op: OpClearRect, X: x, Y: y, W: w, H: h})
	return nil
}

// SetFont records the font selection.
func (r *Recorder) SetFont(name string, size float64) error {
	r.record(Command{Op: OpSetFont, Font: name, Size: size})
	return nil
}

// DrawText records a text placement.
func (r *Recorder) DrawText(text string, x, y float64) error {
	r.record(Command{Op: OpDrawText, Text: text, X: x, Y: y})
	return nil
}

// BeginPage records a page start.
func (r *Recorder) BeginPage() error {
	r.record(Command{Op: OpBeginPage})
	return nil
}

// EndPage records a page end.
func (r *Recorder) EndPage() error {
	r.record(Command{Op: OpEndPage})
	return nil
}

// Flush records a flush.
func (r *Recorder) Flush() error {
	r.record(Command{Op: OpFlush})
	return nil
}

// Replay feeds the recorded command log into another sink, in order.
// Optional capabilities the target sink lacks are skipped.
func (r *Recorder) Replay(sink quill.Sink) error {
	for _, cmd := range r.commands {
		var err error
		switch cmd.Op {
		case OpApplyTransform:
			err = sink.ApplyTransform(cmd.Matrix)
		case OpPushState:
			err = sink.PushState()
		case OpPopState:
			err = sink.PopState()
		case OpRenderPath:
			err = sink.RenderPath(cmd.Path.Clone(), cmd.Stroke, cmd.Fill, cmd.Rule)
		case OpStrokeColor:
			err = sink.SetStrokeColor(cmd.Color)
		case OpFillColor:
			err = sink.SetFillColor(cmd.Color)
		case OpStrokeStyle:
			if ss, ok := sink.(quill.StrokeStyler); ok {
				err = ss.SetStrokeStyle(cmd.Style)
			}
		case OpClipPath:
			if cp, ok := sink.(quill.Clipper); ok {
				err = cp.ClipPath(cmd.Path.Clone(), cmd.Rule)
			}
		case OpClipRect:
			if cp, ok := sink.(quill.Clipper); ok {
				err = cp.ClipRect(cmd.X, cmd.Y, cmd.W, cmd.H)
			}
		case OpClearRect:
			if cl, ok := sink.(quill.Clearer); ok {
				err = cl.ClearRect(cmd.X, cmd.Y, cmd.W, cmd.H)
			}
		case OpSetFont:
			err = sink.SetFont(cmd.Font, cmd.Size)
		case OpDrawText:
			err = sink.DrawText(cmd.Text, cmd.X, cmd.Y)
		case OpBeginPage:
			err = sink.BeginPage()
		case OpEndPage:
			err = sink.EndPage()
		case OpFlush:
			err = sink.Flush()
		}
		if err != nil {
			return err
		}
	}
	return nil
}
