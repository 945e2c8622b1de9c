package quill

// Sink is the rendering target a Context draws into: a PDF writer, a
// rasterizer, a platform-native painter. The engine depends only on this
// interface, never on a concrete backend type.
//
// The engine forwards transform, state and color changes as they happen
// and hands over composed paths with RenderPath. Paths arrive in user
// space; the sink is expected to apply the transforms it has received.
type Sink interface {
	// ApplyTransform concatenates m onto the sink's coordinate system.
	ApplyTransform(m Matrix) error

	// PushState saves the sink's graphics state; PopState restores it.
	// Calls are always paired by the engine.
	PushState() error
	PopState() error

	// RenderPath paints a composed path. The path is owned by the sink
	// after the call; the engine never touches it again.
	RenderPath(path *Path, stroke, fill bool, rule FillRule) error

	// SetStrokeColor and SetFillColor update the painting colors.
	SetStrokeColor(c RGBA) error
	SetFillColor(c RGBA) error

	// SetFont selects the text face and size.
	SetFont(name string, size float64) error

	// DrawText places text with its baseline origin at (x, y).
	DrawText(text string, x, y float64) error

	// BeginPage and EndPage demarcate page boundaries. Sinks without
	// pagination treat them as valid no-ops.
	BeginPage() error
	EndPage() error

	// Flush commits buffered drawing to the durable target.
	Flush() error
}

// StrokeStyler is implemented by sinks that honor stroke styling
// (line width, caps, joins, miter limit, dash pattern). Style setters on
// the Context fail with ErrUnsupported when the sink lacks it.
type StrokeStyler interface {
	SetStrokeStyle(s Stroke) error
}

// Clipper is implemented by sinks that support clipping. The clip region
// is intersected, never replaced, and is scoped by PushState/PopState.
type Clipper interface {
	ClipPath(path *Path, rule FillRule) error
	ClipRect(x, y, w, h float64) error
}

// Clearer is implemented by sinks that can erase a rectangular region.
type Clearer interface {
	ClearRect(x, y, w, h float64) error
}

// TextMeasurer is implemented by sinks that can measure text exactly
// (for example a PDF writer with embedded font width tables). When
// absent, the engine falls back to its built-in face metrics.
type TextMeasurer interface {
	MeasureText(text string, f Font) (width float64, err error)
}
