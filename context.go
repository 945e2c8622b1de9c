package quill

import (
	"errors"
	"fmt"
	"io"
)

// Context is the main drawing context. It maintains the drawing state
// (transform, colors, line style, clip, font, text position), the state
// stack and the current path, and delegates rendering to a pluggable
// Sink. Context implements io.Closer; Close reports an unbalanced state
// stack at the end of a drawing session.
//
// A Context is not safe for concurrent use. It assumes exclusive,
// single-owner access for the duration of a drawing session.
type Context struct {
	sink  Sink
	state State
	stack []State

	// Current path. nil when no path is in progress; paint operations
	// consume the path and reset this to nil.
	path *Path

	closed bool
}

// Ensure Context implements io.Closer.
var _ io.Closer = (*Context)(nil)

// NewContext creates a drawing context rendering into the given sink.
// The fresh context is immediately usable: identity transform, black
// stroke and fill, 1-unit solid lines, the default font, no clip.
func NewContext(sink Sink, opts ...ContextOption) *Context {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	state := defaultState()
	state.Font = options.font
	if state.Font.Face == "" {
		state.Font.Face = DefaultFace
	}
	state.Stroke = options.stroke

	c := &Context{
		sink:  sink,
		state: state,
		stack: make([]State, 0, 8),
	}

	// Options change the initial state, so the sink must see them too.
	// A sink without StrokeStyler keeps its own stroke defaults.
	if options.fontSet {
		if err := c.sink.SetFont(c.state.Font.Face, c.state.Font.Size); err != nil {
			Logger().Warn("quill: initial font rejected by sink", "err", err)
		}
	}
	if options.strokeSet {
		if err := c.forwardStrokeStyle(); err != nil && !errors.Is(err, ErrUnsupported) {
			Logger().Warn("quill: initial stroke style rejected by sink", "err", err)
		}
	}
	return c
}

// Close flushes the sink and releases context state. If the session ends
// with unmatched SaveState calls, Close reports ErrStackImbalance.
// Close is idempotent.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.sink.Flush()
	if depth := len(c.stack); depth > 0 {
		Logger().Warn("quill: closing with unbalanced state stack", "depth", depth)
		if err == nil {
			err = fmt.Errorf("%w: %d unmatched save(s)", ErrStackImbalance, depth)
		}
	}

	c.path = nil
	c.stack = nil
	return err
}

//----------------------------------------------------------------
// Coordinate transform
//----------------------------------------------------------------

// Scale scales the coordinate system by (sx, sy).
func (c *Context) Scale(sx, sy float64) error {
	return c.Concat(Scaling(sx, sy))
}

// Translate translates the coordinate system by (tx, ty).
func (c *Context) Translate(tx, ty float64) error {
	return c.Concat(Translation(tx, ty))
}

// Rotate rotates the coordinate system by angle radians.
func (c *Context) Rotate(angle float64) error {
	return c.Concat(Rotation(angle))
}

// Concat concatenates m onto the current transform. The new transform
// applies after the existing one: after Concat(A); Concat(B) a point p
// maps to B(A(p)). The delta is forwarded to the sink.
func (c *Context) Concat(m Matrix) error {
	c.state.Transform = m.Multiply(c.state.Transform)
	return c.sink.ApplyTransform(m)
}

// GetTransform returns a copy of the current transform matrix.
// Mutating the returned value does not affect the context.
func (c *Context) GetTransform() Matrix {
	return c.state.Transform
}

//----------------------------------------------------------------
// State stack
//----------------------------------------------------------------

// SaveState pushes a snapshot of the current state onto the state stack.
// Always pair with RestoreState; use WithState when an early return or
// error could otherwise skip the restore.
func (c *Context) SaveState() error {
	c.stack = append(c.stack, c.state.clone())
	return c.sink.PushState()
}

// RestoreState pops the state stack and replaces the current state with
// the popped snapshot. Fails with ErrStackUnderflow when the stack is
// empty; it is never a silent no-op.
func (c *Context) RestoreState() error {
	if len(c.stack) == 0 {
		return ErrStackUnderflow
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return c.sink.PopState()
}

// WithState runs fn between a SaveState/RestoreState pair, guaranteeing
// the restore on every exit path. fn's error is returned; a restore
// failure is reported only when fn succeeded.
func (c *Context) WithState(fn func(*Context) error) error {
	if err := c.SaveState(); err != nil {
		return err
	}
	err := fn(c)
	if rerr := c.RestoreState(); err == nil {
		err = rerr
	}
	return err
}

// StackDepth returns the number of saved states.
func (c *Context) StackDepth() int {
	return len(c.stack)
}

//----------------------------------------------------------------
// Path building
//----------------------------------------------------------------

// BeginPath discards any unconsumed path and starts a new empty one.
func (c *Context) BeginPath() {
	c.path = NewPath()
}

// ensurePath begins a path if none is in progress.
func (c *Context) ensurePath() *Path {
	if c.path == nil {
		c.path = NewPath()
	}
	return c.path
}

// MoveTo starts a new subpath at (x, y), implicitly beginning a path if
// none exists.
func (c *Context) MoveTo(x, y float64) {
	c.ensurePath().MoveTo(x, y)
}

// LineTo appends a line segment from the current point.
// Fails with ErrNoCurrentPoint if no current point exists.
func (c *Context) LineTo(x, y float64) error {
	if c.path == nil || !c.path.HasCurrentPoint() {
		return ErrNoCurrentPoint
	}
	c.path.LineTo(x, y)
	return nil
}

// Lines appends a new subpath running through the given points. The
// first point becomes the subpath's move; the current point ends at the
// last point. At least one point is required.
func (c *Context) Lines(points []Point) error {
	if len(points) == 0 {
		return fmt.Errorf("quill: lines requires at least one point")
	}
	p := c.ensurePath()
	p.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return nil
}

// LineSet appends one independent open subpath per (start, end) pair, in
// pair order. The subpaths are not connected to each other or to prior
// subpaths. Extra entries in the longer slice are ignored.
func (c *Context) LineSet(starts, ends []Point) error {
	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}
	p := c.ensurePath()
	for i := 0; i < n; i++ {
		p.MoveTo(starts[i].X, starts[i].Y)
		p.LineTo(ends[i].X, ends[i].Y)
	}
	return nil
}

// Rect appends a rectangle as an independent closed subpath.
func (c *Context) Rect(x, y, w, h float64) {
	c.ensurePath().Rectangle(x, y, w, h)
}

// Rects appends one closed rectangular subpath per rectangle.
func (c *Context) Rects(rects []Rect) {
	p := c.ensurePath()
	for _, r := range rects {
		p.Rectangle(r.X, r.Y, r.W, r.H)
	}
}

// ClosePath closes the most recent subpath back to its starting point.
// Fails with ErrNoCurrentPoint when there is no path in progress.
func (c *Context) ClosePath() error {
	if c.path == nil || c.path.IsEmpty() {
		return ErrNoCurrentPoint
	}
	c.path.Close()
	return nil
}

// CurveTo appends a cubic Bezier from the current point.
// Fails with ErrNoCurrentPoint if no current point exists.
func (c *Context) CurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) error {
	if c.path == nil || !c.path.HasCurrentPoint() {
		return ErrNoCurrentPoint
	}
	c.path.CubicTo(cp1x, cp1y, cp2x, cp2y, x, y)
	return nil
}

// Arc appends a circular arc around (x, y). The clockwise flag selects
// the sweep direction; it is honored, not advisory. The arc start is
// connected to the current point with a line, or begins a new subpath
// when there is none.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64, clockwise bool) {
	c.ensurePath().Arc(x, y, radius, startAngle, endAngle, clockwise)
}

// ArcTo appends an arc of the given radius tangent to the lines
// (current point)->(x1, y1) and (x1, y1)->(x2, y2).
// Fails with ErrNoCurrentPoint if no current point exists.
func (c *Context) ArcTo(x1, y1, x2, y2, radius float64) error {
	if c.path == nil || !c.path.HasCurrentPoint() {
		return ErrNoCurrentPoint
	}
	c.path.ArcTo(x1, y1, x2, y2, radius)
	return nil
}

// CurrentPoint returns the current point of the path in user space.
// ok is false when no current point exists.
func (c *Context) CurrentPoint() (x, y float64, ok bool) {
	if c.path == nil || !c.path.HasCurrentPoint() {
		return 0, 0, false
	}
	pt := c.path.CurrentPoint()
	return pt.X, pt.Y, true
}

// IsPathEmpty reports whether no path is in progress.
func (c *Context) IsPathEmpty() bool {
	return c.path == nil || c.path.IsEmpty()
}

//----------------------------------------------------------------
// Painting
//----------------------------------------------------------------

// takePath consumes the current path. After a paint operation the
// context has no path; a new BeginPath/MoveTo is required.
func (c *Context) takePath() *Path {
	p := c.path
	c.path = nil
	return p
}

// DrawPath paints the current path in the given mode and consumes it.
// The path is consumed even when the sink reports an error; previously
// painted output is never affected by a failure.
func (c *Context) DrawPath(mode DrawMode) error {
	stroke, fill, rule, ok := mode.params()
	if !ok {
		return fmt.Errorf("%w: draw mode %d", ErrInvalidStyle, mode)
	}
	path := c.takePath()
	if path == nil || path.IsEmpty() {
		return nil
	}
	return c.sink.RenderPath(path, stroke, fill, rule)
}

// StrokePath strokes the current path and consumes it.
func (c *Context) StrokePath() error {
	return c.DrawPath(ModeStroke)
}

// FillPath fills the current path with the non-zero winding rule and
// consumes it.
func (c *Context) FillPath() error {
	return c.DrawPath(ModeFill)
}

// EOFFillPath fills the current path with the even-odd rule and
// consumes it. For self-intersecting paths this covers a different area
// than FillPath.
func (c *Context) EOFFillPath() error {
	return c.DrawPath(ModeEOFFill)
}

// StrokeRect strokes a rectangle without disturbing the current path
// lifecycle: it begins its own path and leaves no residual path behind.
func (c *Context) StrokeRect(r Rect) error {
	return c.DrawRect(r, ModeStroke)
}

// FillRect fills a rectangle, leaving no residual path.
func (c *Context) FillRect(r Rect) error {
	return c.DrawRect(r, ModeFill)
}

// DrawRect paints a rectangle in the given mode, leaving no residual
// path.
func (c *Context) DrawRect(r Rect, mode DrawMode) error {
	c.BeginPath()
	c.Rect(r.X, r.Y, r.W, r.H)
	return c.DrawPath(mode)
}

// ClearRect erases a rectangular region. Sinks without the Clearer
// capability report ErrUnsupported.
func (c *Context) ClearRect(r Rect) error {
	cl, ok := c.sink.(Clearer)
	if !ok {
		return fmt.Errorf("%w: clear rect", ErrUnsupported)
	}
	return cl.ClearRect(r.X, r.Y, r.W, r.H)
}

//----------------------------------------------------------------
// Clipping
//----------------------------------------------------------------

// Clip intersects the clip region with the current path using the
// non-zero winding rule. The path is consumed. Clip state is part of the
// graphics state and is therefore save/restore scoped.
func (c *Context) Clip() error {
	return c.clip(FillRuleNonZero)
}

// EvenOddClip intersects the clip region with the current path using the
// even-odd rule. The path is consumed.
func (c *Context) EvenOddClip() error {
	return c.clip(FillRuleEvenOdd)
}

func (c *Context) clip(rule FillRule) error {
	path := c.takePath()
	if path == nil || path.IsEmpty() {
		return ErrNoCurrentPoint
	}
	cp, ok := c.sink.(Clipper)
	if !ok {
		return fmt.Errorf("%w: clip", ErrUnsupported)
	}
	c.state.Clip = append(c.state.Clip, ClipEntry{Path: path.Clone(), Rule: rule})
	return cp.ClipPath(path, rule)
}

// ClipToRect intersects the clip region with an axis-aligned rectangle.
func (c *Context) ClipToRect(x, y, w, h float64) error {
	cp, ok := c.sink.(Clipper)
	if !ok {
		return fmt.Errorf("%w: clip to rect", ErrUnsupported)
	}
	rectPath := NewPath()
	rectPath.Rectangle(x, y, w, h)
	c.state.Clip = append(c.state.Clip, ClipEntry{Path: rectPath, Rule: FillRuleNonZero})
	return cp.ClipRect(x, y, w, h)
}

// ClipRegion returns the clip operations applied in the current state.
// An empty result means unclipped.
func (c *Context) ClipRegion() []ClipEntry {
	return c.state.Clip
}

// ClearClipPath is not part of the minimal engine.
func (c *Context) ClearClipPath() error {
	return fmt.Errorf("%w: clear clip path", ErrUnsupported)
}

//----------------------------------------------------------------
// Color and line style
//----------------------------------------------------------------

// SetStrokeColor sets the stroke color.
func (c *Context) SetStrokeColor(col RGBA) error {
	c.state.StrokeColor = col
	return c.sink.SetStrokeColor(col)
}

// SetFillColor sets the fill color.
func (c *Context) SetFillColor(col RGBA) error {
	c.state.FillColor = col
	return c.sink.SetFillColor(col)
}

// StrokeColor returns the current stroke color.
func (c *Context) StrokeColor() RGBA { return c.state.StrokeColor }

// FillColor returns the current fill color.
func (c *Context) FillColor() RGBA { return c.state.FillColor }

// SetLineWidth sets the line width in user space units.
func (c *Context) SetLineWidth(width float64) error {
	if width < 0 {
		return fmt.Errorf("%w: negative line width %v", ErrInvalidStyle, width)
	}
	c.state.Stroke.Width = width
	return c.forwardStrokeStyle()
}

// SetLineCap sets the line cap style. Unrecognized values fail with
// ErrInvalidStyle and leave the previous cap unchanged.
func (c *Context) SetLineCap(cap LineCap) error {
	if !cap.valid() {
		return fmt.Errorf("%w: line cap %d", ErrInvalidStyle, cap)
	}
	c.state.Stroke.Cap = cap
	return c.forwardStrokeStyle()
}

// SetLineJoin sets the line join style. Unrecognized values fail with
// ErrInvalidStyle and leave the previous join unchanged.
func (c *Context) SetLineJoin(join LineJoin) error {
	if !join.valid() {
		return fmt.Errorf("%w: line join %d", ErrInvalidStyle, join)
	}
	c.state.Stroke.Join = join
	return c.forwardStrokeStyle()
}

// SetMiterLimit sets the miter limit for sharp joins.
func (c *Context) SetMiterLimit(limit float64) error {
	c.state.Stroke.MiterLimit = limit
	return c.forwardStrokeStyle()
}

// SetLineDash sets the dash pattern. An empty lengths slice (or an
// all-zero pattern) returns to solid lines.
func (c *Context) SetLineDash(lengths []float64, phase float64) error {
	c.state.Stroke.Dash = NewDash(lengths...).WithPhase(phase)
	return c.forwardStrokeStyle()
}

// LineStyle returns a copy of the current stroke style.
func (c *Context) LineStyle() Stroke {
	return c.state.Stroke.Clone()
}

// forwardStrokeStyle hands the stroke style to the sink. Sinks without
// the StrokeStyler capability report ErrUnsupported.
func (c *Context) forwardStrokeStyle() error {
	ss, ok := c.sink.(StrokeStyler)
	if !ok {
		return fmt.Errorf("%w: stroke style", ErrUnsupported)
	}
	return ss.SetStrokeStyle(c.state.Stroke.Clone())
}

//----------------------------------------------------------------
// Text
//----------------------------------------------------------------

// SelectFont selects a font by face name and size.
func (c *Context) SelectFont(name string, size float64) error {
	return c.SetFont(Font{Face: name, Size: size})
}

// SetFont sets the current font. A descriptor with an empty face name
// falls back to DefaultFace; this fallback is deliberate.
func (c *Context) SetFont(f Font) error {
	if f.Face == "" {
		f.Face = DefaultFace
	}
	c.state.Font = f
	return c.sink.SetFont(f.Face, f.Size)
}

// SetFontSize changes the font size, keeping the current face.
func (c *Context) SetFontSize(size float64) error {
	f := c.state.Font
	f.Size = size
	return c.SetFont(f)
}

// CurrentFont returns the current font.
func (c *Context) CurrentFont() Font { return c.state.Font }

// SetTextPosition sets the text position.
func (c *Context) SetTextPosition(x, y float64) {
	c.state.TextX, c.state.TextY = x, y
}

// TextPosition returns the current text position.
func (c *Context) TextPosition() (x, y float64) {
	return c.state.TextX, c.state.TextY
}

// ShowText draws text at the stored text position.
func (c *Context) ShowText(text string) error {
	return c.ShowTextAt(text, c.state.TextX, c.state.TextY)
}

// ShowTextAt draws text with its baseline origin at (x, y).
func (c *Context) ShowTextAt(text string, x, y float64) error {
	return c.sink.DrawText(text, x, y)
}

// TextExtent returns the width and height of text in the current font.
func (c *Context) TextExtent(text string) (w, h float64) {
	w, h, _, _ = c.FullTextExtent(text)
	return w, h
}

// FullTextExtent returns the width, height, descent and leading of text
// in the current font. Vertical metrics are scaled from 1000-unit glyph
// space by size/1000. Width comes from the sink when it can measure
// text exactly, otherwise from the built-in face metrics.
func (c *Context) FullTextExtent(text string) (w, h, descent, leading float64) {
	f := c.state.Font
	m := metricsFor(f.Face)

	ascent := m.Ascent * f.Size / 1000.0
	descent = m.Descent * f.Size / 1000.0

	w = m.advance(text, f.Size)
	if tm, ok := c.sink.(TextMeasurer); ok {
		if mw, err := tm.MeasureText(text, f); err == nil {
			w = mw
		}
	}

	return w, ascent + descent, descent, 0
}

//----------------------------------------------------------------
// Pages and device control
//----------------------------------------------------------------

// BeginPage starts a new page. For sinks without pagination this is a
// valid no-op.
func (c *Context) BeginPage() error {
	return c.sink.BeginPage()
}

// EndPage ends the current page.
func (c *Context) EndPage() error {
	return c.sink.EndPage()
}

// Flush commits buffered drawing to the sink's durable target.
func (c *Context) Flush() error {
	return c.sink.Flush()
}

//----------------------------------------------------------------
// Unimplemented-by-design capabilities
//----------------------------------------------------------------

// SetAlpha is not part of the minimal engine.
func (c *Context) SetAlpha(alpha float64) error {
	return fmt.Errorf("%w: set alpha", ErrUnsupported)
}

// ShowGlyphs is not part of the minimal engine.
func (c *Context) ShowGlyphs() error {
	return fmt.Errorf("%w: show glyphs", ErrUnsupported)
}

// SetFlatness is not part of the minimal engine.
func (c *Context) SetFlatness(flatness float64) error {
	return fmt.Errorf("%w: set flatness", ErrUnsupported)
}

// SetFillColorSpace is not part of the minimal engine; colors are RGBA.
func (c *Context) SetFillColorSpace() error {
	return fmt.Errorf("%w: set fill color space", ErrUnsupported)
}

// SetStrokeColorSpace is not part of the minimal engine; colors are RGBA.
func (c *Context) SetStrokeColorSpace() error {
	return fmt.Errorf("%w: set stroke color space", ErrUnsupported)
}

// SetRenderingIntent is not part of the minimal engine.
func (c *Context) SetRenderingIntent() error {
	return fmt.Errorf("%w: set rendering intent", ErrUnsupported)
}
