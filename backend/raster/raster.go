// Package raster provides a quill sink that renders into an in-memory
// RGBA image by wrapping github.com/srwiley/rasterx.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/quillgfx/quill"
	"github.com/quillgfx/quill/backend"
)

func init() {
	backend.Register(backend.BackendRaster, func(cfg backend.Config) (quill.Sink, error) {
		w, h := cfg.Width, cfg.Height
		if w <= 0 {
			w = 800
		}
		if h <= 0 {
			h = 600
		}
		return New(w, h), nil
	})
}

// sinkState is the device-side slice of graphics state the rasterizer
// has to track itself: the accumulated transform, stroke parameters and
// the pixel clip rectangle.
type sinkState struct {
	ctm         quill.Matrix
	strokeColor quill.RGBA
	fillColor   quill.RGBA
	stroke      quill.Stroke
	clip        image.Rectangle
	font        quill.Font
}

// Sink rasterizes drawing commands into an RGBA pixel buffer.
//
// Paths arrive in user space; the sink applies the accumulated
// transform itself and scales stroke widths by the transform's scale
// factor. The underlying scanner supports only the non-zero winding
// rule, so even-odd fills report quill.ErrUnsupported. Text is drawn
// with a fixed-size bitmap face; the requested point size is ignored.
type Sink struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	filler  *rasterx.Filler
	dasher  *rasterx.Dasher

	state sinkState
	stack []sinkState
}

// Interface conformance.
var (
	_ quill.Sink         = (*Sink)(nil)
	_ quill.StrokeStyler = (*Sink)(nil)
	_ quill.Clipper      = (*Sink)(nil)
	_ quill.Clearer      = (*Sink)(nil)
)

// New creates a raster sink with a transparent width-by-height pixel
// buffer.
func New(width, height int) *Sink {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Sink{
		img:     img,
		scanner: scanner,
		filler:  rasterx.NewFiller(width, height, scanner),
		dasher:  rasterx.NewDasher(width, height, scanner),
		state: sinkState{
			ctm:         quill.Identity(),
			strokeColor: quill.Black,
			fillColor:   quill.Black,
			stroke:      quill.DefaultStroke(),
			clip:        img.Bounds(),
			font:        quill.Font{Face: quill.DefaultFace, Size: 12},
		},
	}
}

// Image returns the underlying pixel buffer.
func (s *Sink) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the pixel buffer to w as PNG.
func (s *Sink) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG writes the pixel buffer to a PNG file.
func (s *Sink) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, s.img); err != nil {
		return err
	}
	return f.Close()
}

// ApplyTransform folds m into the accumulated device transform.
func (s *Sink) ApplyTransform(m quill.Matrix) error {
	s.state.ctm = m.Multiply(s.state.ctm)
	return nil
}

// PushState saves the device-side state.
func (s *Sink) PushState() error {
	s.stack = append(s.stack, s.state)
	return nil
}

// PopState restores the device-side state.
func (s *Sink) PopState() error {
	n := len(s.stack)
	if n == 0 {
		return fmt.Errorf("%w: raster state stack is empty", quill.ErrStackUnderflow)
	}
	s.state = s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.scanner.SetClip(s.state.clip)
	return nil
}

// RenderPath rasterizes the path with the current transform, colors and
// stroke parameters. Fill happens before stroke when both are
// requested.
func (s *Sink) RenderPath(path *quill.Path, stroke, fill bool, rule quill.FillRule) error {
	if fill && rule == quill.FillRuleEvenOdd {
		quill.Logger().Debug("quill: raster backend rejecting even-odd fill")
		return fmt.Errorf("%w: even-odd fill in raster backend", quill.ErrUnsupported)
	}
	if !stroke && !fill {
		return fmt.Errorf("%w: path painted with neither stroke nor fill", quill.ErrInvalidStyle)
	}

	dev := path.Transform(s.state.ctm)

	if fill {
		s.scanner.SetColor(s.state.fillColor.Color())
		replayPath(s.filler, dev, true)
		s.filler.Draw()
		s.filler.Clear()
	}
	if stroke {
		if err := s.applyStroke(); err != nil {
			return err
		}
		s.scanner.SetColor(s.state.strokeColor.Color())
		replayPath(s.dasher, dev, false)
		s.dasher.Draw()
		s.dasher.Clear()
	}
	return nil
}

// replayPath feeds a path into a rasterx adder. forceClose closes every
// subpath, which fills require; strokes keep open subpaths open.
func replayPath(adder rasterx.Adder, p *quill.Path, forceClose bool) {
	open := false
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case quill.MoveTo:
			if open {
				adder.Stop(forceClose)
			}
			adder.Start(toFixed(e.Point))
			open = true
		case quill.LineTo:
			adder.Line(toFixed(e.Point))
		case quill.CubicTo:
			adder.CubeBezier(toFixed(e.Control1), toFixed(e.Control2), toFixed(e.Point))
		case quill.Close:
			adder.Stop(true)
			open = false
		}
	}
	if open {
		adder.Stop(forceClose)
	}
}

func toFixed(p quill.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}

// applyStroke configures the dasher from the current stroke parameters,
// scaled into device space.
func (s *Sink) applyStroke() error {
	st := s.state.stroke
	capFn, gapFn, err := capFuncOf(st.Cap)
	if err != nil {
		return err
	}
	join, err := joinModeOf(st.Join)
	if err != nil {
		return err
	}

	sf := s.state.ctm.ScaleFactor()
	var dashes []float64
	var offset float64
	if st.IsDashed() {
		dashes = make([]float64, len(st.Dash.Lengths))
		for i, l := range st.Dash.Lengths {
			dashes[i] = l * sf
		}
		offset = st.Dash.Phase * sf
	}

	s.dasher.SetStroke(
		fixed.Int26_6(st.Width*sf*64), fixed.Int26_6(st.MiterLimit*64),
		capFn, capFn, gapFn, join, dashes, offset,
	)
	return nil
}

// capFuncOf maps a line cap to rasterx's cap and gap functions, with an
// explicit error branch for unknown values.
func capFuncOf(c quill.LineCap) (rasterx.CapFunc, rasterx.GapFunc, error) {
	switch c {
	case quill.LineCapButt:
		return rasterx.ButtCap, rasterx.FlatGap, nil
	case quill.LineCapRound:
		return rasterx.RoundCap, rasterx.RoundGap, nil
	case quill.LineCapSquare:
		return rasterx.SquareCap, rasterx.FlatGap, nil
	}
	return nil, nil, fmt.Errorf("%w: line cap %d", quill.ErrInvalidStyle, c)
}

// joinModeOf maps a line join to rasterx's join mode, with an explicit
// error branch for unknown values.
func joinModeOf(j quill.LineJoin) (rasterx.JoinMode, error) {
	switch j {
	case quill.LineJoinMiter:
		return rasterx.Miter, nil
	case quill.LineJoinRound:
		return rasterx.Round, nil
	case quill.LineJoinBevel:
		return rasterx.Bevel, nil
	}
	return 0, fmt.Errorf("%w: line join %d", quill.ErrInvalidStyle, j)
}

// SetStrokeColor stores the stroke color for later paints.
func (s *Sink) SetStrokeColor(c quill.RGBA) error {
	s.state.strokeColor = c
	return nil
}

// SetFillColor stores the fill color for later paints.
func (s *Sink) SetFillColor(c quill.RGBA) error {
	s.state.fillColor = c
	return nil
}

// SetStrokeStyle stores the stroke parameters for later paints.
func (s *Sink) SetStrokeStyle(st quill.Stroke) error {
	if _, _, err := capFuncOf(st.Cap); err != nil {
		return err
	}
	if _, err := joinModeOf(st.Join); err != nil {
		return err
	}
	s.state.stroke = st.Clone()
	return nil
}

// ClipRect intersects the clip with the device-space bounding box of
// the rectangle. The scanner clips to pixel rectangles only, so a
// rotated clip rectangle degrades to its bounding box.
func (s *Sink) ClipRect(x, y, w, h float64) error {
	r := s.deviceBounds(x, y, w, h)
	s.state.clip = s.state.clip.Intersect(r)
	s.scanner.SetClip(s.state.clip)
	return nil
}

// ClipPath is not supported: the scanner has no mask-based clipping.
func (s *Sink) ClipPath(*quill.Path, quill.FillRule) error {
	quill.Logger().Debug("quill: raster backend rejecting path clip")
	return fmt.Errorf("%w: path clipping in raster backend", quill.ErrUnsupported)
}

// ClearRect resets the device-space bounding box of the rectangle to
// transparent.
func (s *Sink) ClearRect(x, y, w, h float64) error {
	r := s.deviceBounds(x, y, w, h).Intersect(s.state.clip)
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
	return nil
}

// deviceBounds maps a user-space rectangle through the accumulated
// transform and returns its integer pixel bounding box.
func (s *Sink) deviceBounds(x, y, w, h float64) image.Rectangle {
	corners := [4]quill.Point{
		s.state.ctm.TransformPoint(quill.Pt(x, y)),
		s.state.ctm.TransformPoint(quill.Pt(x+w, y)),
		s.state.ctm.TransformPoint(quill.Pt(x+w, y+h)),
		s.state.ctm.TransformPoint(quill.Pt(x, y+h)),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
}

// SetFont stores the font selection. The rasterizer draws with a
// fixed-size bitmap face, so only the face name is recorded; the point
// size has no effect on output.
func (s *Sink) SetFont(name string, size float64) error {
	s.state.font = quill.Font{Face: name, Size: size}
	return nil
}

// DrawText draws text with the bitmap face, baseline at the
// device-space image of (x, y). Glyphs are confined to the active
// clip rectangle.
func (s *Sink) DrawText(text string, x, y float64) error {
	p := s.state.ctm.TransformPoint(quill.Pt(x, y))
	d := &font.Drawer{
		Dst:  s.img.SubImage(s.state.clip).(*image.RGBA),
		Src:  image.NewUniform(s.state.fillColor.Color()),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(p.X)), int(math.Round(p.Y))),
	}
	d.DrawString(text)
	return nil
}

// BeginPage clears the pixel buffer to transparent.
func (s *Sink) BeginPage() error {
	quill.Logger().Debug("quill: raster buffer cleared for new page")
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	return nil
}

// EndPage is a no-op; the pixel buffer is always current.
func (s *Sink) EndPage() error {
	return nil
}

// Flush is a no-op; the pixel buffer is always current.
func (s *Sink) Flush() error {
	return nil
}
