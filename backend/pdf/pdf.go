// Package pdf provides a quill sink that writes PDF documents by
// wrapping github.com/jung-kurt/gofpdf.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/quillgfx/quill"
	"github.com/quillgfx/quill/backend"
)

func init() {
	backend.Register(backend.BackendPDF, func(cfg backend.Config) (quill.Sink, error) {
		return New(float64(cfg.Width), float64(cfg.Height)), nil
	})
}

// blockKind tracks the q/Q-scoped blocks gofpdf opens on our behalf, so
// PopState can close them in reverse order of opening.
type blockKind int

const (
	blockTransform blockKind = iota
	blockClip
)

// Sink writes drawing commands into a PDF document. Pages are real PDF
// pages; Flush reports any error gofpdf has accumulated, and Output
// writes the finished document.
//
/// Limitations of the underlying writer: even-odd fills and non-polygonal
// clip paths are not expressible through gofpdf's public API and report
// quill.ErrUnsupported; color alpha is ignored.
type Sink struct {
	pdf *gofpdf.Fpdf

	// q/Q blocks opened since the last PushState, oldest first.
	open []blockKind
	// One entry per outstanding PushState.
	saved [][]blockKind

	font quill.Font
}

// Interface conformance.
var (
	_ quill.Sink         = (*Sink)(nil)
	_ quill.StrokeStyler = (*Sink)(nil)
	_ quill.Clipper      = (*Sink)(nil)
	_ quill.TextMeasurer = (*Sink)(nil)
)

// New creates a PDF sink with the given page size in points.
// Zero dimensions select A4 portrait.
func New(width, height float64) *Sink {
	var doc *gofpdf.Fpdf
	if width > 0 && height > 0 {
		doc = gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           gofpdf.SizeType{Wd: width, Ht: height},
		})
	} else {
		doc = gofpdf.New("P", "pt", "A4", "")
	}

	s := &Sink{pdf: doc, font: quill.Font{Face: quill.DefaultFace, Size: 12}}
	doc.AddPage()
	s.applyFont(s.font)
	return s
}

// Doc exposes the underlying gofpdf document for advanced use.
func (s *Sink) Doc() *gofpdf.Fpdf {
	return s.pdf
}

// Output writes the finished document to w.
func (s *Sink) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

// ApplyTransform concatenates m onto the page coordinate system.
// gofpdf scopes transforms in q/Q blocks, so the block stays open until
// the enclosing PopState or EndPage.
func (s *Sink) ApplyTransform(m quill.Matrix) error {
	s.pdf.TransformBegin()
	s.pdf.Transform(gofpdf.TransformMatrix{
		A: m.A, B: m.D, C: m.B, D: m.E, E: m.C, F: m.F,
	})
	s.open = append(s.open, blockTransform)
	return s.pdf.Error()
}

// PushState opens a graphics-state block (PDF q operator).
func (s *Sink) PushState() error {
	s.pdf.TransformBegin()
	s.saved = append(s.saved, s.open)
	s.open = nil
	return s.pdf.Error()
}

// PopState closes the blocks opened since the matching PushState, then
// the state block itself.
func (s *Sink) PopState() error {
	s.closeOpenBlocks()
	s.pdf.TransformEnd()
	if n := len(s.saved); n > 0 {
		s.open = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
	return s.pdf.Error()
}

func (s *Sink) closeOpenBlocks() {
	for i := len(s.open) - 1; i >= 0; i-- {
		switch s.open[i] {
		case blockTransform:
			s.pdf.TransformEnd()
		case blockClip:
			s.pdf.ClipEnd()
		}
	}
	s.open = nil
}

// RenderPath replays the path into gofpdf's path builder and paints it.
func (s *Sink) RenderPath(path *quill.Path, stroke, fill bool, rule quill.FillRule) error {
	if fill && rule == quill.FillRuleEvenOdd {
		quill.Logger().Debug("quill: pdf backend rejecting even-odd fill")
		return fmt.Errorf("%w: even-odd fill in PDF backend", quill.ErrUnsupported)
	}
	style, err := pathStyle(stroke, fill)
	if err != nil {
		return err
	}

	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case quill.MoveTo:
			s.pdf.MoveTo(e.Point.X, e.Point.Y)
		case quill.LineTo:
			s.pdf.LineTo(e.Point.X, e.Point.Y)
		case quill.CubicTo:
			s.pdf.CurveBezierCubicTo(
				e.Control1.X, e.Control1.Y,
				e.Control2.X, e.Control2.Y,
				e.Point.X, e.Point.Y,
			)
		case quill.Close:
			s.pdf.ClosePath()
		}
	}
	s.pdf.DrawPath(style)
	return s.pdf.Error()
}

// pathStyle maps paint flags to a gofpdf DrawPath style string.
func pathStyle(stroke, fill bool) (string, error) {
	switch {
	case stroke && fill:
		return "FD", nil
	case fill:
		return "F", nil
	case stroke:
		return "D", nil
	}
	return "", fmt.Errorf("%w: path painted with neither stroke nor fill", quill.ErrInvalidStyle)
}

// SetStrokeColor sets the stroke color. Alpha is ignored by the PDF
// writer.
func (s *Sink) SetStrokeColor(c quill.RGBA) error {
	s.pdf.SetDrawColor(colorByte(c.R), colorByte(c.G), colorByte(c.B))
	return s.pdf.Error()
}

// SetFillColor sets the fill and text color. Alpha is ignored by the
// PDF writer.
func (s *Sink) SetFillColor(c quill.RGBA) error {
	s.pdf.SetFillColor(colorByte(c.R), colorByte(c.G), colorByte(c.B))
	s.pdf.SetTextColor(colorByte(c.R), colorByte(c.G), colorByte(c.B))
	return s.pdf.Error()
}

func colorByte(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v*255 + 0.5)
}

// SetStrokeStyle applies line width, cap, join and dash pattern.
// The miter limit is not adjustable through gofpdf and keeps the PDF
// default of 10.
func (s *Sink) SetStrokeStyle(st quill.Stroke) error {
	capStyle, err := capStyleOf(st.Cap)
	if err != nil {
		return err
	}
	joinStyle, err := joinStyleOf(st.Join)
	if err != nil {
		return err
	}

	s.pdf.SetLineWidth(st.Width)
	s.pdf.SetLineCapStyle(capStyle)
	s.pdf.SetLineJoinStyle(joinStyle)
	if st.IsDashed() {
		s.pdf.SetDashPattern(st.Dash.Lengths, st.Dash.Phase)
	} else {
		s.pdf.SetDashPattern([]float64{}, 0)
	}
	return s.pdf.Error()
}

// capStyleOf maps a line cap to gofpdf's style string, with an explicit
// error branch for unknown values.
func capStyleOf(c quill.LineCap) (string, error) {
	switch c {
	case quill.LineCapButt:
		return "butt", nil
	case quill.LineCapRound:
		return "round", nil
	case quill.LineCapSquare:
		return "square", nil
	}
	return "", fmt.Errorf("%w: line cap %d", quill.ErrInvalidStyle, c)
}

// joinStyleOf maps a line join to gofpdf's style string, with an
// explicit error branch for unknown values.
func joinStyleOf(j quill.LineJoin) (string, error) {
	switch j {
	case quill.LineJoinMiter:
		return "miter", nil
	case quill.LineJoinRound:
		return "round", nil
	case quill.LineJoinBevel:
		return "bevel", nil
	}
	return "", fmt.Errorf("%w: line join %d", quill.ErrInvalidStyle, j)
}

// ClipPath intersects the clip region with a path. gofpdf exposes only
// polygonal clipping, so paths containing curves report
// quill.ErrUnsupported.
func (s *Sink) ClipPath(path *quill.Path, rule quill.FillRule) error {
	if rule == quill.FillRuleEvenOdd {
		return fmt.Errorf("%w: even-odd clip in PDF backend", quill.ErrUnsupported)
	}

	var points []gofpdf.PointType
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case quill.MoveTo:
			points = append(points, gofpdf.PointType{X: e.Point.X, Y: e.Point.Y})
		case quill.LineTo:
			points = append(points, gofpdf.PointType{X: e.Point.X, Y: e.Point.Y})
		case quill.Close:
			// ClipPolygon closes implicitly.
		default:
			quill.Logger().Debug("quill: pdf backend rejecting curved clip path")
			return fmt.Errorf("%w: curved clip path in PDF backend", quill.ErrUnsupported)
		}
	}
	if len(points) < 3 {
		return fmt.Errorf("%w: clip path needs at least 3 points", quill.ErrUnsupported)
	}

	s.pdf.ClipPolygon(points, false)
	s.open = append(s.open, blockClip)
	return s.pdf.Error()
}

// ClipRect intersects the clip region with a rectangle.
func (s *Sink) ClipRect(x, y, w, h float64) error {
	s.pdf.ClipRect(x, y, w, h, false)
	s.open = append(s.open, blockClip)
	return s.pdf.Error()
}

// SetFont selects a core PDF face. Face names follow the
// "Family-Style" convention ("Helvetica-Bold", "Times-Italic");
// unknown families fall back to Helvetica.
func (s *Sink) SetFont(name string, size float64) error {
	s.font = quill.Font{Face: name, Size: size}
	s.applyFont(s.font)
	return s.pdf.Error()
}

func (s *Sink) applyFont(f quill.Font) {
	family, style := splitFace(f.Face)
	s.pdf.SetFont(family, style, f.Size)
}

// splitFace maps a face name to a gofpdf family and style string.
func splitFace(face string) (family, style string) {
	family = face
	if i := strings.IndexByte(face, '-'); i >= 0 {
		family = face[:i]
		suffix := face[i+1:]
		if strings.Contains(suffix, "Bold") {
			style += "B"
		}
		if strings.Contains(suffix, "Oblique") || strings.Contains(suffix, "Italic") {
			style += "I"
		}
	}
	switch strings.ToLower(family) {
	case "helvetica", "times", "courier":
		return family, style
	default:
		return "Helvetica", style
	}
}

// DrawText places text with its baseline origin at (x, y).
func (s *Sink) DrawText(text string, x, y float64) error {
	s.pdf.Text(x, y, text)
	return s.pdf.Error()
}

// MeasureText returns the exact width of text using the writer's
// embedded font width tables. Measuring never changes the font used
// for subsequent DrawText calls.
func (s *Sink) MeasureText(text string, f quill.Font) (float64, error) {
	if f == s.font {
		return s.pdf.GetStringWidth(text), s.pdf.Error()
	}
	s.applyFont(f)
	w := s.pdf.GetStringWidth(text)
	s.applyFont(s.font)
	return w, s.pdf.Error()
}

// BeginPage closes any open drawing blocks and starts a new page.
func (s *Sink) BeginPage() error {
	s.closeOpenBlocks()
	s.pdf.AddPage()
	quill.Logger().Debug("quill: pdf page started", "page", s.pdf.PageCount())
	s.applyFont(s.font)
	return s.pdf.Error()
}

// EndPage closes the drawing blocks opened on the current page.
// Interleaving page boundaries with outstanding PushState calls is not
// supported; restore saved states before ending the page.
func (s *Sink) EndPage() error {
	s.closeOpenBlocks()
	return s.pdf.Error()
}

// Flush reports any error the writer has accumulated. The document
// itself is buffered until Output.
func (s *Sink) Flush() error {
	return s.pdf.Error()
}
