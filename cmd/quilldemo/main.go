// Command quilldemo demonstrates the quill 2D drawing engine against
// the bundled backends.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/quillgfx/quill"
	"github.com/quillgfx/quill/backend"
	"github.com/quillgfx/quill/backend/pdf"
	"github.com/quillgfx/quill/backend/raster"
	_ "github.com/quillgfx/quill/backend/recorder"
)

func main() {
	var (
		name   = flag.String("backend", backend.BackendPDF, "backend to render with (pdf, raster)")
		width  = flag.Int("width", 612, "surface width (pixels, or points for pdf)")
		height = flag.Int("height", 792, "surface height (pixels, or points for pdf)")
		output = flag.String("output", "", "output file (default demo.pdf or demo.png)")
	)
	flag.Parse()

	sink, err := backend.New(*name, backend.Config{Width: *width, Height: *height})
	if err != nil {
		log.Fatalf("Backend %q: %v", *name, err)
	}

	dc := quill.NewContext(sink)

	drawShapes(dc)
	drawTransforms(dc)
	drawCurves(dc)
	drawText(dc)

	if err := dc.Close(); err != nil {
		log.Fatalf("Close: %v", err)
	}

	path := *output
	switch s := sink.(type) {
	case *pdf.Sink:
		if path == "" {
			path = "demo.pdf"
		}
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("Create %s: %v", path, err)
		}
		if err := s.Output(f); err != nil {
			log.Fatalf("Write PDF: %v", err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("Close %s: %v", path, err)
		}
	case *raster.Sink:
		if path == "" {
			path = "demo.png"
		}
		if err := s.SavePNG(path); err != nil {
			log.Fatalf("Write PNG: %v", err)
		}
	default:
		log.Fatalf("Backend %q has no file output", *name)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", path, *width, *height)
}

func check(err error) {
	if err != nil {
		log.Fatalf("Draw: %v", err)
	}
}

func drawShapes(dc *quill.Context) {
	// Filled and stroked rectangles.
	check(dc.SetFillColor(quill.RGB(1, 0.8, 0)))
	check(dc.FillRect(quill.R(50, 60, 120, 80)))

	check(dc.SetStrokeColor(quill.RGB(0.2, 0.2, 0.8)))
	check(dc.SetLineWidth(4))
	check(dc.StrokeRect(quill.R(50, 60, 120, 80)))

	// A dashed open polyline.
	check(dc.SetLineDash([]float64{8, 4}, 0))
	dc.BeginPath()
	check(dc.Lines([]quill.Point{
		quill.Pt(220, 60), quill.Pt(280, 140), quill.Pt(340, 60), quill.Pt(400, 140),
	}))
	check(dc.StrokePath())
	check(dc.SetLineDash(nil, 0))
}

func drawTransforms(dc *quill.Context) {
	err := dc.WithState(func(dc *quill.Context) error {
		if err := dc.Translate(300, 300); err != nil {
			return err
		}
		for i := 0; i < 8; i++ {
			t := float64(i) / 8
			if err := dc.SetFillColor(quill.RGB(0.2+t*0.8, 0.3, 1-t*0.8)); err != nil {
				return err
			}
			err := dc.WithState(func(dc *quill.Context) error {
				if err := dc.Rotate(float64(i) * math.Pi / 4); err != nil {
					return err
				}
				return dc.FillRect(quill.R(40, -12, 80, 24))
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	check(err)
}

func drawCurves(dc *quill.Context) {
	check(dc.SetStrokeColor(quill.RGB(0.8, 0.3, 0)))
	check(dc.SetLineWidth(3))
	check(dc.SetLineCap(quill.LineCapRound))

	dc.BeginPath()
	dc.MoveTo(50, 500)
	check(dc.CurveTo(100, 440, 150, 560, 200, 500))
	check(dc.CurveTo(250, 460, 300, 540, 350, 500))
	check(dc.StrokePath())

	// Full circle from two arcs.
	check(dc.SetFillColor(quill.RGB(0.1, 0.6, 0.3)))
	dc.BeginPath()
	dc.Arc(460, 500, 45, 0, math.Pi, false)
	dc.Arc(460, 500, 45, math.Pi, 2*math.Pi, false)
	check(dc.ClosePath())
	check(dc.FillPath())
}

func drawText(dc *quill.Context) {
	check(dc.SetFillColor(quill.Black))
	check(dc.SelectFont("Helvetica-Bold", 18))
	check(dc.ShowTextAt("quill demo", 50, 640))

	check(dc.SelectFont("Helvetica", 12))
	w, _, _, _ := dc.FullTextExtent("immediate-mode 2D vector drawing")
	check(dc.ShowTextAt("immediate-mode 2D vector drawing", 50, 660))

	// Underline sized from the measured extent.
	check(dc.SetLineWidth(1))
	check(dc.SetStrokeColor(quill.RGB(0.4, 0.4, 0.4)))
	dc.BeginPath()
	dc.MoveTo(50, 663)
	check(dc.LineTo(50+w, 663))
	check(dc.StrokePath())
}
