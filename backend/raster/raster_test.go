package raster

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"strings"
	"testing"

	"github.com/quillgfx/quill"
	"github.com/quillgfx/quill/backend"
)

// alphaAt returns the 8-bit alpha of the pixel at (x, y).
func alphaAt(s *Sink, x, y int) uint8 {
	return s.Image().RGBAAt(x, y).A
}

func TestFillRectPaintsPixels(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.SetFillColor(quill.Red); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(quill.R(10, 10, 40, 40)); err != nil {
		t.Fatal(err)
	}

	px := sink.Image().RGBAAt(30, 30)
	if px.A == 0 || px.R < 200 {
		t.Errorf("pixel inside fill = %+v, want opaque red", px)
	}
	if a := alphaAt(sink, 80, 80); a != 0 {
		t.Errorf("pixel outside fill has alpha %d, want 0", a)
	}
}

func TestTransformAppliesToPaths(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.SetFillColor(quill.Blue); err != nil {
		t.Fatal(err)
	}
	if err := dc.Translate(50, 50); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(quill.R(0, 0, 20, 20)); err != nil {
		t.Fatal(err)
	}

	if a := alphaAt(sink, 60, 60); a == 0 {
		t.Error("translated fill missing at device (60,60)")
	}
	if a := alphaAt(sink, 10, 10); a != 0 {
		t.Error("fill painted at untranslated origin")
	}
}

func TestSaveRestoreScopesTransform(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	err := dc.WithState(func(dc *quill.Context) error {
		return dc.Translate(50, 0)
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := dc.SetFillColor(quill.Green); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(quill.R(0, 0, 20, 20)); err != nil {
		t.Fatal(err)
	}

	if a := alphaAt(sink, 10, 10); a == 0 {
		t.Error("fill after restore should land at the origin")
	}
	if a := alphaAt(sink, 60, 10); a != 0 {
		t.Error("restored transform still translating")
	}
}

func TestStrokePaintsPixels(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.SetStrokeColor(quill.Black); err != nil {
		t.Fatal(err)
	}
	if err := dc.SetLineWidth(4); err != nil {
		t.Fatal(err)
	}
	dc.MoveTo(10, 50)
	if err := dc.LineTo(90, 50); err != nil {
		t.Fatal(err)
	}
	if err := dc.StrokePath(); err != nil {
		t.Fatal(err)
	}

	if a := alphaAt(sink, 50, 50); a == 0 {
		t.Error("stroked line missing at its midpoint")
	}
	if a := alphaAt(sink, 50, 20); a != 0 {
		t.Error("stroke painted far from the line")
	}
}

func TestEvenOddFillUnsupported(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	dc.Rect(0, 0, 50, 50)
	if err := dc.EOFFillPath(); !errors.Is(err, quill.ErrUnsupported) {
		t.Errorf("EOFFillPath = %v, want ErrUnsupported", err)
	}
}

func TestClipRectLimitsPainting(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.ClipToRect(0, 0, 30, 30); err != nil {
		t.Fatal(err)
	}
	if err := dc.SetFillColor(quill.Red); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(quill.R(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}

	if a := alphaAt(sink, 10, 10); a == 0 {
		t.Error("fill missing inside the clip")
	}
	if a := alphaAt(sink, 60, 60); a != 0 {
		t.Error("fill escaped the clip rectangle")
	}
}

func TestClipPathUnsupported(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	dc.Rect(0, 0, 50, 50)
	if err := dc.Clip(); !errors.Is(err, quill.ErrUnsupported) {
		t.Errorf("Clip = %v, want ErrUnsupported", err)
	}
}

func TestUnsupportedClipLoggedAtDebug(t *testing.T) {
	var buf bytes.Buffer
	quill.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer quill.SetLogger(nil)

	sink := New(100, 100)
	dc := quill.NewContext(sink)
	dc.Rect(0, 0, 50, 50)
	if err := dc.Clip(); !errors.Is(err, quill.ErrUnsupported) {
		t.Fatalf("Clip = %v, want ErrUnsupported", err)
	}

	if !strings.Contains(buf.String(), "path clip") {
		t.Errorf("log output %q should mention the rejected path clip", buf.String())
	}
}

func TestClearRect(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.SetFillColor(quill.Red); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(quill.R(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := dc.ClearRect(quill.R(40, 40, 20, 20)); err != nil {
		t.Fatal(err)
	}

	if a := alphaAt(sink, 50, 50); a != 0 {
		t.Errorf("cleared pixel has alpha %d, want 0", a)
	}
	if a := alphaAt(sink, 10, 10); a == 0 {
		t.Error("clear erased pixels outside the rectangle")
	}
}

func TestBeginPageClearsBuffer(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.FillRect(quill.R(0, 0, 100, 100)); err != nil {
		t.Fatal(err)
	}
	if err := dc.BeginPage(); err != nil {
		t.Fatal(err)
	}
	if a := alphaAt(sink, 50, 50); a != 0 {
		t.Error("BeginPage should clear the pixel buffer")
	}
}

func TestDrawTextPaintsPixels(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.SetFillColor(quill.Black); err != nil {
		t.Fatal(err)
	}
	if err := dc.ShowTextAt("Hi", 10, 50); err != nil {
		t.Fatal(err)
	}

	found := false
	for y := 35; y < 55 && !found; y++ {
		for x := 10; x < 30 && !found; x++ {
			if alphaAt(sink, x, y) != 0 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no text pixels painted near the baseline origin")
	}
}

func TestDrawTextHonorsClip(t *testing.T) {
	sink := New(100, 100)
	dc := quill.NewContext(sink)

	if err := dc.ClipToRect(0, 0, 20, 20); err != nil {
		t.Fatal(err)
	}
	if err := dc.SetFillColor(quill.Black); err != nil {
		t.Fatal(err)
	}
	if err := dc.ShowTextAt("Hi", 50, 60); err != nil {
		t.Fatal(err)
	}

	for y := 40; y < 70; y++ {
		for x := 45; x < 75; x++ {
			if a := alphaAt(sink, x, y); a != 0 {
				t.Fatalf("text escaped the clip at (%d, %d), alpha %d", x, y, a)
			}
		}
	}

	// Text at the origin still paints inside the clip.
	if err := dc.ShowTextAt("Hi", 2, 15); err != nil {
		t.Fatal(err)
	}
	found := false
	for y := 0; y < 20 && !found; y++ {
		for x := 0; x < 20 && !found; x++ {
			if alphaAt(sink, x, y) != 0 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no text pixels painted inside the clip")
	}
}

func TestEncodePNG(t *testing.T) {
	sink := New(32, 32)
	var buf bytes.Buffer
	if err := sink.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("decoded bounds = %v, want 32x32", b)
	}
}

func TestScaledStrokeWidth(t *testing.T) {
	sink := New(200, 200)
	dc := quill.NewContext(sink)

	if err := dc.Scale(4, 4); err != nil {
		t.Fatal(err)
	}
	if err := dc.SetLineWidth(2); err != nil {
		t.Fatal(err)
	}
	dc.MoveTo(5, 25)
	if err := dc.LineTo(45, 25); err != nil {
		t.Fatal(err)
	}
	if err := dc.StrokePath(); err != nil {
		t.Fatal(err)
	}

	// 2 user units at 4x scale is 8 device pixels wide; a point 3 pixels
	// off the centerline (device y=100) is still inside the stroke.
	if a := alphaAt(sink, 100, 103); a == 0 {
		t.Error("scaled stroke should cover 8 device pixels of width")
	}
	if a := alphaAt(sink, 100, 110); a != 0 {
		t.Error("scaled stroke wider than expected")
	}
}

func TestRegisteredWithBackendRegistry(t *testing.T) {
	sink, err := backend.New(backend.BackendRaster, backend.Config{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("backend.New(raster) = %v", err)
	}
	rs, ok := sink.(*Sink)
	if !ok {
		t.Fatalf("backend.New returned %T, want *Sink", sink)
	}
	if b := rs.Image().Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("image bounds = %v, want 64x64", b)
	}
}
