package recorder

import (
	"errors"
	"testing"

	"github.com/quillgfx/quill"
	"github.com/quillgfx/quill/backend"
)

func TestTriangleFillRecordsSingleRender(t *testing.T) {
	rec := New()
	dc := quill.NewContext(rec)

	if err := dc.SetFillColor(quill.Red); err != nil {
		t.Fatal(err)
	}
	dc.BeginPath()
	dc.MoveTo(0, 0)
	if err := dc.LineTo(100, 0); err != nil {
		t.Fatal(err)
	}
	if err := dc.LineTo(100, 100); err != nil {
		t.Fatal(err)
	}
	if err := dc.ClosePath(); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillPath(); err != nil {
		t.Fatal(err)
	}
	if err := dc.Close(); err != nil {
		t.Fatal(err)
	}

	renders := rec.Ops(OpRenderPath)
	if len(renders) != 1 {
		t.Fatalf("recorded %d RenderPath commands, want 1", len(renders))
	}
	r := renders[0]
	if r.Stroke || !r.Fill || r.Rule != quill.FillRuleNonZero {
		t.Errorf("render = stroke=%v fill=%v rule=%v, want fill-only non-zero", r.Stroke, r.Fill, r.Rule)
	}
	if r.Path == nil || len(r.Path.Elements()) != 4 {
		t.Errorf("recorded path has %d elements, want move+2 lines+close", len(r.Path.Elements()))
	}
}

func TestRecorderCapturesSessionOrder(t *testing.T) {
	rec := New()
	dc := quill.NewContext(rec)

	if err := dc.SaveState(); err != nil {
		t.Fatal(err)
	}
	if err := dc.Translate(10, 0); err != nil {
		t.Fatal(err)
	}
	if err := dc.FillRect(quill.R(0, 0, 5, 5)); err != nil {
		t.Fatal(err)
	}
	if err := dc.RestoreState(); err != nil {
		t.Fatal(err)
	}

	want := []Op{OpPushState, OpApplyTransform, OpRenderPath, OpPopState}
	cmds := rec.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("recorded %d commands, want %d", len(cmds), len(want))
	}
	for i, op := range want {
		if cmds[i].Op != op {
			t.Errorf("command %d = %s, want %s", i, cmds[i].Op, op)
		}
	}
}

func TestRecorderNoTextMeasurer(t *testing.T) {
	// The recorder deliberately leaves text measurement to the engine so
	// the built-in metrics are exercised.
	var sink quill.Sink = New()
	if _, ok := sink.(quill.TextMeasurer); ok {
		t.Error("Recorder must not implement TextMeasurer")
	}
}

func TestReplay(t *testing.T) {
	rec := New()
	dc := quill.NewContext(rec)

	if err := dc.SetStrokeColor(quill.Blue); err != nil {
		t.Fatal(err)
	}
	if err := dc.SetLineWidth(2); err != nil {
		t.Fatal(err)
	}
	dc.MoveTo(0, 0)
	if err := dc.LineTo(50, 50); err != nil {
		t.Fatal(err)
	}
	if err := dc.StrokePath(); err != nil {
		t.Fatal(err)
	}

	target := New()
	if err := rec.Replay(target); err != nil {
		t.Fatalf("Replay: %v", err)
	}

	src, dst := rec.Commands(), target.Commands()
	if len(dst) != len(src) {
		t.Fatalf("replayed %d commands, want %d", len(dst), len(src))
	}
	for i := range src {
		if dst[i].Op != src[i].Op {
			t.Errorf("command %d = %s, want %s", i, dst[i].Op, src[i].Op)
		}
	}
}

func TestReset(t *testing.T) {
	rec := New()
	if err := rec.BeginPage(); err != nil {
		t.Fatal(err)
	}
	rec.Reset()
	if len(rec.Commands()) != 0 {
		t.Errorf("Reset left %d commands", len(rec.Commands()))
	}
}

func TestRegisteredWithBackendRegistry(t *testing.T) {
	sink, err := backend.New(backend.BackendRecorder, backend.Config{})
	if err != nil {
		t.Fatalf("backend.New(recorder) = %v", err)
	}
	if _, ok := sink.(*Recorder); !ok {
		t.Errorf("backend.New returned %T, want *Recorder", sink)
	}
}

func TestStrokeStyleRecorded(t *testing.T) {
	rec := New()
	dc := quill.NewContext(rec)
	if err := dc.SetLineDash([]float64{4, 2}, 1); err != nil {
		t.Fatal(err)
	}
	styles := rec.Ops(OpStrokeStyle)
	if len(styles) != 1 {
		t.Fatalf("recorded %d stroke styles, want 1", len(styles))
	}
	if !styles[0].Style.IsDashed() {
		t.Error("recorded stroke style should be dashed")
	}
}

func TestUnsupportedNeverSilent(t *testing.T) {
	// The recorder implements clipping and clearing, so those succeed;
	// a session-level capability the engine itself lacks still errors.
	dc := quill.NewContext(New())
	if err := dc.SetAlpha(0.5); !errors.Is(err, quill.ErrUnsupported) {
		t.Errorf("SetAlpha = %v, want ErrUnsupported", err)
	}
}
