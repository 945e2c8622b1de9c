package quill

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func matrixNear(a, b Matrix) bool {
	return math.Abs(a.A-b.A) < epsilon && math.Abs(a.B-b.B) < epsilon &&
		math.Abs(a.C-b.C) < epsilon && math.Abs(a.D-b.D) < epsilon &&
		math.Abs(a.E-b.E) < epsilon && math.Abs(a.F-b.F) < epsilon
}

func pointNear(a, b Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translation", Translation(10, 20), Pt(3, 4), Pt(13, 24)},
		{"scaling", Scaling(2, 3), Pt(3, 4), Pt(6, 12)},
		{"rotation 90deg", Rotation(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"rotation 180deg", Rotation(math.Pi), Pt(1, 0), Pt(-1, 0)},
		{"translate after scale", Translation(5, 0).Multiply(Scaling(2, 2)), Pt(1, 0), Pt(7, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.p)
			if !pointNear(got, tt.want) {
				t.Errorf("Matrix%+v.TransformPoint(%+v) = %+v, want %+v", tt.m, tt.p, got, tt.want)
			}
		})
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translation(100, 200).Multiply(Scaling(2, 3))
	got := m.TransformVector(Pt(1, 1))
	want := Pt(2, 3)
	if !pointNear(got, want) {
		t.Errorf("TransformVector(1,1) = %+v, want %+v", got, want)
	}
}

func TestMultiplyAppliesRightFirst(t *testing.T) {
	// m.Multiply(other) maps p to m(other(p)).
	s := Scaling(2, 2)
	tr := Translation(5, 0)

	got := tr.Multiply(s).TransformPoint(Pt(1, 0))
	want := Pt(7, 0)
	if !pointNear(got, want) {
		t.Errorf("T(5,0)*S(2,2) applied to (1,0) = %+v, want %+v", got, want)
	}

	// The opposite order scales the translation too.
	got = s.Multiply(tr).TransformPoint(Pt(1, 0))
	want = Pt(12, 0)
	if !pointNear(got, want) {
		t.Errorf("S(2,2)*T(5,0) applied to (1,0) = %+v, want %+v", got, want)
	}
}

func TestMultiplyIdentity(t *testing.T) {
	m := Rotation(0.7).Multiply(Translation(3, -4)).Multiply(Scaling(2, 5))
	if !matrixNear(m.Multiply(Identity()), m) {
		t.Errorf("m*I != m")
	}
	if !matrixNear(Identity().Multiply(m), m) {
		t.Errorf("I*m != m")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"translation", Translation(10, -5)},
		{"scaling", Scaling(2, 0.5)},
		{"rotation", Rotation(1.1)},
		{"composed", Translation(3, 4).Multiply(Rotation(0.5)).Multiply(Scaling(2, 3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Multiply(tt.m.Invert())
			if !matrixNear(got, Identity()) {
				t.Errorf("m * m^-1 = %+v, want identity", got)
			}
		})
	}
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	got := Scaling(0, 0).Invert()
	if !got.IsIdentity() {
		t.Errorf("Scaling(0,0).Invert() = %+v, want identity", got)
	}
}

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"translation", Translation(10, 20), 1},
		{"uniform scale", Scaling(2, 2), 2},
		{"non-uniform scale", Scaling(2, 8), 4},
		{"rotation", Rotation(math.Pi / 3), 1},
		{"rotated scale", Rotation(0.4).Multiply(Scaling(3, 3)), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.ScaleFactor()
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Matrix%+v.ScaleFactor() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translation(1, 0).IsIdentity() {
		t.Error("Translation(1,0).IsIdentity() = true")
	}
	if (Matrix{}).IsIdentity() {
		t.Error("zero matrix reported as identity")
	}
}
