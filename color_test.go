package quill

import (
	"image/color"
	"testing"
)

func TestRGBIsOpaque(t *testing.T) {
	c := RGB(0.5, 0.25, 1)
	if c.A != 1 {
		t.Errorf("RGB alpha = %v, want 1", c.A)
	}
}

func TestColorConversion(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
		want color.NRGBA
	}{
		{"black", Black, color.NRGBA{0, 0, 0, 255}},
		{"white", White, color.NRGBA{255, 255, 255, 255}},
		{"red", Red, color.NRGBA{255, 0, 0, 255}},
		{"transparent", Transparent, color.NRGBA{0, 0, 0, 0}},
		{"clamped high", RGBA{R: 2, G: 0, B: 0, A: 1}, color.NRGBA{255, 0, 0, 255}},
		{"clamped low", RGBA{R: -1, G: 0, B: 0, A: 1}, color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Color()
			if got != tt.want {
				t.Errorf("%+v.Color() = %+v, want %+v", tt.c, got, tt.want)
			}
		})
	}
}

func TestFromColorRoundTrip(t *testing.T) {
	orig := color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	c := FromColor(orig)
	back := c.Color().(color.NRGBA)
	if back != orig {
		t.Errorf("round trip = %+v, want %+v", back, orig)
	}
}
