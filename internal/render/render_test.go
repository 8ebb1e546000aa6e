package render

import (
	"bytes"
	"fortune_wheel/internal/wheel"
	"image"
	"image/color"
	"image/png"
	"testing"
)

var testColors = []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00"}

func newFrame(t *testing.T, angle float64) Frame {
	t.Helper()
	cfg := wheel.Config{
		Rewards:     []string{"A", "B", "C", "D"},
		Colors:      testColors,
		Width:       400,
		InnerRadius: 100,
	}.WithDefaults()
	segs, err := wheel.Partition(cfg)
	if err != nil {
		t.Fatal(err)
	}
	solver, err := wheel.NewSolver(len(segs))
	if err != nil {
		t.Fatal(err)
	}
	return Frame{Config: cfg, Segments: segs, Solver: solver, Angle: angle}
}

func closeTo(c color.Color, hex string) bool {
	r, g, b, _ := c.RGBA()
	want := color.RGBAModel.Convert(hexColor(hex)).(color.RGBA)
	diff := func(a uint32, b uint8) int {
		d := int(a>>8) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	return diff(r, want.R) <= 2 && diff(g, want.G) <= 2 && diff(b, want.B) <= 2
}

func hexColor(hex string) color.Color {
	var r, g, b uint8
	for i, p := range []*uint8{&r, &g, &b} {
		v := hex[1+2*i : 3+2*i]
		for _, ch := range v {
			*p <<= 4
			switch {
			case ch >= '0' && ch <= '9':
				*p |= uint8(ch - '0')
			case ch >= 'a' && ch <= 'f':
				*p |= uint8(ch-'a') + 10
			}
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func TestKnobPointsAtNearestSegment(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name  string
		angle float64
	}{
		{"rest", 0},
		{"settled on C", 545},
		{"counter-clockwise", -635},
		{"mid spin", 1234.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFrame(t, tt.angle)
			img, err := r.Image(f)
			if err != nil {
				t.Fatal(err)
			}
			want := testColors[f.Solver.NearestSegment(tt.angle)]
			// Just outside the hub, straight up from the centre.
			px := img.At(200, 200-110)
			if !closeTo(px, want) {
				t.Errorf("pixel under the knob = %v, want %s", px, want)
			}
		})
	}
}

func TestHubShowsBackground(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	img, err := r.Image(newFrame(t, 0))
	if err != nil {
		t.Fatal(err)
	}
	if px := img.At(200, 200); !closeTo(px, "#ffffff") {
		t.Errorf("hub pixel = %v, want background", px)
	}
}

func TestPNGEncodes(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.PNG(&buf, newFrame(t, 90)); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 400, 400) {
		t.Errorf("bounds = %v, want 400x400", got)
	}
}

func TestDrawWithoutSegments(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Image(Frame{}); err == nil {
		t.Error("drawing an empty frame succeeded")
	}
}

func TestIsBold(t *testing.T) {
	tests := map[string]bool{
		"":       false,
		"normal": false,
		"bold":   true,
		"Bolder": true,
		"400":    false,
		"700":    true,
	}
	for in, want := range tests {
		if got := isBold(in); got != want {
			t.Errorf("isBold(%q) = %v, want %v", in, got, want)
		}
	}
}
