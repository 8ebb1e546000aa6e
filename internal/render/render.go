// Package render rasterises a wheel at a given rotation with the gg software
// renderer.
package render

import (
	"fmt"
	"fortune_wheel/internal/wheel"
	"image"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// KnobColor fills the pointer triangle.
	KnobColor = "#222"
	// arcStep is the sampling step, in radians, of the reversed inner arc.
	arcStep = math.Pi / 90
)

// Frame is one picture of a wheel.
type Frame struct {
	Config   wheel.Config
	Segments []wheel.Segment
	Solver   wheel.Solver
	// Angle is the wheel rotation in degrees, as reported by the animator.
	Angle float64
}

// Renderer draws frames. It is safe for concurrent use.
type Renderer struct {
	regular *text.FontSource
	bold    *text.FontSource
}

func New() (*Renderer, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Renderer{regular: regular, bold: bold}, nil
}

// PNG draws f and encodes it to w.
func (r *Renderer) PNG(w io.Writer, f Frame) error {
	dc, err := r.draw(f)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// Image draws f and returns the raster.
func (r *Renderer) Image(f Frame) (image.Image, error) {
	dc, err := r.draw(f)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

func (r *Renderer) draw(f Frame) (*gg.Context, error) {
	cfg := f.Config.WithDefaults()
	if len(f.Segments) == 0 {
		return nil, fmt.Errorf("%w: nothing to draw", wheel.ErrState)
	}

	w, h := int(math.Ceil(cfg.Width)), int(math.Ceil(cfg.Height))
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.Transparent)

	cx, cy := float64(w)/2, float64(h)/2
	rot := radians(f.Angle - f.Solver.Offset())

	dc.SetHexColor(cfg.BackgroundColor)
	dc.DrawCircle(cx, cy, cfg.OuterRadius)
	if err := dc.Fill(); err != nil {
		return nil, err
	}

	for _, s := range f.Segments {
		if err := drawSegment(dc, s, cx, cy, rot, cfg.BackgroundColor); err != nil {
			return nil, err
		}
	}

	if cfg.BorderWidth > 0 {
		dc.SetHexColor(cfg.BorderColor)
		dc.SetLineWidth(cfg.BorderWidth)
		dc.DrawCircle(cx, cy, cfg.OuterRadius)
		if err := dc.Stroke(); err != nil {
			return nil, err
		}
	}

	dc.SetFont(r.face(cfg))
	for _, s := range f.Segments {
		drawLabel(dc, s, cx, cy, rot, cfg.TextOrientation)
	}

	if err := drawKnob(dc, cx, cy-cfg.OuterRadius, cfg.KnobSize, f.Solver.KnobTilt(f.Angle)); err != nil {
		return nil, err
	}
	return dc, nil
}

func (r *Renderer) face(cfg wheel.Config) text.Face {
	if isBold(cfg.FontWeight) {
		return r.bold.Face(cfg.FontSize)
	}
	return r.regular.Face(cfg.FontSize)
}

// isBold accepts CSS weights: "bold", "bolder" or a number of 600 and up.
func isBold(weight string) bool {
	switch strings.ToLower(weight) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

func drawSegment(dc *gg.Context, s wheel.Segment, cx, cy, rot float64, hole string) error {
	dc.SetHexColor(s.Color)
	if s.Span() >= 360 {
		dc.DrawCircle(cx, cy, s.OuterRadius)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetHexColor(hole)
		dc.DrawCircle(cx, cy, s.InnerRadius)
		return dc.Fill()
	}

	o0, o1 := s.OuterSpan()
	i0, i1 := s.InnerSpan()
	o0, o1 = screen(o0, rot), screen(o1, rot)
	i0, i1 = screen(i0, rot), screen(i1, rot)

	dc.MoveTo(cx+s.OuterRadius*math.Cos(o0), cy+s.OuterRadius*math.Sin(o0))
	if o1 > o0 {
		dc.DrawArc(cx, cy, s.OuterRadius, o0, o1)
	}
	dc.LineTo(cx+s.InnerRadius*math.Cos(i1), cy+s.InnerRadius*math.Sin(i1))
	for a := i1 - arcStep; a > i0; a -= arcStep {
		dc.LineTo(cx+s.InnerRadius*math.Cos(a), cy+s.InnerRadius*math.Sin(a))
	}
	dc.LineTo(cx+s.InnerRadius*math.Cos(i0), cy+s.InnerRadius*math.Sin(i0))
	dc.ClosePath()
	return dc.Fill()
}

func drawLabel(dc *gg.Context, s wheel.Segment, cx, cy, rot float64, orientation wheel.TextOrientation) {
	if s.Value == "" {
		return
	}
	dc.SetHexColor(s.TextColor)
	mid := screen(radians(s.MidAngle()), rot)
	cos, sin := math.Cos(mid), math.Sin(mid)

	if orientation != wheel.TextVertical {
		r := (s.InnerRadius + s.OuterRadius) / 2
		dc.DrawStringAnchored(s.Value, cx+r*cos, cy+r*sin, 0.5, 0.5)
		return
	}

	// Vertical labels run from the rim towards the hub, one rune per line.
	_, lh := dc.MeasureString("M")
	r := s.OuterRadius - lh
	for _, ch := range s.Value {
		if r < s.InnerRadius+lh/2 {
			break
		}
		dc.DrawStringAnchored(string(ch), cx+r*cos, cy+r*sin, 0.5, 0.5)
		r -= lh
	}
}

// drawKnob draws the pointer hanging over the rim at (x, y), tilted by tilt
// degrees about its base.
func drawKnob(dc *gg.Context, x, y, size, tilt float64) error {
	base := y - size*0.4
	pts := [3][2]float64{
		{-size / 2, 0},
		{size / 2, 0},
		{0, size},
	}
	t := radians(tilt)
	cos, sin := math.Cos(t), math.Sin(t)

	dc.SetHexColor(KnobColor)
	for i, p := range pts {
		px := x + p[0]*cos - p[1]*sin
		py := base + p[0]*sin + p[1]*cos
		if i == 0 {
			dc.MoveTo(px, py)
			continue
		}
		dc.LineTo(px, py)
	}
	dc.ClosePath()
	return dc.Fill()
}

// screen converts a wheel angle (radians clockwise from 12 o'clock) into the
// canvas angle used by gg, which starts at 3 o'clock.
func screen(a, rot float64) float64 {
	return a + rot - math.Pi/2
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
