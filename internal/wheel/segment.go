package wheel

import (
	"math"
	"strconv"
	"strings"
)

const (
	fullTurn = 360.0
	epsilon  = 1e-12
)

// Point is a position relative to the wheel centre. Y grows downward.
type Point struct {
	X, Y float64
}

// Segment is one equal angular slice of the wheel bound to one reward.
//
// Angles are in degrees, measured clockwise from 12 o'clock, before any
// rotation is applied. StartAngle and EndAngle are the ideal boundaries used
// for winner computation; PadAngle only affects drawing.
type Segment struct {
	Index         int
	StartAngle    float64
	EndAngle      float64
	PadAngle      float64
	InnerRadius   float64
	OuterRadius   float64
	Centroid      Point
	Value         string
	Color         string
	TextColor     string
	LabelRotation float64
}

// Partition divides the circle into one equal segment per reward.
func Partition(cfg Config) ([]Segment, error) {
	cfg = cfg.WithDefaults()
	n := cfg.SegmentCount()
	if n == 0 {
		return nil, configErr("segment count must be positive")
	}
	if err := validateRadii(cfg.InnerRadius, cfg.OuterRadius); err != nil {
		return nil, err
	}

	width := fullTurn / float64(n)
	pad := cfg.PadAngle * 180 / math.Pi
	mid := (cfg.InnerRadius + cfg.OuterRadius) / 2

	segments := make([]Segment, n)
	for i := range segments {
		start := float64(i) * width
		end := float64(i+1) * width
		if i == n-1 {
			end = fullTurn
		}
		segments[i] = Segment{
			Index:         i,
			StartAngle:    start,
			EndAngle:      end,
			PadAngle:      pad,
			InnerRadius:   cfg.InnerRadius,
			OuterRadius:   cfg.OuterRadius,
			Centroid:      polar(mid, radians((start+end)/2)),
			Value:         cfg.Rewards[i],
			Color:         cfg.Colors[i%len(cfg.Colors)],
			TextColor:     cfg.TextColors[i%len(cfg.TextColors)],
			LabelRotation: float64(i)*width + width/2,
		}
	}
	return segments, nil
}

// Span returns the ideal angular width in degrees.
func (s Segment) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// MidAngle returns the angle of the segment's centre line in degrees.
func (s Segment) MidAngle() float64 {
	return (s.StartAngle + s.EndAngle) / 2
}

// Contains reports whether the unrotated angle deg falls inside the ideal span.
func (s Segment) Contains(deg float64) bool {
	deg = math.Mod(deg, fullTurn)
	if deg < 0 {
		deg += fullTurn
	}
	return deg >= s.StartAngle && deg < s.EndAngle
}

// OuterSpan returns the padded span of the outer arc in radians.
func (s Segment) OuterSpan() (float64, float64) {
	return s.paddedSpan(s.OuterRadius)
}

// InnerSpan returns the padded span of the inner arc in radians. It collapses
// to the mid angle when the padding consumes the whole arc.
func (s Segment) InnerSpan() (float64, float64) {
	return s.paddedSpan(s.InnerRadius)
}

// paddedSpan insets both ends so the gap between neighbours has the same
// linear width along the pad radius sqrt(r0²+r1²).
func (s Segment) paddedSpan(r float64) (float64, float64) {
	a0, a1 := radians(s.StartAngle), radians(s.EndAngle)
	if s.isFull() || s.PadAngle <= 0 || r <= epsilon {
		return a0, a1
	}
	rp := math.Hypot(s.InnerRadius, s.OuterRadius)
	p := asin(rp / r * math.Sin(radians(s.PadAngle)/2))
	if a1-a0-2*p <= epsilon {
		m := (a0 + a1) / 2
		return m, m
	}
	return a0 + p, a1 - p
}

func (s Segment) isFull() bool {
	return s.Span() >= fullTurn-1e-9
}

// SVGPath returns the annular sector as SVG path data centred on the origin.
func (s Segment) SVGPath() string {
	var b pathBuilder
	r0, r1 := s.InnerRadius, s.OuterRadius

	if s.isFull() {
		b.moveTo(polar(r1, 0))
		b.arc(r1, false, true, polar(r1, math.Pi))
		b.arc(r1, false, true, polar(r1, 0))
		if r0 > epsilon {
			b.moveTo(polar(r0, 0))
			b.arc(r0, false, false, polar(r0, math.Pi))
			b.arc(r0, false, false, polar(r0, 0))
		}
		b.close()
		return b.String()
	}

	o0, o1 := s.OuterSpan()
	b.moveTo(polar(r1, o0))
	b.arc(r1, o1-o0 > math.Pi, true, polar(r1, o1))
	if r0 > epsilon {
		i0, i1 := s.InnerSpan()
		b.lineTo(polar(r0, i1))
		b.arc(r0, i1-i0 > math.Pi, false, polar(r0, i0))
	} else {
		b.lineTo(Point{})
	}
	b.close()
	return b.String()
}

type pathBuilder struct {
	sb strings.Builder
}

func (b *pathBuilder) moveTo(p Point) {
	b.sb.WriteByte('M')
	b.point(p)
}

func (b *pathBuilder) lineTo(p Point) {
	b.sb.WriteByte('L')
	b.point(p)
}

func (b *pathBuilder) arc(r float64, large, sweep bool, p Point) {
	b.sb.WriteByte('A')
	b.num(r)
	b.sb.WriteByte(',')
	b.num(r)
	b.sb.WriteString(",0,")
	b.flag(large)
	b.sb.WriteByte(',')
	b.flag(sweep)
	b.sb.WriteByte(',')
	b.point(p)
}

func (b *pathBuilder) close() {
	b.sb.WriteByte('Z')
}

func (b *pathBuilder) point(p Point) {
	b.num(p.X)
	b.sb.WriteByte(',')
	b.num(p.Y)
}

func (b *pathBuilder) num(v float64) {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	b.sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}

func (b *pathBuilder) flag(v bool) {
	if v {
		b.sb.WriteByte('1')
		return
	}
	b.sb.WriteByte('0')
}

func (b *pathBuilder) String() string {
	return b.sb.String()
}

// polar converts a clockwise-from-top angle in radians to screen coordinates.
func polar(r, a float64) Point {
	return Point{X: r * math.Sin(a), Y: -r * math.Cos(a)}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func asin(x float64) float64 {
	switch {
	case x >= 1:
		return math.Pi / 2
	case x <= -1:
		return -math.Pi / 2
	}
	return math.Asin(x)
}
