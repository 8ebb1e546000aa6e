package wheel

import (
	"math"
	"time"
)

// LandingBias is how far past a whole turn a clockwise spin overshoots, in
// degrees. It keeps the knob inside the target segment instead of on its
// boundary. Narrow segments clamp it to half their width.
const LandingBias = 5.0

// Solver converts between winner indices and wheel rotation angles for a
// wheel of a fixed segment count.
type Solver struct {
	count int
	width float64
}

// NewSolver returns a solver for n segments.
func NewSolver(n int) (Solver, error) {
	if n <= 0 || n > MaxSegments {
		return Solver{}, configErr("segment count %d out of range [1, %d]", n, MaxSegments)
	}
	return Solver{count: n, width: fullTurn / float64(n)}, nil
}

// Count returns the number of segments.
func (s Solver) Count() int {
	return s.count
}

// SegmentWidth returns the angular width of a segment in degrees.
func (s Solver) SegmentWidth() float64 {
	return s.width
}

// Offset returns half a segment width; the knob points at a segment's middle.
func (s Solver) Offset() float64 {
	return s.width / 2
}

func (s Solver) bias() float64 {
	return math.Min(LandingBias, s.width/2)
}

// Revolutions returns the number of extra whole turns for a spin of duration d:
// one per started second.
func Revolutions(d time.Duration) float64 {
	return math.Max(1, math.Ceil(d.Seconds()))
}

// TargetAngle returns the rotation in degrees that lands winner under the knob
// after a spin of duration d.
func (s Solver) TargetAngle(winner int, d time.Duration, dir Direction) (float64, error) {
	if winner < 0 || winner >= s.count {
		return 0, configErr("winner %d out of range [0, %d)", winner, s.count)
	}
	if d <= 0 {
		return 0, configErr("duration must be positive, got %s", d)
	}
	turns := fullTurn * Revolutions(d)
	step := float64(winner) * s.width
	if dir == CounterClockwise {
		return -(turns + s.bias() + step), nil
	}
	return fullTurn + s.bias() - step + turns, nil
}

// LandedIndex returns the segment under the knob once the wheel rests at
// final degrees. Negative angles come from counter-clockwise rotation, where
// the knob crosses each segment from the opposite edge. A non-finite angle
// resolves to segment 0.
func (s Solver) LandedIndex(final float64) int {
	if math.IsNaN(final) || math.IsInf(final, 0) {
		return 0
	}
	deg := math.Abs(math.Round(math.Mod(final, fullTurn)))
	slot := int(math.Floor(deg / s.width))
	if final < 0 {
		return slot % s.count
	}
	return (s.count - slot%s.count) % s.count
}

// KnobPhase returns the knob's relative position inside the segment it is
// over, in (-1, 1). Zero is a segment boundary.
func (s Solver) KnobPhase(angle float64) float64 {
	return math.Mod(math.Mod(angle-s.Offset(), fullTurn)/s.width, 1)
}

// NearestSegment returns the segment currently under the knob for a wheel
// rotated by angle degrees.
func (s Solver) NearestSegment(angle float64) int {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	under := math.Mod(-angle, fullTurn) + s.Offset()
	if under < 0 {
		under += fullTurn
	}
	return int(math.Floor(under/s.width)) % s.count
}

var (
	tiltIn  = []float64{-1, -0.5, -0.0001, 0.0001, 0.5, 1}
	tiltOut = []float64{0, 0, 35, -35, 0, 0}
)

// KnobTilt returns the knob rotation in degrees for a wheel rotated by angle.
// The knob is neutral mid-segment and kicks over near each boundary.
func (s Solver) KnobTilt(angle float64) float64 {
	return interpolate(s.KnobPhase(angle), tiltIn, tiltOut)
}

// interpolate is piecewise linear over sorted in, extending the end slopes.
func interpolate(x float64, in, out []float64) float64 {
	i := 1
	for i < len(in)-1 && x > in[i] {
		i++
	}
	x0, x1 := in[i-1], in[i]
	y0, y1 := out[i-1], out[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}
