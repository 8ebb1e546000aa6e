package wheel

import (
	"math"
)

// Easing maps animation progress in [0,1] to value progress in [0,1].
type Easing func(t float64) float64

// Linear advances the rotation at constant speed.
func Linear(t float64) float64 {
	return clamp01(t)
}

var ease = CubicBezier(0.42, 0, 1, 1)

// Ease accelerates from rest.
func Ease(t float64) float64 {
	return ease(t)
}

// EaseInOut accelerates from rest and decelerates into the target. It is the
// default timing of a spin.
func EaseInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return ease(t*2) / 2
	}
	return 1 - ease((1-t)*2)/2
}

// ParseEasing resolves an easing by name.
func ParseEasing(name string) (Easing, error) {
	switch name {
	case "", "ease-in-out":
		return EaseInOut, nil
	case "ease":
		return Ease, nil
	case "linear":
		return Linear, nil
	}
	return nil, configErr("unknown easing %q", name)
}

// CubicBezier returns the CSS style timing function through (0,0), (x1,y1),
// (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	const epsilon = 1e-7

	solve := func(x float64) float64 {
		t := x
		for range 8 {
			d := sampleX(t) - x
			if math.Abs(d) < epsilon {
				return t
			}
			s := slopeX(t)
			if math.Abs(s) < 1e-6 {
				break
			}
			t -= d / s
		}

		lo, hi := 0.0, 1.0
		t = x
		for lo < hi {
			v := sampleX(t)
			if math.Abs(v-x) < epsilon {
				return t
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (hi-lo)/2 + lo
			if hi-lo < epsilon {
				break
			}
		}
		return t
	}

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		return sampleY(solve(t))
	}
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
