package wheel

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

const (
	// MaxSegments is the largest supported segment count. Beyond it a segment is
	// narrower than the one degree resolution of LandedIndex.
	MaxSegments = 180

	DefaultWidth       = 400.0
	DefaultInnerRadius = 100.0
	DefaultDuration    = 10 * time.Second
	DefaultPadAngle    = 0.01 // radians
	DefaultKnobSize    = 20.0
	DefaultBorderWidth = 2.0
	DefaultFontSize    = 20.0
	DefaultFontWeight  = "normal"
	DefaultBorderColor = "#fff"
	DefaultBackground  = "#fff"
)

// DefaultColors is the segment palette used when none is configured.
var DefaultColors = []string{
	"#E07026",
	"#E8C22E",
	"#ABC937",
	"#4F991D",
	"#22AFD3",
	"#5858D0",
	"#7B48C8",
	"#D843B9",
	"#E23B80",
	"#D82B2B",
}

// DefaultTextColors is the label palette used when none is configured.
var DefaultTextColors = []string{"#fff"}

// TextOrientation controls how label characters are laid out on a segment.
type TextOrientation string

const (
	// TextHorizontal spaces characters along the tangent.
	TextHorizontal TextOrientation = "horizontal"
	// TextVertical stacks characters radially.
	TextVertical TextOrientation = "vertical"
)

// Direction is the spin direction of the wheel.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// ParseDirection maps a direction name to a Direction. Empty means clockwise.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(name) {
	case "", "clockwise", "cw":
		return Clockwise, nil
	case "counterclockwise", "counter-clockwise", "ccw":
		return CounterClockwise, nil
	}
	return Clockwise, configErr("unknown direction %q", name)
}

// Config describes one wheel game. It is immutable once a spin starts.
type Config struct {
	Rewards []string
	// Winner is the index that every spin lands on. Nil picks a random
	// segment per spin.
	Winner *int

	Colors     []string
	TextColors []string

	Width       float64
	Height      float64
	InnerRadius float64
	// OuterRadius defaults to Width/2.
	OuterRadius float64
	PadAngle    float64

	Duration  time.Duration
	Direction Direction
	Easing    Easing
	Shuffle   bool

	KnobSize        float64
	KnobSource      string
	BorderWidth     float64
	BorderColor     string
	BackgroundColor string
	FontSize        float64
	FontWeight      string
	TextOrientation TextOrientation
}

// SegmentCount returns the number of segments the config describes.
func (c Config) SegmentCount() int {
	return len(c.Rewards)
}

// WithDefaults fills every documented fallback. Rewards and Winner are left as is.
func (c Config) WithDefaults() Config {
	if len(c.Colors) == 0 {
		c.Colors = DefaultColors
	}
	if len(c.TextColors) == 0 {
		c.TextColors = DefaultTextColors
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = c.Width
	}
	if c.InnerRadius == 0 {
		c.InnerRadius = DefaultInnerRadius
	}
	if c.OuterRadius == 0 {
		c.OuterRadius = c.Width / 2
	}
	if c.PadAngle == 0 {
		c.PadAngle = DefaultPadAngle
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Easing == nil {
		c.Easing = EaseInOut
	}
	if c.KnobSize == 0 {
		c.KnobSize = DefaultKnobSize
	}
	if c.BorderWidth == 0 {
		c.BorderWidth = DefaultBorderWidth
	}
	if c.BorderColor == "" {
		c.BorderColor = DefaultBorderColor
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = DefaultBackground
	}
	if c.FontSize == 0 {
		c.FontSize = DefaultFontSize
	}
	if c.FontWeight == "" {
		c.FontWeight = DefaultFontWeight
	}
	if c.TextOrientation == "" {
		c.TextOrientation = TextHorizontal
	}
	return c
}

// Validate checks a config that already had defaults applied.
func (c Config) Validate() error {
	n := c.SegmentCount()
	switch {
	case n == 0:
		return configErr("rewards list is empty")
	case n > MaxSegments:
		return configErr("%d segments exceeds the maximum of %d", n, MaxSegments)
	}
	if c.Winner != nil && (*c.Winner < 0 || *c.Winner >= n) {
		return configErr("winner %d out of range [0, %d)", *c.Winner, n)
	}
	if err := validateRadii(c.InnerRadius, c.OuterRadius); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return configErr("negative dimensions %gx%g", c.Width, c.Height)
	}
	if c.PadAngle < 0 || c.PadAngle >= 2*math.Pi/float64(n) {
		return configErr("pad angle %g does not fit a %d segment wheel", c.PadAngle, n)
	}
	if c.Duration < 0 {
		return configErr("negative duration %s", c.Duration)
	}
	if c.Direction != Clockwise && c.Direction != CounterClockwise {
		return configErr("unknown direction %d", c.Direction)
	}
	if c.TextOrientation != TextHorizontal && c.TextOrientation != TextVertical {
		return configErr("unknown text orientation %q", c.TextOrientation)
	}
	return nil
}

func validateRadii(inner, outer float64) error {
	if inner < 0 || outer <= 0 || inner >= outer {
		return configErr("radii must satisfy 0 <= inner < outer, got inner=%g outer=%g", inner, outer)
	}
	return nil
}

// Shuffle returns a shuffled copy of rewards. The input is not modified.
func Shuffle(rewards []string, rng *rand.Rand) []string {
	out := slices.Clone(rewards)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
