package model

import (
	"fortune_wheel/internal/wheel"
	"time"

	"github.com/google/uuid"
)

// WheelSettings is the configuration surface of a wheel as accepted by the
// service. Zero values fall back to the wheel defaults.
type WheelSettings struct {
	Title           string
	Rewards         []string
	Winner          *int
	Colors          []string
	TextColors      []string
	Width           float64
	Height          float64
	InnerRadius     float64
	OuterRadius     float64
	PadAngle        float64
	Duration        time.Duration
	Direction       string
	Easing          string
	Shuffle         bool
	KnobSize        float64
	KnobSource      string
	BorderWidth     float64
	BorderColor     string
	BackgroundColor string
	FontSize        float64
	FontWeight      string
	TextOrientation string
}

// Wheel is a stored wheel configuration. Settings.Rewards holds the effective
// order, so a shuffled wheel is stored with Shuffle cleared and Shuffled set.
type Wheel struct {
	ID        uuid.UUID
	Settings  WheelSettings
	Shuffled  bool
	CreatedAt time.Time
}

// WheelView is a wheel together with its live animation state.
type WheelView struct {
	Wheel
	Segments []wheel.Segment
	Phase    wheel.Phase
	Angle    float64
	Nearest  int
	KnobTilt float64
	Ready    bool
	Last     *SpinResult
}

// SpinStarted describes a spin that has just been armed.
type SpinStarted struct {
	WheelID   uuid.UUID
	Winner    int
	Target    float64
	Duration  time.Duration
	Direction wheel.Direction
	StartedAt time.Time
}

// SpinResult is the settled outcome of one spin.
type SpinResult struct {
	WheelID   uuid.UUID
	Index     int
	Value     string
	Angle     float64
	Requested int
	SettledAt time.Time
}

type SpinEventKind string

const (
	SpinEventTick   SpinEventKind = "tick"
	SpinEventSettle SpinEventKind = "settle"
	SpinEventReset  SpinEventKind = "reset"
)

// SpinEvent is streamed to watchers while a wheel animates.
type SpinEvent struct {
	Kind     SpinEventKind
	Angle    float64
	Nearest  int
	KnobTilt float64
	Result   *SpinResult
}

// Preset is a named wheel configuration read from config.yaml.
type Preset struct {
	Name        string
	Description string
	Settings    WheelSettings
}
