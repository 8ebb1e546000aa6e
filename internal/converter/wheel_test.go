package converter

import (
	"errors"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/wheel"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestToWheelSettings(t *testing.T) {
	winner := 1
	s, err := ToWheelSettings(dto.CreateWheelRequest{
		Title:     "Lunch",
		Rewards:   []string{"Pizza", "Sushi"},
		Winner:    &winner,
		Duration:  "2.5s",
		Direction: "ccw",
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.Duration != 2500*time.Millisecond || s.Title != "Lunch" || *s.Winner != 1 {
		t.Errorf("settings = %+v", s)
	}

	if _, err := ToWheelSettings(dto.CreateWheelRequest{Duration: "soon"}); !errors.Is(err, wheel.ErrConfiguration) {
		t.Errorf("bad duration err = %v, want ErrConfiguration", err)
	}
}

func TestToWheelConfig(t *testing.T) {
	cfg, err := ToWheelConfig(model.WheelSettings{
		Rewards:         []string{"A", "B"},
		Direction:       "counterclockwise",
		Easing:          "linear",
		TextOrientation: "vertical",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Direction != wheel.CounterClockwise || cfg.TextOrientation != wheel.TextOrientation("vertical") {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Easing(0.25) != 0.25 {
		t.Error("easing is not linear")
	}

	tests := []struct {
		name string
		s    model.WheelSettings
	}{
		{"bad direction", model.WheelSettings{Direction: "up"}},
		{"bad easing", model.WheelSettings{Easing: "bounce"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToWheelConfig(tt.s); !errors.Is(err, wheel.ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestToWheelResponse(t *testing.T) {
	segs, err := wheel.Partition(wheel.Config{Rewards: []string{"A", "B", "C", "D"}})
	if err != nil {
		t.Fatal(err)
	}
	id := uuid.New()
	v := model.WheelView{
		Wheel: model.Wheel{
			ID:       id,
			Settings: model.WheelSettings{Rewards: []string{"A", "B", "C", "D"}, Duration: time.Second},
		},
		Segments: segs,
		Phase:    wheel.PhaseSettled,
		Angle:    545,
		Nearest:  2,
		Last:     &model.SpinResult{WheelID: id, Index: 2, Value: "C", Angle: 545},
	}

	res := ToWheelResponse(v)
	if res.ID != id.String() || res.Phase != "settled" || res.Duration != "1s" {
		t.Errorf("response = %+v", res)
	}
	if len(res.Segments) != 4 || res.Segments[2].Value != "C" || res.Segments[2].Path == "" {
		t.Errorf("segments = %+v", res.Segments)
	}
	if res.Last == nil || res.Last.Value != "C" {
		t.Errorf("last = %+v", res.Last)
	}
}
