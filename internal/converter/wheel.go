package converter

import (
	"fmt"
	dto "fortune_wheel/internal/api/dto/wheel"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/wheel"
	"time"
)

// ToWheelSettings converts a create request into service settings.
func ToWheelSettings(in dto.CreateWheelRequest) (model.WheelSettings, error) {
	var d time.Duration
	if in.Duration != "" {
		parsed, err := time.ParseDuration(in.Duration)
		if err != nil {
			return model.WheelSettings{}, fmt.Errorf("%w: invalid duration %q", wheel.ErrConfiguration, in.Duration)
		}
		d = parsed
	}
	return model.WheelSettings{
		Title:           in.Title,
		Rewards:         in.Rewards,
		Winner:          in.Winner,
		Colors:          in.Colors,
		TextColors:      in.TextColors,
		Width:           in.Width,
		Height:          in.Height,
		InnerRadius:     in.InnerRadius,
		OuterRadius:     in.OuterRadius,
		PadAngle:        in.PadAngle,
		Duration:        d,
		Direction:       in.Direction,
		Easing:          in.Easing,
		Shuffle:         in.Shuffle,
		KnobSize:        in.KnobSize,
		KnobSource:      in.KnobSource,
		BorderWidth:     in.BorderWidth,
		BorderColor:     in.BorderColor,
		BackgroundColor: in.BackgroundColor,
		FontSize:        in.FontSize,
		FontWeight:      in.FontWeight,
		TextOrientation: in.TextOrientation,
	}, nil
}

// ToWheelConfig maps service settings onto the core configuration. Named
// enums are parsed here; ranges are left to wheel.Config.Validate.
func ToWheelConfig(s model.WheelSettings) (wheel.Config, error) {
	dir, err := wheel.ParseDirection(s.Direction)
	if err != nil {
		return wheel.Config{}, err
	}
	easing, err := wheel.ParseEasing(s.Easing)
	if err != nil {
		return wheel.Config{}, err
	}
	return wheel.Config{
		Rewards:         s.Rewards,
		Winner:          s.Winner,
		Colors:          s.Colors,
		TextColors:      s.TextColors,
		Width:           s.Width,
		Height:          s.Height,
		InnerRadius:     s.InnerRadius,
		OuterRadius:     s.OuterRadius,
		PadAngle:        s.PadAngle,
		Duration:        s.Duration,
		Direction:       dir,
		Easing:          easing,
		Shuffle:         s.Shuffle,
		KnobSize:        s.KnobSize,
		KnobSource:      s.KnobSource,
		BorderWidth:     s.BorderWidth,
		BorderColor:     s.BorderColor,
		BackgroundColor: s.BackgroundColor,
		FontSize:        s.FontSize,
		FontWeight:      s.FontWeight,
		TextOrientation: wheel.TextOrientation(s.TextOrientation),
	}, nil
}

func ToWheelResponse(v model.WheelView) dto.WheelResponse {
	segs := make([]dto.SegmentResponse, 0, len(v.Segments))
	for _, s := range v.Segments {
		segs = append(segs, dto.SegmentResponse{
			Index:      s.Index,
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
			Value:      s.Value,
			Color:      s.Color,
			TextColor:  s.TextColor,
			CentroidX:  s.Centroid.X,
			CentroidY:  s.Centroid.Y,
			Rotation:   s.LabelRotation,
			Path:       s.SVGPath(),
		})
	}

	res := dto.WheelResponse{
		ID:        v.ID.String(),
		Title:     v.Settings.Title,
		Rewards:   v.Settings.Rewards,
		Shuffled:  v.Shuffled,
		Duration:  v.Settings.Duration.String(),
		Direction: v.Settings.Direction,
		Segments:  segs,
		Phase:     v.Phase.String(),
		Angle:     v.Angle,
		Nearest:   v.Nearest,
		KnobTilt:  v.KnobTilt,
		Ready:     v.Ready,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
	}
	if v.Last != nil {
		last := ToResultResponse(*v.Last)
		res.Last = &last
	}
	return res
}

func ToSpinResponse(s model.SpinStarted) dto.SpinResponse {
	return dto.SpinResponse{
		WheelID:   s.WheelID.String(),
		Winner:    s.Winner,
		Target:    s.Target,
		Duration:  s.Duration.String(),
		Direction: s.Direction.String(),
		StartedAt: s.StartedAt.Format(time.RFC3339Nano),
	}
}

func ToResultResponse(r model.SpinResult) dto.ResultResponse {
	return dto.ResultResponse{
		WheelID:   r.WheelID.String(),
		Index:     r.Index,
		Value:     r.Value,
		Angle:     r.Angle,
		Requested: r.Requested,
		SettledAt: r.SettledAt.Format(time.RFC3339Nano),
	}
}

func ToEventResponse(e model.SpinEvent) dto.EventResponse {
	out := dto.EventResponse{
		Angle:    e.Angle,
		Nearest:  e.Nearest,
		KnobTilt: e.KnobTilt,
	}
	if e.Result != nil {
		r := ToResultResponse(*e.Result)
		out.Result = &r
	}
	return out
}

func ToPresetResponses(presets []model.Preset) []dto.PresetResponse {
	out := make([]dto.PresetResponse, 0, len(presets))
	for _, p := range presets {
		out = append(out, dto.PresetResponse{
			Name:        p.Name,
			Description: p.Description,
			Rewards:     p.Settings.Rewards,
		})
	}
	return out
}
