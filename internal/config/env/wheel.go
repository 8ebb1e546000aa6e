package env

import (
	"errors"
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/model"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	publicURLEnvName = "PUBLIC_URL"

	defaultFrameInterval = 16 * time.Millisecond
	defaultWorkers       = 256
)

type yamlPreset struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Title           string   `yaml:"title"`
	Rewards         []string `yaml:"rewards"`
	Winner          *int     `yaml:"winner"`
	Colors          []string `yaml:"colors"`
	TextColors      []string `yaml:"text_colors"`
	Width           float64  `yaml:"width"`
	InnerRadius     float64  `yaml:"inner_radius"`
	OuterRadius     float64  `yaml:"outer_radius"`
	PadAngle        float64  `yaml:"pad_angle"`
	Duration        string   `yaml:"duration"`
	Direction       string   `yaml:"direction"`
	Easing          string   `yaml:"easing"`
	Shuffle         bool     `yaml:"shuffle"`
	KnobSize        float64  `yaml:"knob_size"`
	BorderWidth     float64  `yaml:"border_width"`
	BorderColor     string   `yaml:"border_color"`
	BackgroundColor string   `yaml:"background_color"`
	FontSize        float64  `yaml:"font_size"`
	FontWeight      string   `yaml:"font_weight"`
	TextOrientation string   `yaml:"text_orientation"`
}

type yamlWheel struct {
	FrameInterval string       `yaml:"frame_interval"`
	Workers       int          `yaml:"workers"`
	Presets       []yamlPreset `yaml:"presets"`
}

type wheelConfig struct {
	frameInterval time.Duration
	workers       int
	publicURL     string
	presets       []model.Preset
}

// NewWheelConfigFromYAML reads the wheel section from path. A missing file
// yields defaults and no presets.
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return parseWheelConfig(data)
}

func parseWheelConfig(data []byte) (*wheelConfig, error) {
	var raw yamlWheel
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid wheel config: %w", err)
	}

	cfg := &wheelConfig{
		frameInterval: defaultFrameInterval,
		workers:       defaultWorkers,
		publicURL:     os.Getenv(publicURLEnvName),
	}
	if raw.FrameInterval != "" {
		d, err := time.ParseDuration(raw.FrameInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid frame_interval: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("frame_interval must be positive, got %s", d)
		}
		cfg.frameInterval = d
	}
	if raw.Workers > 0 {
		cfg.workers = raw.Workers
	}

	seen := make(map[string]struct{}, len(raw.Presets))
	for _, p := range raw.Presets {
		if p.Name == "" {
			return nil, errors.New("preset without name")
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = struct{}{}

		var dur time.Duration
		if p.Duration != "" {
			d, err := time.ParseDuration(p.Duration)
			if err != nil {
				return nil, fmt.Errorf("preset %q: invalid duration: %w", p.Name, err)
			}
			dur = d
		}
		cfg.presets = append(cfg.presets, model.Preset{
			Name:        p.Name,
			Description: p.Description,
			Settings: model.WheelSettings{
				Title:           p.Title,
				Rewards:         p.Rewards,
				Winner:          p.Winner,
				Colors:          p.Colors,
				TextColors:      p.TextColors,
				Width:           p.Width,
				InnerRadius:     p.InnerRadius,
				OuterRadius:     p.OuterRadius,
				PadAngle:        p.PadAngle,
				Duration:        dur,
				Direction:       p.Direction,
				Easing:          p.Easing,
				Shuffle:         p.Shuffle,
				KnobSize:        p.KnobSize,
				BorderWidth:     p.BorderWidth,
				BorderColor:     p.BorderColor,
				BackgroundColor: p.BackgroundColor,
				FontSize:        p.FontSize,
				FontWeight:      p.FontWeight,
				TextOrientation: p.TextOrientation,
			},
		})
	}
	return cfg, nil
}

func (w *wheelConfig) FrameInterval() time.Duration { return w.frameInterval }
func (w *wheelConfig) Workers() int                 { return w.workers }
func (w *wheelConfig) PublicURL() string            { return w.publicURL }
func (w *wheelConfig) Presets() []model.Preset      { return w.presets }
