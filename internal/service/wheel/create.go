package wheel

import (
	"context"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/wheel"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create validates settings through the core, stores the effective
// configuration and keeps the wheel live. Rewards are stored in the order
// the wheel shows them, so a shuffled wheel keeps its layout across restarts.
func (s *serv) Create(ctx context.Context, settings model.WheelSettings) (*model.WheelView, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, wheel.ErrClosed
	}

	lw, err := s.build(model.Wheel{
		ID:        uuid.New(),
		Settings:  settings,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	eff := lw.cfg
	stored := &lw.wheel
	stored.Shuffled = settings.Shuffle
	stored.Settings.Shuffle = false
	stored.Settings.Rewards = eff.Rewards
	stored.Settings.Duration = eff.Duration
	stored.Settings.Direction = eff.Direction.String()
	if stored.Settings.Easing == "" {
		stored.Settings.Easing = "ease-in-out"
	}

	if err := s.repo.CreateWheel(ctx, stored); err != nil {
		lw.shutdown()
		return nil, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		lw.shutdown()
		return nil, wheel.ErrClosed
	}
	s.live[stored.ID] = lw
	s.mu.Unlock()

	s.metrics.WheelsCreated.Inc()
	s.metrics.WheelsLive.Inc()
	s.log.Info("wheel created",
		zap.Stringer("wheel_id", stored.ID),
		zap.Int("segments", len(lw.segments)),
		zap.Bool("shuffled", stored.Shuffled),
	)

	v := lw.view()
	return &v, nil
}

// CreateFromPreset creates a wheel from a config.yaml preset.
func (s *serv) CreateFromPreset(ctx context.Context, name string) (*model.WheelView, error) {
	for _, p := range s.cfg.Presets() {
		if p.Name == name {
			settings := p.Settings
			if settings.Title == "" {
				settings.Title = p.Name
			}
			return s.Create(ctx, settings)
		}
	}
	return nil, ErrPresetNotFound
}
