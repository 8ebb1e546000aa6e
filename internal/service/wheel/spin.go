package wheel

import (
	"context"
	"errors"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/wheel"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spin arms the wheel and schedules its animation on the pool. The outcome is
// decided here; Result and Watch report it once the animation settles. If the
// pool rejects the animation the spin is settled at once and still reported
// as started, since its result is already available.
func (s *serv) Spin(ctx context.Context, id uuid.UUID) (*model.SpinStarted, error) {
	lw, err := s.wheel(ctx, id)
	if err != nil {
		return nil, err
	}

	lw.mu.Lock()
	if _, err := lw.ctrl.Spin(); err != nil {
		lw.mu.Unlock()
		return nil, err
	}
	st := lw.ctrl.Animator().State()
	winner := lw.ctrl.Armed()
	lw.done = make(chan struct{})
	lw.startedAt = time.Now()
	lw.mu.Unlock()

	started := &model.SpinStarted{
		WheelID:   id,
		Winner:    winner,
		Target:    st.Target,
		Duration:  st.Duration,
		Direction: lw.cfg.Direction,
		StartedAt: st.StartedAt,
	}
	s.metrics.SpinStarted(lw.cfg.Direction.String())

	err = s.pool.Submit(func() {
		if err := lw.ctrl.Animator().Run(s.ctx, s.cfg.FrameInterval()); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error("spin animation stopped", zap.Stringer("wheel_id", id), zap.Error(err))
		}
	})
	if err != nil {
		s.log.Warn("spin animation not scheduled, settling at target",
			zap.Stringer("wheel_id", id), zap.Error(err))
		_ = lw.ctrl.Animator().Finish()
	}
	return started, nil
}

// settled is the result sink of every controller.
func (s *serv) settled(lw *liveWheel, r wheel.Result) {
	res := model.SpinResult{
		WheelID:   lw.wheel.ID,
		Index:     r.Index,
		Value:     r.Value,
		Angle:     r.Angle,
		Requested: r.Requested,
		SettledAt: time.Now().UTC(),
	}
	ev := lw.event(model.SpinEventSettle, r.Angle)
	ev.Result = &res

	lw.mu.Lock()
	lw.last = &res
	done := lw.done
	lw.done = nil
	elapsed := time.Since(lw.startedAt)
	lw.broadcastLocked(ev, true)
	lw.mu.Unlock()

	if done != nil {
		close(done)
	}
	s.metrics.SpinSettled(elapsed.Seconds(), r.Index != r.Requested)
}

// Result waits for the spin in flight, bounded by ctx, and returns the latest
// settled result.
func (s *serv) Result(ctx context.Context, id uuid.UUID) (*model.SpinResult, error) {
	lw, err := s.wheel(ctx, id)
	if err != nil {
		return nil, err
	}

	lw.mu.Lock()
	done := lw.done
	lw.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.last == nil {
		return nil, ErrNoResult
	}
	res := *lw.last
	return &res, nil
}

// Reset returns a settled wheel to idle so it can be spun again.
func (s *serv) Reset(ctx context.Context, id uuid.UUID) error {
	lw, err := s.wheel(ctx, id)
	if err != nil {
		return err
	}
	if err := lw.ctrl.Reset(); err != nil {
		return err
	}

	ev := lw.event(model.SpinEventReset, 0)
	lw.mu.Lock()
	lw.broadcastLocked(ev, true)
	lw.mu.Unlock()
	return nil
}
