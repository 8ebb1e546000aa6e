package wheel

import (
	"context"
	"fortune_wheel/internal/model"

	"github.com/google/uuid"
)

// Watch streams the wheel's events until ctx ends or the wheel is deleted.
// The first event is a tick carrying the current angle.
func (s *serv) Watch(ctx context.Context, id uuid.UUID) (<-chan model.SpinEvent, error) {
	lw, err := s.wheel(ctx, id)
	if err != nil {
		return nil, err
	}

	ch := make(chan model.SpinEvent, watchBuffer)

	// Ticks and settles broadcast under lw.mu, so reading the angle and
	// registering in one critical section cannot miss a settle.
	lw.mu.Lock()
	ch <- lw.event(model.SpinEventTick, lw.ctrl.Animator().State().Current)
	if lw.isGone {
		lw.mu.Unlock()
		close(ch)
		return ch, nil
	}
	wid := lw.nextWatcher
	lw.nextWatcher++
	lw.watchers[wid] = ch
	lw.mu.Unlock()
	s.metrics.Watchers.Inc()

	go func() {
		select {
		case <-ctx.Done():
		case <-lw.gone:
		}
		lw.mu.Lock()
		if c, ok := lw.watchers[wid]; ok {
			delete(lw.watchers, wid)
			close(c)
		}
		lw.mu.Unlock()
		s.metrics.Watchers.Dec()
	}()
	return ch, nil
}
