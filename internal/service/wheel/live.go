package wheel

import (
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/wheel"
	"sync"
	"time"
)

const watchBuffer = 64

// liveWheel is a wheel loaded in memory with its controller. Layout fields
// are fixed after build; the rest is guarded by mu.
type liveWheel struct {
	wheel    model.Wheel
	ctrl     *wheel.Controller
	cfg      wheel.Config
	segments []wheel.Segment
	solver   wheel.Solver

	mu          sync.Mutex
	last        *model.SpinResult
	done        chan struct{}
	startedAt   time.Time
	watchers    map[int]chan model.SpinEvent
	nextWatcher int
	gone        chan struct{}
	isGone      bool
}

func newLiveWheel(w model.Wheel) *liveWheel {
	return &liveWheel{
		wheel:    w,
		watchers: make(map[int]chan model.SpinEvent),
		gone:     make(chan struct{}),
	}
}

func (lw *liveWheel) view() model.WheelView {
	st := lw.ctrl.Animator().State()
	v := model.WheelView{
		Wheel:    lw.wheel,
		Segments: lw.segments,
		Phase:    st.Phase,
		Angle:    st.Current,
		Nearest:  lw.solver.NearestSegment(st.Current),
		KnobTilt: lw.solver.KnobTilt(st.Current),
		Ready:    lw.ctrl.Ready(),
	}
	lw.mu.Lock()
	if lw.last != nil {
		last := *lw.last
		v.Last = &last
	}
	lw.mu.Unlock()
	return v
}

func (lw *liveWheel) event(kind model.SpinEventKind, angle float64) model.SpinEvent {
	return model.SpinEvent{
		Kind:     kind,
		Angle:    angle,
		Nearest:  lw.solver.NearestSegment(angle),
		KnobTilt: lw.solver.KnobTilt(angle),
	}
}

func (lw *liveWheel) tick(angle float64) {
	ev := lw.event(model.SpinEventTick, angle)
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.broadcastLocked(ev, false)
}

// broadcastLocked fans ev out to watchers. Ticks are dropped for a watcher
// that is behind; must events evict the oldest queued event instead.
func (lw *liveWheel) broadcastLocked(ev model.SpinEvent, must bool) {
	for _, ch := range lw.watchers {
		select {
		case ch <- ev:
			continue
		default:
		}
		if !must {
			continue
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// shutdown closes the controller, which settles a running spin, then
// closes every watcher stream.
func (lw *liveWheel) shutdown() {
	_ = lw.ctrl.Close()

	lw.mu.Lock()
	defer lw.mu.Unlock()
	if lw.isGone {
		return
	}
	lw.isGone = true
	close(lw.gone)
	for id, ch := range lw.watchers {
		delete(lw.watchers, id)
		close(ch)
	}
}
