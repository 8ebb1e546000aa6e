package wheel

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultFrameInterval is the tick cadence used by Run when none is given.
const DefaultFrameInterval = 16 * time.Millisecond

// Phase is the lifecycle phase of a spin.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseSpinning
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseSpinning:
		return "spinning"
	case PhaseSettled:
		return "settled"
	}
	return "unknown"
}

// SpinState is a snapshot of an animator.
type SpinState struct {
	Phase     Phase
	Current   float64
	Target    float64
	StartedAt time.Time
	Duration  time.Duration
}

// Listener observes a spin. Callbacks run on the goroutine that advances the
// animator and must not block.
type Listener interface {
	OnTick(angle float64)
	OnSettle(final float64)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Tick   func(angle float64)
	Settle func(final float64)
}

func (f ListenerFuncs) OnTick(angle float64) {
	if f.Tick != nil {
		f.Tick(angle)
	}
}

func (f ListenerFuncs) OnSettle(final float64) {
	if f.Settle != nil {
		f.Settle(final)
	}
}

type subscription struct {
	id int
	l  Listener
}

// Animator owns the rotation value of one wheel and moves it from 0 to a
// target over a fixed duration. It is advanced cooperatively through Advance.
type Animator struct {
	mu       sync.Mutex
	state    SpinState
	easing   Easing
	finished bool
	subs     []subscription
	nextID   int

	now func() time.Time
	log *zap.Logger
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AnimatorOption {
	return func(a *Animator) {
		a.now = now
	}
}

// WithEasing sets the initial timing function.
func WithEasing(e Easing) AnimatorOption {
	return func(a *Animator) {
		a.easing = e
	}
}

// WithAnimatorLogger sets the logger.
func WithAnimatorLogger(l *zap.Logger) AnimatorOption {
	return func(a *Animator) {
		a.log = l
	}
}

func NewAnimator(opts ...AnimatorOption) *Animator {
	a := &Animator{
		easing: EaseInOut,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SetEasing changes the timing function. Only allowed while idle.
func (a *Animator) SetEasing(e Easing) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Phase != PhaseIdle {
		return stateErr("set easing", a.state.Phase)
	}
	if e == nil {
		e = EaseInOut
	}
	a.easing = e
	return nil
}

// State returns a snapshot of the spin state.
func (a *Animator) State() SpinState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Phase returns the current phase.
func (a *Animator) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Phase
}

// Finished reports whether the last spin settled and nothing has invalidated
// it since. It is false while a spin is armed or running.
func (a *Animator) Finished() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finished
}

// Subscribe attaches l to tick and settle events and returns a function that
// detaches it. Attaching a listener clears the finished flag of a prior spin.
func (a *Animator) Subscribe(l Listener) (cancel func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.subs = append(a.subs, subscription{id: id, l: l})
	a.finished = false
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			for i, s := range a.subs {
				if s.id == id {
					a.subs = append(a.subs[:i:i], a.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Arm starts a spin towards target degrees lasting d. It fails with ErrState
// unless the animator is idle.
func (a *Animator) Arm(target float64, d time.Duration) error {
	if d <= 0 {
		return configErr("duration must be positive, got %s", d)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Phase != PhaseIdle {
		return stateErr("arm", a.state.Phase)
	}

	a.finished = false
	a.state = SpinState{
		Phase:    PhaseArmed,
		Target:   target,
		Duration: d,
	}
	a.state.StartedAt = a.now()
	a.state.Phase = PhaseSpinning

	a.log.Debug("spin armed",
		zap.Float64("target", target),
		zap.Duration("duration", d),
	)
	return nil
}

// Advance moves the animation to now and notifies listeners. It returns true
// once the spin has settled. Calling it outside a spin is a no-op.
func (a *Animator) Advance(now time.Time) bool {
	a.mu.Lock()
	switch a.state.Phase {
	case PhaseSpinning:
	case PhaseSettled:
		a.mu.Unlock()
		return true
	default:
		a.mu.Unlock()
		return false
	}

	elapsed := now.Sub(a.state.StartedAt)
	if elapsed >= a.state.Duration {
		target := a.state.Target
		subs := a.settleLocked()
		a.mu.Unlock()
		notifySettle(subs, target)
		return true
	}

	progress := float64(elapsed) / float64(a.state.Duration)
	a.state.Current = a.easing(progress) * a.state.Target
	angle := a.state.Current
	subs := a.snapshotLocked()
	a.mu.Unlock()

	for _, s := range subs {
		s.l.OnTick(angle)
	}
	return false
}

// Finish settles a running spin immediately at its target.
func (a *Animator) Finish() error {
	a.mu.Lock()
	if a.state.Phase != PhaseSpinning {
		defer a.mu.Unlock()
		return stateErr("finish", a.state.Phase)
	}
	target := a.state.Target
	subs := a.settleLocked()
	a.mu.Unlock()

	notifySettle(subs, target)
	return nil
}

// Run advances the spin every interval until it settles or ctx is done.
func (a *Animator) Run(ctx context.Context, interval time.Duration) error {
	switch p := a.Phase(); p {
	case PhaseSettled:
		return nil
	case PhaseSpinning:
	default:
		return stateErr("run", p)
	}
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if a.Advance(a.now()) {
				return nil
			}
		}
	}
}

// Reset returns a settled animator to idle with the rotation cleared.
func (a *Animator) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Phase != PhaseSettled {
		return stateErr("reset", a.state.Phase)
	}
	a.state = SpinState{Phase: PhaseIdle}
	a.finished = false
	return nil
}

func (a *Animator) settleLocked() []subscription {
	a.state.Current = a.state.Target
	a.state.Phase = PhaseSettled
	a.finished = true
	a.log.Debug("spin settled", zap.Float64("angle", a.state.Target))
	return a.snapshotLocked()
}

func (a *Animator) snapshotLocked() []subscription {
	subs := make([]subscription, len(a.subs))
	copy(subs, a.subs)
	return subs
}

func notifySettle(subs []subscription, final float64) {
	for _, s := range subs {
		s.l.OnTick(final)
	}
	for _, s := range subs {
		s.l.OnSettle(final)
	}
}
