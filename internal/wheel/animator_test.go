package wheel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

type recorder struct {
	mu      sync.Mutex
	ticks   []float64
	settles []float64
}

func (r *recorder) OnTick(angle float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, angle)
}

func (r *recorder) OnSettle(final float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settles = append(r.settles, final)
}

func TestAnimatorLifecycle(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(WithClock(clock.Now), WithEasing(Linear))
	rec := &recorder{}
	a.Subscribe(rec)

	if err := a.Arm(545, time.Second); err != nil {
		t.Fatal(err)
	}
	if p := a.Phase(); p != PhaseSpinning {
		t.Fatalf("phase after arm = %s, want spinning", p)
	}
	if a.Finished() {
		t.Error("finished while spinning")
	}

	for i := 0; i < 4; i++ {
		if a.Advance(clock.Add(200 * time.Millisecond)) {
			t.Fatalf("settled early at step %d", i)
		}
	}
	if got := a.State().Current; got < 435 || got > 437 {
		t.Errorf("current at 80%% = %v, want 436", got)
	}

	if !a.Advance(clock.Add(200 * time.Millisecond)) {
		t.Fatal("not settled after full duration")
	}
	if a.Advance(clock.Add(time.Second)) != true {
		t.Error("Advance after settle should report settled")
	}

	st := a.State()
	if st.Phase != PhaseSettled || st.Current != 545 {
		t.Errorf("state = %+v, want settled at 545", st)
	}
	if len(rec.settles) != 1 || rec.settles[0] != 545 {
		t.Errorf("settles = %v, want exactly [545]", rec.settles)
	}
	for i := 1; i < len(rec.ticks); i++ {
		if rec.ticks[i] < rec.ticks[i-1] {
			t.Errorf("ticks not monotonic: %v", rec.ticks)
		}
	}
	if !a.Finished() {
		t.Error("not finished after settle")
	}

	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}
	if st := a.State(); st.Phase != PhaseIdle || st.Current != 0 {
		t.Errorf("state after reset = %+v", st)
	}
}

func TestAnimatorRejectsInvalidTransitions(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(WithClock(clock.Now))

	if err := a.Reset(); !errors.Is(err, ErrState) {
		t.Errorf("reset while idle err = %v", err)
	}
	if err := a.Finish(); !errors.Is(err, ErrState) {
		t.Errorf("finish while idle err = %v", err)
	}
	if err := a.Arm(100, 0); !errors.Is(err, ErrConfiguration) {
		t.Errorf("arm with zero duration err = %v", err)
	}
	if err := a.Arm(100, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := a.Arm(200, time.Second); !errors.Is(err, ErrState) {
		t.Errorf("second arm err = %v", err)
	}
	if got := a.State().Target; got != 100 {
		t.Errorf("target changed to %v by rejected arm", got)
	}
	if err := a.Reset(); !errors.Is(err, ErrState) {
		t.Errorf("reset while spinning err = %v", err)
	}
	if err := a.SetEasing(Linear); !errors.Is(err, ErrState) {
		t.Errorf("set easing while spinning err = %v", err)
	}
}

func TestAnimatorFinishSettlesAtTarget(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(WithClock(clock.Now))
	rec := &recorder{}
	a.Subscribe(rec)

	if err := a.Arm(-1000, 10*time.Second); err != nil {
		t.Fatal(err)
	}
	a.Advance(clock.Add(time.Second))
	if err := a.Finish(); err != nil {
		t.Fatal(err)
	}
	if st := a.State(); st.Phase != PhaseSettled || st.Current != -1000 {
		t.Errorf("state = %+v, want settled at -1000", st)
	}
	a.Advance(clock.Add(20 * time.Second))
	if len(rec.settles) != 1 {
		t.Errorf("settled %d times, want once", len(rec.settles))
	}
}

func TestSubscribeInvalidatesFinished(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(WithClock(clock.Now))
	if err := a.Arm(10, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	a.Advance(clock.Add(time.Millisecond))
	if !a.Finished() {
		t.Fatal("not finished after settle")
	}

	cancel := a.Subscribe(ListenerFuncs{})
	defer cancel()
	if a.Finished() {
		t.Error("subscribing did not clear the finished flag")
	}
}

func TestArmClearsFinishedBeforeTicks(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(WithClock(clock.Now))
	if err := a.Arm(10, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	a.Advance(clock.Add(time.Millisecond))
	if err := a.Reset(); err != nil {
		t.Fatal(err)
	}

	var sawFinished bool
	a.Subscribe(ListenerFuncs{Tick: func(float64) {
		if a.Finished() {
			sawFinished = true
		}
	}})
	if err := a.Arm(20, time.Second); err != nil {
		t.Fatal(err)
	}
	a.Advance(clock.Add(100 * time.Millisecond))
	if sawFinished {
		t.Error("tick observed a finished flag from the previous spin")
	}
}

func TestUnsubscribe(t *testing.T) {
	clock := newFakeClock()
	a := NewAnimator(WithClock(clock.Now))
	rec := &recorder{}
	cancel := a.Subscribe(rec)
	cancel()
	cancel()

	if err := a.Arm(10, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	a.Advance(clock.Add(time.Millisecond))
	if len(rec.ticks) != 0 || len(rec.settles) != 0 {
		t.Errorf("detached listener received events: %+v", rec)
	}
}

func TestAnimatorRun(t *testing.T) {
	a := NewAnimator(WithEasing(Linear))
	settled := make(chan float64, 1)
	a.Subscribe(ListenerFuncs{Settle: func(f float64) { settled <- f }})

	if err := a.Arm(90, 50*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Run(ctx, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	select {
	case f := <-settled:
		if f != 90 {
			t.Errorf("settled at %v, want 90", f)
		}
	default:
		t.Error("Run returned before settle")
	}
}

func TestAnimatorRunCancelled(t *testing.T) {
	a := NewAnimator()
	if err := a.Arm(90, time.Hour); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx, time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Errorf("Run err = %v, want context.Canceled", err)
	}
	if p := a.Phase(); p != PhaseSpinning {
		t.Errorf("phase after cancelled run = %s, want spinning", p)
	}
}

func TestEasingEndpoints(t *testing.T) {
	for name, e := range map[string]Easing{"linear": Linear, "ease": Ease, "ease-in-out": EaseInOut} {
		if e(0) != 0 || e(1) != 1 {
			t.Errorf("%s: e(0)=%v e(1)=%v", name, e(0), e(1))
		}
		prev := 0.0
		for x := 0.01; x <= 1; x += 0.01 {
			v := e(x)
			if v < prev-1e-9 {
				t.Errorf("%s not monotonic at %v", name, x)
				break
			}
			prev = v
		}
	}
	if v := EaseInOut(0.5); v < 0.499 || v > 0.501 {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", v)
	}
	if _, err := ParseEasing("bounce"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("ParseEasing(bounce) err = %v", err)
	}
}
