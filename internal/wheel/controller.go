package wheel

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Result is the outcome of a settled spin.
type Result struct {
	// Index is the segment the knob rests on, recovered from Angle.
	Index int
	// Value is the reward bound to Index.
	Value string
	// Angle is the settled rotation in degrees.
	Angle float64
	// Requested is the winner the spin was armed with.
	Requested int
}

// ResultSink receives each settled result exactly once.
type ResultSink interface {
	OnResult(r Result)
}

// ResultFunc adapts a function to ResultSink.
type ResultFunc func(r Result)

func (f ResultFunc) OnResult(r Result) {
	f(r)
}

// Controller composes partitioning, angle solving and animation into the
// configure, spin, settle, reset lifecycle of one wheel.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	segments []Segment
	solver   Solver
	armed    int
	pending  chan Result
	sinks    []sinkEntry
	nextSink int
	closed   bool

	animator *Animator
	rng      *rand.Rand
	log      *zap.Logger
}

// Option configures a Controller.
type Option func(*controllerOptions)

type sinkEntry struct {
	id   int
	sink ResultSink
}

type controllerOptions struct {
	rng       *rand.Rand
	log       *zap.Logger
	animOpts  []AnimatorOption
	resultFns []ResultSink
}

// WithRand sets the source used for shuffling and random winners.
func WithRand(r *rand.Rand) Option {
	return func(o *controllerOptions) {
		o.rng = r
	}
}

// WithLogger sets the logger for the controller and its animator.
func WithLogger(l *zap.Logger) Option {
	return func(o *controllerOptions) {
		o.log = l
	}
}

// WithAnimatorOptions forwards options to the owned animator.
func WithAnimatorOptions(opts ...AnimatorOption) Option {
	return func(o *controllerOptions) {
		o.animOpts = append(o.animOpts, opts...)
	}
}

// WithResultSink registers a sink at construction.
func WithResultSink(s ResultSink) Option {
	return func(o *controllerOptions) {
		o.resultFns = append(o.resultFns, s)
	}
}

func NewController(opts ...Option) *Controller {
	o := controllerOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	animOpts := append([]AnimatorOption{WithAnimatorLogger(o.log)}, o.animOpts...)
	c := &Controller{
		animator: NewAnimator(animOpts...),
		rng:      o.rng,
		log:      o.log,
	}
	for _, s := range o.resultFns {
		c.Register(s)
	}
	c.animator.Subscribe(ListenerFuncs{Settle: c.settled})
	return c
}

// Configure validates cfg, shuffles the rewards once when asked to and lays
// out the segments. Only allowed while idle.
func (c *Controller) Configure(cfg Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if p := c.animator.Phase(); p != PhaseIdle {
		return stateErr("configure", p)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Shuffle {
		cfg.Rewards = Shuffle(cfg.Rewards, c.rng)
	}

	segments, err := Partition(cfg)
	if err != nil {
		return err
	}
	solver, err := NewSolver(len(segments))
	if err != nil {
		return err
	}
	if err := c.animator.SetEasing(cfg.Easing); err != nil {
		return err
	}

	c.cfg = cfg
	c.segments = segments
	c.solver = solver

	c.log.Info("wheel configured",
		zap.Int("segments", len(segments)),
		zap.Bool("shuffled", cfg.Shuffle),
		zap.Duration("duration", cfg.Duration),
	)
	return nil
}

// Config returns the effective configuration, after defaults and shuffle.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Segments returns the static layout. The slice is a copy.
func (c *Controller) Segments() []Segment {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Segment, len(c.segments))
	copy(out, c.segments)
	return out
}

// Solver returns the angle solver for the current layout.
func (c *Controller) Solver() Solver {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.solver
}

// Animator exposes the owned animator for driving and observing the spin.
func (c *Controller) Animator() *Animator {
	return c.animator
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.animator.Phase()
}

// Ready reports whether a spin may be started.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && len(c.segments) > 0 && c.animator.Phase() == PhaseIdle
}

// Spin arms the winner and starts the animation. The returned channel yields
// the result once the animation settles. Spin fails with ErrState unless the
// wheel is configured and idle; state is left unchanged in that case.
func (c *Controller) Spin() (<-chan Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if len(c.segments) == 0 {
		return nil, stateErr("spin before configure", PhaseIdle)
	}
	if p := c.animator.Phase(); p != PhaseIdle {
		return nil, stateErr("spin", p)
	}

	winner := c.rng.IntN(len(c.segments))
	if c.cfg.Winner != nil {
		winner = *c.cfg.Winner
	}
	target, err := c.solver.TargetAngle(winner, c.cfg.Duration, c.cfg.Direction)
	if err != nil {
		return nil, err
	}

	pending := make(chan Result, 1)
	if err := c.animator.Arm(target, c.cfg.Duration); err != nil {
		return nil, err
	}
	c.armed = winner
	c.pending = pending

	c.log.Info("spin started",
		zap.Int("winner", winner),
		zap.Float64("target", target),
		zap.Stringer("direction", c.cfg.Direction),
	)
	return pending, nil
}

// Armed returns the winner index of the current or last spin.
func (c *Controller) Armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// settled resolves the landed segment from the angle the wheel actually
// rests at. That index is authoritative even if it differs from the armed one.
func (c *Controller) settled(final float64) {
	c.mu.Lock()
	index := c.solver.LandedIndex(final)
	res := Result{
		Index:     index,
		Value:     c.segments[index].Value,
		Angle:     final,
		Requested: c.armed,
	}
	pending := c.pending
	c.pending = nil
	sinks := make([]sinkEntry, len(c.sinks))
	copy(sinks, c.sinks)
	c.mu.Unlock()

	if index != res.Requested {
		c.log.Warn("landed segment differs from armed winner",
			zap.Int("landed", index),
			zap.Int("armed", res.Requested),
			zap.Float64("angle", final),
		)
	}
	c.log.Info("spin settled",
		zap.Int("index", index),
		zap.String("value", res.Value),
		zap.Float64("angle", final),
	)

	if pending != nil {
		pending <- res
		close(pending)
	}
	for _, s := range sinks {
		s.sink.OnResult(res)
	}
}

// Advance drives the animation to now. See Animator.Advance.
func (c *Controller) Advance(now time.Time) bool {
	return c.animator.Advance(now)
}

// Reset returns a settled wheel to idle. It fails with ErrState while a spin
// is armed or running.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.animator.Reset()
}

// Register attaches a result sink and returns its unregister function, which
// may be called more than once.
func (c *Controller) Register(s ResultSink) (unregister func()) {
	c.mu.Lock()
	id := c.nextSink
	c.nextSink++
	c.sinks = append(c.sinks, sinkEntry{id: id, sink: s})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i := range c.sinks {
				if c.sinks[i].id == id {
					c.sinks = append(c.sinks[:i:i], c.sinks[i+1:]...)
					return
				}
			}
		})
	}
}

// Close tears the wheel down. A spin still in flight is finished at its
// target first so its result is delivered.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	c.mu.Unlock()

	if c.animator.Phase() == PhaseSpinning {
		if err := c.animator.Finish(); err != nil && !errors.Is(err, ErrState) {
			return err
		}
	}

	c.mu.Lock()
	c.sinks = nil
	c.mu.Unlock()
	c.log.Debug("wheel closed")
	return nil
}
