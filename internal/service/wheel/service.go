package wheel

import (
	"context"
	"errors"
	"fmt"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/converter"
	"fortune_wheel/internal/metrics"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/render"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/service"
	"fortune_wheel/internal/wheel"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrNoResult       = fmt.Errorf("%w: wheel has not been spun", wheel.ErrState)
)

type serv struct {
	repo     repository.WheelRepository
	cfg      config.WheelConfig
	renderer *render.Renderer
	metrics  *metrics.Metrics
	log      *zap.Logger
	ctrlOpts []wheel.Option

	// pool runs one animation loop per spinning wheel.
	pool   *ants.Pool
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	live    map[uuid.UUID]*liveWheel
	deleted map[uuid.UUID]struct{}
	closed  bool
}

// Option tunes the service.
type Option func(*serv)

// WithControllerOptions forwards options to every wheel controller the service builds.
func WithControllerOptions(opts ...wheel.Option) Option {
	return func(s *serv) {
		s.ctrlOpts = append(s.ctrlOpts, opts...)
	}
}

// NewWheelService builds the wheel service. Wheels live in memory once created
// or first read and are rebuilt from repo after a restart.
func NewWheelService(
	repo repository.WheelRepository,
	cfg config.WheelConfig,
	renderer *render.Renderer,
	m *metrics.Metrics,
	log *zap.Logger,
	opts ...Option,
) (service.WheelService, error) {
	pool, err := ants.NewPool(cfg.Workers())
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &serv{
		repo:     repo,
		cfg:      cfg,
		renderer: renderer,
		metrics:  m,
		log:      log,
		pool:     pool,
		ctx:      ctx,
		cancel:   cancel,
		live:     make(map[uuid.UUID]*liveWheel),
		deleted:  make(map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *serv) Presets() []model.Preset {
	return s.cfg.Presets()
}

// Get returns the wheel with its live state, loading it from storage if needed.
func (s *serv) Get(ctx context.Context, id uuid.UUID) (*model.WheelView, error) {
	lw, err := s.wheel(ctx, id)
	if err != nil {
		return nil, err
	}
	v := lw.view()
	return &v, nil
}

// Delete removes the wheel from storage, then tears down its live copy. A
// spin in flight is finished at its target so watchers still receive the
// result. Once deleted, an id is never loaded again.
func (s *serv) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return wheel.ErrClosed
	}
	_, wasDeleted := s.deleted[id]
	s.deleted[id] = struct{}{}
	s.mu.Unlock()

	err := s.repo.DeleteWheel(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		if !wasDeleted {
			s.mu.Lock()
			delete(s.deleted, id)
			s.mu.Unlock()
		}
		return err
	}

	s.mu.Lock()
	lw, ok := s.live[id]
	delete(s.live, id)
	s.mu.Unlock()
	if !ok {
		if err != nil {
			return err
		}
	} else {
		s.metrics.WheelsLive.Dec()
		lw.shutdown()
	}
	s.log.Info("wheel deleted", zap.Stringer("wheel_id", id))
	return nil
}

// Close finishes every spin, drops all wheels from memory and stops the pool.
func (s *serv) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return wheel.ErrClosed
	}
	s.closed = true
	live := s.live
	s.live = nil
	s.mu.Unlock()

	for _, lw := range live {
		lw.shutdown()
		s.metrics.WheelsLive.Dec()
	}
	s.cancel()
	s.pool.Release()
	return nil
}

// wheel returns the live wheel for id, rebuilding it from storage when it
// is not in memory.
func (s *serv) wheel(ctx context.Context, id uuid.UUID) (*liveWheel, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, wheel.ErrClosed
	}
	if _, gone := s.deleted[id]; gone {
		s.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	lw, ok := s.live[id]
	s.mu.Unlock()
	if ok {
		return lw, nil
	}

	stored, err := s.repo.GetWheel(ctx, id)
	if err != nil {
		return nil, err
	}
	built, err := s.build(*stored)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		built.shutdown()
		return nil, wheel.ErrClosed
	}
	if _, gone := s.deleted[id]; gone {
		built.shutdown()
		return nil, repository.ErrNotFound
	}
	if existing, ok := s.live[id]; ok {
		built.shutdown()
		return existing, nil
	}
	s.live[id] = built
	s.metrics.WheelsLive.Inc()
	s.log.Debug("wheel loaded", zap.Stringer("wheel_id", id))
	return built, nil
}

// build configures a controller for w and hooks the service into its
// tick and result streams.
func (s *serv) build(w model.Wheel) (*liveWheel, error) {
	cfg, err := converter.ToWheelConfig(w.Settings)
	if err != nil {
		return nil, err
	}

	lw := newLiveWheel(w)
	opts := append([]wheel.Option{
		wheel.WithLogger(s.log.With(zap.Stringer("wheel_id", w.ID))),
		wheel.WithResultSink(wheel.ResultFunc(func(r wheel.Result) {
			s.settled(lw, r)
		})),
	}, s.ctrlOpts...)

	ctrl := wheel.NewController(opts...)
	if err := ctrl.Configure(cfg); err != nil {
		_ = ctrl.Close()
		return nil, err
	}
	ctrl.Animator().Subscribe(wheel.ListenerFuncs{Tick: lw.tick})

	lw.ctrl = ctrl
	lw.cfg = ctrl.Config()
	lw.segments = ctrl.Segments()
	lw.solver = ctrl.Solver()
	return lw, nil
}
