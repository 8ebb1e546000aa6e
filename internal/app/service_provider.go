package app

import (
	"context"
	"errors"
	wheelAPI "fortune_wheel/internal/api/wheel"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/config/env"
	"fortune_wheel/internal/metrics"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/render"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/repository/memory_repo"
	"fortune_wheel/internal/repository/wheel_repo"
	"fortune_wheel/internal/service"
	wheelServ "fortune_wheel/internal/service/wheel"
	"fortune_wheel/internal/wheel"
	"fortune_wheel/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const appName = "fortune_wheel"

type ServiceProvider struct {
	// Logging and metrics
	logCfg  config.LogConfig
	log     *zap.Logger
	metrics *metrics.Metrics

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Wheel bits
	wheelCfg  config.WheelConfig
	wheelRepo repository.WheelRepository
	renderer  *render.Renderer
	wheelServ service.WheelService
	wheelHand *wheelAPI.Handler

	// Operator auth
	jwtCfg config.JWTConfig

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		cfg := sp.LogCfg()
		mode := logger.Dev
		if cfg.Production() {
			mode = logger.Prod
		}
		sp.log = logger.New(&logger.Config{
			Mode:  mode,
			Level: cfg.Level(),
			App:   appName,
			Dir:   cfg.Dir(),
			File:  cfg.File(),
		})
	}
	return sp.log
}

func (sp *ServiceProvider) Metrics() *metrics.Metrics {
	if sp.metrics == nil {
		sp.metrics = metrics.New(prometheus.DefaultRegisterer)
	}
	return sp.metrics
}

// PgConfig returns nil when PG_DSN is unset.
func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if errors.Is(err, env.ErrNoDSN) {
			return nil
		}
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

// WheelRepository stores wheels in postgres, or in memory without PG_DSN.
func (sp *ServiceProvider) WheelRepository(ctx context.Context) repository.WheelRepository {
	if sp.wheelRepo == nil {
		if sp.PgConfig() == nil {
			sp.Logger().Warn("PG_DSN is not set, wheels are kept in memory")
			sp.wheelRepo = memory_repo.NewWheelRepository()
		} else {
			sp.wheelRepo = wheel_repo.NewWheelRepository(sp.DBClient(ctx), sp.TXManager(ctx))
		}
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) Renderer() *render.Renderer {
	if sp.renderer == nil {
		r, err := render.New()
		if err != nil {
			panic("failed to load fonts: " + err.Error())
		}
		sp.renderer = r
	}
	return sp.renderer
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		s, err := wheelServ.NewWheelService(
			sp.WheelRepository(ctx),
			sp.WheelCfg(),
			sp.Renderer(),
			sp.Metrics(),
			sp.Logger(),
		)
		if err != nil {
			panic("failed to create wheel service: " + err.Error())
		}
		sp.wheelServ = s
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{
			Serv: sp.WheelService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))
		r.Use(middleware.Logger(sp.Logger()))

		r.Handle("/metrics", promhttp.Handler())

		// Wheel endpoints
		operator := middleware.RequireOperator(sp.JWTCfg().AccessTokenSecretKey(), sp.Logger())
		wheelAPI.Register(r, sp.WheelHandler(ctx), operator)

		sp.router = r
	}
	return sp.router
}

// Close releases the wheel service and the database pool.
func (sp *ServiceProvider) Close() error {
	var err error
	if sp.wheelServ != nil {
		if cerr := sp.wheelServ.Close(); !errors.Is(cerr, wheel.ErrClosed) {
			err = cerr
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
	return err
}
