package app

import (
	"context"
	"errors"
	"fortune_wheel/internal/config"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run serves HTTP until SIGINT or SIGTERM, then drains requests and settles
// the spins still in flight.
func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()
	defer func() {
		if err := s.ServiceProvider.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpCfg := s.ServiceProvider.HTTPCfg()
	lg := s.ServiceProvider.Logger()
	srv := &http.Server{
		Addr:    httpCfg.Address(),
		Handler: s.ServiceProvider.Router(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("starting server", zap.String("address", httpCfg.Address()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout())
	defer cancel()
	if err := s.ServiceProvider.WheelService(ctx).Close(); err != nil {
		lg.Warn("close wheel service", zap.Error(err))
	}
	return srv.Shutdown(shutdownCtx)
}
