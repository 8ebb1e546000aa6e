package env

import (
	"errors"
	"fmt"
	"fortune_wheel/internal/config"
	"net"
	"os"
	"time"
)

const (
	httpHostEnvName            = "HTTP_HOST"
	httpPortEnvName            = "HTTP_PORT"
	httpShutdownTimeoutEnvName = "HTTP_SHUTDOWN_TIMEOUT"

	defaultShutdownTimeout = 10 * time.Second
)

type httpConfig struct {
	host            string
	port            string
	shutdownTimeout time.Duration
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		return nil, errors.New("http port not found")
	}

	timeout := defaultShutdownTimeout
	if raw := os.Getenv(httpShutdownTimeoutEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid http shutdown timeout: %w", err)
		}
		timeout = parsed
	}

	return &httpConfig{
		host:            os.Getenv(httpHostEnvName),
		port:            port,
		shutdownTimeout: timeout,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) ShutdownTimeout() time.Duration {
	return cfg.shutdownTimeout
}
