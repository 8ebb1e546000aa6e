package env

import (
	"fortune_wheel/internal/config"
	"os"
	"strconv"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDirEnvName   = "LOG_DIR"
	logFileEnvName  = "LOG_FILE"
	appEnvEnvName   = "APP_ENV"
)

type logConfig struct {
	level string
	dir   string
	file  bool
	prod  bool
}

// NewLogConfig never fails: every variable has a default.
func NewLogConfig() config.LogConfig {
	cfg := &logConfig{
		level: os.Getenv(logLevelEnvName),
		dir:   os.Getenv(logDirEnvName),
		prod:  os.Getenv(appEnvEnvName) == "production",
	}
	if cfg.level == "" {
		cfg.level = "info"
	}
	if cfg.dir == "" {
		cfg.dir = "logs"
	}
	cfg.file, _ = strconv.ParseBool(os.Getenv(logFileEnvName))
	return cfg
}

func (l *logConfig) Level() string    { return l.level }
func (l *logConfig) Dir() string      { return l.dir }
func (l *logConfig) File() bool       { return l.file }
func (l *logConfig) Production() bool { return l.prod }
