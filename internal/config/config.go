package config

import (
	"fortune_wheel/internal/model"
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	ShutdownTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	Dir() string
	File() bool
	Production() bool
}

// WheelConfig holds the runtime knobs of the wheel service and the presets
// read from config.yaml.
type WheelConfig interface {
	FrameInterval() time.Duration
	Workers() int
	PublicURL() string
	Presets() []model.Preset
}
