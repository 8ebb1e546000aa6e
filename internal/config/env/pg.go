package env

import (
	"errors"
	"fortune_wheel/internal/config"
	"os"
)

const (
	dsnName = "PG_DSN"
)

// ErrNoDSN is returned when PG_DSN is unset. The service then keeps wheels in memory.
var ErrNoDSN = errors.New("pg dsn not found")

type pgConfig struct {
	dsn string
}

func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, ErrNoDSN
	}

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
