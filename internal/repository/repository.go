package repository

import (
	"context"
	"errors"
	"fortune_wheel/internal/model"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("wheel not found")

// WheelRepository stores wheel configurations. Spins are never persisted.
type WheelRepository interface {
	CreateWheel(ctx context.Context, w *model.Wheel) error
	GetWheel(ctx context.Context, id uuid.UUID) (*model.Wheel, error)
	DeleteWheel(ctx context.Context, id uuid.UUID) error
}
