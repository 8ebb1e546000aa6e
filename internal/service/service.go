package service

import (
	"context"
	"fortune_wheel/internal/model"
	"io"

	"github.com/google/uuid"
)

type WheelService interface {
	Create(ctx context.Context, settings model.WheelSettings) (*model.WheelView, error)
	CreateFromPreset(ctx context.Context, name string) (*model.WheelView, error)
	Get(ctx context.Context, id uuid.UUID) (*model.WheelView, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Spin(ctx context.Context, id uuid.UUID) (*model.SpinStarted, error)
	Result(ctx context.Context, id uuid.UUID) (*model.SpinResult, error)
	Reset(ctx context.Context, id uuid.UUID) error
	Watch(ctx context.Context, id uuid.UUID) (<-chan model.SpinEvent, error)

	RenderPNG(ctx context.Context, id uuid.UUID, angle *float64, w io.Writer) error
	ShareQR(ctx context.Context, id uuid.UUID) ([]byte, error)
	Presets() []model.Preset

	Close() error
}
