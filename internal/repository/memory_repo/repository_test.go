package memory_repo

import (
	"context"
	"errors"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewWheelRepository()
	winner := 1
	w := &model.Wheel{
		ID: uuid.New(),
		Settings: model.WheelSettings{
			Rewards: []string{"A", "B"},
			Winner:  &winner,
		},
		CreatedAt: time.Now(),
	}
	if err := r.CreateWheel(ctx, w); err != nil {
		t.Fatal(err)
	}

	w.Settings.Rewards[0] = "mutated"
	winner = 0

	got, err := r.GetWheel(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Settings.Rewards[0] != "A" || *got.Settings.Winner != 1 {
		t.Errorf("stored wheel aliased caller data: %+v", got.Settings)
	}

	got.Settings.Rewards[1] = "mutated"
	again, _ := r.GetWheel(ctx, w.ID)
	if again.Settings.Rewards[1] != "B" {
		t.Error("returned wheel aliases stored data")
	}

	if err := r.DeleteWheel(ctx, w.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetWheel(ctx, w.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := r.DeleteWheel(ctx, w.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
