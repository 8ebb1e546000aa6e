package memory_repo

import (
	"context"
	"fortune_wheel/internal/model"
	"fortune_wheel/internal/repository"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Repo keeps wheels in process memory. Used when no database is configured.
type Repo struct {
	mtx    sync.RWMutex
	wheels map[uuid.UUID]model.Wheel
}

func NewWheelRepository() *Repo {
	return &Repo{
		wheels: make(map[uuid.UUID]model.Wheel),
	}
}

var _ repository.WheelRepository = (*Repo)(nil)

func (r *Repo) CreateWheel(_ context.Context, w *model.Wheel) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.wheels[w.ID] = clone(*w)
	return nil
}

func (r *Repo) GetWheel(_ context.Context, id uuid.UUID) (*model.Wheel, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	w, ok := r.wheels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := clone(w)
	return &out, nil
}

func (r *Repo) DeleteWheel(_ context.Context, id uuid.UUID) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.wheels[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.wheels, id)
	return nil
}

// Len returns the number of stored wheels.
func (r *Repo) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.wheels)
}

func clone(w model.Wheel) model.Wheel {
	w.Settings.Rewards = slices.Clone(w.Settings.Rewards)
	w.Settings.Colors = slices.Clone(w.Settings.Colors)
	w.Settings.TextColors = slices.Clone(w.Settings.TextColors)
	if w.Settings.Winner != nil {
		v := *w.Settings.Winner
		w.Settings.Winner = &v
	}
	return w
}
