package memory

import (
	"context"
	"sync"

	"med-care-tracker/internal/domain/care"
)

// careRepo guarda el snapshot en memoria. Sirve para dev y tests;
// no sobrevive al proceso.
type careRepo struct {
	mu    sync.RWMutex
	state care.State
	saved bool
}

func NewCareRepo() care.Repository {
	return &careRepo{}
}

func (r *careRepo) Load(ctx context.Context) (care.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.saved {
		return care.State{}, false, nil
	}
	return r.state.Clone(), true, nil
}

func (r *careRepo) Save(ctx context.Context, s care.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = s.Clone()
	r.saved = true
	return nil
}
