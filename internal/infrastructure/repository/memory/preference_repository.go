package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
)

type PreferenceRepository struct {
	mu    sync.RWMutex
	items map[string]preference.Preference
}

func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{items: make(map[string]preference.Preference)}
}

func (r *PreferenceRepository) Upsert(_ context.Context, item preference.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := compositeKey(item.User, item.Period)
	if existing, ok := r.items[key]; ok {
		item.ID = existing.ID
	}
	r.items[key] = item
	return nil
}

func (r *PreferenceRepository) Get(_ context.Context, user, periodLabel string) (preference.Preference, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[compositeKey(user, periodLabel)]
	return item, ok, nil
}

func (r *PreferenceRepository) ListByPeriod(_ context.Context, periodLabel string) ([]preference.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]preference.Preference, 0)
	for _, item := range r.items {
		if item.Period == periodLabel {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User < out[j].User })
	return out, nil
}

func (r *PreferenceRepository) Delete(_ context.Context, user, periodLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, compositeKey(user, periodLabel))
	return nil
}

func (r *PreferenceRepository) DeleteByPeriod(_ context.Context, periodLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.Period == periodLabel {
			delete(r.items, key)
		}
	}
	return nil
}
