package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	items map[string]roster.Cook
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string]roster.Cook)}
}

func (r *RosterRepository) Add(_ context.Context, cook roster.Cook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := compositeKey(cook.User, cook.Period)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: cook %s in %s", ErrDuplicate, cook.User, cook.Period)
	}
	r.items[key] = cook
	return nil
}

func (r *RosterRepository) Get(_ context.Context, user, periodLabel string) (roster.Cook, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[compositeKey(user, periodLabel)]
	return item, ok, nil
}

func (r *RosterRepository) ListByPeriod(_ context.Context, periodLabel string) ([]roster.Cook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Cook, 0)
	for _, item := range r.items {
		if item.Period == periodLabel {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User < out[j].User })
	return out, nil
}

func (r *RosterRepository) Delete(_ context.Context, user, periodLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, compositeKey(user, periodLabel))
	return nil
}

func (r *RosterRepository) DeleteByPeriod(_ context.Context, periodLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.Period == periodLabel {
			delete(r.items, key)
		}
	}
	return nil
}
