package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
)

type AvailabilityRepository struct {
	mu    sync.RWMutex
	items map[string]availability.Availability
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{items: make(map[string]availability.Availability)}
}

func (r *AvailabilityRepository) Add(_ context.Context, item availability.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := compositeKey(item.User, item.Date)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: availability %s on %s", ErrDuplicate, item.User, item.Date)
	}
	r.items[key] = item
	return nil
}

func (r *AvailabilityRepository) Get(_ context.Context, user, date string) (availability.Availability, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[compositeKey(user, date)]
	return item, ok, nil
}

func (r *AvailabilityRepository) ListByDate(_ context.Context, date string) ([]availability.Availability, error) {
	return r.filter(func(item availability.Availability) bool { return item.Date == date }), nil
}

func (r *AvailabilityRepository) ListByUser(_ context.Context, user, periodLabel string) ([]availability.Availability, error) {
	return r.filter(func(item availability.Availability) bool {
		return item.User == user && item.Period == periodLabel
	}), nil
}

func (r *AvailabilityRepository) ListByPeriod(_ context.Context, periodLabel string) ([]availability.Availability, error) {
	return r.filter(func(item availability.Availability) bool { return item.Period == periodLabel }), nil
}

func (r *AvailabilityRepository) Delete(_ context.Context, user, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, compositeKey(user, date))
	return nil
}

func (r *AvailabilityRepository) DeleteByDate(_ context.Context, date string) error {
	r.deleteWhere(func(item availability.Availability) bool { return item.Date == date })
	return nil
}

func (r *AvailabilityRepository) DeleteByUser(_ context.Context, user, periodLabel string) error {
	r.deleteWhere(func(item availability.Availability) bool {
		return item.User == user && item.Period == periodLabel
	})
	return nil
}

func (r *AvailabilityRepository) DeleteByPeriod(_ context.Context, periodLabel string) error {
	r.deleteWhere(func(item availability.Availability) bool { return item.Period == periodLabel })
	return nil
}

// filter returns matches ordered by date then user.
func (r *AvailabilityRepository) filter(match func(availability.Availability) bool) []availability.Availability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]availability.Availability, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].User < out[j].User
	})
	return out
}

func (r *AvailabilityRepository) deleteWhere(match func(availability.Availability) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if match(item) {
			delete(r.items, key)
		}
	}
}
