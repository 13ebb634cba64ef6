package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
)

// AssignmentRepository keys entries by date, which makes a second
// assignment for the same date impossible to store.
type AssignmentRepository struct {
	mu    sync.RWMutex
	items map[string]assignment.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{items: make(map[string]assignment.Assignment)}
}

func (r *AssignmentRepository) Upsert(_ context.Context, item assignment.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.Date]; ok {
		item.ID = existing.ID
	}
	r.items[item.Date] = item
	return nil
}

func (r *AssignmentRepository) Get(_ context.Context, date string) (assignment.Assignment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[date]
	return item, ok, nil
}

func (r *AssignmentRepository) ListByPeriod(_ context.Context, periodLabel string) ([]assignment.Assignment, error) {
	return r.filter(func(item assignment.Assignment) bool { return item.Period == periodLabel }), nil
}

func (r *AssignmentRepository) ListByUser(_ context.Context, user, periodLabel string) ([]assignment.Assignment, error) {
	return r.filter(func(item assignment.Assignment) bool {
		return item.Period == periodLabel && item.Involves(user)
	}), nil
}

func (r *AssignmentRepository) Delete(_ context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, date)
	return nil
}

func (r *AssignmentRepository) DeleteByPeriod(_ context.Context, periodLabel string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.Period == periodLabel {
			delete(r.items, key)
		}
	}
	return nil
}

func (r *AssignmentRepository) filter(match func(assignment.Assignment) bool) []assignment.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
