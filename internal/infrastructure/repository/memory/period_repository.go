package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
)

type PeriodRepository struct {
	mu      sync.RWMutex
	periods map[string]period.Period
	dates   map[string]period.CookingDate
}

func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{
		periods: make(map[string]period.Period),
		dates:   make(map[string]period.CookingDate),
	}
}

func (r *PeriodRepository) Create(_ context.Context, item period.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.periods[item.Label]; exists {
		return fmt.Errorf("%w: period %s", ErrDuplicate, item.Label)
	}
	if item.IsCurrent {
		r.clearCurrentLocked()
	}
	r.periods[item.Label] = item
	return nil
}

func (r *PeriodRepository) GetByLabel(_ context.Context, label string) (period.Period, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.periods[label]
	return item, ok, nil
}

func (r *PeriodRepository) GetCurrent(_ context.Context) (period.Period, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.periods {
		if item.IsCurrent {
			return item, true, nil
		}
	}
	return period.Period{}, false, nil
}

func (r *PeriodRepository) List(_ context.Context) ([]period.Period, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]period.Period, 0, len(r.periods))
	for _, item := range r.periods {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (r *PeriodRepository) SetCurrent(_ context.Context, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.periods[label]
	if !ok {
		return fmt.Errorf("period %s not found", label)
	}
	r.clearCurrentLocked()
	item.IsCurrent = true
	r.periods[label] = item
	return nil
}

func (r *PeriodRepository) SetOpen(_ context.Context, label string, open bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.periods[label]
	if !ok {
		return fmt.Errorf("period %s not found", label)
	}
	item.IsOpen = open
	r.periods[label] = item
	return nil
}

func (r *PeriodRepository) Delete(_ context.Context, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.periods, label)
	return nil
}

func (r *PeriodRepository) CreateDate(_ context.Context, item period.CookingDate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dates[item.Date]; exists {
		return fmt.Errorf("%w: cooking date %s", ErrDuplicate, item.Date)
	}
	r.dates[item.Date] = item
	return nil
}

func (r *PeriodRepository) GetDate(_ context.Context, date string) (period.CookingDate, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.dates[date]
	return item, ok, nil
}

func (r *PeriodRepository) ListDates(_ context.Context, label string) ([]period.CookingDate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]period.CookingDate, 0)
	for _, item := range r.dates {
		if item.Period == label {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *PeriodRepository) DeleteDate(_ context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.dates, date)
	return nil
}

func (r *PeriodRepository) DeleteDatesByPeriod(_ context.Context, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.dates {
		if item.Period == label {
			delete(r.dates, key)
		}
	}
	return nil
}

func (r *PeriodRepository) clearCurrentLocked() {
	for key, item := range r.periods {
		if item.IsCurrent {
			item.IsCurrent = false
			r.periods[key] = item
		}
	}
}
