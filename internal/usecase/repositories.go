package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
)

// Repositories bundles the stores every schedule service reads and writes.
type Repositories struct {
	Periods      period.Repository
	Cooks        roster.Repository
	Availability availability.Repository
	Preferences  preference.Repository
	Assignments  assignment.Repository
}

func (r Repositories) requirePeriod(ctx context.Context, label string) (period.Period, error) {
	label = strings.TrimSpace(label)
	if _, _, err := period.ParseLabel(label); err != nil {
		return period.Period{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := r.Periods.GetByLabel(ctx, label)
	if err != nil {
		return period.Period{}, fmt.Errorf("get period: %w", err)
	}
	if !exists {
		return period.Period{}, fmt.Errorf("%w: period %s", ErrNotRegistered, label)
	}
	return item, nil
}

func (r Repositories) requireOpenPeriod(ctx context.Context, label string) (period.Period, error) {
	item, err := r.requirePeriod(ctx, label)
	if err != nil {
		return period.Period{}, err
	}
	if !item.IsOpen {
		return period.Period{}, fmt.Errorf("%w: period %s is closed", ErrPreconditionFailed, item.Label)
	}
	return item, nil
}

func (r Repositories) requireCurrentPeriod(ctx context.Context) (period.Period, error) {
	item, exists, err := r.Periods.GetCurrent(ctx)
	if err != nil {
		return period.Period{}, fmt.Errorf("get current period: %w", err)
	}
	if !exists {
		return period.Period{}, fmt.Errorf("%w: no current period", ErrNotRegistered)
	}
	return item, nil
}

func (r Repositories) requireDate(ctx context.Context, raw string) (period.CookingDate, error) {
	date, err := period.NormalizeDate(raw)
	if err != nil {
		return period.CookingDate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := r.Periods.GetDate(ctx, date)
	if err != nil {
		return period.CookingDate{}, fmt.Errorf("get cooking date: %w", err)
	}
	if !exists {
		return period.CookingDate{}, fmt.Errorf("%w: cooking date %s", ErrNotRegistered, date)
	}
	return item, nil
}

func (r Repositories) requireCook(ctx context.Context, user, periodLabel string) (roster.Cook, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return roster.Cook{}, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	item, exists, err := r.Cooks.Get(ctx, user, periodLabel)
	if err != nil {
		return roster.Cook{}, fmt.Errorf("get cook: %w", err)
	}
	if !exists {
		return roster.Cook{}, fmt.Errorf("%w: cook %s in period %s", ErrNotRegistered, user, periodLabel)
	}
	return item, nil
}
