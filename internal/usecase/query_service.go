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

// CookWorkload is a cook's booked cooking days against their ceiling.
type CookWorkload struct {
	User          string `json:"user"`
	Assigned      int    `json:"assigned"`
	Max           int    `json:"max"`
	Remaining     int    `json:"remaining"`
	HasPreference bool   `json:"has_preference"`
}

// QueryService is the read side of the schedule. List queries return an
// empty slice when nothing matches.
type QueryService struct {
	repos Repositories
}

func NewQueryService(repos Repositories) *QueryService {
	return &QueryService{repos: repos}
}

func (s *QueryService) IsRegistered(ctx context.Context, label string) (bool, error) {
	_, exists, err := s.repos.Periods.GetByLabel(ctx, strings.TrimSpace(label))
	if err != nil {
		return false, fmt.Errorf("get period: %w", err)
	}
	return exists, nil
}

func (s *QueryService) IsOpen(ctx context.Context, label string) (bool, error) {
	item, exists, err := s.repos.Periods.GetByLabel(ctx, strings.TrimSpace(label))
	if err != nil {
		return false, fmt.Errorf("get period: %w", err)
	}
	return exists && item.IsOpen, nil
}

func (s *QueryService) GetCurrentPeriod(ctx context.Context) (period.Period, bool, error) {
	item, exists, err := s.repos.Periods.GetCurrent(ctx)
	if err != nil {
		return period.Period{}, false, fmt.Errorf("get current period: %w", err)
	}
	return item, exists, nil
}

func (s *QueryService) ListPeriods(ctx context.Context) ([]period.Period, error) {
	items, err := s.repos.Periods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return nonNil(items), nil
}

func (s *QueryService) GetCooks(ctx context.Context, label string) ([]roster.Cook, error) {
	items, err := s.repos.Cooks.ListByPeriod(ctx, strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("list cooks: %w", err)
	}
	return nonNil(items), nil
}

func (s *QueryService) GetCookingDates(ctx context.Context, label string) ([]period.CookingDate, error) {
	items, err := s.repos.Periods.ListDates(ctx, strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("list cooking dates: %w", err)
	}
	return nonNil(items), nil
}

func (s *QueryService) GetAssignment(ctx context.Context, rawDate string) ([]assignment.Assignment, error) {
	date, err := period.NormalizeDate(rawDate)
	if err != nil {
		return []assignment.Assignment{}, nil
	}
	item, exists, err := s.repos.Assignments.Get(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	if !exists {
		return []assignment.Assignment{}, nil
	}
	return []assignment.Assignment{item}, nil
}

func (s *QueryService) GetAssignments(ctx context.Context, label string) ([]assignment.Assignment, error) {
	items, err := s.repos.Assignments.ListByPeriod(ctx, strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return nonNil(items), nil
}

func (s *QueryService) GetAvailability(ctx context.Context, user, label string) ([]availability.Availability, error) {
	items, err := s.repos.Availability.ListByUser(ctx, strings.TrimSpace(user), strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return nonNil(items), nil
}

func (s *QueryService) GetPreference(ctx context.Context, user, label string) ([]preference.Preference, error) {
	item, exists, err := s.repos.Preferences.Get(ctx, strings.TrimSpace(user), strings.TrimSpace(label))
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	if !exists {
		return []preference.Preference{}, nil
	}
	return []preference.Preference{item}, nil
}

// GetWorkload reports each rostered cook's load in the period, ordered by user.
func (s *QueryService) GetWorkload(ctx context.Context, label string) ([]CookWorkload, error) {
	label = strings.TrimSpace(label)
	cooks, err := s.repos.Cooks.ListByPeriod(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("list cooks: %w", err)
	}
	items, err := s.repos.Assignments.ListByPeriod(ctx, label)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	out := make([]CookWorkload, 0, len(cooks))
	for _, cook := range cooks {
		pref, exists, err := s.repos.Preferences.Get(ctx, cook.User, label)
		if err != nil {
			return nil, fmt.Errorf("get preference: %w", err)
		}
		row := CookWorkload{
			User:          cook.User,
			Assigned:      assignment.CountFor(items, cook.User, ""),
			HasPreference: exists,
		}
		if exists {
			row.Max = pref.MaxCookingDays
			row.Remaining = max(pref.MaxCookingDays-row.Assigned, 0)
		}
		out = append(out, row)
	}
	return out, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
