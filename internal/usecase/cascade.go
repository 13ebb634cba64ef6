package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

// Referential cleanup for parent deletes. Children are removed before their
// parent so an interrupted cascade never leaves a dangling reference.

func (r Repositories) cascadeDeleteDate(ctx context.Context, date string) error {
	if err := r.Assignments.Delete(ctx, date); err != nil {
		return fmt.Errorf("delete assignment for date: %w", err)
	}
	if err := r.Availability.DeleteByDate(ctx, date); err != nil {
		return fmt.Errorf("delete availability for date: %w", err)
	}
	if err := r.Periods.DeleteDate(ctx, date); err != nil {
		return fmt.Errorf("delete cooking date: %w", err)
	}
	return nil
}

// cascadeDeleteCook drops entries the user leads and vacates the assistant
// slot where the user assists, leaving the remaining lead scheduled.
func (r Repositories) cascadeDeleteCook(ctx context.Context, logger *logging.Logger, user, periodLabel string) error {
	items, err := r.Assignments.ListByUser(ctx, user, periodLabel)
	if err != nil {
		return fmt.Errorf("list assignments for cook: %w", err)
	}
	for _, item := range items {
		if item.Lead == user {
			if err := r.Assignments.Delete(ctx, item.Date); err != nil {
				return fmt.Errorf("delete assignment led by cook: %w", err)
			}
			logger.InfoContext(ctx, "assignment retracted", "reason", "cook removed", "date", item.Date, "user", user)
			continue
		}
		if err := r.clearAssistant(ctx, item); err != nil {
			return err
		}
		logger.InfoContext(ctx, "assistant cleared", "reason", "cook removed", "date", item.Date, "user", user)
	}

	if err := r.Availability.DeleteByUser(ctx, user, periodLabel); err != nil {
		return fmt.Errorf("delete availability for cook: %w", err)
	}
	if err := r.Preferences.Delete(ctx, user, periodLabel); err != nil {
		return fmt.Errorf("delete preference for cook: %w", err)
	}
	if err := r.Cooks.Delete(ctx, user, periodLabel); err != nil {
		return fmt.Errorf("delete cook: %w", err)
	}
	return nil
}

func (r Repositories) cascadeDeletePeriod(ctx context.Context, label string) error {
	if err := r.Assignments.DeleteByPeriod(ctx, label); err != nil {
		return fmt.Errorf("delete assignments for period: %w", err)
	}
	if err := r.Availability.DeleteByPeriod(ctx, label); err != nil {
		return fmt.Errorf("delete availability for period: %w", err)
	}
	if err := r.Preferences.DeleteByPeriod(ctx, label); err != nil {
		return fmt.Errorf("delete preferences for period: %w", err)
	}
	if err := r.Cooks.DeleteByPeriod(ctx, label); err != nil {
		return fmt.Errorf("delete roster for period: %w", err)
	}
	if err := r.Periods.DeleteDatesByPeriod(ctx, label); err != nil {
		return fmt.Errorf("delete cooking dates for period: %w", err)
	}
	if err := r.Periods.Delete(ctx, label); err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	return nil
}

// retractUnavailable removes the date's assignment when the user holds either slot.
func (r Repositories) retractUnavailable(ctx context.Context, logger *logging.Logger, user, date string) error {
	item, exists, err := r.Assignments.Get(ctx, date)
	if err != nil {
		return fmt.Errorf("get assignment: %w", err)
	}
	if !exists || !item.Involves(user) {
		return nil
	}
	if err := r.Assignments.Delete(ctx, date); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	logger.InfoContext(ctx, "assignment retracted", "reason", "availability removed", "date", date, "user", user)
	return nil
}

func (r Repositories) clearAssistant(ctx context.Context, item assignment.Assignment) error {
	item.Assistant = ""
	if err := r.Assignments.Upsert(ctx, item); err != nil {
		return fmt.Errorf("clear assistant: %w", err)
	}
	return nil
}
