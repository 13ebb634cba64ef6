package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

type CascadeAction string

const (
	CascadeActionDeleted          CascadeAction = "deleted"
	CascadeActionAssistantCleared CascadeAction = "assistant_cleared"
)

// CascadeChange records one assignment touched by a preference write.
type CascadeChange struct {
	Date   string        `json:"date"`
	Action CascadeAction `json:"action"`
	Reason string        `json:"reason"`
}

// runIncompatibilityCascade makes the user's assignments in pref.Period
// agree with pref. Capability losses are applied first, then any surplus
// over MaxCookingDays is trimmed from the latest date backwards, assistant
// slots before lead slots. A second run without a new write changes nothing.
func (r Repositories) runIncompatibilityCascade(ctx context.Context, logger *logging.Logger, pref preference.Preference) ([]CascadeChange, error) {
	items, err := r.Assignments.ListByUser(ctx, pref.User, pref.Period)
	if err != nil {
		return nil, fmt.Errorf("list assignments for cascade: %w", err)
	}

	changes := make([]CascadeChange, 0)
	record := func(item assignment.Assignment, action CascadeAction, reason string) {
		changes = append(changes, CascadeChange{Date: item.Date, Action: action, Reason: reason})
		logger.InfoContext(ctx, "cascade adjusted assignment",
			"user", pref.User,
			"period", pref.Period,
			"date", item.Date,
			"action", string(action),
			"reason", reason,
		)
	}

	kept := make([]assignment.Assignment, 0, len(items))
	for _, item := range items {
		switch {
		case item.Lead == pref.User && item.IsSolo() && !pref.CanSolo:
			if err := r.Assignments.Delete(ctx, item.Date); err != nil {
				return nil, fmt.Errorf("delete solo assignment: %w", err)
			}
			record(item, CascadeActionDeleted, "cannot cook solo")
		case item.Lead == pref.User && !pref.CanLead:
			if err := r.Assignments.Delete(ctx, item.Date); err != nil {
				return nil, fmt.Errorf("delete led assignment: %w", err)
			}
			record(item, CascadeActionDeleted, "cannot lead")
		case item.Assistant == pref.User && !pref.CanAssist:
			if err := r.clearAssistant(ctx, item); err != nil {
				return nil, err
			}
			record(item, CascadeActionAssistantCleared, "cannot assist")
		default:
			kept = append(kept, item)
		}
	}

	surplus := len(kept) - pref.MaxCookingDays
	if surplus <= 0 {
		return changes, nil
	}

	for i := len(kept) - 1; i >= 0 && surplus > 0; i-- {
		item := kept[i]
		if item.Assistant != pref.User {
			continue
		}
		if err := r.clearAssistant(ctx, item); err != nil {
			return nil, err
		}
		surplus--
		record(item, CascadeActionAssistantCleared, "over max cooking days")
	}
	for i := len(kept) - 1; i >= 0 && surplus > 0; i-- {
		item := kept[i]
		if item.Lead != pref.User {
			continue
		}
		if err := r.Assignments.Delete(ctx, item.Date); err != nil {
			return nil, fmt.Errorf("delete surplus assignment: %w", err)
		}
		surplus--
		record(item, CascadeActionDeleted, "over max cooking days")
	}

	return changes, nil
}
