package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/sourcegraph/conc/pool"
)

const snapshotMaxReaders = 8

type cookSnapshot struct {
	User          string
	Preference    preference.Preference
	HasPreference bool
	Available     []string
}

// scheduleSnapshot is the read-only view of one period handed to the oracle.
type scheduleSnapshot struct {
	Period      string
	Dates       []string
	Cooks       []cookSnapshot
	Assignments []assignment.Assignment
}

func (r Repositories) loadScheduleSnapshot(ctx context.Context, periodLabel string) (scheduleSnapshot, error) {
	cooks, err := r.Cooks.ListByPeriod(ctx, periodLabel)
	if err != nil {
		return scheduleSnapshot{}, fmt.Errorf("list cooks: %w", err)
	}
	dates, err := r.Periods.ListDates(ctx, periodLabel)
	if err != nil {
		return scheduleSnapshot{}, fmt.Errorf("list cooking dates: %w", err)
	}
	items, err := r.Assignments.ListByPeriod(ctx, periodLabel)
	if err != nil {
		return scheduleSnapshot{}, fmt.Errorf("list assignments: %w", err)
	}

	readers := pool.NewWithResults[cookSnapshot]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(snapshotMaxReaders)
	for _, cook := range cooks {
		user := cook.User
		readers.Go(func(ctx context.Context) (cookSnapshot, error) {
			pref, exists, err := r.Preferences.Get(ctx, user, periodLabel)
			if err != nil {
				return cookSnapshot{}, fmt.Errorf("get preference for %s: %w", user, err)
			}
			avail, err := r.Availability.ListByUser(ctx, user, periodLabel)
			if err != nil {
				return cookSnapshot{}, fmt.Errorf("list availability for %s: %w", user, err)
			}

			out := cookSnapshot{User: user, Preference: pref, HasPreference: exists}
			out.Available = make([]string, 0, len(avail))
			for _, item := range avail {
				out.Available = append(out.Available, item.Date)
			}
			return out, nil
		})
	}
	snapshots, err := readers.Wait()
	if err != nil {
		return scheduleSnapshot{}, err
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].User < snapshots[j].User })

	out := scheduleSnapshot{
		Period:      periodLabel,
		Dates:       make([]string, 0, len(dates)),
		Cooks:       snapshots,
		Assignments: items,
	}
	for _, date := range dates {
		out.Dates = append(out.Dates, date.Date)
	}
	return out, nil
}
