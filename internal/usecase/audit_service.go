package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

const defaultAuditWorkers = 4

type AuditResult struct {
	PeriodCount int                    `json:"period_count"`
	Checked     int                    `json:"checked"`
	Violations  []assignment.Violation `json:"violations"`
}

// AuditService re-evaluates the stored calendars against every assignment
// invariant. It never writes.
type AuditService struct {
	repos   Repositories
	workers int
	logger  *logging.Logger
}

func NewAuditService(repos Repositories, workers int, logger *logging.Logger) *AuditService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultAuditWorkers
	}
	return &AuditService{repos: repos, workers: workers, logger: logger}
}

// Audit checks the given periods, or every registered period when none is given.
func (s *AuditService) Audit(ctx context.Context, labels ...string) (AuditResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditService.Audit")
	defer span.End()

	targets, err := s.resolveTargets(ctx, labels)
	if err != nil {
		return AuditResult{}, err
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return AuditResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu         sync.Mutex
		violations = make([]assignment.Violation, 0)
		firstErr   error
		checked    atomic.Int32
		workers    sync.WaitGroup
	)
	for _, label := range targets {
		label := label
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			snap, count, err := s.loadAuditSnapshot(ctx, label)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			checked.Add(int32(count))
			violations = append(violations, assignment.Check(snap)...)
		}); err != nil {
			workers.Done()
			return AuditResult{}, fmt.Errorf("submit audit task: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return AuditResult{}, firstErr
	}

	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].Period != violations[j].Period {
			return violations[i].Period < violations[j].Period
		}
		if violations[i].Date != violations[j].Date {
			return violations[i].Date < violations[j].Date
		}
		return violations[i].User < violations[j].User
	})
	if len(violations) > 0 {
		s.logger.WarnContext(ctx, "invariant audit found violations", "count", len(violations))
	}

	return AuditResult{
		PeriodCount: len(targets),
		Checked:     int(checked.Load()),
		Violations:  violations,
	}, nil
}

func (s *AuditService) resolveTargets(ctx context.Context, labels []string) ([]string, error) {
	if len(labels) > 0 {
		out := make([]string, 0, len(labels))
		for _, label := range labels {
			item, err := s.repos.requirePeriod(ctx, strings.TrimSpace(label))
			if err != nil {
				return nil, err
			}
			out = append(out, item.Label)
		}
		return out, nil
	}

	periods, err := s.repos.Periods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	out := make([]string, 0, len(periods))
	for _, item := range periods {
		out = append(out, item.Label)
	}
	return out, nil
}

func (s *AuditService) loadAuditSnapshot(ctx context.Context, label string) (assignment.Snapshot, int, error) {
	items, err := s.repos.Assignments.ListByPeriod(ctx, label)
	if err != nil {
		return assignment.Snapshot{}, 0, fmt.Errorf("list assignments for audit: %w", err)
	}
	prefs, err := s.repos.Preferences.ListByPeriod(ctx, label)
	if err != nil {
		return assignment.Snapshot{}, 0, fmt.Errorf("list preferences for audit: %w", err)
	}
	avail, err := s.repos.Availability.ListByPeriod(ctx, label)
	if err != nil {
		return assignment.Snapshot{}, 0, fmt.Errorf("list availability for audit: %w", err)
	}

	snap := assignment.Snapshot{
		Period:      label,
		Assignments: items,
		Preferences: make(map[string]preference.Preference, len(prefs)),
		Available:   make(map[string]map[string]bool),
	}
	for _, pref := range prefs {
		snap.Preferences[pref.User] = pref
	}
	for _, item := range avail {
		if snap.Available[item.User] == nil {
			snap.Available[item.User] = make(map[string]bool)
		}
		snap.Available[item.User][item.Date] = true
	}
	return snap, len(items), nil
}
