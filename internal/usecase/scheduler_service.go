package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"github.com/riskibarqy/cooking-schedule/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type GenerateInput struct {
	// Reset clears the current period's calendar before planning.
	Reset bool
}

type GenerateResult struct {
	Period   string                  `json:"period"`
	Assigned []assignment.Assignment `json:"assigned"`
	Kept     []string                `json:"kept"`
	Unfilled []string                `json:"unfilled"`
}

// SchedulerService fills the current period's calendar with a single greedy
// pass over the cooking dates.
type SchedulerService struct {
	repos       Repositories
	assignments *AssignmentService
	logger      *logging.Logger
	flight      resilience.Flight[GenerateResult]
}

func NewSchedulerService(repos Repositories, assignments *AssignmentService, logger *logging.Logger) *SchedulerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SchedulerService{repos: repos, assignments: assignments, logger: logger}
}

// GenerateAssignments plans every unassigned date of the current period in
// ascending order. Per date it prefers a solo cook, otherwise a lead with an
// assistant; a lead with no assistant available leaves the date unfilled.
// Candidates are ranked by remaining cooking days, ties broken by the
// smallest user id. Dates that already hold an assignment are kept.
func (s *SchedulerService) GenerateAssignments(ctx context.Context, input GenerateInput) (GenerateResult, error) {
	current, err := s.repos.requireCurrentPeriod(ctx)
	if err != nil {
		return GenerateResult{}, err
	}

	result, joined, err := s.flight.Do(ctx, "generate:"+current.Label, func() (GenerateResult, error) {
		return s.generate(ctx, current.Label, input)
	})
	if err != nil {
		return GenerateResult{}, err
	}
	if joined {
		s.logger.InfoContext(ctx, "joined in-flight generation", "period", current.Label)
	}
	return result, nil
}

func (s *SchedulerService) generate(ctx context.Context, periodLabel string, input GenerateInput) (GenerateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SchedulerService.GenerateAssignments",
		attribute.String("period", periodLabel),
		attribute.Bool("reset", input.Reset),
	)
	defer span.End()

	if input.Reset {
		if err := s.repos.Assignments.DeleteByPeriod(ctx, periodLabel); err != nil {
			return GenerateResult{}, fmt.Errorf("reset assignments: %w", err)
		}
	}

	plan, err := s.loadPlanState(ctx, periodLabel)
	if err != nil {
		return GenerateResult{}, err
	}

	dates, err := s.repos.Periods.ListDates(ctx, periodLabel)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("list cooking dates: %w", err)
	}

	result := GenerateResult{
		Period:   periodLabel,
		Assigned: make([]assignment.Assignment, 0, len(dates)),
		Kept:     make([]string, 0),
		Unfilled: make([]string, 0),
	}
	for _, date := range dates {
		if plan.assigned[date.Date] {
			result.Kept = append(result.Kept, date.Date)
			continue
		}

		candidates := plan.available[date.Date]
		if solo, ok := plan.pick(candidates, "", func(p preference.Preference) bool { return p.CanSolo }); ok {
			item, err := s.assignments.AssignLead(ctx, solo, date.Date)
			if err != nil {
				if ErrorTag(err) == "" {
					return GenerateResult{}, err
				}
				s.logger.WarnContext(ctx, "solo assignment rejected", "date", date.Date, "user", solo, "error", err)
			} else {
				plan.remaining[solo]--
				result.Assigned = append(result.Assigned, item)
				continue
			}
		}

		lead, ok := plan.pick(candidates, "", func(p preference.Preference) bool { return p.CanLead })
		if !ok {
			result.Unfilled = append(result.Unfilled, date.Date)
			continue
		}
		assistant, ok := plan.pick(candidates, lead, func(p preference.Preference) bool { return p.CanAssist })
		if !ok {
			s.logger.DebugContext(ctx, "no assistant for lead, date left unfilled", "date", date.Date, "lead", lead)
			result.Unfilled = append(result.Unfilled, date.Date)
			continue
		}

		item, err := s.commitPair(ctx, lead, assistant, date.Date)
		if err != nil {
			if ErrorTag(err) == "" {
				return GenerateResult{}, err
			}
			s.logger.WarnContext(ctx, "paired assignment rejected", "date", date.Date, "lead", lead, "assistant", assistant, "error", err)
			result.Unfilled = append(result.Unfilled, date.Date)
			continue
		}
		plan.remaining[lead]--
		plan.remaining[assistant]--
		result.Assigned = append(result.Assigned, item)
	}

	s.logger.InfoContext(ctx, "greedy generation finished",
		"period", periodLabel,
		"assigned", len(result.Assigned),
		"kept", len(result.Kept),
		"unfilled", len(result.Unfilled),
	)
	return result, nil
}

// commitPair writes lead then assistant and withdraws the lead again when the
// assistant is rejected, so no lead-only entry is left behind.
func (s *SchedulerService) commitPair(ctx context.Context, lead, assistant, date string) (assignment.Assignment, error) {
	if _, err := s.assignments.AssignLead(ctx, lead, date); err != nil {
		return assignment.Assignment{}, err
	}
	item, err := s.assignments.AssignAssistant(ctx, assistant, date)
	if err != nil {
		if removeErr := s.repos.Assignments.Delete(ctx, date); removeErr != nil {
			return assignment.Assignment{}, fmt.Errorf("withdraw lead after rejected assistant: %w", removeErr)
		}
		return assignment.Assignment{}, err
	}
	return item, nil
}

type planState struct {
	prefs     map[string]preference.Preference
	remaining map[string]int
	available map[string][]string
	assigned  map[string]bool
}

func (s *SchedulerService) loadPlanState(ctx context.Context, periodLabel string) (planState, error) {
	cooks, err := s.repos.Cooks.ListByPeriod(ctx, periodLabel)
	if err != nil {
		return planState{}, fmt.Errorf("list cooks: %w", err)
	}
	prefs, err := s.repos.Preferences.ListByPeriod(ctx, periodLabel)
	if err != nil {
		return planState{}, fmt.Errorf("list preferences: %w", err)
	}
	existing, err := s.repos.Assignments.ListByPeriod(ctx, periodLabel)
	if err != nil {
		return planState{}, fmt.Errorf("list assignments: %w", err)
	}
	avail, err := s.repos.Availability.ListByPeriod(ctx, periodLabel)
	if err != nil {
		return planState{}, fmt.Errorf("list availability: %w", err)
	}

	state := planState{
		prefs:     make(map[string]preference.Preference, len(prefs)),
		remaining: make(map[string]int, len(cooks)),
		available: make(map[string][]string),
		assigned:  make(map[string]bool, len(existing)),
	}
	for _, pref := range prefs {
		state.prefs[pref.User] = pref
	}
	for _, cook := range cooks {
		pref, ok := state.prefs[cook.User]
		if !ok {
			s.logger.InfoContext(ctx, "cook has no preference, skipped by scheduler", "user", cook.User, "period", periodLabel)
			continue
		}
		state.remaining[cook.User] = pref.MaxCookingDays - assignment.CountFor(existing, cook.User, "")
	}
	for _, item := range existing {
		state.assigned[item.Date] = true
	}
	for _, item := range avail {
		if _, rostered := state.remaining[item.User]; !rostered {
			continue
		}
		state.available[item.Date] = append(state.available[item.Date], item.User)
	}
	return state, nil
}

// pick returns the eligible candidate with the most remaining cooking days,
// preferring the smallest user id on ties.
func (p planState) pick(candidates []string, exclude string, eligible func(preference.Preference) bool) (string, bool) {
	best := ""
	bestRemaining := 0
	for _, user := range candidates {
		if user == exclude {
			continue
		}
		left := p.remaining[user]
		if left <= 0 || !eligible(p.prefs[user]) {
			continue
		}
		if best == "" || left > bestRemaining || (left == bestRemaining && user < best) {
			best = user
			bestRemaining = left
		}
	}
	return best, best != ""
}
