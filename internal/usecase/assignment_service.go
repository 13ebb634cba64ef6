package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// AssignmentService owns the two write primitives every scheduler goes
// through. Each call re-checks capabilities, availability and workload
// against the stored state before writing.
type AssignmentService struct {
	repos  Repositories
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewAssignmentService(repos Repositories, idGen idgen.Generator, logger *logging.Logger) *AssignmentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AssignmentService{repos: repos, idGen: idGen, logger: logger}
}

type slotRequest struct {
	user     string
	date     period.CookingDate
	pref     preference.Preference
	existing assignment.Assignment
	occupied bool
}

func (s *AssignmentService) AssignLead(ctx context.Context, user, rawDate string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.AssignLead", attribute.String("date", rawDate))
	defer span.End()

	req, err := s.loadSlotRequest(ctx, user, rawDate)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if !req.pref.CanHeadDate() {
		return assignment.Assignment{}, fmt.Errorf("%w: %s can neither lead nor cook solo", ErrPreconditionFailed, req.user)
	}

	item := req.existing
	if req.occupied {
		if item.Lead == req.user {
			return item, nil
		}
		if item.Assistant == req.user {
			return assignment.Assignment{}, fmt.Errorf("%w: %s already assists on %s", ErrPreconditionFailed, req.user, req.date.Date)
		}
		if !item.IsSolo() && !req.pref.CanLead {
			return assignment.Assignment{}, fmt.Errorf("%w: %s cannot lead an assistant on %s", ErrPreconditionFailed, req.user, req.date.Date)
		}
	}
	if err := s.checkWorkload(ctx, req); err != nil {
		return assignment.Assignment{}, err
	}

	if !req.occupied {
		id, err := s.idGen.NewID()
		if err != nil {
			return assignment.Assignment{}, fmt.Errorf("generate assignment id: %w", err)
		}
		item = assignment.Assignment{ID: id, Period: req.date.Period, Date: req.date.Date}
	}
	item.Lead = req.user

	if err := s.commit(ctx, item); err != nil {
		return assignment.Assignment{}, err
	}
	return item, nil
}

// AssignAssistant pairs the user with the lead already scheduled on the date.
func (s *AssignmentService) AssignAssistant(ctx context.Context, user, rawDate string) (assignment.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AssignmentService.AssignAssistant", attribute.String("date", rawDate))
	defer span.End()

	req, err := s.loadSlotRequest(ctx, user, rawDate)
	if err != nil {
		return assignment.Assignment{}, err
	}
	if !req.pref.CanAssist {
		return assignment.Assignment{}, fmt.Errorf("%w: %s cannot assist", ErrPreconditionFailed, req.user)
	}
	if !req.occupied {
		return assignment.Assignment{}, fmt.Errorf("%w: no lead assigned on %s", ErrPreconditionFailed, req.date.Date)
	}

	item := req.existing
	if item.Assistant == req.user {
		return item, nil
	}
	if item.Lead == req.user {
		return assignment.Assignment{}, fmt.Errorf("%w: %s already leads on %s", ErrPreconditionFailed, req.user, req.date.Date)
	}

	leadPref, exists, err := s.repos.Preferences.Get(ctx, item.Lead, item.Period)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("get lead preference: %w", err)
	}
	if !exists || !leadPref.CanLead {
		return assignment.Assignment{}, fmt.Errorf("%w: lead %s on %s cooks solo only", ErrPreconditionFailed, item.Lead, req.date.Date)
	}
	if err := s.checkWorkload(ctx, req); err != nil {
		return assignment.Assignment{}, err
	}

	item.Assistant = req.user
	if err := s.commit(ctx, item); err != nil {
		return assignment.Assignment{}, err
	}
	return item, nil
}

// RemoveAssignment deletes the date's assignment if there is one.
func (s *AssignmentService) RemoveAssignment(ctx context.Context, rawDate string) error {
	date, err := period.NormalizeDate(rawDate)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repos.Assignments.Delete(ctx, date); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// ClearAssignments empties the period's calendar.
func (s *AssignmentService) ClearAssignments(ctx context.Context, periodLabel string) error {
	item, err := s.repos.requirePeriod(ctx, periodLabel)
	if err != nil {
		return err
	}
	if err := s.repos.Assignments.DeleteByPeriod(ctx, item.Label); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}
	s.logger.InfoContext(ctx, "assignments cleared", "period", item.Label)
	return nil
}

func (s *AssignmentService) loadSlotRequest(ctx context.Context, user, rawDate string) (slotRequest, error) {
	date, err := s.repos.requireDate(ctx, rawDate)
	if err != nil {
		return slotRequest{}, err
	}
	if _, err := s.repos.requirePeriod(ctx, date.Period); err != nil {
		return slotRequest{}, err
	}
	cook, err := s.repos.requireCook(ctx, user, date.Period)
	if err != nil {
		return slotRequest{}, err
	}

	_, available, err := s.repos.Availability.Get(ctx, cook.User, date.Date)
	if err != nil {
		return slotRequest{}, fmt.Errorf("get availability: %w", err)
	}
	if !available {
		return slotRequest{}, fmt.Errorf("%w: %s is not available on %s", ErrPreconditionFailed, cook.User, date.Date)
	}

	pref, exists, err := s.repos.Preferences.Get(ctx, cook.User, date.Period)
	if err != nil {
		return slotRequest{}, fmt.Errorf("get preference: %w", err)
	}
	if !exists {
		return slotRequest{}, fmt.Errorf("%w: %s has not uploaded a preference for %s", ErrPreconditionFailed, cook.User, date.Period)
	}

	existing, occupied, err := s.repos.Assignments.Get(ctx, date.Date)
	if err != nil {
		return slotRequest{}, fmt.Errorf("get assignment: %w", err)
	}

	return slotRequest{
		user:     cook.User,
		date:     date,
		pref:     pref,
		existing: existing,
		occupied: occupied,
	}, nil
}

func (s *AssignmentService) checkWorkload(ctx context.Context, req slotRequest) error {
	items, err := s.repos.Assignments.ListByUser(ctx, req.user, req.date.Period)
	if err != nil {
		return fmt.Errorf("list assignments for workload: %w", err)
	}
	count := assignment.CountFor(items, req.user, req.date.Date)
	if count >= req.pref.MaxCookingDays {
		return fmt.Errorf("%w: %s has %d of %d cooking days", ErrWorkloadExceeded, req.user, count, req.pref.MaxCookingDays)
	}
	return nil
}

func (s *AssignmentService) commit(ctx context.Context, item assignment.Assignment) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}
	if err := s.repos.Assignments.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}
	s.logger.DebugContext(ctx, "assignment committed",
		"period", item.Period,
		"date", item.Date,
		"lead", item.Lead,
		"assistant", item.Assistant,
	)
	return nil
}
