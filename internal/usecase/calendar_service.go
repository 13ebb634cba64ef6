package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type AddPeriodInput struct {
	Label   string
	Current bool
}

// CalendarService manages periods and the cooking dates inside them.
type CalendarService struct {
	repos  Repositories
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewCalendarService(repos Repositories, idGen idgen.Generator, logger *logging.Logger) *CalendarService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CalendarService{
		repos:  repos,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// AddPeriod registers a closed period. When Current is set it becomes the
// only current period.
func (s *CalendarService) AddPeriod(ctx context.Context, input AddPeriodInput) (period.Period, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.AddPeriod")
	defer span.End()

	label := strings.TrimSpace(input.Label)
	month, year, err := period.ParseLabel(label)
	if err != nil {
		return period.Period{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.repos.Periods.GetByLabel(ctx, label)
	if err != nil {
		return period.Period{}, fmt.Errorf("get period: %w", err)
	}
	if exists {
		return period.Period{}, fmt.Errorf("%w: period %s", ErrAlreadyExists, label)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return period.Period{}, fmt.Errorf("generate period id: %w", err)
	}
	item := period.Period{
		ID:         id,
		Label:      label,
		StartMonth: month,
		Year:       year,
		IsCurrent:  input.Current,
		IsOpen:     false,
		CreatedAt:  s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return period.Period{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repos.Periods.Create(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return period.Period{}, fmt.Errorf("%w: period %s", ErrAlreadyExists, label)
		}
		return period.Period{}, fmt.Errorf("create period: %w", err)
	}

	s.logger.InfoContext(ctx, "period registered", "period", label, "current", input.Current)
	return item, nil
}

// RemovePeriod deletes a non-current period with everything scheduled in it.
func (s *CalendarService) RemovePeriod(ctx context.Context, label string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.RemovePeriod", attribute.String("period", label))
	defer span.End()

	item, err := s.repos.requirePeriod(ctx, label)
	if err != nil {
		return err
	}
	if item.IsCurrent {
		return fmt.Errorf("%w: period %s is current", ErrPreconditionFailed, item.Label)
	}

	if err := s.repos.cascadeDeletePeriod(ctx, item.Label); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "period removed", "period", item.Label)
	return nil
}

func (s *CalendarService) SetCurrentPeriod(ctx context.Context, label string) error {
	item, err := s.repos.requirePeriod(ctx, label)
	if err != nil {
		return err
	}
	if err := s.repos.Periods.SetCurrent(ctx, item.Label); err != nil {
		return fmt.Errorf("set current period: %w", err)
	}
	s.logger.InfoContext(ctx, "current period changed", "period", item.Label)
	return nil
}

func (s *CalendarService) OpenPeriod(ctx context.Context, label string) error {
	return s.setOpen(ctx, label, true)
}

func (s *CalendarService) ClosePeriod(ctx context.Context, label string) error {
	return s.setOpen(ctx, label, false)
}

// TogglePeriod flips the open gate and returns the new state.
func (s *CalendarService) TogglePeriod(ctx context.Context, label string) (bool, error) {
	item, err := s.repos.requirePeriod(ctx, label)
	if err != nil {
		return false, err
	}
	open := !item.IsOpen
	if err := s.repos.Periods.SetOpen(ctx, item.Label, open); err != nil {
		return false, fmt.Errorf("toggle period: %w", err)
	}
	return open, nil
}

func (s *CalendarService) setOpen(ctx context.Context, label string, open bool) error {
	item, err := s.repos.requirePeriod(ctx, label)
	if err != nil {
		return err
	}
	if err := s.repos.Periods.SetOpen(ctx, item.Label, open); err != nil {
		return fmt.Errorf("set period open=%t: %w", open, err)
	}
	s.logger.InfoContext(ctx, "period gate changed", "period", item.Label, "open", open)
	return nil
}

// AddCookingDate registers a date in the period derived from its month.
func (s *CalendarService) AddCookingDate(ctx context.Context, raw string) (period.CookingDate, error) {
	date, err := period.NormalizeDate(raw)
	if err != nil {
		return period.CookingDate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	label := date[:7]
	if _, err := s.repos.requirePeriod(ctx, label); err != nil {
		return period.CookingDate{}, err
	}

	_, exists, err := s.repos.Periods.GetDate(ctx, date)
	if err != nil {
		return period.CookingDate{}, fmt.Errorf("get cooking date: %w", err)
	}
	if exists {
		return period.CookingDate{}, fmt.Errorf("%w: cooking date %s", ErrAlreadyExists, date)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return period.CookingDate{}, fmt.Errorf("generate cooking date id: %w", err)
	}
	item := period.CookingDate{ID: id, Period: label, Date: date}
	if err := s.repos.Periods.CreateDate(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return period.CookingDate{}, fmt.Errorf("%w: cooking date %s", ErrAlreadyExists, date)
		}
		return period.CookingDate{}, fmt.Errorf("create cooking date: %w", err)
	}
	return item, nil
}

// RemoveCookingDate deletes the date together with its assignment and availability.
func (s *CalendarService) RemoveCookingDate(ctx context.Context, raw string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.RemoveCookingDate", attribute.String("date", raw))
	defer span.End()

	item, err := s.repos.requireDate(ctx, raw)
	if err != nil {
		return err
	}
	if err := s.repos.cascadeDeleteDate(ctx, item.Date); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "cooking date removed", "date", item.Date)
	return nil
}
