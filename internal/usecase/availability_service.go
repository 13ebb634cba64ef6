package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

type AvailabilityService struct {
	repos  Repositories
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewAvailabilityService(repos Repositories, idGen idgen.Generator, logger *logging.Logger) *AvailabilityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityService{repos: repos, idGen: idGen, logger: logger}
}

// AddAvailability declares the user willing to cook on a registered date of
// an open period the user is rostered in.
func (s *AvailabilityService) AddAvailability(ctx context.Context, user, rawDate string) (availability.Availability, error) {
	date, err := s.repos.requireDate(ctx, rawDate)
	if err != nil {
		return availability.Availability{}, err
	}
	if _, err := s.repos.requireOpenPeriod(ctx, date.Period); err != nil {
		return availability.Availability{}, err
	}
	cook, err := s.repos.requireCook(ctx, user, date.Period)
	if err != nil {
		return availability.Availability{}, err
	}

	_, exists, err := s.repos.Availability.Get(ctx, cook.User, date.Date)
	if err != nil {
		return availability.Availability{}, fmt.Errorf("get availability: %w", err)
	}
	if exists {
		return availability.Availability{}, fmt.Errorf("%w: availability %s on %s", ErrAlreadyExists, cook.User, date.Date)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return availability.Availability{}, fmt.Errorf("generate availability id: %w", err)
	}
	item := availability.Availability{ID: id, User: cook.User, Period: date.Period, Date: date.Date}
	if err := s.repos.Availability.Add(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return availability.Availability{}, fmt.Errorf("%w: availability %s on %s", ErrAlreadyExists, cook.User, date.Date)
		}
		return availability.Availability{}, fmt.Errorf("add availability: %w", err)
	}
	return item, nil
}

// RemoveAvailability withdraws the user from a date and retracts the date's
// assignment when the user was scheduled on it.
func (s *AvailabilityService) RemoveAvailability(ctx context.Context, user, rawDate string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.RemoveAvailability")
	defer span.End()

	date, err := s.repos.requireDate(ctx, rawDate)
	if err != nil {
		return err
	}
	if _, err := s.repos.requireOpenPeriod(ctx, date.Period); err != nil {
		return err
	}
	cook, err := s.repos.requireCook(ctx, user, date.Period)
	if err != nil {
		return err
	}

	_, exists, err := s.repos.Availability.Get(ctx, cook.User, date.Date)
	if err != nil {
		return fmt.Errorf("get availability: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: availability %s on %s", ErrNotRegistered, cook.User, date.Date)
	}

	if err := s.repos.retractUnavailable(ctx, s.logger, cook.User, date.Date); err != nil {
		return err
	}
	if err := s.repos.Availability.Delete(ctx, cook.User, date.Date); err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}
	return nil
}
