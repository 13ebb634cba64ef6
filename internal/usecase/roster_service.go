package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

type RosterService struct {
	repos  Repositories
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewRosterService(repos Repositories, idGen idgen.Generator, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{repos: repos, idGen: idGen, logger: logger}
}

func (s *RosterService) AddCook(ctx context.Context, user, periodLabel string) (roster.Cook, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return roster.Cook{}, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}
	item, err := s.repos.requirePeriod(ctx, periodLabel)
	if err != nil {
		return roster.Cook{}, err
	}

	_, exists, err := s.repos.Cooks.Get(ctx, user, item.Label)
	if err != nil {
		return roster.Cook{}, fmt.Errorf("get cook: %w", err)
	}
	if exists {
		return roster.Cook{}, fmt.Errorf("%w: cook %s in period %s", ErrAlreadyExists, user, item.Label)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return roster.Cook{}, fmt.Errorf("generate cook id: %w", err)
	}
	cook := roster.Cook{ID: id, User: user, Period: item.Label}
	if err := s.repos.Cooks.Add(ctx, cook); err != nil {
		if isDuplicateConstraintError(err) {
			return roster.Cook{}, fmt.Errorf("%w: cook %s in period %s", ErrAlreadyExists, user, item.Label)
		}
		return roster.Cook{}, fmt.Errorf("add cook: %w", err)
	}

	s.logger.InfoContext(ctx, "cook added", "user", user, "period", item.Label)
	return cook, nil
}

// RemoveCook drops the roster entry and the user's preference, availability
// and assignments for the period.
func (s *RosterService) RemoveCook(ctx context.Context, user, periodLabel string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemoveCook")
	defer span.End()

	item, err := s.repos.requirePeriod(ctx, periodLabel)
	if err != nil {
		return err
	}
	cook, err := s.repos.requireCook(ctx, user, item.Label)
	if err != nil {
		return err
	}

	if err := s.repos.cascadeDeleteCook(ctx, s.logger, cook.User, cook.Period); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "cook removed", "user", cook.User, "period", cook.Period)
	return nil
}
