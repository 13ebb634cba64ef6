package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type UploadPreferenceInput struct {
	User           string
	Period         string
	CanSolo        bool
	CanLead        bool
	CanAssist      bool
	MaxCookingDays int
}

// PreferenceUpdate is the stored preference plus the assignment changes its
// write caused.
type PreferenceUpdate struct {
	Preference preference.Preference `json:"preference"`
	Changes    []CascadeChange       `json:"changes"`
}

type PreferenceService struct {
	repos  Repositories
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewPreferenceService(repos Repositories, idGen idgen.Generator, logger *logging.Logger) *PreferenceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PreferenceService{repos: repos, idGen: idGen, logger: logger}
}

// UploadPreference upserts the user's preference for an open period and
// prunes the user's assignments that the new preference no longer allows.
func (s *PreferenceService) UploadPreference(ctx context.Context, input UploadPreferenceInput) (PreferenceUpdate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PreferenceService.UploadPreference",
		attribute.String("period", input.Period),
	)
	defer span.End()

	if input.MaxCookingDays < 0 {
		return PreferenceUpdate{}, fmt.Errorf("%w: max_cooking_days must be >= 0", ErrInvalidInput)
	}
	item, err := s.repos.requireOpenPeriod(ctx, input.Period)
	if err != nil {
		return PreferenceUpdate{}, err
	}
	cook, err := s.repos.requireCook(ctx, input.User, item.Label)
	if err != nil {
		return PreferenceUpdate{}, err
	}

	pref := preference.Preference{
		User:           cook.User,
		Period:         item.Label,
		CanSolo:        input.CanSolo,
		CanLead:        input.CanLead,
		CanAssist:      input.CanAssist,
		MaxCookingDays: input.MaxCookingDays,
	}
	existing, exists, err := s.repos.Preferences.Get(ctx, cook.User, item.Label)
	if err != nil {
		return PreferenceUpdate{}, fmt.Errorf("get preference: %w", err)
	}
	if exists {
		pref.ID = existing.ID
	} else {
		pref.ID, err = s.idGen.NewID()
		if err != nil {
			return PreferenceUpdate{}, fmt.Errorf("generate preference id: %w", err)
		}
	}
	if err := pref.Validate(); err != nil {
		return PreferenceUpdate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repos.Preferences.Upsert(ctx, pref); err != nil {
		return PreferenceUpdate{}, fmt.Errorf("upsert preference: %w", err)
	}

	changes, err := s.repos.runIncompatibilityCascade(ctx, s.logger, pref)
	if err != nil {
		return PreferenceUpdate{}, err
	}
	return PreferenceUpdate{Preference: pref, Changes: changes}, nil
}

// ReconcilePreference re-runs the cascade against the stored preference.
func (s *PreferenceService) ReconcilePreference(ctx context.Context, user, periodLabel string) ([]CascadeChange, error) {
	item, err := s.repos.requirePeriod(ctx, periodLabel)
	if err != nil {
		return nil, err
	}
	cook, err := s.repos.requireCook(ctx, user, item.Label)
	if err != nil {
		return nil, err
	}

	pref, exists, err := s.repos.Preferences.Get(ctx, cook.User, item.Label)
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: cook %s has no preference for %s", ErrPreconditionFailed, cook.User, item.Label)
	}
	return s.repos.runIncompatibilityCascade(ctx, s.logger, pref)
}
