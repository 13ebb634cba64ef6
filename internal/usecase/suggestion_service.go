package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"github.com/riskibarqy/cooking-schedule/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const defaultOracleTimeout = 30 * time.Second

// Oracle proposes a calendar for a rendered description of the schedule
// state. The answer is untrusted text.
type Oracle interface {
	Suggest(ctx context.Context, prompt string) (string, error)
}

type RejectedEntry struct {
	Entry  SuggestedEntry `json:"entry"`
	Tag    string         `json:"tag"`
	Reason string         `json:"reason"`
}

type SuggestionResult struct {
	Period   string           `json:"period"`
	Applied  []SuggestedEntry `json:"applied"`
	Rejected []RejectedEntry  `json:"rejected"`
}

// SuggestionService asks the oracle for a calendar and applies whatever part
// of it passes the assignment primitives.
type SuggestionService struct {
	repos       Repositories
	assignments *AssignmentService
	oracle      Oracle
	timeout     time.Duration
	logger      *logging.Logger
	validate    *validator.Validate
	flight      resilience.Flight[SuggestionResult]
}

func NewSuggestionService(
	repos Repositories,
	assignments *AssignmentService,
	oracle Oracle,
	timeout time.Duration,
	logger *logging.Logger,
) *SuggestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = defaultOracleTimeout
	}
	return &SuggestionService{
		repos:       repos,
		assignments: assignments,
		oracle:      oracle,
		timeout:     timeout,
		logger:      logger,
		validate:    validator.New(),
	}
}

// RenderPrompt returns the prompt the oracle would receive for the current period.
func (s *SuggestionService) RenderPrompt(ctx context.Context) (string, error) {
	current, err := s.repos.requireCurrentPeriod(ctx)
	if err != nil {
		return "", err
	}
	snap, err := s.repos.loadScheduleSnapshot(ctx, current.Label)
	if err != nil {
		return "", err
	}
	return renderSuggestionPrompt(snap), nil
}

// GenerateWithOracle renders the current period, asks the oracle within the
// configured timeout and applies the answer entry by entry. Oracle failure
// or an unreadable answer applies nothing.
func (s *SuggestionService) GenerateWithOracle(ctx context.Context) (SuggestionResult, error) {
	current, err := s.repos.requireCurrentPeriod(ctx)
	if err != nil {
		return SuggestionResult{}, err
	}

	result, _, err := s.flight.Do(ctx, "suggest:"+current.Label, func() (SuggestionResult, error) {
		return s.generate(ctx, current.Label)
	})
	return result, err
}

func (s *SuggestionService) generate(ctx context.Context, periodLabel string) (SuggestionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.GenerateWithOracle", attribute.String("period", periodLabel))
	defer span.End()

	if s.oracle == nil {
		return SuggestionResult{}, fmt.Errorf("%w: no oracle configured", ErrOracleUnavailable)
	}

	snap, err := s.repos.loadScheduleSnapshot(ctx, periodLabel)
	if err != nil {
		return SuggestionResult{}, err
	}
	raw, err := s.ask(ctx, renderSuggestionPrompt(snap))
	if err != nil {
		s.logger.WarnContext(ctx, "oracle call failed, nothing applied", "period", periodLabel, "error", err)
		return SuggestionResult{}, err
	}
	return s.ApplySuggestion(ctx, periodLabel, raw)
}

type oracleAnswer struct {
	raw string
	err error
}

// ask bounds the oracle call even when the implementation ignores ctx.
func (s *SuggestionService) ask(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan oracleAnswer, 1)
	go func() {
		raw, err := s.oracle.Suggest(callCtx, prompt)
		done <- oracleAnswer{raw: raw, err: err}
	}()

	select {
	case <-callCtx.Done():
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, callCtx.Err())
	case answer := <-done:
		if answer.err != nil {
			return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, answer.err)
		}
		return answer.raw, nil
	}
}

// ApplySuggestion parses raw and commits each entry independently through
// AssignLead and AssignAssistant. Rejected entries are reported, not fatal.
func (s *SuggestionService) ApplySuggestion(ctx context.Context, periodLabel string, raw string) (SuggestionResult, error) {
	item, err := s.repos.requirePeriod(ctx, periodLabel)
	if err != nil {
		return SuggestionResult{}, err
	}
	entries, err := parseSuggestion(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "oracle answer discarded", "period", item.Label, "error", err, "preview", truncateForLog(raw, 256))
		return SuggestionResult{}, err
	}

	result := SuggestionResult{
		Period:   item.Label,
		Applied:  make([]SuggestedEntry, 0, len(entries)),
		Rejected: make([]RejectedEntry, 0),
	}
	reject := func(entry SuggestedEntry, err error) {
		result.Rejected = append(result.Rejected, RejectedEntry{Entry: entry, Tag: ErrorTag(err), Reason: err.Error()})
		s.logger.InfoContext(ctx, "suggested entry rejected",
			"period", item.Label,
			"date", entry.Date,
			"lead", entry.Lead,
			"assistant", entry.Assistant,
			"error", err,
		)
	}

	for _, entry := range entries {
		if err := s.checkEntryShape(ctx, item.Label, entry); err != nil {
			reject(entry, err)
			continue
		}

		if _, err := s.assignments.AssignLead(ctx, entry.Lead, entry.Date); err != nil {
			if ErrorTag(err) == "" {
				return result, err
			}
			reject(entry, err)
			continue
		}
		if entry.Assistant == "" {
			result.Applied = append(result.Applied, entry)
			continue
		}

		if _, err := s.assignments.AssignAssistant(ctx, entry.Assistant, entry.Date); err != nil {
			if ErrorTag(err) == "" {
				return result, err
			}
			applied := entry
			applied.Assistant = ""
			result.Applied = append(result.Applied, applied)
			reject(entry, fmt.Errorf("assistant: %w", err))
			continue
		}
		result.Applied = append(result.Applied, entry)
	}

	s.logger.InfoContext(ctx, "suggestion applied",
		"period", item.Label,
		"applied", len(result.Applied),
		"rejected", len(result.Rejected),
	)
	return result, nil
}

func (s *SuggestionService) checkEntryShape(ctx context.Context, periodLabel string, entry SuggestedEntry) error {
	if err := s.validate.StructCtx(ctx, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	label, err := period.LabelOf(entry.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if label != periodLabel {
		return fmt.Errorf("%w: date %s is outside period %s", ErrPreconditionFailed, entry.Date, periodLabel)
	}
	return nil
}

func truncateForLog(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
