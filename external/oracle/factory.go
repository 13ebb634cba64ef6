// Package oracle adapts hosted language models to the schedule suggestion
// oracle.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"github.com/riskibarqy/cooking-schedule/internal/platform/resilience"
	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

const (
	ProviderNone      = "none"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Provider        string
	Model           string
	Timeout         time.Duration
	MaxTokens       int
	MaxRetries      int
	GeminiAPIKey    string
	GeminiBaseURL   string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	AnthropicURL    string
	CircuitBreaker  resilience.CircuitBreakerConfig
	Logger          *logging.Logger
}

// New builds the configured provider behind a circuit breaker. The "none"
// provider returns a nil oracle, which makes every suggestion request fail
// with ErrOracleUnavailable.
func New(cfg Config) (usecase.Oracle, error) {
	var (
		client usecase.Oracle
		err    error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		client, err = NewGeminiClient(GeminiConfig{
			BaseURL:         cfg.GeminiBaseURL,
			APIKey:          cfg.GeminiAPIKey,
			Model:           cfg.Model,
			MaxOutputTokens: cfg.MaxTokens,
			MaxRetries:      cfg.MaxRetries,
			Timeout:         cfg.Timeout,
			Logger:          cfg.Logger,
		})
	case ProviderOpenAI:
		client, err = NewOpenAIClient(OpenAIConfig{
			BaseURL:   cfg.OpenAIBaseURL,
			APIKey:    cfg.OpenAIAPIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	case ProviderAnthropic:
		client, err = NewAnthropicClient(AnthropicConfig{
			BaseURL:   cfg.AnthropicURL,
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return withBreaker(client, cfg.CircuitBreaker.New(), cfg.Logger), nil
}

type guardedOracle struct {
	next    usecase.Oracle
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func withBreaker(next usecase.Oracle, breaker *resilience.CircuitBreaker, logger *logging.Logger) usecase.Oracle {
	if breaker == nil {
		return next
	}
	if logger == nil {
		logger = logging.Default()
	}
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("oracle circuit breaker state changed", "from", from, "to", to)
	})
	return &guardedOracle{next: next, breaker: breaker, logger: logger}
}

func (g *guardedOracle) Suggest(ctx context.Context, prompt string) (string, error) {
	var answer string
	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		answer, err = g.next.Suggest(ctx, prompt)
		return err
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			g.logger.WarnContext(ctx, "oracle circuit breaker rejected request", "state", g.breaker.State())
		}
		return "", err
	}
	return answer, nil
}
