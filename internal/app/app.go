package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/cooking-schedule/db"
	"github.com/riskibarqy/cooking-schedule/external/oracle"
	"github.com/riskibarqy/cooking-schedule/internal/config"
	cacherepo "github.com/riskibarqy/cooking-schedule/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/cooking-schedule/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cooking-schedule/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/cooking-schedule/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/cooking-schedule/internal/platform/cache"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"github.com/riskibarqy/cooking-schedule/internal/platform/resilience"
	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// Application owns the HTTP server and the resources released on shutdown.
type Application struct {
	Server  *http.Server
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &Application{}
	repos, err := app.buildRepositories(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	suggestionOracle, err := oracle.New(oracle.Config{
		Provider:        cfg.OracleProvider,
		Model:           cfg.OracleModel,
		Timeout:         cfg.OracleTimeout,
		MaxTokens:       cfg.OracleMaxTokens,
		MaxRetries:      cfg.OracleMaxRetries,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiBaseURL:   cfg.GeminiBaseURL,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.OpenAIBaseURL,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OracleCircuitEnabled,
			FailureThreshold: cfg.OracleCircuitFailures,
			OpenTimeout:      cfg.OracleCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OracleCircuitHalfOpenMax,
		},
		Logger: logger.With("component", "oracle"),
	})
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("build oracle: %w", err)
	}
	logger.Info("oracle configured", "provider", cfg.OracleProvider, "model", cfg.OracleModel)

	services := buildServices(cfg, repos, suggestionOracle, logger)
	handler := httpapi.NewHandler(services, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		AdminToken:         cfg.AdminToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	})
	if cfg.AdminToken == "" {
		logger.Warn("admin token not set, admin actions will be rejected")
	}

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return app, nil
}

func (a *Application) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.Repositories, error) {
	var repos usecase.Repositories

	switch cfg.StoreDriver {
	case config.StorePostgres:
		if cfg.DBAutoMigrate {
			if err := db.Up(cfg.DBURL); err != nil {
				return usecase.Repositories{}, err
			}
			logger.Info("migrations applied")
		}

		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		defer cancel()
		pool, err := openTracedDB(pingCtx, cfg)
		if err != nil {
			return usecase.Repositories{}, err
		}
		a.closers = append(a.closers, pool.Close)
		repos = postgres.NewRepositories(pool)
	default:
		repos = usecase.Repositories{
			Periods:      memory.NewPeriodRepository(),
			Cooks:        memory.NewRosterRepository(),
			Availability: memory.NewAvailabilityRepository(),
			Preferences:  memory.NewPreferenceRepository(),
			Assignments:  memory.NewAssignmentRepository(),
		}
	}

	if cfg.CacheEnabled {
		repos.Periods = cacherepo.NewPeriodRepository(repos.Periods, basecache.NewStore(cfg.CacheTTL))
	}
	logger.Info("store configured", "driver", cfg.StoreDriver, "cache_enabled", cfg.CacheEnabled)

	return repos, nil
}

func buildServices(cfg config.Config, repos usecase.Repositories, suggestionOracle usecase.Oracle, logger *logging.Logger) httpapi.Services {
	ids := idgen.NewUUIDGenerator()
	assignments := usecase.NewAssignmentService(repos, ids, logger)

	return httpapi.Services{
		Calendar:     usecase.NewCalendarService(repos, ids, logger),
		Roster:       usecase.NewRosterService(repos, ids, logger),
		Availability: usecase.NewAvailabilityService(repos, ids, logger),
		Preferences:  usecase.NewPreferenceService(repos, ids, logger),
		Assignments:  assignments,
		Scheduler:    usecase.NewSchedulerService(repos, assignments, logger),
		Suggestions:  usecase.NewSuggestionService(repos, assignments, suggestionOracle, cfg.OracleTimeout, logger),
		Audit:        usecase.NewAuditService(repos, cfg.AuditWorkers, logger),
		Queries:      usecase.NewQueryService(repos),
	}
}

// Close releases store connections. It does not stop the HTTP server.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
