package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

// Services is the set of engine services the HTTP surface dispatches to.
type Services struct {
	Calendar     *usecase.CalendarService
	Roster       *usecase.RosterService
	Availability *usecase.AvailabilityService
	Preferences  *usecase.PreferenceService
	Assignments  *usecase.AssignmentService
	Scheduler    *usecase.SchedulerService
	Suggestions  *usecase.SuggestionService
	Audit        *usecase.AuditService
	Queries      *usecase.QueryService
}

type Handler struct {
	services  Services
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		services:  services,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a flat JSON record into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// fail logs a rejected request at warn and renders the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error, args ...any) {
	fields := append([]any{"action", action, "tag", usecase.ErrorTag(err), "error", err}, args...)
	if usecase.ErrorTag(err) == "" {
		h.logger.ErrorContext(ctx, "action failed", fields...)
	} else {
		h.logger.WarnContext(ctx, "action rejected", fields...)
	}
	recordSpanError(ctx, err)
	writeError(ctx, w, err)
}

type emptyResponse struct{}
