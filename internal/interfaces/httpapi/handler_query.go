package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

// Queries answer with arrays; a miss is an empty array, never an error.

func queryParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", fmt.Errorf("%w: query parameter %q is required", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func (h *Handler) IsRegistered(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IsRegistered")
	defer span.End()

	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	registered, err := h.services.Queries.IsRegistered(ctx, label)
	if err != nil {
		h.fail(ctx, w, "_isRegistered", err, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, []isRegisteredDTO{{IsRegistered: registered}})
}

func (h *Handler) IsOpen(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IsOpen")
	defer span.End()

	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	open, err := h.services.Queries.IsOpen(ctx, label)
	if err != nil {
		h.fail(ctx, w, "_isOpen", err, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, []isOpenDTO{{IsOpen: open}})
}

func (h *Handler) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentPeriod")
	defer span.End()

	item, exists, err := h.services.Queries.GetCurrentPeriod(ctx)
	if err != nil {
		h.fail(ctx, w, "_getCurrentPeriod", err)
		return
	}

	out := currentPeriodDTO{}
	if exists {
		out.Period = &item.Label
	}
	writeSuccess(ctx, w, http.StatusOK, []currentPeriodDTO{out})
}

func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPeriods")
	defer span.End()

	items, err := h.services.Queries.ListPeriods(ctx)
	if err != nil {
		h.fail(ctx, w, "_getPeriods", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, periodToDTO))
}

func (h *Handler) GetCooks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCooks")
	defer span.End()

	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetCooks(ctx, label)
	if err != nil {
		h.fail(ctx, w, "_getCooks", err, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, cookToDTO))
}

func (h *Handler) GetCookingDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCookingDates")
	defer span.End()

	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetCookingDates(ctx, label)
	if err != nil {
		h.fail(ctx, w, "_getCookingDates", err, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, cookingDateToDTO))
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAssignment")
	defer span.End()

	date, err := queryParam(r, "date")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetAssignment(ctx, date)
	if err != nil {
		h.fail(ctx, w, "_getAssignment", err, "date", date)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, assignmentToDTO))
}

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAssignments")
	defer span.End()

	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetAssignments(ctx, label)
	if err != nil {
		h.fail(ctx, w, "_getAssignments", err, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, assignmentToDTO))
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAvailability")
	defer span.End()

	user, err := queryParam(r, "user")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetAvailability(ctx, user, label)
	if err != nil {
		h.fail(ctx, w, "_getAvailability", err, "user", user, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, availabilityToDTO))
}

func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPreference")
	defer span.End()

	user, err := queryParam(r, "user")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetPreference(ctx, user, label)
	if err != nil {
		h.fail(ctx, w, "_getPreference", err, "user", user, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, preferenceToDTO))
}

func (h *Handler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWorkload")
	defer span.End()

	label, err := queryParam(r, "period")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.services.Queries.GetWorkload(ctx, label)
	if err != nil {
		h.fail(ctx, w, "_getWorkload", err, "period", label)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nonNilSlice(items))
}

// Audit takes optional repeated period parameters; none audits every period.
func (h *Handler) Audit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Audit")
	defer span.End()

	labels := r.URL.Query()["period"]
	result, err := h.services.Audit.Audit(ctx, labels...)
	if err != nil {
		h.fail(ctx, w, "_audit", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, []auditResultDTO{auditResultToDTO(result)})
}

func (h *Handler) RenderPrompt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenderPrompt")
	defer span.End()

	prompt, err := h.services.Suggestions.RenderPrompt(ctx)
	if err != nil {
		h.fail(ctx, w, "_renderPrompt", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, []promptDTO{{Prompt: prompt}})
}
