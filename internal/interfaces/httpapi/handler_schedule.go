package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

func (h *Handler) AssignLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignLead")
	defer span.End()

	var req userDateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.services.Assignments.AssignLead(ctx, req.User, req.Date)
	if err != nil {
		h.fail(ctx, w, "assignLead", err, "user", req.User, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentToDTO(item))
}

func (h *Handler) AssignAssistant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignAssistant")
	defer span.End()

	var req userDateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.services.Assignments.AssignAssistant(ctx, req.User, req.Date)
	if err != nil {
		h.fail(ctx, w, "assignAssistant", err, "user", req.User, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentToDTO(item))
}

func (h *Handler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveAssignment")
	defer span.End()

	var req dateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Assignments.RemoveAssignment(ctx, req.Date); err != nil {
		h.fail(ctx, w, "removeAssignment", err, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}

func (h *Handler) ClearAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearAssignments")
	defer span.End()

	var req periodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Assignments.ClearAssignments(ctx, req.Period); err != nil {
		h.fail(ctx, w, "clearAssignments", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}

// GenerateAssignments accepts an empty body; {"reset": true} regenerates
// the calendar from scratch.
func (h *Handler) GenerateAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateAssignments")
	defer span.End()

	var req generateRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.services.Scheduler.GenerateAssignments(ctx, usecase.GenerateInput{Reset: req.Reset})
	if err != nil {
		h.fail(ctx, w, "generateAssignments", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, generateResultToDTO(result))
}

func (h *Handler) GenerateAssignmentsWithOracle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateAssignmentsWithOracle")
	defer span.End()

	result, err := h.services.Suggestions.GenerateWithOracle(ctx)
	if err != nil {
		h.fail(ctx, w, "generateAssignmentsWithLLM", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionResultToDTO(result))
}

// ApplySuggestion applies a calendar proposed outside the service, e.g. an
// oracle answer reviewed by an operator.
func (h *Handler) ApplySuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplySuggestion")
	defer span.End()

	var req applySuggestionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.services.Suggestions.ApplySuggestion(ctx, req.Period, req.Suggestion)
	if err != nil {
		h.fail(ctx, w, "applySuggestion", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionResultToDTO(result))
}
