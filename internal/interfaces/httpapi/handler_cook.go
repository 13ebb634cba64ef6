package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

func (h *Handler) AddCook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddCook")
	defer span.End()

	var req cookRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.services.Roster.AddCook(ctx, req.User, req.Period)
	if err != nil {
		h.fail(ctx, w, "addCook", err, "user", req.User, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, cookToDTO(item))
}

func (h *Handler) RemoveCook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveCook")
	defer span.End()

	var req cookRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Roster.RemoveCook(ctx, req.User, req.Period); err != nil {
		h.fail(ctx, w, "removeCook", err, "user", req.User, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}

func (h *Handler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddAvailability")
	defer span.End()

	var req userDateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.services.Availability.AddAvailability(ctx, req.User, req.Date)
	if err != nil {
		h.fail(ctx, w, "addAvailability", err, "user", req.User, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, availabilityToDTO(item))
}

func (h *Handler) RemoveAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveAvailability")
	defer span.End()

	var req userDateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Availability.RemoveAvailability(ctx, req.User, req.Date); err != nil {
		h.fail(ctx, w, "removeAvailability", err, "user", req.User, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}

func (h *Handler) UploadPreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadPreference")
	defer span.End()

	var req uploadPreferenceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	update, err := h.services.Preferences.UploadPreference(ctx, usecase.UploadPreferenceInput{
		User:           req.User,
		Period:         req.Period,
		CanSolo:        req.CanSolo,
		CanLead:        req.CanLead,
		CanAssist:      req.CanAssist,
		MaxCookingDays: req.MaxCookingDays,
	})
	if err != nil {
		h.fail(ctx, w, "uploadPreference", err, "user", req.User, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, preferenceUpdateToDTO(update))
}

func (h *Handler) ReconcilePreference(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcilePreference")
	defer span.End()

	var req cookRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	changes, err := h.services.Preferences.ReconcilePreference(ctx, req.User, req.Period)
	if err != nil {
		h.fail(ctx, w, "reconcilePreference", err, "user", req.User, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nonNilSlice(changes))
}
