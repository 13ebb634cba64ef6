package httpapi

import (
	"net/http"

	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

func (h *Handler) AddPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPeriod")
	defer span.End()

	var req addPeriodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.services.Calendar.AddPeriod(ctx, usecase.AddPeriodInput{Label: req.Period, Current: req.Current})
	if err != nil {
		h.fail(ctx, w, "addPeriod", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, periodToDTO(item))
}

func (h *Handler) RemovePeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePeriod")
	defer span.End()

	var req periodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Calendar.RemovePeriod(ctx, req.Period); err != nil {
		h.fail(ctx, w, "removePeriod", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}

func (h *Handler) SetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCurrentPeriod")
	defer span.End()

	var req periodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Calendar.SetCurrentPeriod(ctx, req.Period); err != nil {
		h.fail(ctx, w, "setCurrentPeriod", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}

func (h *Handler) TogglePeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TogglePeriod")
	defer span.End()

	var req periodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	open, err := h.services.Calendar.TogglePeriod(ctx, req.Period)
	if err != nil {
		h.fail(ctx, w, "togglePeriod", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, togglePeriodDTO{Period: req.Period, IsOpen: open})
}

func (h *Handler) OpenPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenPeriod")
	defer span.End()

	var req periodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Calendar.OpenPeriod(ctx, req.Period); err != nil {
		h.fail(ctx, w, "openPeriod", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, togglePeriodDTO{Period: req.Period, IsOpen: true})
}

func (h *Handler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClosePeriod")
	defer span.End()

	var req periodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Calendar.ClosePeriod(ctx, req.Period); err != nil {
		h.fail(ctx, w, "closePeriod", err, "period", req.Period)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, togglePeriodDTO{Period: req.Period, IsOpen: false})
}

func (h *Handler) AddCookingDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddCookingDate")
	defer span.End()

	var req dateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.services.Calendar.AddCookingDate(ctx, req.Date)
	if err != nil {
		h.fail(ctx, w, "addCookingDate", err, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, cookingDateToDTO(item))
}

func (h *Handler) RemoveCookingDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveCookingDate")
	defer span.End()

	var req dateRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.services.Calendar.RemoveCookingDate(ctx, req.Date); err != nil {
		h.fail(ctx, w, "removeCookingDate", err, "date", req.Date)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, emptyResponse{})
}
