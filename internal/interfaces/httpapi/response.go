package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "cooking-schedule"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// mappedError carries the HTTP rendering of an error. Reason is the
// taxonomy tag reported to callers.
type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = internalMessage
	}
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: internalMessage,
			Status:  "INTERNAL",
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  "Internal",
					Message: internalMessage,
				},
			},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, errUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "Unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "InvalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrNotRegistered):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "NotRegistered", Status: "NOT_FOUND"}
	case errors.Is(err, usecase.ErrAlreadyExists):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "AlreadyExists", Status: "ALREADY_EXISTS"}
	case errors.Is(err, usecase.ErrPreconditionFailed):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "PreconditionFailed", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrWorkloadExceeded):
		return mappedError{HTTPStatus: http.StatusUnprocessableEntity, Reason: "WorkloadExceeded", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrMalformedSuggestion):
		return mappedError{HTTPStatus: http.StatusBadGateway, Reason: "MalformedSuggestion", Status: "DATA_LOSS"}
	case errors.Is(err, usecase.ErrOracleUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "OracleUnavailable", Status: "UNAVAILABLE"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "DependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "Internal", Status: "INTERNAL"}
	}
}
