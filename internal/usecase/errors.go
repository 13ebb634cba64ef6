package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotRegistered         = errors.New("not registered")
	ErrAlreadyExists         = errors.New("already exists")
	ErrPreconditionFailed    = errors.New("precondition failed")
	ErrWorkloadExceeded      = errors.New("workload exceeded")
	ErrMalformedSuggestion   = errors.New("malformed suggestion")
	ErrOracleUnavailable     = errors.New("oracle unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var errorTags = []struct {
	err error
	tag string
}{
	{ErrInvalidInput, "InvalidInput"},
	{ErrNotRegistered, "NotRegistered"},
	{ErrAlreadyExists, "AlreadyExists"},
	{ErrPreconditionFailed, "PreconditionFailed"},
	{ErrWorkloadExceeded, "WorkloadExceeded"},
	{ErrMalformedSuggestion, "MalformedSuggestion"},
	{ErrOracleUnavailable, "OracleUnavailable"},
	{ErrDependencyUnavailable, "DependencyUnavailable"},
}

// ErrorTag returns the taxonomy tag of err, or "" when err is not classified.
func ErrorTag(err error) string {
	if err == nil {
		return ""
	}
	for _, item := range errorTags {
		if errors.Is(err, item.err) {
			return item.tag
		}
	}
	return ""
}

func isDuplicateConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}
