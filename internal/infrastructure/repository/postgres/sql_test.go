package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation code", func(t *testing.T) {
		err := fmt.Errorf("insert cook: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(errors.New("duplicate key")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestClassifyWriteError(t *testing.T) {
	err := classifyWriteError("create period", &pq.Error{Code: "23505"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	other := classifyWriteError("create period", sql.ErrConnDone)
	if errors.Is(other, ErrDuplicate) || !errors.Is(other, sql.ErrConnDone) {
		t.Fatalf("expected wrapped original error, got %v", other)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
}

func TestFormatDate(t *testing.T) {
	got := formatDate(time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC))
	if got != "2025-10-03" {
		t.Fatalf("unexpected date: %s", got)
	}
}

func TestNullableString(t *testing.T) {
	if nullableString("").Valid {
		t.Fatalf("expected empty string to be NULL")
	}
	if v := nullableString("bob"); !v.Valid || v.String != "bob" {
		t.Fatalf("unexpected value: %+v", v)
	}
}
