package usecase

import (
	"errors"
	"testing"
)

func TestRosterService_AddCook(t *testing.T) {
	f := newScheduleFixture(t)

	if _, err := f.roster.AddCook(t.Context(), "alice", testPeriod); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered for unknown period, got %v", err)
	}

	f.seedOpenPeriod(t, testPeriod)
	if _, err := f.roster.AddCook(t.Context(), "alice", testPeriod); err != nil {
		t.Fatalf("add cook: %v", err)
	}
	if _, err := f.roster.AddCook(t.Context(), "alice", testPeriod); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := f.roster.AddCook(t.Context(), "  ", testPeriod); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_RemoveCookCascades(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod, "2025-10-01", "2025-10-02")
	f.seedCook(t, "alice", cookSpec{lead: true, assist: true, max: 2}, "2025-10-01", "2025-10-02")
	f.seedCook(t, "bob", cookSpec{lead: true, assist: true, max: 2}, "2025-10-01", "2025-10-02")
	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignAssistant(t, "bob", "2025-10-01")
	f.mustAssignLead(t, "bob", "2025-10-02")
	f.mustAssignAssistant(t, "alice", "2025-10-02")

	if err := f.roster.RemoveCook(t.Context(), "alice", testPeriod); err != nil {
		t.Fatalf("remove cook: %v", err)
	}

	if _, exists := f.assignmentOn(t, "2025-10-01"); exists {
		t.Fatalf("expected assignment led by removed cook to be deleted")
	}
	item, exists := f.assignmentOn(t, "2025-10-02")
	if !exists || item.Lead != "bob" || item.Assistant != "" {
		t.Fatalf("expected bob to keep leading 2025-10-02 without assistant, got %+v exists=%v", item, exists)
	}

	prefs, _ := f.queries.GetPreference(t.Context(), "alice", testPeriod)
	avail, _ := f.queries.GetAvailability(t.Context(), "alice", testPeriod)
	if len(prefs) != 0 || len(avail) != 0 {
		t.Fatalf("expected preference and availability removed, got prefs=%v avail=%v", prefs, avail)
	}
	f.requireNoViolations(t)

	if err := f.roster.RemoveCook(t.Context(), "alice", testPeriod); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}
