package usecase

import (
	"errors"
	"testing"
)

func TestAssignmentService_AssignLeadPreconditions(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod, "2025-10-01", "2025-10-02", "2025-10-03")
	f.seedCook(t, "alice", cookSpec{solo: true, max: 1}, "2025-10-01", "2025-10-02")
	f.seedCook(t, "carol", cookSpec{assist: true, max: 2}, "2025-10-01")
	if _, err := f.roster.AddCook(t.Context(), "dave", testPeriod); err != nil {
		t.Fatalf("add cook: %v", err)
	}
	if _, err := f.availability.AddAvailability(t.Context(), "dave", "2025-10-01"); err != nil {
		t.Fatalf("add availability: %v", err)
	}

	tests := []struct {
		name      string
		user      string
		date      string
		targetErr error
	}{
		{name: "unregistered date", user: "alice", date: "2025-10-20", targetErr: ErrNotRegistered},
		{name: "not rostered", user: "mallory", date: "2025-10-01", targetErr: ErrNotRegistered},
		{name: "unavailable", user: "alice", date: "2025-10-03", targetErr: ErrPreconditionFailed},
		{name: "no preference", user: "dave", date: "2025-10-01", targetErr: ErrPreconditionFailed},
		{name: "assist only", user: "carol", date: "2025-10-01", targetErr: ErrPreconditionFailed},
		{name: "valid solo", user: "alice", date: "2025-10-01"},
		{name: "same lead again is a no-op", user: "alice", date: "2025-10-01"},
		{name: "over max cooking days", user: "alice", date: "2025-10-02", targetErr: ErrWorkloadExceeded},
	}

	for _, tc := range tests {
		_, err := f.assignments.AssignLead(t.Context(), tc.user, tc.date)
		if tc.targetErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.targetErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.targetErr, err)
		}
	}

	if items := f.listAssignments(t); len(items) != 1 {
		t.Fatalf("expected exactly one assignment, got %+v", items)
	}
	f.requireNoViolations(t)
}

func TestAssignmentService_AssignAssistant(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod, "2025-10-01", "2025-10-02")
	f.seedCook(t, "alice", cookSpec{solo: true, max: 2}, "2025-10-01", "2025-10-02")
	f.seedCook(t, "bob", cookSpec{lead: true, assist: true, max: 2}, "2025-10-01", "2025-10-02")
	f.seedCook(t, "carol", cookSpec{assist: true, max: 1}, "2025-10-01", "2025-10-02")

	if _, err := f.assignments.AssignAssistant(t.Context(), "carol", "2025-10-01"); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed without lead, got %v", err)
	}

	f.mustAssignLead(t, "alice", "2025-10-01")
	if _, err := f.assignments.AssignAssistant(t.Context(), "carol", "2025-10-01"); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed for solo-only lead, got %v", err)
	}

	f.mustAssignLead(t, "bob", "2025-10-02")
	if _, err := f.assignments.AssignAssistant(t.Context(), "bob", "2025-10-02"); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed when lead assists itself, got %v", err)
	}
	if _, err := f.assignments.AssignAssistant(t.Context(), "alice", "2025-10-02"); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed for cook without assist, got %v", err)
	}
	f.mustAssignAssistant(t, "carol", "2025-10-02")

	item, _ := f.assignmentOn(t, "2025-10-02")
	if item.Lead != "bob" || item.Assistant != "carol" {
		t.Fatalf("unexpected paired assignment: %+v", item)
	}
	f.requireNoViolations(t)
}

func TestAssignmentService_AssignLeadPreservesAssistant(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod, "2025-10-01")
	f.seedCook(t, "alice", cookSpec{lead: true, max: 1}, "2025-10-01")
	f.seedCook(t, "bob", cookSpec{lead: true, max: 1}, "2025-10-01")
	f.seedCook(t, "carol", cookSpec{assist: true, max: 1}, "2025-10-01")
	f.seedCook(t, "erin", cookSpec{solo: true, max: 1}, "2025-10-01")

	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignAssistant(t, "carol", "2025-10-01")

	if _, err := f.assignments.AssignLead(t.Context(), "erin", "2025-10-01"); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected solo-only cook to be refused a paired lead slot, got %v", err)
	}
	if _, err := f.assignments.AssignLead(t.Context(), "carol", "2025-10-01"); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected the assistant to be refused the lead slot, got %v", err)
	}

	f.mustAssignLead(t, "bob", "2025-10-01")
	item, _ := f.assignmentOn(t, "2025-10-01")
	if item.Lead != "bob" || item.Assistant != "carol" {
		t.Fatalf("expected bob to replace alice and keep carol, got %+v", item)
	}
	f.requireNoViolations(t)
}

func TestAssignmentService_RemoveAndClear(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod, "2025-10-01", "2025-10-02")
	f.seedCook(t, "alice", cookSpec{solo: true, max: 2}, "2025-10-01", "2025-10-02")
	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignLead(t, "alice", "2025-10-02")

	if err := f.assignments.RemoveAssignment(t.Context(), "2025-10-01"); err != nil {
		t.Fatalf("remove assignment: %v", err)
	}
	if err := f.assignments.RemoveAssignment(t.Context(), "2025-10-01"); err != nil {
		t.Fatalf("remove missing assignment should succeed: %v", err)
	}
	if items := f.listAssignments(t); len(items) != 1 {
		t.Fatalf("expected one assignment left, got %+v", items)
	}

	if err := f.assignments.ClearAssignments(t.Context(), testPeriod); err != nil {
		t.Fatalf("clear assignments: %v", err)
	}
	if items := f.listAssignments(t); len(items) != 0 {
		t.Fatalf("expected empty calendar, got %+v", items)
	}
	if err := f.assignments.ClearAssignments(t.Context(), "2031-01"); !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}
