package usecase

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_UploadPreferencePreconditions(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod)

	_, err := f.preferences.UploadPreference(t.Context(), UploadPreferenceInput{User: "alice", Period: testPeriod, MaxCookingDays: 1})
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered for unrostered user, got %v", err)
	}

	if _, err := f.roster.AddCook(t.Context(), "alice", testPeriod); err != nil {
		t.Fatalf("add cook: %v", err)
	}
	_, err = f.preferences.UploadPreference(t.Context(), UploadPreferenceInput{User: "alice", Period: testPeriod, MaxCookingDays: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative max, got %v", err)
	}

	if err := f.calendar.ClosePeriod(t.Context(), testPeriod); err != nil {
		t.Fatalf("close period: %v", err)
	}
	_, err = f.preferences.UploadPreference(t.Context(), UploadPreferenceInput{User: "alice", Period: testPeriod, MaxCookingDays: 1})
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed for closed period, got %v", err)
	}
}

func TestPreferenceService_UploadPreferenceKeepsID(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod)
	f.seedCook(t, "alice", cookSpec{solo: true, max: 1})

	first := f.uploadPreference(t, "alice", cookSpec{solo: true, max: 3})
	second := f.uploadPreference(t, "alice", cookSpec{lead: true, max: 2})

	require.Equal(t, first.Preference.ID, second.Preference.ID)
	prefs, err := f.queries.GetPreference(t.Context(), "alice", testPeriod)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.True(t, prefs[0].CanLead)
	assert.False(t, prefs[0].CanSolo)
	assert.Equal(t, 2, prefs[0].MaxCookingDays)
}

func TestPreferenceService_LosingLeadDeletesPairedAssignment(t *testing.T) {
	f := newScheduleFixture(t)
	f.seedOpenPeriod(t, testPeriod, "2025-10-01")
	f.seedCook(t, "alice", cookSpec{lead: true, max: 1}, "2025-10-01")
	f.seedCook(t, "bob", cookSpec{assist: true, max: 1}, "2025-10-01")
	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignAssistant(t, "bob", "2025-10-01")

	update := f.uploadPreference(t, "alice", cookSpec{lead: false, assist: true, max: 1})

	if _, exists := f.assignmentOn(t, "2025-10-01"); exists {
		t.Fatalf("expected the whole paired assignment to be deleted")
	}
	if len(update.Changes) != 1 || update.Changes[0].Action != CascadeActionDeleted {
		t.Fatalf("unexpected cascade changes: %+v", update.Changes)
	}
	f.requireNoViolations(t)
}

func TestPreferenceService_CascadeCapabilityLoss(t *testing.T) {
	tests := []struct {
		name          string
		next          cookSpec
		wantSolo      bool
		wantPaired    bool
		wantAssistant bool
	}{
		{
			name:          "losing solo drops only solo leads",
			next:          cookSpec{lead: true, assist: true, max: 3},
			wantSolo:      false,
			wantPaired:    true,
			wantAssistant: true,
		},
		{
			name:          "losing lead drops every led date",
			next:          cookSpec{solo: true, assist: true, max: 3},
			wantSolo:      false,
			wantPaired:    false,
			wantAssistant: true,
		},
		{
			name:          "losing assist clears the assistant slot",
			next:          cookSpec{solo: true, lead: true, max: 3},
			wantSolo:      true,
			wantPaired:    true,
			wantAssistant: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newScheduleFixture(t)
			dates := []string{"2025-10-01", "2025-10-02", "2025-10-03"}
			f.seedOpenPeriod(t, testPeriod, dates...)
			f.seedCook(t, "alice", cookSpec{solo: true, lead: true, assist: true, max: 3}, dates...)
			f.seedCook(t, "bob", cookSpec{lead: true, assist: true, max: 3}, dates...)

			f.mustAssignLead(t, "alice", "2025-10-01")
			f.mustAssignLead(t, "alice", "2025-10-02")
			f.mustAssignAssistant(t, "bob", "2025-10-02")
			f.mustAssignLead(t, "bob", "2025-10-03")
			f.mustAssignAssistant(t, "alice", "2025-10-03")

			f.uploadPreference(t, "alice", tc.next)

			solo, soloExists := f.assignmentOn(t, "2025-10-01")
			if soloExists != tc.wantSolo {
				t.Fatalf("solo entry exists=%v want %v (%+v)", soloExists, tc.wantSolo, solo)
			}
			_, pairedExists := f.assignmentOn(t, "2025-10-02")
			if pairedExists != tc.wantPaired {
				t.Fatalf("paired entry exists=%v want %v", pairedExists, tc.wantPaired)
			}
			assisted, exists := f.assignmentOn(t, "2025-10-03")
			if !exists || assisted.Lead != "bob" {
				t.Fatalf("expected bob to keep leading 2025-10-03, got %+v", assisted)
			}
			if (assisted.Assistant == "alice") != tc.wantAssistant {
				t.Fatalf("assistant slot=%q want alice=%v", assisted.Assistant, tc.wantAssistant)
			}
			f.requireNoViolations(t)
		})
	}
}

func TestPreferenceService_TrimSurplusAssistFirstLatestFirst(t *testing.T) {
	f := newScheduleFixture(t)
	dates := []string{"2025-10-01", "2025-10-02", "2025-10-03", "2025-10-04"}
	f.seedOpenPeriod(t, testPeriod, dates...)
	f.seedCook(t, "alice", cookSpec{solo: true, lead: true, assist: true, max: 4}, dates...)
	f.seedCook(t, "bob", cookSpec{lead: true, assist: true, max: 4}, dates...)

	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignLead(t, "bob", "2025-10-02")
	f.mustAssignAssistant(t, "alice", "2025-10-02")
	f.mustAssignLead(t, "alice", "2025-10-03")
	f.mustAssignLead(t, "bob", "2025-10-04")
	f.mustAssignAssistant(t, "alice", "2025-10-04")

	update := f.uploadPreference(t, "alice", cookSpec{solo: true, lead: true, assist: true, max: 1})

	wantChanges := []CascadeChange{
		{Date: "2025-10-04", Action: CascadeActionAssistantCleared, Reason: "over max cooking days"},
		{Date: "2025-10-02", Action: CascadeActionAssistantCleared, Reason: "over max cooking days"},
		{Date: "2025-10-03", Action: CascadeActionDeleted, Reason: "over max cooking days"},
	}
	if !reflect.DeepEqual(update.Changes, wantChanges) {
		t.Fatalf("unexpected trim order:\nwant %+v\ngot  %+v", wantChanges, update.Changes)
	}

	item, exists := f.assignmentOn(t, "2025-10-01")
	if !exists || item.Lead != "alice" {
		t.Fatalf("expected earliest solo date to survive, got %+v", item)
	}
	f.requireNoViolations(t)
}

func TestPreferenceService_CascadeIsIdempotent(t *testing.T) {
	f := newScheduleFixture(t)
	dates := []string{"2025-10-01", "2025-10-02", "2025-10-03"}
	f.seedOpenPeriod(t, testPeriod, dates...)
	f.seedCook(t, "alice", cookSpec{solo: true, lead: true, assist: true, max: 3}, dates...)
	f.seedCook(t, "bob", cookSpec{lead: true, assist: true, max: 3}, dates...)
	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignLead(t, "bob", "2025-10-02")
	f.mustAssignAssistant(t, "alice", "2025-10-02")
	f.mustAssignLead(t, "alice", "2025-10-03")

	f.uploadPreference(t, "alice", cookSpec{lead: true, assist: true, max: 1})
	afterFirst := f.listAssignments(t)

	changes, err := f.preferences.ReconcilePreference(t.Context(), "alice", testPeriod)
	if err != nil {
		t.Fatalf("reconcile preference: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected second cascade run to change nothing, got %+v", changes)
	}
	if afterSecond := f.listAssignments(t); !reflect.DeepEqual(afterFirst, afterSecond) {
		t.Fatalf("store changed on second run:\nfirst  %+v\nsecond %+v", afterFirst, afterSecond)
	}
}
