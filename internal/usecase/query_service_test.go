package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryService_EmptyResults(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := t.Context()

	registered, err := f.queries.IsRegistered(ctx, testPeriod)
	require.NoError(t, err)
	assert.False(t, registered)

	_, exists, err := f.queries.GetCurrentPeriod(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	periods, err := f.queries.ListPeriods(ctx)
	require.NoError(t, err)
	assert.NotNil(t, periods)
	assert.Empty(t, periods)

	cooks, err := f.queries.GetCooks(ctx, testPeriod)
	require.NoError(t, err)
	assert.NotNil(t, cooks)

	got, err := f.queries.GetAssignment(ctx, "not-a-date")
	require.NoError(t, err)
	assert.Empty(t, got)

	prefs, err := f.queries.GetPreference(ctx, "alice", testPeriod)
	require.NoError(t, err)
	assert.NotNil(t, prefs)
	assert.Empty(t, prefs)
}

func TestQueryService_ReadsSchedule(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := t.Context()
	f.seedOpenPeriod(t, testPeriod, "2025-10-01", "2025-10-02")
	f.seedCook(t, "alice", cookSpec{lead: true, max: 2}, "2025-10-01", "2025-10-02")
	f.seedCook(t, "bob", cookSpec{assist: true, max: 1}, "2025-10-01")
	f.mustAssignLead(t, "alice", "2025-10-01")
	f.mustAssignAssistant(t, "bob", "2025-10-01")

	open, err := f.queries.IsOpen(ctx, testPeriod)
	require.NoError(t, err)
	assert.True(t, open)

	current, exists, err := f.queries.GetCurrentPeriod(ctx)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, testPeriod, current.Label)

	dates, err := f.queries.GetCookingDates(ctx, testPeriod)
	require.NoError(t, err)
	assert.Len(t, dates, 2)

	got, err := f.queries.GetAssignment(ctx, "2025-10-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Lead)
	assert.Equal(t, "bob", got[0].Assistant)

	avail, err := f.queries.GetAvailability(ctx, "alice", testPeriod)
	require.NoError(t, err)
	assert.Len(t, avail, 2)

	workload, err := f.queries.GetWorkload(ctx, testPeriod)
	require.NoError(t, err)
	assert.Equal(t, []CookWorkload{
		{User: "alice", Assigned: 1, Max: 2, Remaining: 1, HasPreference: true},
		{User: "bob", Assigned: 1, Max: 1, Remaining: 0, HasPreference: true},
	}, workload)
}

func TestAuditService_ReportsOutOfBandViolations(t *testing.T) {
	f := newScheduleFixture(t)
	ctx := t.Context()
	f.seedOpenPeriod(t, testPeriod, "2025-10-01", "2025-10-02")
	f.seedCook(t, "alice", cookSpec{lead: true, max: 1}, "2025-10-01")
	f.seedCook(t, "bob", cookSpec{lead: true, max: 1}, "2025-10-01", "2025-10-02")

	// Written straight to storage so no primitive gets a chance to refuse it.
	err := f.repos.Assignments.Upsert(ctx, assignment.Assignment{
		ID: "raw-1", Period: testPeriod, Date: "2025-10-02", Lead: "alice", Assistant: "bob",
	})
	require.NoError(t, err)

	result, err := f.audit.Audit(ctx, testPeriod)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PeriodCount)
	assert.Equal(t, 1, result.Checked)

	var sawUnavailable, sawAssistant bool
	for _, v := range result.Violations {
		switch {
		case v.User == "alice" && errors.Is(v.Err, assignment.ErrCookUnavailable):
			sawUnavailable = true
		case v.User == "bob" && errors.Is(v.Err, assignment.ErrAssistantIncapable):
			sawAssistant = true
		}
	}
	assert.True(t, sawUnavailable, "expected alice unavailable violation, got %v", result.Violations)
	assert.True(t, sawAssistant, "expected bob capability violation, got %v", result.Violations)
}

func TestAuditService_UnknownPeriod(t *testing.T) {
	f := newScheduleFixture(t)

	_, err := f.audit.Audit(t.Context(), "2031-01")
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}
