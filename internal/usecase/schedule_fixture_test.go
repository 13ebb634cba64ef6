package usecase

import (
	"testing"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/cooking-schedule/internal/platform/id"
	"github.com/riskibarqy/cooking-schedule/internal/platform/logging"
)

const testPeriod = "2025-10"

type scheduleFixture struct {
	repos        Repositories
	calendar     *CalendarService
	roster       *RosterService
	availability *AvailabilityService
	preferences  *PreferenceService
	assignments  *AssignmentService
	scheduler    *SchedulerService
	queries      *QueryService
	audit        *AuditService
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()

	repos := Repositories{
		Periods:      memory.NewPeriodRepository(),
		Cooks:        memory.NewRosterRepository(),
		Availability: memory.NewAvailabilityRepository(),
		Preferences:  memory.NewPreferenceRepository(),
		Assignments:  memory.NewAssignmentRepository(),
	}
	ids := idgen.NewSequenceGenerator("id")
	logger := logging.NewNop()

	assignments := NewAssignmentService(repos, ids, logger)
	return &scheduleFixture{
		repos:        repos,
		calendar:     NewCalendarService(repos, ids, logger),
		roster:       NewRosterService(repos, ids, logger),
		availability: NewAvailabilityService(repos, ids, logger),
		preferences:  NewPreferenceService(repos, ids, logger),
		assignments:  assignments,
		scheduler:    NewSchedulerService(repos, assignments, logger),
		queries:      NewQueryService(repos),
		audit:        NewAuditService(repos, 2, logger),
	}
}

// seedOpenPeriod registers label as the current, open period with the given dates.
func (f *scheduleFixture) seedOpenPeriod(t *testing.T, label string, dates ...string) {
	t.Helper()

	if _, err := f.calendar.AddPeriod(t.Context(), AddPeriodInput{Label: label, Current: true}); err != nil {
		t.Fatalf("add period %s: %v", label, err)
	}
	if err := f.calendar.OpenPeriod(t.Context(), label); err != nil {
		t.Fatalf("open period %s: %v", label, err)
	}
	for _, date := range dates {
		if _, err := f.calendar.AddCookingDate(t.Context(), date); err != nil {
			t.Fatalf("add cooking date %s: %v", date, err)
		}
	}
}

type cookSpec struct {
	solo, lead, assist bool
	max                int
}

// seedCook rosters user in the test period, uploads the preference and marks
// the user available on dates.
func (f *scheduleFixture) seedCook(t *testing.T, user string, spec cookSpec, dates ...string) {
	t.Helper()

	if _, err := f.roster.AddCook(t.Context(), user, testPeriod); err != nil {
		t.Fatalf("add cook %s: %v", user, err)
	}
	for _, date := range dates {
		if _, err := f.availability.AddAvailability(t.Context(), user, date); err != nil {
			t.Fatalf("add availability %s on %s: %v", user, date, err)
		}
	}
	f.uploadPreference(t, user, spec)
}

func (f *scheduleFixture) uploadPreference(t *testing.T, user string, spec cookSpec) PreferenceUpdate {
	t.Helper()

	update, err := f.preferences.UploadPreference(t.Context(), UploadPreferenceInput{
		User:           user,
		Period:         testPeriod,
		CanSolo:        spec.solo,
		CanLead:        spec.lead,
		CanAssist:      spec.assist,
		MaxCookingDays: spec.max,
	})
	if err != nil {
		t.Fatalf("upload preference for %s: %v", user, err)
	}
	return update
}

func (f *scheduleFixture) mustAssignLead(t *testing.T, user, date string) {
	t.Helper()
	if _, err := f.assignments.AssignLead(t.Context(), user, date); err != nil {
		t.Fatalf("assign lead %s on %s: %v", user, date, err)
	}
}

func (f *scheduleFixture) mustAssignAssistant(t *testing.T, user, date string) {
	t.Helper()
	if _, err := f.assignments.AssignAssistant(t.Context(), user, date); err != nil {
		t.Fatalf("assign assistant %s on %s: %v", user, date, err)
	}
}

func (f *scheduleFixture) assignmentOn(t *testing.T, date string) (assignment.Assignment, bool) {
	t.Helper()
	item, exists, err := f.repos.Assignments.Get(t.Context(), date)
	if err != nil {
		t.Fatalf("get assignment %s: %v", date, err)
	}
	return item, exists
}

func (f *scheduleFixture) listAssignments(t *testing.T) []assignment.Assignment {
	t.Helper()
	items, err := f.repos.Assignments.ListByPeriod(t.Context(), testPeriod)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	return items
}

func (f *scheduleFixture) requireNoViolations(t *testing.T) {
	t.Helper()
	result, err := f.audit.Audit(t.Context())
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(result.Violations) != 0 {
		t.Fatalf("expected no invariant violations, got %v", result.Violations)
	}
}
