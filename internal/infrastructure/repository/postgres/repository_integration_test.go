package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/cooking-schedule/db"
	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway Postgres with the schema applied. It needs
// Docker, so it only runs when POSTGRES_INTEGRATION is set.
func startPostgres(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() || os.Getenv("POSTGRES_INTEGRATION") == "" {
		t.Skip("set POSTGRES_INTEGRATION=1 to run postgres repository tests (requires Docker)")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "cooking",
				"POSTGRES_USER":     "cooking",
				"POSTGRES_PASSWORD": "cooking",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://cooking:cooking@%s:%s/cooking?sslmode=disable", host, port.Port())
	require.NoError(t, db.Up(dsn))

	conn, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRepositories_Postgres(t *testing.T) {
	conn := startPostgres(t)
	ctx := t.Context()
	repos := NewRepositories(conn)

	require.NoError(t, repos.Periods.Create(ctx, period.Period{ID: "p1", Label: "2025-10", StartMonth: 10, Year: 2025, IsCurrent: true}))
	require.NoError(t, repos.Periods.Create(ctx, period.Period{ID: "p2", Label: "2025-11", StartMonth: 11, Year: 2025, IsCurrent: true}))

	err := repos.Periods.Create(ctx, period.Period{ID: "p3", Label: "2025-10", StartMonth: 10, Year: 2025})
	assert.True(t, errors.Is(err, ErrDuplicate), "expected duplicate period, got %v", err)

	current, exists, err := repos.Periods.GetCurrent(ctx)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "2025-11", current.Label)

	require.NoError(t, repos.Periods.SetCurrent(ctx, "2025-10"))
	require.NoError(t, repos.Periods.SetOpen(ctx, "2025-10", true))
	current, _, err = repos.Periods.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-10", current.Label)
	assert.True(t, current.IsOpen)

	for i, date := range []string{"2025-10-02", "2025-10-01"} {
		require.NoError(t, repos.Periods.CreateDate(ctx, period.CookingDate{ID: fmt.Sprintf("d%d", i), Period: "2025-10", Date: date}))
	}
	dates, err := repos.Periods.ListDates(ctx, "2025-10")
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-10-01", dates[0].Date)

	require.NoError(t, repos.Cooks.Add(ctx, roster.Cook{ID: "c1", User: "alice", Period: "2025-10"}))
	require.NoError(t, repos.Cooks.Add(ctx, roster.Cook{ID: "c2", User: "bob", Period: "2025-10"}))
	err = repos.Cooks.Add(ctx, roster.Cook{ID: "c3", User: "alice", Period: "2025-10"})
	assert.True(t, errors.Is(err, ErrDuplicate), "expected duplicate cook, got %v", err)

	require.NoError(t, repos.Availability.Add(ctx, availability.Availability{ID: "a1", User: "alice", Period: "2025-10", Date: "2025-10-01"}))
	require.NoError(t, repos.Availability.Add(ctx, availability.Availability{ID: "a2", User: "bob", Period: "2025-10", Date: "2025-10-01"}))
	onDate, err := repos.Availability.ListByDate(ctx, "2025-10-01")
	require.NoError(t, err)
	assert.Len(t, onDate, 2)

	require.NoError(t, repos.Preferences.Upsert(ctx, preference.Preference{ID: "pref-1", User: "alice", Period: "2025-10", CanLead: true, MaxCookingDays: 2}))
	require.NoError(t, repos.Preferences.Upsert(ctx, preference.Preference{ID: "pref-2", User: "alice", Period: "2025-10", CanSolo: true, MaxCookingDays: 1}))
	pref, exists, err := repos.Preferences.Get(ctx, "alice", "2025-10")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "pref-1", pref.ID)
	assert.True(t, pref.CanSolo)
	assert.Equal(t, 1, pref.MaxCookingDays)

	require.NoError(t, repos.Assignments.Upsert(ctx, assignment.Assignment{ID: "as1", Period: "2025-10", Date: "2025-10-01", Lead: "alice"}))
	require.NoError(t, repos.Assignments.Upsert(ctx, assignment.Assignment{ID: "as2", Period: "2025-10", Date: "2025-10-01", Lead: "alice", Assistant: "bob"}))
	item, exists, err := repos.Assignments.Get(ctx, "2025-10-01")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, assignment.Assignment{ID: "as1", Period: "2025-10", Date: "2025-10-01", Lead: "alice", Assistant: "bob"}, item)

	byUser, err := repos.Assignments.ListByUser(ctx, "bob", "2025-10")
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, repos.Assignments.Delete(ctx, "2025-10-01"))
	require.NoError(t, repos.Availability.DeleteByDate(ctx, "2025-10-01"))
	require.NoError(t, repos.Periods.DeleteDate(ctx, "2025-10-01"))
	_, exists, err = repos.Periods.GetDate(ctx, "2025-10-01")
	require.NoError(t, err)
	assert.False(t, exists)
}
