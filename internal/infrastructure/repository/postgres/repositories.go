package postgres

import (
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

// NewRepositories binds every schedule store to one connection pool.
func NewRepositories(db *sqlx.DB) usecase.Repositories {
	return usecase.Repositories{
		Periods:      NewPeriodRepository(db),
		Cooks:        NewRosterRepository(db),
		Availability: NewAvailabilityRepository(db),
		Preferences:  NewPreferenceRepository(db),
		Assignments:  NewAssignmentRepository(db),
	}
}
