package assignment

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
)

var (
	ErrLeadIncapable      = errors.New("lead lacks required capability")
	ErrAssistantIncapable = errors.New("assistant lacks required capability")
	ErrCookUnavailable    = errors.New("cook is not available on date")
	ErrWorkloadExceeded   = errors.New("cook exceeds max cooking days")
	ErrDuplicateDate      = errors.New("more than one assignment for date")
	ErrMissingPreference  = errors.New("cook has no preference")
)

// Violation describes one invariant breach found in a stored calendar.
type Violation struct {
	Period string
	Date   string
	User   string
	Err    error
}

func (v Violation) Error() string {
	if v.User == "" {
		return fmt.Sprintf("%s %s: %v", v.Period, v.Date, v.Err)
	}
	return fmt.Sprintf("%s %s user=%s: %v", v.Period, v.Date, v.User, v.Err)
}

// Snapshot is the state one period's assignments are checked against.
// Available is keyed by user then date.
type Snapshot struct {
	Period      string
	Assignments []Assignment
	Preferences map[string]preference.Preference
	Available   map[string]map[string]bool
}

// CheckEntry evaluates the per-entry rules: lead and assistant capabilities
// and availability on the entry's date.
func CheckEntry(item Assignment, prefs map[string]preference.Preference, available map[string]map[string]bool) []Violation {
	var out []Violation
	add := func(user string, err error) {
		out = append(out, Violation{Period: item.Period, Date: item.Date, User: user, Err: err})
	}

	lead, ok := prefs[item.Lead]
	switch {
	case !ok:
		add(item.Lead, ErrMissingPreference)
	case !lead.CanLead && !(item.IsSolo() && lead.CanSolo):
		add(item.Lead, ErrLeadIncapable)
	}
	if !available[item.Lead][item.Date] {
		add(item.Lead, ErrCookUnavailable)
	}

	if item.IsSolo() {
		return out
	}

	assistant, ok := prefs[item.Assistant]
	switch {
	case !ok:
		add(item.Assistant, ErrMissingPreference)
	case !assistant.CanAssist:
		add(item.Assistant, ErrAssistantIncapable)
	}
	if !available[item.Assistant][item.Date] {
		add(item.Assistant, ErrCookUnavailable)
	}
	return out
}

// Check evaluates every invariant over a period snapshot.
func Check(s Snapshot) []Violation {
	var out []Violation

	perDate := make(map[string]int, len(s.Assignments))
	load := make(map[string]int)
	for _, item := range s.Assignments {
		perDate[item.Date]++
		if perDate[item.Date] == 2 {
			out = append(out, Violation{Period: s.Period, Date: item.Date, Err: ErrDuplicateDate})
		}
		out = append(out, CheckEntry(item, s.Preferences, s.Available)...)

		load[item.Lead]++
		if !item.IsSolo() {
			load[item.Assistant]++
		}
	}

	for user, count := range load {
		pref, ok := s.Preferences[user]
		if !ok {
			continue
		}
		if count > pref.MaxCookingDays {
			out = append(out, Violation{
				Period: s.Period,
				User:   user,
				Err:    fmt.Errorf("%w: assigned=%d max=%d", ErrWorkloadExceeded, count, pref.MaxCookingDays),
			})
		}
	}
	return out
}

// CountFor returns how many entries the user appears in, ignoring skipDate.
func CountFor(items []Assignment, user, skipDate string) int {
	count := 0
	for _, item := range items {
		if item.Date == skipDate {
			continue
		}
		if item.Involves(user) {
			count++
		}
	}
	return count
}
