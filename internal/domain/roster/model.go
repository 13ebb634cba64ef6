package roster

import "fmt"

// Cook is a user's membership in one period's roster.
type Cook struct {
	ID     string
	User   string
	Period string
}

func (c Cook) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("cook id is required")
	}
	if c.User == "" {
		return fmt.Errorf("cook user is required")
	}
	if c.Period == "" {
		return fmt.Errorf("cook period is required")
	}
	return nil
}
