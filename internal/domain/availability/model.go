package availability

import "fmt"

// Availability records that a cook is willing to cook on a date.
type Availability struct {
	ID     string
	User   string
	Period string
	Date   string
}

func (a Availability) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("availability id is required")
	}
	if a.User == "" {
		return fmt.Errorf("availability user is required")
	}
	if a.Period == "" || a.Date == "" {
		return fmt.Errorf("availability period and date are required")
	}
	return nil
}
