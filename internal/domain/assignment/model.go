package assignment

import "fmt"

// Assignment is the committed cooking calendar entry for one date.
// An empty Assistant means the lead cooks solo.
type Assignment struct {
	ID        string
	Period    string
	Date      string
	Lead      string
	Assistant string
}

func (a Assignment) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("assignment id is required")
	}
	if a.Period == "" || a.Date == "" {
		return fmt.Errorf("assignment period and date are required")
	}
	if a.Lead == "" {
		return fmt.Errorf("assignment lead is required")
	}
	if a.Assistant != "" && a.Assistant == a.Lead {
		return fmt.Errorf("assignment lead and assistant must differ: %s", a.Lead)
	}
	return nil
}

func (a Assignment) IsSolo() bool {
	return a.Assistant == ""
}

// Involves reports whether the user holds either slot.
func (a Assignment) Involves(user string) bool {
	return a.Lead == user || (a.Assistant != "" && a.Assistant == user)
}
