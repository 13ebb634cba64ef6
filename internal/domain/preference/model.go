package preference

import "fmt"

// Preference holds a cook's role capabilities and workload ceiling for a period.
type Preference struct {
	ID             string
	User           string
	Period         string
	CanSolo        bool
	CanLead        bool
	CanAssist      bool
	MaxCookingDays int
}

func (p Preference) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("preference id is required")
	}
	if p.User == "" || p.Period == "" {
		return fmt.Errorf("preference user and period are required")
	}
	if p.MaxCookingDays < 0 {
		return fmt.Errorf("max cooking days must be >= 0")
	}
	return nil
}

// CanHeadDate reports whether the cook may be placed in the lead slot at all.
func (p Preference) CanHeadDate() bool {
	return p.CanLead || p.CanSolo
}
