package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	labelLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// Period is a monthly scheduling window identified by its YYYY-MM label.
type Period struct {
	ID         string
	Label      string
	StartMonth int
	Year       int
	IsCurrent  bool
	IsOpen     bool
	CreatedAt  time.Time
}

func (p Period) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("period id is required")
	}
	month, year, err := ParseLabel(p.Label)
	if err != nil {
		return err
	}
	if month != p.StartMonth || year != p.Year {
		return fmt.Errorf("period %s does not match month=%d year=%d", p.Label, p.StartMonth, p.Year)
	}
	return nil
}

// CookingDate is a single day of a period that can hold one assignment.
type CookingDate struct {
	ID     string
	Period string
	Date   string
}

func (d CookingDate) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("cooking date id is required")
	}
	label, err := LabelOf(d.Date)
	if err != nil {
		return err
	}
	if label != d.Period {
		return fmt.Errorf("cooking date %s does not belong to period %s", d.Date, d.Period)
	}
	return nil
}

// ParseLabel returns the month and year encoded in a YYYY-MM label.
func ParseLabel(label string) (month int, year int, err error) {
	label = strings.TrimSpace(label)
	if _, err := time.Parse(labelLayout, label); err != nil {
		return 0, 0, fmt.Errorf("invalid period label %q: expected YYYY-MM", label)
	}

	year, _ = strconv.Atoi(label[:4])
	month, _ = strconv.Atoi(label[5:7])
	return month, year, nil
}

// NormalizeDate validates a YYYY-MM-DD date and returns it in canonical form.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return parsed.Format(dateLayout), nil
}

// LabelOf derives the owning period label from a date.
func LabelOf(date string) (string, error) {
	normalized, err := NormalizeDate(date)
	if err != nil {
		return "", err
	}
	return normalized[:7], nil
}
