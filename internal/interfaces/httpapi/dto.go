package httpapi

import (
	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
	"github.com/riskibarqy/cooking-schedule/internal/usecase"
)

type periodRequest struct {
	Period string `json:"period" validate:"required"`
}

type addPeriodRequest struct {
	Period  string `json:"period" validate:"required"`
	Current bool   `json:"current"`
}

type dateRequest struct {
	Date string `json:"date" validate:"required"`
}

type cookRequest struct {
	User   string `json:"user" validate:"required"`
	Period string `json:"period" validate:"required"`
}

type userDateRequest struct {
	User string `json:"user" validate:"required"`
	Date string `json:"date" validate:"required"`
}

type uploadPreferenceRequest struct {
	User           string `json:"user" validate:"required"`
	Period         string `json:"period" validate:"required"`
	CanSolo        bool   `json:"canSolo"`
	CanLead        bool   `json:"canLead"`
	CanAssist      bool   `json:"canAssist"`
	MaxCookingDays int    `json:"maxCookingDays" validate:"gte=0"`
}

type generateRequest struct {
	Reset bool `json:"reset"`
}

type applySuggestionRequest struct {
	Period     string `json:"period" validate:"required"`
	Suggestion string `json:"suggestion" validate:"required"`
}

type periodDTO struct {
	ID         string `json:"id"`
	Period     string `json:"period"`
	StartMonth int    `json:"startMonth"`
	Year       int    `json:"year"`
	IsCurrent  bool   `json:"isCurrent"`
	IsOpen     bool   `json:"isOpen"`
}

type cookingDateDTO struct {
	ID          string `json:"id"`
	Period      string `json:"period"`
	CookingDate string `json:"cookingDate"`
}

type cookDTO struct {
	ID     string `json:"id"`
	Cook   string `json:"cook"`
	Period string `json:"period"`
}

type availabilityDTO struct {
	ID     string `json:"id"`
	User   string `json:"user"`
	Period string `json:"period"`
	Date   string `json:"date"`
}

type preferenceDTO struct {
	ID             string `json:"id"`
	User           string `json:"user"`
	Period         string `json:"period"`
	CanSolo        bool   `json:"canSolo"`
	CanLead        bool   `json:"canLead"`
	CanAssist      bool   `json:"canAssist"`
	MaxCookingDays int    `json:"maxCookingDays"`
}

type assignmentDTO struct {
	ID        string `json:"id"`
	Period    string `json:"period"`
	Date      string `json:"date"`
	Lead      string `json:"lead"`
	Assistant string `json:"assistant,omitempty"`
}

type preferenceUpdateDTO struct {
	Preference preferenceDTO           `json:"preference"`
	Changes    []usecase.CascadeChange `json:"changes"`
}

type suggestionResultDTO struct {
	Period   string                   `json:"period"`
	Applied  []usecase.SuggestedEntry `json:"applied"`
	Rejected []usecase.RejectedEntry  `json:"rejected"`
}

type generateResultDTO struct {
	Period   string          `json:"period"`
	Assigned []assignmentDTO `json:"assigned"`
	Kept     []string        `json:"kept"`
	Unfilled []string        `json:"unfilled"`
}

type violationDTO struct {
	Period string `json:"period"`
	Date   string `json:"date"`
	User   string `json:"user,omitempty"`
	Reason string `json:"reason"`
}

type auditResultDTO struct {
	PeriodCount int            `json:"periodCount"`
	Checked     int            `json:"checked"`
	Violations  []violationDTO `json:"violations"`
}

type isRegisteredDTO struct {
	IsRegistered bool `json:"isRegistered"`
}

type isOpenDTO struct {
	IsOpen bool `json:"isOpen"`
}

type togglePeriodDTO struct {
	Period string `json:"period"`
	IsOpen bool   `json:"isOpen"`
}

type currentPeriodDTO struct {
	Period *string `json:"period"`
}

type promptDTO struct {
	Prompt string `json:"prompt"`
}

func periodToDTO(v period.Period) periodDTO {
	return periodDTO{
		ID:         v.ID,
		Period:     v.Label,
		StartMonth: v.StartMonth,
		Year:       v.Year,
		IsCurrent:  v.IsCurrent,
		IsOpen:     v.IsOpen,
	}
}

func cookingDateToDTO(v period.CookingDate) cookingDateDTO {
	return cookingDateDTO{ID: v.ID, Period: v.Period, CookingDate: v.Date}
}

func cookToDTO(v roster.Cook) cookDTO {
	return cookDTO{ID: v.ID, Cook: v.User, Period: v.Period}
}

func availabilityToDTO(v availability.Availability) availabilityDTO {
	return availabilityDTO{ID: v.ID, User: v.User, Period: v.Period, Date: v.Date}
}

func preferenceToDTO(v preference.Preference) preferenceDTO {
	return preferenceDTO{
		ID:             v.ID,
		User:           v.User,
		Period:         v.Period,
		CanSolo:        v.CanSolo,
		CanLead:        v.CanLead,
		CanAssist:      v.CanAssist,
		MaxCookingDays: v.MaxCookingDays,
	}
}

func assignmentToDTO(v assignment.Assignment) assignmentDTO {
	return assignmentDTO{
		ID:        v.ID,
		Period:    v.Period,
		Date:      v.Date,
		Lead:      v.Lead,
		Assistant: v.Assistant,
	}
}

func generateResultToDTO(v usecase.GenerateResult) generateResultDTO {
	return generateResultDTO{
		Period:   v.Period,
		Assigned: mapSlice(v.Assigned, assignmentToDTO),
		Kept:     nonNilSlice(v.Kept),
		Unfilled: nonNilSlice(v.Unfilled),
	}
}

func preferenceUpdateToDTO(v usecase.PreferenceUpdate) preferenceUpdateDTO {
	return preferenceUpdateDTO{
		Preference: preferenceToDTO(v.Preference),
		Changes:    nonNilSlice(v.Changes),
	}
}

func suggestionResultToDTO(v usecase.SuggestionResult) suggestionResultDTO {
	return suggestionResultDTO{
		Period:   v.Period,
		Applied:  nonNilSlice(v.Applied),
		Rejected: nonNilSlice(v.Rejected),
	}
}

func auditResultToDTO(v usecase.AuditResult) auditResultDTO {
	violations := make([]violationDTO, 0, len(v.Violations))
	for _, item := range v.Violations {
		reason := ""
		if item.Err != nil {
			reason = item.Err.Error()
		}
		violations = append(violations, violationDTO{
			Period: item.Period,
			Date:   item.Date,
			User:   item.User,
			Reason: reason,
		})
	}
	return auditResultDTO{PeriodCount: v.PeriodCount, Checked: v.Checked, Violations: violations}
}

// mapSlice always returns a non-nil slice so list queries render as [].
func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func nonNilSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
