package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
)

type periodTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	Label      string    `db:"label"`
	StartMonth int       `db:"start_month"`
	Year       int       `db:"year"`
	IsCurrent  bool      `db:"is_current"`
	IsOpen     bool      `db:"is_open"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type periodInsertModel struct {
	PublicID   string    `db:"public_id"`
	Label      string    `db:"label"`
	StartMonth int       `db:"start_month"`
	Year       int       `db:"year"`
	IsCurrent  bool      `db:"is_current"`
	IsOpen     bool      `db:"is_open"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m periodTableModel) toDomain() period.Period {
	return period.Period{
		ID:         m.PublicID,
		Label:      m.Label,
		StartMonth: m.StartMonth,
		Year:       m.Year,
		IsCurrent:  m.IsCurrent,
		IsOpen:     m.IsOpen,
		CreatedAt:  m.CreatedAt,
	}
}

type cookingDateTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	PeriodLabel string    `db:"period_label"`
	CookingDate time.Time `db:"cooking_date"`
	CreatedAt   time.Time `db:"created_at"`
}

type cookingDateInsertModel struct {
	PublicID    string `db:"public_id"`
	PeriodLabel string `db:"period_label"`
	CookingDate string `db:"cooking_date"`
}

func (m cookingDateTableModel) toDomain() period.CookingDate {
	return period.CookingDate{
		ID:     m.PublicID,
		Period: m.PeriodLabel,
		Date:   formatDate(m.CookingDate),
	}
}

type cookTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	UserID      string    `db:"user_id"`
	PeriodLabel string    `db:"period_label"`
	CreatedAt   time.Time `db:"created_at"`
}

type cookInsertModel struct {
	PublicID    string `db:"public_id"`
	UserID      string `db:"user_id"`
	PeriodLabel string `db:"period_label"`
}

func (m cookTableModel) toDomain() roster.Cook {
	return roster.Cook{ID: m.PublicID, User: m.UserID, Period: m.PeriodLabel}
}

type availabilityTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	UserID      string    `db:"user_id"`
	PeriodLabel string    `db:"period_label"`
	CookingDate time.Time `db:"cooking_date"`
	CreatedAt   time.Time `db:"created_at"`
}

type availabilityInsertModel struct {
	PublicID    string `db:"public_id"`
	UserID      string `db:"user_id"`
	PeriodLabel string `db:"period_label"`
	CookingDate string `db:"cooking_date"`
}

func (m availabilityTableModel) toDomain() availability.Availability {
	return availability.Availability{
		ID:     m.PublicID,
		User:   m.UserID,
		Period: m.PeriodLabel,
		Date:   formatDate(m.CookingDate),
	}
}

type preferenceTableModel struct {
	ID             int64     `db:"id"`
	PublicID       string    `db:"public_id"`
	UserID         string    `db:"user_id"`
	PeriodLabel    string    `db:"period_label"`
	CanSolo        bool      `db:"can_solo"`
	CanLead        bool      `db:"can_lead"`
	CanAssist      bool      `db:"can_assist"`
	MaxCookingDays int       `db:"max_cooking_days"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type preferenceInsertModel struct {
	PublicID       string `db:"public_id"`
	UserID         string `db:"user_id"`
	PeriodLabel    string `db:"period_label"`
	CanSolo        bool   `db:"can_solo"`
	CanLead        bool   `db:"can_lead"`
	CanAssist      bool   `db:"can_assist"`
	MaxCookingDays int    `db:"max_cooking_days"`
}

func (m preferenceTableModel) toDomain() preference.Preference {
	return preference.Preference{
		ID:             m.PublicID,
		User:           m.UserID,
		Period:         m.PeriodLabel,
		CanSolo:        m.CanSolo,
		CanLead:        m.CanLead,
		CanAssist:      m.CanAssist,
		MaxCookingDays: m.MaxCookingDays,
	}
}

type assignmentTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	PeriodLabel string         `db:"period_label"`
	CookingDate time.Time      `db:"cooking_date"`
	LeadUserID  string         `db:"lead_user_id"`
	AssistantID sql.NullString `db:"assistant_user_id"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type assignmentInsertModel struct {
	PublicID    string         `db:"public_id"`
	PeriodLabel string         `db:"period_label"`
	CookingDate string         `db:"cooking_date"`
	LeadUserID  string         `db:"lead_user_id"`
	AssistantID sql.NullString `db:"assistant_user_id"`
}

func (m assignmentTableModel) toDomain() assignment.Assignment {
	return assignment.Assignment{
		ID:        m.PublicID,
		Period:    m.PeriodLabel,
		Date:      formatDate(m.CookingDate),
		Lead:      m.LeadUserID,
		Assistant: m.AssistantID.String,
	}
}
