package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cooking-schedule/internal/domain/preference"
	qb "github.com/riskibarqy/cooking-schedule/internal/platform/querybuilder"
)

type PreferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Upsert keeps the public id of an existing (user, period) row.
func (r *PreferenceRepository) Upsert(ctx context.Context, item preference.Preference) error {
	query, args, err := qb.InsertModel("cooking_preferences", preferenceInsertModel{
		PublicID:       item.ID,
		UserID:         item.User,
		PeriodLabel:    item.Period,
		CanSolo:        item.CanSolo,
		CanLead:        item.CanLead,
		CanAssist:      item.CanAssist,
		MaxCookingDays: item.MaxCookingDays,
	}, `ON CONFLICT (user_id, period_label)
DO UPDATE SET
    can_solo = EXCLUDED.can_solo,
    can_lead = EXCLUDED.can_lead,
    can_assist = EXCLUDED.can_assist,
    max_cooking_days = EXCLUDED.max_cooking_days,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert preference query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWriteError("upsert preference", err)
	}
	return nil
}

func (r *PreferenceRepository) Get(ctx context.Context, user, periodLabel string) (preference.Preference, bool, error) {
	query, args, err := qb.Select("*").
		From("cooking_preferences").
		Where(qb.Eq("user_id", user), qb.Eq("period_label", periodLabel)).
		ToSQL()
	if err != nil {
		return preference.Preference{}, false, fmt.Errorf("build get preference query: %w", err)
	}

	var row preferenceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return preference.Preference{}, false, nil
		}
		return preference.Preference{}, false, fmt.Errorf("get preference: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PreferenceRepository) ListByPeriod(ctx context.Context, periodLabel string) ([]preference.Preference, error) {
	query, args, err := qb.Select("*").
		From("cooking_preferences").
		Where(qb.Eq("period_label", periodLabel)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list preferences query: %w", err)
	}

	var rows []preferenceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	out := make([]preference.Preference, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PreferenceRepository) Delete(ctx context.Context, user, periodLabel string) error {
	return execDelete(ctx, r.db, "delete preference",
		qb.DeleteFrom("cooking_preferences").Where(qb.Eq("user_id", user), qb.Eq("period_label", periodLabel)))
}

func (r *PreferenceRepository) DeleteByPeriod(ctx context.Context, periodLabel string) error {
	return execDelete(ctx, r.db, "delete preferences by period",
		qb.DeleteFrom("cooking_preferences").Where(qb.Eq("period_label", periodLabel)))
}
