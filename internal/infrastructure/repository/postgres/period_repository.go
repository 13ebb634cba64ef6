package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	qb "github.com/riskibarqy/cooking-schedule/internal/platform/querybuilder"
)

type PeriodRepository struct {
	db *sqlx.DB
}

func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// Create inserts the period. A current period clears the flag on every
// other row in the same transaction.
func (r *PeriodRepository) Create(ctx context.Context, item period.Period) error {
	insertModel := periodInsertModel{
		PublicID:   item.ID,
		Label:      item.Label,
		StartMonth: item.StartMonth,
		Year:       item.Year,
		IsCurrent:  item.IsCurrent,
		IsOpen:     item.IsOpen,
		CreatedAt:  item.CreatedAt,
	}
	query, args, err := qb.InsertModel("periods", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create period query: %w", err)
	}

	return withTx(ctx, r.db, "create period", func(tx *sqlx.Tx) error {
		if item.IsCurrent {
			if err := clearCurrentPeriod(ctx, tx); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyWriteError("create period", err)
		}
		return nil
	})
}

func (r *PeriodRepository) GetByLabel(ctx context.Context, label string) (period.Period, bool, error) {
	return r.getOne(ctx, "get period", qb.Eq("label", label))
}

func (r *PeriodRepository) GetCurrent(ctx context.Context) (period.Period, bool, error) {
	return r.getOne(ctx, "get current period", qb.Eq("is_current", true))
}

func (r *PeriodRepository) getOne(ctx context.Context, op string, cond qb.Condition) (period.Period, bool, error) {
	query, args, err := qb.Select("*").From("periods").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return period.Period{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row periodTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return period.Period{}, false, nil
		}
		return period.Period{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toDomain(), true, nil
}

func (r *PeriodRepository) List(ctx context.Context) ([]period.Period, error) {
	query, args, err := qb.Select("*").From("periods").OrderBy("label").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list periods query: %w", err)
	}

	var rows []periodTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	out := make([]period.Period, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PeriodRepository) SetCurrent(ctx context.Context, label string) error {
	query, args, err := qb.Update("periods").
		Set("is_current", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("label", label)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set current period query: %w", err)
	}

	return withTx(ctx, r.db, "set current period", func(tx *sqlx.Tx) error {
		if err := clearCurrentPeriod(ctx, tx); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("set current period: %w", err)
		}
		return expectAffected(res, "period "+label)
	})
}

func (r *PeriodRepository) SetOpen(ctx context.Context, label string, open bool) error {
	query, args, err := qb.Update("periods").
		Set("is_open", open).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("label", label)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set period open query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set period open: %w", err)
	}
	return expectAffected(res, "period "+label)
}

func (r *PeriodRepository) Delete(ctx context.Context, label string) error {
	return execDelete(ctx, r.db, "delete period", qb.DeleteFrom("periods").Where(qb.Eq("label", label)))
}

func (r *PeriodRepository) CreateDate(ctx context.Context, item period.CookingDate) error {
	query, args, err := qb.InsertModel("cooking_dates", cookingDateInsertModel{
		PublicID:    item.ID,
		PeriodLabel: item.Period,
		CookingDate: item.Date,
	}, "")
	if err != nil {
		return fmt.Errorf("build create cooking date query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWriteError("create cooking date", err)
	}
	return nil
}

func (r *PeriodRepository) GetDate(ctx context.Context, date string) (period.CookingDate, bool, error) {
	query, args, err := qb.Select("*").From("cooking_dates").Where(qb.Eq("cooking_date", date)).ToSQL()
	if err != nil {
		return period.CookingDate{}, false, fmt.Errorf("build get cooking date query: %w", err)
	}

	var row cookingDateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return period.CookingDate{}, false, nil
		}
		return period.CookingDate{}, false, fmt.Errorf("get cooking date: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PeriodRepository) ListDates(ctx context.Context, label string) ([]period.CookingDate, error) {
	query, args, err := qb.Select("*").
		From("cooking_dates").
		Where(qb.Eq("period_label", label)).
		OrderBy("cooking_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cooking dates query: %w", err)
	}

	var rows []cookingDateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list cooking dates: %w", err)
	}

	out := make([]period.CookingDate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PeriodRepository) DeleteDate(ctx context.Context, date string) error {
	return execDelete(ctx, r.db, "delete cooking date", qb.DeleteFrom("cooking_dates").Where(qb.Eq("cooking_date", date)))
}

func (r *PeriodRepository) DeleteDatesByPeriod(ctx context.Context, label string) error {
	return execDelete(ctx, r.db, "delete cooking dates by period", qb.DeleteFrom("cooking_dates").Where(qb.Eq("period_label", label)))
}

func clearCurrentPeriod(ctx context.Context, tx *sqlx.Tx) error {
	query, args, err := qb.Update("periods").
		Set("is_current", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("is_current", true)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear current period query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear current period: %w", err)
	}
	return nil
}
