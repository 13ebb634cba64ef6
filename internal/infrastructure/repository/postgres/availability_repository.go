package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cooking-schedule/internal/domain/availability"
	qb "github.com/riskibarqy/cooking-schedule/internal/platform/querybuilder"
)

type AvailabilityRepository struct {
	db *sqlx.DB
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Add(ctx context.Context, item availability.Availability) error {
	query, args, err := qb.InsertModel("availability", availabilityInsertModel{
		PublicID:    item.ID,
		UserID:      item.User,
		PeriodLabel: item.Period,
		CookingDate: item.Date,
	}, "")
	if err != nil {
		return fmt.Errorf("build add availability query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWriteError("add availability", err)
	}
	return nil
}

func (r *AvailabilityRepository) Get(ctx context.Context, user, date string) (availability.Availability, bool, error) {
	query, args, err := qb.Select("*").
		From("availability").
		Where(qb.Eq("user_id", user), qb.Eq("cooking_date", date)).
		ToSQL()
	if err != nil {
		return availability.Availability{}, false, fmt.Errorf("build get availability query: %w", err)
	}

	var row availabilityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return availability.Availability{}, false, nil
		}
		return availability.Availability{}, false, fmt.Errorf("get availability: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *AvailabilityRepository) ListByDate(ctx context.Context, date string) ([]availability.Availability, error) {
	return r.list(ctx, "list availability by date", qb.Eq("cooking_date", date))
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, user, periodLabel string) ([]availability.Availability, error) {
	return r.list(ctx, "list availability by user", qb.Eq("user_id", user), qb.Eq("period_label", periodLabel))
}

func (r *AvailabilityRepository) ListByPeriod(ctx context.Context, periodLabel string) ([]availability.Availability, error) {
	return r.list(ctx, "list availability by period", qb.Eq("period_label", periodLabel))
}

func (r *AvailabilityRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]availability.Availability, error) {
	query, args, err := qb.Select("*").
		From("availability").
		Where(conds...).
		OrderBy("cooking_date", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]availability.Availability, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, user, date string) error {
	return execDelete(ctx, r.db, "delete availability",
		qb.DeleteFrom("availability").Where(qb.Eq("user_id", user), qb.Eq("cooking_date", date)))
}

func (r *AvailabilityRepository) DeleteByDate(ctx context.Context, date string) error {
	return execDelete(ctx, r.db, "delete availability by date",
		qb.DeleteFrom("availability").Where(qb.Eq("cooking_date", date)))
}

func (r *AvailabilityRepository) DeleteByUser(ctx context.Context, user, periodLabel string) error {
	return execDelete(ctx, r.db, "delete availability by user",
		qb.DeleteFrom("availability").Where(qb.Eq("user_id", user), qb.Eq("period_label", periodLabel)))
}

func (r *AvailabilityRepository) DeleteByPeriod(ctx context.Context, periodLabel string) error {
	return execDelete(ctx, r.db, "delete availability by period",
		qb.DeleteFrom("availability").Where(qb.Eq("period_label", periodLabel)))
}
