package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cooking-schedule/internal/domain/roster"
	qb "github.com/riskibarqy/cooking-schedule/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Add(ctx context.Context, cook roster.Cook) error {
	query, args, err := qb.InsertModel("cooks", cookInsertModel{
		PublicID:    cook.ID,
		UserID:      cook.User,
		PeriodLabel: cook.Period,
	}, "")
	if err != nil {
		return fmt.Errorf("build add cook query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWriteError("add cook", err)
	}
	return nil
}

func (r *RosterRepository) Get(ctx context.Context, user, periodLabel string) (roster.Cook, bool, error) {
	query, args, err := qb.Select("*").
		From("cooks").
		Where(qb.Eq("user_id", user), qb.Eq("period_label", periodLabel)).
		ToSQL()
	if err != nil {
		return roster.Cook{}, false, fmt.Errorf("build get cook query: %w", err)
	}

	var row cookTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Cook{}, false, nil
		}
		return roster.Cook{}, false, fmt.Errorf("get cook: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) ListByPeriod(ctx context.Context, periodLabel string) ([]roster.Cook, error) {
	query, args, err := qb.Select("*").
		From("cooks").
		Where(qb.Eq("period_label", periodLabel)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cooks query: %w", err)
	}

	var rows []cookTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list cooks: %w", err)
	}

	out := make([]roster.Cook, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RosterRepository) Delete(ctx context.Context, user, periodLabel string) error {
	return execDelete(ctx, r.db, "delete cook",
		qb.DeleteFrom("cooks").Where(qb.Eq("user_id", user), qb.Eq("period_label", periodLabel)))
}

func (r *RosterRepository) DeleteByPeriod(ctx context.Context, periodLabel string) error {
	return execDelete(ctx, r.db, "delete cooks by period", qb.DeleteFrom("cooks").Where(qb.Eq("period_label", periodLabel)))
}
