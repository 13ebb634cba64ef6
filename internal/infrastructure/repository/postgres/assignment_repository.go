package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cooking-schedule/internal/domain/assignment"
	qb "github.com/riskibarqy/cooking-schedule/internal/platform/querybuilder"
)

// AssignmentRepository relies on the unique cooking_date column for the
// one-entry-per-date rule.
type AssignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Upsert(ctx context.Context, item assignment.Assignment) error {
	query, args, err := qb.InsertModel("cooking_assignments", assignmentInsertModel{
		PublicID:    item.ID,
		PeriodLabel: item.Period,
		CookingDate: item.Date,
		LeadUserID:  item.Lead,
		AssistantID: nullableString(item.Assistant),
	}, `ON CONFLICT (cooking_date)
DO UPDATE SET
    lead_user_id = EXCLUDED.lead_user_id,
    assistant_user_id = EXCLUDED.assistant_user_id,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyWriteError("upsert assignment", err)
	}
	return nil
}

func (r *AssignmentRepository) Get(ctx context.Context, date string) (assignment.Assignment, bool, error) {
	query, args, err := qb.Select("*").
		From("cooking_assignments").
		Where(qb.Eq("cooking_date", date)).
		ToSQL()
	if err != nil {
		return assignment.Assignment{}, false, fmt.Errorf("build get assignment query: %w", err)
	}

	var row assignmentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return assignment.Assignment{}, false, nil
		}
		return assignment.Assignment{}, false, fmt.Errorf("get assignment: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *AssignmentRepository) ListByPeriod(ctx context.Context, periodLabel string) ([]assignment.Assignment, error) {
	return r.list(ctx, "list assignments by period", qb.Eq("period_label", periodLabel))
}

func (r *AssignmentRepository) ListByUser(ctx context.Context, user, periodLabel string) ([]assignment.Assignment, error) {
	return r.list(ctx, "list assignments by user",
		qb.Eq("period_label", periodLabel),
		qb.Expr("(lead_user_id = ? OR assistant_user_id = ?)", user, user),
	)
}

func (r *AssignmentRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]assignment.Assignment, error) {
	query, args, err := qb.Select("*").
		From("cooking_assignments").
		Where(conds...).
		OrderBy("cooking_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []assignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, date string) error {
	return execDelete(ctx, r.db, "delete assignment", qb.DeleteFrom("cooking_assignments").Where(qb.Eq("cooking_date", date)))
}

func (r *AssignmentRepository) DeleteByPeriod(ctx context.Context, periodLabel string) error {
	return execDelete(ctx, r.db, "delete assignments by period",
		qb.DeleteFrom("cooking_assignments").Where(qb.Eq("period_label", periodLabel)))
}
