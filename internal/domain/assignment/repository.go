package assignment

import "context"

// Repository stores at most one assignment per date.
type Repository interface {
	Upsert(ctx context.Context, item Assignment) error
	Get(ctx context.Context, date string) (Assignment, bool, error)
	ListByPeriod(ctx context.Context, period string) ([]Assignment, error)
	ListByUser(ctx context.Context, user, period string) ([]Assignment, error)
	Delete(ctx context.Context, date string) error
	DeleteByPeriod(ctx context.Context, period string) error
}
