package availability

import "context"

// Repository stores availability keyed by (user, date).
type Repository interface {
	Add(ctx context.Context, item Availability) error
	Get(ctx context.Context, user, date string) (Availability, bool, error)
	ListByDate(ctx context.Context, date string) ([]Availability, error)
	ListByUser(ctx context.Context, user, period string) ([]Availability, error)
	ListByPeriod(ctx context.Context, period string) ([]Availability, error)
	Delete(ctx context.Context, user, date string) error
	DeleteByDate(ctx context.Context, date string) error
	DeleteByUser(ctx context.Context, user, period string) error
	DeleteByPeriod(ctx context.Context, period string) error
}
