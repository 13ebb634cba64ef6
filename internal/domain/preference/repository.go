package preference

import "context"

// Repository stores one preference per (user, period).
type Repository interface {
	Upsert(ctx context.Context, item Preference) error
	Get(ctx context.Context, user, period string) (Preference, bool, error)
	ListByPeriod(ctx context.Context, period string) ([]Preference, error)
	Delete(ctx context.Context, user, period string) error
	DeleteByPeriod(ctx context.Context, period string) error
}
