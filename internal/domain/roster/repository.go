package roster

import "context"

// Repository stores roster entries keyed by (user, period).
type Repository interface {
	Add(ctx context.Context, cook Cook) error
	Get(ctx context.Context, user, period string) (Cook, bool, error)
	ListByPeriod(ctx context.Context, period string) ([]Cook, error)
	Delete(ctx context.Context, user, period string) error
	DeleteByPeriod(ctx context.Context, period string) error
}
