package period

import "context"

// Repository persists periods and the cooking dates registered inside them.
type Repository interface {
	Create(ctx context.Context, item Period) error
	GetByLabel(ctx context.Context, label string) (Period, bool, error)
	GetCurrent(ctx context.Context) (Period, bool, error)
	List(ctx context.Context) ([]Period, error)
	SetCurrent(ctx context.Context, label string) error
	SetOpen(ctx context.Context, label string, open bool) error
	Delete(ctx context.Context, label string) error

	CreateDate(ctx context.Context, item CookingDate) error
	GetDate(ctx context.Context, date string) (CookingDate, bool, error)
	ListDates(ctx context.Context, label string) ([]CookingDate, error)
	DeleteDate(ctx context.Context, date string) error
	DeleteDatesByPeriod(ctx context.Context, label string) error
}
