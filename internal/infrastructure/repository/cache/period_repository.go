package cache

import (
	"context"

	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	basecache "github.com/riskibarqy/cooking-schedule/internal/platform/cache"
)

const (
	periodKeyPrefix = "period:"
	datesKeyPrefix  = "dates:"
)

// PeriodRepository caches period and cooking date reads. Every write drops
// the cached entries it could have changed.
type PeriodRepository struct {
	next  period.Repository
	cache *basecache.Store
}

func NewPeriodRepository(next period.Repository, cache *basecache.Store) *PeriodRepository {
	return &PeriodRepository{next: next, cache: cache}
}

func (r *PeriodRepository) Create(ctx context.Context, item period.Period) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, periodKeyPrefix)
	return nil
}

func (r *PeriodRepository) GetByLabel(ctx context.Context, label string) (period.Period, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, periodKeyPrefix+"label:"+label, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByLabel(ctx, label)
		if err != nil {
			return nil, err
		}
		return cachedPeriod{value: item, exists: exists}, nil
	})
	if err != nil {
		return period.Period{}, false, err
	}

	cached, _ := v.(cachedPeriod)
	return cached.value, cached.exists, nil
}

func (r *PeriodRepository) GetCurrent(ctx context.Context) (period.Period, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, periodKeyPrefix+"current", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetCurrent(ctx)
		if err != nil {
			return nil, err
		}
		return cachedPeriod{value: item, exists: exists}, nil
	})
	if err != nil {
		return period.Period{}, false, err
	}

	cached, _ := v.(cachedPeriod)
	return cached.value, cached.exists, nil
}

func (r *PeriodRepository) List(ctx context.Context) ([]period.Period, error) {
	v, err := r.cache.GetOrLoad(ctx, periodKeyPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]period.Period(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]period.Period)
	return append([]period.Period(nil), items...), nil
}

func (r *PeriodRepository) SetCurrent(ctx context.Context, label string) error {
	if err := r.next.SetCurrent(ctx, label); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, periodKeyPrefix)
	return nil
}

func (r *PeriodRepository) SetOpen(ctx context.Context, label string, open bool) error {
	if err := r.next.SetOpen(ctx, label, open); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, periodKeyPrefix)
	return nil
}

func (r *PeriodRepository) Delete(ctx context.Context, label string) error {
	if err := r.next.Delete(ctx, label); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, periodKeyPrefix, datesKeyPrefix)
	return nil
}

func (r *PeriodRepository) CreateDate(ctx context.Context, item period.CookingDate) error {
	if err := r.next.CreateDate(ctx, item); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, datesKeyPrefix)
	return nil
}

func (r *PeriodRepository) GetDate(ctx context.Context, date string) (period.CookingDate, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, datesKeyPrefix+"date:"+date, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetDate(ctx, date)
		if err != nil {
			return nil, err
		}
		return cachedDate{value: item, exists: exists}, nil
	})
	if err != nil {
		return period.CookingDate{}, false, err
	}

	cached, _ := v.(cachedDate)
	return cached.value, cached.exists, nil
}

func (r *PeriodRepository) ListDates(ctx context.Context, label string) ([]period.CookingDate, error) {
	v, err := r.cache.GetOrLoad(ctx, datesKeyPrefix+"list:"+label, func(ctx context.Context) (any, error) {
		items, err := r.next.ListDates(ctx, label)
		if err != nil {
			return nil, err
		}
		return append([]period.CookingDate(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]period.CookingDate)
	return append([]period.CookingDate(nil), items...), nil
}

func (r *PeriodRepository) DeleteDate(ctx context.Context, date string) error {
	if err := r.next.DeleteDate(ctx, date); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, datesKeyPrefix)
	return nil
}

func (r *PeriodRepository) DeleteDatesByPeriod(ctx context.Context, label string) error {
	if err := r.next.DeleteDatesByPeriod(ctx, label); err != nil {
		return err
	}
	r.cache.Invalidate(ctx, datesKeyPrefix)
	return nil
}

type cachedPeriod struct {
	value  period.Period
	exists bool
}

type cachedDate struct {
	value  period.CookingDate
	exists bool
}
