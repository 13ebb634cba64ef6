package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/cooking-schedule/internal/domain/period"
	"github.com/riskibarqy/cooking-schedule/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/cooking-schedule/internal/platform/cache"
)

type countingPeriods struct {
	*memory.PeriodRepository
	currentCalls int
	dateCalls    int
}

func (c *countingPeriods) GetCurrent(ctx context.Context) (period.Period, bool, error) {
	c.currentCalls++
	return c.PeriodRepository.GetCurrent(ctx)
}

func (c *countingPeriods) GetDate(ctx context.Context, date string) (period.CookingDate, bool, error) {
	c.dateCalls++
	return c.PeriodRepository.GetDate(ctx, date)
}

func TestPeriodRepository_CachesUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := &countingPeriods{PeriodRepository: memory.NewPeriodRepository()}
	repo := NewPeriodRepository(next, basecache.NewStore(time.Minute))

	if err := repo.Create(ctx, period.Period{ID: "p1", Label: "2025-10", StartMonth: 10, Year: 2025, IsCurrent: true}); err != nil {
		t.Fatalf("create period: %v", err)
	}

	for i := 0; i < 3; i++ {
		item, exists, err := repo.GetCurrent(ctx)
		if err != nil || !exists || item.Label != "2025-10" {
			t.Fatalf("get current: %+v %v %v", item, exists, err)
		}
	}
	if next.currentCalls != 1 {
		t.Fatalf("expected one backend read, got %d", next.currentCalls)
	}

	if err := repo.Create(ctx, period.Period{ID: "p2", Label: "2025-11", StartMonth: 11, Year: 2025}); err != nil {
		t.Fatalf("create period: %v", err)
	}
	if err := repo.SetCurrent(ctx, "2025-11"); err != nil {
		t.Fatalf("set current: %v", err)
	}
	item, _, err := repo.GetCurrent(ctx)
	if err != nil {
		t.Fatalf("get current: %v", err)
	}
	if item.Label != "2025-11" {
		t.Fatalf("expected stale current period to be dropped, got %s", item.Label)
	}
}

func TestPeriodRepository_CachesMissingDateUntilCreated(t *testing.T) {
	ctx := context.Background()
	next := &countingPeriods{PeriodRepository: memory.NewPeriodRepository()}
	repo := NewPeriodRepository(next, basecache.NewStore(time.Minute))

	if _, exists, _ := repo.GetDate(ctx, "2025-10-01"); exists {
		t.Fatalf("expected missing date")
	}
	if _, exists, _ := repo.GetDate(ctx, "2025-10-01"); exists {
		t.Fatalf("expected missing date")
	}
	if next.dateCalls != 1 {
		t.Fatalf("expected cached miss, got %d backend reads", next.dateCalls)
	}

	if err := repo.CreateDate(ctx, period.CookingDate{ID: "d1", Period: "2025-10", Date: "2025-10-01"}); err != nil {
		t.Fatalf("create date: %v", err)
	}
	if _, exists, _ := repo.GetDate(ctx, "2025-10-01"); !exists {
		t.Fatalf("expected created date to be visible")
	}
}
